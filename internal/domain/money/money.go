// Package money implementa el motor de cálculo monetario de facturas
// (servicio de dominio, puro y determinista).
//
// Reglas:
//   - Redondeo a 2 decimales con half-away-from-zero (el Round de
//     shopspring/decimal), solo en el resultado final.
//   - Los totales de factura suman componentes SIN redondear y redondean
//     únicamente las tres sumas finales (sumar-luego-redondear). Si se
//     redondeara por línea, los totales en pantalla y los persistidos
//     podrían divergir.
//   - La entrada malformada o negativa se coacciona a cero: durante la
//     edición el usuario escribe a medias y eso no es un error duro.
package money

import "github.com/shopspring/decimal"

// Escala fija de los montos persistidos y mostrados.
const Scale = 2

var hundred = decimal.NewFromInt(100)

// ParseAmount convierte la representación textual de un monto en decimal.
// Entrada no numérica o negativa se coacciona a cero, nunca falla.
// "1" y "1.0" producen el mismo valor.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Line es la porción de una línea que afecta los totales.
type Line struct {
	Quantity   decimal.Decimal
	Rate       decimal.Decimal
	VATPercent decimal.Decimal
}

// LineTotal calcula el total de una línea:
// round2(quantity*rate + quantity*rate*vatPercent/100).
func LineTotal(quantity, rate, vatPercent decimal.Decimal) decimal.Decimal {
	subtotal := quantity.Mul(rate)
	vat := subtotal.Mul(vatPercent).Div(hundred)
	return subtotal.Add(vat).Round(Scale)
}

// LineTotalFromStrings es LineTotal sobre entradas textuales, con la
// coacción a cero de ParseAmount para cada campo.
func LineTotalFromStrings(quantity, rate, vatPercent string) decimal.Decimal {
	return LineTotal(ParseAmount(quantity), ParseAmount(rate), ParseAmount(vatPercent))
}

// Totals acumula subtotal e impuesto de todas las líneas sin redondear y
// redondea solo las tres sumas finales. Es independiente del orden de las
// líneas.
func Totals(lines []Line) (subtotal, vatTotal, grandTotal decimal.Decimal) {
	for _, l := range lines {
		lineSubtotal := l.Quantity.Mul(l.Rate)
		lineVAT := lineSubtotal.Mul(l.VATPercent).Div(hundred)
		subtotal = subtotal.Add(lineSubtotal)
		vatTotal = vatTotal.Add(lineVAT)
	}
	grandTotal = subtotal.Add(vatTotal).Round(Scale)
	subtotal = subtotal.Round(Scale)
	vatTotal = vatTotal.Round(Scale)
	return subtotal, vatTotal, grandTotal
}
