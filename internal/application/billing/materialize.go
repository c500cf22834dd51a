package billing

import (
	"github.com/jhoicas/facturador-api/internal/domain/entity"
	"github.com/jhoicas/facturador-api/internal/domain/money"
)

// Proyección factura <-> plantilla. Una plantilla conserva la identidad del
// emisor, moneda, términos, instrucciones y notas, y las líneas sin total;
// descarta todo lo del receptor (to*), el número de factura y las fechas.
// FromTemplate es la proyección inversa y debe devolver intactos los campos
// del lado del emisor.

// ToTemplateFields proyecta un borrador de factura a los campos de una
// plantilla con el nombre dado. Las líneas pierden el total; cantidad,
// tarifa, IVA y tipo de unidad sobreviven.
func ToTemplateFields(name string, d Draft) (*entity.Template, []entity.TemplateItem) {
	tpl := &entity.Template{
		Name:                name,
		CompanyName:         d.CompanyName,
		CompanyTagline:      optional(d.CompanyTagline),
		CompanyLogo:         optional(d.CompanyLogo),
		FromName:            d.FromName,
		FromAddress:         d.FromAddress,
		FromEmail:           d.FromEmail,
		FromPhone:           optional(d.FromPhone),
		FromVAT:             optional(d.FromVAT),
		Currency:            d.Currency,
		PaymentTerms:        d.PaymentTerms,
		PaymentInstructions: optional(d.PaymentInstructions),
		InvoiceNotes:        optional(d.InvoiceNotes),
	}
	items := make([]entity.TemplateItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.TemplateItem{
			Description: it.Description,
			Quantity:    money.ParseAmount(it.Quantity),
			Rate:        money.ParseAmount(it.Rate),
			VATPercent:  money.ParseAmount(it.VATPercent),
			UnitType:    defaultUnitType(it.UnitType),
		})
	}
	return tpl, items
}

// FromTemplate materializa un borrador fresco desde una plantilla: emisor,
// moneda, términos, notas y líneas vienen de la plantilla; el número de
// factura se genera nuevo, las fechas son hoy y hoy+30, y el receptor queda
// en blanco. El total de cada línea se recalcula con el motor.
func FromTemplate(tpl *entity.TemplateWithItems) Draft {
	d := NewDraftInvoice()
	d.CompanyName = tpl.CompanyName
	d.CompanyTagline = deref(tpl.CompanyTagline)
	d.CompanyLogo = deref(tpl.CompanyLogo)
	d.FromName = tpl.FromName
	d.FromAddress = tpl.FromAddress
	d.FromEmail = tpl.FromEmail
	d.FromPhone = deref(tpl.FromPhone)
	d.FromVAT = deref(tpl.FromVAT)
	d.Currency = tpl.Currency
	d.PaymentTerms = tpl.PaymentTerms
	d.PaymentInstructions = deref(tpl.PaymentInstructions)
	d.InvoiceNotes = deref(tpl.InvoiceNotes)

	if len(tpl.Items) > 0 {
		items := make([]DraftItem, 0, len(tpl.Items))
		for _, it := range tpl.Items {
			di := newDraftItem()
			di.Description = it.Description
			di.Quantity = it.Quantity.String()
			di.Rate = it.Rate.String()
			di.VATPercent = it.VATPercent.String()
			di.UnitType = it.UnitType
			di.Total = money.LineTotal(it.Quantity, it.Rate, it.VATPercent).StringFixed(money.Scale)
			items = append(items, di)
		}
		d.Items = items
	}
	return d
}

// DraftFromInvoice reconstruye un borrador desde una factura persistida, por
// ejemplo para proyectarla a plantilla del lado del servidor.
func DraftFromInvoice(inv *entity.InvoiceWithItems) Draft {
	d := Draft{
		InvoiceNumber:       inv.InvoiceNumber,
		CompanyName:         inv.CompanyName,
		CompanyTagline:      deref(inv.CompanyTagline),
		CompanyLogo:         deref(inv.CompanyLogo),
		FromName:            inv.FromName,
		FromAddress:         inv.FromAddress,
		FromEmail:           inv.FromEmail,
		FromPhone:           deref(inv.FromPhone),
		FromVAT:             deref(inv.FromVAT),
		ToName:              inv.ToName,
		ToAddress:           inv.ToAddress,
		ToEmail:             inv.ToEmail,
		ToPhone:             deref(inv.ToPhone),
		ToVAT:               deref(inv.ToVAT),
		InvoiceDate:         inv.InvoiceDate,
		DueDate:             inv.DueDate,
		Currency:            inv.Currency,
		PaymentTerms:        inv.PaymentTerms,
		PaymentInstructions: deref(inv.PaymentInstructions),
		InvoiceNotes:        deref(inv.InvoiceNotes),
	}
	items := make([]DraftItem, 0, len(inv.Items))
	for _, it := range inv.Items {
		di := newDraftItem()
		di.Description = it.Description
		di.Quantity = it.Quantity.String()
		di.Rate = it.Rate.String()
		di.VATPercent = it.VATPercent.String()
		di.UnitType = it.UnitType
		di.Total = it.Total.StringFixed(money.Scale)
		items = append(items, di)
	}
	if len(items) > 0 {
		d.Items = items
	} else {
		d.Items = []DraftItem{newDraftItem()}
	}
	return d
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func defaultUnitType(u string) string {
	if u == "" {
		return entity.UnitItem
	}
	return u
}
