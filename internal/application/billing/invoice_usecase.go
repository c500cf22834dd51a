package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturador-api/internal/application/dto"
	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
	"github.com/jhoicas/facturador-api/internal/domain/money"
	"github.com/jhoicas/facturador-api/internal/domain/repository"
)

// InvoiceUseCase casos de uso de facturas: guardar (calculando totales con el
// motor antes de tocar el store), consultar, listar y eliminar.
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo}
}

// Create valida, recalcula totales y persiste una factura nueva con sus
// líneas. La validación ocurre completa antes de cualquier efecto en el
// store (todo o nada).
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.SaveInvoiceRequest) (*dto.InvoiceWithItemsResponse, error) {
	if err := validateSaveInvoice(&in); err != nil {
		return nil, err
	}
	inv, items := buildInvoice(in)
	saved, err := uc.repo.Create(ctx, inv, items)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return toInvoiceWithItemsResponse(saved), nil
}

// Update valida y reemplaza la factura identificada: los escalares se
// mezclan (aquí el cliente envía el objeto completo) y la colección de
// líneas se reemplaza entera con identidades nuevas.
func (uc *InvoiceUseCase) Update(ctx context.Context, id int64, in dto.SaveInvoiceRequest) (*dto.InvoiceWithItemsResponse, error) {
	if err := validateSaveInvoice(&in); err != nil {
		return nil, err
	}
	inv, items := buildInvoice(in)
	patch := repository.InvoicePatch{
		InvoiceNumber:       &inv.InvoiceNumber,
		CompanyName:         &inv.CompanyName,
		CompanyTagline:      &in.CompanyTagline,
		CompanyLogo:         &in.CompanyLogo,
		FromName:            &inv.FromName,
		FromAddress:         &inv.FromAddress,
		FromEmail:           &inv.FromEmail,
		FromPhone:           &in.FromPhone,
		FromVAT:             &in.FromVAT,
		ToName:              &inv.ToName,
		ToAddress:           &inv.ToAddress,
		ToEmail:             &inv.ToEmail,
		ToPhone:             &in.ToPhone,
		ToVAT:               &in.ToVAT,
		InvoiceDate:         &inv.InvoiceDate,
		DueDate:             &inv.DueDate,
		Currency:            &inv.Currency,
		PaymentTerms:        &inv.PaymentTerms,
		PaymentInstructions: &in.PaymentInstructions,
		InvoiceNotes:        &in.InvoiceNotes,
		Subtotal:            &inv.Subtotal,
		VATTotal:            &inv.VATTotal,
		GrandTotal:          &inv.GrandTotal,
	}
	saved, err := uc.repo.Update(ctx, id, patch, items)
	if err != nil {
		return nil, err
	}
	return toInvoiceWithItemsResponse(saved), nil
}

// GetByID obtiene la factura con sus líneas; ausencia se reporta como
// domain.ErrNotFound para que la capa HTTP responda 404.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id int64) (*dto.InvoiceWithItemsResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceWithItemsResponse(inv), nil
}

// List lista las cabeceras, más recientes primero. Un store vacío produce
// una lista vacía, nunca un error.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for i := range list {
		out = append(out, toInvoiceResponse(&list[i]))
	}
	return out, nil
}

// Delete elimina factura y líneas. Retorna si existía; false no es error.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	return deleted, nil
}

// validateSaveInvoice aplica defaults de catálogo y junta todas las causas de
// validación antes de retornar.
func validateSaveInvoice(in *dto.SaveInvoiceRequest) error {
	v := domain.NewValidationError()
	requireField(v, "invoiceNumber", in.InvoiceNumber)
	requireField(v, "companyName", in.CompanyName)
	requireField(v, "fromName", in.FromName)
	requireField(v, "fromAddress", in.FromAddress)
	requireField(v, "fromEmail", in.FromEmail)
	requireField(v, "toName", in.ToName)
	requireField(v, "toAddress", in.ToAddress)
	requireField(v, "toEmail", in.ToEmail)
	requireDate(v, "invoiceDate", in.InvoiceDate)
	requireDate(v, "dueDate", in.DueDate)

	if in.Currency == "" {
		in.Currency = entity.CurrencyUSD
	} else if !entity.ValidCurrency(in.Currency) {
		v.Add("currency", "moneda no soportada")
	}
	if in.PaymentTerms == "" {
		in.PaymentTerms = entity.TermsNet30
	} else if !entity.ValidPaymentTerms(in.PaymentTerms) {
		v.Add("paymentTerms", "término de pago no soportado")
	}
	for i := range in.Items {
		if in.Items[i].UnitType == "" {
			in.Items[i].UnitType = entity.UnitItem
		} else if !entity.ValidUnitType(in.Items[i].UnitType) {
			v.Add(fmt.Sprintf("items[%d].unitType", i), "tipo de unidad no soportado")
		}
	}
	if v.HasErrors() {
		return v
	}
	return nil
}

func requireField(v *domain.ValidationError, field, value string) {
	if value == "" {
		v.Add(field, "es requerido")
	}
}

func requireDate(v *domain.ValidationError, field, value string) {
	if value == "" {
		v.Add(field, "es requerido")
		return
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		v.Add(field, "debe tener formato YYYY-MM-DD")
	}
}

// buildInvoice convierte la petición en entidad, recalculando el total de
// cada línea y los tres totales con el motor (sumar crudo, redondear al
// final). Los totales que envíe el cliente se ignoran.
func buildInvoice(in dto.SaveInvoiceRequest) (*entity.Invoice, []entity.InvoiceItem) {
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	lines := make([]money.Line, 0, len(in.Items))
	for _, it := range in.Items {
		q := money.ParseAmount(it.Quantity)
		r := money.ParseAmount(it.Rate)
		vat := money.ParseAmount(it.VATPercent)
		items = append(items, entity.InvoiceItem{
			Description: it.Description,
			Quantity:    q,
			Rate:        r,
			VATPercent:  vat,
			UnitType:    it.UnitType,
			Total:       money.LineTotal(q, r, vat),
		})
		lines = append(lines, money.Line{Quantity: q, Rate: r, VATPercent: vat})
	}
	subtotal, vatTotal, grandTotal := money.Totals(lines)

	inv := &entity.Invoice{
		InvoiceNumber:       in.InvoiceNumber,
		CompanyName:         in.CompanyName,
		CompanyTagline:      optional(in.CompanyTagline),
		CompanyLogo:         optional(in.CompanyLogo),
		FromName:            in.FromName,
		FromAddress:         in.FromAddress,
		FromEmail:           in.FromEmail,
		FromPhone:           optional(in.FromPhone),
		FromVAT:             optional(in.FromVAT),
		ToName:              in.ToName,
		ToAddress:           in.ToAddress,
		ToEmail:             in.ToEmail,
		ToPhone:             optional(in.ToPhone),
		ToVAT:               optional(in.ToVAT),
		InvoiceDate:         in.InvoiceDate,
		DueDate:             in.DueDate,
		Currency:            in.Currency,
		PaymentTerms:        in.PaymentTerms,
		PaymentInstructions: optional(in.PaymentInstructions),
		InvoiceNotes:        optional(in.InvoiceNotes),
		Subtotal:            subtotal,
		VATTotal:            vatTotal,
		GrandTotal:          grandTotal,
	}
	return inv, items
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:                  inv.ID,
		InvoiceNumber:       inv.InvoiceNumber,
		CompanyName:         inv.CompanyName,
		CompanyTagline:      inv.CompanyTagline,
		CompanyLogo:         inv.CompanyLogo,
		FromName:            inv.FromName,
		FromAddress:         inv.FromAddress,
		FromEmail:           inv.FromEmail,
		FromPhone:           inv.FromPhone,
		FromVAT:             inv.FromVAT,
		ToName:              inv.ToName,
		ToAddress:           inv.ToAddress,
		ToEmail:             inv.ToEmail,
		ToPhone:             inv.ToPhone,
		ToVAT:               inv.ToVAT,
		InvoiceDate:         inv.InvoiceDate,
		DueDate:             inv.DueDate,
		Currency:            inv.Currency,
		PaymentTerms:        inv.PaymentTerms,
		PaymentInstructions: inv.PaymentInstructions,
		InvoiceNotes:        inv.InvoiceNotes,
		Subtotal:            inv.Subtotal.StringFixed(money.Scale),
		VATTotal:            inv.VATTotal.StringFixed(money.Scale),
		GrandTotal:          inv.GrandTotal.StringFixed(money.Scale),
		CreatedAt:           inv.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toInvoiceWithItemsResponse(inv *entity.InvoiceWithItems) *dto.InvoiceWithItemsResponse {
	out := &dto.InvoiceWithItemsResponse{
		InvoiceResponse: *toInvoiceResponse(&inv.Invoice),
		Items:           make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			InvoiceID:   it.InvoiceID,
			Description: it.Description,
			Quantity:    it.Quantity.StringFixed(money.Scale),
			Rate:        it.Rate.StringFixed(money.Scale),
			VATPercent:  it.VATPercent.StringFixed(money.Scale),
			UnitType:    it.UnitType,
			Total:       it.Total.StringFixed(money.Scale),
		})
	}
	return out
}
