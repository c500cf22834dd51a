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

// TemplateUseCase casos de uso de plantillas: CRUD, proyección de una factura
// guardada a plantilla y materialización de un borrador desde una plantilla.
type TemplateUseCase struct {
	repo        repository.TemplateRepository
	invoiceRepo repository.InvoiceRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.TemplateRepository, invoiceRepo repository.InvoiceRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, invoiceRepo: invoiceRepo}
}

// Create valida y persiste una plantilla con sus líneas.
func (uc *TemplateUseCase) Create(ctx context.Context, in dto.SaveTemplateRequest) (*dto.TemplateWithItemsResponse, error) {
	if err := validateSaveTemplate(&in); err != nil {
		return nil, err
	}
	tpl, items := buildTemplate(in)
	saved, err := uc.repo.Create(ctx, tpl, items)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return toTemplateWithItemsResponse(saved), nil
}

// SaveFromInvoice proyecta una factura persistida a una plantilla nueva con
// el nombre dado: conserva emisor, moneda, términos y líneas sin total;
// descarta receptor, número y fechas.
func (uc *TemplateUseCase) SaveFromInvoice(ctx context.Context, invoiceID int64, name string) (*dto.TemplateWithItemsResponse, error) {
	if name == "" {
		v := domain.NewValidationError()
		v.Add("name", "es requerido")
		return nil, v
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	tpl, items := ToTemplateFields(name, DraftFromInvoice(inv))
	saved, err := uc.repo.Create(ctx, tpl, items)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return toTemplateWithItemsResponse(saved), nil
}

// GetByID obtiene la plantilla con sus líneas.
func (uc *TemplateUseCase) GetByID(ctx context.Context, id int64) (*dto.TemplateWithItemsResponse, error) {
	tpl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	if tpl == nil {
		return nil, domain.ErrNotFound
	}
	return toTemplateWithItemsResponse(tpl), nil
}

// LoadDraft materializa un borrador de factura fresco desde la plantilla:
// número nuevo, fechas de hoy, receptor en blanco, emisor y líneas de la
// plantilla con totales recalculados.
func (uc *TemplateUseCase) LoadDraft(ctx context.Context, id int64) (*dto.DraftResponse, error) {
	tpl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	if tpl == nil {
		return nil, domain.ErrNotFound
	}
	draft := FromTemplate(tpl)
	return toDraftResponse(draft), nil
}

// List lista plantillas sin líneas, más recientes primero.
func (uc *TemplateUseCase) List(ctx context.Context) ([]*dto.TemplateResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := make([]*dto.TemplateResponse, 0, len(list))
	for i := range list {
		out = append(out, toTemplateResponse(&list[i]))
	}
	return out, nil
}

// Delete elimina plantilla y líneas. Retorna si existía.
func (uc *TemplateUseCase) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete template: %w", err)
	}
	return deleted, nil
}

func validateSaveTemplate(in *dto.SaveTemplateRequest) error {
	v := domain.NewValidationError()
	requireField(v, "name", in.Name)
	requireField(v, "companyName", in.CompanyName)
	requireField(v, "fromName", in.FromName)
	requireField(v, "fromAddress", in.FromAddress)
	requireField(v, "fromEmail", in.FromEmail)

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

func buildTemplate(in dto.SaveTemplateRequest) (*entity.Template, []entity.TemplateItem) {
	tpl := &entity.Template{
		Name:                in.Name,
		CompanyName:         in.CompanyName,
		CompanyTagline:      optional(in.CompanyTagline),
		CompanyLogo:         optional(in.CompanyLogo),
		FromName:            in.FromName,
		FromAddress:         in.FromAddress,
		FromEmail:           in.FromEmail,
		FromPhone:           optional(in.FromPhone),
		FromVAT:             optional(in.FromVAT),
		Currency:            in.Currency,
		PaymentTerms:        in.PaymentTerms,
		PaymentInstructions: optional(in.PaymentInstructions),
		InvoiceNotes:        optional(in.InvoiceNotes),
	}
	items := make([]entity.TemplateItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.TemplateItem{
			Description: it.Description,
			Quantity:    money.ParseAmount(it.Quantity),
			Rate:        money.ParseAmount(it.Rate),
			VATPercent:  money.ParseAmount(it.VATPercent),
			UnitType:    it.UnitType,
		})
	}
	return tpl, items
}

func toTemplateResponse(tpl *entity.Template) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		ID:                  tpl.ID,
		Name:                tpl.Name,
		CompanyName:         tpl.CompanyName,
		CompanyTagline:      tpl.CompanyTagline,
		CompanyLogo:         tpl.CompanyLogo,
		FromName:            tpl.FromName,
		FromAddress:         tpl.FromAddress,
		FromEmail:           tpl.FromEmail,
		FromPhone:           tpl.FromPhone,
		FromVAT:             tpl.FromVAT,
		Currency:            tpl.Currency,
		PaymentTerms:        tpl.PaymentTerms,
		PaymentInstructions: tpl.PaymentInstructions,
		InvoiceNotes:        tpl.InvoiceNotes,
		CreatedAt:           tpl.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toTemplateWithItemsResponse(tpl *entity.TemplateWithItems) *dto.TemplateWithItemsResponse {
	out := &dto.TemplateWithItemsResponse{
		TemplateResponse: *toTemplateResponse(&tpl.Template),
		Items:            make([]dto.TemplateItemResponse, 0, len(tpl.Items)),
	}
	for _, it := range tpl.Items {
		out.Items = append(out.Items, dto.TemplateItemResponse{
			ID:          it.ID,
			TemplateID:  it.TemplateID,
			Description: it.Description,
			Quantity:    it.Quantity.StringFixed(money.Scale),
			Rate:        it.Rate.StringFixed(money.Scale),
			VATPercent:  it.VATPercent.StringFixed(money.Scale),
			UnitType:    it.UnitType,
		})
	}
	return out
}

func toDraftResponse(d Draft) *dto.DraftResponse {
	subtotal, vatTotal, grandTotal := d.Totals()
	out := &dto.DraftResponse{
		InvoiceNumber:       d.InvoiceNumber,
		CompanyName:         d.CompanyName,
		CompanyTagline:      d.CompanyTagline,
		CompanyLogo:         d.CompanyLogo,
		FromName:            d.FromName,
		FromAddress:         d.FromAddress,
		FromEmail:           d.FromEmail,
		FromPhone:           d.FromPhone,
		FromVAT:             d.FromVAT,
		ToName:              d.ToName,
		ToAddress:           d.ToAddress,
		ToEmail:             d.ToEmail,
		ToPhone:             d.ToPhone,
		ToVAT:               d.ToVAT,
		InvoiceDate:         d.InvoiceDate,
		DueDate:             d.DueDate,
		Currency:            d.Currency,
		PaymentTerms:        d.PaymentTerms,
		PaymentInstructions: d.PaymentInstructions,
		InvoiceNotes:        d.InvoiceNotes,
		Items:               make([]dto.DraftItemResponse, 0, len(d.Items)),
		Subtotal:            subtotal.StringFixed(money.Scale),
		VATTotal:            vatTotal.StringFixed(money.Scale),
		GrandTotal:          grandTotal.StringFixed(money.Scale),
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, dto.DraftItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			VATPercent:  it.VATPercent,
			UnitType:    it.UnitType,
			Total:       it.Total,
		})
	}
	return out
}
