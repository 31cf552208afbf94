package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// NewParams datos de entrada para crear un documento.
type NewParams struct {
	ID            string
	BusinessID    string
	ClientID      string
	Number        string
	Type          entity.DocumentType
	Currency      entity.Currency
	Language      entity.Language
	TemplateID    entity.TemplateID
	IssueDate     time.Time
	DueDate       *time.Time
	Notes         string
	Items         []entity.LineItem
	Payments      []entity.Payment
	TaxRate       decimal.Decimal
	VATEnabled    bool
	RefDocumentID string
}

// New construye un documento nuevo con el estado inicial de su tipo.
// ref es el documento referenciado (solo credit_note); nil si no existe.
func New(p NewParams, ref *entity.Document, now time.Time) (entity.Document, error) {
	d := entity.Document{
		ID:            p.ID,
		BusinessID:    p.BusinessID,
		ClientID:      p.ClientID,
		Number:        strings.TrimSpace(p.Number),
		Type:          p.Type,
		Currency:      p.Currency,
		Language:      p.Language,
		TemplateID:    p.TemplateID,
		IssueDate:     p.IssueDate,
		DueDate:       p.DueDate,
		Notes:         p.Notes,
		Items:         append([]entity.LineItem(nil), p.Items...),
		Payments:      append([]entity.Payment(nil), p.Payments...),
		TaxRate:       p.TaxRate,
		VATEnabled:    p.VATEnabled,
		RefDocumentID: strings.TrimSpace(p.RefDocumentID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if d.IssueDate.IsZero() {
		d.IssueDate = now
	}
	if err := Validate(d); err != nil {
		return entity.Document{}, err
	}
	if err := checkReference(d, ref); err != nil {
		return entity.Document{}, err
	}

	d.Status = InitialStatus(d.Type)
	switch d.Status {
	case entity.StatusPaid:
		d.IssuedAt = &now
		d.PaidAt = &now
	case entity.StatusIssued:
		d.IssuedAt = &now
	}
	return d, nil
}

// checkReference: una nota crédito debe apuntar a una factura (o factura-recibo) existente,
// del mismo negocio y no anulada.
func checkReference(d entity.Document, ref *entity.Document) error {
	if d.Type != entity.TypeCreditNote {
		return nil
	}
	if d.RefDocumentID == "" {
		return domain.Invalid("ref_document_id", "requerido para nota crédito")
	}
	if ref == nil || ref.ID != d.RefDocumentID {
		return fmt.Errorf("%w: %s no existe", domain.ErrInvalidReference, d.RefDocumentID)
	}
	if ref.BusinessID != d.BusinessID {
		return fmt.Errorf("%w: pertenece a otro negocio", domain.ErrInvalidReference)
	}
	if ref.Type != entity.TypeInvoice && ref.Type != entity.TypeInvoiceReceipt {
		return fmt.Errorf("%w: tipo %s no admite nota crédito", domain.ErrInvalidReference, ref.Type)
	}
	if ref.Status == entity.StatusVoided {
		return fmt.Errorf("%w: el documento está anulado", domain.ErrInvalidReference)
	}
	return nil
}
