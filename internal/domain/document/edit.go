package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// Patch edición parcial de un borrador. nil = sin cambios.
type Patch struct {
	ClientID     *string
	Number       *string
	Currency     *entity.Currency
	Language     *entity.Language
	TemplateID   *entity.TemplateID
	IssueDate    *time.Time
	DueDate      *time.Time
	ClearDueDate bool
	Notes        *string
	Items        *[]entity.LineItem
	Payments     *[]entity.Payment
	TaxRate      *decimal.Decimal
	VATEnabled   *bool
}

// ApplyEdit aplica el patch solo si el documento está en draft; en cualquier otro
// estado devuelve ErrNotEditable sin tocar el documento.
func ApplyEdit(d entity.Document, p Patch, now time.Time) (entity.Document, error) {
	if d.Status != entity.StatusDraft {
		return d, fmt.Errorf("%w: estado %s", domain.ErrNotEditable, d.Status)
	}
	out := d.Clone()
	if p.ClientID != nil {
		out.ClientID = *p.ClientID
	}
	if p.Number != nil {
		out.Number = strings.TrimSpace(*p.Number)
	}
	if p.Currency != nil {
		out.Currency = *p.Currency
	}
	if p.Language != nil {
		out.Language = *p.Language
	}
	if p.TemplateID != nil {
		out.TemplateID = *p.TemplateID
	}
	if p.IssueDate != nil {
		out.IssueDate = *p.IssueDate
	}
	if p.ClearDueDate {
		out.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		out.DueDate = &due
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Items != nil {
		out.Items = append([]entity.LineItem(nil), (*p.Items)...)
	}
	if p.Payments != nil {
		out.Payments = append([]entity.Payment(nil), (*p.Payments)...)
	}
	if p.TaxRate != nil {
		out.TaxRate = *p.TaxRate
	}
	if p.VATEnabled != nil {
		out.VATEnabled = *p.VATEnabled
	}
	if err := Validate(out); err != nil {
		return d, err
	}
	out.UpdatedAt = now
	return out, nil
}
