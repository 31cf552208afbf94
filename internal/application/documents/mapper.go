package documents

import (
	"fmt"
	"time"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/money"
)

const dateLayout = "2006-01-02"

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.Invalid(field, fmt.Sprintf("fecha inválida %q, se espera AAAA-MM-DD", s))
	}
	return t, nil
}

func toLineItems(in []dto.LineItemRequest) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		items = append(items, entity.LineItem{
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitRateMinor: it.UnitRateMinor,
			DiscountMinor: it.DiscountMinor,
			TaxExempt:     it.TaxExempt,
		})
	}
	return items
}

func toPayments(in []dto.PaymentRequest, fallback time.Time) ([]entity.Payment, error) {
	payments := make([]entity.Payment, 0, len(in))
	for i, p := range in {
		date := fallback
		if p.Date != "" {
			d, err := parseDate(fmt.Sprintf("payments[%d].date", i), p.Date)
			if err != nil {
				return nil, err
			}
			date = d
		}
		payments = append(payments, entity.Payment{
			Method:      p.Method,
			AmountMinor: p.AmountMinor,
			Date:        date,
			Reference:   p.Reference,
		})
	}
	return payments, nil
}

// toResponse mapea la entidad y calcula los totales al vuelo.
func toResponse(d *entity.Document) *dto.DocumentResponse {
	totals := document.Totals(*d)
	out := &dto.DocumentResponse{
		ID:            d.ID,
		BusinessID:    d.BusinessID,
		ClientID:      d.ClientID,
		Number:        d.Number,
		Type:          string(d.Type),
		Status:        string(d.Status),
		Currency:      string(d.Currency),
		Language:      string(d.Language),
		TemplateID:    string(d.TemplateID),
		IssueDate:     d.IssueDate.Format(dateLayout),
		Notes:         d.Notes,
		Items:         make([]dto.LineItemResponse, 0, len(d.Items)),
		Payments:      make([]dto.PaymentResponse, 0, len(d.Payments)),
		TaxRate:       d.TaxRate,
		VATEnabled:    d.VATEnabled,
		RefDocumentID: d.RefDocumentID,
		PDFVersion:    d.PDFVersion,
		Locked:        d.Locked,
		LockedPDFPath: d.LockedPDFPath,
		Totals: dto.TotalsResponse{
			SubtotalMinor: totals.SubtotalMinor,
			DiscountMinor: totals.DiscountMinor,
			TaxMinor:      totals.TaxMinor,
			TotalMinor:    totals.TotalMinor,
			Subtotal:      money.FormatMinorAmount(totals.SubtotalMinor, d.Currency),
			Discount:      money.FormatMinorAmount(totals.DiscountMinor, d.Currency),
			Tax:           money.FormatMinorAmount(totals.TaxMinor, d.Currency),
			Total:         money.FormatMinorAmount(totals.TotalMinor, d.Currency),
		},
		IssuedAt:  d.IssuedAt,
		PaidAt:    d.PaidAt,
		VoidedAt:  d.VoidedAt,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.DueDate != nil {
		out.DueDate = d.DueDate.Format(dateLayout)
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, dto.LineItemResponse{
			ID:            it.ID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitRateMinor: it.UnitRateMinor,
			DiscountMinor: it.DiscountMinor,
			TaxExempt:     it.TaxExempt,
			TotalMinor:    money.CalculateItemTotal(it),
		})
	}
	for _, p := range d.Payments {
		out.Payments = append(out.Payments, dto.PaymentResponse{
			ID:          p.ID,
			Method:      p.Method,
			AmountMinor: p.AmountMinor,
			Date:        p.Date.Format(dateLayout),
			Reference:   p.Reference,
		})
	}
	return out
}
