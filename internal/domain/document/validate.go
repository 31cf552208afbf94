package document

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

var one = decimal.NewFromInt(1)

// Validate revisa campos de identidad y las invariantes de cada línea.
// No exige que el descuento sea menor que el bruto: eso se valida al emitir.
func Validate(d entity.Document) error {
	switch {
	case d.BusinessID == "":
		return domain.Invalid("business_id", "requerido")
	case d.Number == "":
		return domain.Invalid("number", "requerido")
	case !d.Type.Valid():
		return domain.Invalid("type", fmt.Sprintf("tipo desconocido %q", d.Type))
	case !d.Currency.Valid():
		return domain.Invalid("currency", fmt.Sprintf("moneda desconocida %q", d.Currency))
	case !d.Language.Valid():
		return domain.Invalid("language", fmt.Sprintf("idioma desconocido %q", d.Language))
	case !d.TemplateID.Valid():
		return domain.Invalid("template_id", fmt.Sprintf("plantilla desconocida %q", d.TemplateID))
	case d.TaxRate.IsNegative() || d.TaxRate.GreaterThan(one):
		return domain.Invalid("tax_rate", "debe estar entre 0 y 1")
	}
	if d.DueDate != nil && d.DueDate.Before(d.IssueDate.Truncate(24*time.Hour)) {
		return domain.Invalid("due_date", "anterior a la fecha de emisión")
	}
	for i, it := range d.Items {
		if it.Quantity.IsNegative() {
			return domain.Invalid(fmt.Sprintf("items[%d].quantity", i), "no puede ser negativa")
		}
		if it.UnitRateMinor < 0 {
			return domain.Invalid(fmt.Sprintf("items[%d].unit_rate_minor", i), "no puede ser negativo")
		}
		if it.DiscountMinor < 0 {
			return domain.Invalid(fmt.Sprintf("items[%d].discount_minor", i), "no puede ser negativo")
		}
	}
	for i, p := range d.Payments {
		if p.AmountMinor < 0 {
			return domain.Invalid(fmt.Sprintf("payments[%d].amount_minor", i), "no puede ser negativo")
		}
		if !validPaymentMethod(p.Method) {
			return domain.Invalid(fmt.Sprintf("payments[%d].method", i), fmt.Sprintf("método desconocido %q", p.Method))
		}
	}
	return nil
}

func validPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCash, entity.PaymentBankTransfer, entity.PaymentCheque,
		entity.PaymentCreditCard, entity.PaymentOther:
		return true
	}
	return false
}
