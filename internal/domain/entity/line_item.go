package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem representa una línea del documento. Montos en unidades menores (centavos/agorot).
// No tiene ciclo de vida propio: pertenece al Document que la contiene.
type LineItem struct {
	ID            string
	Description   string
	Quantity      decimal.Decimal
	UnitRateMinor int64
	DiscountMinor int64
	TaxExempt     bool
}

// Métodos de pago aceptados en recibos.
const (
	PaymentCash         = "cash"
	PaymentBankTransfer = "bank_transfer"
	PaymentCheque       = "cheque"
	PaymentCreditCard   = "credit_card"
	PaymentOther        = "other"
)

// Payment pago registrado en un documento tipo recibo.
type Payment struct {
	ID          string
	Method      string
	AmountMinor int64
	Date        time.Time
	Reference   string
}

// DocumentTotals agregado derivado; se recalcula en cada edición y nunca se persiste.
type DocumentTotals struct {
	SubtotalMinor int64 `json:"subtotal_minor"`
	DiscountMinor int64 `json:"discount_minor"`
	TaxMinor      int64 `json:"tax_minor"`
	TotalMinor    int64 `json:"total_minor"`
}
