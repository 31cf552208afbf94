package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea del documento. Montos en unidades menores.
type LineItemRequest struct {
	Description   string          `json:"description" validate:"max=500"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitRateMinor int64           `json:"unit_rate_minor" validate:"min=0"`
	DiscountMinor int64           `json:"discount_minor" validate:"min=0"`
	TaxExempt     bool            `json:"tax_exempt"`
}

// PaymentRequest pago registrado en recibos.
type PaymentRequest struct {
	Method      string `json:"method" validate:"required,oneof=cash bank_transfer cheque credit_card other"`
	AmountMinor int64  `json:"amount_minor" validate:"min=0"`
	Date        string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Reference   string `json:"reference,omitempty" validate:"max=120"`
}

// CreateDocumentRequest body para POST /api/documents.
// Number vacío: se asigna el siguiente consecutivo del tipo (INV-00001, REC-00001, ...).
type CreateDocumentRequest struct {
	Type          string            `json:"type" validate:"required,oneof=invoice receipt invoice_receipt credit_note price_offer proforma_invoice donation_receipt"`
	ClientID      string            `json:"client_id,omitempty"`
	Number        string            `json:"number,omitempty" validate:"max=64"`
	Currency      string            `json:"currency" validate:"required,oneof=USD ILS"`
	Language      string            `json:"language,omitempty" validate:"omitempty,oneof=ar en"`
	TemplateID    string            `json:"template_id,omitempty" validate:"omitempty,oneof=classic modern minimal"`
	IssueDate     string            `json:"issue_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string            `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string            `json:"notes,omitempty" validate:"max=2000"`
	Items         []LineItemRequest `json:"items" validate:"dive"`
	Payments      []PaymentRequest  `json:"payments,omitempty" validate:"dive"`
	TaxRate       decimal.Decimal   `json:"tax_rate"`
	VATEnabled    bool              `json:"vat_enabled"`
	RefDocumentID string            `json:"ref_document_id,omitempty"`
}

// UpdateDocumentRequest body para PUT /api/documents/:id. Campos ausentes no cambian.
type UpdateDocumentRequest struct {
	ClientID     *string            `json:"client_id,omitempty"`
	Number       *string            `json:"number,omitempty" validate:"omitempty,min=1,max=64"`
	Currency     *string            `json:"currency,omitempty" validate:"omitempty,oneof=USD ILS"`
	Language     *string            `json:"language,omitempty" validate:"omitempty,oneof=ar en"`
	TemplateID   *string            `json:"template_id,omitempty" validate:"omitempty,oneof=classic modern minimal"`
	IssueDate    *string            `json:"issue_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate      *string            `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClearDueDate bool               `json:"clear_due_date,omitempty"`
	Notes        *string            `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Items        *[]LineItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
	Payments     *[]PaymentRequest  `json:"payments,omitempty" validate:"omitempty,dive"`
	TaxRate      *decimal.Decimal   `json:"tax_rate,omitempty"`
	VATEnabled   *bool              `json:"vat_enabled,omitempty"`
}

// ListDocumentsRequest query de GET /api/documents.
type ListDocumentsRequest struct {
	PageRequest
	Type   string `query:"type" validate:"omitempty,oneof=invoice receipt invoice_receipt credit_note price_offer proforma_invoice donation_receipt"`
	Status string `query:"status" validate:"omitempty,oneof=draft issued paid voided"`
}

// LineItemResponse línea con su total calculado.
type LineItemResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitRateMinor int64           `json:"unit_rate_minor"`
	DiscountMinor int64           `json:"discount_minor"`
	TaxExempt     bool            `json:"tax_exempt"`
	TotalMinor    int64           `json:"total_minor"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID          string `json:"id"`
	Method      string `json:"method"`
	AmountMinor int64  `json:"amount_minor"`
	Date        string `json:"date"`
	Reference   string `json:"reference,omitempty"`
}

// TotalsResponse totales en unidades menores y formateados con la moneda del documento.
type TotalsResponse struct {
	SubtotalMinor int64  `json:"subtotal_minor"`
	DiscountMinor int64  `json:"discount_minor"`
	TaxMinor      int64  `json:"tax_minor"`
	TotalMinor    int64  `json:"total_minor"`
	Subtotal      string `json:"subtotal"`
	Discount      string `json:"discount"`
	Tax           string `json:"tax"`
	Total         string `json:"total"`
}

// DocumentResponse documento para GET /api/documents/:id y respuestas de mutación.
type DocumentResponse struct {
	ID            string             `json:"id"`
	BusinessID    string             `json:"business_id"`
	ClientID      string             `json:"client_id,omitempty"`
	Number        string             `json:"number"`
	Type          string             `json:"type"`
	Status        string             `json:"status"`
	Currency      string             `json:"currency"`
	Language      string             `json:"language"`
	TemplateID    string             `json:"template_id"`
	IssueDate     string             `json:"issue_date"`
	DueDate       string             `json:"due_date,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Items         []LineItemResponse `json:"items"`
	Payments      []PaymentResponse  `json:"payments"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	VATEnabled    bool               `json:"vat_enabled"`
	RefDocumentID string             `json:"ref_document_id,omitempty"`
	PDFVersion    int                `json:"pdf_version"`
	Locked        bool               `json:"locked"`
	LockedPDFPath string             `json:"locked_pdf_path,omitempty"`
	Totals        TotalsResponse     `json:"totals"`
	IssuedAt      *time.Time         `json:"issued_at,omitempty"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	VoidedAt      *time.Time         `json:"voided_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// DocumentListResponse página de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

