package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document es la entidad central: factura, recibo, nota crédito, cotización, etc.
// Solo es mutable en estado draft; una vez emitido nunca se borra físicamente.
type Document struct {
	ID            string
	BusinessID    string
	ClientID      string // opcional
	Number        string
	Type          DocumentType
	Status        Status
	Currency      Currency
	Language      Language
	TemplateID    TemplateID
	IssueDate     time.Time
	DueDate       *time.Time
	Notes         string
	Items         []LineItem
	Payments      []Payment
	TaxRate       decimal.Decimal // fracción en [0,1], ej. 0.18
	VATEnabled    bool
	RefDocumentID string // obligatorio para credit_note
	PDFVersion    int    // exportaciones exitosas
	Locked        bool
	LockedPDFPath string
	IssuedAt      *time.Time
	PaidAt        *time.Time
	VoidedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Clone devuelve una copia independiente (slices incluidos) para trabajar con snapshots.
func (d Document) Clone() Document {
	out := d
	if d.Items != nil {
		out.Items = append([]LineItem(nil), d.Items...)
	}
	if d.Payments != nil {
		out.Payments = append([]Payment(nil), d.Payments...)
	}
	return out
}
