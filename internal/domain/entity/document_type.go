package entity

// DocumentType tipos de documento financiero soportados.
type DocumentType string

const (
	TypeInvoice         DocumentType = "invoice"
	TypeReceipt         DocumentType = "receipt"
	TypeInvoiceReceipt  DocumentType = "invoice_receipt"
	TypeCreditNote      DocumentType = "credit_note"
	TypePriceOffer      DocumentType = "price_offer"
	TypeProformaInvoice DocumentType = "proforma_invoice"
	TypeDonationReceipt DocumentType = "donation_receipt"
)

// DocumentTypes lista cerrada, en el orden en que se muestran.
var DocumentTypes = []DocumentType{
	TypeInvoice, TypeReceipt, TypeInvoiceReceipt, TypeCreditNote,
	TypePriceOffer, TypeProformaInvoice, TypeDonationReceipt,
}

func (t DocumentType) Valid() bool {
	switch t {
	case TypeInvoice, TypeReceipt, TypeInvoiceReceipt, TypeCreditNote,
		TypePriceOffer, TypeProformaInvoice, TypeDonationReceipt:
		return true
	}
	return false
}

// IsReceiptLike: documentos que nacen ya pagados.
func (t DocumentType) IsReceiptLike() bool {
	return t == TypeReceipt || t == TypeInvoiceReceipt || t == TypeDonationReceipt
}

// ShowsBankDetails: tipos que imprimen los datos bancarios en el pie.
func (t DocumentType) ShowsBankDetails() bool {
	return t == TypeInvoice || t == TypeProformaInvoice || t == TypeInvoiceReceipt
}

// Status estado del ciclo de vida del documento.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
	StatusVoided Status = "voided"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid, StatusVoided:
		return true
	}
	return false
}

// Currency monedas soportadas (montos siempre en unidades menores).
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyILS Currency = "ILS"
)

func (c Currency) Valid() bool { return c == CurrencyUSD || c == CurrencyILS }

// Language idioma del documento; define textos, fuente y dirección.
type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

func (l Language) Valid() bool { return l == LanguageArabic || l == LanguageEnglish }

// TemplateID variantes de diseño del PDF.
type TemplateID string

const (
	TemplateClassic TemplateID = "classic"
	TemplateModern  TemplateID = "modern"
	TemplateMinimal TemplateID = "minimal"
)

func (t TemplateID) Valid() bool {
	return t == TemplateClassic || t == TemplateModern || t == TemplateMinimal
}
