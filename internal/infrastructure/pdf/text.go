package pdf

import (
	"fmt"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// Labels textos literales del documento en un idioma.
type Labels struct {
	Invoice         string
	Receipt         string
	InvoiceReceipt  string
	CreditNote      string
	PriceOffer      string
	ProformaInvoice string
	DonationReceipt string

	Number      string
	IssueDate   string
	DueDate     string
	RefDocument string
	BillTo      string
	TaxID       string
	Phone       string
	Email       string
	Website     string

	Item      string
	Quantity  string
	UnitRate  string
	LineTotal string

	Subtotal string
	Discount string
	Tax      string
	Total    string

	Notes        string
	Payments     string
	Method       string
	PaymentDate  string
	Reference    string
	Amount       string
	Cash         string
	BankTransfer string
	Cheque       string
	CreditCard   string
	OtherMethod  string

	BankDetails string
	BankName    string
	BankBranch  string
	BankAccount string
	IBAN        string
	SWIFT       string

	Original      string
	CertifiedCopy string

	// Pie de página: "Page {current} of {total}".
	PageWord string
	PageOf   string
}

// texts selecciona la tabla de textos. Un idioma desconocido es un error de entrada.
func texts(lang entity.Language) (Labels, error) {
	switch lang {
	case entity.LanguageEnglish:
		return english, nil
	case entity.LanguageArabic:
		return arabic, nil
	default:
		return Labels{}, domain.Invalid("language", fmt.Sprintf("idioma no soportado %q", lang))
	}
}

// TypeName nombre visible del tipo de documento.
func (l Labels) TypeName(t entity.DocumentType) string {
	switch t {
	case entity.TypeInvoice:
		return l.Invoice
	case entity.TypeReceipt:
		return l.Receipt
	case entity.TypeInvoiceReceipt:
		return l.InvoiceReceipt
	case entity.TypeCreditNote:
		return l.CreditNote
	case entity.TypePriceOffer:
		return l.PriceOffer
	case entity.TypeProformaInvoice:
		return l.ProformaInvoice
	case entity.TypeDonationReceipt:
		return l.DonationReceipt
	default:
		return string(t)
	}
}

// MethodName nombre visible del método de pago.
func (l Labels) MethodName(method string) string {
	switch method {
	case entity.PaymentCash:
		return l.Cash
	case entity.PaymentBankTransfer:
		return l.BankTransfer
	case entity.PaymentCheque:
		return l.Cheque
	case entity.PaymentCreditCard:
		return l.CreditCard
	default:
		return l.OtherMethod
	}
}

var english = Labels{
	Invoice:         "Tax Invoice",
	Receipt:         "Receipt",
	InvoiceReceipt:  "Tax Invoice / Receipt",
	CreditNote:      "Credit Note",
	PriceOffer:      "Price Offer",
	ProformaInvoice: "Proforma Invoice",
	DonationReceipt: "Donation Receipt",

	Number:      "No.",
	IssueDate:   "Date",
	DueDate:     "Due date",
	RefDocument: "Refers to",
	BillTo:      "Bill to",
	TaxID:       "Tax ID",
	Phone:       "Phone",
	Email:       "Email",
	Website:     "Website",

	Item:      "Item",
	Quantity:  "Qty",
	UnitRate:  "Unit price",
	LineTotal: "Amount",

	Subtotal: "Subtotal",
	Discount: "Discount",
	Tax:      "Tax",
	Total:    "Total",

	Notes:        "Notes",
	Payments:     "Payments",
	Method:       "Method",
	PaymentDate:  "Date",
	Reference:    "Reference",
	Amount:       "Amount",
	Cash:         "Cash",
	BankTransfer: "Bank transfer",
	Cheque:       "Cheque",
	CreditCard:   "Credit card",
	OtherMethod:  "Other",

	BankDetails: "Bank details",
	BankName:    "Bank",
	BankBranch:  "Branch",
	BankAccount: "Account",
	IBAN:        "IBAN",
	SWIFT:       "SWIFT",

	Original:      "Original",
	CertifiedCopy: "Certified Copy",

	PageWord: "Page",
	PageOf:   "of",
}

var arabic = Labels{
	Invoice:         "فاتورة ضريبية",
	Receipt:         "إيصال",
	InvoiceReceipt:  "فاتورة ضريبية / إيصال",
	CreditNote:      "إشعار دائن",
	PriceOffer:      "عرض سعر",
	ProformaInvoice: "فاتورة مبدئية",
	DonationReceipt: "إيصال تبرع",

	Number:      "رقم",
	IssueDate:   "التاريخ",
	DueDate:     "تاريخ الاستحقاق",
	RefDocument: "مرجع",
	BillTo:      "العميل",
	TaxID:       "الرقم الضريبي",
	Phone:       "الهاتف",
	Email:       "البريد الإلكتروني",
	Website:     "الموقع",

	Item:      "البند",
	Quantity:  "الكمية",
	UnitRate:  "سعر الوحدة",
	LineTotal: "المبلغ",

	Subtotal: "المجموع الفرعي",
	Discount: "الخصم",
	Tax:      "الضريبة",
	Total:    "الإجمالي",

	Notes:        "ملاحظات",
	Payments:     "الدفعات",
	Method:       "طريقة الدفع",
	PaymentDate:  "التاريخ",
	Reference:    "المرجع",
	Amount:       "المبلغ",
	Cash:         "نقداً",
	BankTransfer: "تحويل بنكي",
	Cheque:       "شيك",
	CreditCard:   "بطاقة ائتمان",
	OtherMethod:  "أخرى",

	BankDetails: "تفاصيل البنك",
	BankName:    "البنك",
	BankBranch:  "الفرع",
	BankAccount: "رقم الحساب",
	IBAN:        "IBAN",
	SWIFT:       "SWIFT",

	Original:      "نسخة أصلية",
	CertifiedCopy: "نسخة طبق الأصل",

	PageWord: "صفحة",
	PageOf:   "من",
}
