package entity

import "time"

// BusinessProfile datos del emisor que aparecen en el documento (solo lectura para el motor).
// Los campos *Ar / *En son las variantes localizadas; ver pdf.localized para la cadena de fallback.
type BusinessProfile struct {
	ID           string
	Name         string
	NameAr       string
	NameEn       string
	AddressAr    string
	AddressEn    string
	CityAr       string
	CityEn       string
	Email        string
	Phone        string
	Website      string
	TaxID        string
	Logo         []byte // PNG
	PrimaryColor string // #rrggbb
	BankName     string
	BankBranch   string
	BankAccount  string
	IBAN         string
	SWIFT        string
	PaymentNotes string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasBankDetails indica si hay al menos un dato bancario cargado.
func (p BusinessProfile) HasBankDetails() bool {
	return p.BankName != "" || p.BankBranch != "" || p.BankAccount != "" || p.IBAN != "" || p.SWIFT != ""
}
