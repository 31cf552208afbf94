package pdf

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Documentos-api/internal/application/issuance"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/money"
)

const viewDateLayout = "02/01/2006"

// field par etiqueta/valor de un bloque de datos.
type field struct {
	Label string
	Value string
}

type partyBlock struct {
	Name   string
	Lines  []string
	Fields []field
}

type itemRow struct {
	Description string
	Quantity    string
	UnitRate    string
	LineTotal   string
}

type summaryLine struct {
	Label    string
	Value    string
	Emphasis bool
}

type paymentRow struct {
	Method    string
	Date      string
	Reference string
	Amount    string
}

// documentView todo lo que se dibuja, ya localizado y formateado.
type documentView struct {
	Dir    direction
	Style  Style
	Labels Labels

	Title     string
	Number    string
	Info      []field // número, fechas, referencia
	Business  partyBlock
	Logo      []byte
	Accent    string
	Client    *partyBlock
	Items     []itemRow
	Summary   []summaryLine
	Notes     string
	Payments  []paymentRow
	Bank      []field
	BankNotes string
	Watermark string
}

// compose arma la vista del documento. No dibuja ni hace I/O.
// Solo falla si falta o es desconocido un campo de identidad.
func compose(in issuance.RenderInput) (documentView, error) {
	d := in.Document
	if strings.TrimSpace(d.Number) == "" {
		return documentView{}, domain.Invalid("number", "requerido para renderizar")
	}
	if !d.Currency.Valid() {
		return documentView{}, domain.Invalid("currency", fmt.Sprintf("moneda no soportada %q", d.Currency))
	}
	labels, err := texts(in.Language)
	if err != nil {
		return documentView{}, err
	}
	style, err := styleFor(in.TemplateID)
	if err != nil {
		return documentView{}, err
	}

	v := documentView{
		Dir:    directionFor(in.Language),
		Style:  style,
		Labels: labels,
		Title:  labels.TypeName(d.Type),
		Number: d.Number,
		Logo:   in.Profile.Logo,
		Accent: in.Profile.PrimaryColor,
		Notes:  strings.TrimSpace(d.Notes),
	}

	v.Info = []field{
		{labels.Number, d.Number},
		{labels.IssueDate, d.IssueDate.Format(viewDateLayout)},
	}
	if d.DueDate != nil {
		v.Info = append(v.Info, field{labels.DueDate, d.DueDate.Format(viewDateLayout)})
	}
	if d.Type == entity.TypeCreditNote && d.RefDocumentID != "" {
		v.Info = append(v.Info, field{labels.RefDocument, d.RefDocumentID})
	}

	v.Business = businessBlock(in.Profile, in.Language, labels)
	if in.Client != nil && strings.TrimSpace(in.Client.Name) != "" {
		v.Client = clientBlock(*in.Client, labels)
	}

	for _, it := range d.Items {
		v.Items = append(v.Items, itemRow{
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			UnitRate:    money.FormatMinorAmount(it.UnitRateMinor, d.Currency),
			// Importe bruto; el descuento solo aparece en el resumen.
			LineTotal: money.FormatMinorAmount(money.GrossMinor(it), d.Currency),
		})
	}

	v.Summary = summary(document.Totals(d), d, labels)

	for _, p := range d.Payments {
		v.Payments = append(v.Payments, paymentRow{
			Method:    labels.MethodName(p.Method),
			Date:      p.Date.Format(viewDateLayout),
			Reference: p.Reference,
			Amount:    money.FormatMinorAmount(p.AmountMinor, d.Currency),
		})
	}

	if d.Type.ShowsBankDetails() && in.Profile.HasBankDetails() {
		v.Bank = nonEmptyFields(
			field{labels.BankName, in.Profile.BankName},
			field{labels.BankBranch, in.Profile.BankBranch},
			field{labels.BankAccount, in.Profile.BankAccount},
			field{labels.IBAN, in.Profile.IBAN},
			field{labels.SWIFT, in.Profile.SWIFT},
		)
		v.BankNotes = strings.TrimSpace(in.Profile.PaymentNotes)
	}

	if in.IsOriginal {
		v.Watermark = labels.Original
	} else {
		v.Watermark = labels.CertifiedCopy
	}
	return v, nil
}

// summary: subtotal siempre; descuento solo si > 0 (negado); impuesto solo si > 0 con su
// porcentaje entero; total siempre, resaltado.
func summary(t entity.DocumentTotals, d entity.Document, l Labels) []summaryLine {
	lines := []summaryLine{{Label: l.Subtotal, Value: money.FormatMinorAmount(t.SubtotalMinor, d.Currency)}}
	if t.DiscountMinor > 0 {
		lines = append(lines, summaryLine{Label: l.Discount, Value: money.FormatMinorAmount(-t.DiscountMinor, d.Currency)})
	}
	if t.TaxMinor > 0 {
		label := fmt.Sprintf("%s (%d%%)", l.Tax, money.TaxPercent(d.TaxRate))
		lines = append(lines, summaryLine{Label: label, Value: money.FormatMinorAmount(t.TaxMinor, d.Currency)})
	}
	return append(lines, summaryLine{Label: l.Total, Value: money.FormatMinorAmount(t.TotalMinor, d.Currency), Emphasis: true})
}

// localized valor en el idioma pedido; si está vacío, el del otro idioma; si no, vacío.
func localized(lang entity.Language, ar, en string) string {
	ar, en = strings.TrimSpace(ar), strings.TrimSpace(en)
	if lang == entity.LanguageArabic {
		if ar != "" {
			return ar
		}
		return en
	}
	if en != "" {
		return en
	}
	return ar
}

func businessBlock(p entity.BusinessProfile, lang entity.Language, l Labels) partyBlock {
	b := partyBlock{Name: localized(lang, p.NameAr, p.NameEn)}
	if b.Name == "" {
		b.Name = strings.TrimSpace(p.Name)
	}
	address := joinNonEmpty(", ", localized(lang, p.AddressAr, p.AddressEn), localized(lang, p.CityAr, p.CityEn))
	if address != "" {
		b.Lines = append(b.Lines, address)
	}
	b.Fields = nonEmptyFields(
		field{l.TaxID, p.TaxID},
		field{l.Phone, p.Phone},
		field{l.Email, p.Email},
		field{l.Website, p.Website},
	)
	return b
}

func clientBlock(c entity.Client, l Labels) *partyBlock {
	return &partyBlock{
		Name: strings.TrimSpace(c.Name),
		Fields: nonEmptyFields(
			field{l.TaxID, c.TaxID},
			field{l.Phone, c.Phone},
			field{l.Email, c.Email},
		),
	}
}

func nonEmptyFields(fs ...field) []field {
	out := make([]field, 0, len(fs))
	for _, f := range fs {
		if f.Value = strings.TrimSpace(f.Value); f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
