package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/internal/application/issuance"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

func renderInput() issuance.RenderInput {
	return issuance.RenderInput{
		Document: entity.Document{
			ID:         "doc-1",
			BusinessID: "biz-1",
			Number:     "INV-00001",
			Type:       entity.TypeInvoice,
			Status:     entity.StatusIssued,
			Currency:   entity.CurrencyUSD,
			Language:   entity.LanguageEnglish,
			TemplateID: entity.TemplateClassic,
			IssueDate:  time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			TaxRate:    decimal.RequireFromString("0.18"),
			VATEnabled: true,
			Items: []entity.LineItem{
				{Description: "Design", Quantity: decimal.NewFromInt(2), UnitRateMinor: 5000, DiscountMinor: 1000},
				{Description: "Book", Quantity: decimal.NewFromInt(1), UnitRateMinor: 5000, TaxExempt: true},
			},
		},
		Profile: entity.BusinessProfile{
			Name:      "Acme",
			NameEn:    "Acme Ltd",
			AddressAr: "شارع الملك",
			CityEn:    "Haifa",
			Phone:     "+972 4 000 0000",
		},
		TemplateID: entity.TemplateClassic,
		Language:   entity.LanguageEnglish,
		IsOriginal: true,
	}
}

func TestCompose_ResumenYLineas(t *testing.T) {
	v, err := compose(renderInput())
	require.NoError(t, err)

	assert.Equal(t, "Tax Invoice", v.Title)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "$100.00", v.Items[0].LineTotal, "importe bruto, sin descuento")
	assert.Equal(t, "$50.00", v.Items[0].UnitRate)
	assert.Equal(t, "2", v.Items[0].Quantity)

	require.Len(t, v.Summary, 4)
	assert.Equal(t, summaryLine{Label: "Subtotal", Value: "$150.00"}, v.Summary[0])
	assert.Equal(t, summaryLine{Label: "Discount", Value: "-$10.00"}, v.Summary[1])
	assert.Equal(t, summaryLine{Label: "Tax (18%)", Value: "$16.20"}, v.Summary[2])
	assert.Equal(t, summaryLine{Label: "Total", Value: "$156.20", Emphasis: true}, v.Summary[3])
	assert.Equal(t, "Original", v.Watermark)
}

func TestCompose_SinDescuentoNiImpuesto(t *testing.T) {
	in := renderInput()
	in.Document.VATEnabled = false
	in.Document.Items[0].DiscountMinor = 0

	v, err := compose(in)
	require.NoError(t, err)
	require.Len(t, v.Summary, 2)
	assert.Equal(t, "Subtotal", v.Summary[0].Label)
	assert.True(t, v.Summary[1].Emphasis)
}

func TestCompose_CopiaCertificada(t *testing.T) {
	in := renderInput()
	in.IsOriginal = false
	in.Document.Locked = true
	v, err := compose(in)
	require.NoError(t, err)
	assert.Equal(t, "Certified Copy", v.Watermark)
}

func TestCompose_CamposLocalizadosConFallback(t *testing.T) {
	in := renderInput()
	v, err := compose(in)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", v.Business.Name)
	assert.Equal(t, []string{"شارع الملك, Haifa"}, v.Business.Lines)

	in.Language = entity.LanguageArabic
	v, err = compose(in)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", v.Business.Name, "sin nombre árabe se usa el inglés")
	assert.True(t, v.Dir.RTL)
	assert.Equal(t, "فاتورة ضريبية", v.Title)

	in.Profile.NameEn = ""
	v, err = compose(in)
	require.NoError(t, err)
	assert.Equal(t, "Acme", v.Business.Name)
}

func TestLocalized(t *testing.T) {
	assert.Equal(t, "عربي", localized(entity.LanguageArabic, "عربي", "English"))
	assert.Equal(t, "English", localized(entity.LanguageArabic, " ", "English"))
	assert.Equal(t, "عربي", localized(entity.LanguageEnglish, "عربي", ""))
	assert.Equal(t, "", localized(entity.LanguageEnglish, "", ""))
}

func TestCompose_DatosBancariosSegunTipo(t *testing.T) {
	in := renderInput()
	in.Profile.BankName = "Bank Leumi"
	in.Profile.IBAN = "IL62 0108 0000 0009 9999 999"

	v, err := compose(in)
	require.NoError(t, err)
	assert.Equal(t, []field{{"Bank", "Bank Leumi"}, {"IBAN", "IL62 0108 0000 0009 9999 999"}}, v.Bank)

	in.Document.Type = entity.TypeReceipt
	v, err = compose(in)
	require.NoError(t, err)
	assert.Empty(t, v.Bank)

	in.Document.Type = entity.TypeProformaInvoice
	in.Profile.BankName, in.Profile.IBAN = "", ""
	v, err = compose(in)
	require.NoError(t, err)
	assert.Empty(t, v.Bank, "sin datos bancarios no hay bloque")
}

func TestCompose_BloquesOpcionales(t *testing.T) {
	in := renderInput()
	v, err := compose(in)
	require.NoError(t, err)
	assert.Nil(t, v.Client)
	assert.Empty(t, v.Notes)
	assert.Len(t, v.Info, 2, "sin fecha de vencimiento")

	due := in.Document.IssueDate.AddDate(0, 0, 30)
	in.Document.DueDate = &due
	in.Document.Notes = "  Gracias  "
	in.Client = &entity.Client{Name: "Cliente", Email: "c@example.com"}
	in.Document.Payments = []entity.Payment{{Method: entity.PaymentCheque, AmountMinor: 1000, Date: due}}

	v, err = compose(in)
	require.NoError(t, err)
	require.NotNil(t, v.Client)
	assert.Equal(t, []field{{"Email", "c@example.com"}}, v.Client.Fields)
	assert.Equal(t, field{"Due date", "13/04/2026"}, v.Info[2])
	assert.Equal(t, "Gracias", v.Notes)
	require.Len(t, v.Payments, 1)
	assert.Equal(t, "Cheque", v.Payments[0].Method)
}

func TestCompose_IdentidadObligatoria(t *testing.T) {
	tests := map[string]func(*issuance.RenderInput){
		"sin número":         func(in *issuance.RenderInput) { in.Document.Number = "" },
		"moneda desconocida": func(in *issuance.RenderInput) { in.Document.Currency = "EUR" },
		"idioma desconocido": func(in *issuance.RenderInput) { in.Language = "fr" },
		"sin plantilla":      func(in *issuance.RenderInput) { in.TemplateID = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := renderInput()
			mutate(&in)
			_, err := compose(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestTexts_TodosLosTipos(t *testing.T) {
	for _, lang := range []entity.Language{entity.LanguageEnglish, entity.LanguageArabic} {
		l, err := texts(lang)
		require.NoError(t, err)
		seen := map[string]bool{}
		for _, typ := range entity.DocumentTypes {
			name := l.TypeName(typ)
			assert.NotEmpty(t, name, "%s/%s", lang, typ)
			assert.False(t, seen[name], "nombre repetido %q", name)
			seen[name] = true
		}
		assert.NotEqual(t, l.Original, l.CertifiedCopy)
	}
}

func TestStyleFor(t *testing.T) {
	for _, id := range []entity.TemplateID{entity.TemplateClassic, entity.TemplateModern, entity.TemplateMinimal} {
		st, err := styleFor(id)
		require.NoError(t, err)
		assert.Equal(t, id, st.Template)
		assert.Equal(t, 12, st.Columns[0]+st.Columns[1]+st.Columns[2]+st.Columns[3])
		assert.LessOrEqual(t, st.SummaryLabelCols+st.SummaryValueCols, 12)
	}
	assert.True(t, classic.Boxed)
	assert.Greater(t, modern.AccentBar, 0.0)
	assert.Greater(t, minimal.TitleSize, classic.TitleSize)
}

func TestDirectionFor(t *testing.T) {
	ar := directionFor(entity.LanguageArabic)
	assert.True(t, ar.RTL)
	assert.Equal(t, arabicFamily, ar.Family)
	assert.Equal(t, []int{3, 2, 1}, mirror(ar.RTL, []int{1, 2, 3}))

	en := directionFor(entity.LanguageEnglish)
	assert.False(t, en.RTL)
	assert.Equal(t, []int{1, 2, 3}, mirror(en.RTL, []int{1, 2, 3}))
}

func TestParseHexColor(t *testing.T) {
	c := parseHexColor("#1a2B3c")
	assert.Equal(t, 0x1a, c.Red)
	assert.Equal(t, 0x2b, c.Green)
	assert.Equal(t, 0x3c, c.Blue)

	c = parseHexColor("f00")
	assert.Equal(t, 255, c.Red)
	assert.Equal(t, 0, c.Blue)

	assert.Equal(t, colorDefaultAccent, parseHexColor("no-color"))
	assert.Equal(t, colorWhite, onAccent(colorDefaultAccent))
	assert.Equal(t, colorBlack, onAccent(colorWhite))
}
