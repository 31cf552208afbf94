package money

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// El separador de miles es siempre ',' y el decimal '.', sin importar el idioma del documento.
var grouping = message.NewPrinter(language.English)

// Symbol símbolo de la moneda; para monedas desconocidas se usa el código ISO.
func Symbol(c entity.Currency) string {
	switch c {
	case entity.CurrencyUSD:
		return "$"
	case entity.CurrencyILS:
		return "₪"
	default:
		return strings.ToUpper(string(c)) + " "
	}
}

// FormatMinorAmount 1234567 USD → "$12,345.67"; negativos → "-$5.00".
func FormatMinorAmount(minor int64, c entity.Currency) string {
	neg := minor < 0
	abs := uint64(minor)
	if neg {
		abs = uint64(-minor)
	}
	major, cents := abs/100, abs%100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(Symbol(c))
	b.WriteString(grouping.Sprintf("%d", major))
	b.WriteByte('.')
	if cents < 10 {
		b.WriteByte('0')
	}
	b.WriteString(grouping.Sprintf("%d", cents))
	return b.String()
}
