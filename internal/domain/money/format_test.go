package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/money"
)

func TestFormatMinorAmount(t *testing.T) {
	tests := []struct {
		name     string
		minor    int64
		currency entity.Currency
		want     string
	}{
		{"cien dólares", 10000, entity.CurrencyUSD, "$100.00"},
		{"miles", 1234567, entity.CurrencyUSD, "$12,345.67"},
		{"millones", 123456789, entity.CurrencyUSD, "$1,234,567.89"},
		{"cero", 0, entity.CurrencyUSD, "$0.00"},
		{"centavos", 5, entity.CurrencyUSD, "$0.05"},
		{"negativo", -500, entity.CurrencyUSD, "-$5.00"},
		{"shekel", 250050, entity.CurrencyILS, "₪2,500.50"},
		{"moneda desconocida", 100, entity.Currency("eur"), "EUR 1.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.FormatMinorAmount(tt.minor, tt.currency))
		})
	}
}
