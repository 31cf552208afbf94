// Package money calcula totales de documentos en unidades menores (centavos/agorot).
//
// Toda la aritmética de montos es entera. Las cantidades y la tasa de impuesto son
// decimales (shopspring/decimal) y el único redondeo ocurre al convertir a unidad menor,
// siempre "half away from zero" (equivalente a Math.round para montos positivos).
package money

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// GrossMinor = round(quantity × unitRateMinor). Exacto para cantidades enteras.
func GrossMinor(item entity.LineItem) int64 {
	return item.Quantity.Mul(decimal.NewFromInt(item.UnitRateMinor)).Round(0).IntPart()
}

// CalculateItemTotal = bruto − descuento. Puede ser negativo si el descuento supera el bruto;
// la validación es responsabilidad del llamador.
func CalculateItemTotal(item entity.LineItem) int64 {
	return GrossMinor(item) - item.DiscountMinor
}

// CalculateDocumentTotals agrega las líneas. El impuesto solo se aplica sobre la base
// descontada de las líneas no exentas y vale 0 si el IVA está deshabilitado.
func CalculateDocumentTotals(items []entity.LineItem, taxRate decimal.Decimal, vatEnabled bool) entity.DocumentTotals {
	var t entity.DocumentTotals
	var taxableBase int64
	for _, it := range items {
		t.SubtotalMinor += GrossMinor(it)
		t.DiscountMinor += it.DiscountMinor
		if !it.TaxExempt {
			taxableBase += CalculateItemTotal(it)
		}
	}
	if vatEnabled {
		t.TaxMinor = decimal.NewFromInt(taxableBase).Mul(taxRate).Round(0).IntPart()
	}
	t.TotalMinor = t.SubtotalMinor - t.DiscountMinor + t.TaxMinor
	return t
}

// TaxPercent porcentaje entero redondeado para la etiqueta del resumen (0.18 → 18).
func TaxPercent(rate decimal.Decimal) int64 {
	return rate.Mul(hundred).Round(0).IntPart()
}
