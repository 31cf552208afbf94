// Package document contiene las reglas del ciclo de vida de un documento financiero.
//
// Todas las funciones reciben un snapshot (entity.Document por valor) y devuelven uno nuevo;
// nunca mutan el original. Los errores de transición se producen antes de cualquier
// llamada a persistencia.
//
//	draft ──issue──► issued ──pay (solo invoice)──► paid
//	                   │
//	                   ├──void──► voided (terminal)
//	                   └──reopen──► draft (sin efectos sobre el bloqueo)
package document

import (
	"fmt"
	"time"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/money"
)

// Totals recalcula el agregado a partir de las líneas actuales.
func Totals(d entity.Document) entity.DocumentTotals {
	return money.CalculateDocumentTotals(d.Items, d.TaxRate, d.VATEnabled)
}

// InitialStatus estado con el que nace cada tipo de documento.
func InitialStatus(t entity.DocumentType) entity.Status {
	switch {
	case t.IsReceiptLike():
		return entity.StatusPaid
	case t == entity.TypePriceOffer, t == entity.TypeProformaInvoice:
		return entity.StatusIssued
	default:
		return entity.StatusDraft
	}
}

// CanTransition tabla de transiciones permitidas.
func CanTransition(t entity.DocumentType, from, to entity.Status) bool {
	switch {
	case from == entity.StatusDraft && to == entity.StatusIssued:
		return true
	case from == entity.StatusIssued && to == entity.StatusPaid:
		return t == entity.TypeInvoice
	case from == entity.StatusIssued && to == entity.StatusVoided:
		return true
	case from == entity.StatusIssued && to == entity.StatusDraft:
		return true
	}
	return false
}

func transition(d entity.Document, to entity.Status) error {
	if !CanTransition(d.Type, d.Status, to) {
		return &domain.TransitionError{From: string(d.Status), To: string(to)}
	}
	return nil
}

// Issue draft → issued. Recalcula totales una última vez y rechaza líneas con total negativo.
func Issue(d entity.Document, now time.Time) (entity.Document, error) {
	if err := transition(d, entity.StatusIssued); err != nil {
		return d, err
	}
	if err := Validate(d); err != nil {
		return d, err
	}
	for i, it := range d.Items {
		if money.CalculateItemTotal(it) < 0 {
			return d, domain.Invalid(fmt.Sprintf("items[%d].discount_minor", i), "el descuento supera el valor bruto de la línea")
		}
	}
	if Totals(d).TotalMinor < 0 {
		return d, domain.Invalid("items", "el total del documento es negativo")
	}
	out := d.Clone()
	out.Status = entity.StatusIssued
	out.IssuedAt = &now
	out.UpdatedAt = now
	return out, nil
}

// MarkPaid issued → paid, solo para facturas.
func MarkPaid(d entity.Document, now time.Time) (entity.Document, error) {
	if err := transition(d, entity.StatusPaid); err != nil {
		return d, err
	}
	out := d.Clone()
	out.Status = entity.StatusPaid
	out.PaidAt = &now
	out.UpdatedAt = now
	return out, nil
}

// Void issued → voided. Irreversible.
func Void(d entity.Document, now time.Time) (entity.Document, error) {
	if err := transition(d, entity.StatusVoided); err != nil {
		return d, err
	}
	out := d.Clone()
	out.Status = entity.StatusVoided
	out.VoidedAt = &now
	out.UpdatedAt = now
	return out, nil
}

// Reopen issued → draft como actualización genérica de estado.
// Locked, LockedPDFPath y PDFVersion se conservan tal cual.
func Reopen(d entity.Document, now time.Time) (entity.Document, error) {
	if err := transition(d, entity.StatusDraft); err != nil {
		return d, err
	}
	out := d.Clone()
	out.Status = entity.StatusDraft
	out.IssuedAt = nil
	out.UpdatedAt = now
	return out, nil
}
