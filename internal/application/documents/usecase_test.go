package documents_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

// memDocs repositorio en memoria; el TxRunner restaura los consecutivos si fn falla.
type memDocs struct {
	docs        map[string]entity.Document
	seq         map[string]int64
	statusCalls int
	lastFilter  repository.DocumentFilter
}

func newMemDocs() *memDocs {
	return &memDocs{docs: map[string]entity.Document{}, seq: map[string]int64{}}
}

func (m *memDocs) Create(_ context.Context, d *entity.Document) error {
	m.docs[d.ID] = d.Clone()
	return nil
}

func (m *memDocs) GetByID(_ context.Context, id string) (*entity.Document, error) {
	d, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	c := d.Clone()
	return &c, nil
}

func (m *memDocs) ListByBusiness(_ context.Context, businessID string, f repository.DocumentFilter, _, _ int) ([]*entity.Document, error) {
	m.lastFilter = f
	var out []*entity.Document
	for _, d := range m.docs {
		if d.BusinessID == businessID {
			c := d.Clone()
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memDocs) Update(_ context.Context, d *entity.Document) error {
	if stored := m.docs[d.ID]; stored.Status != entity.StatusDraft || stored.Locked {
		return domain.ErrStaleDocument
	}
	m.docs[d.ID] = d.Clone()
	return nil
}

func (m *memDocs) UpdateStatus(_ context.Context, d *entity.Document, from entity.Status) error {
	m.statusCalls++
	stored := m.docs[d.ID]
	if stored.Status != from {
		return domain.ErrStaleDocument
	}
	stored.Status = d.Status
	stored.IssuedAt, stored.PaidAt, stored.VoidedAt = d.IssuedAt, d.PaidAt, d.VoidedAt
	m.docs[d.ID] = stored
	return nil
}

func (m *memDocs) LockAfterExport(context.Context, string, string) (int, error) {
	return 0, errors.New("no usado")
}

func (m *memDocs) NextNumber(_ context.Context, businessID string, t entity.DocumentType) (int64, error) {
	key := businessID + "/" + string(t)
	m.seq[key]++
	return m.seq[key], nil
}

type memTx struct{ docs *memDocs }

func (tx memTx) RunDocuments(ctx context.Context, fn func(repository.DocumentRepository) error) error {
	seq := make(map[string]int64, len(tx.docs.seq))
	for k, v := range tx.docs.seq {
		seq[k] = v
	}
	if err := fn(tx.docs); err != nil {
		tx.docs.seq = seq
		return err
	}
	return nil
}

type memClients map[string]entity.Client

func (m memClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	c, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func newUseCase() (*documents.UseCase, *memDocs) {
	docs := newMemDocs()
	clients := memClients{
		"cli-1": {ID: "cli-1", BusinessID: "biz-1", Name: "Cliente Uno"},
		"cli-x": {ID: "cli-x", BusinessID: "biz-2", Name: "Ajeno"},
	}
	uc := documents.NewUseCase(memTx{docs: docs}, docs, clients, documents.Defaults{
		TemplateID: entity.TemplateModern,
		Language:   entity.LanguageArabic,
	})
	return uc, docs
}

func invoiceRequest() dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		Type:       "invoice",
		ClientID:   "cli-1",
		Currency:   "USD",
		IssueDate:  "2026-03-14",
		TaxRate:    decimal.RequireFromString("0.18"),
		VATEnabled: true,
		Items: []dto.LineItemRequest{
			{Description: "Diseño", Quantity: decimal.NewFromInt(1), UnitRateMinor: 10000},
			{Description: "Libro", Quantity: decimal.NewFromInt(1), UnitRateMinor: 5000, TaxExempt: true},
		},
	}
}

func TestCreate_NumeraYCalculaTotales(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	first, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-00001", first.Number)
	assert.Equal(t, "draft", first.Status)
	assert.Equal(t, "modern", first.TemplateID)
	assert.Equal(t, "ar", first.Language)
	assert.Equal(t, int64(1800), first.Totals.TaxMinor)
	assert.Equal(t, int64(16800), first.Totals.TotalMinor)
	assert.Equal(t, "$168.00", first.Totals.Total)

	second, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-00002", second.Number)

	req := invoiceRequest()
	req.Type = "receipt"
	req.Payments = []dto.PaymentRequest{{Method: "cash", AmountMinor: 16800}}
	receipt, err := uc.Create(ctx, "biz-1", req)
	require.NoError(t, err)
	assert.Equal(t, "REC-00001", receipt.Number)
	assert.Equal(t, "paid", receipt.Status)
	require.Len(t, receipt.Payments, 1)
}

func TestCreate_ValidacionNoConsumeConsecutivo(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	bad := invoiceRequest()
	bad.Items[0].DiscountMinor = -1
	_, err := uc.Create(ctx, "biz-1", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ok, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-00001", ok.Number)
}

func TestCreate_ClienteDeOtroNegocio(t *testing.T) {
	uc, _ := newUseCase()
	req := invoiceRequest()
	req.ClientID = "cli-x"
	_, err := uc.Create(context.Background(), "biz-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_FechaInvalida(t *testing.T) {
	uc, _ := newUseCase()
	req := invoiceRequest()
	req.DueDate = "14/03/2026"
	_, err := uc.Create(context.Background(), "biz-1", req)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "due_date", vErr.Field)
}

func TestCreate_NotaCredito(t *testing.T) {
	uc, docs := newUseCase()
	ctx := context.Background()

	req := invoiceRequest()
	req.Type = "credit_note"
	_, err := uc.Create(ctx, "biz-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req.RefDocumentID = "no-existe"
	_, err = uc.Create(ctx, "biz-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	inv, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)
	_, err = uc.MarkPaid(ctx, "biz-1", inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un borrador no se puede pagar")

	stored := docs.docs[inv.ID]
	stored.Status = entity.StatusIssued
	docs.docs[inv.ID] = stored

	req.RefDocumentID = inv.ID
	cn, err := uc.Create(ctx, "biz-1", req)
	require.NoError(t, err)
	assert.Equal(t, "CN-00001", cn.Number)
	assert.Equal(t, inv.ID, cn.RefDocumentID)
}

func TestUpdateDraft(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)

	items := []dto.LineItemRequest{{Description: "Horas", Quantity: decimal.RequireFromString("1.5"), UnitRateMinor: 2000}}
	notes := "Pago a 30 días"
	updated, err := uc.UpdateDraft(ctx, "biz-1", created.ID, dto.UpdateDocumentRequest{Items: &items, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), updated.Totals.SubtotalMinor)
	assert.Equal(t, int64(540), updated.Totals.TaxMinor)
	assert.Equal(t, notes, updated.Notes)

	got, err := uc.Get(ctx, "biz-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3540), got.Totals.TotalMinor)
}

func TestUpdateDraft_RechazaEmitidoYBloqueado(t *testing.T) {
	uc, docs := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)
	notes := "x"

	stored := docs.docs[created.ID]
	stored.Status = entity.StatusIssued
	docs.docs[created.ID] = stored
	_, err = uc.UpdateDraft(ctx, "biz-1", created.ID, dto.UpdateDocumentRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrNotEditable)

	stored.Status = entity.StatusDraft
	stored.Locked = true
	stored.PDFVersion = 1
	docs.docs[created.ID] = stored
	_, err = uc.UpdateDraft(ctx, "biz-1", created.ID, dto.UpdateDocumentRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrNotEditable)
}

func TestTransiciones(t *testing.T) {
	uc, docs := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)

	stored := docs.docs[created.ID]
	stored.Status = entity.StatusIssued
	now := time.Now()
	stored.IssuedAt = &now
	docs.docs[created.ID] = stored

	voided, err := uc.Void(ctx, "biz-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "voided", voided.Status)
	assert.NotNil(t, voided.VoidedAt)
	calls := docs.statusCalls

	_, err = uc.MarkPaid(ctx, "biz-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.Reopen(ctx, "biz-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, calls, docs.statusCalls, "sin escrituras tras una transición inválida")
}

// staleDocs cambia el estado almacenado justo después de la lectura, como haría otra petición.
type staleDocs struct {
	*memDocs
	after func(d *entity.Document)
}

func (s staleDocs) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := s.memDocs.GetByID(ctx, id)
	if err == nil && d != nil {
		stored := s.memDocs.docs[id]
		s.after(&stored)
		s.memDocs.docs[id] = stored
	}
	return d, err
}

func TestTransicion_EstadoCambiadoEntreLecturaYEscritura(t *testing.T) {
	uc, docs := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)
	stored := docs.docs[created.ID]
	stored.Status = entity.StatusIssued
	docs.docs[created.ID] = stored

	racing := documents.NewUseCase(memTx{docs}, staleDocs{memDocs: docs, after: func(d *entity.Document) {
		d.Status = entity.StatusVoided
	}}, memClients{}, documents.Defaults{})

	_, err = racing.MarkPaid(ctx, "biz-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.StatusVoided, docs.docs[created.ID].Status, "el anulado no pasa a pagado")
}

func TestUpdateDraft_EmitidoEntreLecturaYEscritura(t *testing.T) {
	uc, docs := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)

	racing := documents.NewUseCase(memTx{docs}, staleDocs{memDocs: docs, after: func(d *entity.Document) {
		d.Status = entity.StatusIssued
		d.Locked = true
	}}, memClients{}, documents.Defaults{})

	notes := "cambio tardío"
	_, err = racing.UpdateDraft(ctx, "biz-1", created.ID, dto.UpdateDocumentRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, docs.docs[created.ID].Notes, "las líneas emitidas no se reescriben")
}

func TestGet_AccesoYExistencia(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)

	_, err = uc.Get(ctx, "biz-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Get(ctx, "biz-1", "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList(t *testing.T) {
	uc, docs := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, "biz-1", invoiceRequest())
	require.NoError(t, err)

	out, err := uc.List(ctx, "biz-1", dto.ListDocumentsRequest{Status: "draft"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, dto.DefaultPageLimit, out.Page.Limit)
	assert.Equal(t, entity.StatusDraft, docs.lastFilter.Status)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV-00042", documents.FormatNumber(entity.TypeInvoice, 42))
	assert.Equal(t, "DR-00001", documents.FormatNumber(entity.TypeDonationReceipt, 1))
	assert.Equal(t, "PF-123456", documents.FormatNumber(entity.TypeProformaInvoice, 123456))
}
