package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
// Create y Update tocan tres tablas: llamarlos dentro de una transacción (TxRunner).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	id, business_id, client_id, number, type, status, currency, language, template_id,
	issue_date, due_date, COALESCE(notes, ''), tax_rate, vat_enabled, ref_document_id,
	pdf_version, locked, locked_pdf_path, issued_at, paid_at, voided_at, created_at, updated_at`

// Create persiste cabecera, líneas y pagos.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `
		INSERT INTO documents (id, business_id, client_id, number, type, status, currency, language, template_id,
			issue_date, due_date, notes, tax_rate, vat_enabled, ref_document_id,
			pdf_version, locked, locked_pdf_path, issued_at, paid_at, voided_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.BusinessID, nullIfEmpty(d.ClientID), d.Number, string(d.Type), string(d.Status),
		string(d.Currency), string(d.Language), string(d.TemplateID),
		d.IssueDate, d.DueDate, nullIfEmpty(d.Notes), d.TaxRate, d.VATEnabled, nullIfEmpty(d.RefDocumentID),
		d.PDFVersion, d.Locked, nullIfEmpty(d.LockedPDFPath), d.IssuedAt, d.PaidAt, d.VoidedAt,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número %s ya existe", domain.ErrDuplicate, d.Number)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return r.insertChildren(ctx, d)
}

// GetByID devuelve el documento con líneas y pagos, o (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	row := r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	d, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	byID := map[string]*entity.Document{d.ID: d}
	if err := r.loadChildren(ctx, byID); err != nil {
		return nil, err
	}
	return d, nil
}

// ListByBusiness lista los documentos del negocio, más recientes primero.
func (r *DocumentRepo) ListByBusiness(ctx context.Context, businessID string, f repository.DocumentFilter, limit, offset int) ([]*entity.Document, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + documentColumns + `
		FROM documents
		WHERE business_id = $1
		  AND ($2 = '' OR type = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY issue_date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, businessID, string(f.Type), string(f.Status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	byID := make(map[string]*entity.Document)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
		byID[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

// Update reescribe la cabecera editable y reemplaza líneas y pagos.
// Solo toca borradores sin bloquear: si otra petición emitió el documento entre la lectura
// y esta escritura, devuelve ErrConflict en vez de pisar las líneas emitidas.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	query := `
		UPDATE documents
		SET client_id   = $2,
		    number      = $3,
		    currency    = $4,
		    language    = $5,
		    template_id = $6,
		    issue_date  = $7,
		    due_date    = $8,
		    notes       = $9,
		    tax_rate    = $10,
		    vat_enabled = $11,
		    updated_at  = $12
		WHERE id = $1 AND status = 'draft' AND NOT locked`
	tag, err := r.q.Exec(ctx, query,
		d.ID, nullIfEmpty(d.ClientID), d.Number, string(d.Currency), string(d.Language), string(d.TemplateID),
		d.IssueDate, d.DueDate, nullIfEmpty(d.Notes), d.TaxRate, d.VATEnabled, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número %s ya existe", domain.ErrDuplicate, d.Number)
		}
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, d.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM document_items WHERE document_id = $1`, d.ID); err != nil {
		return fmt.Errorf("delete document items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM document_payments WHERE document_id = $1`, d.ID); err != nil {
		return fmt.Errorf("delete document payments: %w", err)
	}
	return r.insertChildren(ctx, d)
}

// UpdateStatus persiste el estado y sus marcas de tiempo siempre que el documento siga en from.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, d *entity.Document, from entity.Status) error {
	query := `
		UPDATE documents
		SET status = $2, issued_at = $3, paid_at = $4, voided_at = $5, updated_at = $6
		WHERE id = $1 AND status = $7`
	tag, err := r.q.Exec(ctx, query, d.ID, string(d.Status), d.IssuedAt, d.PaidAt, d.VoidedAt, d.UpdatedAt, string(from))
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, d.ID)
	}
	return nil
}

// missingOrStale distingue un UPDATE sin filas por documento inexistente de uno cuya
// precondición de estado ya no se cumple.
func (r *DocumentRepo) missingOrStale(ctx context.Context, id string) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check document: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrStaleDocument
}

// LockAfterExport incremento y bloqueo en una sola sentencia: dos llamadas concurrentes
// obtienen versiones distintas.
func (r *DocumentRepo) LockAfterExport(ctx context.Context, id, archivedPath string) (int, error) {
	query := `
		UPDATE documents
		SET pdf_version     = pdf_version + 1,
		    locked          = TRUE,
		    locked_pdf_path = COALESCE($2, locked_pdf_path),
		    updated_at      = $3
		WHERE id = $1
		RETURNING pdf_version`
	var version int
	err := r.q.QueryRow(ctx, query, id, nullIfEmpty(archivedPath), time.Now().UTC()).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("lock document: %w", err)
	}
	return version, nil
}

// NextNumber reserva el consecutivo con un upsert; la fila queda bloqueada hasta el fin
// de la transacción, así que dos altas simultáneas no repiten número.
func (r *DocumentRepo) NextNumber(ctx context.Context, businessID string, docType entity.DocumentType) (int64, error) {
	query := `
		INSERT INTO document_sequences (business_id, doc_type, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (business_id, doc_type)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(ctx, query, businessID, string(docType)).Scan(&n); err != nil {
		return 0, fmt.Errorf("next document number: %w", err)
	}
	return n, nil
}

func (r *DocumentRepo) insertChildren(ctx context.Context, d *entity.Document) error {
	for i := range d.Items {
		it := &d.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO document_items (id, document_id, position, description, quantity, unit_rate_minor, discount_minor, tax_exempt)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, d.ID, i, it.Description, it.Quantity, it.UnitRateMinor, it.DiscountMinor, it.TaxExempt,
		)
		if err != nil {
			return fmt.Errorf("insert document item: %w", err)
		}
	}
	for i := range d.Payments {
		p := &d.Payments[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO document_payments (id, document_id, position, method, amount_minor, paid_on, reference)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, d.ID, i, p.Method, p.AmountMinor, p.Date, nullIfEmpty(p.Reference),
		)
		if err != nil {
			return fmt.Errorf("insert document payment: %w", err)
		}
	}
	return nil
}

// loadChildren carga líneas y pagos de varios documentos con una consulta por tabla.
func (r *DocumentRepo) loadChildren(ctx context.Context, byID map[string]*entity.Document) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, description, quantity, unit_rate_minor, discount_minor, tax_exempt
		FROM document_items WHERE document_id = ANY($1::uuid[])
		ORDER BY document_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list document items: %w", err)
	}
	for rows.Next() {
		var it entity.LineItem
		var docID string
		if err := rows.Scan(&it.ID, &docID, &it.Description, &it.Quantity, &it.UnitRateMinor, &it.DiscountMinor, &it.TaxExempt); err != nil {
			rows.Close()
			return fmt.Errorf("scan document item: %w", err)
		}
		if d := byID[docID]; d != nil {
			d.Items = append(d.Items, it)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, document_id, method, amount_minor, paid_on, reference
		FROM document_payments WHERE document_id = ANY($1::uuid[])
		ORDER BY document_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list document payments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Payment
		var docID string
		var ref *string
		if err := rows.Scan(&p.ID, &docID, &p.Method, &p.AmountMinor, &p.Date, &ref); err != nil {
			return fmt.Errorf("scan document payment: %w", err)
		}
		p.Reference = derefStr(ref)
		if d := byID[docID]; d != nil {
			d.Payments = append(d.Payments, p)
		}
	}
	return rows.Err()
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var clientID, refID, lockedPath *string
	var docType, status, currency, language, template string
	err := row.Scan(
		&d.ID, &d.BusinessID, &clientID, &d.Number, &docType, &status, &currency, &language, &template,
		&d.IssueDate, &d.DueDate, &d.Notes, &d.TaxRate, &d.VATEnabled, &refID,
		&d.PDFVersion, &d.Locked, &lockedPath, &d.IssuedAt, &d.PaidAt, &d.VoidedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.ClientID = derefStr(clientID)
	d.RefDocumentID = derefStr(refID)
	d.LockedPDFPath = derefStr(lockedPath)
	d.Type = entity.DocumentType(docType)
	d.Status = entity.Status(status)
	d.Currency = entity.Currency(currency)
	d.Language = entity.Language(language)
	d.TemplateID = entity.TemplateID(template)
	return &d, nil
}
