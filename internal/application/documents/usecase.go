// Package documents expone el ciclo de vida de los documentos (alta, edición de borradores,
// cambios de estado) sobre los puertos de persistencia.
package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

// Defaults plantilla e idioma cuando la petición no los indica.
type Defaults struct {
	TemplateID entity.TemplateID
	Language   entity.Language
}

// UseCase casos de uso de documentos.
type UseCase struct {
	txRunner TxRunner
	docs     repository.DocumentRepository
	clients  repository.ClientRepository
	defaults Defaults
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, docs repository.DocumentRepository, clients repository.ClientRepository, defaults Defaults) *UseCase {
	if !defaults.TemplateID.Valid() {
		defaults.TemplateID = entity.TemplateClassic
	}
	if !defaults.Language.Valid() {
		defaults.Language = entity.LanguageEnglish
	}
	return &UseCase{
		txRunner: txRunner,
		docs:     docs,
		clients:  clients,
		defaults: defaults,
		now:      time.Now,
	}
}

// Create crea un documento con el estado inicial de su tipo.
// La reserva del consecutivo y la inserción van en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, businessID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	now := uc.now().UTC()

	// ── 1. Normalizar entrada ───────────────────────────────────────────────
	p := document.NewParams{
		ID:            uuid.New().String(),
		BusinessID:    businessID,
		ClientID:      strings.TrimSpace(in.ClientID),
		Number:        in.Number,
		Type:          entity.DocumentType(in.Type),
		Currency:      entity.Currency(in.Currency),
		Language:      entity.Language(in.Language),
		TemplateID:    entity.TemplateID(in.TemplateID),
		Notes:         in.Notes,
		Items:         toLineItems(in.Items),
		TaxRate:       in.TaxRate,
		VATEnabled:    in.VATEnabled,
		RefDocumentID: in.RefDocumentID,
	}
	if p.Language == "" {
		p.Language = uc.defaults.Language
	}
	if p.TemplateID == "" {
		p.TemplateID = uc.defaults.TemplateID
	}
	if in.IssueDate != "" {
		d, err := parseDate("issue_date", in.IssueDate)
		if err != nil {
			return nil, err
		}
		p.IssueDate = d
	}
	if in.DueDate != "" {
		d, err := parseDate("due_date", in.DueDate)
		if err != nil {
			return nil, err
		}
		p.DueDate = &d
	}
	payments, err := toPayments(in.Payments, now)
	if err != nil {
		return nil, err
	}
	p.Payments = payments

	// ── 2. Cliente del mismo negocio ────────────────────────────────────────
	if err := uc.checkClient(ctx, businessID, p.ClientID); err != nil {
		return nil, err
	}

	// ── 3. Documento referenciado (nota crédito) ────────────────────────────
	var ref *entity.Document
	if p.RefDocumentID != "" {
		ref, err = uc.docs.GetByID(ctx, strings.TrimSpace(p.RefDocumentID))
		if err != nil {
			return nil, fmt.Errorf("documents: obtener referencia: %w", err)
		}
	}

	// ── 4. Consecutivo + inserción ──────────────────────────────────────────
	var created entity.Document
	err = uc.txRunner.RunDocuments(ctx, func(docs repository.DocumentRepository) error {
		if strings.TrimSpace(p.Number) == "" {
			seq, err := docs.NextNumber(ctx, businessID, p.Type)
			if err != nil {
				return fmt.Errorf("documents: reservar consecutivo: %w", err)
			}
			p.Number = FormatNumber(p.Type, seq)
		}
		d, err := document.New(p, ref, now)
		if err != nil {
			return err
		}
		if err := docs.Create(ctx, &d); err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(&created), nil
}

// Get devuelve el documento con totales calculados.
func (uc *UseCase) Get(ctx context.Context, businessID, id string) (*dto.DocumentResponse, error) {
	d, err := uc.load(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

// List documentos del negocio, más recientes primero.
func (uc *UseCase) List(ctx context.Context, businessID string, in dto.ListDocumentsRequest) (*dto.DocumentListResponse, error) {
	in.DefaultPage()
	filter := repository.DocumentFilter{Type: entity.DocumentType(in.Type), Status: entity.Status(in.Status)}
	list, err := uc.docs.ListByBusiness(ctx, businessID, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("documents: listar: %w", err)
	}
	out := &dto.DocumentListResponse{
		Items: make([]dto.DocumentResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, d := range list {
		out.Items = append(out.Items, *toResponse(d))
	}
	return out, nil
}

// UpdateDraft aplica una edición parcial. Solo borradores no bloqueados.
func (uc *UseCase) UpdateDraft(ctx context.Context, businessID, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	d, err := uc.load(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if d.Locked {
		return nil, fmt.Errorf("%w: bloqueado tras la exportación v%d", domain.ErrNotEditable, d.PDFVersion)
	}

	now := uc.now().UTC()
	patch, err := uc.toPatch(in, now)
	if err != nil {
		return nil, err
	}
	if patch.ClientID != nil {
		if err := uc.checkClient(ctx, businessID, strings.TrimSpace(*patch.ClientID)); err != nil {
			return nil, err
		}
	}

	edited, err := document.ApplyEdit(*d, patch, now)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunDocuments(ctx, func(docs repository.DocumentRepository) error {
		return docs.Update(ctx, &edited)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(&edited), nil
}

// MarkPaid issued → paid (solo facturas).
func (uc *UseCase) MarkPaid(ctx context.Context, businessID, id string) (*dto.DocumentResponse, error) {
	return uc.transition(ctx, businessID, id, document.MarkPaid)
}

// Void issued → voided.
func (uc *UseCase) Void(ctx context.Context, businessID, id string) (*dto.DocumentResponse, error) {
	return uc.transition(ctx, businessID, id, document.Void)
}

// Reopen issued → draft. No desbloquea.
func (uc *UseCase) Reopen(ctx context.Context, businessID, id string) (*dto.DocumentResponse, error) {
	return uc.transition(ctx, businessID, id, document.Reopen)
}

// transition valida la transición antes de cualquier escritura.
func (uc *UseCase) transition(
	ctx context.Context,
	businessID, id string,
	apply func(entity.Document, time.Time) (entity.Document, error),
) (*dto.DocumentResponse, error) {
	d, err := uc.load(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	next, err := apply(*d, uc.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.docs.UpdateStatus(ctx, &next, d.Status); err != nil {
		return nil, fmt.Errorf("documents: actualizar estado: %w", err)
	}
	return toResponse(&next), nil
}

func (uc *UseCase) load(ctx context.Context, businessID, id string) (*entity.Document, error) {
	d, err := uc.docs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("documents: obtener: %w", err)
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

func (uc *UseCase) checkClient(ctx context.Context, businessID, clientID string) error {
	if clientID == "" {
		return nil
	}
	c, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("documents: obtener cliente: %w", err)
	}
	if c == nil || c.BusinessID != businessID {
		return domain.Invalid("client_id", "cliente inexistente o de otro negocio")
	}
	return nil
}

func (uc *UseCase) toPatch(in dto.UpdateDocumentRequest, now time.Time) (document.Patch, error) {
	p := document.Patch{
		ClientID:     in.ClientID,
		Number:       in.Number,
		Notes:        in.Notes,
		ClearDueDate: in.ClearDueDate,
		TaxRate:      in.TaxRate,
		VATEnabled:   in.VATEnabled,
	}
	if in.Currency != nil {
		c := entity.Currency(*in.Currency)
		p.Currency = &c
	}
	if in.Language != nil {
		l := entity.Language(*in.Language)
		p.Language = &l
	}
	if in.TemplateID != nil {
		t := entity.TemplateID(*in.TemplateID)
		p.TemplateID = &t
	}
	if in.IssueDate != nil {
		d, err := parseDate("issue_date", *in.IssueDate)
		if err != nil {
			return p, err
		}
		p.IssueDate = &d
	}
	if in.DueDate != nil {
		d, err := parseDate("due_date", *in.DueDate)
		if err != nil {
			return p, err
		}
		p.DueDate = &d
	}
	if in.Items != nil {
		items := toLineItems(*in.Items)
		p.Items = &items
	}
	if in.Payments != nil {
		payments, err := toPayments(*in.Payments, now)
		if err != nil {
			return p, err
		}
		p.Payments = &payments
	}
	return p, nil
}
