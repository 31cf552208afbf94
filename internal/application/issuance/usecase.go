// Package issuance coordina la emisión y exportación de documentos:
// transición de estado, render, archivo, entrega y bloqueo.
package issuance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/archive"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	"github.com/jhoicas/Documentos-api/internal/domain/repository"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

// Config parámetros del pipeline.
type Config struct {
	ArchiveRoot string // carpeta raíz lógica, p. ej. "Documents"
}

// ExportRequest petición de exportación. TemplateID y Language vacíos usan los del documento.
type ExportRequest struct {
	BusinessID string
	DocumentID string
	TemplateID entity.TemplateID
	Language   entity.Language
	IsOriginal bool
}

// UseCase orquesta IssueAndDownload y Download.
type UseCase struct {
	docs     repository.DocumentRepository
	profiles repository.BusinessProfileRepository
	clients  repository.ClientRepository
	renderer Renderer
	storage  ArtifactStorage // nil: archivo deshabilitado
	guard    ExportGuard
	log      *logger.Logger
	cfg      Config
	now      func() time.Time
}

// NewUseCase construye el orquestador. storage puede ser nil.
func NewUseCase(
	docs repository.DocumentRepository,
	profiles repository.BusinessProfileRepository,
	clients repository.ClientRepository,
	renderer Renderer,
	storage ArtifactStorage,
	guard ExportGuard,
	log *logger.Logger,
	cfg Config,
) *UseCase {
	if cfg.ArchiveRoot == "" {
		cfg.ArchiveRoot = "Documents"
	}
	return &UseCase{
		docs:     docs,
		profiles: profiles,
		clients:  clients,
		renderer: renderer,
		storage:  storage,
		guard:    guard,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// IssueAndDownload emite un borrador y entrega su PDF.
func (uc *UseCase) IssueAndDownload(ctx context.Context, req ExportRequest, dl Deliverer) (*Outcome, error) {
	return uc.export(ctx, req, dl, true)
}

// Download vuelve a exportar sin transición de estado. Incrementa pdf_version aunque el documento
// ya estuviera bloqueado.
func (uc *UseCase) Download(ctx context.Context, req ExportRequest, dl Deliverer) (*Outcome, error) {
	return uc.export(ctx, req, dl, false)
}

func (uc *UseCase) export(ctx context.Context, req ExportRequest, dl Deliverer, issue bool) (*Outcome, error) {
	if req.TemplateID != "" && !req.TemplateID.Valid() {
		return nil, domain.Invalid("template", fmt.Sprintf("plantilla desconocida %q", req.TemplateID))
	}
	if req.Language != "" && !req.Language.Valid() {
		return nil, domain.Invalid("lang", fmt.Sprintf("idioma no soportado %q", req.Language))
	}

	// ── 0. Exclusión por documento ───────────────────────────────────────────
	release, err := uc.guard.Acquire(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	defer release()

	logCtx := uc.log.With().Str("document_id", req.DocumentID).Bool("issue", issue).Logger()
	log := &logCtx

	doc, err := uc.load(ctx, req)
	if err != nil {
		return nil, err
	}

	// ── 1. Transición a issued (fallo duro) ─────────────────────────────────
	if issue {
		issued, err := document.Issue(*doc, uc.now())
		if err != nil {
			log.Warn().Err(err).Str("step", "issue").Msg("transición rechazada")
			return nil, err
		}
		if err := uc.docs.UpdateStatus(ctx, &issued, doc.Status); err != nil {
			log.Error().Err(err).Str("step", "issue").Msg("no se pudo persistir el estado")
			return nil, fmt.Errorf("issuance: actualizar estado: %w", err)
		}
		*doc = issued
		log.Info().Str("step", "issue").Msg("documento emitido")
	}

	// ── 2. Render (fallo duro) ──────────────────────────────────────────────
	profile, err := uc.profiles.GetByID(ctx, doc.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("issuance: obtener perfil: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: perfil del negocio %s", domain.ErrNotFound, doc.BusinessID)
	}
	in := RenderInput{
		Document:   doc.Clone(),
		Profile:    *profile,
		Client:     uc.loadClient(ctx, log, doc.ClientID),
		TemplateID: doc.TemplateID,
		Language:   doc.Language,
		IsOriginal: req.IsOriginal,
	}
	if req.TemplateID != "" {
		in.TemplateID = req.TemplateID
	}
	if req.Language != "" {
		in.Language = req.Language
	}
	art, err := uc.renderer.Render(ctx, in)
	if err != nil {
		log.Error().Err(err).Str("step", "render").Msg("render fallido")
		return nil, fmt.Errorf("issuance: render: %w", err)
	}

	path := archive.BuildPath(uc.cfg.ArchiveRoot, profile.Name, doc.IssueDate.Format("2006-01-02"), doc.Number, doc.PDFVersion+1)
	out := &Outcome{
		DocumentID: doc.ID,
		Filename:   path.Filename,
		Status:     doc.Status,
		Version:    doc.PDFVersion,
		Pages:      art.Pages,
		Checksum:   art.Checksum,
	}

	// ── 3. Archivo (best-effort) ────────────────────────────────────────────
	out.Archive = uc.archive(ctx, path, art.Bytes)
	switch out.Archive.State {
	case StepFailed:
		log.Warn().Err(out.Archive.Err).Str("step", "archive").Str("path", path.String()).Msg("no se pudo archivar el PDF")
		out.notify(NoticeWarning, "No se pudo guardar una copia del PDF en el archivo")
	case StepOK:
		log.Info().Str("step", "archive").Str("path", out.Archive.Value).Msg("PDF archivado")
	}

	// ── 4. Entrega (fallo duro, sin bloqueo) ────────────────────────────────
	if err := dl.Deliver(ctx, path.Filename, art.Bytes); err != nil {
		log.Error().Err(err).Str("step", "deliver").Msg("entrega fallida")
		return nil, fmt.Errorf("issuance: entregar PDF: %w", err)
	}

	// ── 5. Bloqueo y versión (best-effort) ──────────────────────────────────
	version, lock := uc.lock(ctx, doc.ID, out.Archive.Value)
	out.Lock = lock
	if lock.Succeeded() {
		out.Version = version
		log.Info().Str("step", "lock").Int("version", version).Msg("documento bloqueado")
	} else {
		log.Warn().Err(lock.Err).Str("step", "lock").Msg("no se pudo registrar el bloqueo")
		out.notify(NoticeWarning, "El PDF se descargó pero no se pudo registrar la versión")
	}

	// ── 6. Notificación ─────────────────────────────────────────────────────
	out.notify(NoticeSuccess, fmt.Sprintf("Documento %s exportado", doc.Number))
	return out, nil
}

func (uc *UseCase) load(ctx context.Context, req ExportRequest) (*entity.Document, error) {
	doc, err := uc.docs.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("issuance: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.BusinessID != req.BusinessID {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

// loadClient el cliente es opcional en el render; un fallo de lectura solo se registra.
func (uc *UseCase) loadClient(ctx context.Context, log *zerolog.Logger, clientID string) *entity.Client {
	if clientID == "" {
		return nil
	}
	c, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		log.Warn().Err(err).Str("client_id", clientID).Msg("cliente no disponible, se renderiza sin él")
		return nil
	}
	return c
}

func (uc *UseCase) archive(ctx context.Context, path archive.Path, data []byte) StepResult {
	if uc.storage == nil {
		return skipped()
	}
	location, err := uc.storage.WriteFile(ctx, path, data)
	if err != nil {
		return failed(err)
	}
	return ok(location)
}

func (uc *UseCase) lock(ctx context.Context, id, archivedPath string) (int, StepResult) {
	v, err := uc.docs.LockAfterExport(ctx, id, archivedPath)
	if err != nil {
		return 0, failed(err)
	}
	return v, ok(strconv.Itoa(v))
}
