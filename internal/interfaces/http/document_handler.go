package http

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/application/issuance"
	"github.com/jhoicas/Documentos-api/internal/domain"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// DocumentService casos de uso de edición y ciclo de vida (documents.UseCase).
type DocumentService interface {
	Create(ctx context.Context, businessID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Get(ctx context.Context, businessID, id string) (*dto.DocumentResponse, error)
	List(ctx context.Context, businessID string, in dto.ListDocumentsRequest) (*dto.DocumentListResponse, error)
	UpdateDraft(ctx context.Context, businessID, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	MarkPaid(ctx context.Context, businessID, id string) (*dto.DocumentResponse, error)
	Void(ctx context.Context, businessID, id string) (*dto.DocumentResponse, error)
	Reopen(ctx context.Context, businessID, id string) (*dto.DocumentResponse, error)
}

// ExportService pipeline de emisión y descarga (issuance.UseCase).
type ExportService interface {
	IssueAndDownload(ctx context.Context, req issuance.ExportRequest, dl issuance.Deliverer) (*issuance.Outcome, error)
	Download(ctx context.Context, req issuance.ExportRequest, dl issuance.Deliverer) (*issuance.Outcome, error)
}

// Cabeceras con el resultado de la exportación; el cuerpo es el PDF.
const (
	HeaderDocumentVersion  = "X-Document-Version"
	HeaderDocumentStatus   = "X-Document-Status"
	HeaderDocumentArchive  = "X-Document-Archive"
	HeaderDocumentChecksum = "X-Document-Checksum"
	HeaderDocumentPages    = "X-Document-Pages"
	HeaderDocumentNotices  = "X-Document-Notices"
)

// DocumentHandler maneja las peticiones HTTP de documentos (protegido).
type DocumentHandler struct {
	docs    DocumentService
	exports ExportService
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(docs DocumentService, exports ExportService) *DocumentHandler {
	return &DocumentHandler{docs: docs, exports: exports}
}

// Create crea un borrador (o un recibo ya pagado).
// POST /api/documents
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.docs.Create(c.Context(), businessID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List documentos del negocio, paginados y filtrables por tipo y estado.
// GET /api/documents?type=&status=&limit=&offset=
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ListDocumentsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	in.DefaultPage()
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.docs.List(c.Context(), businessID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	return h.byID(c, h.docs.Get)
}

// Update edita un borrador. Documentos emitidos o bloqueados: 409 NOT_EDITABLE.
// PUT /api/documents/:id
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.docs.UpdateDraft(c.Context(), businessID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkPaid POST /api/documents/:id/pay
func (h *DocumentHandler) MarkPaid(c *fiber.Ctx) error { return h.byID(c, h.docs.MarkPaid) }

// Void POST /api/documents/:id/void
func (h *DocumentHandler) Void(c *fiber.Ctx) error { return h.byID(c, h.docs.Void) }

// Reopen POST /api/documents/:id/reopen
func (h *DocumentHandler) Reopen(c *fiber.Ctx) error { return h.byID(c, h.docs.Reopen) }

func (h *DocumentHandler) byID(c *fiber.Ctx, fn func(ctx context.Context, businessID, id string) (*dto.DocumentResponse, error)) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := fn(c.Context(), businessID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Issue emite el borrador y descarga el PDF original.
// POST /api/documents/:id/issue?template=&lang=&original=
func (h *DocumentHandler) Issue(c *fiber.Ctx) error {
	return h.export(c, true)
}

// Download vuelve a exportar sin cambiar el estado. Por defecto sale como copia certificada.
// GET /api/documents/:id/pdf?template=&lang=&original=
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	return h.export(c, false)
}

func (h *DocumentHandler) export(c *fiber.Ctx, issue bool) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	original := issue
	if v := c.Query("original"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return writeError(c, domain.Invalid("original", "debe ser true o false"))
		}
		original = b
	}
	req := issuance.ExportRequest{
		BusinessID: businessID,
		DocumentID: c.Params("id"),
		TemplateID: entity.TemplateID(c.Query("template")),
		Language:   entity.Language(c.Query("lang")),
		IsOriginal: original,
	}

	run := h.exports.Download
	if issue {
		run = h.exports.IssueAndDownload
	}
	outcome, err := run(c.Context(), req, fiberDeliverer{c: c})
	if err != nil {
		// Si el fallo llega antes de la entrega no hay cuerpo escrito.
		return writeError(c, err)
	}
	setOutcomeHeaders(c, outcome)
	return nil
}

// fiberDeliverer entrega el PDF como adjunto en la respuesta.
type fiberDeliverer struct {
	c *fiber.Ctx
}

func (d fiberDeliverer) Deliver(_ context.Context, filename string, data []byte) error {
	d.c.Attachment(filename)
	d.c.Set(fiber.HeaderContentType, "application/pdf")
	return d.c.Status(fiber.StatusOK).Send(data)
}

func setOutcomeHeaders(c *fiber.Ctx, o *issuance.Outcome) {
	c.Set(HeaderDocumentVersion, strconv.Itoa(o.Version))
	c.Set(HeaderDocumentStatus, string(o.Status))
	c.Set(HeaderDocumentPages, strconv.Itoa(o.Pages))
	c.Set(HeaderDocumentChecksum, o.Checksum)
	if o.Archive.Succeeded() {
		c.Set(HeaderDocumentArchive, url.PathEscape(o.Archive.Value))
	} else {
		c.Set(HeaderDocumentArchive, string(o.Archive.State))
	}
	if len(o.Notices) > 0 {
		// Los mensajes pueden no ser ASCII; la cabecera lleva el JSON escapado.
		if raw, err := json.Marshal(o.Notices); err == nil {
			c.Set(HeaderDocumentNotices, url.QueryEscape(string(raw)))
		}
	}
}
