package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Documentos-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Documents DocumentService
	Exports   ExportService
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; las que modifican
// documentos o los emiten requieren rol admin o accountant.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleAccountant)
	readers := RequireRole(jwt.RoleAdmin, jwt.RoleAccountant, jwt.RoleViewer)

	h := NewDocumentHandler(deps.Documents, deps.Exports)
	docs := api.Group("/documents")
	docs.Get("/", readers, h.List)
	docs.Post("/", writers, h.Create)
	docs.Get("/:id", readers, h.GetByID)
	docs.Put("/:id", writers, h.Update)
	docs.Post("/:id/pay", writers, h.MarkPaid)
	docs.Post("/:id/void", writers, h.Void)
	docs.Post("/:id/reopen", writers, h.Reopen)
	docs.Post("/:id/issue", writers, h.Issue)
	// Re-exportar incrementa la versión y bloquea: no es solo lectura.
	docs.Get("/:id/pdf", writers, h.Download)
}
