package dto

// Tamaños de página del listado de documentos.
const (
	DefaultPageLimit = 25
	MaxPageLimit     = 100
)

// PageRequest ventana del listado de documentos de un negocio (más recientes primero).
// Llega por query string: ?limit=&offset=
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage completa limit ausente con DefaultPageLimit.
// Un limit por encima de MaxPageLimit se deja tal cual para que la validación lo rechace.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse eco de la ventana aplicada. Total no se calcula para no contar la tabla.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de todo error de la API de documentos.
// Code es estable (VALIDATION, NOT_EDITABLE, EXPORT_IN_PROGRESS...); Message es para humanos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
