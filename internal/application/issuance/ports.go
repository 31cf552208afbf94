package issuance

import (
	"context"

	"github.com/jhoicas/Documentos-api/internal/domain/archive"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// RenderInput snapshot de solo lectura que recibe el motor de render.
type RenderInput struct {
	Document   entity.Document
	Profile    entity.BusinessProfile
	Client     *entity.Client // opcional
	TemplateID entity.TemplateID
	Language   entity.Language
	IsOriginal bool
}

// Artifact PDF generado en memoria. No se persiste como entidad.
type Artifact struct {
	Bytes    []byte
	Pages    int
	Checksum string // blake2b-256 en hex
}

// Renderer produce el PDF de un documento. Debe ser seguro para uso concurrente.
type Renderer interface {
	Render(ctx context.Context, in RenderInput) (*Artifact, error)
}

// ArtifactStorage escribe el artefacto bajo la raíz de archivo creando los directorios necesarios.
// Devuelve la ubicación final (ruta o clave de objeto) que se registra en el documento.
type ArtifactStorage interface {
	WriteFile(ctx context.Context, path archive.Path, data []byte) (string, error)
}

// Deliverer entrega el artefacto al llamador (descarga HTTP u otro canal).
type Deliverer interface {
	Deliver(ctx context.Context, filename string, data []byte) error
}

// ExportGuard impide dos exportaciones simultáneas del mismo documento.
// Acquire devuelve ErrExportInProgress si ya hay una en curso.
type ExportGuard interface {
	Acquire(ctx context.Context, documentID string) (release func(), err error)
}
