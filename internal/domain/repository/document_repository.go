package repository

import (
	"context"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// DocumentFilter filtros opcionales del listado. Campos vacíos no filtran.
type DocumentFilter struct {
	Type   entity.DocumentType
	Status entity.Status
}

// DocumentRepository define el puerto de persistencia para Document, sus líneas y pagos.
// Cada método es atómico por llamada; las operaciones que tocan varias tablas
// las resuelve la implementación (o el TxRunner del caso de uso).
type DocumentRepository interface {
	// Create persiste cabecera, líneas y pagos.
	Create(ctx context.Context, doc *entity.Document) error
	// GetByID devuelve el documento completo o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	ListByBusiness(ctx context.Context, businessID string, filter DocumentFilter, limit, offset int) ([]*entity.Document, error)

	// Update reescribe la cabecera editable y reemplaza líneas y pagos.
	// Solo borradores sin bloquear; en otro caso domain.ErrStaleDocument.
	Update(ctx context.Context, doc *entity.Document) error

	// UpdateStatus persiste status e issued_at/paid_at/voided_at si el documento sigue en from;
	// si otro cambio llegó antes, domain.ErrStaleDocument. No toca el bloqueo.
	UpdateStatus(ctx context.Context, doc *entity.Document, from entity.Status) error

	// LockAfterExport incrementa pdf_version, marca locked=true y, si archivedPath no es vacío,
	// registra la ruta archivada. Devuelve la versión resultante.
	LockAfterExport(ctx context.Context, id, archivedPath string) (int, error)

	// NextNumber reserva el siguiente consecutivo para (negocio, tipo). Empieza en 1.
	NextNumber(ctx context.Context, businessID string, docType entity.DocumentType) (int64, error)
}
