package documents

import (
	"context"

	"github.com/jhoicas/Documentos-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un repositorio de documentos atado a una transacción.
// Si fn devuelve error se hace rollback (incluida la reserva del consecutivo).
type TxRunner interface {
	RunDocuments(ctx context.Context, fn func(docs repository.DocumentRepository) error) error
}
