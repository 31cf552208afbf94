package repository

import (
	"context"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// ClientRepository puerto de lectura de clientes.
type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Client, error)
}
