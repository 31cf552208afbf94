package repository

import (
	"context"

	"github.com/jhoicas/Documentos-api/internal/domain/entity"
)

// BusinessProfileRepository puerto de lectura del perfil del negocio emisor.
// El CRUD del perfil vive fuera de este servicio.
type BusinessProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.BusinessProfile, error)
}
