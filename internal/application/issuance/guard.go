package issuance

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Documentos-api/internal/domain"
)

// ErrExportInProgress ya hay una exportación en curso para el documento.
var ErrExportInProgress = fmt.Errorf("%w: exportación en curso", domain.ErrConflict)

var _ ExportGuard = (*LocalGuard)(nil)

// LocalGuard guarda en memoria los documentos en exportación. Válido para una sola instancia;
// con varias réplicas se usa el guard de Redis.
type LocalGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewLocalGuard construye el guard en proceso.
func NewLocalGuard() *LocalGuard {
	return &LocalGuard{inFlight: make(map[string]struct{})}
}

// Acquire marca el documento como en exportación.
func (g *LocalGuard) Acquire(_ context.Context, documentID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[documentID]; busy {
		return nil, ErrExportInProgress
	}
	g.inFlight[documentID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, documentID)
			g.mu.Unlock()
		})
	}, nil
}
