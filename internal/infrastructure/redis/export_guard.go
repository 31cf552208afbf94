package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Documentos-api/internal/application/issuance"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

const (
	exportKeyPrefix  = "documents:export:"
	defaultExportTTL = 2 * time.Minute
	releaseTimeout   = 3 * time.Second
)

// Borra la clave solo si sigue siendo nuestra; el TTL pudo haberla liberado y otro
// proceso haberla tomado.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

var _ issuance.ExportGuard = (*ExportGuard)(nil)

// ExportGuard marca en Redis los documentos en exportación, compartido entre réplicas.
// El TTL acota cuánto queda tomado un documento si el proceso muere a mitad.
type ExportGuard struct {
	client lockClient
	ttl    time.Duration
	log    *logger.Logger
}

// NewExportGuard ttl <= 0 usa el valor por defecto.
func NewExportGuard(client lockClient, ttl time.Duration, log *logger.Logger) *ExportGuard {
	if ttl <= 0 {
		ttl = defaultExportTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ExportGuard{client: client, ttl: ttl, log: log}
}

// Acquire toma el documento o devuelve issuance.ErrExportInProgress.
func (g *ExportGuard) Acquire(ctx context.Context, documentID string) (func(), error) {
	key := exportKeyPrefix + documentID
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("tomar guard de exportación: %w", err)
	}
	if !ok {
		return nil, issuance.ErrExportInProgress
	}

	var once sync.Once
	return func() {
		once.Do(func() { g.release(documentID, key, token) })
	}, nil
}

func (g *ExportGuard) release(documentID, key, token string) {
	// El contexto de la petición puede estar cancelado a esta altura.
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	if err := g.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		g.log.Warn().Err(err).Str("document_id", documentID).Msg("no se pudo liberar el guard; expira por TTL")
	}
}
