package postgres

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Documentos-api/pkg/config"
)

func dbConfig() config.DBConfig {
	return config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "secreto", DBName: "documentos", SSLMode: "disable",
		MaxConns: 12, MinConns: 3,
		MaxConnLifetime: 30 * time.Minute, MaxConnIdleTime: 5 * time.Minute, HealthCheckPeriod: 20 * time.Second,
	}
}

func TestNewPoolConfig_TomaTamanosDeConfig(t *testing.T) {
	pc, err := newPoolConfig(dbConfig())
	require.NoError(t, err)

	assert.Equal(t, int32(12), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 30*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, 20*time.Second, pc.HealthCheckPeriod)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect)
}

func TestNewPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := dbConfig()
	cfg.DatabaseURL = "postgres://u:p@remoto:6543/otra?sslmode=disable"

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "remoto", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, "otra", pc.ConnConfig.Database)
}

func TestNewPoolConfig_DialIPv4SoloConBandera(t *testing.T) {
	cfg := dbConfig()
	ipv4 := reflect.ValueOf(dialIPv4).Pointer()

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, ipv4, reflect.ValueOf(pc.ConnConfig.DialFunc).Pointer())

	cfg.ForceIPv4 = true
	pc, err = newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, ipv4, reflect.ValueOf(pc.ConnConfig.DialFunc).Pointer())
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	cfg := dbConfig()
	cfg.DatabaseURL = "postgres://%zz"
	_, err := newPoolConfig(cfg)
	assert.Error(t, err)
}
