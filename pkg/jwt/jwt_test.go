package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ana = Identity{UserID: "u-1", BusinessID: "b-1", Role: RoleAccountant}

func TestGenerateYParse(t *testing.T) {
	tok, err := Generate("s3cret", "auth", ana, time.Minute)
	require.NoError(t, err)

	got, err := Parse("s3cret", "auth", tok)
	require.NoError(t, err)
	assert.Equal(t, ana, got)

	got, err = Parse("s3cret", "", tok)
	require.NoError(t, err)
	assert.Equal(t, "b-1", got.BusinessID)
}

func TestParse_Rechazos(t *testing.T) {
	valid, _ := Generate("s3cret", "auth", ana, time.Minute)
	expired, _ := Generate("s3cret", "auth", ana, -time.Minute)
	noBusiness, _ := Generate("s3cret", "auth", Identity{UserID: "u-1", Role: RoleAdmin}, time.Minute)

	tests := map[string]struct{ secret, issuer, token string }{
		"firma incorrecta": {"otro", "auth", valid},
		"emisor distinto":  {"s3cret", "otro", valid},
		"expirado":         {"s3cret", "auth", expired},
		"sin negocio":      {"s3cret", "auth", noBusiness},
		"basura":           {"s3cret", "auth", "abc.def.ghi"},
		"secret vacío":     {"", "auth", valid},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.secret, tc.issuer, tc.token)
			assert.Error(t, err)
		})
	}
}
