package archive_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Documentos-api/internal/domain/archive"
)

func TestBuildPath(t *testing.T) {
	p := archive.BuildPath("Documents", "Acme Ltd", "2026-03-14", "INV-00001", 1)
	assert.Equal(t, []string{"Documents", "Acme Ltd", "2026"}, p.Dir)
	assert.Equal(t, "INV-00001.pdf", p.Filename)
	assert.Equal(t, "Documents/Acme Ltd/2026/INV-00001.pdf", p.String())
}

func TestBuildPath_Versiones(t *testing.T) {
	tests := []struct {
		version int
		want    string
	}{
		{0, "INV-7.pdf"},
		{1, "INV-7.pdf"},
		{2, "INV-7_v2.pdf"},
		{15, "INV-7_v15.pdf"},
	}
	for _, tt := range tests {
		p := archive.BuildPath("Documents", "Acme", "2026-01-01", "INV-7", tt.version)
		assert.Equal(t, tt.want, p.Filename)
	}
}

func TestBuildPath_Determinista(t *testing.T) {
	a := archive.BuildPath("Documents", "شركة / النور", "2025-12-31T23:00:00Z", "CN:00003", 2)
	b := archive.BuildPath("Documents", "شركة / النور", "2025-12-31T23:00:00Z", "CN:00003", 2)
	assert.Equal(t, a, b)
	assert.Equal(t, "Documents/شركة النور/2025/CN00003_v2.pdf", a.String())
}

func TestBuildPath_ValoresPorDefecto(t *testing.T) {
	p := archive.BuildPath("Documents", "  ...  ", "sin fecha", "???", 1)
	assert.Equal(t, []string{"Documents", archive.DefaultProfileFolder, archive.UndatedFolder}, p.Dir)
	assert.Equal(t, "document.pdf", p.Filename)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"caracteres hostiles", `a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"espacios colapsados", "  Acme \t\n  Ltd  ", "Acme Ltd"},
		{"puntos finales", "Acme Inc.", "Acme Inc"},
		{"control", "Ac\x00me\x1f", "Acme"},
		{"NFC", "Cafe\u0301", "Caf\u00e9"},
		{"vacío", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, archive.Sanitize(tt.in))
		})
	}
}

func TestSanitize_Trunca(t *testing.T) {
	out := archive.Sanitize(strings.Repeat("ع", 150))
	assert.Equal(t, archive.MaxSegmentLength, len([]rune(out)))
}
