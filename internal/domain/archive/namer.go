// Package archive construye rutas de archivo deterministas para los PDF emitidos.
package archive

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxSegmentLength longitud máxima (en runas) de cada segmento saneado.
	MaxSegmentLength = 100

	DefaultProfileFolder = "Default"
	DefaultFilename      = "document"
	UndatedFolder        = "undated"
)

// Path ruta relativa de un artefacto archivado.
type Path struct {
	Dir      []string
	Filename string
}

// String une directorio y nombre con "/", independiente del sistema operativo.
func (p Path) String() string {
	parts := append(append([]string(nil), p.Dir...), p.Filename)
	return strings.Join(parts, "/")
}

// BuildPath devuelve <root>/<perfil>/<año>/<número>[_vN].pdf.
// Mismas entradas, misma ruta.
func BuildPath(root, profileName, issueDateISO, documentNumber string, version int) Path {
	profile := Sanitize(profileName)
	if profile == "" {
		profile = DefaultProfileFolder
	}
	name := Sanitize(documentNumber)
	if name == "" {
		name = DefaultFilename
	}
	if version > 1 {
		name = fmt.Sprintf("%s_v%d", name, version)
	}
	return Path{
		Dir:      []string{root, profile, year(issueDateISO)},
		Filename: name + ".pdf",
	}
}

// Sanitize elimina caracteres no portables, colapsa espacios y trunca a MaxSegmentLength.
func Sanitize(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	space := false
	for _, r := range s {
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r):
			continue
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsControl(r):
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}

	out := trim(b.String())
	if runes := []rune(out); len(runes) > MaxSegmentLength {
		out = trim(string(runes[:MaxSegmentLength]))
	}
	return out
}

// Windows no admite segmentos que terminen en punto o espacio.
func trim(s string) string {
	return strings.Trim(s, " .")
}

// year toma los cuatro dígitos iniciales de una fecha ISO (YYYY-MM-DD o RFC 3339).
func year(iso string) string {
	iso = strings.TrimSpace(iso)
	if len(iso) < 4 {
		return UndatedFolder
	}
	for _, r := range iso[:4] {
		if r < '0' || r > '9' {
			return UndatedFolder
		}
	}
	if len(iso) > 4 && iso[4] != '-' {
		return UndatedFolder
	}
	return iso[:4]
}
