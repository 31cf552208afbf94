// Package storage implementa el archivo de PDFs exportados (issuance.ArtifactStorage).
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/Documentos-api/internal/application/issuance"
	"github.com/jhoicas/Documentos-api/internal/domain/archive"
)

var _ issuance.ArtifactStorage = (*LocalStorage)(nil)

// LocalStorage escribe los PDFs bajo un directorio base del sistema de archivos.
type LocalStorage struct {
	fs afero.Fs
}

// NewLocalStorage ancla fs en baseDir. Con fs nil usa el sistema de archivos del SO.
func NewLocalStorage(fs afero.Fs, baseDir string) *LocalStorage {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if baseDir != "" {
		fs = afero.NewBasePathFs(fs, baseDir)
	}
	return &LocalStorage{fs: fs}
}

// WriteFile crea las carpetas que falten y reemplaza el archivo de forma atómica
// (archivo temporal + rename). Devuelve la ruta relativa archivada.
func (s *LocalStorage) WriteFile(ctx context.Context, p archive.Path, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(p.Dir...)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear carpeta %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("escribir %s: %w", p.String(), err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("cerrar %s: %w", p.String(), err)
	}

	target := filepath.Join(dir, p.Filename)
	if err := s.fs.Rename(tmpName, target); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("mover a %s: %w", p.String(), err)
	}
	_ = s.fs.Chmod(target, os.FileMode(0o644))
	return p.String(), nil
}
