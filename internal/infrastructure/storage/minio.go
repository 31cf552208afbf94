package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/Documentos-api/internal/application/issuance"
	"github.com/jhoicas/Documentos-api/internal/domain/archive"
	"github.com/jhoicas/Documentos-api/pkg/config"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

var _ issuance.ArtifactStorage = (*MinioStorage)(nil)

// objectPutter subconjunto del cliente de MinIO que usa el archivo.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioStorage archiva los PDFs en un bucket S3 compatible.
// La clave del objeto es la ruta del archivador; la ruta devuelta es bucket/clave.
type MinioStorage struct {
	client objectPutter
	bucket string
}

// NewMinioStorage conecta con MinIO y asegura que el bucket exista.
func NewMinioStorage(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*MinioStorage, error) {
	endpoint := strings.TrimPrefix(cfg.MinioURL, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("inicializar cliente minio: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("verificar bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioLocation}); err != nil {
			return nil, fmt.Errorf("crear bucket %s: %w", cfg.MinioBucket, err)
		}
		log.Info().Str("bucket", cfg.MinioBucket).Msg("bucket creado")
	}
	return &MinioStorage{client: client, bucket: cfg.MinioBucket}, nil
}

// WriteFile sube el PDF; un objeto existente con la misma clave se reemplaza.
func (s *MinioStorage) WriteFile(ctx context.Context, p archive.Path, data []byte) (string, error) {
	key := p.String()
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("subir %s: %w", key, err)
	}
	return s.bucket + "/" + key, nil
}
