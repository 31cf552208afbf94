package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/application/issuance"
	"github.com/jhoicas/Documentos-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/Documentos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Documentos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Documentos-api/internal/infrastructure/redis"
	"github.com/jhoicas/Documentos-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Documentos-api/internal/interfaces/http"
	"github.com/jhoicas/Documentos-api/pkg/config"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Bool("redis", cfg.Redis.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	documentRepo := postgres.NewDocumentRepository(pool)
	profileRepo := postgres.NewBusinessProfileRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	documentsUC := documents.NewUseCase(txRunner, documentRepo, clientRepo, documents.Defaults{
		TemplateID: entity.TemplateID(cfg.PDF.DefaultTemplate),
		Language:   entity.Language(cfg.PDF.DefaultLanguage),
	})

	// PDF: fuentes cargadas una sola vez; sin Amiri los documentos en árabe salen en helvetica.
	renderer := infrapdf.NewMarotoPDFGenerator(infrapdf.Options{FontDir: cfg.PDF.FontDir, Log: log})

	// Archivo best-effort: con backend "none" el paso queda omitido.
	var archiveStorage issuance.ArtifactStorage
	switch cfg.Storage.Backend {
	case config.StorageLocal:
		archiveStorage = storage.NewLocalStorage(nil, cfg.Storage.BaseDir)
	case config.StorageMinio:
		minioStorage, err := storage.NewMinioStorage(ctx, cfg.Storage, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MinIO")
		}
		archiveStorage = minioStorage
	}

	// Guard de exportación: Redis si hay varias réplicas, en memoria si no.
	var guard issuance.ExportGuard = issuance.NewLocalGuard()
	if cfg.Redis.Enabled() {
		redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		guard = infraredis.NewExportGuard(redisClient, cfg.Redis.ExportLockTTL, log)
	}

	issuanceUC := issuance.NewUseCase(
		documentRepo, profileRepo, clientRepo,
		renderer, archiveStorage, guard, log,
		issuance.Config{ArchiveRoot: cfg.Storage.ArchiveRoot},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    2 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Documentos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"service":     cfg.App.Name,
			"arabic_font": renderer.ArabicFontLoaded(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Documents: documentsUC,
		Exports:   issuanceUC,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
