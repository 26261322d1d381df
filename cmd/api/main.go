package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"pdfapi/docs"
	"pdfapi/internal/config"
	"pdfapi/internal/database"
	"pdfapi/internal/database/migration"
	"pdfapi/internal/filestore"
	handlers "pdfapi/internal/http/handler"
	"pdfapi/internal/http/middleware"
	"pdfapi/internal/llm"
	"pdfapi/internal/logger"
	"pdfapi/internal/otel"
	"pdfapi/internal/pdf"
	"pdfapi/internal/repository/postgres"
	"pdfapi/internal/service"
	"pdfapi/internal/storage"
)

// @title PDF API
// @version 1.0
// @description PDF manipulation and LLM-backed text operations.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(os.Stderr, "info", time.UTC)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(os.Stdout, cfg.Log.Level, logger.Location(cfg.Log.TimeZone))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	files, err := filestore.New(cfg.Files)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare output directories")
	}

	gen, err := llm.NewGemini(ctx, cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize llm client")
	}

	proc := pdf.NewPDFCPU()

	var pdfOpts []service.PDFOption
	var db *sql.DB
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		pdfOpts = append(pdfOpts, service.WithRepository(postgres.NewOutputPostgres(db)))
	} else {
		log.Info().Msg("DB_HOST not set, output records are not persisted")
	}

	if cfg.MinIO.Enabled() {
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		ttl := time.Duration(cfg.MinIO.PresignTTLSec) * time.Second
		pdfOpts = append(pdfOpts, service.WithStorage(objStore, ttl))
	}

	pdfSvc := service.NewPDFService(files, proc, log, pdfOpts...)
	textSvc := service.NewTextService(files, proc, gen, cfg.LLM.MaxInputChars, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Files.MaxRequestBytes),
		// LLM calls and large PDFs can take a while
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(metricsMiddleware(cfg.MetricsEnabled, app, log))

	handlers.RegisterRoutes(app, db, pdfSvc, textSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("tracer shutdown")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().
		Str("addr", addr).
		Str("output_dir", files.OutputDir()).
		Str("strategy", string(files.Strategy())).
		Bool("database", cfg.Database.Enabled()).
		Bool("object_storage", cfg.MinIO.Enabled()).
		Msg("starting server")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// metricsMiddleware registers the Prometheus collectors, exposes them on
// /metrics and returns the counting middleware. Disabled metrics fall back to
// a no-op.
func metricsMiddleware(enabled bool, app *fiber.App, log zerolog.Logger) fiber.Handler {
	if !enabled {
		return middleware.Noop()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return prom.Handler()
}
