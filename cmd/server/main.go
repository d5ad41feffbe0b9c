package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/titrant/internal/api"
	"github.com/RMahshie/titrant/internal/archive"
	"github.com/RMahshie/titrant/internal/config"
	"github.com/RMahshie/titrant/internal/render"
	"github.com/RMahshie/titrant/internal/repository"
	"github.com/RMahshie/titrant/internal/repository/postgres"
	"github.com/RMahshie/titrant/internal/repository/sqlite"
	"github.com/RMahshie/titrant/internal/storage"
	"github.com/RMahshie/titrant/pkg/models"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Configure zerolog for structured logging
	setupLogging(cfg)

	ctx := context.Background()
	archiver, closeArchive, err := newArchiver(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up plot archive")
	}
	defer closeArchive()

	// Create Chi router
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Create Huma API
	humaConfig := huma.DefaultConfig("Titrant API", version)
	humaConfig.DocsPath = "/api/docs"
	humaAPI := humachi.New(router, humaConfig)

	// Register health endpoint
	huma.Register(humaAPI, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = version
		resp.Body.Archive = archiver != nil
		resp.Body.Time = time.Now()
		return resp, nil
	})

	renderer := render.NewRenderer(cfg.Chart.Width, cfg.Chart.Height)
	api.RegisterRoutes(router, humaAPI, renderer, archiver)

	// Serve OpenAPI spec at /api/openapi.json
	router.Get("/api/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		spec, err := humaAPI.OpenAPI().MarshalJSON()
		if err != nil {
			http.Error(w, "Failed to generate OpenAPI spec", http.StatusInternalServerError)
			return
		}
		w.Write(spec)
	})

	// Start server
	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", addr).Bool("archive", archiver != nil).Msg("Starting Titrant server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if cfg.Server.Env == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	log.Logger = log.Output(out)
}

// newArchiver builds the plot archive from config. It returns a nil archiver
// when archiving is disabled.
func newArchiver(ctx context.Context, cfg *config.Config) (archive.Archiver, func(), error) {
	noop := func() {}
	if !cfg.Archive.Enabled {
		return nil, noop, nil
	}

	var repo repository.PlotRepository
	switch cfg.Archive.Index {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Archive.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		repo = postgres.NewPostgresPlotRepository(db)
	case "sqlite":
		r, err := sqlite.Open(ctx, cfg.Archive.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		repo = r
	default:
		return nil, noop, fmt.Errorf("unsupported archive index %q", cfg.Archive.Index)
	}
	closeRepo := func() {
		if err := repo.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close plot index")
		}
	}

	storeCfg := storage.Config{
		Bucket:    cfg.AWS.S3Bucket,
		Endpoint:  cfg.AWS.S3Endpoint,
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKeyID,
		SecretKey: cfg.AWS.SecretAccessKey,
	}
	var (
		store storage.BlobStore
		err   error
	)
	if cfg.Archive.StorageBackend == "minio" {
		store, err = storage.NewMinioService(ctx, storeCfg)
	} else {
		store, err = storage.NewS3Service(storeCfg)
	}
	if err != nil {
		closeRepo()
		return nil, noop, err
	}

	log.Info().
		Str("index", cfg.Archive.Index).
		Str("storage", cfg.Archive.StorageBackend).
		Str("bucket", cfg.AWS.S3Bucket).
		Msg("Plot archive enabled")

	return archive.NewArchiveService(store, repo), closeRepo, nil
}

// zerologLogger returns a Chi middleware that logs HTTP requests using zerolog
func zerologLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("remote_ip", r.RemoteAddr).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("latency", time.Since(start)).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
