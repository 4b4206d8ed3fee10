package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
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

	"vendordesk/docs"
	"vendordesk/internal/auth"
	"vendordesk/internal/config"
	"vendordesk/internal/database"
	"vendordesk/internal/database/migration"
	handlers "vendordesk/internal/http/handler"
	"vendordesk/internal/http/middleware"
	"vendordesk/internal/logging"
	"vendordesk/internal/otel"
	"vendordesk/internal/repository"
	"vendordesk/internal/repository/jsonfile"
	"vendordesk/internal/repository/postgres"
	"vendordesk/internal/service"
	"vendordesk/internal/storage"
)

// multipartOverhead is the slack BodyLimit allows on top of MaxUploadBytes for
// multipart boundaries and part headers. The file size itself is checked by
// the upload handler.
const multipartOverhead = 1 << 20

// @title Vendor Support Directory API
// @version 1.0
// @description Internal directory of vendors, support team members and vendor documents.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer closeStore()

	objects, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to initialize file storage")
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Str("event", "jwt_secret_generated").Msg("JWT_SECRET not set; tokens will not survive a restart")
	}
	tokens := auth.NewTokenManager(secret, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpiry)

	authSvc := service.NewAuthService(store, tokens, log)
	vendorSvc := service.NewVendorService(store, log)
	teamSvc := service.NewTeamService(store, log)
	docSvc := service.NewDocumentService(store, objects, log)

	seed := service.AdminSeed{Email: cfg.Auth.AdminEmail, Password: cfg.Auth.AdminPassword, Name: cfg.Auth.AdminName}
	if err := service.EnsureAdmin(ctx, store, tokens, seed, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed administrator")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		AppName:      "vendordesk",
		BodyLimit:    cfg.Storage.MaxUploadBytes + multipartOverhead,
		ErrorHandler: handlers.ErrorHandler(log),
	})

	// RequestID must run first so every later middleware can read it.
	app.Use(middleware.RequestID(log))
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

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

	handlers.RegisterRoutes(app, handlers.Deps{
		Store:            store,
		Auth:             authSvc,
		Vendors:          vendorSvc,
		Team:             teamSvc,
		Documents:        docSvc,
		AuthLimiter:      middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log),
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		MaxUploadBytes:   int64(cfg.Storage.MaxUploadBytes),
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().
		Str("addr", addr).
		Str("store", cfg.Store.Driver).
		Str("storage", cfg.Storage.Driver).
		Msg("server starting")

	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("failed to start server")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown failed")
	}
}

// openStore returns the configured persistence backend and a release func.
func openStore(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (repository.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewStore(db), closeDB(db, log), nil
	default:
		s, err := jsonfile.Open(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

func closeDB(db *sql.DB, log zerolog.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	if cfg.Driver == config.StorageDriverMinIO {
		return storage.NewMinIO(ctx, cfg.MinIO)
	}
	return storage.NewLocal(cfg.UploadDir)
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
