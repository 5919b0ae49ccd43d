package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"dms/internal/auth"
	"dms/internal/config"
	"dms/internal/domain/models/ordering"
	"dms/internal/handler"
	"dms/internal/messaging/dedup"
	"dms/internal/messaging/rabbitmq"
	"dms/internal/middleware"
	mongoRepo "dms/internal/repository/mongo"
	"dms/internal/repository/postgres"
	postgresDocsys "dms/internal/repository/postgres/docsystem"
	serviceDocsys "dms/internal/service/docsystem"
	"dms/internal/service/docsystem/extractor"
	"dms/internal/service/projection"
	"dms/internal/service/translation"
)

const eventSource = "dms"

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var logOut io.Writer
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}

	logger := config.NewLogger(cfg.Environment, logOut)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// run wires the stores, services, HTTP API and projection, and blocks until
// a signal arrives or one of them fails
func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// JWT verifier; without a JWKS URL requests fall back to the dev actor
	var jwtVerifier auth.JWTVerifier
	if cfg.JWKSURL != "" {
		v, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			return fmt.Errorf("failed to create JWT verifier: %w", err)
		}
		defer v.Close()
		jwtVerifier = v
	} else {
		logger.Warn("JWKS_URL not set, requests are attributed to the dev actor", "dev_actor_id", cfg.DevActorID)
	}

	// Relational store
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, cfg.TablePrefix); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	// Audit sink
	mongoClient, err := mongoRepo.Connect(ctx, cfg.MongoAuditStore)
	if err != nil {
		return fmt.Errorf("failed to connect to audit store: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	translationDocRepo := postgresDocsys.NewTranslationDocumentRepository(repoConfig)
	docRepo := postgresDocsys.NewDocumentRepository(repoConfig)
	partRepo := postgresDocsys.NewDocumentPartRepository(repoConfig)
	auditRepo := mongoRepo.NewAuditRepository(mongoClient, cfg.MongoAuditDatabase, cfg.MongoAuditCollection, logger)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Document services
	textExtractor, err := extractor.NewDefaultRegistry(logger, extractor.WithRoot(cfg.UploadPath))
	if err != nil {
		return fmt.Errorf("failed to initialize extractor registry: %w", err)
	}
	contentAnalyzer := serviceDocsys.NewContentAnalyzer()
	fileStore := serviceDocsys.NewLocalFileStore(cfg.UploadPath, logger)
	docService := serviceDocsys.NewDocumentService(translationDocRepo, docRepo, partRepo, auditRepo, textExtractor, contentAnalyzer, fileStore, logger)
	partitionService := serviceDocsys.NewPartitionService(translationDocRepo, partRepo, auditRepo, txManager, textExtractor, contentAnalyzer, logger)

	// Message bus
	bus, err := rabbitmq.Dial(cfg.RabbitURL(), cfg.RabbitExchangeName, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to message bus: %w", err)
	}
	defer bus.Close()

	dispatcher, err := rabbitmq.NewDispatcher(bus, eventSource, logger)
	if err != nil {
		return fmt.Errorf("failed to create event dispatcher: %w", err)
	}
	defer dispatcher.Close()

	var projectionOpts []projection.Option
	if cfg.ProjectionDedupEnabled {
		rdb, err := dedup.NewClient(ctx, dedup.Config{Addr: cfg.RedisAddr, DB: cfg.RedisDB, Password: cfg.RedisPassword})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		projectionOpts = append(projectionOpts, projection.WithDeliveryGuard(dedup.NewGuard(rdb, logger), cfg.ProjectionDedupTTL))
		logger.Info("projection duplicate guard enabled", "ttl", cfg.ProjectionDedupTTL)
	}

	translationClient := translation.NewClient(cfg.TranslationServiceEndpoint, cfg.TranslationServiceTimeout, logger)
	documentPartProjection := projection.New(partitionService, translationClient, dispatcher, auditRepo, logger, projectionOpts...)
	subscription := rabbitmq.NewSubscription(bus, cfg.ProjectionAppName, ordering.EventDocumentPartRequested, logger)

	// HTTP API
	router := handler.NewRouter(handler.Handlers{
		Documents: handler.NewDocumentHandler(docService, logger),
		Uploads:   handler.NewUploadHandler(docService, cfg.MaxUploadSize, logger),
		Parts:     handler.NewPartHandler(partitionService, docService, logger),
	}, middleware.AuthMiddleware(jwtVerifier, cfg.DevActorID, logger))

	logger.Info("services initialized")

	// Order: CORS → Recovery → Routes (auth is applied on the API subrouter)
	var httpHandler http.Handler = router
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.ActorHeader},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("projection consuming", "queue", subscription.QueueName())
		return subscription.Run(gctx, documentPartProjection)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
