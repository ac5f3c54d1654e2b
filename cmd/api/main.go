package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redonshkr/gov-content-hub/internal/config"
	"github.com/redonshkr/gov-content-hub/internal/database"
	"github.com/redonshkr/gov-content-hub/internal/handler"
	"github.com/redonshkr/gov-content-hub/internal/middleware"
	"github.com/redonshkr/gov-content-hub/internal/migration"
	"github.com/redonshkr/gov-content-hub/internal/repository"
	"github.com/redonshkr/gov-content-hub/internal/routes"
	"github.com/redonshkr/gov-content-hub/internal/service"
	"github.com/redonshkr/gov-content-hub/internal/ws"
	pkgcache "github.com/redonshkr/gov-content-hub/pkg/cache"
	pkges "github.com/redonshkr/gov-content-hub/pkg/elasticsearch"
	"github.com/redonshkr/gov-content-hub/pkg/jwt"
	pkglogger "github.com/redonshkr/gov-content-hub/pkg/logger"
	pkgredis "github.com/redonshkr/gov-content-hub/pkg/redis"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles, err := config.LoadDotEnv(".")
	if err != nil {
		log.Fatalf("Failed to load env files: %v", err)
	}

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pkglogger.InitStructured(cfg.Environment)
	pkglogger.Info("APP_ENV=%s, config=%s, loaded env files: %v", cfg.Environment, configPath, dotenvFiles)
	config.LogResolved(cfg)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// MySQL is required: every workflow operation is transactional
	dbLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		dbLevel = gormlogger.Info
	}
	db, err := database.Open(cfg.Database, dbLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	pkglogger.Info("Connected to MySQL")

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	go middleware.ObserveDBStats(ctx, sqlDB, 15*time.Second)

	// Redis is optional: cache, rate limit and cross-instance fan-out degrade without it
	redisClient, err := pkgredis.NewClient(ctx,
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}
	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
	}

	searchBackend := connectSearch(ctx, cfg)

	wsHub := ws.NewHub(redisClient)
	go wsHub.Run()

	store := repository.NewStore(db)
	auditLogger := middleware.NewAuditLogger(db)

	hooks := []service.TransitionHook{}
	if cacheService != nil {
		hooks = append(hooks, service.NewCacheInvalidationHook(cacheService))
	}
	if searchBackend != nil {
		hooks = append(hooks, service.NewSearchIndexHook(searchBackend))
	}
	hooks = append(hooks,
		service.NewNotifyHook(wsHub),
		service.NewAuditHook(auditLogger),
	)

	contentService := service.NewContentService(store, cacheService)
	workflowService := service.NewWorkflowService(store, hooks...)
	actorService := service.NewActorService(store)
	searchService := service.NewSearchService(searchBackend, store)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	router := routes.NewRouter(cfg, routes.Handlers{
		Health:  handler.NewHealthHandler(db, cacheService, searchBackend != nil),
		Content: handler.NewContentHandler(contentService, workflowService),
		Public:  handler.NewPublicHandler(contentService, searchService),
		User:    handler.NewUserHandler(actorService),
		Audit:   handler.NewAuditHandler(auditLogger),
		WS:      handler.NewWSHandler(wsHub, cfg.CORS.AllowOrigins),
	}, routes.Auth{
		JWT:      jwtManager,
		Resolver: actorService,
		Audit:    auditLogger,
		Redis:    redisClient,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	pkglogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.Warn("Server shutdown: %v", err)
	}
	wsHub.Stop()
	auditLogger.Flush()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	_ = sqlDB.Close()
}

// connectSearch returns nil when search is disabled or unreachable so the
// search hook and endpoint are left out instead of failing every request.
func connectSearch(ctx context.Context, cfg *config.Config) service.SearchBackend {
	if !cfg.Elasticsearch.Enabled || len(cfg.Elasticsearch.Addresses) == 0 {
		return nil
	}
	client, err := pkges.NewClient(
		cfg.Elasticsearch.Addresses,
		cfg.Elasticsearch.Username,
		cfg.Elasticsearch.Password,
		cfg.Elasticsearch.Index,
	)
	if err != nil {
		pkglogger.Warn("Elasticsearch connection failed: %v (continuing without search)", err)
		return nil
	}
	if err := client.EnsureIndex(ctx); err != nil {
		pkglogger.Warn("Elasticsearch index setup failed: %v (continuing without search)", err)
		return nil
	}
	pkglogger.Info("Connected to Elasticsearch, index=%s", client.Index())
	return client
}
