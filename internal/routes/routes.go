package routes

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/redonshkr/gov-content-hub/internal/config"
	"github.com/redonshkr/gov-content-hub/internal/handler"
	"github.com/redonshkr/gov-content-hub/internal/middleware"
	"github.com/redonshkr/gov-content-hub/pkg/jwt"
)

const maxBodyBytes = 1 << 20

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health  *handler.HealthHandler
	Content *handler.ContentHandler
	Public  *handler.PublicHandler
	User    *handler.UserHandler
	Audit   *handler.AuditHandler
	WS      *handler.WSHandler
}

// Auth carries what the protected groups need to resolve an actor
type Auth struct {
	JWT      *jwt.Manager
	Resolver middleware.ActorResolver
	Audit    *middleware.AuditLogger
	Redis    *redis.Client
}

// NewRouter builds the gin engine with global middleware and all routes
func NewRouter(cfg *config.Config, h Handlers, auth Auth) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORS.AllowOrigins)))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.BodyLimit(maxBodyBytes))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.Health.Health)

	Setup(router, h, auth, cfg)
	return router
}

// Setup mounts the public, admin and websocket routes
func Setup(router *gin.Engine, h Handlers, auth Auth, cfg *config.Config) {
	requireActor := middleware.JWTAuth(auth.JWT, auth.Resolver)

	api := router.Group("/api/v2")

	// Published content (no auth)
	content := api.Group("/content")
	content.GET("", h.Public.List)
	content.GET("/search", h.Public.Search)
	content.GET("/:slug", h.Public.GetBySlug)

	rateLimit := middleware.DefaultRateLimitConfig()
	if cfg.RateLimit.RequestsPerMinute > 0 {
		rateLimit.RequestsPerMinute = cfg.RateLimit.RequestsPerMinute
	}

	api.GET("/me", requireActor, h.User.Me)

	admin := api.Group("/admin", requireActor, middleware.RateLimit(auth.Redis, rateLimit))
	{
		items := admin.Group("/content")
		items.POST("", middleware.Audit(auth.Audit, "content.create", "content"), h.Content.Create)
		items.GET("", h.Content.List)
		items.GET("/:id", h.Content.Get)
		items.GET("/:id/revisions", h.Content.ListRevisions)
		items.GET("/:id/revisions/:number", h.Content.GetRevision)
		items.GET("/:id/feedback", h.Content.ListFeedback)
		items.POST("/:id/intents", h.Content.PerformIntent)

		admin.GET("/review", h.Content.ReviewQueue)
		admin.GET("/publish", h.Content.PublishQueue)

		users := admin.Group("/users", middleware.RequireAdmin())
		users.GET("", h.User.List)
		users.PUT("/:id/roles", middleware.Audit(auth.Audit, "user.roles.set", "user"), h.User.SetRoles)

		admin.GET("/audit-logs", middleware.RequireAdmin(), h.Audit.List)
	}

	router.GET("/ws/workflow", requireActor, h.WS.Connect)
}

func corsConfig(allowOrigins string) cors.Config {
	origins := []string{}
	for _, o := range strings.Split(allowOrigins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           86400,
	}
}
