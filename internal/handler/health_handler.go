package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redonshkr/gov-content-hub/pkg/cache"
	"gorm.io/gorm"
)

// HealthHandler reports liveness and dependency status
type HealthHandler struct {
	db     *gorm.DB
	cache  cache.Service
	search bool
}

// NewHealthHandler creates a new HealthHandler. cache may be nil.
func NewHealthHandler(db *gorm.DB, c cache.Service, searchEnabled bool) *HealthHandler {
	return &HealthHandler{db: db, cache: c, search: searchEnabled}
}

// Health handles GET /health. The database is required; redis and search
// are reported but never fail the check.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := gin.H{"database": "ok", "redis": "disabled", "search": "disabled"}

	if err := h.pingDB(ctx); err != nil {
		status = http.StatusServiceUnavailable
		components["database"] = "down"
	}
	if h.cache != nil && h.cache.IsAvailable() {
		components["redis"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			components["redis"] = "down"
		}
	}
	if h.search {
		components["search"] = "enabled"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"status":     state,
		"service":    "gov-content-hub",
		"time":       time.Now().Unix(),
		"components": components,
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	if h.db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
