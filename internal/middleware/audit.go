package middleware

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/pkg/logger"
	"gorm.io/gorm"
)

// AuditLogger writes audit_logs rows off the request path
type AuditLogger struct {
	db *gorm.DB
	wg sync.WaitGroup
}

// NewAuditLogger creates a new AuditLogger. A nil db disables auditing.
func NewAuditLogger(db *gorm.DB) *AuditLogger {
	return &AuditLogger{db: db}
}

// Record stores entry asynchronously
func (a *AuditLogger) Record(ctx context.Context, entry *domain.AuditLog) {
	if a.db == nil || entry == nil {
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.db.WithContext(context.WithoutCancel(ctx)).Create(entry).Error; err != nil {
			logger.GetLogger().Error().Err(err).
				Str("action", entry.Action).
				Str("user_id", entry.UserID).
				Msg("audit log write failed")
		}
	}()
}

// Flush waits for pending writes
func (a *AuditLogger) Flush() {
	a.wg.Wait()
}

// ListAuditLogs retrieves paginated audit logs, newest first
func (a *AuditLogger) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, int64, error) {
	if a.db == nil {
		return []domain.AuditLog{}, 0, nil
	}
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := a.db.WithContext(ctx).Model(&domain.AuditLog{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ResourceID != "" {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	logs := []domain.AuditLog{}
	err := query.Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	return logs, total, err
}

// Audit records action on resource after a successful (2xx) response.
// The resource id is read from the :id route parameter.
func Audit(a *AuditLogger, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if a == nil || c.Writer.Status() >= 300 {
			return
		}
		meta := common.RequestMetaFrom(c.Request.Context())
		a.Record(c.Request.Context(), &domain.AuditLog{
			UserID:     GetUserID(c),
			Action:     action,
			Resource:   resource,
			ResourceID: c.Param("id"),
			ClientIP:   meta.ClientIP,
			UserAgent:  meta.UserAgent,
			RequestID:  meta.RequestID,
		})
	}
}
