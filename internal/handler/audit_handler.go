package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/middleware"
	"github.com/redonshkr/gov-content-hub/pkg/ginutil"
)

// AuditHandler serves the audit trail
type AuditHandler struct {
	audit *middleware.AuditLogger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audit *middleware.AuditLogger) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/v2/admin/audit-logs?user_id=&action=&resource_id=
func (h *AuditHandler) List(c *gin.Context) {
	page, limit := ginutil.Page(c, 50, 100)
	logs, total, err := h.audit.ListAuditLogs(c.Request.Context(), domain.AuditFilter{
		UserID:     c.Query("user_id"),
		Action:     c.Query("action"),
		ResourceID: c.Query("resource_id"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load audit logs", err)
		return
	}
	common.V2SuccessWithMeta(c, logs, common.NewV2Meta(page, limit, total))
}
