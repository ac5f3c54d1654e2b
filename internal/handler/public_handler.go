package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/service"
	"github.com/redonshkr/gov-content-hub/pkg/ginutil"
	pkglogger "github.com/redonshkr/gov-content-hub/pkg/logger"
)

// PublicHandler serves published content to anonymous readers
type PublicHandler struct {
	content service.ContentService
	search  *service.SearchService
}

// NewPublicHandler creates a new PublicHandler. search may be nil.
func NewPublicHandler(content service.ContentService, search *service.SearchService) *PublicHandler {
	return &PublicHandler{content: content, search: search}
}

// List handles GET /api/v2/content
func (h *PublicHandler) List(c *gin.Context) {
	page, limit := ginutil.Page(c, 20, 100)
	result, err := h.content.ListPublished(c.Request.Context(), page, limit)
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2SuccessWithMeta(c, result.Items, common.NewV2Meta(page, limit, result.Total))
}

// GetBySlug handles GET /api/v2/content/:slug
func (h *PublicHandler) GetBySlug(c *gin.Context) {
	item, err := h.content.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Success(c, item)
}

// Search handles GET /api/v2/content/search?q=
func (h *PublicHandler) Search(c *gin.Context) {
	if h.search == nil || !h.search.Available() {
		common.ErrorResponse(c, http.StatusServiceUnavailable, "Search is not available", nil)
		return
	}

	page, limit := ginutil.Page(c, 20, 50)
	result, err := h.search.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		if errors.Is(err, common.ErrValidationFailed) {
			common.WorkflowErrorResponse(c, err)
			return
		}
		pkglogger.GetLogger().Error().Err(err).Msg("content search failed")
		common.ErrorResponse(c, http.StatusServiceUnavailable, "Search failed", err)
		return
	}
	common.V2SuccessWithMeta(c, result.Hits, common.NewV2Meta(page, limit, result.Total))
}
