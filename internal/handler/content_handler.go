package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/middleware"
	"github.com/redonshkr/gov-content-hub/internal/service"
	"github.com/redonshkr/gov-content-hub/pkg/ginutil"
)

// ContentHandler serves the editorial admin API
type ContentHandler struct {
	content  service.ContentService
	workflow service.WorkflowService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(content service.ContentService, workflow service.WorkflowService) *ContentHandler {
	return &ContentHandler{content: content, workflow: workflow}
}

// Create handles POST /api/v2/admin/content
func (h *ContentHandler) Create(c *gin.Context) {
	var req domain.CreateContentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	detail, err := h.content.Create(c.Request.Context(), middleware.GetActor(c), domain.ContentType(req.Type))
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Created(c, detail)
}

// List handles GET /api/v2/admin/content?status=&type=&page=&limit=
func (h *ContentHandler) List(c *gin.Context) {
	page, limit := ginutil.Page(c, 20, 100)
	filter := domain.ContentFilter{
		Status: domain.ContentStatus(strings.ToUpper(c.Query("status"))),
		Type:   domain.ContentType(strings.ToUpper(c.Query("type"))),
		Page:   page,
		Limit:  limit,
	}

	items, total, err := h.content.ListItems(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2SuccessWithMeta(c, items, common.NewV2Meta(page, limit, total))
}

// Get handles GET /api/v2/admin/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	detail, err := h.content.GetItem(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Success(c, detail)
}

// ListRevisions handles GET /api/v2/admin/content/:id/revisions
func (h *ContentHandler) ListRevisions(c *gin.Context) {
	revisions, err := h.content.ListRevisions(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Success(c, revisions)
}

// GetRevision handles GET /api/v2/admin/content/:id/revisions/:number
func (h *ContentHandler) GetRevision(c *gin.Context) {
	number, err := ginutil.ParamInt(c, "number")
	if err != nil || number < 1 {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid revision number", err)
		return
	}

	rev, err := h.content.GetRevision(c.Request.Context(), middleware.GetActor(c), c.Param("id"), number)
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Success(c, rev)
}

// ListFeedback handles GET /api/v2/admin/content/:id/feedback
func (h *ContentHandler) ListFeedback(c *gin.Context) {
	feedback, err := h.content.ListOpenFeedback(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Success(c, feedback)
}

// PerformIntent handles POST /api/v2/admin/content/:id/intents
func (h *ContentHandler) PerformIntent(c *gin.Context) {
	var req domain.IntentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.workflow.PerformIntent(c.Request.Context(), domain.IntentCommand{
		ItemID:        c.Param("id"),
		Intent:        domain.Intent(req.Intent),
		Actor:         middleware.GetActor(c),
		Payload:       req.Payload,
		ChangeSummary: req.ChangeSummary,
		Message:       req.Message,
	})
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Success(c, result)
}

// ReviewQueue handles GET /api/v2/admin/review
func (h *ContentHandler) ReviewQueue(c *gin.Context) {
	items, err := h.content.ReviewQueue(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Success(c, items)
}

// PublishQueue handles GET /api/v2/admin/publish
func (h *ContentHandler) PublishQueue(c *gin.Context) {
	items, err := h.content.PublishQueue(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Success(c, items)
}
