package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/middleware"
	"github.com/redonshkr/gov-content-hub/internal/service"
	"github.com/redonshkr/gov-content-hub/pkg/ginutil"
)

// UserHandler serves user and role management
type UserHandler struct {
	actors service.ActorService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(actors service.ActorService) *UserHandler {
	return &UserHandler{actors: actors}
}

// Me handles GET /api/v2/me
func (h *UserHandler) Me(c *gin.Context) {
	common.V2Success(c, middleware.GetActor(c))
}

// List handles GET /api/v2/admin/users
func (h *UserHandler) List(c *gin.Context) {
	page, limit := ginutil.Page(c, 20, 100)
	users, total, err := h.actors.ListUsers(c.Request.Context(), middleware.GetActor(c), page, limit)
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2SuccessWithMeta(c, users, common.NewV2Meta(page, limit, total))
}

// SetRoles handles PUT /api/v2/admin/users/:id/roles
func (h *UserHandler) SetRoles(c *gin.Context) {
	var req domain.SetRolesRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.actors.SetRoles(c.Request.Context(), middleware.GetActor(c), c.Param("id"), req.Roles)
	if err != nil {
		common.WorkflowErrorResponse(c, err)
		return
	}
	common.V2Success(c, user)
}
