package service

import (
	"errors"
	"strings"

	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"gorm.io/gorm"
)

// storeError maps a repository failure onto the workflow error taxonomy
func storeError(err error, what string) error {
	if err == nil {
		return nil
	}
	var we *common.WorkflowError
	if errors.As(err, &we) {
		return we
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NotFound(what)
	}
	return common.Persistence(err)
}

// requireRoles is the authorization gate. It runs before any read.
func requireRoles(actor *domain.Actor, required []domain.Role) error {
	if actor == nil || actor.ID == "" {
		return common.Unauthorized("sign-in required")
	}
	if !domain.Authorize(actor.Roles, required) {
		names := make([]string, len(required))
		for i, r := range required {
			names[i] = string(r)
		}
		return common.Unauthorized("requires one of: " + strings.Join(names, ", "))
	}
	return nil
}
