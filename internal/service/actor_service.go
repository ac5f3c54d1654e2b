package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/repository"
	pkglogger "github.com/redonshkr/gov-content-hub/pkg/logger"
)

// ActorService maps authenticated identities to workflow actors and manages roles
type ActorService interface {
	// Resolve upserts the user behind a verified identity and loads its roles
	Resolve(ctx context.Context, email, name, picture string) (*domain.Actor, error)
	ListUsers(ctx context.Context, actor *domain.Actor, page, limit int) ([]*domain.UserWithRoles, int64, error)
	SetRoles(ctx context.Context, actor *domain.Actor, userID string, roles []string) (*domain.UserWithRoles, error)
	// GrantRole adds role to the user with email, creating the user if needed
	GrantRole(ctx context.Context, email string, role domain.Role) (*domain.UserWithRoles, error)
}

type actorService struct {
	store *repository.Store
}

// NewActorService creates a new ActorService
func NewActorService(store *repository.Store) ActorService {
	return &actorService{store: store}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *actorService) Resolve(ctx context.Context, email, name, picture string) (*domain.Actor, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, common.Unauthorized("identity has no email")
	}
	user, err := s.store.Users.UpsertByEmail(ctx, email, strings.TrimSpace(name), picture)
	if err != nil {
		return nil, storeError(err, "User")
	}
	roles, err := s.store.Users.Roles(ctx, user.ID)
	if err != nil {
		return nil, storeError(err, "User")
	}
	return &domain.Actor{ID: user.ID, Email: user.Email, Name: user.Name, Roles: roles}, nil
}

func (s *actorService) ListUsers(ctx context.Context, actor *domain.Actor, page, limit int) ([]*domain.UserWithRoles, int64, error) {
	if err := requireRoles(actor, domain.AdminRoles); err != nil {
		return nil, 0, err
	}
	users, total, err := s.store.Users.List(ctx, page, limit)
	if err != nil {
		return nil, 0, storeError(err, "User")
	}
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	roles, err := s.store.Users.RolesFor(ctx, ids)
	if err != nil {
		return nil, 0, storeError(err, "User")
	}
	out := make([]*domain.UserWithRoles, len(users))
	for i, u := range users {
		r := roles[u.ID]
		if r == nil {
			r = []domain.Role{}
		}
		out[i] = &domain.UserWithRoles{AppUser: *u, Roles: r}
	}
	return out, total, nil
}

func (s *actorService) SetRoles(ctx context.Context, actor *domain.Actor, userID string, names []string) (*domain.UserWithRoles, error) {
	if err := requireRoles(actor, domain.AdminRoles); err != nil {
		return nil, err
	}
	roles, violations := parseRoles(names)
	if len(violations) > 0 {
		return nil, common.ValidationFailed(violations)
	}

	var user *domain.AppUser
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		found, err := tx.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		user = found
		return tx.Users.SetRoles(ctx, userID, roles)
	})
	if err != nil {
		return nil, storeError(err, "User")
	}

	pkglogger.GetLogger().Info().
		Str("user_id", userID).
		Str("by", actor.ID).
		Strs("roles", names).
		Msg("user roles replaced")

	current, err := s.store.Users.Roles(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User")
	}
	if current == nil {
		current = []domain.Role{}
	}
	return &domain.UserWithRoles{AppUser: *user, Roles: current}, nil
}

func (s *actorService) GrantRole(ctx context.Context, email string, role domain.Role) (*domain.UserWithRoles, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, common.ValidationFailed([]string{"Email is required"})
	}
	var out *domain.UserWithRoles
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.UpsertByEmail(ctx, email, "", "")
		if err != nil {
			return err
		}
		roles, err := tx.Users.Roles(ctx, user.ID)
		if err != nil {
			return err
		}
		if !containsRole(roles, role) {
			roles = append(roles, role)
			if err := tx.Users.SetRoles(ctx, user.ID, roles); err != nil {
				return err
			}
		}
		out = &domain.UserWithRoles{AppUser: *user, Roles: roles}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "User")
	}
	return out, nil
}

func parseRoles(names []string) ([]domain.Role, []string) {
	roles := make([]domain.Role, 0, len(names))
	var violations []string
	for _, name := range names {
		role, ok := domain.ParseRole(name)
		if !ok {
			violations = append(violations, fmt.Sprintf("Unknown role %q", name))
			continue
		}
		roles = append(roles, role)
	}
	return roles, violations
}

func containsRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
