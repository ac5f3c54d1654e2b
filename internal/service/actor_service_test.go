package service

import (
	"context"
	"testing"

	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorService_ResolveUpserts(t *testing.T) {
	store := setupTestStore(t)
	svc := NewActorService(store)
	ctx := context.Background()

	actor, err := svc.Resolve(ctx, "  Jane@Example.GOV ", "Jane", "")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.gov", actor.Email)
	assert.Empty(t, actor.Roles)

	again, err := svc.Resolve(ctx, "jane@example.gov", "Jane D.", "")
	require.NoError(t, err)
	assert.Equal(t, actor.ID, again.ID)
	assert.Equal(t, "Jane D.", again.Name)

	_, err = svc.Resolve(ctx, " ", "", "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestActorService_SetRoles(t *testing.T) {
	store := setupTestStore(t)
	svc := NewActorService(store)
	ctx := context.Background()
	admin := newActor(t, store, "admin@example.gov", domain.RoleAdmin)
	editor := newActor(t, store, "editor@example.gov", domain.RoleEditor)

	_, err := svc.SetRoles(ctx, editor, admin.ID, []string{"AUTHOR"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = svc.SetRoles(ctx, admin, editor.ID, []string{"OWNER"})
	assert.ErrorIs(t, err, common.ErrValidationFailed)

	_, err = svc.SetRoles(ctx, admin, "missing", []string{"AUTHOR"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	updated, err := svc.SetRoles(ctx, admin, editor.ID, []string{"publisher", "EDITOR"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleEditor, domain.RolePublisher}, updated.Roles)

	resolved, err := svc.Resolve(ctx, "editor@example.gov", "", "")
	require.NoError(t, err)
	assert.True(t, resolved.HasRole(domain.RolePublisher))

	users, total, err := svc.ListUsers(ctx, admin, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 2)
	assert.Equal(t, "admin@example.gov", users[0].Email)
}

func TestActorService_GrantRoleIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	svc := NewActorService(store)
	ctx := context.Background()

	u, err := svc.GrantRole(ctx, "root@example.gov", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, u.Roles)

	u, err = svc.GrantRole(ctx, "root@example.gov", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, u.Roles)
}
