package service

import (
	"context"
	"testing"

	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&domain.ContentItem{},
		&domain.Revision{},
		&domain.ReviewFeedback{},
		&domain.AppUser{},
		&domain.UserRole{},
		&domain.AuditLog{},
	))
	return repository.NewStore(db)
}

// newActor stores a user with roles and returns it as an actor
func newActor(t *testing.T, store *repository.Store, email string, roles ...domain.Role) *domain.Actor {
	t.Helper()
	ctx := context.Background()
	user, err := store.Users.UpsertByEmail(ctx, email, email, "")
	require.NoError(t, err)
	require.NoError(t, store.Users.SetRoles(ctx, user.ID, roles))
	return &domain.Actor{ID: user.ID, Email: user.Email, Roles: roles}
}
