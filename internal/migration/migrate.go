package migration

import (
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order
func Models() []interface{} {
	return []interface{}{
		&domain.AppUser{},
		&domain.UserRole{},
		&domain.ContentItem{},
		&domain.Revision{},
		&domain.ReviewFeedback{},
		&domain.AuditLog{},
	}
}

// Run creates or updates the schema. Safe to run repeatedly.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
