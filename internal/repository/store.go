package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the workflow repositories over one database handle
type Store struct {
	db        *gorm.DB
	Items     ContentRepository
	Revisions RevisionRepository
	Feedback  FeedbackRepository
	Users     UserRepository
}

// NewStore creates a Store over db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Items:     NewContentRepository(db),
		Revisions: NewRevisionRepository(db),
		Feedback:  NewFeedbackRepository(db),
		Users:     NewUserRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database
// transaction. Any error returned by fn rolls back every write made through
// the transactional Store.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// DB returns the underlying handle
func (s *Store) DB() *gorm.DB {
	return s.db
}
