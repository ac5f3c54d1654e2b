package repository

import (
	"context"
	"time"

	"github.com/redonshkr/gov-content-hub/internal/domain"
	"gorm.io/gorm"
)

// FeedbackRepository handles review feedback data operations
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.ReviewFeedback) error
	// ResolveOpen marks every open feedback row of the item resolved
	ResolveOpen(ctx context.Context, itemID string, resolvedBy *string, at time.Time) (int64, error)
	// FindOpenByItem returns unresolved feedback, newest first
	FindOpenByItem(ctx context.Context, itemID string) ([]*domain.ReviewFeedback, error)
	// FindByItem returns all feedback, newest first
	FindByItem(ctx context.Context, itemID string) ([]*domain.ReviewFeedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.ReviewFeedback) error {
	if feedback.ID == "" {
		feedback.ID = domain.NewID()
	}
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) ResolveOpen(ctx context.Context, itemID string, resolvedBy *string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.ReviewFeedback{}).
		Where("item_id = ? AND resolved_at IS NULL", itemID).
		Updates(map[string]interface{}{
			"resolved_at":         at,
			"resolved_by_user_id": resolvedBy,
		})
	return result.RowsAffected, result.Error
}

func (r *feedbackRepository) FindOpenByItem(ctx context.Context, itemID string) ([]*domain.ReviewFeedback, error) {
	var feedback []*domain.ReviewFeedback
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND resolved_at IS NULL", itemID).
		Order("created_at DESC").
		Find(&feedback).Error
	return feedback, err
}

func (r *feedbackRepository) FindByItem(ctx context.Context, itemID string) ([]*domain.ReviewFeedback, error) {
	var feedback []*domain.ReviewFeedback
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&feedback).Error
	return feedback, err
}
