package repository

import (
	"context"
	"time"

	"github.com/redonshkr/gov-content-hub/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentRepository handles content item data operations
type ContentRepository interface {
	// Create inserts a new item
	Create(ctx context.Context, item *domain.ContentItem) error
	// FindByID returns an item
	FindByID(ctx context.Context, id string) (*domain.ContentItem, error)
	// FindByIDForUpdate returns an item and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id string) (*domain.ContentItem, error)
	// FindBySlug returns an item by its slug
	FindBySlug(ctx context.Context, slug string) (*domain.ContentItem, error)
	// SetCurrentRevision repoints the live revision
	SetCurrentRevision(ctx context.Context, itemID, revisionID string) error
	// UpdateWorkflowState writes status and the submission/publication stamps
	UpdateWorkflowState(ctx context.Context, item *domain.ContentItem) error
	// List returns items matching filter, most recently updated first
	List(ctx context.Context, filter domain.ContentFilter) ([]*domain.ContentItem, int64, error)
	// ListByStatus returns all items in status ordered by orderColumn DESC
	ListByStatus(ctx context.Context, status domain.ContentStatus, orderColumn string) ([]*domain.ContentItem, error)
	// ListPublished returns published items, newest publication first
	ListPublished(ctx context.Context, page, limit int) ([]*domain.ContentItem, int64, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, item *domain.ContentItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *contentRepository) FindByID(ctx context.Context, id string) (*domain.ContentItem, error) {
	var item domain.ContentItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) FindBySlug(ctx context.Context, slug string) (*domain.ContentItem, error) {
	var item domain.ContentItem
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) SetCurrentRevision(ctx context.Context, itemID, revisionID string) error {
	result := r.db.WithContext(ctx).Model(&domain.ContentItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"current_revision_id": revisionID,
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contentRepository) UpdateWorkflowState(ctx context.Context, item *domain.ContentItem) error {
	// A map is used so nil stamps are written as NULL.
	result := r.db.WithContext(ctx).Model(&domain.ContentItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"status":               item.Status,
			"submitted_at":         item.SubmittedAt,
			"submitted_by_user_id": item.SubmittedByUserID,
			"published_at":         item.PublishedAt,
			"updated_at":           time.Now(),
		})
	return result.Error
}

func (r *contentRepository) List(ctx context.Context, filter domain.ContentFilter) ([]*domain.ContentItem, int64, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)

	query := r.db.WithContext(ctx).Model(&domain.ContentItem{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.ContentItem
	err := query.Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *contentRepository) ListByStatus(ctx context.Context, status domain.ContentStatus, orderColumn string) ([]*domain.ContentItem, error) {
	switch orderColumn {
	case "submitted_at", "published_at", "updated_at", "created_at":
	default:
		orderColumn = "updated_at"
	}

	var items []*domain.ContentItem
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order(orderColumn + " DESC").
		Find(&items).Error
	return items, err
}

func (r *contentRepository) ListPublished(ctx context.Context, page, limit int) ([]*domain.ContentItem, int64, error) {
	page, limit = normalizePage(page, limit)

	query := r.db.WithContext(ctx).Model(&domain.ContentItem{}).
		Where("status = ?", domain.StatusPublished)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.ContentItem
	err := query.Order("published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// normalizePage applies pagination defaults: page >= 1, 1 <= limit <= 100 (default 20)
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
