package repository

import (
	"context"

	"github.com/redonshkr/gov-content-hub/internal/domain"
	"gorm.io/gorm"
)

// RevisionRepository is the append-only revision ledger. It never updates
// or deletes a stored revision.
type RevisionRepository interface {
	// Create appends a revision numbered one past the item's current maximum.
	// Call it on a transactional Store so the number and the insert are atomic.
	Create(ctx context.Context, itemID, data, changeSummary string, createdBy *string) (*domain.Revision, error)
	// GetNextNumber returns MAX(revision_number)+1 for the item, or 1
	GetNextNumber(ctx context.Context, itemID string) (int, error)
	FindByID(ctx context.Context, id string) (*domain.Revision, error)
	// FindByItem returns every revision of the item, newest first
	FindByItem(ctx context.Context, itemID string) ([]*domain.Revision, error)
	FindByNumber(ctx context.Context, itemID string, number int) (*domain.Revision, error)
	// FindByIDs returns the revisions keyed by id; unknown ids are skipped
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Revision, error)
}

type revisionRepository struct {
	db *gorm.DB
}

// NewRevisionRepository creates a new RevisionRepository
func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) Create(ctx context.Context, itemID, data, changeSummary string, createdBy *string) (*domain.Revision, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.ContentItem{}).
		Where("id = ?", itemID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	next, err := r.GetNextNumber(ctx, itemID)
	if err != nil {
		return nil, err
	}

	revision := &domain.Revision{
		ID:              domain.NewID(),
		ItemID:          itemID,
		RevisionNumber:  next,
		Data:            data,
		ChangeSummary:   changeSummary,
		CreatedByUserID: createdBy,
	}
	if err := r.db.WithContext(ctx).Create(revision).Error; err != nil {
		return nil, err
	}
	return revision, nil
}

func (r *revisionRepository) GetNextNumber(ctx context.Context, itemID string) (int, error) {
	var maxNumber *int
	err := r.db.WithContext(ctx).Model(&domain.Revision{}).
		Where("item_id = ?", itemID).
		Select("MAX(revision_number)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}
	if maxNumber == nil {
		return 1, nil
	}
	return *maxNumber + 1, nil
}

func (r *revisionRepository) FindByID(ctx context.Context, id string) (*domain.Revision, error) {
	var revision domain.Revision
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&revision).Error; err != nil {
		return nil, err
	}
	return &revision, nil
}

func (r *revisionRepository) FindByItem(ctx context.Context, itemID string) ([]*domain.Revision, error) {
	var revisions []*domain.Revision
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("revision_number DESC").
		Find(&revisions).Error
	return revisions, err
}

func (r *revisionRepository) FindByNumber(ctx context.Context, itemID string, number int) (*domain.Revision, error) {
	var revision domain.Revision
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND revision_number = ?", itemID, number).
		First(&revision).Error
	if err != nil {
		return nil, err
	}
	return &revision, nil
}

func (r *revisionRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Revision, error) {
	result := make(map[string]*domain.Revision, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var revisions []*domain.Revision
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&revisions).Error; err != nil {
		return nil, err
	}
	for _, rev := range revisions {
		result[rev.ID] = rev
	}
	return result, nil
}
