package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/repository"
	"github.com/redonshkr/gov-content-hub/pkg/cache"
	pkglogger "github.com/redonshkr/gov-content-hub/pkg/logger"
)

// InitialChangeSummary labels revision #1 of every item
const InitialChangeSummary = "Initial draft"

// ContentService business logic for content items and their read views
type ContentService interface {
	Create(ctx context.Context, actor *domain.Actor, contentType domain.ContentType) (*domain.ContentDetail, error)
	GetItem(ctx context.Context, actor *domain.Actor, id string) (*domain.ContentDetail, error)
	ListItems(ctx context.Context, actor *domain.Actor, filter domain.ContentFilter) ([]*domain.ContentSummary, int64, error)
	ListRevisions(ctx context.Context, actor *domain.Actor, itemID string) ([]domain.RevisionResponse, error)
	GetRevision(ctx context.Context, actor *domain.Actor, itemID string, number int) (*domain.RevisionResponse, error)
	ListOpenFeedback(ctx context.Context, actor *domain.Actor, itemID string) ([]*domain.ReviewFeedback, error)
	ReviewQueue(ctx context.Context, actor *domain.Actor) ([]*domain.ContentSummary, error)
	PublishQueue(ctx context.Context, actor *domain.Actor) ([]*domain.ContentSummary, error)
	ListPublished(ctx context.Context, page, limit int) (*domain.PublishedPage, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.PublishedContent, error)
}

type contentService struct {
	store *repository.Store
	cache cache.Service
	now   func() time.Time
}

// NewContentService creates a new ContentService. c may be nil.
func NewContentService(store *repository.Store, c cache.Service) ContentService {
	return &contentService{store: store, cache: c, now: time.Now}
}

// Create allocates a DRAFT item with revision #1 holding the type's empty payload
func (s *contentService) Create(ctx context.Context, actor *domain.Actor, contentType domain.ContentType) (*domain.ContentDetail, error) {
	if err := requireRoles(actor, domain.AuthorRoles); err != nil {
		return nil, err
	}
	payload, err := domain.DefaultPayload(contentType)
	if err != nil {
		return nil, common.ValidationFailed([]string{err.Error()})
	}
	data, err := domain.EncodePayload(payload)
	if err != nil {
		return nil, common.Persistence(err)
	}

	item := &domain.ContentItem{
		ID:              domain.NewID(),
		Type:            contentType,
		Slug:            domain.MakeSlug(contentType, s.now()),
		Status:          domain.StatusDraft,
		CreatedByUserID: actor.ActorID(),
	}
	var rev *domain.Revision
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Items.Create(ctx, item); err != nil {
			return err
		}
		created, err := tx.Revisions.Create(ctx, item.ID, data, InitialChangeSummary, actor.ActorID())
		if err != nil {
			return err
		}
		if err := tx.Items.SetCurrentRevision(ctx, item.ID, created.ID); err != nil {
			return err
		}
		item.CurrentRevisionID = &created.ID
		rev = created
		return nil
	})
	if err != nil {
		return nil, storeError(err, "Content item")
	}

	pkglogger.GetLogger().Info().
		Str("item_id", item.ID).
		Str("type", string(item.Type)).
		Str("user_id", actor.ID).
		Msg("content item created")

	resp := domain.NewRevisionResponse(rev)
	return &domain.ContentDetail{ContentItem: *item, CurrentRevision: &resp}, nil
}

func (s *contentService) GetItem(ctx context.Context, actor *domain.Actor, id string) (*domain.ContentDetail, error) {
	if err := requireRoles(actor, domain.AuthorRoles); err != nil {
		return nil, err
	}
	item, err := s.store.Items.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Content item")
	}
	detail := &domain.ContentDetail{ContentItem: *item}
	if item.CurrentRevisionID != nil {
		rev, err := s.store.Revisions.FindByID(ctx, *item.CurrentRevisionID)
		if err != nil {
			return nil, storeError(err, "Revision")
		}
		resp := domain.NewRevisionResponse(rev)
		detail.CurrentRevision = &resp
	}
	return detail, nil
}

func (s *contentService) ListItems(ctx context.Context, actor *domain.Actor, filter domain.ContentFilter) ([]*domain.ContentSummary, int64, error) {
	if err := requireRoles(actor, domain.AuthorRoles); err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, common.ValidationFailed([]string{fmt.Sprintf("Unknown status %q", filter.Status)})
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, common.ValidationFailed([]string{fmt.Sprintf("Unknown content type %q", filter.Type)})
	}
	items, total, err := s.store.Items.List(ctx, filter)
	if err != nil {
		return nil, 0, storeError(err, "Content item")
	}
	summaries, err := s.summarize(ctx, items)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (s *contentService) ListRevisions(ctx context.Context, actor *domain.Actor, itemID string) ([]domain.RevisionResponse, error) {
	if err := s.requireItem(ctx, actor, itemID); err != nil {
		return nil, err
	}
	revisions, err := s.store.Revisions.FindByItem(ctx, itemID)
	if err != nil {
		return nil, storeError(err, "Revision")
	}
	out := make([]domain.RevisionResponse, len(revisions))
	for i, rev := range revisions {
		out[i] = domain.NewRevisionResponse(rev)
	}
	return out, nil
}

func (s *contentService) GetRevision(ctx context.Context, actor *domain.Actor, itemID string, number int) (*domain.RevisionResponse, error) {
	if err := s.requireItem(ctx, actor, itemID); err != nil {
		return nil, err
	}
	rev, err := s.store.Revisions.FindByNumber(ctx, itemID, number)
	if err != nil {
		return nil, storeError(err, "Revision")
	}
	resp := domain.NewRevisionResponse(rev)
	return &resp, nil
}

func (s *contentService) ListOpenFeedback(ctx context.Context, actor *domain.Actor, itemID string) ([]*domain.ReviewFeedback, error) {
	if err := s.requireItem(ctx, actor, itemID); err != nil {
		return nil, err
	}
	feedback, err := s.store.Feedback.FindOpenByItem(ctx, itemID)
	if err != nil {
		return nil, storeError(err, "Feedback")
	}
	return feedback, nil
}

// ReviewQueue lists IN_REVIEW items, most recently submitted first
func (s *contentService) ReviewQueue(ctx context.Context, actor *domain.Actor) ([]*domain.ContentSummary, error) {
	return s.queue(ctx, actor, domain.StatusInReview, "submitted_at")
}

// PublishQueue lists APPROVED items, most recently updated first
func (s *contentService) PublishQueue(ctx context.Context, actor *domain.Actor) ([]*domain.ContentSummary, error) {
	return s.queue(ctx, actor, domain.StatusApproved, "updated_at")
}

func (s *contentService) queue(ctx context.Context, actor *domain.Actor, status domain.ContentStatus, order string) ([]*domain.ContentSummary, error) {
	if err := requireRoles(actor, domain.AuthorRoles); err != nil {
		return nil, err
	}
	items, err := s.store.Items.ListByStatus(ctx, status, order)
	if err != nil {
		return nil, storeError(err, "Content item")
	}
	return s.summarize(ctx, items)
}

// ListPublished is the public listing, newest publication first. Pages are
// served from redis when available.
func (s *contentService) ListPublished(ctx context.Context, page, limit int) (*domain.PublishedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if s.cache != nil {
		var cached domain.PublishedPage
		err := s.cache.GetPublishedList(ctx, page, limit, &cached)
		if err == nil {
			return &cached, nil
		}
		if !cache.IsMiss(err) {
			pkglogger.GetLogger().Warn().Err(err).Msg("published list cache read failed")
		}
	}

	items, total, err := s.store.Items.ListPublished(ctx, page, limit)
	if err != nil {
		return nil, storeError(err, "Content item")
	}
	revisions, err := s.currentRevisions(ctx, items)
	if err != nil {
		return nil, err
	}

	result := &domain.PublishedPage{Items: make([]domain.PublishedContent, 0, len(items)), Total: total}
	for _, item := range items {
		pc, err := publishedView(item, revisionFor(item, revisions))
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, *pc)
	}

	if s.cache != nil {
		if err := s.cache.SetPublishedList(ctx, page, limit, result); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("published list cache write failed")
		}
	}
	return result, nil
}

// GetPublishedBySlug returns a published item. Unpublished items are reported as missing.
func (s *contentService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.PublishedContent, error) {
	slug = strings.TrimSpace(slug)
	if s.cache != nil {
		var cached domain.PublishedContent
		if err := s.cache.GetPublishedItem(ctx, slug, &cached); err == nil {
			return &cached, nil
		}
	}

	item, err := s.store.Items.FindBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, "Content")
	}
	if item.Status != domain.StatusPublished {
		return nil, common.NotFound("Content")
	}
	var rev *domain.Revision
	if item.CurrentRevisionID != nil {
		rev, err = s.store.Revisions.FindByID(ctx, *item.CurrentRevisionID)
		if err != nil {
			return nil, storeError(err, "Revision")
		}
	}
	pc, err := publishedView(item, rev)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cachePublishedItem(ctx, slug, item.CurrentRevisionID, pc)
	}
	return pc, nil
}

// cachePublishedItem stores pc and re-reads the row afterwards. A change
// that committed between the read and the write has already run its
// invalidation, so the entry is dropped here instead.
func (s *contentService) cachePublishedItem(ctx context.Context, slug string, revisionID *string, pc *domain.PublishedContent) {
	log := pkglogger.GetLogger()
	if err := s.cache.SetPublishedItem(ctx, slug, pc); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("published item cache write failed")
		return
	}
	item, err := s.store.Items.FindBySlug(ctx, slug)
	if err == nil && item.Status == domain.StatusPublished && sameID(item.CurrentRevisionID, revisionID) {
		return
	}
	if err := s.cache.InvalidatePublished(ctx, slug); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("stale published item eviction failed")
	}
}

func (s *contentService) requireItem(ctx context.Context, actor *domain.Actor, itemID string) error {
	if err := requireRoles(actor, domain.AuthorRoles); err != nil {
		return err
	}
	if _, err := s.store.Items.FindByID(ctx, itemID); err != nil {
		return storeError(err, "Content item")
	}
	return nil
}

func (s *contentService) currentRevisions(ctx context.Context, items []*domain.ContentItem) (map[string]*domain.Revision, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.CurrentRevisionID != nil {
			ids = append(ids, *item.CurrentRevisionID)
		}
	}
	revisions, err := s.store.Revisions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err, "Revision")
	}
	return revisions, nil
}

func (s *contentService) summarize(ctx context.Context, items []*domain.ContentItem) ([]*domain.ContentSummary, error) {
	revisions, err := s.currentRevisions(ctx, items)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ContentSummary, len(items))
	for i, item := range items {
		out[i] = &domain.ContentSummary{ContentItem: *item, Title: revisionTitle(item.Type, revisionFor(item, revisions))}
	}
	return out, nil
}

func revisionFor(item *domain.ContentItem, revisions map[string]*domain.Revision) *domain.Revision {
	if item.CurrentRevisionID == nil {
		return nil
	}
	return revisions[*item.CurrentRevisionID]
}

func revisionTitle(t domain.ContentType, rev *domain.Revision) string {
	if rev == nil {
		return ""
	}
	p, err := domain.DecodePayload(t, []byte(rev.Data))
	if err != nil {
		return ""
	}
	return domain.PayloadTitle(p)
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func publishedView(item *domain.ContentItem, rev *domain.Revision) (*domain.PublishedContent, error) {
	pc := &domain.PublishedContent{
		ID:          item.ID,
		Type:        item.Type,
		Slug:        item.Slug,
		PublishedAt: item.PublishedAt,
		Data:        json.RawMessage("{}"),
	}
	if rev == nil {
		return pc, nil
	}
	p, err := domain.DecodePayload(item.Type, []byte(rev.Data))
	if err != nil {
		return nil, common.Persistence(fmt.Errorf("revision %s: %w", rev.ID, err))
	}
	pc.Title = domain.PayloadTitle(p)
	pc.Data = json.RawMessage(rev.Data)
	return pc, nil
}
