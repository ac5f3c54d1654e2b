package service

import (
	"context"
	"strings"

	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/repository"
	es "github.com/redonshkr/gov-content-hub/pkg/elasticsearch"
	pkglogger "github.com/redonshkr/gov-content-hub/pkg/logger"
)

// SearchService provides full-text search over published content
type SearchService struct {
	backend SearchBackend
	store   *repository.Store
}

// NewSearchService creates a SearchService. backend may be nil, in which
// case every call returns ErrSearchUnavailable.
func NewSearchService(backend SearchBackend, store *repository.Store) *SearchService {
	return &SearchService{backend: backend, store: store}
}

// Available reports whether a search backend is configured
func (s *SearchService) Available() bool {
	return s.backend != nil
}

// Search runs a query over published titles and bodies
func (s *SearchService) Search(ctx context.Context, query string, page, limit int) (*es.SearchResult, error) {
	if s.backend == nil {
		return nil, common.ErrSearchUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, common.ValidationFailed([]string{"Query is required"})
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return s.backend.SearchContent(ctx, query, (page-1)*limit, limit)
}

// Reindex pushes every published item into the index and returns the count
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	if s.backend == nil {
		return 0, common.ErrSearchUnavailable
	}
	const pageSize = 100
	indexed := 0
	for page := 1; ; page++ {
		items, total, err := s.store.Items.ListPublished(ctx, page, pageSize)
		if err != nil {
			return indexed, storeError(err, "Content item")
		}
		ids := make([]string, 0, len(items))
		for _, item := range items {
			if item.CurrentRevisionID != nil {
				ids = append(ids, *item.CurrentRevisionID)
			}
		}
		revisions, err := s.store.Revisions.FindByIDs(ctx, ids)
		if err != nil {
			return indexed, storeError(err, "Revision")
		}
		for _, item := range items {
			doc, err := contentDocument(item, revisionFor(item, revisions))
			if err != nil {
				pkglogger.GetLogger().Warn().Err(err).Str("item_id", item.ID).Msg("reindex: skipping item")
				continue
			}
			if err := s.backend.IndexContent(ctx, doc); err != nil {
				return indexed, err
			}
			indexed++
		}
		if int64(page*pageSize) >= total || len(items) == 0 {
			return indexed, nil
		}
	}
}
