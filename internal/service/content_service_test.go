package service

import (
	"context"
	"testing"

	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCache stubs the slug entry calls; other methods are not expected
type mockCache struct {
	cache.Service
	mock.Mock
}

func (m *mockCache) GetPublishedItem(ctx context.Context, slug string, dest interface{}) error {
	return m.Called(slug).Error(0)
}

func (m *mockCache) SetPublishedItem(ctx context.Context, slug string, data interface{}) error {
	return m.Called(slug, data).Error(0)
}

func (m *mockCache) InvalidatePublished(ctx context.Context, slug string) error {
	return m.Called(slug).Error(0)
}

func publish(t *testing.T, f *workflowFixture, payload domain.NewsPayload) *domain.ContentDetail {
	t.Helper()
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, item.ID, domain.IntentSubmit, payload)
	require.NoError(t, err)
	_, err = f.do(f.editor, item.ID, domain.IntentApprove, nil)
	require.NoError(t, err)
	_, err = f.do(f.publisher, item.ID, domain.IntentPublish, nil)
	require.NoError(t, err)
	return item
}

func TestListRevisions_NewestFirst(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	item := f.create(t, domain.ContentTypeNews)
	for i := 0; i < 2; i++ {
		_, err := f.do(f.author, item.ID, domain.IntentSave, completeNews)
		require.NoError(t, err)
	}

	revs, err := f.content.ListRevisions(ctx, f.author, item.ID)
	require.NoError(t, err)
	require.Len(t, revs, 3)
	assert.Equal(t, 3, revs[0].RevisionNumber)
	assert.Equal(t, InitialChangeSummary, revs[2].ChangeSummary)

	rev, err := f.content.GetRevision(ctx, f.author, item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "Action: save", rev.ChangeSummary)

	_, err = f.content.GetRevision(ctx, f.author, item.ID, 7)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.content.ListRevisions(ctx, f.author, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.content.ListRevisions(ctx, nil, item.ID)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestGetItem_IncludesCurrentRevision(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, item.ID, domain.IntentSave, completeNews)
	require.NoError(t, err)

	detail, err := f.content.GetItem(context.Background(), f.editor, item.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.CurrentRevision)
	assert.Equal(t, 2, detail.CurrentRevision.RevisionNumber)
	assert.JSONEq(t, `{"title":"T","summary":"S","body":"B"}`, string(detail.CurrentRevision.Data))
}

func TestQueues(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	first := f.create(t, domain.ContentTypeNews)
	second := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, first.ID, domain.IntentSubmit, completeNews)
	require.NoError(t, err)
	_, err = f.do(f.author, second.ID, domain.IntentSubmit, domain.NewsPayload{Title: "Second", Summary: "S", Body: "B"})
	require.NoError(t, err)

	queue, err := f.content.ReviewQueue(ctx, f.editor)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	titles := []string{queue[0].Title, queue[1].Title}
	assert.ElementsMatch(t, []string{"T", "Second"}, titles)

	_, err = f.do(f.editor, first.ID, domain.IntentApprove, nil)
	require.NoError(t, err)

	approved, err := f.content.PublishQueue(ctx, f.publisher)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, first.ID, approved[0].ID)

	drafts, total, err := f.content.ListItems(ctx, f.author, domain.ContentFilter{Status: domain.StatusInReview})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, second.ID, drafts[0].ID)

	_, _, err = f.content.ListItems(ctx, f.author, domain.ContentFilter{Status: "LIVE"})
	assert.ErrorIs(t, err, common.ErrValidationFailed)
}

func TestListPublished_OnlyPublishedNewestFirst(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	older := publish(t, f, domain.NewsPayload{Title: "Older", Summary: "S", Body: "B"})
	newer := publish(t, f, domain.NewsPayload{Title: "Newer", Summary: "S", Body: "B"})
	f.create(t, domain.ContentTypeNews)

	page, err := f.content.ListPublished(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	ids := []string{page.Items[0].ID, page.Items[1].ID}
	assert.ElementsMatch(t, []string{older.ID, newer.ID}, ids)
	assert.False(t, page.Items[0].PublishedAt.Before(*page.Items[1].PublishedAt))

	pc, err := f.content.GetPublishedBySlug(ctx, newer.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Newer", pc.Title)

	_, err = f.do(f.admin, newer.ID, domain.IntentArchive, nil)
	require.NoError(t, err)
	_, err = f.content.GetPublishedBySlug(ctx, newer.Slug)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetPublishedBySlug_CachesOnMiss(t *testing.T) {
	f := newWorkflowFixture(t)
	item := publish(t, f, completeNews)

	c := &mockCache{}
	c.On("GetPublishedItem", item.Slug).Return(cache.ErrUnavailable)
	c.On("SetPublishedItem", item.Slug, mock.Anything).Return(nil)
	svc := NewContentService(f.store, c)

	pc, err := svc.GetPublishedBySlug(context.Background(), item.Slug)
	require.NoError(t, err)
	assert.Equal(t, item.ID, pc.ID)
	c.AssertCalled(t, "SetPublishedItem", item.Slug, mock.Anything)
	c.AssertNotCalled(t, "InvalidatePublished", mock.Anything)
}

func TestGetPublishedBySlug_DropsEntryArchivedDuringWrite(t *testing.T) {
	f := newWorkflowFixture(t)
	item := publish(t, f, completeNews)

	c := &mockCache{}
	c.On("GetPublishedItem", item.Slug).Return(cache.ErrUnavailable)
	c.On("SetPublishedItem", item.Slug, mock.Anything).Run(func(mock.Arguments) {
		_, err := f.do(f.admin, item.ID, domain.IntentArchive, nil)
		require.NoError(t, err)
	}).Return(nil)
	c.On("InvalidatePublished", item.Slug).Return(nil)
	svc := NewContentService(f.store, c)

	_, err := svc.GetPublishedBySlug(context.Background(), item.Slug)
	require.NoError(t, err)
	c.AssertCalled(t, "InvalidatePublished", item.Slug)

	_, err = svc.GetPublishedBySlug(context.Background(), item.Slug)
	requireKind(t, err, common.ErrNotFound)
}

func TestGetPublishedBySlug_DropsEntryEditedDuringWrite(t *testing.T) {
	f := newWorkflowFixture(t)
	item := publish(t, f, completeNews)

	c := &mockCache{}
	c.On("GetPublishedItem", item.Slug).Return(cache.ErrUnavailable)
	c.On("SetPublishedItem", item.Slug, mock.Anything).Run(func(mock.Arguments) {
		_, err := f.do(f.author, item.ID, domain.IntentSave, domain.NewsPayload{Title: "T2", Summary: "S", Body: "B"})
		require.NoError(t, err)
	}).Return(nil)
	c.On("InvalidatePublished", item.Slug).Return(nil)
	svc := NewContentService(f.store, c)

	_, err := svc.GetPublishedBySlug(context.Background(), item.Slug)
	require.NoError(t, err)
	c.AssertCalled(t, "InvalidatePublished", item.Slug)
}
