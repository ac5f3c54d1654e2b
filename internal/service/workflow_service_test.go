package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workflowFixture struct {
	store     *repository.Store
	content   ContentService
	workflow  WorkflowService
	author    *domain.Actor
	editor    *domain.Actor
	publisher *domain.Actor
	admin     *domain.Actor
	recorder  *recordingHook
}

type recordingHook struct {
	mu     sync.Mutex
	events []*TransitionEvent
	err    error
}

func (h *recordingHook) Name() string { return "recording" }

func (h *recordingHook) AfterTransition(_ context.Context, ev *TransitionEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
	return h.err
}

func (h *recordingHook) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	store := setupTestStore(t)
	rec := &recordingHook{}
	return &workflowFixture{
		store:     store,
		content:   NewContentService(store, nil),
		workflow:  NewWorkflowService(store, rec),
		author:    newActor(t, store, "author@example.gov", domain.RoleAuthor),
		editor:    newActor(t, store, "editor@example.gov", domain.RoleEditor),
		publisher: newActor(t, store, "publisher@example.gov", domain.RolePublisher),
		admin:     newActor(t, store, "admin@example.gov", domain.RoleAdmin),
		recorder:  rec,
	}
}

func (f *workflowFixture) create(t *testing.T, ct domain.ContentType) *domain.ContentDetail {
	t.Helper()
	detail, err := f.content.Create(context.Background(), f.author, ct)
	require.NoError(t, err)
	return detail
}

func (f *workflowFixture) do(actor *domain.Actor, itemID string, intent domain.Intent, payload interface{}) (*domain.IntentResult, error) {
	cmd := domain.IntentCommand{ItemID: itemID, Intent: intent, Actor: actor}
	if payload != nil {
		raw, _ := json.Marshal(payload)
		cmd.Payload = raw
	}
	return f.workflow.PerformIntent(context.Background(), cmd)
}

func (f *workflowFixture) item(t *testing.T, id string) *domain.ContentItem {
	t.Helper()
	item, err := f.store.Items.FindByID(context.Background(), id)
	require.NoError(t, err)
	return item
}

func (f *workflowFixture) revisionCount(t *testing.T, id string) int {
	t.Helper()
	revs, err := f.store.Revisions.FindByItem(context.Background(), id)
	require.NoError(t, err)
	return len(revs)
}

var completeNews = domain.NewsPayload{Title: "T", Summary: "S", Body: "B"}

func requireKind(t *testing.T, err error, kind error) *common.WorkflowError {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
	we := common.AsWorkflowError(err)
	require.NotNil(t, we)
	return we
}

func TestCreate_StartsDraftWithInitialRevision(t *testing.T) {
	f := newWorkflowFixture(t)

	detail := f.create(t, domain.ContentTypeService)
	assert.Equal(t, domain.StatusDraft, detail.Status)
	assert.Regexp(t, `^service-\d+-[0-9a-z]{6}$`, detail.Slug)
	require.NotNil(t, detail.CurrentRevision)
	assert.Equal(t, 1, detail.CurrentRevision.RevisionNumber)
	assert.Equal(t, InitialChangeSummary, detail.CurrentRevision.ChangeSummary)
	assert.JSONEq(t, `{"title":"","steps":[]}`, string(detail.CurrentRevision.Data))

	stored := f.item(t, detail.ID)
	require.NotNil(t, stored.CurrentRevisionID)
	assert.Equal(t, detail.CurrentRevision.ID, *stored.CurrentRevisionID)
	require.NotNil(t, stored.CreatedByUserID)
	assert.Equal(t, f.author.ID, *stored.CreatedByUserID)
}

func TestCreate_RequiresAuthor(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.content.Create(context.Background(), nil, domain.ContentTypeNews)
	requireKind(t, err, common.ErrUnauthorized)

	nobody := newActor(t, f.store, "nobody@example.gov")
	_, err = f.content.Create(context.Background(), nobody, domain.ContentTypeNews)
	requireKind(t, err, common.ErrUnauthorized)

	_, err = f.content.Create(context.Background(), f.author, domain.ContentType("BLOG"))
	requireKind(t, err, common.ErrValidationFailed)
}

func TestSubmit_EmptyServiceFailsValidation(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeService)

	_, err := f.do(f.author, item.ID, domain.IntentSubmit, nil)
	we := requireKind(t, err, common.ErrValidationFailed)
	assert.Equal(t, []string{domain.MsgTitleRequired, domain.MsgStepRequired}, we.Violations)

	assert.Equal(t, domain.StatusDraft, f.item(t, item.ID).Status)
	assert.Equal(t, 1, f.revisionCount(t, item.ID))
	assert.Zero(t, f.recorder.count())
}

func TestSubmit_CompleteNewsEntersReview(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)

	_, err := f.do(f.author, item.ID, domain.IntentSave, completeNews)
	require.NoError(t, err)
	require.Equal(t, 2, f.revisionCount(t, item.ID))

	result, err := f.do(f.author, item.ID, domain.IntentSubmit, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, result.PreviousStatus)
	assert.Equal(t, domain.StatusInReview, result.Status)
	assert.Nil(t, result.RevisionID)

	stored := f.item(t, item.ID)
	assert.Equal(t, domain.StatusInReview, stored.Status)
	require.NotNil(t, stored.SubmittedAt)
	require.NotNil(t, stored.SubmittedByUserID)
	assert.Equal(t, f.author.ID, *stored.SubmittedByUserID)
	assert.Equal(t, 2, f.revisionCount(t, item.ID), "submit without payload must not create a revision")
}

func TestSubmit_WithPayloadSavesThenTransitions(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypePolicy)

	result, err := f.do(f.author, item.ID, domain.IntentSubmit, domain.PolicyPayload{Title: "  Parking  ", Body: "Rules"})
	require.NoError(t, err)
	require.NotNil(t, result.RevisionID)
	assert.Equal(t, 2, result.RevisionNumber)

	rev, err := f.store.Revisions.FindByNumber(context.Background(), item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "Action: submit", rev.ChangeSummary)
	assert.JSONEq(t, `{"title":"Parking","body":"Rules"}`, rev.Data)
}

func TestApprove_AuthorIsUnauthorized(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, item.ID, domain.IntentSubmit, completeNews)
	require.NoError(t, err)

	_, err = f.do(f.author, item.ID, domain.IntentApprove, nil)
	requireKind(t, err, common.ErrUnauthorized)
	assert.Equal(t, domain.StatusInReview, f.item(t, item.ID).Status)
}

func TestUnauthorized_CheckedBeforeLookup(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.do(nil, "does-not-exist", domain.IntentSave, completeNews)
	requireKind(t, err, common.ErrUnauthorized)

	_, err = f.do(f.author, "does-not-exist", domain.IntentSave, completeNews)
	requireKind(t, err, common.ErrNotFound)
}

func TestSave_PublishedItemKeepsStatus(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, item.ID, domain.IntentSubmit, completeNews)
	require.NoError(t, err)
	_, err = f.do(f.editor, item.ID, domain.IntentApprove, nil)
	require.NoError(t, err)
	_, err = f.do(f.publisher, item.ID, domain.IntentPublish, nil)
	require.NoError(t, err)
	published := f.item(t, item.ID)
	require.NotNil(t, published.PublishedAt)

	edited := completeNews
	edited.Body = "Updated body"
	result, err := f.do(f.author, item.ID, domain.IntentSave, edited)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, result.Status)

	stored := f.item(t, item.ID)
	assert.Equal(t, domain.StatusPublished, stored.Status)
	require.NotNil(t, stored.CurrentRevisionID)
	assert.Equal(t, *result.RevisionID, *stored.CurrentRevisionID)
	assert.Equal(t, 3, result.RevisionNumber)
	assert.Equal(t, published.PublishedAt.Unix(), stored.PublishedAt.Unix())
}

func TestSave_AllowedOnArchived(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.admin, item.ID, domain.IntentArchive, nil)
	require.NoError(t, err)

	result, err := f.do(f.author, item.ID, domain.IntentSave, completeNews)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, result.Status)
}

func TestSave_RequiresPayload(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)

	_, err := f.do(f.author, item.ID, domain.IntentSave, nil)
	we := requireKind(t, err, common.ErrValidationFailed)
	assert.Equal(t, []string{MsgPayloadRequired}, we.Violations)
}

func TestSave_RejectsForeignFields(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypePolicy)

	_, err := f.do(f.author, item.ID, domain.IntentSave, map[string]interface{}{"title": "x", "steps": []string{"a"}})
	requireKind(t, err, common.ErrValidationFailed)
	assert.Equal(t, 1, f.revisionCount(t, item.ID))
}

// itemIn creates a NEWS item and drives it into status
func (f *workflowFixture) itemIn(t *testing.T, status domain.ContentStatus) string {
	t.Helper()
	id := f.create(t, domain.ContentTypeNews).ID
	steps := map[domain.ContentStatus][]func() error{
		domain.StatusDraft: nil,
		domain.StatusInReview: {
			func() error { _, err := f.do(f.author, id, domain.IntentSubmit, completeNews); return err },
		},
		domain.StatusAwaitingChanges: {
			func() error { _, err := f.do(f.author, id, domain.IntentSubmit, completeNews); return err },
			func() error {
				_, err := f.workflow.PerformIntent(context.Background(), domain.IntentCommand{
					ItemID: id, Intent: domain.IntentRequestChanges, Actor: f.editor, Message: "Add a date",
				})
				return err
			},
		},
		domain.StatusApproved: {
			func() error { _, err := f.do(f.author, id, domain.IntentSubmit, completeNews); return err },
			func() error { _, err := f.do(f.editor, id, domain.IntentApprove, nil); return err },
		},
		domain.StatusPublished: {
			func() error { _, err := f.do(f.author, id, domain.IntentSubmit, completeNews); return err },
			func() error { _, err := f.do(f.editor, id, domain.IntentApprove, nil); return err },
			func() error { _, err := f.do(f.publisher, id, domain.IntentPublish, nil); return err },
		},
		domain.StatusArchived: {
			func() error { _, err := f.do(f.admin, id, domain.IntentArchive, nil); return err },
		},
	}
	for _, step := range steps[status] {
		require.NoError(t, step())
	}
	require.Equal(t, status, f.item(t, id).Status)
	return id
}

func (f *workflowFixture) openFeedbackCount(t *testing.T, id string) int {
	t.Helper()
	open, err := f.store.Feedback.FindOpenByItem(context.Background(), id)
	require.NoError(t, err)
	return len(open)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func TestInvalidTransition_EveryCellHasNoSideEffects(t *testing.T) {
	f := newWorkflowFixture(t)
	chief := newActor(t, f.store, "chief@example.gov", domain.AllRoles...)

	payloads := map[string]interface{}{
		"no payload":       nil,
		"blank payload":    domain.NewsPayload{},
		"complete payload": completeNews,
	}

	for _, status := range domain.AllStatuses {
		for _, intent := range domain.AllIntents {
			transition, ok := domain.LookupTransition(intent)
			require.True(t, ok)
			if transition.Allows(status) {
				continue
			}
			for name, payload := range payloads {
				t.Run(string(status)+"/"+string(intent)+"/"+name, func(t *testing.T) {
					id := f.itemIn(t, status)
					before := f.item(t, id)
					revisions := f.revisionCount(t, id)
					feedback := f.openFeedbackCount(t, id)
					hooks := f.recorder.count()

					cmd := domain.IntentCommand{ItemID: id, Intent: intent, Actor: chief}
					if payload != nil {
						raw, err := json.Marshal(payload)
						require.NoError(t, err)
						cmd.Payload = raw
					}
					_, err := f.workflow.PerformIntent(context.Background(), cmd)
					we := requireKind(t, err, common.ErrInvalidTransition)
					assert.Equal(t, string(status), we.CurrentStatus)
					assert.Equal(t, statusNames(transition.SourceStatuses()), we.RequiredStatuses)

					after := f.item(t, id)
					assert.Equal(t, before.Status, after.Status)
					assert.Equal(t, *before.CurrentRevisionID, *after.CurrentRevisionID)
					assert.True(t, sameTime(before.SubmittedAt, after.SubmittedAt))
					assert.True(t, sameTime(before.PublishedAt, after.PublishedAt))
					assert.Equal(t, revisions, f.revisionCount(t, id))
					assert.Equal(t, feedback, f.openFeedbackCount(t, id))
					assert.Equal(t, hooks, f.recorder.count())
				})
			}
		}
	}
}

func TestInvalidTransition_ReportedBeforeValidation(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)

	_, err := f.do(f.editor, item.ID, domain.IntentApprove, nil)
	we := requireKind(t, err, common.ErrInvalidTransition)
	assert.Equal(t, []string{string(domain.StatusInReview)}, we.RequiredStatuses)
	assert.Equal(t, "Must be IN_REVIEW to approve", we.Message)
	assert.Empty(t, we.Violations)

	_, err = f.do(f.publisher, item.ID, domain.IntentPublish, nil)
	requireKind(t, err, common.ErrInvalidTransition)

	_, err = f.workflow.PerformIntent(context.Background(), domain.IntentCommand{
		ItemID: item.ID, Intent: domain.IntentRequestChanges, Actor: f.editor,
	})
	requireKind(t, err, common.ErrInvalidTransition)
}

func TestNullPayload_CountsAsAbsent(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)

	_, err := f.workflow.PerformIntent(context.Background(), domain.IntentCommand{
		ItemID: item.ID, Intent: domain.IntentSave, Actor: f.author, Payload: json.RawMessage("null"),
	})
	we := requireKind(t, err, common.ErrValidationFailed)
	assert.Equal(t, []string{MsgPayloadRequired}, we.Violations)

	_, err = f.workflow.PerformIntent(context.Background(), domain.IntentCommand{
		ItemID: item.ID, Intent: domain.IntentSubmit, Actor: f.author, Payload: json.RawMessage(" null "),
	})
	we = requireKind(t, err, common.ErrValidationFailed)
	assert.Equal(t, []string{domain.MsgTitleRequired, domain.MsgSummaryRequired, domain.MsgBodyRequired}, we.Violations)

	_, err = f.do(f.author, item.ID, domain.IntentSave, completeNews)
	require.NoError(t, err)
	result, err := f.workflow.PerformIntent(context.Background(), domain.IntentCommand{
		ItemID: item.ID, Intent: domain.IntentSubmit, Actor: f.author, Payload: json.RawMessage("null"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInReview, result.Status)
	assert.Nil(t, result.RevisionID)
	assert.Equal(t, 2, f.revisionCount(t, item.ID))
}

func TestHasPayload(t *testing.T) {
	assert.False(t, hasPayload(nil))
	assert.False(t, hasPayload(json.RawMessage("  ")))
	assert.False(t, hasPayload(json.RawMessage("null")))
	assert.False(t, hasPayload(json.RawMessage("\n null\t")))
	assert.True(t, hasPayload(json.RawMessage(`{}`)))
	assert.True(t, hasPayload(json.RawMessage(`{"title":null}`)))
}

func TestRequestChanges_ThenResubmitResolvesFeedback(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, item.ID, domain.IntentSubmit, completeNews)
	require.NoError(t, err)

	_, err = f.workflow.PerformIntent(ctx, domain.IntentCommand{
		ItemID: item.ID, Intent: domain.IntentRequestChanges, Actor: f.editor, Message: "   ",
	})
	we := requireKind(t, err, common.ErrValidationFailed)
	assert.Equal(t, []string{domain.MsgFeedbackRequired}, we.Violations)

	result, err := f.workflow.PerformIntent(ctx, domain.IntentCommand{
		ItemID: item.ID, Intent: domain.IntentRequestChanges, Actor: f.editor, Message: " Tighten the summary ",
	})
	require.NoError(t, err)
	require.NotNil(t, result.FeedbackID)
	assert.Equal(t, domain.StatusAwaitingChanges, result.Status)

	stored := f.item(t, item.ID)
	assert.Nil(t, stored.SubmittedAt)
	assert.Nil(t, stored.SubmittedByUserID)

	open, err := f.content.ListOpenFeedback(ctx, f.author, item.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Tighten the summary", open[0].Message)

	_, err = f.do(f.author, item.ID, domain.IntentSubmit, nil)
	require.NoError(t, err)

	open, err = f.content.ListOpenFeedback(ctx, f.author, item.ID)
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := f.store.Feedback.FindByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].ResolvedAt)
	assert.Equal(t, f.author.ID, *all[0].ResolvedByUserID)
}

func TestSendBack_ClearsSubmission(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, item.ID, domain.IntentSubmit, completeNews)
	require.NoError(t, err)

	result, err := f.do(f.editor, item.ID, domain.IntentSendBack, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, result.Status)
	assert.Nil(t, f.item(t, item.ID).SubmittedAt)
}

func TestArchiveAndRestore(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, item.ID, domain.IntentSubmit, completeNews)
	require.NoError(t, err)
	_, err = f.do(f.editor, item.ID, domain.IntentApprove, nil)
	require.NoError(t, err)
	_, err = f.do(f.publisher, item.ID, domain.IntentPublish, nil)
	require.NoError(t, err)

	_, err = f.do(f.publisher, item.ID, domain.IntentArchive, nil)
	requireKind(t, err, common.ErrUnauthorized)

	result, err := f.do(f.admin, item.ID, domain.IntentArchive, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, result.Status)
	assert.NotNil(t, f.item(t, item.ID).PublishedAt)

	_, err = f.do(f.admin, item.ID, domain.IntentArchive, nil)
	requireKind(t, err, common.ErrInvalidTransition)

	result, err = f.do(f.admin, item.ID, domain.IntentRestore, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, result.Status)
	assert.Nil(t, f.item(t, item.ID).PublishedAt)
}

func TestPublish_RevalidatesCurrentRevision(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, item.ID, domain.IntentSubmit, completeNews)
	require.NoError(t, err)
	_, err = f.do(f.editor, item.ID, domain.IntentApprove, nil)
	require.NoError(t, err)

	// an incomplete save while approved is allowed
	_, err = f.do(f.author, item.ID, domain.IntentSave, domain.NewsPayload{Title: "T"})
	require.NoError(t, err)

	_, err = f.do(f.publisher, item.ID, domain.IntentPublish, nil)
	we := requireKind(t, err, common.ErrValidationFailed)
	assert.Equal(t, []string{domain.MsgSummaryRequired, domain.MsgBodyRequired}, we.Violations)
	assert.Equal(t, domain.StatusApproved, f.item(t, item.ID).Status)
}

func TestHooks_RunAfterCommitAndFailuresAreSwallowed(t *testing.T) {
	f := newWorkflowFixture(t)
	f.recorder.err = errors.New("search down")
	item := f.create(t, domain.ContentTypeNews)

	result, err := f.do(f.author, item.ID, domain.IntentSubmit, completeNews)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInReview, result.Status)

	require.Equal(t, 1, f.recorder.count())
	ev := f.recorder.events[0]
	assert.Equal(t, domain.IntentSubmit, ev.Intent)
	assert.Equal(t, domain.StatusDraft, ev.PreviousStatus)
	assert.Equal(t, domain.StatusInReview, ev.Item.Status)
	assert.True(t, ev.NewRevision)
	require.NotNil(t, ev.CurrentRevision)
	assert.Equal(t, 2, ev.CurrentRevision.RevisionNumber)
}

func TestConcurrentSaves_NumbersHaveNoGaps(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.do(f.author, item.ID, domain.IntentSave, completeNews)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	revs, err := f.store.Revisions.FindByItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, revs, writers+1)
	for i, rev := range revs {
		assert.Equal(t, writers+1-i, rev.RevisionNumber)
	}

	stored := f.item(t, item.ID)
	assert.Equal(t, revs[0].ID, *stored.CurrentRevisionID)
}

func TestConcurrentSubmits_OnlyOneSucceeds(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)
	_, err := f.do(f.author, item.ID, domain.IntentSave, completeNews)
	require.NoError(t, err)

	const callers = 4
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.do(f.author, item.ID, domain.IntentSubmit, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, common.ErrInvalidTransition)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, domain.StatusInReview, f.item(t, item.ID).Status)
	assert.Equal(t, 2, f.revisionCount(t, item.ID))
}

func TestUnknownIntent(t *testing.T) {
	f := newWorkflowFixture(t)
	item := f.create(t, domain.ContentTypeNews)

	_, err := f.do(f.admin, item.ID, domain.Intent("delete"), nil)
	requireKind(t, err, common.ErrValidationFailed)
}
