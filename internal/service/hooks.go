package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/ws"
	"github.com/redonshkr/gov-content-hub/pkg/cache"
	es "github.com/redonshkr/gov-content-hub/pkg/elasticsearch"
)

// TransitionEvent describes a committed intent
type TransitionEvent struct {
	Intent         domain.Intent
	Actor          *domain.Actor
	Item           domain.ContentItem
	PreviousStatus domain.ContentStatus
	// PreviousSubmitter is the submitter before effects were applied
	PreviousSubmitter *string
	// CurrentRevision is the live revision after commit
	CurrentRevision *domain.Revision
	NewRevision     bool
	FeedbackID      *string
	At              time.Time
}

// TransitionHook runs after a workflow transaction commits.
// Errors are logged by the caller and never fail the intent.
type TransitionHook interface {
	Name() string
	AfterTransition(ctx context.Context, ev *TransitionEvent) error
}

// touchesPublished reports whether the public view may have changed
func (ev *TransitionEvent) touchesPublished() bool {
	return ev.PreviousStatus == domain.StatusPublished || ev.Item.Status == domain.StatusPublished
}

// --- published cache ---

type cacheInvalidationHook struct {
	cache cache.Service
}

// NewCacheInvalidationHook drops cached public listings when published content changes
func NewCacheInvalidationHook(c cache.Service) TransitionHook {
	return &cacheInvalidationHook{cache: c}
}

func (h *cacheInvalidationHook) Name() string { return "cache" }

func (h *cacheInvalidationHook) AfterTransition(ctx context.Context, ev *TransitionEvent) error {
	if h.cache == nil || !ev.touchesPublished() {
		return nil
	}
	return h.cache.InvalidatePublished(ctx, ev.Item.Slug)
}

// --- search index ---

// SearchBackend is the subset of the Elasticsearch client used by the workflow
type SearchBackend interface {
	IndexContent(ctx context.Context, doc es.ContentDocument) error
	DeleteContent(ctx context.Context, id string) error
	SearchContent(ctx context.Context, text string, from, size int) (*es.SearchResult, error)
}

type searchIndexHook struct {
	backend SearchBackend
}

// NewSearchIndexHook keeps the search index in step with published content
func NewSearchIndexHook(backend SearchBackend) TransitionHook {
	return &searchIndexHook{backend: backend}
}

func (h *searchIndexHook) Name() string { return "search" }

func (h *searchIndexHook) AfterTransition(ctx context.Context, ev *TransitionEvent) error {
	if h.backend == nil {
		return nil
	}
	switch {
	case ev.Item.Status == domain.StatusPublished:
		if ev.PreviousStatus == domain.StatusPublished && !ev.NewRevision {
			return nil
		}
		doc, err := contentDocument(&ev.Item, ev.CurrentRevision)
		if err != nil {
			return err
		}
		return h.backend.IndexContent(ctx, doc)
	case ev.PreviousStatus == domain.StatusPublished:
		return h.backend.DeleteContent(ctx, ev.Item.ID)
	}
	return nil
}

func contentDocument(item *domain.ContentItem, rev *domain.Revision) (es.ContentDocument, error) {
	doc := es.ContentDocument{
		ID:   item.ID,
		Type: string(item.Type),
		Slug: item.Slug,
	}
	if item.PublishedAt != nil {
		doc.PublishedAt = *item.PublishedAt
	}
	if rev == nil {
		return doc, nil
	}
	p, err := domain.DecodePayload(item.Type, []byte(rev.Data))
	if err != nil {
		return doc, fmt.Errorf("revision %s: %w", rev.ID, err)
	}
	doc.Title = domain.PayloadTitle(p)
	doc.Text = domain.PayloadText(p)
	return doc, nil
}

// --- notifications ---

// Notifier pushes events to signed-in users
type Notifier interface {
	SendToUsers(event *ws.Event, userIDs ...string)
}

// TransitionNotice is the payload of a workflow.transitioned event
type TransitionNotice struct {
	ItemID         string               `json:"item_id"`
	Slug           string               `json:"slug"`
	Intent         domain.Intent        `json:"intent"`
	PreviousStatus domain.ContentStatus `json:"previous_status"`
	Status         domain.ContentStatus `json:"status"`
	ActorID        string               `json:"actor_id"`
	At             time.Time            `json:"at"`
}

type notifyHook struct {
	notifier Notifier
}

// NewNotifyHook tells the item's creator and submitter about status changes
func NewNotifyHook(n Notifier) TransitionHook {
	return &notifyHook{notifier: n}
}

func (h *notifyHook) Name() string { return "notify" }

func (h *notifyHook) AfterTransition(_ context.Context, ev *TransitionEvent) error {
	if h.notifier == nil || ev.PreviousStatus == ev.Item.Status {
		return nil
	}

	actorID := ""
	if ev.Actor != nil {
		actorID = ev.Actor.ID
	}
	var recipients []string
	for _, id := range []*string{ev.Item.CreatedByUserID, ev.PreviousSubmitter, ev.Item.SubmittedByUserID} {
		if id != nil && *id != actorID {
			recipients = append(recipients, *id)
		}
	}
	if len(recipients) == 0 {
		return nil
	}

	h.notifier.SendToUsers(&ws.Event{
		Type: ws.EventWorkflowTransitioned,
		Payload: TransitionNotice{
			ItemID:         ev.Item.ID,
			Slug:           ev.Item.Slug,
			Intent:         ev.Intent,
			PreviousStatus: ev.PreviousStatus,
			Status:         ev.Item.Status,
			ActorID:        actorID,
			At:             ev.At,
		},
	}, recipients...)
	return nil
}

// --- audit ---

// AuditRecorder persists audit entries
type AuditRecorder interface {
	Record(ctx context.Context, entry *domain.AuditLog)
}

type auditHook struct {
	recorder AuditRecorder
}

// NewAuditHook records every committed intent in the audit trail
func NewAuditHook(r AuditRecorder) TransitionHook {
	return &auditHook{recorder: r}
}

func (h *auditHook) Name() string { return "audit" }

func (h *auditHook) AfterTransition(ctx context.Context, ev *TransitionEvent) error {
	if h.recorder == nil {
		return nil
	}
	entry := &domain.AuditLog{
		Action:     "content." + string(ev.Intent),
		Resource:   "content_item",
		ResourceID: ev.Item.ID,
		Details:    fmt.Sprintf("%s -> %s", ev.PreviousStatus, ev.Item.Status),
	}
	if ev.Actor != nil {
		entry.UserID = ev.Actor.ID
	}
	if ev.NewRevision && ev.CurrentRevision != nil {
		entry.Details += fmt.Sprintf(" (revision #%d)", ev.CurrentRevision.RevisionNumber)
	}
	meta := common.RequestMetaFrom(ctx)
	entry.ClientIP = meta.ClientIP
	entry.UserAgent = meta.UserAgent
	entry.RequestID = meta.RequestID
	h.recorder.Record(ctx, entry)
	return nil
}
