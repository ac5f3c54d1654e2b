package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
	"github.com/redonshkr/gov-content-hub/internal/repository"
	pkglogger "github.com/redonshkr/gov-content-hub/pkg/logger"
)

// MsgPayloadRequired is returned when a save carries no data
const MsgPayloadRequired = "Payload is required"

// WorkflowService executes intents against content items
type WorkflowService interface {
	PerformIntent(ctx context.Context, cmd domain.IntentCommand) (*domain.IntentResult, error)
}

type workflowService struct {
	store *repository.Store
	hooks []TransitionHook
	now   func() time.Time
}

// NewWorkflowService creates a new WorkflowService. Hooks run in order after commit.
func NewWorkflowService(store *repository.Store, hooks ...TransitionHook) WorkflowService {
	return &workflowService{store: store, hooks: hooks, now: time.Now}
}

// PerformIntent authorizes, validates and applies one intent atomically.
// Failures leave the item, its revisions and its feedback untouched.
func (s *workflowService) PerformIntent(ctx context.Context, cmd domain.IntentCommand) (*domain.IntentResult, error) {
	result, ev, err := s.perform(ctx, cmd)
	observeIntent(cmd.Intent, err)
	if err != nil {
		return nil, err
	}
	s.runHooks(ctx, ev)
	return result, nil
}

func (s *workflowService) perform(ctx context.Context, cmd domain.IntentCommand) (*domain.IntentResult, *TransitionEvent, error) {
	transition, ok := domain.LookupTransition(cmd.Intent)
	if !ok {
		return nil, nil, common.ValidationFailed([]string{fmt.Sprintf("Unknown intent %q", cmd.Intent)})
	}
	if err := requireRoles(cmd.Actor, transition.Roles); err != nil {
		return nil, nil, err
	}

	var (
		result *domain.IntentResult
		ev     *TransitionEvent
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		item, err := tx.Items.FindByIDForUpdate(ctx, cmd.ItemID)
		if err != nil {
			return storeError(err, "Content item")
		}
		if !transition.Allows(item.Status) {
			return common.InvalidTransition(string(cmd.Intent), string(item.Status), statusNames(transition.SourceStatuses()))
		}
		current, err := loadCurrentRevision(ctx, tx, item)
		if err != nil {
			return err
		}

		var payload domain.Payload
		if transition.SavesPayload && hasPayload(cmd.Payload) {
			decoded, err := domain.DecodePayload(item.Type, cmd.Payload)
			if err != nil {
				return common.ValidationFailed([]string{err.Error()})
			}
			payload = decoded.Normalize()
		}
		if cmd.Intent == domain.IntentSave && payload == nil {
			return common.ValidationFailed([]string{MsgPayloadRequired})
		}

		if transition.Validates {
			data := payload
			if data == nil {
				data, err = decodeRevision(item.Type, current)
				if err != nil {
					return err
				}
			}
			if violations := domain.Validate(item.Type, data, cmd.Intent); len(violations) > 0 {
				return common.ValidationFailed(violations)
			}
		}

		message := strings.TrimSpace(cmd.Message)
		if transition.Effects.Has(domain.EffectCreateFeedback) && message == "" {
			return common.ValidationFailed([]string{domain.MsgFeedbackRequired})
		}

		now := s.now()
		actorID := cmd.Actor.ActorID()
		ev = &TransitionEvent{
			Intent:            cmd.Intent,
			Actor:             cmd.Actor,
			PreviousStatus:    item.Status,
			PreviousSubmitter: item.SubmittedByUserID,
			CurrentRevision:   current,
			At:                now,
		}
		result = &domain.IntentResult{
			ItemID:         item.ID,
			Intent:         cmd.Intent,
			PreviousStatus: item.Status,
		}

		if payload != nil {
			data, err := domain.EncodePayload(payload)
			if err != nil {
				return common.Persistence(err)
			}
			summary := strings.TrimSpace(cmd.ChangeSummary)
			if summary == "" {
				summary = "Action: " + string(cmd.Intent)
			}
			rev, err := tx.Revisions.Create(ctx, item.ID, data, summary, actorID)
			if err != nil {
				return storeError(err, "Content item")
			}
			if err := tx.Items.SetCurrentRevision(ctx, item.ID, rev.ID); err != nil {
				return storeError(err, "Content item")
			}
			item.CurrentRevisionID = &rev.ID
			ev.CurrentRevision = rev
			ev.NewRevision = true
			result.RevisionID = &rev.ID
			result.RevisionNumber = rev.RevisionNumber
		}

		effects := transition.Effects
		if effects.Has(domain.EffectResolveFeedback) {
			if _, err := tx.Feedback.ResolveOpen(ctx, item.ID, actorID, now); err != nil {
				return storeError(err, "Feedback")
			}
		}
		if effects.Has(domain.EffectCreateFeedback) {
			fb := &domain.ReviewFeedback{
				ID:              domain.NewID(),
				ItemID:          item.ID,
				Message:         message,
				CreatedByUserID: actorID,
			}
			if err := tx.Feedback.Create(ctx, fb); err != nil {
				return storeError(err, "Feedback")
			}
			ev.FeedbackID = &fb.ID
			result.FeedbackID = &fb.ID
		}
		if effects.Has(domain.EffectStampSubmitted) {
			item.SubmittedAt = &now
			item.SubmittedByUserID = actorID
		}
		if effects.Has(domain.EffectClearSubmitted) {
			item.SubmittedAt = nil
			item.SubmittedByUserID = nil
		}
		if effects.Has(domain.EffectStampPublished) {
			item.PublishedAt = &now
		}
		if effects.Has(domain.EffectClearPublished) {
			item.PublishedAt = nil
		}

		item.Status = transition.Target(item.Status)
		if item.Status != ev.PreviousStatus || effects != 0 {
			if err := tx.Items.UpdateWorkflowState(ctx, item); err != nil {
				return storeError(err, "Content item")
			}
		}
		item.UpdatedAt = now

		ev.Item = *item
		result.Status = item.Status
		return nil
	})
	if err != nil {
		return nil, nil, common.AsWorkflowError(err)
	}
	return result, ev, nil
}

func (s *workflowService) runHooks(ctx context.Context, ev *TransitionEvent) {
	for _, hook := range s.hooks {
		if err := hook.AfterTransition(ctx, ev); err != nil {
			workflowHookFailuresTotal.WithLabelValues(hook.Name()).Inc()
			pkglogger.GetLogger().Warn().Err(err).
				Str("hook", hook.Name()).
				Str("item_id", ev.Item.ID).
				Str("intent", string(ev.Intent)).
				Msg("post-commit hook failed")
		}
	}
}

func loadCurrentRevision(ctx context.Context, tx *repository.Store, item *domain.ContentItem) (*domain.Revision, error) {
	if item.CurrentRevisionID == nil {
		return nil, nil
	}
	rev, err := tx.Revisions.FindByID(ctx, *item.CurrentRevisionID)
	if err != nil {
		return nil, storeError(err, "Revision")
	}
	return rev, nil
}

// decodeRevision returns the payload of rev, or the type's defaults when rev is nil
func decodeRevision(t domain.ContentType, rev *domain.Revision) (domain.Payload, error) {
	if rev == nil {
		p, err := domain.DefaultPayload(t)
		if err != nil {
			return nil, common.ValidationFailed([]string{err.Error()})
		}
		return p, nil
	}
	p, err := domain.DecodePayload(t, []byte(rev.Data))
	if err != nil {
		return nil, common.Persistence(fmt.Errorf("revision %s: %w", rev.ID, err))
	}
	return p, nil
}

// hasPayload reports whether raw carries data. A JSON null counts as absent.
func hasPayload(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func statusNames(statuses []domain.ContentStatus) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}
