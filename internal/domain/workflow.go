package domain

// Intent is a named workflow action requested by an actor
type Intent string

const (
	IntentSave           Intent = "save"
	IntentSubmit         Intent = "submit"
	IntentApprove        Intent = "approve"
	IntentRequestChanges Intent = "requestChanges"
	IntentSendBack       Intent = "sendBack"
	IntentPublish        Intent = "publish"
	IntentArchive        Intent = "archive"
	IntentRestore        Intent = "restore"
)

// AllIntents lists every intent in table order
var AllIntents = []Intent{
	IntentSave, IntentSubmit, IntentApprove, IntentRequestChanges,
	IntentSendBack, IntentPublish, IntentArchive, IntentRestore,
}

// Effect is a side effect applied together with a status change
type Effect uint8

const (
	EffectResolveFeedback Effect = 1 << iota
	EffectCreateFeedback
	EffectStampSubmitted
	EffectClearSubmitted
	EffectStampPublished
	EffectClearPublished
)

// Has reports whether e includes flag
func (e Effect) Has(flag Effect) bool {
	return e&flag != 0
}

// Transition is one edge of the fixed workflow graph
type Transition struct {
	Intent Intent
	// From lists the allowed source states. Empty means every state.
	From []ContentStatus
	// Except lists source states rejected even when From is empty.
	Except []ContentStatus
	// To is the target state. Empty keeps the current status.
	To    ContentStatus
	Roles []Role
	// Validates runs the required-field rules before the transition.
	Validates bool
	// SavesPayload creates a revision when the request carries a payload.
	SavesPayload bool
	Effects      Effect
}

var transitions = map[Intent]Transition{
	IntentSave: {
		Intent:       IntentSave,
		Roles:        AuthorRoles,
		SavesPayload: true,
	},
	IntentSubmit: {
		Intent:       IntentSubmit,
		From:         []ContentStatus{StatusDraft, StatusAwaitingChanges},
		To:           StatusInReview,
		Roles:        AuthorRoles,
		Validates:    true,
		SavesPayload: true,
		Effects:      EffectResolveFeedback | EffectStampSubmitted,
	},
	IntentApprove: {
		Intent:       IntentApprove,
		From:         []ContentStatus{StatusInReview},
		To:           StatusApproved,
		Roles:        EditorRoles,
		Validates:    true,
		SavesPayload: true,
	},
	IntentRequestChanges: {
		Intent:  IntentRequestChanges,
		From:    []ContentStatus{StatusInReview},
		To:      StatusAwaitingChanges,
		Roles:   EditorRoles,
		Effects: EffectCreateFeedback | EffectClearSubmitted,
	},
	IntentSendBack: {
		Intent:  IntentSendBack,
		From:    []ContentStatus{StatusInReview},
		To:      StatusDraft,
		Roles:   EditorRoles,
		Effects: EffectClearSubmitted,
	},
	IntentPublish: {
		Intent:       IntentPublish,
		From:         []ContentStatus{StatusApproved},
		To:           StatusPublished,
		Roles:        PublisherRoles,
		Validates:    true,
		SavesPayload: true,
		Effects:      EffectStampPublished,
	},
	IntentArchive: {
		Intent: IntentArchive,
		Except: []ContentStatus{StatusArchived},
		To:     StatusArchived,
		Roles:  AdminRoles,
	},
	IntentRestore: {
		Intent:  IntentRestore,
		From:    []ContentStatus{StatusArchived},
		To:      StatusDraft,
		Roles:   AdminRoles,
		Effects: EffectClearPublished,
	},
}

// LookupTransition returns the edge for intent
func LookupTransition(intent Intent) (Transition, bool) {
	t, ok := transitions[intent]
	return t, ok
}

// RequiredRoles returns the roles allowed to perform intent
func RequiredRoles(intent Intent) []Role {
	if t, ok := transitions[intent]; ok {
		return t.Roles
	}
	return nil
}

// RequiresValidation reports whether intent is a forward transition
func (i Intent) RequiresValidation() bool {
	t, ok := transitions[i]
	return ok && t.Validates
}

// Valid reports whether i is a known intent
func (i Intent) Valid() bool {
	_, ok := transitions[i]
	return ok
}

// Allows reports whether the edge may fire from status
func (t Transition) Allows(status ContentStatus) bool {
	for _, s := range t.Except {
		if s == status {
			return false
		}
	}
	if len(t.From) == 0 {
		return true
	}
	for _, s := range t.From {
		if s == status {
			return true
		}
	}
	return false
}

// SourceStatuses lists every state the edge may fire from
func (t Transition) SourceStatuses() []ContentStatus {
	var out []ContentStatus
	for _, s := range AllStatuses {
		if t.Allows(s) {
			out = append(out, s)
		}
	}
	return out
}

// Target returns the status after firing the edge from status
func (t Transition) Target(status ContentStatus) ContentStatus {
	if t.To == "" {
		return status
	}
	return t.To
}
