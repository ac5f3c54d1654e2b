package domain

import (
	"encoding/json"
	"time"
)

// CreateContentRequest represents request for creating a draft item
type CreateContentRequest struct {
	Type string `json:"type" binding:"required" validate:"oneof=NEWS POLICY SERVICE"`
}

// IntentRequest represents a workflow action posted against an item
type IntentRequest struct {
	Intent        string          `json:"intent" binding:"required" validate:"oneof=save submit approve requestChanges sendBack publish archive restore"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	ChangeSummary string          `json:"change_summary" validate:"max=500"`
	Message       string          `json:"message" validate:"max=5000"`
}

// IntentCommand is a workflow action with its resolved actor
type IntentCommand struct {
	ItemID        string
	Intent        Intent
	Actor         *Actor
	Payload       json.RawMessage
	ChangeSummary string
	Message       string
}

// ContentFilter narrows the admin content list
type ContentFilter struct {
	Status ContentStatus
	Type   ContentType
	Page   int
	Limit  int
}

// RevisionResponse is a revision with its decoded payload
type RevisionResponse struct {
	ID              string          `json:"id"`
	ItemID          string          `json:"item_id"`
	RevisionNumber  int             `json:"revision_number"`
	ChangeSummary   string          `json:"change_summary"`
	CreatedByUserID *string         `json:"created_by_user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	Data            json.RawMessage `json:"data"`
}

// NewRevisionResponse converts a stored revision into its API form
func NewRevisionResponse(r *Revision) RevisionResponse {
	return RevisionResponse{
		ID:              r.ID,
		ItemID:          r.ItemID,
		RevisionNumber:  r.RevisionNumber,
		ChangeSummary:   r.ChangeSummary,
		CreatedByUserID: r.CreatedByUserID,
		CreatedAt:       r.CreatedAt,
		Data:            json.RawMessage(r.Data),
	}
}

// ContentDetail is an item together with its live revision
type ContentDetail struct {
	ContentItem
	CurrentRevision *RevisionResponse `json:"current_revision,omitempty"`
}

// ContentSummary is a queue or list row with the live title
type ContentSummary struct {
	ContentItem
	Title string `json:"title"`
}

// PublishedPage is one page of the public listing
type PublishedPage struct {
	Items []PublishedContent `json:"items"`
	Total int64              `json:"total"`
}

// PublishedContent is the public view of a published item
type PublishedContent struct {
	ID          string          `json:"id"`
	Type        ContentType     `json:"type"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	PublishedAt *time.Time      `json:"published_at"`
	Data        json.RawMessage `json:"data"`
}

// IntentResult reports the outcome of a successful workflow action
type IntentResult struct {
	ItemID         string        `json:"item_id"`
	Intent         Intent        `json:"intent"`
	PreviousStatus ContentStatus `json:"previous_status"`
	Status         ContentStatus `json:"status"`
	RevisionID     *string       `json:"revision_id,omitempty"`
	RevisionNumber int           `json:"revision_number,omitempty"`
	FeedbackID     *string       `json:"feedback_id,omitempty"`
}
