package domain

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentType is the schema a content item follows. Fixed after creation.
type ContentType string

const (
	ContentTypeNews    ContentType = "NEWS"
	ContentTypePolicy  ContentType = "POLICY"
	ContentTypeService ContentType = "SERVICE"
)

// Valid reports whether t is one of the supported content types
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeNews, ContentTypePolicy, ContentTypeService:
		return true
	}
	return false
}

// ContentStatus is the workflow state of a content item
type ContentStatus string

const (
	StatusDraft           ContentStatus = "DRAFT"
	StatusInReview        ContentStatus = "IN_REVIEW"
	StatusAwaitingChanges ContentStatus = "AWAITING_CHANGES"
	StatusApproved        ContentStatus = "APPROVED"
	StatusPublished       ContentStatus = "PUBLISHED"
	StatusArchived        ContentStatus = "ARCHIVED"
)

// AllStatuses lists every workflow state in lifecycle order
var AllStatuses = []ContentStatus{
	StatusDraft, StatusInReview, StatusAwaitingChanges,
	StatusApproved, StatusPublished, StatusArchived,
}

// Valid reports whether s is a known workflow state
func (s ContentStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ContentItem is one piece of publishable content (content_items table)
type ContentItem struct {
	ID                string        `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Type              ContentType   `gorm:"column:type;type:varchar(16);not null" json:"type"`
	Slug              string        `gorm:"column:slug;type:varchar(100);uniqueIndex;not null" json:"slug"`
	Status            ContentStatus `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	CurrentRevisionID *string       `gorm:"column:current_revision_id;type:varchar(36)" json:"current_revision_id"`
	SubmittedAt       *time.Time    `gorm:"column:submitted_at;index" json:"submitted_at"`
	SubmittedByUserID *string       `gorm:"column:submitted_by_user_id;type:varchar(36)" json:"submitted_by_user_id"`
	PublishedAt       *time.Time    `gorm:"column:published_at;index" json:"published_at"`
	CreatedByUserID   *string       `gorm:"column:created_by_user_id;type:varchar(36)" json:"created_by_user_id"`
	CreatedAt         time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for ContentItem
func (ContentItem) TableName() string {
	return "content_items"
}

// Revision is an immutable snapshot of an item's payload (content_revisions table).
// Rows are only ever inserted.
type Revision struct {
	ID              string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ItemID          string    `gorm:"column:item_id;type:varchar(36);not null;uniqueIndex:idx_item_revision,priority:1" json:"item_id"`
	RevisionNumber  int       `gorm:"column:revision_number;not null;uniqueIndex:idx_item_revision,priority:2" json:"revision_number"`
	Data            string    `gorm:"column:data;type:json;not null" json:"-"`
	ChangeSummary   string    `gorm:"column:change_summary;type:varchar(500)" json:"change_summary"`
	CreatedByUserID *string   `gorm:"column:created_by_user_id;type:varchar(36)" json:"created_by_user_id"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Revision
func (Revision) TableName() string {
	return "content_revisions"
}

// ReviewFeedback is a reviewer's note for one review cycle (review_feedback table)
type ReviewFeedback struct {
	ID               string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ItemID           string     `gorm:"column:item_id;type:varchar(36);index;not null" json:"item_id"`
	Message          string     `gorm:"column:message;type:text;not null" json:"message"`
	CreatedByUserID  *string    `gorm:"column:created_by_user_id;type:varchar(36)" json:"created_by_user_id"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ResolvedAt       *time.Time `gorm:"column:resolved_at;index" json:"resolved_at"`
	ResolvedByUserID *string    `gorm:"column:resolved_by_user_id;type:varchar(36)" json:"resolved_by_user_id"`
}

// TableName returns the table name for ReviewFeedback
func (ReviewFeedback) TableName() string {
	return "review_feedback"
}

// NewID returns a fresh opaque identifier
func NewID() string {
	return uuid.New().String()
}

const slugAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// MakeSlug builds "<type>-<unix millis>-<6 random base36 chars>".
// Collisions are left to the unique index on slug.
func MakeSlug(t ContentType, now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = slugAlphabet[rand.Intn(len(slugAlphabet))] //nolint:gosec
	}
	return fmt.Sprintf("%s-%s-%s",
		strings.ToLower(string(t)),
		strconv.FormatInt(now.UnixMilli(), 10),
		string(suffix),
	)
}
