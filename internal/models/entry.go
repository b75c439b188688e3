package models

import (
	"time"

	"github.com/humiapp/humi/internal/common"
)

// Feedback is the user's thumbs verdict on AI identification accuracy.
type Feedback string

const (
	FeedbackNone Feedback = ""
	FeedbackUp   Feedback = "up"
	FeedbackDown Feedback = "down"
)

// LogEntry is one humidor journal entry, owned exclusively by its user.
//
// Lifecycle: draft (in-memory during the add flow), then persisted either
// remotely or to the local pending-sync queue; a queued entry transitions to
// remote on a successful sync pass. Entries are never deleted.
type LogEntry struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	FullName string `json:"fullName"`
	Notes    string `json:"notes"`
	// OverallRating is 1..5, nil when the user has not rated yet.
	OverallRating *int      `json:"overallRating"`
	SubmittedAt   time.Time `json:"submittedAt"`

	// ImageLocalPath always points at the app-private cached copy when one
	// existed at capture time; ImageRemoteURL is best-effort and empty when
	// the blob upload failed.
	ImageLocalPath string `json:"imageLocalPath"`
	ImageRemoteURL string `json:"imageRemoteUrl"`

	Identification IdentificationRecord `json:"identification"`

	AIAccuracyFeedback Feedback `json:"aiAccuracyFeedback"`
	FromCatalog        bool     `json:"fromCatalog"`

	// PendingSync is true iff the entry exists only in the local queue.
	PendingSync bool `json:"pendingSync"`
}

// LogDraft carries the user-editable state of the add flow before a save.
type LogDraft struct {
	UserID             string
	FullName           string
	Notes              string
	OverallRating      *int
	ImageLocalPath     string
	Identification     IdentificationRecord
	AIAccuracyFeedback Feedback
	FromCatalog        bool
}

// Validate normalizes the draft in place and reports the first violation.
// Notes longer than the limit are truncated rather than rejected.
func (d *LogDraft) Validate() error {
	if d.FullName == "" {
		return common.ErrMissingName
	}
	if d.ImageLocalPath == "" {
		return common.ErrMissingImage
	}
	if d.OverallRating != nil && (*d.OverallRating < 1 || *d.OverallRating > 5) {
		return common.ErrBadRating
	}
	if len([]rune(d.Notes)) > common.NotesMaxLen {
		d.Notes = string([]rune(d.Notes)[:common.NotesMaxLen])
	}
	return nil
}

// TruncateNotes clips s to the persisted notes limit, counting runes so
// multibyte input is not split mid-character.
func TruncateNotes(s string) string {
	r := []rune(s)
	if len(r) <= common.NotesMaxLen {
		return s
	}
	return string(r[:common.NotesMaxLen])
}
