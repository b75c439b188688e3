package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/humiapp/humi/internal/identify"
	"github.com/humiapp/humi/internal/models"
)

// SessionState is one step of the add-entry flow.
type SessionState string

const (
	StateIdle          SessionState = "idle"
	StateImageCaptured SessionState = "image-captured"
	StateIdentifying   SessionState = "identifying"
	StateReviewing     SessionState = "reviewing"
	StateSaving        SessionState = "saving"
	StateSaved         SessionState = "saved"
	StateQueuedLocal   SessionState = "queued-local"
)

var ErrInvalidTransition = errors.New("invalid session transition")

// Session is the explicit state machine of a single add-entry flow:
//
//	Idle → ImageCaptured → Identifying → Reviewing → Saving → Saved|QueuedLocal
//
// Reviewing may loop back to Identifying when the user corrects the name.
// Each capture gets its own session; sessions share no state.
type Session struct {
	ID    string
	state SessionState

	ImageLocalPath string
	Vision         models.VisionResult
	Result         *identify.Result
	Draft          models.LogDraft
}

func NewSession(userID string) *Session {
	return &Session{
		ID:    uuid.NewString(),
		state: StateIdle,
		Draft: models.LogDraft{UserID: userID},
	}
}

func (s *Session) State() SessionState { return s.state }

func (s *Session) transition(from []SessionState, to SessionState) error {
	for _, f := range from {
		if s.state == f {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
}

// CaptureImage records the persistent local path of the captured image.
func (s *Session) CaptureImage(localPath string) error {
	if err := s.transition([]SessionState{StateIdle}, StateImageCaptured); err != nil {
		return err
	}
	s.ImageLocalPath = localPath
	s.Draft.ImageLocalPath = localPath
	return nil
}

// BeginIdentification enters the identifying state, either from a fresh
// capture or from review (the re-analysis path).
func (s *Session) BeginIdentification() error {
	return s.transition([]SessionState{StateImageCaptured, StateReviewing}, StateIdentifying)
}

// CompleteIdentification stores the pipeline result and moves to review.
func (s *Session) CompleteIdentification(res *identify.Result) error {
	if err := s.transition([]SessionState{StateIdentifying}, StateReviewing); err != nil {
		return err
	}
	s.Result = res
	s.Vision = res.Vision
	s.Draft.Identification = res.Record
	s.Draft.FromCatalog = res.FromCatalog
	if s.Draft.FullName == "" {
		s.Draft.FullName = res.Record.FullName
	}
	return nil
}

// FailIdentification returns to the captured state so the user can retry.
func (s *Session) FailIdentification() error {
	return s.transition([]SessionState{StateIdentifying}, StateImageCaptured)
}

// BeginSave freezes review edits and enters the saving state.
func (s *Session) BeginSave() error {
	return s.transition([]SessionState{StateReviewing}, StateSaving)
}

// CompleteSave finishes the flow; queued reports whether the entry landed in
// the local pending-sync queue instead of the remote store.
func (s *Session) CompleteSave(queued bool) error {
	to := StateSaved
	if queued {
		to = StateQueuedLocal
	}
	return s.transition([]SessionState{StateSaving}, to)
}

// FailSave returns to review so the user can retry the save.
func (s *Session) FailSave() error {
	return s.transition([]SessionState{StateSaving}, StateReviewing)
}
