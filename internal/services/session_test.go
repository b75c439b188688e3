package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humiapp/humi/internal/identify"
	"github.com/humiapp/humi/internal/models"
)

func testResult() *identify.Result {
	return &identify.Result{
		Vision: models.VisionResult{BandDescription: "red and gold band"},
		Record: models.IdentificationRecord{
			FullName:    "Padron 1964 Anniversary",
			Brand:       "Padron",
			Line:        "1964 Anniversary",
			Description: "A box-pressed Nicaraguan classic.",
		},
	}
}

func TestSession_HappyPath(t *testing.T) {
	s := NewSession("u1")
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.CaptureImage("/data/images/band.jpg"))
	assert.Equal(t, StateImageCaptured, s.State())
	assert.Equal(t, "/data/images/band.jpg", s.Draft.ImageLocalPath)

	require.NoError(t, s.BeginIdentification())
	require.NoError(t, s.CompleteIdentification(testResult()))
	assert.Equal(t, StateReviewing, s.State())
	assert.Equal(t, "Padron 1964 Anniversary", s.Draft.FullName)

	require.NoError(t, s.BeginSave())
	require.NoError(t, s.CompleteSave(false))
	assert.Equal(t, StateSaved, s.State())
}

func TestSession_OfflineSaveEndsQueued(t *testing.T) {
	s := NewSession("u1")
	require.NoError(t, s.CaptureImage("/data/images/band.jpg"))
	require.NoError(t, s.BeginIdentification())
	require.NoError(t, s.CompleteIdentification(testResult()))
	require.NoError(t, s.BeginSave())
	require.NoError(t, s.CompleteSave(true))
	assert.Equal(t, StateQueuedLocal, s.State())
}

func TestSession_ReanalysisLoop(t *testing.T) {
	s := NewSession("u1")
	require.NoError(t, s.CaptureImage("/data/images/band.jpg"))
	require.NoError(t, s.BeginIdentification())
	require.NoError(t, s.CompleteIdentification(testResult()))

	// user corrects the name and re-runs identification
	require.NoError(t, s.BeginIdentification())
	assert.Equal(t, StateIdentifying, s.State())

	res := testResult()
	res.Record.FullName = "Padron 1926 Serie"
	res.Record.IsUserCorrected = true
	require.NoError(t, s.CompleteIdentification(res))
	assert.Equal(t, StateReviewing, s.State())
	assert.True(t, s.Draft.Identification.IsUserCorrected)
}

func TestSession_UserEditedNameKept(t *testing.T) {
	s := NewSession("u1")
	require.NoError(t, s.CaptureImage("/data/images/band.jpg"))
	require.NoError(t, s.BeginIdentification())
	s.Draft.FullName = "My Own Name"
	require.NoError(t, s.CompleteIdentification(testResult()))
	assert.Equal(t, "My Own Name", s.Draft.FullName)
}

func TestSession_InvalidTransitions(t *testing.T) {
	s := NewSession("u1")

	assert.ErrorIs(t, s.BeginIdentification(), ErrInvalidTransition)
	assert.ErrorIs(t, s.BeginSave(), ErrInvalidTransition)
	assert.ErrorIs(t, s.CompleteSave(false), ErrInvalidTransition)

	require.NoError(t, s.CaptureImage("/a.jpg"))
	assert.ErrorIs(t, s.CaptureImage("/b.jpg"), ErrInvalidTransition)
	assert.ErrorIs(t, s.CompleteIdentification(testResult()), ErrInvalidTransition)
}

func TestSession_FailurePathsReturnToPriorState(t *testing.T) {
	s := NewSession("u1")
	require.NoError(t, s.CaptureImage("/a.jpg"))
	require.NoError(t, s.BeginIdentification())
	require.NoError(t, s.FailIdentification())
	assert.Equal(t, StateImageCaptured, s.State())

	require.NoError(t, s.BeginIdentification())
	require.NoError(t, s.CompleteIdentification(testResult()))
	require.NoError(t, s.BeginSave())
	require.NoError(t, s.FailSave())
	assert.Equal(t, StateReviewing, s.State())
}
