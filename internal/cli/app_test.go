package cli

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humiapp/humi/internal/logging"
	"github.com/humiapp/humi/internal/models"
	"github.com/humiapp/humi/internal/repositories/metadata"
	"github.com/humiapp/humi/internal/storage"
)

func TestGetStatus(t *testing.T) {
	a := &App{}
	assert.Empty(t, a.getStatus())

	a.userID = "user-1"
	assert.Equal(t, "(user-1)", a.getStatus())
}

func TestEntryAt(t *testing.T) {
	a := &App{lastEntries: []models.LogEntry{
		{ID: "first"},
		{ID: "second"},
	}}

	id, ok := a.entryAt("1")
	assert.True(t, ok)
	assert.Equal(t, "first", id)

	id, ok = a.entryAt("2")
	assert.True(t, ok)
	assert.Equal(t, "second", id)

	_, ok = a.entryAt("3")
	assert.False(t, ok)
	_, ok = a.entryAt("0")
	assert.False(t, ok)
	_, ok = a.entryAt("abc")
	assert.False(t, ok)
}

func restoreApp(t *testing.T, logOut *bytes.Buffer) *App {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB);`)
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelWarn})))
	return &App{
		logger: logger,
		repos:  &storage.Repositories{Metadata: metadata.NewSQLiteRepository(db)},
	}
}

func TestRestoreSession_NoStoredTokenIsSilent(t *testing.T) {
	var logOut bytes.Buffer
	a := restoreApp(t, &logOut)

	a.restoreSession(context.Background())

	assert.False(t, a.isLoggedIn())
	assert.Empty(t, logOut.String())
}

func TestRestoreSession_BadStoredTokenWarnsAndClears(t *testing.T) {
	var logOut bytes.Buffer
	a := restoreApp(t, &logOut)
	ctx := context.Background()

	require.NoError(t, a.repos.Metadata.Set(ctx, metadata.KeyAccessToken, []byte("not-a-jwt")))
	a.restoreSession(ctx)

	assert.False(t, a.isLoggedIn())
	assert.Contains(t, logOut.String(), "persisted token rejected")

	stored, err := a.repos.Metadata.Get(ctx, metadata.KeyAccessToken)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestIsLoggedIn(t *testing.T) {
	a := &App{}
	assert.False(t, a.isLoggedIn())
	a.userID = "user-1"
	assert.True(t, a.isLoggedIn())
	a.disconnect()
	assert.False(t, a.isLoggedIn())
}
