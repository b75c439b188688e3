package queue

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/humiapp/humi/internal/common"
	"github.com/humiapp/humi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE pending_logs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  submitted_at TIMESTAMP NOT NULL,
  document BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func testEntry(id, userID string, at time.Time) *models.LogEntry {
	return &models.LogEntry{
		ID:          id,
		UserID:      userID,
		FullName:    "Cohiba Robusto",
		SubmittedAt: at,
		PendingSync: true,
	}
}

func TestAppendAndGetAllForUser(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, r.Append(ctx, testEntry("id1", "u1", now)))
	require.NoError(t, r.Append(ctx, testEntry("id2", "u1", now.Add(time.Minute))))
	require.NoError(t, r.Append(ctx, testEntry("id3", "u2", now)))

	got, err := r.GetAllForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "id1", got[0].ID)
	assert.Equal(t, "id2", got[1].ID)
	assert.True(t, got[0].PendingSync)
}

func TestAppend_SameIDOverwrites(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := testEntry("id1", "u1", time.Now())
	require.NoError(t, r.Append(ctx, e))

	e.Notes = "updated"
	require.NoError(t, r.Append(ctx, e))

	got, err := r.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Notes)

	all, err := r.GetAllForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := testEntry("id1", "u1", time.Now())
	require.NoError(t, r.Append(ctx, e))

	rating := 5
	e.OverallRating = &rating
	require.NoError(t, r.Update(ctx, e))

	got, err := r.GetByID(ctx, "id1")
	require.NoError(t, err)
	require.NotNil(t, got.OverallRating)
	assert.Equal(t, 5, *got.OverallRating)

	require.ErrorIs(t, r.Update(ctx, testEntry("missing", "u1", time.Now())), common.ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Append(ctx, testEntry("id1", "u1", time.Now())))
	require.NoError(t, r.DeleteByID(ctx, "id1"))

	got, err := r.GetAllForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got)

	// deleting an absent id is not an error
	require.NoError(t, r.DeleteByID(ctx, "id1"))
}

func TestGetAllForUser_CorruptDocument(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO pending_logs (id, user_id, submitted_at, document) VALUES (?, ?, ?, ?)`,
		"bad", "u1", time.Now(), []byte("{not json"))
	require.NoError(t, err)

	_, err = r.GetAllForUser(ctx, "u1")
	require.ErrorIs(t, err, common.ErrCorruptQueue)
}
