package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/humiapp/humi/internal/common"
	"github.com/humiapp/humi/internal/dbx"
	"github.com/humiapp/humi/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Entries are stored as JSON documents alongside the columns needed for
// ordering and per-user lookup.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, entry *models.LogEntry) error {
	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal pending log: %w", err)
	}

	query := `INSERT INTO pending_logs (id, user_id, submitted_at, document)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET document = excluded.document
	`
	_, err = r.db.ExecContext(ctx, query, entry.ID, entry.UserID, entry.SubmittedAt, doc)
	if err != nil {
		return fmt.Errorf("failed to append pending log: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAllForUser(ctx context.Context, userID string) ([]models.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT document FROM pending_logs WHERE user_id = ? ORDER BY submitted_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending logs: %w", err)
	}
	defer rows.Close()

	var result []models.LogEntry
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan pending log row: %w", err)
		}
		var e models.LogEntry
		if err := json.Unmarshal(doc, &e); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCorruptQueue, err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending log rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.LogEntry, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM pending_logs WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending log %s: %w", id, err)
	}

	var e models.LogEntry
	if err := json.Unmarshal(doc, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptQueue, err)
	}
	return &e, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, entry *models.LogEntry) error {
	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal pending log: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE pending_logs SET document = ? WHERE id = ?`, doc, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update pending log %s: %w", entry.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pending log %s: %w", id, err)
	}
	return nil
}
