// Package remote holds the client for the remote document store: per-user
// log collections, the authoritative cigar catalog, pending contributions,
// and per-user stats aggregates.
package remote

import (
	"context"
	"errors"

	"github.com/humiapp/humi/internal/models"
)

var (
	// ErrUnavailable covers network failures and server-side errors; the
	// persistence layer treats it as "queue locally and retry later".
	ErrUnavailable = errors.New("remote store unavailable")

	// ErrUnauthorized means the access token was rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// Store is the remote document store surface the pipeline needs.
// Absent documents are reported as common.ErrNotFound.
type Store interface {
	// CreateLog writes a finalized log entry to the user's collection.
	CreateLog(ctx context.Context, entry *models.LogEntry) error

	// ListLogs returns the user's entries, newest first.
	ListLogs(ctx context.Context, userID string) ([]models.LogEntry, error)

	// UpdateLog replaces an existing entry by id (rating/notes edits).
	UpdateLog(ctx context.Context, entry *models.LogEntry) error

	// QueryCatalog looks up the authoritative catalog by exact brand+line.
	QueryCatalog(ctx context.Context, brand, line string) (*models.CatalogRecord, error)

	// CreatePendingContribution stages an uncatalogued identification for
	// later curation.
	CreatePendingContribution(ctx context.Context, pc models.PendingContribution) error

	// GetStats fetches the user's aggregate.
	GetStats(ctx context.Context, userID string) (*models.StatsAggregate, error)

	// PutStats writes the user's aggregate.
	PutStats(ctx context.Context, userID string, s *models.StatsAggregate) error
}
