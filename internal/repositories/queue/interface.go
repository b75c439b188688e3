package queue

import (
	"context"

	"github.com/humiapp/humi/internal/models"
)

// Repository is the local pending-sync queue: log entries that could not be
// written to the remote store yet. Implementations are backed by the local
// SQLite database.
type Repository interface {
	// Append adds an entry to the queue. Appending an id that is already
	// queued overwrites the stored document.
	Append(ctx context.Context, entry *models.LogEntry) error

	// GetAllForUser returns the queued entries of one user, oldest first.
	GetAllForUser(ctx context.Context, userID string) ([]models.LogEntry, error)

	// GetByID returns a queued entry or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.LogEntry, error)

	// Update replaces the stored document of a queued entry.
	Update(ctx context.Context, entry *models.LogEntry) error

	// DeleteByID removes an entry from the queue. Deleting an absent id is
	// not an error.
	DeleteByID(ctx context.Context, id string) error
}
