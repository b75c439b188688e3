// Package stats keeps the per-user gamification aggregate in the remote
// store up to date as log entries are finalized.
package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/humiapp/humi/internal/common"
	"github.com/humiapp/humi/internal/models"
	"github.com/humiapp/humi/internal/remote"
)

// Notifier folds finalized entries into the user's stats document.
// Failures are returned for logging; callers never surface them to users.
type Notifier struct {
	store remote.Store
}

func NewNotifier(store remote.Store) *Notifier {
	return &Notifier{store: store}
}

// LogAdded reads (or creates) the user's aggregate, applies the entry, and
// writes the result back.
func (n *Notifier) LogAdded(ctx context.Context, userID string, entry models.LogEntry) error {
	agg, err := n.store.GetStats(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		agg = &models.StatsAggregate{}
	} else if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	agg.Apply(entry)

	if err := n.store.PutStats(ctx, userID, agg); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
