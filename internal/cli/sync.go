package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/humiapp/humi/internal/common"
)

// sync drains the pending queue on demand.
func (a *App) sync(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	pending, err := a.logs.PendingCount(ctx, a.userID)
	if err != nil {
		fmt.Println("Could not read pending queue:", err)
		return
	}
	if pending == 0 {
		fmt.Println("Nothing to sync")
		return
	}

	n, err := a.logs.SyncPending(ctx, a.userID)
	if err != nil {
		fmt.Println("Sync failed:", err)
		return
	}
	fmt.Printf("Synced %d of %d queued entries\n", n, pending)
}

// stats prints the user's aggregate from the remote store.
func (a *App) stats(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	agg, err := a.store.GetStats(ctx, a.userID)
	if errors.Is(err, common.ErrNotFound) {
		fmt.Println("No stats yet. Log a cigar first.")
		return
	}
	if err != nil {
		fmt.Println("Could not load stats:", err)
		return
	}

	fmt.Println("Cigars logged:", agg.LogCount)
	if agg.LogCount > 0 && agg.TotalRating > 0 {
		fmt.Printf("Average rating: %.1f\n", float64(agg.TotalRating)/float64(agg.LogCount))
	}
	if len(agg.Countries) > 0 {
		fmt.Println("Countries tried:", len(agg.Countries))
	}
	for strength, count := range agg.StrengthCounts {
		fmt.Printf("  %s: %d\n", strength, count)
	}
}
