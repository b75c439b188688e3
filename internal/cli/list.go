package cli

import (
	"context"
	"fmt"
)

// list prints the merged journal, newest first, and caches it so follow-up
// commands can address entries by position.
func (a *App) list(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	entries, err := a.logs.Load(ctx, a.userID)
	if err != nil {
		fmt.Println("Could not load journal:", err)
		return
	}
	a.lastEntries = entries

	if len(entries) == 0 {
		fmt.Println("No entries yet. Try 'scan'.")
		return
	}

	for i, e := range entries {
		rating := "-"
		if e.OverallRating != nil {
			rating = fmt.Sprintf("%d/5", *e.OverallRating)
		}
		marker := ""
		if e.PendingSync {
			marker = " [pending sync]"
		}
		fmt.Printf("%3d. %s  %-30s %s%s\n", i+1, e.SubmittedAt.Local().Format("2006-01-02"), e.FullName, rating, marker)
		if e.Notes != "" {
			fmt.Printf("     notes: %s\n", e.Notes)
		}
	}
}

// entryAt resolves a 1-based list position from the last listing.
func (a *App) entryAt(pos string) (string, bool) {
	var idx int
	if _, err := fmt.Sscanf(pos, "%d", &idx); err != nil || idx < 1 || idx > len(a.lastEntries) {
		fmt.Println("Unknown entry; run 'list' and use its numbers")
		return "", false
	}
	return a.lastEntries[idx-1].ID, true
}
