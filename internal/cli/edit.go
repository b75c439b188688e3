package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/humiapp/humi/internal/models"
	"github.com/humiapp/humi/internal/services"
)

// rate sets the overall rating on a persisted entry.
func (a *App) rate(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	pos, err := GetSimpleText(a.reader, "Entry number (from 'list')", os.Stdout)
	if err != nil {
		return
	}
	id, ok := a.entryAt(pos)
	if !ok {
		return
	}

	line, err := GetSimpleText(a.reader, "Rating 1-5", os.Stdout)
	if err != nil {
		return
	}
	rating, err := strconv.Atoi(line)
	if err != nil {
		fmt.Println("Not a number:", line)
		return
	}

	if _, err := a.logs.UpdateEntry(ctx, a.userID, id, services.EntryPatch{OverallRating: &rating}); err != nil {
		fmt.Println("Could not update entry:", err)
		return
	}
	fmt.Println("Rating saved")
}

// notes replaces the tasting notes on a persisted entry.
func (a *App) notes(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	pos, err := GetSimpleText(a.reader, "Entry number (from 'list')", os.Stdout)
	if err != nil {
		return
	}
	id, ok := a.entryAt(pos)
	if !ok {
		return
	}

	text, err := GetSimpleText(a.reader, "Tasting notes", os.Stdout)
	if err != nil {
		return
	}

	if _, err := a.logs.UpdateEntry(ctx, a.userID, id, services.EntryPatch{Notes: &text}); err != nil {
		fmt.Println("Could not update entry:", err)
		return
	}
	fmt.Println("Notes saved")
}

// feedback records whether the AI identification was accurate.
func (a *App) feedback(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	pos, err := GetSimpleText(a.reader, "Entry number (from 'list')", os.Stdout)
	if err != nil {
		return
	}
	id, ok := a.entryAt(pos)
	if !ok {
		return
	}

	verdict, err := GetSimpleText(a.reader, "Was the identification accurate? (up/down)", os.Stdout)
	if err != nil {
		return
	}

	var fb models.Feedback
	switch verdict {
	case "up", "u", "y", "yes":
		fb = models.FeedbackUp
	case "down", "d", "n", "no":
		fb = models.FeedbackDown
	default:
		fmt.Println("Expected 'up' or 'down'")
		return
	}

	if _, err := a.logs.UpdateEntry(ctx, a.userID, id, services.EntryPatch{AIAccuracyFeedback: &fb}); err != nil {
		fmt.Println("Could not update entry:", err)
		return
	}
	fmt.Println("Feedback saved")
}
