package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/humiapp/humi/internal/filex"
	"github.com/humiapp/humi/internal/identify"
	"github.com/humiapp/humi/internal/services"
	"github.com/humiapp/humi/internal/vision"
)

// scan runs the full add-entry flow: capture, identify, review (with
// optional name correction and re-analysis), then save.
func (a *App) scan(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	imagePath, err := GetSimpleText(a.reader, "Path to the band photo", os.Stdout)
	if err != nil || imagePath == "" {
		fmt.Println("Scan cancelled")
		return
	}

	cachedPath, err := filex.CacheImage(a.config.DataDir, imagePath)
	if err != nil {
		fmt.Println("Could not read image:", err)
		return
	}

	imageBytes, err := os.ReadFile(cachedPath)
	if err != nil {
		fmt.Println("Could not read image:", err)
		return
	}

	interests, err := GetCommaList(a.reader, "Flavor interests, comma separated (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Scan cancelled")
		return
	}

	session := services.NewSession(a.userID)
	if err := session.CaptureImage(cachedPath); err != nil {
		fmt.Println("Scan failed:", err)
		return
	}

	if err := session.BeginIdentification(); err != nil {
		fmt.Println("Scan failed:", err)
		return
	}
	fmt.Println("Identifying...")

	res, err := a.identifier.Identify(ctx, imageBytes, a.userID, interests)
	if err != nil {
		_ = session.FailIdentification()
		var ee *vision.ExtractionError
		if errors.As(err, &ee) {
			fmt.Println("Could not read the band from this photo. Try a sharper, closer shot.")
		} else {
			fmt.Println("Identification failed:", err)
		}
		return
	}
	if err := session.CompleteIdentification(res); err != nil {
		fmt.Println("Scan failed:", err)
		return
	}

	if !a.review(ctx, session, interests) {
		fmt.Println("Scan discarded")
		return
	}

	a.saveSession(ctx, session)
}

// review prints the identification and lets the user accept it, correct the
// name (triggering re-analysis), or discard. Returns false on discard.
func (a *App) review(ctx context.Context, session *services.Session, interests []string) bool {
	for {
		printRecord(session.Result)

		choice, err := GetSimpleText(a.reader, "(a)ccept, (c)orrect name, (d)iscard", os.Stdout)
		if err != nil {
			return false
		}
		switch choice {
		case "a", "accept", "":
			return true
		case "c", "correct":
			name, err := GetSimpleText(a.reader, "Correct cigar name", os.Stdout)
			if err != nil || name == "" {
				continue
			}
			if err := session.BeginIdentification(); err != nil {
				fmt.Println("Cannot re-identify:", err)
				continue
			}
			fmt.Println("Re-identifying as", name, "...")
			res := a.identifier.Reidentify(ctx, session.Vision, a.userID, interests, name)
			if err := session.CompleteIdentification(res); err != nil {
				fmt.Println("Re-identify failed:", err)
				return false
			}
			session.Draft.FullName = res.Record.FullName
		case "d", "discard":
			return false
		default:
			fmt.Println("Unknown choice:", choice)
		}
	}
}

func (a *App) saveSession(ctx context.Context, session *services.Session) {
	if rating, ok := a.askRating(); ok {
		session.Draft.OverallRating = &rating
	}
	if notes, err := GetSimpleText(a.reader, "Tasting notes (optional)", os.Stdout); err == nil && notes != "" {
		session.Draft.Notes = notes
	}

	if err := session.BeginSave(); err != nil {
		fmt.Println("Save failed:", err)
		return
	}

	entry, err := a.logs.Save(ctx, session.Draft)
	if err != nil {
		_ = session.FailSave()
		fmt.Println("Save failed:", err)
		return
	}
	if err := session.CompleteSave(entry.PendingSync); err != nil {
		fmt.Println("Save failed:", err)
		return
	}

	if entry.PendingSync {
		fmt.Println("Saved locally; will sync when the server is reachable")
	} else {
		fmt.Println("Saved:", entry.FullName)
	}
}

func (a *App) askRating() (int, bool) {
	line, err := GetSimpleText(a.reader, "Rating 1-5 (optional)", os.Stdout)
	if err != nil || line == "" {
		return 0, false
	}
	rating, err := strconv.Atoi(line)
	if err != nil || rating < 1 || rating > 5 {
		fmt.Println("Ignoring invalid rating:", line)
		return 0, false
	}
	return rating, true
}

func printRecord(res *identify.Result) {
	rec := res.Record
	fmt.Println()
	fmt.Println("  Name:       ", rec.FullName)
	if rec.Brand != "" {
		fmt.Println("  Brand:      ", rec.Brand)
	}
	if rec.Line != "" {
		fmt.Println("  Line:       ", rec.Line)
	}
	if rec.OriginCountry != "" {
		fmt.Println("  Origin:     ", rec.OriginCountry)
	}
	if rec.WrapperType != "" {
		fmt.Println("  Wrapper:    ", rec.WrapperType)
	}
	if rec.Strength != "" {
		fmt.Println("  Strength:   ", rec.Strength)
	}
	fmt.Println("  Description:", rec.Description)
	if res.FromCatalog {
		fmt.Println("  (verified against the catalog)")
	}
	if rec.IsFallback {
		fmt.Println("  (automatic identification was incomplete)")
	}
	fmt.Println()
}
