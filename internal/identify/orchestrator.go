// Package identify coordinates the identification pipeline: vision
// extraction, assistant resolution, local catalog fallback, and the
// cross-check against the remote authoritative catalog.
package identify

import (
	"context"
	"errors"
	"time"

	"github.com/humiapp/humi/internal/assistant"
	"github.com/humiapp/humi/internal/common"
	"github.com/humiapp/humi/internal/logging"
	"github.com/humiapp/humi/internal/models"
	"github.com/humiapp/humi/internal/remote"
)

// VisionExtractor describes a band image. Failures abort the attempt.
type VisionExtractor interface {
	Extract(ctx context.Context, imageBytes []byte) (models.VisionResult, error)
}

// AssistantResolver turns a vision result into an identification record.
// It degrades internally and never fails.
type AssistantResolver interface {
	Resolve(ctx context.Context, vr models.VisionResult, interests []string, nameHint string) models.IdentificationRecord
}

// CatalogMatcher is the local fuzzy index over the bundled dataset.
type CatalogMatcher interface {
	Match(query string) *models.CatalogEntry
}

// Result is one resolved identification plus the vision output that produced
// it; the vision result is kept so a re-analysis can skip the vision call.
type Result struct {
	Vision      models.VisionResult
	Record      models.IdentificationRecord
	FromCatalog bool
}

type Orchestrator struct {
	extractor VisionExtractor
	resolver  AssistantResolver
	matcher   CatalogMatcher
	store     remote.Store
	logger    logging.Logger
}

func NewOrchestrator(extractor VisionExtractor, resolver AssistantResolver, matcher CatalogMatcher, store remote.Store, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		resolver:  resolver,
		matcher:   matcher,
		store:     store,
		logger:    logger,
	}
}

// Identify runs the full pipeline for a captured image. The only error it
// can return is a vision extraction failure; every later stage degrades to a
// safe record instead.
func (o *Orchestrator) Identify(ctx context.Context, imageBytes []byte, userID string, interests []string) (*Result, error) {
	vr, err := o.extractor.Extract(ctx, imageBytes)
	if err != nil {
		return nil, err
	}

	rec := o.resolver.Resolve(ctx, vr, interests, "")
	return o.finish(ctx, vr, rec, userID), nil
}

// Reidentify re-runs resolution with a user-supplied name correction; the
// image is already described, so the vision call is skipped. This is the
// thumbs-down recovery path.
func (o *Orchestrator) Reidentify(ctx context.Context, vr models.VisionResult, userID string, interests []string, correctedName string) *Result {
	rec := o.resolver.Resolve(ctx, vr, interests, correctedName)
	if correctedName != "" && rec.IsFallback {
		rec.FullName = correctedName
		rec.IsUserCorrected = true
	}
	return o.finish(ctx, vr, rec, userID)
}

func (o *Orchestrator) finish(ctx context.Context, vr models.VisionResult, rec models.IdentificationRecord, userID string) *Result {
	if !rec.Usable() {
		rec = assistant.Fallback(vr, assistant.FallbackMessagePartial)
	}

	// A fallback with no brand still gets a shot at the bundled dataset:
	// the vision text alone often pins down well-known bands.
	if rec.IsFallback && rec.Brand == "" {
		o.matchLocally(vr, &rec)
	}

	res := &Result{Vision: vr, Record: rec}

	if rec.Brand == "" && rec.Line == "" {
		return res
	}

	cat, err := o.store.QueryCatalog(ctx, rec.Brand, rec.Line)
	switch {
	case err == nil:
		res.Record = Merge(cat, rec)
		res.FromCatalog = true
	case errors.Is(err, common.ErrNotFound):
		if rec.Brand != "" && !rec.IsFallback {
			o.stageContribution(ctx, userID, rec)
		}
	default:
		// catalog is enrichment only; the assistant record stands
		o.logger.Warn(ctx, "catalog cross-check failed", "error", err)
	}

	return res
}

func (o *Orchestrator) matchLocally(vr models.VisionResult, rec *models.IdentificationRecord) {
	query := vr.ProbableName
	if query == "" {
		query = vr.BandDescription
	}
	entry := o.matcher.Match(query)
	if entry == nil {
		return
	}

	rec.Brand = entry.Brand
	rec.Line = entry.Line
	rec.FullName = joinName(entry.Brand, entry.Line)
}

// stageContribution stages a pending catalog record for curation. Strictly
// fire-and-forget: its outcome never blocks or fails the identification.
func (o *Orchestrator) stageContribution(ctx context.Context, userID string, rec models.IdentificationRecord) {
	pc := models.PendingContribution{UserID: userID, Identification: rec}

	bg := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(bg, 10*time.Second)
		defer cancel()

		if err := o.store.CreatePendingContribution(ctx, pc); err != nil {
			o.logger.Warn(ctx, "failed to stage pending contribution",
				"brand", rec.Brand, "line", rec.Line, "error", err)
		}
	}()
}
