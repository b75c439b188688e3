// Package catalog implements the local fuzzy matcher over the bundled cigar
// reference dataset. The index is built once at startup and never mutated.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/humiapp/humi/internal/models"
)

//go:embed cigar_db.json
var cigarDB []byte

// matchThreshold is the minimum Jaro-Winkler similarity a candidate must
// reach. Tuned to tolerate roughly 30% token divergence, matching the
// behavior of the shipped mobile index.
const matchThreshold = 0.70

// datasetEntry mirrors the bundled JSON: brand -> {cigars: [{line, bandDescription}]}.
type datasetEntry struct {
	Cigars []struct {
		Line            string `json:"line"`
		BandDescription string `json:"bandDescription"`
	} `json:"cigars"`
}

// Matcher resolves a free-text snippet to the best-guess catalog entry.
// The zero value is an always-nil matcher and is safe to use.
type Matcher struct {
	entries []models.CatalogEntry
	metric  *metrics.JaroWinkler
}

// NewFromJSON builds a matcher from a dataset in the bundled JSON shape.
func NewFromJSON(data []byte) (*Matcher, error) {
	var raw map[string]datasetEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog dataset: %w", err)
	}

	m := &Matcher{metric: metrics.NewJaroWinkler()}
	for brand, d := range raw {
		for _, c := range d.Cigars {
			m.entries = append(m.entries, models.CatalogEntry{
				Brand:           brand,
				Line:            c.Line,
				BandDescription: c.BandDescription,
			})
		}
	}
	return m, nil
}

// Default returns the matcher over the embedded dataset. A malformed bundle
// degrades to an empty index rather than failing startup; callers already
// tolerate an always-nil matcher.
func Default() *Matcher {
	m, err := NewFromJSON(cigarDB)
	if err != nil {
		return &Matcher{metric: metrics.NewJaroWinkler()}
	}
	return m
}

// Match returns the single best entry clearing the similarity threshold, or
// nil. It has no side effects and never fails.
func (m *Matcher) Match(query string) *models.CatalogEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(m.entries) == 0 {
		return nil
	}

	metric := m.metric
	if metric == nil {
		metric = metrics.NewJaroWinkler()
	}

	var best *models.CatalogEntry
	var bestScore float64

	for i := range m.entries {
		e := &m.entries[i]
		score := m.score(metric, query, e)
		if score >= matchThreshold && score > bestScore {
			bestScore = score
			best = e
		}
	}

	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func (m *Matcher) score(metric *metrics.JaroWinkler, query string, e *models.CatalogEntry) float64 {
	candidates := []string{
		strings.ToLower(e.Brand),
		strings.ToLower(e.Line),
		strings.ToLower(e.Brand + " " + e.Line),
		strings.ToLower(e.BandDescription),
	}

	var max float64
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if s := strutil.Similarity(query, c, metric); s > max {
			max = s
		}
	}
	return max
}
