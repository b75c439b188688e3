// Package models defines the data shapes flowing through the identification
// pipeline: vision output, identification records, log entries, catalog rows
// and the per-user stats aggregate.
package models

// VisionResult is the outcome of describing a captured band image with the
// vision model. Produced once per image and never mutated afterwards.
type VisionResult struct {
	// ProbableName is a heuristically extracted name fragment from the
	// description. Often empty; never relied on as authoritative.
	ProbableName string `json:"probableName"`

	// BandDescription is the literal free-text description of everything
	// visible on the band (words, symbols, colors, layout).
	BandDescription string `json:"bandDescription"`
}
