package models

// IdentificationRecord is the normalized best-guess metadata for a scanned
// cigar. It is produced by the identification orchestrator and becomes part
// of a LogEntry on save; re-running identification is the only way to
// replace it.
type IdentificationRecord struct {
	FullName            string `json:"fullName"`
	Brand               string `json:"brand,omitempty"`
	Line                string `json:"line,omitempty"`
	Description         string `json:"description"`
	OriginCountry       string `json:"originCountry"`
	WrapperType         string `json:"wrapperType"`
	Strength            string `json:"strength"`
	CommonNotes         string `json:"commonNotes"`
	RecommendedPairings string `json:"recommendedPairings"`

	// IsFallback marks a degraded record produced after an assistant run or
	// parse failure. Fallback records are always safe to display and save.
	IsFallback bool `json:"isFallback"`

	// IsUserCorrected is set when the user supplied or edited the name.
	IsUserCorrected bool `json:"isUserCorrected"`
}

// Usable reports whether the record carries enough signal to show to the
// user as an identification: both a name and a description.
func (r IdentificationRecord) Usable() bool {
	return r.FullName != "" && r.Description != ""
}
