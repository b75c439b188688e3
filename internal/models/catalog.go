package models

// CatalogEntry is one row of the bundled reference dataset used by the local
// fuzzy matcher. Read-only at runtime.
type CatalogEntry struct {
	Brand           string `json:"brand"`
	Line            string `json:"line"`
	BandDescription string `json:"bandDescription"`
}

// CatalogRecord is a row of the remote authoritative catalog. Once a brand
// and line are catalogued there, its metadata wins over assistant guesses.
type CatalogRecord struct {
	Brand               string `json:"brand"`
	Line                string `json:"line"`
	Description         string `json:"description"`
	OriginCountry       string `json:"originCountry"`
	WrapperType         string `json:"wrapperType"`
	Strength            string `json:"strength"`
	CommonNotes         string `json:"commonNotes"`
	RecommendedPairings string `json:"recommendedPairings"`
}

// PendingContribution is a staged catalog curation record: an identification
// for a brand/line pair the remote catalog does not know yet.
type PendingContribution struct {
	UserLogID      string               `json:"userLogId,omitempty"`
	UserID         string               `json:"userId"`
	Identification IdentificationRecord `json:"identification"`
}
