package assistant

import "github.com/humiapp/humi/internal/models"

// FallbackMessagePartial is shown when the assistant answered but the answer
// carried too little signal to present as an identification.
const FallbackMessagePartial = "We couldn't identify this cigar with confidence just yet, but the Humi community is growing fast. Tap the thumbs-down icon to add it to the catalog and help us get better."

// FallbackMessageFail is shown when the assistant run or response parsing
// failed outright.
const FallbackMessageFail = "We're still learning — and your help makes this better. Tap the thumbs-down icon to contribute this cigar to the Humi catalog."

// Fallback builds the degraded identification record used whenever AI
// resolution fails. It is always safe to display and save: the name comes
// best-effort from the vision probable name, everything else is empty.
func Fallback(vr models.VisionResult, message string) models.IdentificationRecord {
	fullName := vr.ProbableName
	if fullName == "" {
		fullName = "Unknown Cigar"
	}
	return models.IdentificationRecord{
		FullName:    fullName,
		Description: message,
		IsFallback:  true,
	}
}
