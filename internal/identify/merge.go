package identify

import "github.com/humiapp/humi/internal/models"

// Merge reconciles an assistant identification with an authoritative catalog
// row. Field precedence is fixed: remote catalog > assistant; the user's own
// name override is applied later, at save time, on top of the merged record.
// Flags (IsFallback, IsUserCorrected) always come from the assistant record.
func Merge(cat *models.CatalogRecord, rec models.IdentificationRecord) models.IdentificationRecord {
	if cat == nil {
		return rec
	}

	merged := rec
	merged.Brand = pick(cat.Brand, rec.Brand)
	merged.Line = pick(cat.Line, rec.Line)
	merged.Description = pick(cat.Description, rec.Description)
	merged.OriginCountry = pick(cat.OriginCountry, rec.OriginCountry)
	merged.WrapperType = pick(cat.WrapperType, rec.WrapperType)
	merged.Strength = pick(cat.Strength, rec.Strength)
	merged.CommonNotes = pick(cat.CommonNotes, rec.CommonNotes)
	merged.RecommendedPairings = pick(cat.RecommendedPairings, rec.RecommendedPairings)

	if merged.FullName == "" {
		merged.FullName = joinName(merged.Brand, merged.Line)
	}
	return merged
}

func pick(first, second string) string {
	if first != "" {
		return first
	}
	return second
}

func joinName(brand, line string) string {
	switch {
	case brand == "":
		return line
	case line == "":
		return brand
	default:
		return brand + " " + line
	}
}
