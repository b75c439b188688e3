package identify

import (
	"testing"

	"github.com/humiapp/humi/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		cat  *models.CatalogRecord
		rec  models.IdentificationRecord
		want models.IdentificationRecord
	}{
		{
			name: "nil catalog returns record unchanged",
			cat:  nil,
			rec:  models.IdentificationRecord{FullName: "X", Description: "d"},
			want: models.IdentificationRecord{FullName: "X", Description: "d"},
		},
		{
			name: "catalog wins over assistant",
			cat: &models.CatalogRecord{
				Brand: "Cohiba", Line: "Robusto",
				Description: "catalog description", OriginCountry: "Cuba",
			},
			rec: models.IdentificationRecord{
				FullName: "Cohiba Robusto", Brand: "cohiba?", Line: "robusto?",
				Description: "assistant description", OriginCountry: "Honduras",
				Strength: "Full",
			},
			want: models.IdentificationRecord{
				FullName: "Cohiba Robusto", Brand: "Cohiba", Line: "Robusto",
				Description: "catalog description", OriginCountry: "Cuba",
				Strength: "Full",
			},
		},
		{
			name: "assistant fills catalog gaps",
			cat:  &models.CatalogRecord{Brand: "Padron", Line: "1964"},
			rec: models.IdentificationRecord{
				FullName: "Padron 1964", Strength: "Full", CommonNotes: "Cocoa",
			},
			want: models.IdentificationRecord{
				FullName: "Padron 1964", Brand: "Padron", Line: "1964",
				Strength: "Full", CommonNotes: "Cocoa",
			},
		},
		{
			name: "empty full name built from brand and line",
			cat:  &models.CatalogRecord{Brand: "Oliva", Line: "Serie V"},
			rec:  models.IdentificationRecord{},
			want: models.IdentificationRecord{FullName: "Oliva Serie V", Brand: "Oliva", Line: "Serie V"},
		},
		{
			name: "flags preserved from assistant record",
			cat:  &models.CatalogRecord{Brand: "Ashton"},
			rec:  models.IdentificationRecord{FullName: "Ashton", IsFallback: true, IsUserCorrected: true},
			want: models.IdentificationRecord{FullName: "Ashton", Brand: "Ashton", IsFallback: true, IsUserCorrected: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.cat, tt.rec))
		})
	}
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "Cohiba Robusto", joinName("Cohiba", "Robusto"))
	assert.Equal(t, "Cohiba", joinName("Cohiba", ""))
	assert.Equal(t, "Robusto", joinName("", "Robusto"))
	assert.Equal(t, "", joinName("", ""))
}
