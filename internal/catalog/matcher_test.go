package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedDataset(t *testing.T) {
	m := Default()
	require.NotEmpty(t, m.entries)
}

func TestMatch(t *testing.T) {
	m := Default()

	tests := []struct {
		name      string
		query     string
		wantBrand string
		wantLine  string
		wantNil   bool
	}{
		{name: "exact brand and line", query: "Cohiba Robusto", wantBrand: "Cohiba", wantLine: "Robusto"},
		{name: "typo tolerated", query: "cohoba robusto", wantBrand: "Cohiba", wantLine: "Robusto"},
		{name: "brand only", query: "padron", wantBrand: "Padron"},
		{name: "gibberish", query: "zzzz qqqq xxxx", wantNil: true},
		{name: "empty query", query: "", wantNil: true},
		{name: "whitespace query", query: "   ", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.query)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantBrand, got.Brand)
			if tt.wantLine != "" {
				assert.Equal(t, tt.wantLine, got.Line)
			}
		})
	}
}

func TestMatch_NeverMutatesIndex(t *testing.T) {
	m := Default()
	got := m.Match("Cohiba Robusto")
	require.NotNil(t, got)

	got.Brand = "changed"
	again := m.Match("Cohiba Robusto")
	require.NotNil(t, again)
	assert.Equal(t, "Cohiba", again.Brand)
}

func TestNewFromJSON_Malformed(t *testing.T) {
	_, err := NewFromJSON([]byte("{not json"))
	require.Error(t, err)
}

func TestZeroMatcherIsSafe(t *testing.T) {
	var m Matcher
	assert.Nil(t, m.Match("Cohiba"))
}
