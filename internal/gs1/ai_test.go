package gs1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCatalogue returns a small AI table covering the decoding shapes the
// engine has to handle: fixed, variable, and decimal definitions.
func testCatalogue(t *testing.T) *Catalogue {
	t.Helper()
	cat, err := NewCatalogue([]Definition{
		{Code: "00", MaxLength: 18, Title: "SSCC"},
		{Code: "01", MaxLength: 14, Title: "GTIN"},
		{Code: "10", MaxLength: 20, Variable: true, Title: "BATCH/LOT"},
		{Code: "17", MaxLength: 6, Title: "USE BY OR EXPIRY"},
		{Code: "21", MaxLength: 20, Variable: true, Title: "SERIAL"},
		{Code: "3103", MaxLength: 6, Decimals: 3, Title: "NET WEIGHT (kg)"},
		{Code: "37", MaxLength: 8, Variable: true, Title: "COUNT"},
	})
	require.NoError(t, err)
	return cat
}

func TestNewCatalogue_Validation(t *testing.T) {
	tests := []struct {
		name    string
		defs    []Definition
		wantErr string
	}{
		{
			name:    "empty code",
			defs:    []Definition{{Code: "", MaxLength: 2}},
			wantErr: "non-empty digit string",
		},
		{
			name:    "non-digit code",
			defs:    []Definition{{Code: "0A", MaxLength: 2}},
			wantErr: "non-empty digit string",
		},
		{
			name:    "zero max length",
			defs:    []Definition{{Code: "01", MaxLength: 0}},
			wantErr: "must be positive",
		},
		{
			name:    "negative decimals",
			defs:    []Definition{{Code: "01", MaxLength: 14, Decimals: -1}},
			wantErr: "must not be negative",
		},
		{
			name: "duplicate code",
			defs: []Definition{
				{Code: "01", MaxLength: 14},
				{Code: "01", MaxLength: 14},
			},
			wantErr: "duplicate AI code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalogue(tt.defs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewCatalogue_CopiesInput(t *testing.T) {
	defs := []Definition{{Code: "01", MaxLength: 14}}
	cat, err := NewCatalogue(defs)
	require.NoError(t, err)

	// Mutating the input slice must not affect the catalogue.
	defs[0].Code = "99"
	def, ok := cat.Find("01")
	assert.True(t, ok)
	assert.Equal(t, "01", def.Code)
}

func TestCatalogue_Resolve(t *testing.T) {
	cat := testCatalogue(t)

	def, err := cat.Resolve("0112345678901234").Get()
	require.NoError(t, err)
	assert.Equal(t, "01", def.Code)

	def, err = cat.Resolve("3103001125").Get()
	require.NoError(t, err)
	assert.Equal(t, "3103", def.Code)
}

func TestCatalogue_Resolve_NotFound(t *testing.T) {
	cat := testCatalogue(t)

	_, err := cat.Resolve("9912345").Get()
	require.Error(t, err)

	var notFound *AINotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "9912345", notFound.Remainder)
}

func TestCatalogue_Resolve_FirstMatchInOrderWins(t *testing.T) {
	// Overlapping prefixes tie-break by catalogue order, not by length.
	cat, err := NewCatalogue([]Definition{
		{Code: "01", MaxLength: 14, Title: "GTIN"},
		{Code: "011", MaxLength: 5, Title: "OVERLAP"},
	})
	require.NoError(t, err)

	def, err := cat.Resolve("01199999").Get()
	require.NoError(t, err)
	assert.Equal(t, "01", def.Code)

	// Reversed order resolves the longer code first.
	cat, err = NewCatalogue([]Definition{
		{Code: "011", MaxLength: 5, Title: "OVERLAP"},
		{Code: "01", MaxLength: 14, Title: "GTIN"},
	})
	require.NoError(t, err)

	def, err = cat.Resolve("01199999").Get()
	require.NoError(t, err)
	assert.Equal(t, "011", def.Code)
}

func TestCatalogue_Find(t *testing.T) {
	cat := testCatalogue(t)

	def, ok := cat.Find("3103")
	assert.True(t, ok)
	assert.Equal(t, 3, def.Decimals)

	_, ok = cat.Find("9999")
	assert.False(t, ok)
}

func TestCatalogue_Definitions_ReturnsCopy(t *testing.T) {
	cat := testCatalogue(t)

	defs := cat.Definitions()
	require.NotEmpty(t, defs)
	defs[0].Code = "mutated"

	fresh := cat.Definitions()
	assert.Equal(t, "00", fresh[0].Code)
	assert.Equal(t, cat.Len(), len(fresh))
}
