package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAutoFirst(t *testing.T) {
	for _, d := range []Dimension{DimLength, DimFormat, DimTone} {
		entries := Catalog(d)
		require.NotEmpty(t, entries, d.String())
		assert.Equal(t, "auto", entries[0].Value, d.String())
	}
}

func TestCatalogSizes(t *testing.T) {
	assert.Len(t, Lengths, 4)
	assert.Len(t, Formats, 18)
	assert.Len(t, Tones, 9)
	assert.Len(t, Languages, 2)
}

func TestCatalogNoDuplicates(t *testing.T) {
	for _, d := range Dimensions {
		seen := make(map[string]bool)
		for _, e := range Catalog(d) {
			assert.False(t, seen[e.Value], "duplicate %s value %q", d, e.Value)
			assert.NotEmpty(t, e.Label)
			seen[e.Value] = true
		}
	}
}

func TestDefault(t *testing.T) {
	o := Default()
	assert.Equal(t, LengthAuto, o.Length)
	assert.Equal(t, FormatAuto, o.Format)
	assert.Equal(t, ToneAuto, o.Tone)
	assert.Equal(t, LanguageZh, o.Language)
	assert.NoError(t, o.Validate())
}

func TestWith(t *testing.T) {
	tests := []struct {
		name    string
		dim     Dimension
		value   string
		want    Options
		wantErr bool
	}{
		{"length", DimLength, "short", Options{LengthShort, FormatAuto, ToneAuto, LanguageZh}, false},
		{"format", DimFormat, "redbook", Options{LengthAuto, FormatRedbook, ToneAuto, LanguageZh}, false},
		{"tone", DimTone, "ai_practitioner", Options{LengthAuto, FormatAuto, ToneAIPractitioner, LanguageZh}, false},
		{"language", DimLanguage, "en", Options{LengthAuto, FormatAuto, ToneAuto, LanguageEn}, false},
		{"unknown tone", DimTone, "angry", Default(), true},
		{"language has no auto", DimLanguage, "auto", Default(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Default().With(tt.dim, tt.value)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithLeavesReceiverUntouched(t *testing.T) {
	o := Default()
	_, err := o.With(DimTone, "witty")
	require.NoError(t, err)
	assert.Equal(t, ToneAuto, o.Tone)
}

func TestNextPrevWrap(t *testing.T) {
	assert.Equal(t, "short", Next(DimLength, "auto"))
	assert.Equal(t, "auto", Next(DimLength, "long"))
	assert.Equal(t, "long", Prev(DimLength, "auto"))
	assert.Equal(t, "en", Next(DimLanguage, "zh"))
	assert.Equal(t, "zh", Next(DimLanguage, "en"))
	assert.Equal(t, "auto", Next(DimTone, "bogus"))
}

func TestLabelOf(t *testing.T) {
	assert.Equal(t, "小红书风格", LabelOf(DimFormat, "redbook"))
	assert.Equal(t, "English", LabelOf(DimLanguage, "en"))
	assert.Equal(t, "bogus", LabelOf(DimFormat, "bogus"))
}

func TestValidateRejectsZeroValue(t *testing.T) {
	assert.Error(t, Options{}.Validate())
}

func TestParseDimension(t *testing.T) {
	for _, d := range Dimensions {
		got, err := ParseDimension(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseDimension("language")
	require.NoError(t, err)
	assert.Equal(t, DimLanguage, got)

	_, err = ParseDimension("colour")
	assert.Error(t, err)
}
