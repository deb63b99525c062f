package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTemplate() *Template {
	return &Template{
		Width:   200,
		Height:  200,
		Dpi:     500,
		Pattern: PatternRightLoop,
		Minutiae: []Minutia{
			{X: 10, Y: 10, Direction: 0, Type: TypeEnding, Quality: 70},
			{X: 50, Y: 60, Direction: 64, Type: TypeBifurcation, Quality: 80},
			{X: 80, Y: 20, Direction: 128, Type: TypeEnding},
		},
		RidgeCounts: []RidgeCount{{From: 0, To: 1, Count: 7}},
	}
}

func TestTemplateValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Template)
		field  string
	}{
		{"valid", func(*Template) {}, ""},
		{"empty minutiae", func(tp *Template) { tp.Minutiae = []Minutia{}; tp.RidgeCounts = nil }, ""},
		{"nil minutiae", func(tp *Template) { tp.Minutiae = nil }, "minutiae"},
		{"zero width", func(tp *Template) { tp.Width = 0 }, "bounds"},
		{"negative dpi", func(tp *Template) { tp.Dpi = -1 }, "dpi"},
		{"minutia outside bounds", func(tp *Template) { tp.Minutiae[1].X = 200 }, "minutiae"},
		{"minutia negative", func(tp *Template) { tp.Minutiae[0].Y = -1 }, "minutiae"},
		{"quality over 100", func(tp *Template) { tp.Minutiae[0].Quality = 101 }, "minutiae"},
		{"bad minutia type", func(tp *Template) { tp.Minutiae[2].Type = 9 }, "minutiae"},
		{"bad pattern", func(tp *Template) { tp.Pattern = 42 }, "pattern class"},
		{"ridge count index out of range", func(tp *Template) { tp.RidgeCounts[0].To = 3 }, "ridge counts"},
		{"ridge count self pair", func(tp *Template) { tp.RidgeCounts[0].To = 0 }, "ridge counts"},
		{"negative ridge count", func(tp *Template) { tp.RidgeCounts[0].Count = -2 }, "ridge counts"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tp := sampleTemplate()
			tc.mutate(tp)
			err := tp.Validate()
			if tc.field == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestTemplateClone(t *testing.T) {
	orig := sampleTemplate()
	c := orig.Clone()
	require.True(t, orig.Equal(c))

	c.Minutiae[0].X = 99
	c.RidgeCounts[0].Count = 1
	assert.Equal(t, 10, orig.Minutiae[0].X)
	assert.Equal(t, 7, orig.RidgeCounts[0].Count)
	assert.False(t, orig.Equal(c))
}

func TestTemplateEqual(t *testing.T) {
	a := sampleTemplate()
	b := sampleTemplate()
	require.True(t, a.Equal(b))

	b.Minutiae[1], b.Minutiae[2] = b.Minutiae[2], b.Minutiae[1]
	assert.False(t, a.Equal(b), "minutia order is significant")
}

func TestPatternClassRoundTrip(t *testing.T) {
	for p := PatternUnknown; p <= PatternWhorl; p++ {
		got, err := ParsePatternClass(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePatternClass("spiral")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestMinutiaTypeRoundTrip(t *testing.T) {
	for typ := TypeOther; typ <= TypeBifurcation; typ++ {
		got, err := ParseMinutiaType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseMinutiaType("island")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
