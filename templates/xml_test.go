package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXmlRoundTrip(t *testing.T) {
	f := XmlFormat{}
	orig := sampleTemplate()

	data, err := f.Export(orig)
	require.NoError(t, err)
	got, err := f.Import(data)
	require.NoError(t, err)

	assert.True(t, orig.Equal(got))

	// byte identity is not promised, field identity is
	again, err := f.Export(got)
	require.NoError(t, err)
	reimported, err := f.Import(again)
	require.NoError(t, err)
	assert.True(t, got.Equal(reimported))
}

func TestXmlOptionalAttributes(t *testing.T) {
	f := XmlFormat{}
	orig := &Template{
		Width:    150,
		Height:   200,
		Dpi:      500,
		Minutiae: []Minutia{{X: 20, Y: 30, Direction: 10, Type: TypeEnding}},
	}

	data, err := f.Export(orig)
	require.NoError(t, err)
	doc := string(data)
	assert.NotContains(t, doc, "Quality", "unreported quality is expressed by absence")
	assert.NotContains(t, doc, "Pattern", "unknown pattern class is expressed by absence")
	assert.NotContains(t, doc, "RidgeCount")
	assert.Contains(t, doc, `Direction="10"`)

	got, err := f.Import(data)
	require.NoError(t, err)
	assert.True(t, orig.Equal(got))
}

func TestXmlImportHandWritten(t *testing.T) {
	f := XmlFormat{}
	doc := `<FingerprintTemplate Version="1">
	  <Header Height="200" Width="200" Dpi="500" Pattern="whorl"/>
	  <Minutia Y="10" X="10" Type="ending" Direction="0"/>
	  <Minutia X="50" Y="60" Direction="64" Type="bifurcation" Quality="80"/>
	</FingerprintTemplate>`

	got, err := f.Import([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 200, got.Width)
	assert.Equal(t, PatternWhorl, got.Pattern)
	require.Len(t, got.Minutiae, 2)
	assert.Equal(t, Minutia{X: 50, Y: 60, Direction: 64, Type: TypeBifurcation, Quality: 80}, got.Minutiae[1])
}

func TestXmlImportMalformed(t *testing.T) {
	f := XmlFormat{}
	for _, doc := range []string{"", "<FingerprintTemplate", "<Other/>", "not xml at all"} {
		_, err := f.Import([]byte(doc))
		var derr *DecodeError
		require.ErrorAs(t, err, &derr, "input %q", doc)
	}
}

func TestXmlImportOutOfRange(t *testing.T) {
	f := XmlFormat{}
	cases := []struct {
		name string
		doc  string
	}{
		{"direction", `<FingerprintTemplate Version="1"><Header Width="200" Height="200" Dpi="500"/><Minutia X="1" Y="1" Direction="300" Type="ending"/></FingerprintTemplate>`},
		{"quality", `<FingerprintTemplate Version="1"><Header Width="200" Height="200" Dpi="500"/><Minutia X="1" Y="1" Direction="1" Type="ending" Quality="120"/></FingerprintTemplate>`},
		{"type", `<FingerprintTemplate Version="1"><Header Width="200" Height="200" Dpi="500"/><Minutia X="1" Y="1" Direction="1" Type="island"/></FingerprintTemplate>`},
		{"pattern", `<FingerprintTemplate Version="1"><Header Width="200" Height="200" Dpi="500" Pattern="spiral"/></FingerprintTemplate>`},
		{"position", `<FingerprintTemplate Version="1"><Header Width="200" Height="200" Dpi="500"/><Minutia X="500" Y="1" Direction="1" Type="ending"/></FingerprintTemplate>`},
		{"version", `<FingerprintTemplate Version="9"><Header Width="200" Height="200" Dpi="500"/></FingerprintTemplate>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Import([]byte(tc.doc))
			var derr *DecodeError
			require.ErrorAs(t, err, &derr)
		})
	}
}

func TestXmlExportShape(t *testing.T) {
	f := XmlFormat{}
	data, err := f.Export(sampleTemplate())
	require.NoError(t, err)

	doc := string(data)
	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, `<FingerprintTemplate Version="1">`)
	assert.Contains(t, doc, `Pattern="right-loop"`)
	assert.Contains(t, doc, `<RidgeCount From="0" To="1" Count="7">`)
	assert.Equal(t, 3, strings.Count(doc, "<Minutia "))
}
