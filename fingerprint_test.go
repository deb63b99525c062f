package afis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/high-horse/afis/templates"
)

func sampleTemplate() *templates.Template {
	return &templates.Template{
		Width:   200,
		Height:  200,
		Dpi:     500,
		Pattern: templates.PatternLeftLoop,
		Minutiae: []templates.Minutia{
			{X: 10, Y: 10, Direction: 0, Type: templates.TypeEnding, Quality: 70},
			{X: 50, Y: 60, Direction: 64, Type: templates.TypeBifurcation, Quality: 80},
			{X: 80, Y: 20, Direction: 128, Type: templates.TypeEnding},
		},
		RidgeCounts: []templates.RidgeCount{{From: 0, To: 1, Count: 7}},
	}
}

func compactBytes(t *testing.T) []byte {
	t.Helper()
	data, err := templates.CompactFormat{}.Export(sampleTemplate())
	require.NoError(t, err)
	return data
}

func grayImage(w, h int) *Image {
	img, _ := NewImage(w, h, make([]byte, w*h))
	return img
}

func TestEmptyFingerprint(t *testing.T) {
	fp := New()

	data, err := fp.Template()
	require.NoError(t, err)
	assert.Nil(t, data, "absent template is not an error")

	iso, err := fp.IsoTemplate()
	require.NoError(t, err)
	assert.Nil(t, iso)

	xml, err := fp.XmlTemplate()
	require.NoError(t, err)
	assert.Nil(t, xml)

	assert.Nil(t, fp.Image())
	assert.Nil(t, fp.SearchTemplate())
	assert.Equal(t, FingerAny, fp.Finger())
	assert.Empty(t, fp.Source())
}

func TestSetTemplateRoundTrip(t *testing.T) {
	fp := New()
	require.NoError(t, fp.SetTemplate(compactBytes(t)))

	got, err := fp.Template()
	require.NoError(t, err)
	reimported, err := templates.CompactFormat{}.Import(got)
	require.NoError(t, err)
	require.Len(t, reimported.Minutiae, 3)
	assert.True(t, sampleTemplate().Equal(reimported))
}

func TestCrossFormatConversion(t *testing.T) {
	fp := New()
	require.NoError(t, fp.SetTemplate(compactBytes(t)))

	iso, err := fp.IsoTemplate()
	require.NoError(t, err)

	other := New()
	require.NoError(t, other.SetIsoTemplate(iso))
	xml, err := other.XmlTemplate()
	require.NoError(t, err)

	third := New()
	require.NoError(t, third.SetXmlTemplate(xml))
	back, err := third.Template()
	require.NoError(t, err)

	got, err := templates.CompactFormat{}.Import(back)
	require.NoError(t, err)
	assert.True(t, sampleTemplate().Equal(got), "every format converts through the same canonical model")
}

func TestSetTemplateNilClears(t *testing.T) {
	fp := New()
	require.NoError(t, fp.SetTemplate(compactBytes(t)))
	require.NotNil(t, fp.SearchTemplate())

	require.NoError(t, fp.SetTemplate(nil))
	assert.Nil(t, fp.SearchTemplate())
	data, err := fp.Template()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSetTemplateRejectsGarbage(t *testing.T) {
	fp := New()
	err := fp.SetTemplate([]byte{0x01, 0x02})

	var derr *templates.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Nil(t, fp.SearchTemplate(), "failed import leaves no partial state")
}

func TestSetImage(t *testing.T) {
	fp := New()
	img := grayImage(120, 120)
	require.NoError(t, fp.SetImage(img))
	assert.Same(t, img, fp.Image(), "images are stored by reference")

	require.NoError(t, fp.SetImage(nil))
	assert.Nil(t, fp.Image())
}

func TestSetImageTooSmall(t *testing.T) {
	fp := New()
	err := fp.SetImage(grayImage(50, 50))

	var verr *templates.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, fp.Image(), "failed set leaves the image absent")
}

func TestSetImageKeepsPriorOnFailure(t *testing.T) {
	fp := New()
	img := grayImage(150, 150)
	require.NoError(t, fp.SetImage(img))

	err := fp.SetImage(grayImage(120, 80))
	var verr *templates.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Same(t, img, fp.Image())
}

func TestSetFinger(t *testing.T) {
	fp := New()
	require.NoError(t, fp.SetFinger(FingerLeftIndex))
	assert.Equal(t, FingerLeftIndex, fp.Finger())

	err := fp.SetFinger(Finger(40))
	var verr *templates.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FingerLeftIndex, fp.Finger(), "failed set keeps the prior tag")
}

func TestClone(t *testing.T) {
	fp := New()
	require.NoError(t, fp.SetTemplate(compactBytes(t)))
	require.NoError(t, fp.SetFinger(FingerRightThumb))
	require.NoError(t, fp.SetImage(grayImage(150, 150)))
	fp.SetSource("scanner-07")

	c := fp.Clone()
	require.NotNil(t, c.SearchTemplate())
	assert.NotSame(t, fp.SearchTemplate(), c.SearchTemplate(), "the compiled template is deep-copied")
	assert.True(t, fp.SearchTemplate().Canonical().Equal(c.SearchTemplate().Canonical()))
	assert.Equal(t, FingerRightThumb, c.Finger())
	assert.Equal(t, "scanner-07", c.Source())
	assert.Same(t, fp.Image(), c.Image(), "the raw image is shared, not deep-copied")
}

func TestCloneEmpty(t *testing.T) {
	c := New().Clone()
	assert.Nil(t, c.SearchTemplate())
	assert.Equal(t, FingerAny, c.Finger())
}

func TestGetterRecomputes(t *testing.T) {
	fp := New()
	require.NoError(t, fp.SetTemplate(compactBytes(t)))

	first, err := fp.Template()
	require.NoError(t, err)
	second, err := fp.Template()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotSame(t, &first[0], &second[0], "each call exports a fresh buffer")
}
