package afis

import (
	"fmt"

	"github.com/high-horse/afis/search"
	"github.com/high-horse/afis/templates"
)

// MinImageSide is the smallest usable fingerprint image dimension.
const MinImageSide = 100

// Fingerprint collects the per-finger data used around template
// extraction and matching: an optional raw image, at most one compiled
// template, the finger position tag and a free-text source label.
// Wire-format access always runs through the canonical model, so every
// supported format is one codec away from the compiled form.
//
// The codecs a Fingerprint holds are stateless and shared; the record
// itself is not safe for concurrent mutation and needs external
// synchronization when shared across goroutines. Concurrent getters on
// an unmutated record are safe.
type Fingerprint struct {
	compact templates.Format
	iso     templates.Format
	xml     templates.Format

	finger  Finger
	decoded *search.Template
	image   *Image
	source  string
}

// New creates an empty Fingerprint wired with the default codecs.
func New() *Fingerprint {
	return NewWithFormats(templates.CompactFormat{}, templates.IsoFormat{}, templates.XmlFormat{})
}

// NewWithFormats creates an empty Fingerprint with explicit codec
// instances. The codecs must be stateless; they are held as immutable
// dependencies for the life of the record.
func NewWithFormats(compact, iso, xml templates.Format) *Fingerprint {
	return &Fingerprint{compact: compact, iso: iso, xml: xml}
}

// SetImage attaches the raw image, or clears it when img is nil. Images
// smaller than MinImageSide in either dimension are rejected and the
// prior image is kept. The image is stored by reference; clone it first
// to avoid sharing.
func (fp *Fingerprint) SetImage(img *Image) error {
	if img == nil {
		fp.image = nil
		return nil
	}
	if img.Width < MinImageSide || img.Height < MinImageSide {
		return &templates.ValidationError{
			Field:  "image",
			Reason: fmt.Sprintf("image %dx%d is too small, want at least %dx%d", img.Width, img.Height, MinImageSide, MinImageSide),
		}
	}
	fp.image = img
	return nil
}

// Image returns the attached raw image, nil when absent. The value is
// not cloned.
func (fp *Fingerprint) Image() *Image { return fp.image }

func (fp *Fingerprint) setVia(f templates.Format, data []byte) error {
	if data == nil {
		fp.decoded = nil
		return nil
	}
	t, err := f.Import(data)
	if err != nil {
		return err
	}
	compiled, err := search.Compile(t)
	if err != nil {
		return err
	}
	fp.decoded = compiled
	return nil
}

func (fp *Fingerprint) getVia(f templates.Format) ([]byte, error) {
	if fp.decoded == nil {
		return nil, nil
	}
	return f.Export(fp.decoded.Canonical())
}

// Template returns the owned template in the native compact format, nil
// when none is set. The bytes are recomputed from the compiled template
// on every call so they always reflect current state; callers needing
// repeated access should cache the result.
func (fp *Fingerprint) Template() ([]byte, error) { return fp.getVia(fp.compact) }

// SetTemplate replaces the owned template from compact bytes, or clears
// it when data is nil. The owned template is always replaced wholesale,
// never mutated in place.
func (fp *Fingerprint) SetTemplate(data []byte) error { return fp.setVia(fp.compact, data) }

// IsoTemplate returns the owned template as an ISO/IEC 19794-2:2005
// single-finger record, nil when none is set. Use together with
// SetIsoTemplate for two-way template exchange with other biometric
// systems. The finger tag is not stored in the record; carry it
// separately.
func (fp *Fingerprint) IsoTemplate() ([]byte, error) { return fp.getVia(fp.iso) }

// SetIsoTemplate replaces the owned template from an ISO/IEC 19794-2
// single-finger record, or clears it when data is nil.
func (fp *Fingerprint) SetIsoTemplate(data []byte) error { return fp.setVia(fp.iso, data) }

// XmlTemplate returns the owned template as an XML document, nil when
// none is set. XML suits data exchange and debugging over compactness.
func (fp *Fingerprint) XmlTemplate() ([]byte, error) { return fp.getVia(fp.xml) }

// SetXmlTemplate replaces the owned template from an XML document, or
// clears it when data is nil.
func (fp *Fingerprint) SetXmlTemplate(data []byte) error { return fp.setVia(fp.xml, data) }

// Finger returns the finger position tag, FingerAny by default.
func (fp *Fingerprint) Finger() Finger { return fp.finger }

// SetFinger sets the finger position tag.
func (fp *Fingerprint) SetFinger(f Finger) error {
	if f >= fingerEnd {
		return &templates.ValidationError{Field: "finger", Reason: fmt.Sprintf("position %d out of range", uint8(f))}
	}
	fp.finger = f
	return nil
}

// Source returns the free-text label describing where this fingerprint
// came from.
func (fp *Fingerprint) Source() string { return fp.source }

// SetSource sets the source label.
func (fp *Fingerprint) SetSource(source string) { fp.source = source }

// SearchTemplate exposes the compiled template for extraction and
// matching engines, nil when none is set.
func (fp *Fingerprint) SearchTemplate() *search.Template { return fp.decoded }

// AttachSearchTemplate replaces the owned compiled template directly.
// This is the seam an extraction engine uses to hand back its result.
func (fp *Fingerprint) AttachSearchTemplate(t *search.Template) { fp.decoded = t }

// Clone returns a copy with a deep-copied compiled template and the
// finger tag and source label carried over. The raw image is shared by
// reference; callers manage image sharing explicitly.
func (fp *Fingerprint) Clone() *Fingerprint {
	c := NewWithFormats(fp.compact, fp.iso, fp.xml)
	if fp.decoded != nil {
		c.decoded = fp.decoded.Clone()
	}
	c.finger = fp.finger
	c.source = fp.source
	c.image = fp.image
	return c
}
