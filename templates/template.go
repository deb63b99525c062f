package templates

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// PatternClass is the overall ridge-flow classification of a print.
type PatternClass uint8

const (
	PatternUnknown PatternClass = iota
	PatternArch
	PatternTentedArch
	PatternLeftLoop
	PatternRightLoop
	PatternWhorl
)

var patternNames = [...]string{"unknown", "arch", "tented-arch", "left-loop", "right-loop", "whorl"}

func (p PatternClass) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return fmt.Sprintf("pattern(%d)", uint8(p))
}

// ParsePatternClass is the inverse of PatternClass.String.
func ParsePatternClass(s string) (PatternClass, error) {
	for i, name := range patternNames {
		if s == name {
			return PatternClass(i), nil
		}
	}
	return PatternUnknown, &ValidationError{Field: "pattern class", Reason: fmt.Sprintf("unknown pattern %q", s)}
}

// Template is the format-neutral description of a fingerprint's
// features and the single hub every wire codec converts through; no
// format ever converts directly into another. Width and Height are the
// source image bounds in pixels, Dpi its capture resolution. Minutiae
// is always a concrete slice, possibly empty, never nil. RidgeCounts is
// optional; nil means absent.
//
// Treat a Template as an immutable value once built. Codecs that need a
// modified copy take one with Clone.
type Template struct {
	Width       int
	Height      int
	Dpi         int
	Pattern     PatternClass
	Minutiae    []Minutia
	RidgeCounts []RidgeCount
}

// Validate checks the template invariants: positive bounds and
// resolution, minutiae inside the bounds, quality and enum ranges, and
// ridge-count indices referring to actual minutiae. Codecs run it on
// both import and export so a malformed template never crosses a
// package boundary.
func (t *Template) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return &ValidationError{Field: "bounds", Reason: fmt.Sprintf("image bounds %dx%d must be positive", t.Width, t.Height)}
	}
	if t.Dpi <= 0 {
		return &ValidationError{Field: "dpi", Reason: fmt.Sprintf("resolution %d must be positive", t.Dpi)}
	}
	if int(t.Pattern) >= len(patternNames) {
		return &ValidationError{Field: "pattern class", Reason: fmt.Sprintf("value %d out of range", t.Pattern)}
	}
	if t.Minutiae == nil {
		return &ValidationError{Field: "minutiae", Reason: "list must be concrete, use an empty slice for no minutiae"}
	}
	for i, m := range t.Minutiae {
		if m.X < 0 || m.X >= t.Width || m.Y < 0 || m.Y >= t.Height {
			return &ValidationError{Field: "minutiae", Reason: fmt.Sprintf("minutia %d at (%d,%d) outside %dx%d bounds", i, m.X, m.Y, t.Width, t.Height)}
		}
		if int(m.Type) >= len(minutiaTypeNames) {
			return &ValidationError{Field: "minutiae", Reason: fmt.Sprintf("minutia %d type %d out of range", i, m.Type)}
		}
		if m.Quality > 100 {
			return &ValidationError{Field: "minutiae", Reason: fmt.Sprintf("minutia %d quality %d exceeds 100", i, m.Quality)}
		}
	}
	for i, rc := range t.RidgeCounts {
		if rc.From < 0 || rc.From >= len(t.Minutiae) || rc.To < 0 || rc.To >= len(t.Minutiae) {
			return &ValidationError{Field: "ridge counts", Reason: fmt.Sprintf("entry %d references minutiae (%d,%d), have %d", i, rc.From, rc.To, len(t.Minutiae))}
		}
		if rc.From == rc.To {
			return &ValidationError{Field: "ridge counts", Reason: fmt.Sprintf("entry %d pairs minutia %d with itself", i, rc.From)}
		}
		if rc.Count < 0 {
			return &ValidationError{Field: "ridge counts", Reason: fmt.Sprintf("entry %d count %d is negative", i, rc.Count)}
		}
	}
	return nil
}

// Clone returns a structurally independent copy.
func (t *Template) Clone() *Template {
	c := *t
	c.Minutiae = slices.Clone(t.Minutiae)
	c.RidgeCounts = slices.Clone(t.RidgeCounts)
	return &c
}

// Equal reports field-for-field equality, including minutia order.
func (t *Template) Equal(o *Template) bool {
	return t.Width == o.Width &&
		t.Height == o.Height &&
		t.Dpi == o.Dpi &&
		t.Pattern == o.Pattern &&
		slices.Equal(t.Minutiae, o.Minutiae) &&
		slices.Equal(t.RidgeCounts, o.RidgeCounts)
}
