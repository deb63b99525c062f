package afis

import (
	"fmt"

	"github.com/high-horse/afis/templates"
)

// Finger tags which finger and hand a print came from. FingerAny is the
// wildcard: matching engines use it to decide whether to skip a pair on
// position grounds, and it disables that pruning. This layer only
// stores and round-trips the tag, it never interprets it.
type Finger uint8

const (
	FingerAny Finger = iota
	FingerRightThumb
	FingerRightIndex
	FingerRightMiddle
	FingerRightRing
	FingerRightLittle
	FingerLeftThumb
	FingerLeftIndex
	FingerLeftMiddle
	FingerLeftRing
	FingerLeftLittle

	fingerEnd
)

var fingerNames = [...]string{
	"any",
	"right-thumb",
	"right-index",
	"right-middle",
	"right-ring",
	"right-little",
	"left-thumb",
	"left-index",
	"left-middle",
	"left-ring",
	"left-little",
}

func (f Finger) String() string {
	if f < fingerEnd {
		return fingerNames[f]
	}
	return fmt.Sprintf("finger(%d)", uint8(f))
}

// ParseFinger is the inverse of Finger.String.
func ParseFinger(s string) (Finger, error) {
	for i, name := range fingerNames {
		if s == name {
			return Finger(i), nil
		}
	}
	return FingerAny, &templates.ValidationError{Field: "finger", Reason: fmt.Sprintf("unknown finger position %q", s)}
}
