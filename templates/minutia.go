package templates

import "fmt"

// MinutiaType classifies a single fingerprint feature.
type MinutiaType uint8

const (
	TypeOther MinutiaType = iota
	TypeEnding
	TypeBifurcation
)

var minutiaTypeNames = [...]string{"other", "ending", "bifurcation"}

func (t MinutiaType) String() string {
	if int(t) < len(minutiaTypeNames) {
		return minutiaTypeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseMinutiaType is the inverse of MinutiaType.String.
func ParseMinutiaType(s string) (MinutiaType, error) {
	for i, name := range minutiaTypeNames {
		if s == name {
			return MinutiaType(i), nil
		}
	}
	return TypeOther, &ValidationError{Field: "minutia type", Reason: fmt.Sprintf("unknown type %q", s)}
}

// Minutia is one fingerprint feature. Direction is measured in 1/256 of
// a full turn, counterclockwise, zero pointing along the positive X
// axis; this is the ISO/IEC 19794-2:2005 angle quantization, adopted
// here so the ISO codec maps angles one to one. Quality is 0..100 with
// 0 meaning unreported.
type Minutia struct {
	X         int
	Y         int
	Direction uint8
	Type      MinutiaType
	Quality   uint8
}

// RidgeCount records the number of ridges crossed on the straight line
// between two minutiae, identified by their indices in the template's
// minutiae list.
type RidgeCount struct {
	From  int
	To    int
	Count int
}
