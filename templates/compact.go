package templates

import (
	"bytes"

	"github.com/fxamacker/cbor/v2"
)

// Compact wire layout, version 1: the 3-byte magic "AFT", one version
// byte, then a CBOR map with the canonical fields under short keys.
// Encoding uses the core deterministic profile, so a blob produced by
// this codec re-exports byte for byte after an import. Unknown map keys
// are skipped on import, which lets later versions add fields without
// breaking older readers; a version byte above the current one is
// rejected outright.

const (
	compactVersion     = 0x01
	compactHeaderLen   = 4
	compactMaxMinutiae = 0xffff
	compactMaxSide     = 0xffff
)

var compactMagic = [3]byte{'A', 'F', 'T'}

var (
	compactEnc cbor.EncMode
	compactDec cbor.DecMode
)

func init() {
	var err error
	if compactEnc, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if compactDec, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

type compactMinutia struct {
	X         uint16 `cbor:"x"`
	Y         uint16 `cbor:"y"`
	Direction uint8  `cbor:"d"`
	Type      uint8  `cbor:"t"`
	Quality   uint8  `cbor:"q,omitempty"`
}

type compactRidgeCount struct {
	From  uint16 `cbor:"a"`
	To    uint16 `cbor:"b"`
	Count uint8  `cbor:"n"`
}

type compactBody struct {
	Width       uint16              `cbor:"w"`
	Height      uint16              `cbor:"h"`
	Dpi         uint16              `cbor:"dpi"`
	Pattern     uint8               `cbor:"pat,omitempty"`
	Minutiae    []compactMinutia    `cbor:"min"`
	RidgeCounts []compactRidgeCount `cbor:"rc,omitempty"`
}

// CompactFormat is the native dense binary codec. Compact is the only
// format that promises a full byte-level round trip for blobs it
// produced itself.
type CompactFormat struct{}

func (CompactFormat) Export(t *Template) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if len(t.Minutiae) > compactMaxMinutiae {
		return nil, encodeErrf("compact", "minutiae", "count %d exceeds the 16-bit limit %d", len(t.Minutiae), compactMaxMinutiae)
	}
	if t.Width > compactMaxSide || t.Height > compactMaxSide {
		return nil, encodeErrf("compact", "bounds", "image %dx%d exceeds the 16-bit limit", t.Width, t.Height)
	}
	if t.Dpi > 0xffff {
		return nil, encodeErrf("compact", "dpi", "resolution %d exceeds the 16-bit limit", t.Dpi)
	}
	if len(t.RidgeCounts) > compactMaxMinutiae {
		return nil, encodeErrf("compact", "ridge counts", "count %d exceeds the 16-bit limit %d", len(t.RidgeCounts), compactMaxMinutiae)
	}
	body := compactBody{
		Width:    uint16(t.Width),
		Height:   uint16(t.Height),
		Dpi:      uint16(t.Dpi),
		Pattern:  uint8(t.Pattern),
		Minutiae: make([]compactMinutia, len(t.Minutiae)),
	}
	for i, m := range t.Minutiae {
		body.Minutiae[i] = compactMinutia{
			X:         uint16(m.X),
			Y:         uint16(m.Y),
			Direction: m.Direction,
			Type:      uint8(m.Type),
			Quality:   m.Quality,
		}
	}
	if len(t.RidgeCounts) > 0 {
		body.RidgeCounts = make([]compactRidgeCount, len(t.RidgeCounts))
		for i, rc := range t.RidgeCounts {
			if rc.Count > 0xff {
				return nil, encodeErrf("compact", "ridge counts", "entry %d count %d exceeds the 8-bit limit", i, rc.Count)
			}
			body.RidgeCounts[i] = compactRidgeCount{From: uint16(rc.From), To: uint16(rc.To), Count: uint8(rc.Count)}
		}
	}
	payload, err := compactEnc.Marshal(&body)
	if err != nil {
		return nil, encodeErrf("compact", "body", "%v", err)
	}
	out := make([]byte, 0, compactHeaderLen+len(payload))
	out = append(out, compactMagic[:]...)
	out = append(out, compactVersion)
	return append(out, payload...), nil
}

func (CompactFormat) Import(data []byte) (*Template, error) {
	if len(data) < compactHeaderLen {
		return nil, decodeErrf("compact", "header", 0, "buffer has %d bytes, a header needs %d", len(data), compactHeaderLen)
	}
	if !bytes.Equal(data[:3], compactMagic[:]) {
		return nil, decodeErrf("compact", "magic", 0, "bad magic % x", data[:3])
	}
	if v := data[3]; v == 0 || v > compactVersion {
		return nil, decodeErrf("compact", "version", 3, "unsupported version %d, current is %d", v, compactVersion)
	}
	var body compactBody
	if err := compactDec.Unmarshal(data[compactHeaderLen:], &body); err != nil {
		return nil, decodeErrf("compact", "body", compactHeaderLen, "%v", err)
	}
	t := &Template{
		Width:    int(body.Width),
		Height:   int(body.Height),
		Dpi:      int(body.Dpi),
		Pattern:  PatternClass(body.Pattern),
		Minutiae: make([]Minutia, len(body.Minutiae)),
	}
	for i, m := range body.Minutiae {
		t.Minutiae[i] = Minutia{
			X:         int(m.X),
			Y:         int(m.Y),
			Direction: m.Direction,
			Type:      MinutiaType(m.Type),
			Quality:   m.Quality,
		}
	}
	if len(body.RidgeCounts) > 0 {
		t.RidgeCounts = make([]RidgeCount, len(body.RidgeCounts))
		for i, rc := range body.RidgeCounts {
			t.RidgeCounts[i] = RidgeCount{From: int(rc.From), To: int(rc.To), Count: int(rc.Count)}
		}
	}
	if err := t.Validate(); err != nil {
		return nil, &DecodeError{Format: "compact", Field: "body", Offset: -1, Reason: err.Error()}
	}
	return t, nil
}
