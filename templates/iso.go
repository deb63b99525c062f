package templates

import (
	"bytes"
	"encoding/binary"
)

// ISO/IEC 19794-2:2005 single-finger record layout:
//
//	0   "FMR\0"                      format identifier
//	4   " 20\0"                      version
//	8   u32 record length            whole record, header included
//	12  u16 capture equipment        compliance bits + device id
//	14  u16 width                    pixels
//	16  u16 height                   pixels
//	18  u16 horizontal resolution    pixels per cm
//	20  u16 vertical resolution      pixels per cm
//	22  u8  finger count             must be 1 here
//	23  u8  reserved
//	24  u8  finger position
//	25  u8  view number / impression type
//	26  u8  finger quality
//	27  u8  minutia count
//	28  6 bytes per minutia          type:2+x:14, res:2+y:14, angle, quality
//	..  u16 extended data length, then type-length-value blocks
//
// Ridge counts travel in the standard's extended block 0x0001 and the
// pattern class in a vendor block 0xE001, so every canonical field
// survives an export/import cycle. Unknown extended blocks are skipped.
// Multi-finger containers are out of scope; split them into
// single-finger records before import.

const (
	isoHeaderLen   = 24
	isoFingerLen   = 4
	isoMinutiaLen  = 6
	isoMaxCoord    = 0x3fff
	isoMaxMinutiae = 0xff

	isoExtRidgeCounts = 0x0001
	isoExtPattern     = 0xe001
)

var (
	isoMagic   = [4]byte{'F', 'M', 'R', 0}
	isoVersion = [4]byte{' ', '2', '0', 0}
)

func isoTypeBits(t MinutiaType) uint16 {
	switch t {
	case TypeEnding:
		return 1
	case TypeBifurcation:
		return 2
	}
	return 0
}

func isoType(bits uint16) (MinutiaType, bool) {
	switch bits {
	case 0:
		return TypeOther, true
	case 1:
		return TypeEnding, true
	case 2:
		return TypeBifurcation, true
	}
	return TypeOther, false
}

// dpiToPpcm and ppcmToDpi round in both directions; a value that came
// in through Import re-exports to the same pixels-per-cm field.
func dpiToPpcm(dpi int) int { return (dpi*100 + 127) / 254 }

func ppcmToDpi(ppcm int) int { return (ppcm*254 + 50) / 100 }

// IsoFormat codes the ISO/IEC 19794-2:2005 single-finger record subset
// and interoperates with conformant external biometric systems. The
// finger position byte is written as unknown and ignored on import; the
// position tag lives on the owning Fingerprint, not in the template.
type IsoFormat struct{}

func (IsoFormat) Export(t *Template) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if len(t.Minutiae) > isoMaxMinutiae {
		return nil, encodeErrf("iso", "minutiae", "count %d exceeds the 8-bit limit %d", len(t.Minutiae), isoMaxMinutiae)
	}
	if t.Width > isoMaxCoord || t.Height > isoMaxCoord {
		return nil, encodeErrf("iso", "bounds", "image %dx%d exceeds the 14-bit coordinate limit", t.Width, t.Height)
	}
	ppcm := dpiToPpcm(t.Dpi)
	if ppcm == 0 || ppcm > 0xffff {
		return nil, encodeErrf("iso", "resolution", "%d dpi is not representable in pixels per cm", t.Dpi)
	}
	if len(t.RidgeCounts) > 0xff {
		return nil, encodeErrf("iso", "ridge counts", "count %d exceeds the 8-bit limit", len(t.RidgeCounts))
	}

	var ext bytes.Buffer
	if len(t.RidgeCounts) > 0 {
		binary.Write(&ext, binary.BigEndian, uint16(isoExtRidgeCounts))
		binary.Write(&ext, binary.BigEndian, uint16(4+1+3*len(t.RidgeCounts)))
		ext.WriteByte(0) // extraction method: non-specific
		for i, rc := range t.RidgeCounts {
			if rc.Count > 0xff {
				return nil, encodeErrf("iso", "ridge counts", "entry %d count %d exceeds the 8-bit limit", i, rc.Count)
			}
			ext.WriteByte(uint8(rc.From))
			ext.WriteByte(uint8(rc.To))
			ext.WriteByte(uint8(rc.Count))
		}
	}
	if t.Pattern != PatternUnknown {
		binary.Write(&ext, binary.BigEndian, uint16(isoExtPattern))
		binary.Write(&ext, binary.BigEndian, uint16(5))
		ext.WriteByte(uint8(t.Pattern))
	}

	total := isoHeaderLen + isoFingerLen + isoMinutiaLen*len(t.Minutiae) + 2 + ext.Len()
	buf := bytes.NewBuffer(make([]byte, 0, total))
	buf.Write(isoMagic[:])
	buf.Write(isoVersion[:])
	binary.Write(buf, binary.BigEndian, uint32(total))
	binary.Write(buf, binary.BigEndian, uint16(0)) // capture equipment: unreported
	binary.Write(buf, binary.BigEndian, uint16(t.Width))
	binary.Write(buf, binary.BigEndian, uint16(t.Height))
	binary.Write(buf, binary.BigEndian, uint16(ppcm))
	binary.Write(buf, binary.BigEndian, uint16(ppcm))
	buf.WriteByte(1) // finger count
	buf.WriteByte(0) // reserved
	buf.WriteByte(0) // finger position: unknown
	buf.WriteByte(0) // view 0, live-scan plain impression
	buf.WriteByte(0) // finger quality: unreported
	buf.WriteByte(uint8(len(t.Minutiae)))
	for _, m := range t.Minutiae {
		binary.Write(buf, binary.BigEndian, uint16(m.X)|isoTypeBits(m.Type)<<14)
		binary.Write(buf, binary.BigEndian, uint16(m.Y))
		buf.WriteByte(m.Direction)
		buf.WriteByte(m.Quality)
	}
	binary.Write(buf, binary.BigEndian, uint16(ext.Len()))
	buf.Write(ext.Bytes())
	return buf.Bytes(), nil
}

func (IsoFormat) Import(data []byte) (*Template, error) {
	if len(data) < isoHeaderLen+isoFingerLen {
		return nil, decodeErrf("iso", "header", 0, "buffer has %d bytes, a single-finger record needs at least %d", len(data), isoHeaderLen+isoFingerLen)
	}
	if !bytes.Equal(data[0:4], isoMagic[:]) {
		return nil, decodeErrf("iso", "magic", 0, "bad format identifier % x", data[0:4])
	}
	if !bytes.Equal(data[4:8], isoVersion[:]) {
		return nil, decodeErrf("iso", "version", 4, "unsupported version % x", data[4:8])
	}
	if total := binary.BigEndian.Uint32(data[8:12]); int(total) != len(data) {
		return nil, decodeErrf("iso", "record length", 8, "declared %d bytes, buffer has %d", total, len(data))
	}
	width := int(binary.BigEndian.Uint16(data[14:16]))
	height := int(binary.BigEndian.Uint16(data[16:18]))
	ppcmX := int(binary.BigEndian.Uint16(data[18:20]))
	ppcmY := int(binary.BigEndian.Uint16(data[20:22]))
	if ppcmX != ppcmY {
		return nil, decodeErrf("iso", "resolution", 18, "anisotropic resolution %dx%d pixels per cm is not supported", ppcmX, ppcmY)
	}
	if fingers := data[22]; fingers != 1 {
		return nil, decodeErrf("iso", "finger count", 22, "record holds %d fingers, split multi-finger containers before import", fingers)
	}

	count := int(data[27])
	off := isoHeaderLen + isoFingerLen
	if need := off + count*isoMinutiaLen + 2; len(data) < need {
		return nil, decodeErrf("iso", "minutiae", off, "declared %d minutiae need %d bytes, buffer has %d", count, need, len(data))
	}
	minutiae := make([]Minutia, count)
	for i := range minutiae {
		xw := binary.BigEndian.Uint16(data[off : off+2])
		yw := binary.BigEndian.Uint16(data[off+2 : off+4])
		typ, ok := isoType(xw >> 14)
		if !ok {
			return nil, decodeErrf("iso", "minutiae", off, "minutia %d has reserved type bits %b", i, xw>>14)
		}
		if yw>>14 != 0 {
			return nil, decodeErrf("iso", "minutiae", off+2, "minutia %d has nonzero reserved bits", i)
		}
		if q := data[off+5]; q > 100 {
			return nil, decodeErrf("iso", "minutiae", off+5, "minutia %d quality %d exceeds 100", i, q)
		}
		minutiae[i] = Minutia{
			X:         int(xw & isoMaxCoord),
			Y:         int(yw & isoMaxCoord),
			Direction: data[off+4],
			Type:      typ,
			Quality:   data[off+5],
		}
		off += isoMinutiaLen
	}

	extLen := int(binary.BigEndian.Uint16(data[off : off+2]))
	off += 2
	if off+extLen != len(data) {
		return nil, decodeErrf("iso", "extended data", off-2, "declared %d bytes of extended data, buffer has %d", extLen, len(data)-off)
	}
	var ridgeCounts []RidgeCount
	pattern := PatternUnknown
	for off < len(data) {
		if len(data)-off < 4 {
			return nil, decodeErrf("iso", "extended data", off, "truncated block header")
		}
		btype := binary.BigEndian.Uint16(data[off : off+2])
		blen := int(binary.BigEndian.Uint16(data[off+2 : off+4]))
		if blen < 4 || off+blen > len(data) {
			return nil, decodeErrf("iso", "extended data", off+2, "block length %d overruns the record", blen)
		}
		payload := data[off+4 : off+blen]
		switch btype {
		case isoExtRidgeCounts:
			if len(payload) < 1 || (len(payload)-1)%3 != 0 {
				return nil, decodeErrf("iso", "ridge counts", off+4, "payload of %d bytes is not a method byte plus triplets", len(payload))
			}
			triplets := payload[1:]
			ridgeCounts = make([]RidgeCount, 0, len(triplets)/3)
			for i := 0; i < len(triplets); i += 3 {
				ridgeCounts = append(ridgeCounts, RidgeCount{
					From:  int(triplets[i]),
					To:    int(triplets[i+1]),
					Count: int(triplets[i+2]),
				})
			}
		case isoExtPattern:
			if len(payload) != 1 {
				return nil, decodeErrf("iso", "pattern class", off+4, "payload of %d bytes, want 1", len(payload))
			}
			pattern = PatternClass(payload[0])
		}
		off += blen
	}

	t := &Template{
		Width:       width,
		Height:      height,
		Dpi:         ppcmToDpi(ppcmX),
		Pattern:     pattern,
		Minutiae:    minutiae,
		RidgeCounts: ridgeCounts,
	}
	if err := t.Validate(); err != nil {
		return nil, &DecodeError{Format: "iso", Field: "record", Offset: -1, Reason: err.Error()}
	}
	return t, nil
}
