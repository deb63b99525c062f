package templates

import (
	"encoding/xml"
)

// The XML tree mirrors the canonical fields directly:
//
//	<FingerprintTemplate Version="1">
//	  <Header Width="200" Height="200" Dpi="500" Pattern="whorl"/>
//	  <Minutia X="10" Y="10" Direction="0" Type="ending" Quality="70"/>
//	  <RidgeCount From="0" To="1" Count="7"/>
//	</FingerprintTemplate>
//
// Optional values are expressed by attribute or element absence, never
// by sentinels: an unreported quality and an unknown pattern class are
// simply left out. Re-encoding an imported tree reproduces the same
// fields, not necessarily the same bytes; attribute order and
// whitespace carry no meaning.

const xmlFormatVersion = 1

type xmlHeader struct {
	Width   int    `xml:"Width,attr"`
	Height  int    `xml:"Height,attr"`
	Dpi     int    `xml:"Dpi,attr"`
	Pattern string `xml:"Pattern,attr,omitempty"`
}

type xmlMinutia struct {
	X         int    `xml:"X,attr"`
	Y         int    `xml:"Y,attr"`
	Direction int    `xml:"Direction,attr"`
	Type      string `xml:"Type,attr"`
	Quality   int    `xml:"Quality,attr,omitempty"`
}

type xmlRidgeCount struct {
	From  int `xml:"From,attr"`
	To    int `xml:"To,attr"`
	Count int `xml:"Count,attr"`
}

type xmlTemplate struct {
	XMLName     xml.Name        `xml:"FingerprintTemplate"`
	Version     int             `xml:"Version,attr"`
	Header      xmlHeader       `xml:"Header"`
	Minutiae    []xmlMinutia    `xml:"Minutia"`
	RidgeCounts []xmlRidgeCount `xml:"RidgeCount"`
}

// XmlFormat codes the human-readable tree representation, meant for
// XML-based data exchange, debugging and logging rather than for
// compactness.
type XmlFormat struct{}

func (XmlFormat) Export(t *Template) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	tree := xmlTemplate{
		Version:  xmlFormatVersion,
		Header:   xmlHeader{Width: t.Width, Height: t.Height, Dpi: t.Dpi},
		Minutiae: make([]xmlMinutia, len(t.Minutiae)),
	}
	if t.Pattern != PatternUnknown {
		tree.Header.Pattern = t.Pattern.String()
	}
	for i, m := range t.Minutiae {
		tree.Minutiae[i] = xmlMinutia{
			X:         m.X,
			Y:         m.Y,
			Direction: int(m.Direction),
			Type:      m.Type.String(),
			Quality:   int(m.Quality),
		}
	}
	for _, rc := range t.RidgeCounts {
		tree.RidgeCounts = append(tree.RidgeCounts, xmlRidgeCount{From: rc.From, To: rc.To, Count: rc.Count})
	}
	body, err := xml.MarshalIndent(&tree, "", "  ")
	if err != nil {
		return nil, encodeErrf("xml", "tree", "%v", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func (XmlFormat) Import(data []byte) (*Template, error) {
	var tree xmlTemplate
	if err := xml.Unmarshal(data, &tree); err != nil {
		return nil, decodeErrf("xml", "tree", -1, "malformed document: %v", err)
	}
	if tree.Version == 0 || tree.Version > xmlFormatVersion {
		return nil, decodeErrf("xml", "version", -1, "unsupported version %d, current is %d", tree.Version, xmlFormatVersion)
	}
	t := &Template{
		Width:    tree.Header.Width,
		Height:   tree.Header.Height,
		Dpi:      tree.Header.Dpi,
		Minutiae: make([]Minutia, len(tree.Minutiae)),
	}
	if tree.Header.Pattern != "" {
		pattern, err := ParsePatternClass(tree.Header.Pattern)
		if err != nil {
			return nil, decodeErrf("xml", "pattern class", -1, "%v", err)
		}
		t.Pattern = pattern
	}
	for i, m := range tree.Minutiae {
		if m.Direction < 0 || m.Direction > 0xff {
			return nil, decodeErrf("xml", "minutiae", -1, "minutia %d direction %d outside 0..255", i, m.Direction)
		}
		if m.Quality < 0 || m.Quality > 100 {
			return nil, decodeErrf("xml", "minutiae", -1, "minutia %d quality %d outside 0..100", i, m.Quality)
		}
		typ, err := ParseMinutiaType(m.Type)
		if err != nil {
			return nil, decodeErrf("xml", "minutiae", -1, "minutia %d: %v", i, err)
		}
		t.Minutiae[i] = Minutia{
			X:         m.X,
			Y:         m.Y,
			Direction: uint8(m.Direction),
			Type:      typ,
			Quality:   uint8(m.Quality),
		}
	}
	for _, rc := range tree.RidgeCounts {
		t.RidgeCounts = append(t.RidgeCounts, RidgeCount{From: rc.From, To: rc.To, Count: rc.Count})
	}
	if err := t.Validate(); err != nil {
		return nil, &DecodeError{Format: "xml", Field: "tree", Offset: -1, Reason: err.Error()}
	}
	return t, nil
}
