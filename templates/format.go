package templates

// Format converts between one wire representation and the canonical
// Template. Implementations carry no state and are safe for unlimited
// concurrent use.
//
// Import is all-or-nothing: malformed framing, truncated input,
// out-of-range fields or count mismatches yield a DecodeError and no
// Template. Export is total over valid templates and fails only when
// the data exceeds the format's representable range, reported as an
// EncodeError rather than by truncating.
type Format interface {
	Import(data []byte) (*Template, error)
	Export(t *Template) ([]byte, error)
}
