package templates

import "fmt"

// DecodeError reports malformed or out-of-range wire input, or template
// data too degenerate to compile. Offset is the byte position of the
// failure in the input when known, -1 otherwise.
type DecodeError struct {
	Format string
	Field  string
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: decode %s at offset %d: %s", e.Format, e.Field, e.Offset, e.Reason)
	}
	return fmt.Sprintf("%s: decode %s: %s", e.Format, e.Field, e.Reason)
}

func decodeErrf(format, field string, offset int, reason string, args ...interface{}) *DecodeError {
	return &DecodeError{Format: format, Field: field, Offset: offset, Reason: fmt.Sprintf(reason, args...)}
}

// EncodeError reports canonical data that exceeds a target format's
// representable range. Export never truncates to fit.
type EncodeError struct {
	Format string
	Field  string
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: encode %s: %s", e.Format, e.Field, e.Reason)
}

func encodeErrf(format, field, reason string, args ...interface{}) *EncodeError {
	return &EncodeError{Format: format, Field: field, Reason: fmt.Sprintf(reason, args...)}
}

// ValidationError reports a bad value handed to a constructor or
// setter. It is raised at the call that introduced the value, never
// deferred.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
