// Package templates holds the canonical fingerprint template model and
// the wire codecs around it: the native compact binary format, the
// ISO/IEC 19794-2:2005 single-finger record format and an XML tree
// format. Each codec converts to and from the canonical Template only,
// so supporting another format costs one codec, not one converter per
// existing format.
package templates
