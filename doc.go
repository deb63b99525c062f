// Package afis is the template layer of a fingerprint recognition
// system: the canonical template model, codecs for the compact native,
// ISO/IEC 19794-2:2005 and XML wire formats, the compiled search form,
// and the Fingerprint record tying them together. Extraction and
// matching engines plug in around this package; they consume and
// produce the types defined here but live elsewhere.
package afis
