// Package ofp implements the OpenFlow fixed-header wire form: an 8-byte
// big-endian prefix of version, message type, total length, and
// transaction id, followed by an opaque body.
//
// Ownership boundary:
// - header encode/decode and the version ceiling
// - whole-message encode/decode with length consistency checks
// - message type numbering
//
// Per-type body layouts are out of scope; bodies stay opaque byte slices.
package ofp
