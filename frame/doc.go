// Package frame reads and writes length-delimited switch-control messages.
//
// Ownership boundary:
// - two-phase message reads: fixed header, then the declared remainder
// - full-delivery writes over streams that accept partial writes
// - the framing error taxonomy
//
// Header layout, version numbering, and body semantics belong to the
// protocol codec plugged into the Reader.
package frame
