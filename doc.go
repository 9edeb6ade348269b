// Package ofwire frames switch-control messages over byte streams.
//
// An Endpoint pairs a protocol codec with framing policy: ReadMessage
// frames exactly one inbound message, WriteMessage delivers an encoded
// one in full, and Protocol exposes the codec for building and
// interpreting messages. Streams are plain io.Reader / io.Writer values;
// the package never dials, closes, or retries connections.
//
// Ownership boundary:
// - endpoint construction and option normalization
// - framing policy: version ceiling, transaction id handling
// - debug instrumentation of the protocol codec
package ofwire
