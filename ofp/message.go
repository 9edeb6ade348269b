package ofp

import (
	"fmt"
	"math"

	"github.com/danmuck/ofwire/frame"
)

// Message is one decoded protocol message. Body aliases the tail of the
// raw input; copy it before reusing the buffer.
type Message struct {
	Header frame.Header
	Body   []byte
}

// Decode splits raw into header and body. The declared length must match
// the bytes actually present.
func (p Protocol) Decode(raw []byte) (*Message, error) {
	h, err := p.DecodeHeader(raw)
	if err != nil {
		return nil, err
	}
	if int(h.Length) != len(raw) {
		return nil, fmt.Errorf("%w: declared %d, have %d", ErrLengthMismatch, h.Length, len(raw))
	}
	return &Message{Header: h, Body: raw[HeaderLen:]}, nil
}

// Encode builds the wire bytes for one message. The length field is
// computed from the body; version must not exceed the codec's ceiling.
func (p Protocol) Encode(version uint8, typ MessageType, xid uint32, body []byte) ([]byte, error) {
	if version < Version10 || version > p.max {
		return nil, fmt.Errorf("%w: 0x%02x (ceiling 0x%02x)", ErrUnknownVersion, version, p.max)
	}
	total := HeaderLen + len(body)
	if total > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, total)
	}
	b := make([]byte, total)
	putHeader(b, frame.Header{
		Version: version,
		Type:    uint8(typ),
		Length:  uint16(total),
		XID:     xid,
	})
	copy(b[HeaderLen:], body)
	return b, nil
}
