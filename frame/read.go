package frame

import (
	"errors"
	"fmt"
	"io"
)

// ReadMessage frames exactly one message off r.
//
// The read happens in two phases: the codec's fixed header length first,
// then whatever remainder the decoded length field declares. Short reads
// are accumulated in both phases. A stream that ends before the first
// header byte fails with ErrConnectionClosed; one that ends anywhere
// after that fails with ErrTruncated.
//
// want, when non-nil, is the transaction id the caller is awaiting. By
// default the comparison is advisory: the message is returned and the
// caller inspects Message.Header.XID. With StrictXID set a mismatch fails
// with XIDMismatchError instead.
//
// A nil r is programmer error and panics.
func (fr Reader) ReadMessage(r io.Reader, want *uint32) (Message, error) {
	if r == nil {
		panic("frame: nil reader")
	}

	hlen := fr.Proto.HeaderLen()
	buf := make([]byte, hlen)
	if n, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			return Message{}, ErrConnectionClosed
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Message{}, fmt.Errorf("%w: %d of %d header bytes", ErrTruncated, n, hlen)
		}
		return Message{}, fmt.Errorf("frame: header read: %w", err)
	}

	h, err := fr.Proto.DecodeHeader(buf)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrHeaderDecode, err)
	}

	rem := int(h.Length) - hlen
	if h.Version > fr.Proto.MaxVersion() {
		if rem < 0 {
			rem = 0
		}
		return Message{}, VersionError{Version: h.Version, Max: fr.Proto.MaxVersion(), Remaining: rem}
	}
	if rem < 0 {
		return Message{}, fmt.Errorf("%w: declared %d, fixed header is %d", ErrInvalidLength, h.Length, hlen)
	}

	raw := buf
	if rem > 0 {
		raw = make([]byte, hlen+rem)
		copy(raw, buf)
		if n, err := io.ReadFull(r, raw[hlen:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Message{}, fmt.Errorf("%w: %d of %d body bytes", ErrTruncated, n, rem)
			}
			return Message{}, fmt.Errorf("frame: body read: %w", err)
		}
	}

	if fr.StrictXID && want != nil && *want != h.XID {
		return Message{}, XIDMismatchError{Want: *want, Got: h.XID}
	}
	return Message{Header: h, Raw: raw}, nil
}
