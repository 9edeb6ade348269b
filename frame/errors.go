package frame

import (
	"errors"
	"fmt"
)

var (
	ErrConnectionClosed = errors.New("frame: connection closed")
	ErrTruncated        = errors.New("frame: truncated message")
	ErrInvalidLength    = errors.New("frame: message length smaller than fixed header")
	ErrHeaderDecode     = errors.New("frame: header decode")
	ErrWrite            = errors.New("frame: write")
)

// VersionError reports a header version above the reader's ceiling. The
// body stays unread on the stream; Remaining is the byte count the header
// declared beyond what was consumed. The stream is no longer
// message-aligned unless the caller drains exactly that many bytes.
type VersionError struct {
	Version   uint8
	Max       uint8
	Remaining int
}

func (e VersionError) Error() string {
	return fmt.Sprintf("frame: unsupported version 0x%02x, ceiling 0x%02x (%d body bytes unread)",
		e.Version, e.Max, e.Remaining)
}

// XIDMismatchError reports a transaction id other than the awaited one.
// Raised only under strict matching, after the whole message was consumed,
// so the stream stays aligned on the next message boundary.
type XIDMismatchError struct {
	Want uint32
	Got  uint32
}

func (e XIDMismatchError) Error() string {
	return fmt.Sprintf("frame: transaction id mismatch: want 0x%08x, got 0x%08x", e.Want, e.Got)
}
