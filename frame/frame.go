package frame

// Header is the decoded fixed prefix shared by every message version.
type Header struct {
	Version uint8
	Type    uint8
	Length  uint16 // total message length, header included
	XID     uint32
}

// HeaderCodec is the narrow protocol contract the framing core consumes.
type HeaderCodec interface {
	// HeaderLen reports the fixed header size in bytes.
	HeaderLen() int
	// MaxVersion reports the highest version byte the codec accepts.
	MaxVersion() uint8
	// DecodeHeader decodes a fixed header from b. The slice holds exactly
	// HeaderLen bytes and is only borrowed for the call.
	DecodeHeader(b []byte) (Header, error)
}

// Message is one complete wire message: the decoded header plus the raw
// bytes exactly as read, header included.
type Message struct {
	Header Header
	Raw    []byte
}

// Reader frames messages off byte streams through a HeaderCodec.
type Reader struct {
	// Proto decodes fixed headers and sets the version ceiling.
	Proto HeaderCodec
	// StrictXID makes an awaited transaction id binding instead of
	// advisory: mismatches fail with XIDMismatchError.
	StrictXID bool
}
