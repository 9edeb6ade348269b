package ofp

import (
	"encoding/binary"
	"fmt"

	"github.com/danmuck/ofwire/frame"
)

// HeaderLen is the fixed header size shared by every protocol version.
const HeaderLen = 8

// Wire version bytes. The ceiling of this build is MaxVersion.
const (
	Version10 uint8 = 0x01
	Version11 uint8 = 0x02
	Version12 uint8 = 0x03
	Version13 uint8 = 0x04

	MaxVersion = Version13
)

// Protocol is the fixed-header codec. The zero value is unusable;
// construct with New or NewVersion.
type Protocol struct {
	max uint8
}

// New returns a Protocol accepting every version up through MaxVersion.
func New() Protocol {
	return Protocol{max: MaxVersion}
}

// NewVersion returns a Protocol with an explicit version ceiling.
func NewVersion(v uint8) (Protocol, error) {
	if v < Version10 || v > MaxVersion {
		return Protocol{}, fmt.Errorf("%w: 0x%02x", ErrUnknownVersion, v)
	}
	return Protocol{max: v}, nil
}

func (p Protocol) HeaderLen() int    { return HeaderLen }
func (p Protocol) MaxVersion() uint8 { return p.max }

// DecodeHeader decodes the fixed header from the first HeaderLen bytes
// of b.
func (p Protocol) DecodeHeader(b []byte) (frame.Header, error) {
	if len(b) < HeaderLen {
		return frame.Header{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(b))
	}
	return frame.Header{
		Version: b[0],
		Type:    b[1],
		Length:  binary.BigEndian.Uint16(b[2:4]),
		XID:     binary.BigEndian.Uint32(b[4:8]),
	}, nil
}

func putHeader(b []byte, h frame.Header) {
	b[0] = h.Version
	b[1] = h.Type
	binary.BigEndian.PutUint16(b[2:4], h.Length)
	binary.BigEndian.PutUint32(b[4:8], h.XID)
}
