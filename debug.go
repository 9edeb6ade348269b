package ofwire

import (
	"encoding/hex"

	"github.com/rs/zerolog"

	"github.com/danmuck/ofwire/frame"
	"github.com/danmuck/ofwire/ofp"
)

// debugProtocol wraps a Protocol with zerolog instrumentation. Level 1
// logs per-message summaries; level 2 and above adds hex dumps.
type debugProtocol struct {
	next  Protocol
	level int
	log   zerolog.Logger
}

func (d debugProtocol) HeaderLen() int    { return d.next.HeaderLen() }
func (d debugProtocol) MaxVersion() uint8 { return d.next.MaxVersion() }

func (d debugProtocol) DecodeHeader(b []byte) (frame.Header, error) {
	h, err := d.next.DecodeHeader(b)
	if err != nil {
		d.log.Error().Err(err).Msg("header decode failed")
		return h, err
	}
	ev := d.log.Debug().
		Uint8("version", h.Version).
		Str("type", ofp.MessageType(h.Type).String()).
		Uint16("length", h.Length).
		Uint32("xid", h.XID)
	if d.level > 1 {
		ev = ev.Str("raw", hex.EncodeToString(b))
	}
	ev.Msg("header in")
	return h, nil
}

func (d debugProtocol) Decode(raw []byte) (*ofp.Message, error) {
	msg, err := d.next.Decode(raw)
	if err != nil {
		d.log.Error().Err(err).Int("bytes", len(raw)).Msg("message decode failed")
		return nil, err
	}
	ev := d.log.Debug().
		Str("type", ofp.MessageType(msg.Header.Type).String()).
		Uint32("xid", msg.Header.XID).
		Int("body_bytes", len(msg.Body))
	if d.level > 1 {
		ev = ev.Str("raw", hex.EncodeToString(raw))
	}
	ev.Msg("message in")
	return msg, nil
}

func (d debugProtocol) Encode(version uint8, typ ofp.MessageType, xid uint32, body []byte) ([]byte, error) {
	raw, err := d.next.Encode(version, typ, xid, body)
	if err != nil {
		d.log.Error().Err(err).Str("type", typ.String()).Msg("message encode failed")
		return nil, err
	}
	ev := d.log.Debug().
		Uint8("version", version).
		Str("type", typ.String()).
		Uint32("xid", xid).
		Int("bytes", len(raw))
	if d.level > 1 {
		ev = ev.Str("raw", hex.EncodeToString(raw))
	}
	ev.Msg("message out")
	return raw, nil
}
