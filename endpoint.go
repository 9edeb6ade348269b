package ofwire

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/danmuck/ofwire/frame"
	"github.com/danmuck/ofwire/ofp"
)

// Protocol is the full contract an Endpoint consumes: the frame codec
// plus whole-message encode and decode.
type Protocol interface {
	frame.HeaderCodec
	Decode(raw []byte) (*ofp.Message, error)
	Encode(version uint8, typ ofp.MessageType, xid uint32, body []byte) ([]byte, error)
}

// Endpoint binds a protocol variant to framing policy. Construct with
// New; the zero value is unusable.
type Endpoint struct {
	proto Protocol
	opts  Options
	rd    frame.Reader
	log   zerolog.Logger
}

// New builds an Endpoint. Accepted argument shapes, all equivalent:
//
//	New()                                  defaults
//	New(4)                                 version only
//	New(Options{Version: 4, Debug: 1})
//	New(map[string]any{"version": 4})
//	New("version", 4, "debug", 1)
//	New([]any{"version", 4}, []any{"debug", 1})
//
// Unknown names, unpaired values, and out-of-range versions or debug
// levels fail with ErrInvalidOptions.
func New(args ...any) (*Endpoint, error) {
	opts, err := normalize(args)
	if err != nil {
		return nil, err
	}
	base, err := ofp.NewVersion(opts.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	} else if opts.Debug > 0 {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	var proto Protocol = base
	if opts.Debug > 0 {
		proto = debugProtocol{next: base, level: opts.Debug, log: log}
	}

	return &Endpoint{
		proto: proto,
		opts:  opts,
		rd:    frame.Reader{Proto: proto, StrictXID: opts.StrictXID},
		log:   log,
	}, nil
}

// ReadMessage frames exactly one message off r. See
// frame.Reader.ReadMessage for the error contract. want, when non-nil,
// is the awaited transaction id; mismatches are advisory unless the
// endpoint was built with strict_xid.
func (e *Endpoint) ReadMessage(r io.Reader, want *uint32) (frame.Message, error) {
	msg, err := e.rd.ReadMessage(r, want)
	if err == nil && want != nil && *want != msg.Header.XID && e.opts.Debug > 0 {
		e.log.Warn().
			Uint32("want", *want).
			Uint32("got", msg.Header.XID).
			Msg("transaction id mismatch")
	}
	return msg, err
}

// WriteMessage delivers an already-encoded message to w in full,
// resuming across partial writes.
func (e *Endpoint) WriteMessage(w io.Writer, msg []byte) error {
	return frame.WriteMessage(w, msg)
}

// Protocol exposes the protocol variant the endpoint was built with.
func (e *Endpoint) Protocol() Protocol { return e.proto }

// Version reports the endpoint's version ceiling.
func (e *Endpoint) Version() uint8 { return e.proto.MaxVersion() }
