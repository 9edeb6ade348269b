package ofwire

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/ofwire/frame"
	"github.com/danmuck/ofwire/ofp"
)

func TestEndpointEchoRoundTrip(t *testing.T) {
	ep, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	raw, err := ep.Protocol().Encode(ofp.Version13, ofp.TypeEchoRequest, 42, []byte("ping"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var buf bytes.Buffer
	if err := ep.WriteMessage(&buf, raw); err != nil {
		t.Fatalf("write message: %v", err)
	}
	got, err := ep.ReadMessage(&buf, nil)
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	if !bytes.Equal(got.Raw, raw) {
		t.Fatalf("round trip altered bytes: got=%x want=%x", got.Raw, raw)
	}

	msg, err := ep.Protocol().Decode(got.Raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(msg.Body) != "ping" || msg.Header.XID != 42 {
		t.Fatalf("decoded message mismatch: %+v body=%q", msg.Header, msg.Body)
	}
}

func TestEndpointVersionCeiling(t *testing.T) {
	ep, err := New(1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	raw, err := ofp.New().Encode(ofp.Version13, ofp.TypeFeaturesRequest, 3, []byte("caps"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	src := bytes.NewReader(raw)
	_, err = ep.ReadMessage(src, nil)
	var ve frame.VersionError
	if !errors.As(err, &ve) {
		t.Fatalf("expected VersionError, got %v", err)
	}
	if ve.Version != ofp.Version13 || ve.Max != ofp.Version10 {
		t.Fatalf("unexpected VersionError fields: %+v", ve)
	}
	if src.Len() != 4 {
		t.Fatalf("body must stay on the stream, %d bytes left", src.Len())
	}
}

func TestEndpointStrictXID(t *testing.T) {
	ep, err := New("strict_xid", true)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	raw, err := ep.Protocol().Encode(ofp.Version13, ofp.TypeBarrierReply, 9, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := uint32(7)
	_, err = ep.ReadMessage(bytes.NewReader(raw), &want)
	var me frame.XIDMismatchError
	if !errors.As(err, &me) {
		t.Fatalf("expected XIDMismatchError, got %v", err)
	}
	if me.Want != 7 || me.Got != 9 {
		t.Fatalf("unexpected XIDMismatchError fields: %+v", me)
	}
}

func TestEndpointDebugInstrumented(t *testing.T) {
	var logbuf bytes.Buffer
	logger := zerolog.New(&logbuf)
	ep, err := New(Options{Debug: 2, Logger: &logger})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	raw, err := ep.Protocol().Encode(ofp.Version13, ofp.TypeEchoReply, 8, []byte("pong"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ep.ReadMessage(bytes.NewReader(raw), nil)
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	if !bytes.Equal(got.Raw, raw) {
		t.Fatalf("instrumentation altered bytes")
	}

	logs := logbuf.String()
	for _, want := range []string{"message out", "header in", "ECHO_REPLY", "raw"} {
		if !strings.Contains(logs, want) {
			t.Fatalf("debug log missing %q:\n%s", want, logs)
		}
	}
}

func TestEndpointDebugWarnsAdvisoryMismatch(t *testing.T) {
	var logbuf bytes.Buffer
	logger := zerolog.New(&logbuf)
	ep, err := New(Options{Debug: 1, Logger: &logger})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	raw, err := ep.Protocol().Encode(ofp.Version13, ofp.TypeEchoReply, 9, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := uint32(7)
	got, err := ep.ReadMessage(bytes.NewReader(raw), &want)
	if err != nil {
		t.Fatalf("advisory mismatch must not fail: %v", err)
	}
	if got.Header.XID != 9 {
		t.Fatalf("caller needs the actual xid, got 0x%08x", got.Header.XID)
	}
	if !strings.Contains(logbuf.String(), "transaction id mismatch") {
		t.Fatalf("expected mismatch warning, log was:\n%s", logbuf.String())
	}
}
