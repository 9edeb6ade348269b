package main

import (
	"bytes"
	"net"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/ofwire"
	"github.com/danmuck/ofwire/ofp"
)

func TestServerHelloAndEcho(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReadTimeout = 0
	srv, err := newServer(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	client, remote := net.Pipe()
	done := make(chan struct{})
	go func() {
		srv.handle(remote)
		close(done)
	}()
	defer func() {
		client.Close()
		<-done
	}()

	ep, err := ofwire.New()
	if err != nil {
		t.Fatalf("new endpoint: %v", err)
	}
	p := ep.Protocol()

	hello, err := p.Encode(ofp.Version13, ofp.TypeHello, 1, nil)
	if err != nil {
		t.Fatalf("encode hello: %v", err)
	}
	if err := ep.WriteMessage(client, hello); err != nil {
		t.Fatalf("write hello: %v", err)
	}
	want := uint32(1)
	reply, err := ep.ReadMessage(client, &want)
	if err != nil {
		t.Fatalf("read hello reply: %v", err)
	}
	if ofp.MessageType(reply.Header.Type) != ofp.TypeHello || reply.Header.XID != 1 {
		t.Fatalf("unexpected hello reply: %+v", reply.Header)
	}

	payload := []byte("mock-echo")
	req, err := p.Encode(ofp.Version13, ofp.TypeEchoRequest, 2, payload)
	if err != nil {
		t.Fatalf("encode echo: %v", err)
	}
	if err := ep.WriteMessage(client, req); err != nil {
		t.Fatalf("write echo: %v", err)
	}
	want = 2
	reply, err = ep.ReadMessage(client, &want)
	if err != nil {
		t.Fatalf("read echo reply: %v", err)
	}
	msg, err := p.Decode(reply.Raw)
	if err != nil {
		t.Fatalf("decode echo reply: %v", err)
	}
	if ofp.MessageType(msg.Header.Type) != ofp.TypeEchoReply || msg.Header.XID != 2 {
		t.Fatalf("unexpected echo reply: %+v", msg.Header)
	}
	if !bytes.Equal(msg.Body, payload) {
		t.Fatalf("echo body mismatch: %q", msg.Body)
	}
}

func TestServerIgnoresUnhandledTypes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReadTimeout = 0
	srv, err := newServer(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	client, remote := net.Pipe()
	done := make(chan struct{})
	go func() {
		srv.handle(remote)
		close(done)
	}()
	defer func() {
		client.Close()
		<-done
	}()

	ep, err := ofwire.New()
	if err != nil {
		t.Fatalf("new endpoint: %v", err)
	}
	p := ep.Protocol()

	barrier, err := p.Encode(ofp.Version13, ofp.TypeBarrierRequest, 3, nil)
	if err != nil {
		t.Fatalf("encode barrier: %v", err)
	}
	if err := ep.WriteMessage(client, barrier); err != nil {
		t.Fatalf("write barrier: %v", err)
	}

	req, err := p.Encode(ofp.Version13, ofp.TypeEchoRequest, 4, []byte("after-barrier"))
	if err != nil {
		t.Fatalf("encode echo: %v", err)
	}
	if err := ep.WriteMessage(client, req); err != nil {
		t.Fatalf("write echo: %v", err)
	}

	// The barrier gets no reply; the next message on the wire must be the
	// echo reply.
	want := uint32(4)
	reply, err := ep.ReadMessage(client, &want)
	if err != nil {
		t.Fatalf("read reply: %v", err)
	}
	if ofp.MessageType(reply.Header.Type) != ofp.TypeEchoReply || reply.Header.XID != 4 {
		t.Fatalf("unexpected reply after barrier: %+v", reply.Header)
	}
}
