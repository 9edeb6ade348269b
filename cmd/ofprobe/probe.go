package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/ofwire"
	"github.com/danmuck/ofwire/frame"
	"github.com/danmuck/ofwire/ofp"
)

// probe dials the target, exchanges HELLO, and runs the configured number
// of echo round trips. Replies are matched strictly by transaction id and
// verified byte for byte.
func probe(cfg Config, log zerolog.Logger) error {
	ep, err := ofwire.New(map[string]any{
		"version":    cfg.Version,
		"debug":      cfg.Debug,
		"strict_xid": true,
		"logger":     &log,
	})
	if err != nil {
		return err
	}

	conn, err := dial(cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close()
	p := ep.Protocol()

	xid := uint32(1)
	hello, err := p.Encode(uint8(cfg.Version), ofp.TypeHello, xid, nil)
	if err != nil {
		return err
	}
	reply, err := exchange(ep, conn, cfg.Timeout, hello, xid)
	if err != nil {
		return fmt.Errorf("hello: %w", err)
	}
	if ofp.MessageType(reply.Header.Type) != ofp.TypeHello {
		return fmt.Errorf("hello: unexpected reply type %s", ofp.MessageType(reply.Header.Type))
	}
	log.Info().Str("target", cfg.Target).Uint8("version", reply.Header.Version).Msg("hello exchanged")

	for i := 1; i <= cfg.Count; i++ {
		xid++
		payload := make([]byte, 8)
		binary.BigEndian.PutUint64(payload, uint64(time.Now().UnixNano()))
		req, err := p.Encode(uint8(cfg.Version), ofp.TypeEchoRequest, xid, payload)
		if err != nil {
			return err
		}

		start := time.Now()
		reply, err := exchange(ep, conn, cfg.Timeout, req, xid)
		if err != nil {
			return fmt.Errorf("echo %d: %w", i, err)
		}
		msg, err := p.Decode(reply.Raw)
		if err != nil {
			return fmt.Errorf("echo %d: %w", i, err)
		}
		if ofp.MessageType(msg.Header.Type) != ofp.TypeEchoReply {
			return fmt.Errorf("echo %d: unexpected reply type %s", i, ofp.MessageType(msg.Header.Type))
		}
		if !bytes.Equal(msg.Body, payload) {
			return fmt.Errorf("echo %d: body mismatch", i)
		}
		log.Info().Int("seq", i).Dur("rtt", time.Since(start)).Msg("echo reply")

		if cfg.Interval > 0 && i < cfg.Count {
			time.Sleep(cfg.Interval)
		}
	}
	return nil
}

// exchange writes one message and reads the reply matching xid.
func exchange(ep *ofwire.Endpoint, conn net.Conn, timeout time.Duration, out []byte, xid uint32) (frame.Message, error) {
	if timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(timeout))
	}
	if err := ep.WriteMessage(conn, out); err != nil {
		return frame.Message{}, err
	}
	return ep.ReadMessage(conn, &xid)
}

// dial connects to the target, retrying with exponential backoff while
// the daemon comes up.
func dial(cfg Config, log zerolog.Logger) (net.Conn, error) {
	var lastErr error
	for attempt := 1; attempt <= cfg.DialAttempts; attempt++ {
		conn, err := net.DialTimeout("tcp", cfg.Target, cfg.Timeout)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if attempt < cfg.DialAttempts {
			delay := dialBackoff(attempt)
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("dial failed")
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("dial %s: %w", cfg.Target, lastErr)
}

// dialBackoff returns the delay after failed attempt N: doubling from
// 200ms, capped at 2s.
func dialBackoff(attempt int) time.Duration {
	delay := 200 * time.Millisecond * time.Duration(1<<(attempt-1))
	if delay > 2*time.Second {
		delay = 2 * time.Second
	}
	return delay
}
