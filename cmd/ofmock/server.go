package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/danmuck/ofwire"
	"github.com/danmuck/ofwire/frame"
	"github.com/danmuck/ofwire/internal/observability"
	"github.com/danmuck/ofwire/ofp"
)

// server answers switch-control traffic the way an idle switch would:
// HELLO gets a HELLO back, ECHO_REQUEST an ECHO_REPLY carrying the same
// body and transaction id, everything else is counted and dropped.
type server struct {
	cfg     Config
	ep      *ofwire.Endpoint
	log     zerolog.Logger
	clients atomic.Int64
}

func newServer(cfg Config, log zerolog.Logger) (*server, error) {
	ep, err := ofwire.New(
		"version", cfg.Version,
		"debug", cfg.Debug,
		"strict_xid", cfg.StrictXID,
		"logger", &log,
	)
	if err != nil {
		return nil, err
	}
	return &server{cfg: cfg, ep: ep, log: log}, nil
}

func (s *server) run(ctx context.Context) error {
	if s.cfg.MetricsAddr != "" {
		observability.RegisterMetrics()
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(s.cfg.MetricsAddr, mux); err != nil {
				s.log.Error().Err(err).Str("addr", s.cfg.MetricsAddr).Msg("metrics listener failed")
			}
		}()
	}

	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddr, err)
	}
	defer ln.Close()
	s.log.Info().Str("addr", ln.Addr().String()).Uint8("version", s.ep.Version()).Msg("listening")

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handle(conn)
	}
}

func (s *server) handle(conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	s.log.Info().Str("remote", remote).Int64("active", s.clients.Add(1)).Msg("client connected")
	defer func() {
		s.log.Info().Str("remote", remote).Int64("active", s.clients.Add(-1)).Msg("client disconnected")
	}()

	src := bufio.NewReader(conn)
	for {
		if s.cfg.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		}
		msg, err := s.ep.ReadMessage(src, nil)
		if err != nil {
			if errors.Is(err, frame.ErrConnectionClosed) {
				return
			}
			observability.RecordReadError(err)
			s.log.Warn().Err(err).Str("remote", remote).Msg("read failed")
			return
		}
		observability.RecordRead(msg.Header.Version, ofp.MessageType(msg.Header.Type).String(), len(msg.Raw))

		if err := s.reply(conn, msg); err != nil {
			s.log.Warn().Err(err).Str("remote", remote).Msg("reply failed")
			return
		}
	}
}

func (s *server) reply(conn net.Conn, msg frame.Message) error {
	p := s.ep.Protocol()

	var out []byte
	var err error
	switch ofp.MessageType(msg.Header.Type) {
	case ofp.TypeHello:
		out, err = p.Encode(msg.Header.Version, ofp.TypeHello, msg.Header.XID, nil)
	case ofp.TypeEchoRequest:
		decoded, derr := p.Decode(msg.Raw)
		if derr != nil {
			return derr
		}
		out, err = p.Encode(msg.Header.Version, ofp.TypeEchoReply, msg.Header.XID, decoded.Body)
	default:
		s.log.Debug().
			Str("type", ofp.MessageType(msg.Header.Type).String()).
			Uint32("xid", msg.Header.XID).
			Msg("no reply for type")
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.ep.WriteMessage(conn, out); err != nil {
		return err
	}
	observability.RecordWrite()
	return nil
}
