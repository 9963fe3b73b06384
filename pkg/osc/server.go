// SPDX-License-Identifier: MPL-2.0

package osc

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/charmbracelet/log"
)

type (
	// Handler receives decoded messages.
	Handler interface {
		HandleMessage(msg *Message, from net.Addr)
	}

	// HandlerFunc adapts a function to the Handler interface.
	HandlerFunc func(msg *Message, from net.Addr)

	// Server receives OSC datagrams and hands every decoded message to a
	// Handler. Packets that fail to decode are logged and dropped.
	Server struct {
		// Addr is the UDP address to listen on, for example ":9000".
		Addr string
		// Pattern optionally restricts delivery to matching addresses.
		Pattern string
		// Logger receives decode warnings. Nil discards them.
		Logger *log.Logger
	}
)

// HandleMessage calls f(msg, from).
func (f HandlerFunc) HandleMessage(msg *Message, from net.Addr) { f(msg, from) }

// ListenAndServe binds s.Addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, h Handler) error {
	var lc net.ListenConfig
	pc, err := lc.ListenPacket(ctx, "udp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, pc, h)
}

// Serve reads datagrams from pc until ctx is cancelled or the connection
// fails. It closes pc before returning. Cancellation is not an error.
func (s *Server) Serve(ctx context.Context, pc net.PacketConn, h Handler) error {
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = pc.Close()
	}()

	buf := make([]byte, MaxPacketSize)
	for {
		n, from, err := pc.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		msgs, err := ParsePacket(buf[:n])
		if err != nil {
			logger.Warn("dropping packet", "from", from, "err", err)
			continue
		}

		for _, m := range msgs {
			if s.Pattern != "" && !MatchAddress(s.Pattern, m.Address) {
				continue
			}
			h.HandleMessage(m, from)
		}
	}
}
