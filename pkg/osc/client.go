// SPDX-License-Identifier: MPL-2.0

package osc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/kushview/eltool/pkg/types"
)

type (
	// Client sends OSC messages to one host and port. Every Send resolves
	// the host, writes a single datagram and closes the socket again.
	Client struct {
		host     string
		port     types.Port
		resolver *net.Resolver
		logger   *log.Logger
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)

	// ResolveError is returned when the destination host name cannot be
	// resolved to an address.
	ResolveError struct {
		Host string
		Err  error
	}
)

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("hostname resolution failed: %s: %v", e.Host, e.Err)
}

// Unwrap returns the resolver error.
func (e *ResolveError) Unwrap() error { return e.Err }

// WithResolver overrides the resolver used for host lookups.
func WithResolver(r *net.Resolver) ClientOption {
	return func(c *Client) { c.resolver = r }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a Client for host:port.
func NewClient(host string, port types.Port, opts ...ClientOption) *Client {
	c := &Client{
		host:     host,
		port:     port,
		resolver: net.DefaultResolver,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Target returns the host:port the client sends to.
func (c *Client) Target() string {
	return net.JoinHostPort(c.host, strconv.Itoa(int(c.port)))
}

// Send encodes msg and transmits it as one UDP datagram.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	if err := c.port.ValidateDestination(); err != nil {
		return err
	}

	data, err := msg.MarshalBinary()
	if err != nil {
		return err
	}

	addr, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	conn, err := net.DialUDP("udp", nil, net.UDPAddrFromAddrPort(addr))
	if err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	c.logger.Debug("sending OSC message", "target", addr.String(), "message", msg.String(), "bytes", len(data))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

// resolve looks up the host, preferring IPv4 addresses.
func (c *Client) resolve(ctx context.Context) (netip.AddrPort, error) {
	if c.host == "" {
		return netip.AddrPort{}, &ResolveError{Host: c.host, Err: errors.New("empty host")}
	}

	ips, err := c.resolver.LookupNetIP(ctx, "ip", c.host)
	if err != nil {
		return netip.AddrPort{}, &ResolveError{Host: c.host, Err: err}
	}
	if len(ips) == 0 {
		return netip.AddrPort{}, &ResolveError{Host: c.host, Err: errors.New("no addresses")}
	}

	chosen := ips[0]
	for _, ip := range ips {
		if ip.Unmap().Is4() {
			chosen = ip
			break
		}
	}
	return netip.AddrPortFrom(chosen.Unmap(), uint16(c.port)), nil
}
