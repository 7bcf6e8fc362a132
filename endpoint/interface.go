/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package endpoint drives one UDP socket across many concurrent QUIC-style
// connections: a receive pump, a send pump and a connection driver,
// coordinated by a timer heap, a dirty-connection channel and a
// work-limited polling cycle. See SPEC_FULL.md for the full design.
package endpoint

import (
	"context"
	"net/netip"
	"time"

	liblog "github.com/nabbar/golib/logger"

	"github.com/nabbar/golib/endpoint/config"
	"github.com/nabbar/golib/endpoint/protocol"
	"github.com/nabbar/golib/endpoint/transport"
)

// Endpoint is the public, ref-counted handle to a running UDP multiplexer
// (§4.1). Multiple handles may be cloned from one underlying driver; the
// driver stops once every handle has been dropped and every connection has
// drained.
type Endpoint interface {
	// Connect starts an outgoing connection using the endpoint's default
	// client configuration.
	Connect(remote netip.AddrPort, serverName string) (*Connecting, error)

	// ConnectWith starts an outgoing connection using an explicit client
	// configuration instead of the endpoint's default, blocking until the
	// handshake completes or ctx is done.
	ConnectWith(ctx context.Context, cfg protocol.ClientConfig, remote netip.AddrPort, serverName string) (protocol.Connection, error)

	// Incoming returns the stream of connection attempts received from
	// remote peers.
	Incoming() *IncomingStream

	// Rebind closes the current socket and binds a new one at local,
	// without disturbing any live connection's application-level state
	// (§4.1).
	Rebind(local netip.AddrPort) error

	// LocalAddr returns the endpoint's current bound local address.
	LocalAddr() netip.AddrPort

	// SetServerConfig enables or disables accepting incoming connections.
	SetServerConfig(enabled bool)

	// Clone increments the handle's reference count and returns a new
	// handle sharing the same underlying driver.
	Clone() Endpoint

	// Close records the given close code and reason, closes every live
	// connection with it, and drops this handle's reference. The driver
	// stops once the last handle is dropped and all connections have
	// drained.
	Close(code uint64, reason []byte)

	// WaitIdle blocks until the driver has stopped (every handle dropped,
	// every connection drained) or ctx is done.
	WaitIdle(ctx context.Context) error
}

// New binds a UDP socket per cfg, starts the three supervised pumps, and
// returns the first Endpoint handle (§4.1, §6.5).
func New(ctx context.Context, cfg *config.Config, proto protocol.Endpoint, log liblog.Logger) (Endpoint, error) {
	if cfg == nil || proto == nil {
		return nil, ErrorParamsEmpty.Error(nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, ErrorValidatorError.Error(err)
	}

	local, err := netip.ParseAddrPort(cfg.Listen.Address)
	if err != nil {
		return nil, ErrorSocketOpen.Error(err)
	}

	sock, err := transport.NewUDPSocket(local)
	if err != nil {
		return nil, ErrorSocketOpen.Error(err)
	}

	if log == nil {
		log = liblog.New(ctx)
	}

	e := newModel(cfg, proto, sock, log)
	e.ipv6.Store(sock.LocalAddr().Addr().Is6())

	driverCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	go func() {
		_ = e.runDriver(driverCtx)
	}()

	return e.handle(), nil
}

// driverBudget is the work limiter's default per-pass wall-clock budget
// (§4.5), tuned so a single connection driver pass never blocks the dirty
// channel for longer than a client would notice as added latency.
const driverBudget = 2 * time.Millisecond
