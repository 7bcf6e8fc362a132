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

package endpoint

import (
	"context"
	"net/netip"
	"sync/atomic"

	liblog "github.com/nabbar/golib/logger"

	"github.com/nabbar/golib/endpoint/config"
	"github.com/nabbar/golib/endpoint/protocol"
	"github.com/nabbar/golib/endpoint/transport"
)

const dirtyChannelDepth = 1024
const outboundChannelDepth = 1024
const incomingQueueDepth = 128

// model is the single underlying driver shared by every cloned handle.
type model struct {
	cfg   *config.Config
	proto protocol.Endpoint
	sock  transport.Socket
	log   liblog.Logger

	conns   *connSet
	timers  *timerQueue
	limiter *workLimiter

	dirty    chan protocol.ConnHandle
	outbound chan protocol.Transmit
	incoming *IncomingStream

	refCount   atomic.Int64
	closing    atomic.Bool
	driverLost atomic.Bool
	ipv6       atomic.Bool
	closed     chan struct{}
	cancel     context.CancelFunc
}

func newModel(cfg *config.Config, proto protocol.Endpoint, sock transport.Socket, log liblog.Logger) *model {
	e := &model{
		cfg:      cfg,
		proto:    proto,
		sock:     sock,
		log:      log,
		conns:    newConnSet(),
		timers:   newTimerQueue(),
		limiter:  newWorkLimiter(driverBudget),
		dirty:    make(chan protocol.ConnHandle, dirtyChannelDepth),
		outbound: make(chan protocol.Transmit, outboundChannelDepth),
		incoming: newIncomingStream(incomingQueueDepth),
		closed:   make(chan struct{}),
	}
	e.refCount.Store(1)
	return e
}

// handle wraps model behind the Endpoint interface's reference-counting
// contract: the returned value is the first live handle.
func (e *model) handle() Endpoint {
	return e
}

func (e *model) Connect(remote netip.AddrPort, serverName string) (*Connecting, error) {
	if e.driverLost.Load() {
		return nil, ErrorEndpointStopping.Error(nil)
	}
	if !e.cfg.HasDefaultClientConfig {
		return nil, ErrorNoDefaultClientConfig.Error(nil)
	}

	remote, err := e.remoteForConnect(remote)
	if err != nil {
		return nil, err
	}

	h, conn, transmits, cerr := e.proto.Connect(remote, serverName)
	if cerr != nil {
		return nil, ErrorConnectionRefused.Error(cerr)
	}

	return e.admitOutgoing(h, conn, transmits), nil
}

// ConnectWith behaves like Connect but drives the proto-endpoint with an
// explicit client configuration instead of its default (§4.1).
func (e *model) ConnectWith(ctx context.Context, cfg protocol.ClientConfig, remote netip.AddrPort, serverName string) (protocol.Connection, error) {
	if e.driverLost.Load() {
		return nil, ErrorEndpointStopping.Error(nil)
	}

	remote, err := e.remoteForConnect(remote)
	if err != nil {
		return nil, err
	}

	h, conn, transmits, cerr := e.proto.ConnectWith(cfg, remote, serverName)
	if cerr != nil {
		return nil, ErrorConnectionRefused.Error(cerr)
	}

	c := e.admitOutgoing(h, conn, transmits)
	return c.Wait(ctx)
}

// remoteForConnect rejects an address family the bound socket cannot reach
// and, for an IPv6 socket, maps an IPv4 destination to its IPv4-mapped IPv6
// form; received datagrams' source addresses are never rewritten (§9).
func (e *model) remoteForConnect(remote netip.AddrPort) (netip.AddrPort, error) {
	ipv6 := e.ipv6.Load()

	if !ipv6 && remote.Addr().Is6() && !remote.Addr().Is4In6() {
		return netip.AddrPort{}, ErrorInvalidRemoteAddress.Error(nil)
	}

	if ipv6 && remote.Addr().Is4() {
		return netip.AddrPortFrom(netip.AddrFrom16(remote.Addr().As16()), remote.Port()), nil
	}

	return remote, nil
}

// admitOutgoing registers a newly dialed connection and queues its first
// transmit(s), applying any already-recorded close (§4.8, TP#5).
func (e *model) admitOutgoing(h protocol.ConnHandle, conn protocol.Connection, transmits []protocol.Transmit) *Connecting {
	ref := newConnRef(h, conn)
	e.conns.insert(ref)

	for _, t := range transmits {
		e.enqueueSend(t)
	}

	return &Connecting{ref: ref}
}

func (e *model) Incoming() *IncomingStream {
	return e.incoming
}

func (e *model) Rebind(local netip.AddrPort) error {
	if err := e.sock.Rebind(local); err != nil {
		return ErrorSocketRebind.Error(err)
	}

	e.ipv6.Store(e.sock.LocalAddr().Addr().Is6())

	e.conns.each(func(ref *connRef) bool {
		ref.conn.Ping()
		return true
	})

	return nil
}

func (e *model) LocalAddr() netip.AddrPort {
	return e.sock.LocalAddr()
}

func (e *model) SetServerConfig(enabled bool) {
	e.cfg.HasServerConfig = enabled
}

func (e *model) Clone() Endpoint {
	e.refCount.Add(1)
	return e
}

// Close records a pending close, closes every live connection with the
// given code and reason, and wakes the accept-stream consumer so it
// observes end-of-stream (§4.1). Closing is idempotent: only the first call
// across any handle actually tears down connections (TP#5); every call
// still drops this handle's own reference.
func (e *model) Close(code uint64, reason []byte) {
	ce := &protocol.CloseError{Code: code, Reason: reason}

	e.conns.recordClose(ce, func(ce *protocol.CloseError) {
		e.conns.each(func(ref *connRef) bool {
			ref.conn.Close(ce)
			ref.resolveHandshake(ErrorEndpointStopping.Error(ce))
			return true
		})
		e.incoming.close()
	})

	if e.refCount.Add(-1) != 0 {
		return
	}
	e.closing.Store(true)
}

func (e *model) WaitIdle(ctx context.Context) error {
	select {
	case <-e.closed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
