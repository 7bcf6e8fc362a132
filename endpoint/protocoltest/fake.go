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

// Package protocoltest provides a minimal, non-cryptographic stand-in for a
// real QUIC implementation that satisfies endpoint/protocol's Endpoint and
// Connection contracts: an instant two-datagram handshake, a single-frame
// echo, Ping, and a drain period after Close. It exists only to drive the
// endpoint driver's tests; it implements no wire format of its own beyond a
// fixed-size header this package invents and reads back.
package protocoltest

import (
	"bytes"
	"encoding/binary"
	"net/netip"
	"sync"
	"time"

	"github.com/nabbar/golib/endpoint/protocol"
)

const (
	msgHandshake byte = iota
	msgHandshakeAck
	msgData
	msgPing
	msgClose
)

const headerLen = 1 + 8 // message kind + connection id

func encode(kind byte, id uint64, payload []byte) []byte {
	buf := make([]byte, headerLen+len(payload))
	buf[0] = kind
	binary.BigEndian.PutUint64(buf[1:9], id)
	copy(buf[headerLen:], payload)
	return buf
}

func decode(data []byte) (kind byte, id uint64, payload []byte, ok bool) {
	if len(data) < headerLen {
		return 0, 0, nil, false
	}
	return data[0], binary.BigEndian.Uint64(data[1:9]), data[headerLen:], true
}

// Endpoint is the fake proto-endpoint. Zero value is usable.
type Endpoint struct {
	mu       sync.Mutex
	nextID   uint64
	conns    map[uint64]*Connection
	acceptOK bool
}

// NewEndpoint builds a fake proto-endpoint. acceptIncoming controls whether
// Handle admits new inbound connections (false models "no server config").
func NewEndpoint(acceptIncoming bool) *Endpoint {
	return &Endpoint{conns: make(map[uint64]*Connection), acceptOK: acceptIncoming}
}

func (e *Endpoint) Handle(meta protocol.RecvMeta, data []byte) (protocol.DatagramResult, bool) {
	kind, id, payload, ok := decode(data)
	if !ok {
		return protocol.DatagramResult{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case msgHandshake:
		if !e.acceptOK {
			return protocol.DatagramResult{}, true
		}
		c := newConnection(id, meta.Source)
		c.handshakeReady = true
		e.conns[id] = c
		resp := encode(msgHandshakeAck, id, nil)
		return protocol.DatagramResult{
			Handled:   true,
			Handle:    protocol.ConnHandle(id),
			IsNewConn: true,
			Conn:      c,
			Response:  &protocol.Transmit{Destination: meta.Source, Contents: resp},
		}, true

	default:
		c, known := e.conns[id]
		if !known {
			return protocol.DatagramResult{}, false
		}
		c.deliver(kind, payload)
		return protocol.DatagramResult{Handled: true, Handle: protocol.ConnHandle(id)}, true
	}
}

func (e *Endpoint) Connect(remote netip.AddrPort, serverName string) (protocol.ConnHandle, protocol.Connection, []protocol.Transmit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	c := newConnection(id, remote)
	c.isClient = true
	e.conns[id] = c

	return protocol.ConnHandle(id), c, []protocol.Transmit{{Destination: remote, Contents: encode(msgHandshake, id, nil)}}, nil
}

// ConnectWith ignores cfg: the fake proto-endpoint has no config-dependent
// behavior to vary.
func (e *Endpoint) ConnectWith(cfg protocol.ClientConfig, remote netip.AddrPort, serverName string) (protocol.ConnHandle, protocol.Connection, []protocol.Transmit, error) {
	return e.Connect(remote, serverName)
}

func (e *Endpoint) Reject(meta protocol.RecvMeta, data []byte) *protocol.Transmit {
	return nil
}

// Connection is the fake proto-connection: instant handshake (client side
// completes as soon as it sends; server side completes on receipt), a
// single-frame echo of any msgData payload, Ping support, and a fixed
// drain period after Close.
type Connection struct {
	mu sync.Mutex

	id   uint64
	peer netip.AddrPort

	isClient       bool
	handshakeReady bool
	acked          bool

	pending []protocol.Transmit
	pingDue bool

	closed     bool
	closedAt   time.Time
	echoed     [][]byte
}

func newConnection(id uint64, peer netip.AddrPort) *Connection {
	return &Connection{id: id, peer: peer}
}

// Peer returns the remote address this connection was dialed to or accepted
// from, for test assertions.
func (c *Connection) Peer() netip.AddrPort {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peer
}

// Received returns every echoed data payload observed so far, for test
// assertions.
func (c *Connection) Received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.echoed))
	copy(out, c.echoed)
	return out
}

func (c *Connection) deliver(kind byte, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch kind {
	case msgHandshakeAck:
		c.acked = true
	case msgData:
		c.echoed = append(c.echoed, bytes.Clone(payload))
		c.pending = append(c.pending, protocol.Transmit{Destination: c.peer, Contents: encode(msgData, c.id, payload)})
	case msgPing:
		c.pending = append(c.pending, protocol.Transmit{Destination: c.peer, Contents: encode(msgPing, c.id, nil)})
	case msgClose:
		c.closed = true
		c.closedAt = time.Now()
	}
}

func (c *Connection) Handle(meta protocol.RecvMeta, data []byte) {
	kind, _, payload, ok := decode(data)
	if !ok {
		return
	}
	c.deliver(kind, payload)
}

func (c *Connection) Poll(now time.Time) []protocol.Transmit {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isClient && !c.handshakeReady {
		c.handshakeReady = true
	}

	var out []protocol.Transmit
	if c.pingDue {
		out = append(out, protocol.Transmit{Destination: c.peer, Contents: encode(msgPing, c.id, nil)})
		c.pingDue = false
	}
	if len(c.pending) > 0 {
		out = append(out, c.pending...)
		c.pending = nil
	}
	return out
}

func (c *Connection) NextTimeout() time.Time {
	return time.Time{}
}

func (c *Connection) HandshakeComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isClient {
		return c.acked
	}
	return c.handshakeReady
}

func (c *Connection) IsDrained() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed && time.Since(c.closedAt) > 0
}

func (c *Connection) Close(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.closedAt = time.Now()
}

func (c *Connection) Ping() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pingDue = true
}

var _ protocol.Connection = (*Connection)(nil)
var _ protocol.Endpoint = (*Endpoint)(nil)
