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

// Package protocol defines the external-collaborator contracts the endpoint
// driver is built against: the proto-endpoint and proto-connection state
// machines, and the wire-level value types (Transmit, RecvMeta, ECN) that
// cross the boundary between the driver and those state machines.
//
// None of these types implement QUIC: they are the seams the driver drives,
// satisfied in production by a real protocol implementation and in tests by
// the fakes in the protocoltest package.
package protocol

import (
	"fmt"
	"net/netip"
	"time"
)

// ConnHandle identifies a connection within a single Endpoint for the
// lifetime of that connection. Handles are never reused while the
// connection they name is present in the connection set.
type ConnHandle uint64

// ECN is the explicit congestion notification codepoint observed on, or to
// be set on, a datagram.
type ECN uint8

const (
	ECNNonCapable ECN = iota
	ECNECT1
	ECNECT0
	ECNCE
)

// Transmit is a single outgoing datagram (or GSO-coalesced batch of same-size
// segments) produced by a proto-connection or proto-endpoint for the send
// pump to hand to the transport.
type Transmit struct {
	Destination netip.AddrPort
	SrcIP       netip.Addr
	Contents    []byte
	SegmentSize int
	ECN         ECN
}

// RecvMeta is the per-datagram metadata the receive pump extracts from a
// batch and hands to the demultiplexer and proto-endpoint alongside the
// payload.
type RecvMeta struct {
	Source netip.AddrPort
	DstIP  netip.Addr
	ECN    ECN
	Now    time.Time

	// Stride is the GRO segment size the kernel coalesced this read at, or
	// the full datagram length when GRO did not apply. The receive pump
	// splits the buffer into Stride-sized segments, the last possibly
	// shorter (§4.3(d), §9 GRO stride edge case).
	Stride int
}

// ClientConfig is an opaque, proto-endpoint-specific client configuration
// passed to ConnectWith in place of the endpoint's default client config
// (§4.1, §6.5).
type ClientConfig interface{}

// CloseError carries the code and reason an Endpoint.Close call supplies,
// delivered to every live connection's Close and to any connection the
// connection set admits afterward (§4.1, §4.8).
type CloseError struct {
	Code   uint64
	Reason []byte
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("endpoint closed: code %d, reason %q", e.Code, e.Reason)
}

// DatagramResult is the outcome of handing a received datagram to the
// proto-endpoint: either it was consumed on behalf of an existing or new
// connection (Handled true, Handle set when a connection now owns it), or it
// was not a packet this endpoint understands and should be silently dropped.
type DatagramResult struct {
	Handled   bool
	Handle    ConnHandle
	IsNewConn bool
	// Conn is set when IsNewConn is true: the proto-endpoint has already
	// constructed the proto-connection state machine for this handle, and
	// the driver need only register it.
	Conn     Connection
	Response *Transmit
}

// DrainedEvent is emitted by a proto-connection to tell the driver it has
// finished its drain period and the connection can be removed from the
// connection set.
type DrainedEvent struct {
	Handle ConnHandle
}

// Endpoint is the proto-endpoint contract (§6.2): demultiplexing of inbound
// datagrams against known connections, acceptance/rejection of new inbound
// connection attempts, and construction of outbound connection attempts.
type Endpoint interface {
	// Handle processes one received datagram. It returns ok=false when the
	// datagram is not decodable or does not belong to this endpoint; such
	// datagrams are dropped without error (see DESIGN.md supplemented
	// feature: bad datagrams never surface as an error value).
	Handle(meta RecvMeta, data []byte) (result DatagramResult, ok bool)

	// Connect builds the first datagram(s) of an outgoing connection attempt
	// toward remote, returning the handle and proto-connection the driver
	// must register before the attempt completes.
	Connect(remote netip.AddrPort, serverName string) (ConnHandle, Connection, []Transmit, error)

	// ConnectWith behaves like Connect but uses an explicit client
	// configuration instead of whatever default the proto-endpoint was
	// constructed with.
	ConnectWith(cfg ClientConfig, remote netip.AddrPort, serverName string) (ConnHandle, Connection, []Transmit, error)

	// Reject is called when the driver has no capacity or no server config
	// to accept an incoming connection the proto-endpoint identified; it
	// lets the proto-endpoint build a stateless rejection datagram.
	Reject(meta RecvMeta, data []byte) *Transmit
}

// Connection is the proto-connection contract (§6.3): a single connection's
// state machine, driven by the connection driver goroutine.
type Connection interface {
	// Handle feeds one datagram already known to belong to this connection.
	Handle(meta RecvMeta, data []byte)

	// Poll advances internal state (timers firing, handshake progress,
	// stream readiness) and returns any datagrams that must now be sent.
	Poll(now time.Time) []Transmit

	// NextTimeout returns the next instant Poll must be called even absent
	// new I/O, or the zero time if none is pending.
	NextTimeout() time.Time

	// HandshakeComplete reports whether the connection has finished its
	// handshake and is ready to be handed to the application.
	HandshakeComplete() bool

	// IsDrained reports whether the connection has finished its drain
	// period and can be removed from the connection set.
	IsDrained() bool

	// Close begins the connection's close/drain sequence.
	Close(err error)

	// Ping enqueues a keep-alive probe on the next Poll.
	Ping()
}
