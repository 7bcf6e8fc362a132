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

// Package transport implements the batched, GRO/GSO/ECN-aware UDP socket the
// endpoint driver's receive and send pumps run against (§6.1).
package transport

import (
	"net"
	"net/netip"

	"github.com/nabbar/golib/endpoint/protocol"
)

// Datagram is one payload slot a RecvBatch call fills in place; callers
// preallocate a slice of these sized to BatchSize and reuse it across calls.
type Datagram struct {
	Buffer []byte
	N      int
	Meta   protocol.RecvMeta
}

// Socket is the batched, best-effort GRO/GSO/ECN-aware UDP transport the
// recv and send pumps are driven against. A production Socket is backed by a
// single bound net.PacketConn; tests may substitute an in-memory double.
type Socket interface {
	// RecvBatch blocks until at least one datagram is available, fills as
	// many entries of buf as are immediately ready (up to len(buf)) and
	// returns the count filled. GRO-coalesced reads are split into
	// individual Datagram entries by the caller using GROSegments.
	RecvBatch(buf []Datagram) (n int, err error)

	// SendBatch sends a batch of outgoing transmits, coalescing same-size,
	// same-destination runs into a single GSO syscall where the platform
	// supports it. It returns the number of transmits (not syscalls) that
	// were sent.
	SendBatch(batch []protocol.Transmit) (n int, err error)

	// LocalAddr returns the socket's bound local address.
	LocalAddr() netip.AddrPort

	// Rebind closes the current underlying socket (if any) and binds a new
	// one at the given local address, preserving queued readers/writers.
	Rebind(local netip.AddrPort) error

	// MaxGSOSegments reports how many segments a single SendBatch call may
	// coalesce into one syscall on this platform (1 if GSO is unavailable).
	MaxGSOSegments() int

	// Close releases the underlying socket.
	Close() error
}

// NewUDPSocket binds a new batched UDP socket at local using the teacher's
// network/protocol family enum to pick "udp", "udp4" or "udp6".
func NewUDPSocket(local netip.AddrPort) (Socket, error) {
	return newUDPSocket(local)
}

func listenUDP(network string, local netip.AddrPort) (*net.UDPConn, error) {
	return net.ListenUDP(network, net.UDPAddrFromAddrPort(local))
}
