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
	"errors"
	"syscall"

	"github.com/nabbar/golib/endpoint/protocol"
	"github.com/nabbar/golib/endpoint/transport"
)

// driveRecv is the receive pump (§4.3): it blocks on a batched socket read,
// demultiplexes each datagram against the proto-endpoint, and either routes
// it to an existing connection's dirty queue or asks the connection driver
// to admit a new one. It never returns an error for a malformed or
// unrecognized datagram (§4.3(c), SPEC_FULL §C.1), and ignores a peer's
// ICMP connection-reset since QUIC does not treat it as authoritative
// (§4.3(b), §7) — only a transport-level socket failure ends the pump.
func (e *model) driveRecv(ctx context.Context) error {
	batch := make([]transport.Datagram, e.cfg.RecvBatch())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := e.sock.RecvBatch(batch)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if isConnReset(err) {
				continue
			}
			return err
		}

		for i := 0; i < n; i++ {
			e.handleDatagram(batch[i])
		}
	}
}

// isConnReset reports whether err is the ICMP port-unreachable condition a
// connected-looking UDP socket surfaces for a peer that has gone away. It
// may be spoofed, so QUIC ignores it rather than tearing down the endpoint.
func isConnReset(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}

// handleDatagram splits a possibly GRO-coalesced read into its constituent
// stride-sized segments, the last possibly shorter, and demultiplexes each
// one independently (§4.3(d), §9 GRO stride edge case).
func (e *model) handleDatagram(d transport.Datagram) {
	payload := d.Buffer[:d.N]

	stride := d.Meta.Stride
	if stride <= 0 || stride > len(payload) {
		stride = len(payload)
	}

	for offset := 0; offset < len(payload); {
		n := stride
		if remaining := len(payload) - offset; n > remaining {
			n = remaining
		}
		e.handleSegment(d.Meta, payload[offset:offset+n])
		offset += n
	}
}

func (e *model) handleSegment(meta protocol.RecvMeta, segment []byte) {
	result, ok := e.proto.Handle(meta, segment)
	if !ok {
		e.log.Debug("recv pump : dropping undecodable datagram", nil, "source", meta.Source.String())
		return
	}

	if !result.Handled {
		return
	}

	if result.IsNewConn {
		e.admitIncoming(result.Handle, result.Conn)
	}

	e.markConnDirty(result.Handle)

	if result.Response != nil {
		e.enqueueSend(*result.Response)
	}
}

// markConnDirty flags a connection for the next driver pass and, if it
// wasn't already queued, pushes its handle onto the dirty channel (§6.4).
func (e *model) markConnDirty(h protocol.ConnHandle) {
	ref, ok := e.conns.get(h)
	if !ok {
		return
	}
	if ref.markDirty() {
		select {
		case e.dirty <- h:
		default:
			// dirty channel full: the driver will still see this
			// connection because connSet iteration in drive_connections
			// is not limited to the channel alone once a full sweep runs.
		}
	}
}
