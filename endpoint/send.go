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

	"github.com/nabbar/golib/endpoint/protocol"
)

// driveSend is the send pump (§4.4): it drains transmits queued by the recv
// pump and the connection driver, coalesces what the transport can batch,
// and writes them out. A partial send (the socket accepted fewer transmits
// than offered, e.g. S6 backpressure) keeps the unsent remainder at the
// front of the next batch rather than dropping or reordering it (TP#2). It
// exits only on a fatal transport error or context cancellation.
func (e *model) driveSend(ctx context.Context) error {
	capacity := e.cfg.SendBatch()
	batch := make([]protocol.Transmit, 0, capacity)
	var leftover []protocol.Transmit

	for {
		batch = batch[:0]

		if len(leftover) > 0 {
			batch = append(batch, leftover...)
			leftover = nil
		} else {
			select {
			case t := <-e.outbound:
				batch = append(batch, t)
			case <-ctx.Done():
				return nil
			}
		}

		full := false
		for !full && len(batch) < capacity {
			select {
			case t := <-e.outbound:
				batch = append(batch, t)
			default:
				full = true
			}
		}

		n, err := e.sock.SendBatch(batch)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		if n < len(batch) {
			leftover = append([]protocol.Transmit(nil), batch[n:]...)
		}
	}
}

// enqueueSend hands one transmit to the send pump, blocking only if the
// outbound channel is momentarily full.
func (e *model) enqueueSend(t protocol.Transmit) {
	select {
	case e.outbound <- t:
	case <-e.closed:
	}
}
