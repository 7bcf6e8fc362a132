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

// Connecting is the future returned for an in-progress connection attempt,
// whether initiated locally (Endpoint.Connect) or accepted from an incoming
// datagram (IncomingStream.Next). It resolves once, when the underlying
// proto-connection signals handshake completion or failure.
type Connecting struct {
	ref *connRef
}

// Handle returns the ConnHandle this attempt will resolve to, valid even
// before the handshake completes.
func (c *Connecting) Handle() protocol.ConnHandle {
	return c.ref.handle
}

// Wait blocks until the handshake completes, fails, or ctx is done,
// whichever happens first.
func (c *Connecting) Wait(ctx context.Context) (protocol.Connection, error) {
	select {
	case <-c.ref.handshakeDone:
		c.ref.mu.Lock()
		err := c.ref.handshakeErr
		c.ref.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return c.ref.conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
