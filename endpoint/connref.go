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
	"sync"

	"github.com/nabbar/golib/endpoint/protocol"
)

// connRef is the shared state a connection-set entry holds for one
// connection: its proto-connection, whether it is queued on the dirty
// channel, and the cell the handshake future resolves through.
//
// A connection can appear transiently in both the timer heap and the dirty
// set (§9); connRef's mutex makes reading/updating that bookkeeping safe
// from both the connection driver and any goroutine waiting on Connecting.
type connRef struct {
	mu sync.Mutex

	handle protocol.ConnHandle
	conn   protocol.Connection

	queuedDirty bool
	removed     bool

	handshakeDone chan struct{}
	handshakeErr  error
	resolvedOnce  sync.Once
}

func newConnRef(handle protocol.ConnHandle, conn protocol.Connection) *connRef {
	return &connRef{
		handle:        handle,
		conn:          conn,
		handshakeDone: make(chan struct{}),
	}
}

// markDirty flags the connection as queued for a driver pass, returning
// false if it was already queued (callers use this to avoid double-sending
// on the dirty channel).
func (c *connRef) markDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.queuedDirty {
		return false
	}
	c.queuedDirty = true
	return true
}

// clearDirty drops the queued flag once the driver has polled this
// connection for the current pass.
func (c *connRef) clearDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queuedDirty = false
}

// isDirty reports whether the connection is still flagged, without
// clearing the flag. Used by the driver's periodic full sweep to catch a
// handle that was dropped because the dirty channel was momentarily full.
func (c *connRef) isDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queuedDirty
}

// resolveHandshake completes the connection's Connecting future exactly
// once; subsequent calls are no-ops.
func (c *connRef) resolveHandshake(err error) {
	c.resolvedOnce.Do(func() {
		c.mu.Lock()
		c.handshakeErr = err
		c.mu.Unlock()
		close(c.handshakeDone)
	})
}

func (c *connRef) markRemoved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = true
}

func (c *connRef) isRemoved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removed
}
