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
	"sync/atomic"
)

// IncomingStream is the accept queue for connections initiated by remote
// peers (§4.2). The driver pushes a *Connecting onto it as soon as a new
// inbound connection attempt is recognized; the application drains it with
// Next.
type IncomingStream struct {
	ch         chan *Connecting
	driverLost atomic.Bool
	closed     atomic.Bool
}

func newIncomingStream(capacity int) *IncomingStream {
	return &IncomingStream{ch: make(chan *Connecting, capacity)}
}

// Next returns the next accepted connection attempt, blocking until one
// arrives, ctx is done, or the endpoint has stopped accepting.
func (s *IncomingStream) Next(ctx context.Context) (*Connecting, error) {
	if s.driverLost.Load() {
		return nil, ErrorEndpointStopping.Error(nil)
	}

	select {
	case c, ok := <-s.ch:
		if !ok {
			return nil, ErrorEndpointStopping.Error(nil)
		}
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// push enqueues an accepted connection attempt. It drops the attempt
// (closing it is the caller's responsibility) if the queue is full or the
// stream has already been closed, matching §4.2's "accept queue has finite
// depth" note.
func (s *IncomingStream) push(c *Connecting) bool {
	if s.closed.Load() {
		return false
	}
	select {
	case s.ch <- c:
		return true
	default:
		return false
	}
}

func (s *IncomingStream) close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.ch)
	}
}

// markDriverLost flags the stream so Next returns EndpointStopping
// immediately, even to a caller that has not yet observed the channel close
// (§4.2, §7 driver_lost flips, all async streams end).
func (s *IncomingStream) markDriverLost() {
	s.driverLost.Store(true)
	s.close()
}
