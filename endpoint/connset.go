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
	"sync/atomic"

	libatm "github.com/nabbar/golib/atomic"
	"github.com/nabbar/golib/endpoint/protocol"
)

// connSet is the endpoint's handle -> connRef table (§4.8), plus the single
// recorded close(code, reason) applied to every connection inserted after
// it was recorded (TP#5 close idempotence).
type connSet struct {
	m      libatm.MapTyped[protocol.ConnHandle, *connRef]
	nextID atomic.Uint64

	closeOnce sync.Once
	closeRec  libatm.Value[*protocol.CloseError]
}

func newConnSet() *connSet {
	return &connSet{
		m:        libatm.NewMapTyped[protocol.ConnHandle, *connRef](),
		closeRec: libatm.NewValue[*protocol.CloseError](),
	}
}

func (s *connSet) allocHandle() protocol.ConnHandle {
	return protocol.ConnHandle(s.nextID.Add(1))
}

// insert stores ref under its handle, applying any already-recorded close
// immediately so a connection admitted after Close still ends up closed
// with the same code and reason (§4.1, §4.8, TP#5).
func (s *connSet) insert(ref *connRef) {
	s.m.Store(ref.handle, ref)
	if ce := s.closeRec.Load(); ce != nil {
		ref.conn.Close(ce)
	}
}

// recordClose runs apply exactly once across the lifetime of the set,
// recording ce so insert can replay it onto later connections. Further
// calls are no-ops, matching close(c, r)'s idempotence (TP#5).
func (s *connSet) recordClose(ce *protocol.CloseError, apply func(*protocol.CloseError)) {
	s.closeOnce.Do(func() {
		s.closeRec.Store(ce)
		apply(ce)
	})
}

func (s *connSet) get(h protocol.ConnHandle) (*connRef, bool) {
	return s.m.Load(h)
}

func (s *connSet) remove(h protocol.ConnHandle) {
	if ref, ok := s.m.Load(h); ok {
		ref.markRemoved()
	}
	s.m.Delete(h)
}

func (s *connSet) len() int {
	n := 0
	s.m.Range(func(_ protocol.ConnHandle, _ *connRef) bool {
		n++
		return true
	})
	return n
}

func (s *connSet) each(f func(*connRef) bool) {
	s.m.Range(func(_ protocol.ConnHandle, ref *connRef) bool {
		return f(ref)
	})
}

