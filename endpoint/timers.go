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
	"container/heap"
	"time"

	"github.com/nabbar/golib/endpoint/protocol"
)

// timerEntry is one pending (deadline, connection) pair in the timer heap. A
// connection may appear more than once transiently (a retimer pushes a new
// entry rather than mutating the old one in place); handle_timeout tolerates
// firing for a handle whose deadline has since moved or whose connection is
// already gone.
type timerEntry struct {
	deadline time.Time
	handle   protocol.ConnHandle
	index    int
}

type timerHeap []*timerEntry

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool { return h[i].deadline.Before(h[j].deadline) }

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	e := x.(*timerEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// timerQueue wraps timerHeap with the operations drive_connections needs:
// schedule a new deadline, and pop every entry whose deadline has elapsed.
type timerQueue struct {
	h timerHeap
}

func newTimerQueue() *timerQueue {
	q := &timerQueue{}
	heap.Init(&q.h)
	return q
}

// schedule pushes a new (deadline, handle) pair. It does not remove any
// earlier entry for the same handle: a stale entry popped later is simply
// ignored by the caller if the connection has since been retimed or removed.
func (q *timerQueue) schedule(handle protocol.ConnHandle, deadline time.Time) {
	heap.Push(&q.h, &timerEntry{deadline: deadline, handle: handle})
}

// due pops and returns every handle whose deadline is <= now, earliest
// first.
func (q *timerQueue) due(now time.Time) []protocol.ConnHandle {
	var out []protocol.ConnHandle
	for q.h.Len() > 0 && !q.h[0].deadline.After(now) {
		e := heap.Pop(&q.h).(*timerEntry)
		out = append(out, e.handle)
	}
	return out
}

// nextDeadline returns the earliest scheduled deadline, or the zero time if
// the queue is empty.
func (q *timerQueue) nextDeadline() time.Time {
	if q.h.Len() == 0 {
		return time.Time{}
	}
	return q.h[0].deadline
}

func (q *timerQueue) len() int { return q.h.Len() }
