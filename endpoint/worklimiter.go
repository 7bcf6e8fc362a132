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
	"time"
)

// workLimiter bounds how long a single connection-driver pass spends polling
// connections, by tracking a rolling estimate of per-unit cost and bailing
// out once the pass has consumed its wall-clock budget (§4.5). It is not a
// rate limiter: it has no notion of a refill rate, only "how much of this
// pass's budget is left right now".
type workLimiter struct {
	mu sync.Mutex

	budget time.Duration

	cycleStart   time.Time
	cycleSpent   time.Duration
	unitsDone    int
	costPerUnit  time.Duration
	sampleEvery  int
	sinceSample  int
}

// newWorkLimiter builds a limiter with the given per-pass wall-clock budget.
// A zero or negative budget disables limiting (allowWork always returns
// true).
func newWorkLimiter(budget time.Duration) *workLimiter {
	return &workLimiter{
		budget:      budget,
		costPerUnit: time.Microsecond,
		sampleEvery: 64,
	}
}

// startCycle resets the per-pass accounting; called once at the top of each
// drive_connections iteration.
func (w *workLimiter) startCycle(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cycleStart = now
	w.cycleSpent = 0
	w.unitsDone = 0
	w.sinceSample = 0
}

// allowWork reports whether the pass may poll one more connection without
// exceeding its budget, based on the current cost-per-unit estimate.
func (w *workLimiter) allowWork() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.budget <= 0 {
		return true
	}
	projected := w.cycleSpent + w.costPerUnit
	return projected <= w.budget
}

// recordWork accounts for one unit of work (one connection polled) taking
// elapsed wall-clock time, periodically resampling costPerUnit from the
// observed average so later passes stay accurate as connection behavior
// changes.
func (w *workLimiter) recordWork(elapsed time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cycleSpent += elapsed
	w.unitsDone++
	w.sinceSample++

	if w.sinceSample >= w.sampleEvery && w.unitsDone > 0 {
		w.costPerUnit = w.cycleSpent / time.Duration(w.unitsDone)
		w.sinceSample = 0
	}
}

// finishCycle reports how much of the pass's budget was actually spent, for
// callers that want to log or test pacing.
func (w *workLimiter) finishCycle() (spent time.Duration, units int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cycleSpent, w.unitsDone
}
