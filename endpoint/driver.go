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
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nabbar/golib/endpoint/protocol"
)

// driveConnections is the connection driver (§4.6): the single task that
// owns the timer heap and the connection set, drains the dirty channel,
// polls due connections, and decides when the endpoint as a whole is done
// (§4.7, §9 Driver lifecycle).
func (e *model) driveConnections(ctx context.Context) error {
	for {
		e.limiter.startCycle(time.Now())

		if err := e.drainDirty(ctx); err != nil {
			return err
		}

		e.fireTimers()
		e.sweepDirty()

		if e.shouldTerminate() {
			if e.cancel != nil {
				e.cancel()
			}
			if e.sock != nil {
				_ = e.sock.Close()
			}
			return nil
		}

		wait := e.nextWake()
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		case h := <-e.dirty:
			e.pollOne(h)
		}
	}
}

// drainDirty pulls every handle currently queued on the dirty channel
// (non-blocking) and polls each one, subject to the work limiter's per-pass
// budget.
func (e *model) drainDirty(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case h := <-e.dirty:
			if !e.limiter.allowWork() {
				// budget exhausted for this pass: re-queue and let the next
				// cycle pick it up.
				e.markConnDirty(h)
				return nil
			}
			e.pollOne(h)
		default:
			return nil
		}
	}
}

// fireTimers pops every elapsed timer entry and polls the owning
// connection, tolerating a handle whose connection has since been removed
// or retimed (§9).
func (e *model) fireTimers() {
	for _, h := range e.timers.due(time.Now()) {
		ref, ok := e.conns.get(h)
		if !ok || ref.isRemoved() {
			continue
		}
		e.pollOne(h)
	}
}

// sweepDirty catches any connection whose dirty notification was dropped
// because the channel was momentarily full (markConnDirty's non-blocking
// send): without this, such a connection would only be revisited once its
// next timer fires.
func (e *model) sweepDirty() {
	e.conns.each(func(ref *connRef) bool {
		if !e.limiter.allowWork() {
			return false
		}
		if ref.isDirty() {
			e.pollOne(ref.handle)
		}
		return true
	})
}

// pollOne drives one connection's Poll, forwards any resulting transmits to
// the send pump, reschedules its next timer, resolves its Connecting future
// on first handshake completion, and removes it once drained.
func (e *model) pollOne(h protocol.ConnHandle) {
	ref, ok := e.conns.get(h)
	if !ok {
		return
	}

	start := time.Now()
	defer func() { e.limiter.recordWork(time.Since(start)) }()

	ref.clearDirty()

	for _, t := range ref.conn.Poll(start) {
		e.enqueueSend(t)
	}

	if deadline := ref.conn.NextTimeout(); !deadline.IsZero() {
		e.timers.schedule(h, deadline)
	}

	if ref.conn.HandshakeComplete() {
		ref.resolveHandshake(nil)
	}

	if ref.conn.IsDrained() {
		e.conns.remove(h)
		e.log.Debug("connection driver : removed drained connection", nil, "handle", h)
	}
}

// admitIncoming registers a freshly recognized inbound connection attempt
// and, if a server config is present, pushes it onto the accept queue
// (§4.2). Without a server config the attempt is refused immediately.
func (e *model) admitIncoming(h protocol.ConnHandle, conn protocol.Connection) {
	if !e.cfg.HasServerConfig || conn == nil {
		e.log.Warning("recv pump : incoming connection rejected, no server config", nil)
		return
	}

	ref := newConnRef(h, conn)
	e.conns.insert(ref)

	c := &Connecting{ref: ref}
	if !e.incoming.push(c) {
		e.log.Debug("recv pump : accept queue full, dropping incoming connection", nil, "handle", h)
		e.conns.remove(h)
	}
}

// shouldTerminate reports whether the driver lifecycle invariant (§3, §9) —
// zero outstanding handle references and an empty connection set — holds,
// meaning the endpoint's supervised goroutines can all stop.
func (e *model) shouldTerminate() bool {
	return e.closing.Load() && e.refCount.Load() == 0 && e.conns.len() == 0
}

// nextWake returns how long the driver should sleep before it must look at
// the timer heap again absent other activity.
func (e *model) nextWake() time.Duration {
	const maxIdle = time.Second
	deadline := e.timers.nextDeadline()
	if deadline.IsZero() {
		return maxIdle
	}
	if d := time.Until(deadline); d > 0 {
		if d > maxIdle {
			return maxIdle
		}
		return d
	}
	return 0
}

// runDriver starts the three supervised goroutines under one errgroup: the
// first to fail cancels the group context, and all three are guaranteed to
// have exited before runDriver returns (§5 Concurrency model).
func (e *model) runDriver(parent context.Context) error {
	g, ctx := errgroup.WithContext(parent)

	g.Go(func() error {
		err := e.driveRecv(ctx)
		if err != nil {
			e.log.Error("recv pump : fatal transport error", err)
		}
		return err
	})

	g.Go(func() error {
		err := e.driveSend(ctx)
		if err != nil {
			e.log.Error("send pump : fatal transport error", err)
		}
		return err
	})

	g.Go(func() error {
		return e.driveConnections(ctx)
	})

	err := g.Wait()
	e.driverLost.Store(true)
	e.incoming.markDriverLost()
	if err != nil {
		e.conns.each(func(ref *connRef) bool {
			ref.resolveHandshake(ErrorEndpointStopping.Error(err))
			return true
		})
	}
	close(e.closed)
	return err
}
