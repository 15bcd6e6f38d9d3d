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

// Package semaphore provides the bounded-concurrency gate used by the
// connection server's acceptor loop.
package semaphore

import (
	"context"

	xsem "golang.org/x/sync/semaphore"
)

// Semaphore is a weighted counting semaphore bound to a cancellable context.
// It embeds context.Context so a caller already holding a Semaphore can use
// it wherever a context is expected (acceptor loops, per-connection workers).
type Semaphore interface {
	context.Context

	// NewWorker blocks until a permit is available or the context is done.
	NewWorker() error
	// NewWorkerTry acquires a permit without blocking; false if none is free.
	NewWorkerTry() bool
	// DeferWorker releases one previously acquired permit.
	DeferWorker()
	// WaitAll blocks until every permit is free, then immediately releases
	// them again. Used by a Stop path to confirm no worker is in flight.
	WaitAll() error
	// Weighted returns the configured number of permits, or -1 if unlimited.
	Weighted() int64
	// DeferMain cancels the semaphore's context, unblocking any waiter.
	DeferMain()
}

type sem struct {
	context.Context
	cancel context.CancelFunc
	weight *xsem.Weighted
	n      int64
}

// New returns a Semaphore derived from ctx with n permits. n <= 0 means
// unlimited: every acquire call succeeds immediately.
func New(ctx context.Context, n int64) Semaphore {
	c, cancel := context.WithCancel(ctx)

	s := &sem{
		Context: c,
		cancel:  cancel,
		n:       n,
	}

	if n > 0 {
		s.weight = xsem.NewWeighted(n)
	}

	return s
}

func (s *sem) NewWorker() error {
	if s.weight == nil {
		return nil
	}
	return s.weight.Acquire(s.Context, 1)
}

func (s *sem) NewWorkerTry() bool {
	if s.weight == nil {
		return true
	}
	return s.weight.TryAcquire(1)
}

func (s *sem) DeferWorker() {
	if s.weight != nil {
		s.weight.Release(1)
	}
}

func (s *sem) WaitAll() error {
	if s.weight == nil {
		return nil
	}

	if e := s.weight.Acquire(s.Context, s.n); e != nil {
		return e
	}

	s.weight.Release(s.n)
	return nil
}

func (s *sem) Weighted() int64 {
	if s.weight == nil {
		return -1
	}
	return s.n
}

func (s *sem) DeferMain() {
	s.cancel()
}
