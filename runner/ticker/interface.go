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

// Package ticker provides a restartable periodic runner, used by the
// cache-host engine to drive the memory-pressure trimmer on a fixed
// interval without hand-rolling a goroutine/time.Ticker pair per caller.
package ticker

import (
	"context"
	"time"
)

// FuncTick is invoked on every tick. tck is the underlying *time.Ticker so
// a slow caller may drain it or adjust behavior; an error is recorded but
// never stops the ticker.
type FuncTick func(ctx context.Context, tck *time.Ticker) error

// Ticker repeatedly invokes a function on a fixed interval between Start
// and Stop, exposing the same running/uptime/error introspection as
// StartStop.
type Ticker interface {
	// Start launches the periodic loop. If already running, the prior
	// loop is stopped first.
	Start(ctx context.Context) error
	// Stop halts the periodic loop and waits for the current tick, if
	// any, to finish running. Idempotent.
	Stop(ctx context.Context) error
	// Restart stops then starts the loop. If not running, it only starts.
	Restart(ctx context.Context) error
	// IsRunning reports whether Start has been called without a matching Stop.
	IsRunning() bool
	// Uptime reports the duration since the current run started, or zero.
	Uptime() time.Duration
	// ErrorsLast returns the most recently recorded tick error, or nil.
	ErrorsLast() error
	// ErrorsList returns every tick error recorded across this ticker's lifetime.
	ErrorsList() []error
}

// New returns a Ticker that calls fn every interval. fn may be nil, in
// which case each tick is a no-op.
func New(interval time.Duration, fn FuncTick) Ticker {
	return &ticker{
		interval: interval,
		fctTick:  fn,
	}
}
