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

// Package startStop provides the generic Start/Stop/Restart runnable
// contract composed by the cache-host engine (listener + trimmer).
package startStop

import (
	"context"
	"time"
)

// FuncRun is a function run by a StartStop instance, either as the
// long-lived body of Start or as the teardown body of Stop. It receives a
// context cancelled when the runner is stopped.
type FuncRun func(ctx context.Context) error

// StartStop composes a start and a stop function into a single runnable
// whose running state, uptime and error history can be inspected.
type StartStop interface {
	// Start launches the start function in its own goroutine, deriving its
	// context from ctx. If already running, the prior run is stopped first.
	Start(ctx context.Context) error
	// Stop cancels the running start function's context, waits for it to
	// return, then runs the stop function with ctx. Idempotent.
	Stop(ctx context.Context) error
	// Restart stops then starts the runner. If not running, it only starts.
	Restart(ctx context.Context) error
	// IsRunning reports whether Start has been called without a matching Stop.
	IsRunning() bool
	// Uptime reports the duration since the current run started, or zero.
	Uptime() time.Duration
	// ErrorsLast returns the most recently recorded error, or nil.
	ErrorsLast() error
	// ErrorsList returns every error recorded across this runner's lifetime.
	ErrorsList() []error
}

// New returns a StartStop composing the given start/stop functions. Either
// may be nil; a nil function is treated as a no-op.
func New(start, stop FuncRun) StartStop {
	return &runner{
		fctStart: start,
		fctStop:  stop,
	}
}
