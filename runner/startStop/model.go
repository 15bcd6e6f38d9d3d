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

package startStop

import (
	"context"
	"sync"
	"time"
)

type runner struct {
	m sync.Mutex

	fctStart FuncRun
	fctStop  FuncRun

	cancel  context.CancelFunc
	done    chan struct{}
	running bool
	started time.Time

	// errMu guards errLast/errList independently of m: the Start goroutine
	// records its error while Stop may be holding m blocked on <-r.done.
	errMu   sync.Mutex
	errLast error
	errList []error
}

func (r *runner) Start(ctx context.Context) error {
	r.m.Lock()
	defer r.m.Unlock()

	if r.running {
		r.stopLocked(ctx)
	}

	if r.fctStart == nil {
		return nil
	}

	c, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.cancel = cancel
	r.done = done
	r.running = true
	r.started = time.Now()

	go func() {
		defer close(done)
		if e := r.fctStart(c); e != nil {
			r.recordError(e)
		}
	}()

	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.stopLocked(ctx)
}

func (r *runner) stopLocked(ctx context.Context) error {
	if !r.running {
		return nil
	}

	r.cancel()
	<-r.done

	r.running = false
	r.started = time.Time{}

	if r.fctStop == nil {
		return nil
	}

	if e := r.fctStop(ctx); e != nil {
		r.recordError(e)
		return e
	}

	return nil
}

func (r *runner) Restart(ctx context.Context) error {
	r.m.Lock()
	defer r.m.Unlock()

	_ = r.stopLocked(ctx)

	if r.fctStart == nil {
		return nil
	}

	c, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.cancel = cancel
	r.done = done
	r.running = true
	r.started = time.Now()

	go func() {
		defer close(done)
		if e := r.fctStart(c); e != nil {
			r.recordError(e)
		}
	}()

	return nil
}

func (r *runner) IsRunning() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.running
}

func (r *runner) Uptime() time.Duration {
	r.m.Lock()
	defer r.m.Unlock()

	if !r.running {
		return 0
	}

	return time.Since(r.started)
}

func (r *runner) ErrorsLast() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	return r.errLast
}

func (r *runner) ErrorsList() []error {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	out := make([]error, len(r.errList))
	copy(out, r.errList)
	return out
}

func (r *runner) recordError(e error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	r.errLast = e
	r.errList = append(r.errList, e)
}
