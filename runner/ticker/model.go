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

package ticker

import (
	"context"
	"sync"
	"time"
)

type ticker struct {
	m sync.Mutex

	interval time.Duration
	fctTick  FuncTick

	cancel  context.CancelFunc
	done    chan struct{}
	running bool
	started time.Time

	// errMu guards errLast/errList independently of m: the tick loop
	// goroutine records an error while Stop may be holding m blocked on
	// <-t.done.
	errMu   sync.Mutex
	errLast error
	errList []error
}

func (t *ticker) Start(ctx context.Context) error {
	t.m.Lock()
	defer t.m.Unlock()

	if t.running {
		t.stopLocked(ctx)
	}

	t.startLocked(ctx)
	return nil
}

func (t *ticker) startLocked(ctx context.Context) {
	c, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.cancel = cancel
	t.done = done
	t.running = true
	t.started = time.Now()

	go t.run(c, done)
}

func (t *ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	tck := time.NewTicker(t.interval)
	defer tck.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tck.C:
			if t.fctTick == nil {
				continue
			}
			if e := t.fctTick(ctx, tck); e != nil {
				t.recordError(e)
			}
		}
	}
}

func (t *ticker) Stop(ctx context.Context) error {
	t.m.Lock()
	defer t.m.Unlock()

	t.stopLocked(ctx)
	return nil
}

func (t *ticker) stopLocked(_ context.Context) {
	if !t.running {
		return
	}

	t.cancel()
	<-t.done

	t.running = false
	t.started = time.Time{}
}

func (t *ticker) Restart(ctx context.Context) error {
	t.m.Lock()
	defer t.m.Unlock()

	t.stopLocked(ctx)
	t.startLocked(ctx)
	return nil
}

func (t *ticker) IsRunning() bool {
	t.m.Lock()
	defer t.m.Unlock()

	return t.running
}

func (t *ticker) Uptime() time.Duration {
	t.m.Lock()
	defer t.m.Unlock()

	if !t.running {
		return 0
	}

	return time.Since(t.started)
}

func (t *ticker) ErrorsLast() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()

	return t.errLast
}

func (t *ticker) ErrorsList() []error {
	t.errMu.Lock()
	defer t.errMu.Unlock()

	out := make([]error, len(t.errList))
	copy(out, t.errList)
	return out
}

func (t *ticker) recordError(e error) {
	t.errMu.Lock()
	defer t.errMu.Unlock()

	t.errLast = e
	t.errList = append(t.errList, e)
}
