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

package cacheclient

import (
	"bufio"
	"context"
	"net"
	"sync"
	"sync/atomic"

	libbrd "github.com/nabbar/cachehost/broadcast"
	libctx "github.com/nabbar/cachehost/context"
	liberr "github.com/nabbar/cachehost/errors"
	libprt "github.com/nabbar/cachehost/protocol"
)

type cli struct {
	adr string
	pnd libctx.Config[int32]
	cid atomic.Int32
	run atomic.Bool

	cm  sync.Mutex
	con net.Conn

	wm sync.Mutex // serializes frame writes

	fm sync.Mutex
	fb FuncBroadcast
}

// waiter is one pending request's slot: the reply lands in res and done is
// closed exactly once, on reply or on transport failure.
type waiter struct {
	res  []byte
	err  liberr.Error
	once sync.Once
	done chan struct{}
}

func newWaiter() *waiter {
	return &waiter{
		done: make(chan struct{}),
	}
}

func (w *waiter) wake(res []byte, err liberr.Error) {
	w.once.Do(func() {
		w.res = res
		w.err = err
		close(w.done)
	})
}

func (o *cli) Connect(ctx context.Context) liberr.Error {
	o.cm.Lock()
	defer o.cm.Unlock()

	if o.con != nil {
		return ErrorAlreadyConnected.Error(nil)
	}

	d := net.Dialer{}

	con, err := d.DialContext(ctx, "tcp", o.adr)
	if err != nil {
		return ErrorDial.Error(err)
	}

	if t, ok := con.(*net.TCPConn); ok {
		_ = t.SetNoDelay(true)
	}

	o.con = con
	o.run.Store(true)

	go o.readLoop(con)

	return nil
}

func (o *cli) Close() error {
	o.cm.Lock()
	con := o.con
	o.con = nil
	o.cm.Unlock()

	o.run.Store(false)

	if con != nil {
		return con.Close()
	}

	return nil
}

func (o *cli) IsConnected() bool {
	return o.run.Load()
}

// nextID derives a fresh correlation id for one send: any unique 32-bit
// value not in flight suffices, skipping the reserved broadcast id.
func (o *cli) nextID() int32 {
	for {
		id := o.cid.Add(1)
		if id == libbrd.CorrelationID {
			continue
		}
		if _, inFlight := o.pnd.Load(id); !inFlight {
			return id
		}
	}
}

func (o *cli) write(cid int32, payload []byte) liberr.Error {
	o.cm.Lock()
	con := o.con
	o.cm.Unlock()

	if con == nil {
		return ErrorNotConnected.Error(nil)
	}

	o.wm.Lock()
	defer o.wm.Unlock()

	if err := libprt.WriteFrame(con, cid, payload); err != nil {
		return ErrorTransport.Error(err)
	}

	return nil
}

func (o *cli) Call(ctx context.Context, payload []byte) ([]byte, liberr.Error) {
	if !o.run.Load() {
		return nil, ErrorNotConnected.Error(nil)
	}

	id := o.nextID()
	w := newWaiter()
	o.pnd.Store(id, w)

	if err := o.write(id, payload); err != nil {
		o.pnd.Delete(id)
		return nil, err
	}

	select {
	case <-w.done:
		return w.res, w.err
	case <-ctx.Done():
		o.pnd.Delete(id)
		return nil, ErrorTimeout.Error(ctx.Err())
	}
}

func (o *cli) Send(payload []byte) liberr.Error {
	if !o.run.Load() {
		return ErrorNotConnected.Error(nil)
	}

	return o.write(o.nextID(), payload)
}

func (o *cli) RegisterFuncBroadcast(fn FuncBroadcast) {
	o.fm.Lock()
	defer o.fm.Unlock()
	o.fb = fn
}

func (o *cli) broadcast(payload []byte) {
	o.fm.Lock()
	fn := o.fb
	o.fm.Unlock()

	if fn != nil {
		fn(payload)
	}
}

// readLoop demultiplexes inbound frames: the reserved broadcast id goes to
// the broadcast sink, anything else wakes its pending waiter. On any read
// failure every waiter is released with a transport error.
func (o *cli) readLoop(con net.Conn) {
	rd := bufio.NewReader(con)

	for {
		cid, payload, err := libprt.ReadFrame(rd, 0)
		if err != nil {
			o.fail(ErrorTransport.Error(err))
			return
		}

		if cid == libbrd.CorrelationID {
			o.broadcast(payload)
			continue
		}

		if v, ok := o.pnd.LoadAndDelete(cid); ok {
			if w, k := v.(*waiter); k {
				w.wake(payload, nil)
			}
		}
	}
}

func (o *cli) fail(err liberr.Error) {
	o.run.Store(false)

	o.pnd.Walk(func(key int32, val interface{}) bool {
		if v, ok := o.pnd.LoadAndDelete(key); ok {
			if w, k := v.(*waiter); k {
				w.wake(nil, err)
			}
		}
		return true
	})
}
