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

package cachehost

import (
	"context"
	"net"
	"sync"
	"time"

	libbrd "github.com/nabbar/cachehost/broadcast"
	libmet "github.com/nabbar/cachehost/cachehost/metrics"
	liberr "github.com/nabbar/cachehost/errors"
	errpol "github.com/nabbar/cachehost/errors/pool"
	liblog "github.com/nabbar/cachehost/logger"
	loglvl "github.com/nabbar/cachehost/logger/level"
	librun "github.com/nabbar/cachehost/runner/startStop"
	libtck "github.com/nabbar/cachehost/runner/ticker"
	libsck "github.com/nabbar/cachehost/socket"
	sckcfg "github.com/nabbar/cachehost/socket/config"
	srvtcp "github.com/nabbar/cachehost/socket/server/tcp"
	libsto "github.com/nabbar/cachehost/store"
	libtag "github.com/nabbar/cachehost/tagindex"
)

// startPollInterval paces the wait for the listener to come up after Start.
const startPollInterval = 5 * time.Millisecond

type engine struct {
	cfg Config
	rid string

	sto libsto.Store
	tix libtag.TagIndex
	bus libbrd.Bus
	met libmet.Metrics
	tck libtck.Ticker
	run librun.StartStop

	sm  sync.Mutex
	srv srvtcp.ServerTcp

	lm  sync.Mutex
	log liblog.FuncLog
}

func (e *engine) Start(ctx context.Context) liberr.Error {
	srv, err := srvtcp.New(tuneConn, e.handle, sckcfg.Server{
		Address:            e.cfg.Address(),
		MaximumConnections: e.cfg.MaximumConnections,
		MessageBufferSize:  e.cfg.MessageBufferSize,
		ConIdleTimeout:     e.cfg.CommunicationTimeout,
	})
	if err != nil {
		return ErrorEngineStart.Error(err)
	}

	srv.RegisterFuncError(func(errs ...error) {
		for _, er := range errs {
			e.logEntry(loglvl.WarnLevel, "connection failure: %v", er)
		}
	})
	srv.RegisterFuncInfo(func(local, remote net.Addr, state libsck.ConnState) {
		e.logEntry(loglvl.DebugLevel, "connection %s: %s -> %s", state.String(), remote.String(), local.String())
	})
	srv.RegisterFuncInfoServer(func(msg string) {
		e.logEntry(loglvl.InfoLevel, "engine %s: %s", e.rid, msg)
	})

	e.sm.Lock()
	e.srv = srv
	e.sm.Unlock()

	if err := e.tck.Start(ctx); err != nil {
		return ErrorEngineStart.Error(err)
	}

	if err := e.run.Start(ctx); err != nil {
		_ = e.tck.Stop(ctx)
		return ErrorEngineStart.Error(err)
	}

	// Listen runs on its own goroutine; wait for the accept loop so a
	// caller can connect as soon as Start returns.
	for i := 0; i < 200; i++ {
		if srv.IsRunning() {
			return nil
		}
		if er := e.run.ErrorsLast(); er != nil {
			_ = e.tck.Stop(ctx)
			return ErrorEngineStart.Error(er)
		}
		time.Sleep(startPollInterval)
	}

	_ = e.Stop(ctx)
	return ErrorEngineStart.Error(nil)
}

func (e *engine) startRun(ctx context.Context) error {
	e.sm.Lock()
	srv := e.srv
	e.sm.Unlock()

	if srv == nil {
		return ErrorEngineStart.Error(nil)
	}

	return srv.Listen(ctx)
}

func (e *engine) stopRun(ctx context.Context) error {
	e.sm.Lock()
	srv := e.srv
	e.sm.Unlock()

	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}

func (e *engine) Stop(ctx context.Context) liberr.Error {
	p := errpol.New()
	p.Add(e.run.Stop(ctx))
	p.Add(e.tck.Stop(ctx))

	if err := p.Error(); err != nil {
		return ErrorEngineStop.Error(err)
	}

	return nil
}

func (e *engine) Restart(ctx context.Context) liberr.Error {
	if err := e.Stop(ctx); err != nil {
		return err
	}

	return e.Start(ctx)
}

func (e *engine) IsRunning() bool {
	return e.run.IsRunning()
}

func (e *engine) Uptime() time.Duration {
	return e.run.Uptime()
}

func (e *engine) OpenConnections() int64 {
	e.sm.Lock()
	srv := e.srv
	e.sm.Unlock()

	if srv == nil {
		return 0
	}

	return srv.OpenConnections()
}

func (e *engine) Store() libsto.Store {
	return e.sto
}

func (e *engine) Tags() libtag.TagIndex {
	return e.tix
}

func (e *engine) Bus() libbrd.Bus {
	return e.bus
}

func (e *engine) Metrics() libmet.Metrics {
	return e.met
}

func (e *engine) RegisterLogger(fn liblog.FuncLog) {
	e.lm.Lock()
	e.log = fn
	e.lm.Unlock()

	e.sto.RegisterLogger(fn)
	e.bus.RegisterLogger(fn)
}

func (e *engine) logEntry(lvl loglvl.Level, msg string, args ...interface{}) {
	e.lm.Lock()
	fl := e.log
	e.lm.Unlock()

	if fl == nil {
		return
	}

	if l := fl(); l != nil {
		l.Entry(lvl, msg, args...).Log()
	}
}

// notifyExpire is the store's removal-notification sink: it fans the
// expire frame out on the bus synchronously, inside the removal path, so
// the broadcast is enqueued on every connection before the caller's reply.
func (e *engine) notifyExpire(key string) {
	e.met.BroadcastDropped(e.bus.Expire(key))
}

// tick drives one periodic maintenance pass: reap expired entries, then
// trim under the memory ceiling.
func (e *engine) tick(_ context.Context, _ *time.Ticker) error {
	n := e.sto.Expire()
	n += e.sto.Trim()

	e.met.Evicted(n)
	e.met.StoreSize(e.sto.Len(), e.sto.Size())

	return nil
}

// tuneConn disables Nagle on every accepted connection.
func tuneConn(c net.Conn) {
	if t, ok := c.(*net.TCPConn); ok {
		_ = t.SetNoDelay(true)
	}
}
