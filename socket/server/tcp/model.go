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

package tcp

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	libsck "github.com/nabbar/cachehost/socket"
	scfg "github.com/nabbar/cachehost/socket/config"
	libsem "github.com/nabbar/cachehost/semaphore"
)

type server struct {
	cfg        scfg.Server
	updateConn libsck.UpdateConn
	handler    libsck.HandlerFunc

	m        sync.Mutex
	ln       net.Listener
	cancel   context.CancelFunc
	running  bool
	gone     bool
	wg       sync.WaitGroup
	openConn atomic.Int64

	fnMu       sync.Mutex
	fnError    libsck.FuncError
	fnInfo     libsck.FuncInfo
	fnInfoSrv  libsck.FuncInfoServer
}

func (s *server) Listen(ctx context.Context) error {
	s.m.Lock()
	if s.running {
		s.m.Unlock()
		return ErrAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		s.m.Unlock()
		return err
	}

	lctx, cancel := context.WithCancel(ctx)

	s.ln = ln
	s.cancel = cancel
	s.running = true
	s.gone = false
	s.m.Unlock()

	s.infoServer("listening on " + ln.Addr().String())

	sem := libsem.New(lctx, s.cfg.MaximumConnections)

	go func() {
		<-lctx.Done()
		_ = ln.Close()
	}()

	for {
		c, e := ln.Accept()
		if e != nil {
			if lctx.Err() == nil {
				s.reportError(e)
			}
			break
		}

		if s.updateConn != nil {
			s.updateConn(c)
		}

		if e = sem.NewWorker(); e != nil {
			_ = c.Close()
			break
		}

		s.wg.Add(1)
		s.openConn.Add(1)
		go s.serve(lctx, sem, c)
	}

	s.wg.Wait()

	s.m.Lock()
	s.running = false
	s.gone = s.openConn.Load() == 0
	s.m.Unlock()

	return nil
}

func (s *server) serve(ctx context.Context, sem libsem.Semaphore, raw net.Conn) {
	defer s.wg.Done()
	defer sem.DeferWorker()
	defer s.openConn.Add(-1)

	c := newConn(ctx, raw, s.cfg.ConIdleTimeout.Time())
	s.infoConn(raw.LocalAddr(), raw.RemoteAddr(), libsck.ConnectionNew)

	// a server shutdown closes the socket so a blocked read unblocks
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = c.Close()
		case <-done:
		}
	}()

	s.handler(c)
	close(done)

	s.infoConn(raw.LocalAddr(), raw.RemoteAddr(), libsck.ConnectionClose)
}

func (s *server) Shutdown(ctx context.Context) error {
	s.m.Lock()
	cancel := s.cancel
	s.m.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *server) Close() error {
	s.m.Lock()
	cancel := s.cancel
	ln := s.ln
	s.m.Unlock()

	if cancel != nil {
		cancel()
	}

	if ln != nil {
		return ln.Close()
	}

	return nil
}

func (s *server) IsRunning() bool {
	s.m.Lock()
	defer s.m.Unlock()

	return s.running
}

func (s *server) IsGone() bool {
	s.m.Lock()
	defer s.m.Unlock()

	return s.gone
}

func (s *server) OpenConnections() int64 {
	return s.openConn.Load()
}

func (s *server) RegisterFuncError(fn libsck.FuncError) {
	s.fnMu.Lock()
	defer s.fnMu.Unlock()
	s.fnError = fn
}

func (s *server) RegisterFuncInfo(fn libsck.FuncInfo) {
	s.fnMu.Lock()
	defer s.fnMu.Unlock()
	s.fnInfo = fn
}

func (s *server) RegisterFuncInfoServer(fn libsck.FuncInfoServer) {
	s.fnMu.Lock()
	defer s.fnMu.Unlock()
	s.fnInfoSrv = fn
}

func (s *server) infoConn(local, remote net.Addr, state libsck.ConnState) {
	s.fnMu.Lock()
	fn := s.fnInfo
	s.fnMu.Unlock()

	if fn != nil {
		fn(local, remote, state)
	}
}

func (s *server) infoServer(msg string) {
	s.fnMu.Lock()
	fn := s.fnInfoSrv
	s.fnMu.Unlock()

	if fn != nil {
		fn(msg)
	}
}

func (s *server) reportError(errs ...error) {
	s.fnMu.Lock()
	fn := s.fnError
	s.fnMu.Unlock()

	if fn != nil {
		fn(errs...)
	}
}
