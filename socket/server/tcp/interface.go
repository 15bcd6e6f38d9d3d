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

// Package tcp implements a bounded-concurrency TCP connection server: it
// accepts connections, enforces the configured connection cap and idle
// timeout, and dispatches each connection to a socket.HandlerFunc on its
// own goroutine.
package tcp

import (
	"context"
	"errors"

	libsck "github.com/nabbar/cachehost/socket"
	scfg "github.com/nabbar/cachehost/socket/config"
)

var (
	ErrInvalidAddress = scfg.ErrInvalidAddress
	ErrInvalidHandler = errors.New("socket/server/tcp: handler is required")
	ErrAlreadyRunning = errors.New("socket/server/tcp: server is already running")
)

// ServerTcp accepts TCP connections and dispatches them to a handler.
type ServerTcp interface {
	// Listen blocks accepting connections until ctx is cancelled or
	// Shutdown/Close is called.
	Listen(ctx context.Context) error
	// Shutdown stops accepting new connections and waits, bounded by ctx,
	// for in-flight connections to finish.
	Shutdown(ctx context.Context) error
	// Close stops accepting new connections without waiting for in-flight
	// connections to finish. Idempotent.
	Close() error

	// IsRunning reports whether Listen's accept loop is active.
	IsRunning() bool
	// IsGone reports whether the server has never listened, or has fully
	// stopped with no open connections.
	IsGone() bool
	// OpenConnections reports the number of connections currently being served.
	OpenConnections() int64

	RegisterFuncError(fn libsck.FuncError)
	RegisterFuncInfo(fn libsck.FuncInfo)
	RegisterFuncInfoServer(fn libsck.FuncInfoServer)
}

// New validates cfg and returns a ServerTcp ready to Listen. updateConn may
// be nil. handler is required.
func New(updateConn libsck.UpdateConn, handler libsck.HandlerFunc, cfg scfg.Server) (ServerTcp, error) {
	if handler == nil {
		return nil, ErrInvalidHandler
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &server{
		cfg:        cfg,
		updateConn: updateConn,
		handler:    handler,
		gone:       true,
	}, nil
}
