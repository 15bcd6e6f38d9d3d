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

// Package socket declares the shared contract between a connection server
// and the handler it drives: the per-connection Context, the connection
// lifecycle callbacks, and the connection state enumeration.
package socket

import (
	"context"
	"net"
)

// ConnState enumerates the lifecycle events a server reports through
// RegisterFuncInfo.
type ConnState uint8

const (
	ConnectionNew ConnState = iota
	ConnectionClose
	ConnectionError
)

func (s ConnState) String() string {
	switch s {
	case ConnectionNew:
		return "new"
	case ConnectionClose:
		return "close"
	case ConnectionError:
		return "error"
	default:
		return "unknown"
	}
}

// Context is the per-connection handle passed to a HandlerFunc. It composes
// a net.Conn with the context.Context derived from the server's Listen
// call, cancelled when the connection's idle timeout elapses or the server
// is shut down.
type Context interface {
	context.Context
	net.Conn
}

// HandlerFunc processes a single accepted connection. It owns the
// connection and must Close it before returning.
type HandlerFunc func(c Context)

// UpdateConn customizes a raw net.Conn immediately after Accept, before the
// handler is invoked (e.g. to set socket options).
type UpdateConn func(c net.Conn)

// FuncError receives asynchronous server errors (accept failures, per
// connection I/O errors reported out of band).
type FuncError func(errs ...error)

// FuncInfo reports a per-connection lifecycle transition.
type FuncInfo func(local, remote net.Addr, state ConnState)

// FuncInfoServer reports a server-level informational message.
type FuncInfoServer func(msg string)
