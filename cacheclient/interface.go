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

// Package cacheclient is the multiplexed TCP client of a cache host: each
// outbound request carries a fresh correlation id, the next inbound frame
// bearing that id wakes the caller, and frames carrying the reserved
// broadcast id are delivered to a registered callback instead.
package cacheclient

import (
	"context"

	libctx "github.com/nabbar/cachehost/context"
	liberr "github.com/nabbar/cachehost/errors"
)

// FuncBroadcast consumes server-initiated frames, e.g. expiration
// notifications. The payload still carries its leading message-type byte.
type FuncBroadcast func(payload []byte)

// Client is one multiplexed connection to a cache host. A Client is safe
// for concurrent use: requests from many goroutines interleave on the
// single connection and each caller is woken by its own reply.
type Client interface {
	// Connect dials the host and starts the demultiplexing loop.
	Connect(ctx context.Context) liberr.Error

	// Close tears the connection down, releasing every waiter with a
	// transport error. Idempotent.
	Close() error

	// IsConnected reports whether the demultiplexing loop is serving.
	IsConnected() bool

	// Call sends a request payload and blocks until its reply arrives,
	// ctx expires, or the connection is lost.
	Call(ctx context.Context, payload []byte) ([]byte, liberr.Error)

	// Send writes a request payload without waiting for any reply, the
	// fire-and-forget form used by del and clear.
	Send(payload []byte) liberr.Error

	// RegisterFuncBroadcast sets the sink for server-initiated frames.
	RegisterFuncBroadcast(fn FuncBroadcast)
}

// New returns a disconnected Client for the given "host:port" address.
func New(address string) Client {
	return &cli{
		adr: address,
		pnd: libctx.New[int32](context.Background()),
	}
}
