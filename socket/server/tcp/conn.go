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
	"time"
)

// sConn composes a net.Conn with a cancellable context.Context, re-arming
// the connection's read/write deadline to the configured idle timeout on
// every I/O call.
type sConn struct {
	net.Conn
	context.Context

	cancel context.CancelFunc
	idle   time.Duration
}

func newConn(parent context.Context, c net.Conn, idle time.Duration) *sConn {
	ctx, cancel := context.WithCancel(parent)

	sc := &sConn{
		Conn:    c,
		Context: ctx,
		cancel:  cancel,
		idle:    idle,
	}
	sc.touch()

	return sc
}

// touch re-arms the connection deadline so a blocked Read/Write returns a
// timeout error once idle elapses without traffic.
func (c *sConn) touch() {
	if c.idle <= 0 {
		return
	}
	_ = c.Conn.SetDeadline(time.Now().Add(c.idle))
}

func (c *sConn) Read(b []byte) (int, error) {
	c.touch()
	return c.Conn.Read(b)
}

func (c *sConn) Write(b []byte) (int, error) {
	c.touch()
	return c.Conn.Write(b)
}

func (c *sConn) Close() error {
	c.cancel()
	return c.Conn.Close()
}
