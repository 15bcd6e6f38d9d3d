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
	"bufio"
	"errors"
	"io"
	"sync/atomic"

	libbrd "github.com/nabbar/cachehost/broadcast"
	libcmd "github.com/nabbar/cachehost/command"
	loglvl "github.com/nabbar/cachehost/logger/level"
	libprt "github.com/nabbar/cachehost/protocol"
	libsck "github.com/nabbar/cachehost/socket"
)

// frame is one outgoing queue item: a correlation id and an encoded
// payload. Replies carry the request's id; broadcasts carry the reserved
// broadcast id.
type frame struct {
	cid     int32
	payload []byte
}

// conn is the server side of one live session: the socket, its bounded
// outgoing queue, and its registration handle on the broadcast bus.
type conn struct {
	id   string
	sck  libsck.Context
	q    chan frame
	done chan struct{}
	dead atomic.Bool
}

func (c *conn) ID() string {
	return c.id
}

// Enqueue appends a broadcast payload without blocking. A full queue or a
// dead connection drops the event for this subscriber only.
func (c *conn) Enqueue(payload []byte) bool {
	return c.push(frame{cid: libbrd.CorrelationID, payload: payload})
}

func (c *conn) push(f frame) bool {
	if c.dead.Load() {
		return false
	}

	select {
	case c.q <- f:
		return true
	default:
		return false
	}
}

// pushWait enqueues a reply, blocking for queue room: replies are never
// dropped, the read loop simply back-pressures its own client.
func (c *conn) pushWait(f frame) {
	if c.dead.Load() {
		return
	}

	select {
	case c.q <- f:
	case <-c.done:
	}
}

// writeLoop is the single writer for the socket: whole frames only, in
// enqueue order, so a reply and a broadcast never interleave bytes.
func (c *conn) writeLoop() {
	for {
		select {
		case f := <-c.q:
			if err := libprt.WriteFrame(c.sck, f.cid, f.payload); err != nil {
				c.dead.Store(true)
				return
			}
		case <-c.done:
			return
		}
	}
}

// handle serves one accepted connection: register on the bus, run the
// writer, then loop reading frames and dispatching commands until the
// client goes away or violates the protocol.
func (e *engine) handle(sc libsck.Context) {
	defer func() {
		_ = sc.Close()
	}()

	c := &conn{
		id:   newConnID(),
		sck:  sc,
		q:    make(chan frame, e.cfg.BroadcastQueueSize),
		done: make(chan struct{}),
	}

	e.bus.Subscribe(c)
	e.met.ConnInc()

	defer func() {
		// unsubscribe before tearing the queue down so the bus never
		// enqueues on a closing connection
		e.bus.Unsubscribe(c.id)
		e.met.ConnDec()
		c.dead.Store(true)
		close(c.done)
	}()

	go c.writeLoop()

	var maxFrame uint32
	if e.cfg.MaximumMessageSize > 0 {
		maxFrame = uint32(e.cfg.MaximumMessageSize)
	}

	rd := bufio.NewReaderSize(sc, e.cfg.MessageBufferSize)

	for {
		cid, payload, err := libprt.ReadFrame(rd, maxFrame)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.logEntry(loglvl.WarnLevel, "closing connection %s: %v", c.id, err)
			}
			return
		}

		if len(payload) == 0 {
			// missing message-type byte: protocol violation, no reply
			e.logEntry(loglvl.WarnLevel, "closing connection %s: %v", c.id, libprt.ErrorPayloadEmpty.Error(nil))
			return
		}

		if libcmd.MessageType(payload[0]) > libcmd.RepeatingPairs {
			e.logEntry(loglvl.WarnLevel, "closing connection %s: %v", c.id, ErrorUnknownMessageType.Error(nil))
			return
		}

		if resp := e.dispatch(payload[1:]); resp != nil {
			c.pushWait(frame{cid: cid, payload: resp})
		}
	}
}
