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

// Package broadcast delivers server-initiated expiration frames to every
// currently connected client. Delivery is best-effort per subscriber: a
// full queue or closed connection drops the event for that subscriber only,
// never blocking the emitting operation or the other subscribers.
package broadcast

import (
	libatm "github.com/nabbar/cachehost/atomic"
	liblog "github.com/nabbar/cachehost/logger"
)

// CorrelationID is the reserved correlation id carried by every broadcast
// frame, distinguishing server-initiated traffic from replies on a
// multiplexed connection.
const CorrelationID int32 = 0

// Subscriber is a live connection's enqueue-only handle. The bus holds
// subscribers only through this interface, never owning the connection:
// teardown unsubscribes before the queue closes.
type Subscriber interface {
	// ID identifies the subscriber on the bus.
	ID() string
	// Enqueue appends a broadcast payload to the subscriber's write queue
	// without blocking. It reports false when the payload was dropped.
	Enqueue(payload []byte) bool
}

// Bus is the set of live subscribers and the fan-out entry point.
type Bus interface {
	// Subscribe registers s, replacing any subscriber sharing its ID.
	Subscribe(s Subscriber)
	// Unsubscribe removes the subscriber registered under id.
	Unsubscribe(id string)
	// Count returns the number of registered subscribers.
	Count() int
	// Expire fans out the literal payload "expire <key>" to every
	// subscriber and returns the number of subscribers the event was
	// dropped for.
	Expire(key string) int
	// Broadcast fans out an already-encoded payload to every subscriber
	// and returns the number of subscribers the event was dropped for.
	Broadcast(payload []byte) int
	// RegisterLogger sets the logger used to report dropped deliveries.
	RegisterLogger(fn liblog.FuncLog)
}

// New returns an empty Bus.
func New() Bus {
	return &bus{
		sub: libatm.NewMapTyped[string, Subscriber](),
	}
}
