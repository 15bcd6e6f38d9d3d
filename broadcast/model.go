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

package broadcast

import (
	"sync"

	libatm "github.com/nabbar/cachehost/atomic"
	libcmd "github.com/nabbar/cachehost/command"
	liblog "github.com/nabbar/cachehost/logger"
	loglvl "github.com/nabbar/cachehost/logger/level"
)

type bus struct {
	sub libatm.MapTyped[string, Subscriber]

	lm  sync.Mutex
	log liblog.FuncLog
}

func (o *bus) Subscribe(s Subscriber) {
	if s == nil {
		return
	}

	o.sub.Store(s.ID(), s)
}

func (o *bus) Unsubscribe(id string) {
	o.sub.Delete(id)
}

func (o *bus) Count() int {
	n := 0
	o.sub.Range(func(string, Subscriber) bool {
		n++
		return true
	})
	return n
}

func (o *bus) Expire(key string) int {
	return o.Broadcast(libcmd.EncodeLiteral("expire " + key))
}

func (o *bus) Broadcast(payload []byte) int {
	drop := 0

	o.sub.Range(func(id string, s Subscriber) bool {
		if !s.Enqueue(payload) {
			drop++
			o.logEntry(loglvl.DebugLevel, "broadcast dropped for subscriber %s", id)
		}
		return true
	})

	return drop
}

func (o *bus) RegisterLogger(fn liblog.FuncLog) {
	o.lm.Lock()
	defer o.lm.Unlock()
	o.log = fn
}

func (o *bus) logEntry(lvl loglvl.Level, msg string, args ...interface{}) {
	o.lm.Lock()
	fl := o.log
	o.lm.Unlock()

	if fl == nil {
		return
	}

	if l := fl(); l != nil {
		l.Entry(lvl, msg, args...).Log()
	}
}
