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

package store

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/nabbar/cachehost/atomic"
	libkvd "github.com/nabbar/cachehost/database/kvdriver"
	libkvt "github.com/nabbar/cachehost/database/kvtypes"
	liberr "github.com/nabbar/cachehost/errors"
	liblog "github.com/nabbar/cachehost/logger"
	loglvl "github.com/nabbar/cachehost/logger/level"
	libpat "github.com/nabbar/cachehost/pattern"
)

// entrySizeOverhead approximates the fixed per-entry bookkeeping cost added
// to key and value bytes when attributing memory to the store.
const entrySizeOverhead = 128

type entry struct {
	key    string
	val    []byte
	policy Policy
	expAt  time.Time
	ttl    time.Duration
	notify bool
	size   int64
	last   libatm.Value[time.Time]
}

func newEntry(key string, val []byte, opt Options) *entry {
	if opt.Policy == PolicyInterned {
		// interned supersedes expiration and notification
		opt.ExpireAt = time.Time{}
		opt.Sliding = 0
		opt.NotifyOnRemoval = false
	} else if opt.Policy == PolicyAbsolute {
		opt.Sliding = 0
	}

	e := &entry{
		key:    key,
		val:    val,
		policy: opt.Policy,
		expAt:  opt.ExpireAt,
		ttl:    opt.Sliding,
		notify: opt.NotifyOnRemoval,
		size:   int64(len(key)+len(val)) + entrySizeOverhead,
		last:   libatm.NewValue[time.Time](),
	}

	e.touch(time.Now())

	return e
}

func (e *entry) touch(now time.Time) {
	e.last.Store(now)
}

func (e *entry) lastAccess() time.Time {
	return e.last.Load()
}

func (e *entry) expired(now time.Time) bool {
	switch e.policy {
	case PolicyAbsolute:
		return !now.Before(e.expAt)
	case PolicySliding:
		return now.Sub(e.lastAccess()) >= e.ttl
	default:
		return false
	}
}

type st struct {
	tbl libatm.MapTyped[string, *entry]
	drv libkvt.KVDriver[string, []byte]
	prv Provider
	pct int
	sz  atomic.Int64

	fm  sync.Mutex
	fn  FuncNotify
	log liblog.FuncLog
}

func (o *st) RegisterFuncNotify(fn FuncNotify) {
	o.fm.Lock()
	defer o.fm.Unlock()
	o.fn = fn
}

func (o *st) RegisterLogger(fn liblog.FuncLog) {
	o.fm.Lock()
	defer o.fm.Unlock()
	o.log = fn
}

func (o *st) emitNotify(key string) {
	o.fm.Lock()
	fn := o.fn
	o.fm.Unlock()

	if fn != nil {
		fn(key)
	}
}

func (o *st) logEntry(lvl loglvl.Level, msg string, args ...interface{}) {
	o.fm.Lock()
	fl := o.log
	o.fm.Unlock()

	if fl == nil {
		return
	}

	if l := fl(); l != nil {
		l.Entry(lvl, msg, args...).Log()
	}
}

func (o *st) Get(key string) ([]byte, bool) {
	e, ok := o.tbl.Load(key)
	if !ok {
		return nil, false
	}

	now := time.Now()

	if e.expired(now) {
		o.reap(e, true)
		return nil, false
	}

	v, err := o.prv.Decode(e.val)
	if err != nil {
		// a value failing to decode is removed so the failure is not repeated
		o.reap(e, false)
		return nil, false
	}

	e.touch(now)

	return v, true
}

func (o *st) Set(key string, val []byte, opt Options) liberr.Error {
	if isBlankKey(key) {
		return ErrorEmptyKey.Error(nil)
	}

	enc, err := o.prv.Encode(val)
	if err != nil {
		return ErrorStorageCodec.Error(err)
	}

	e := newEntry(key, enc, opt)

	prev, loaded := o.tbl.Swap(key, e)
	o.sz.Add(e.size)

	if loaded {
		o.sz.Add(-prev.size)
		// replacement counts as removal for notification purposes
		if prev.notify {
			o.emitNotify(key)
		}
	}

	return nil
}

func (o *st) Remove(key string) ([]byte, bool) {
	prev, ok := o.tbl.LoadAndDelete(key)
	if !ok {
		return nil, false
	}

	o.sz.Add(-prev.size)

	if prev.expired(time.Now()) {
		if prev.notify {
			o.emitNotify(key)
		}
		return nil, false
	}

	if prev.notify {
		o.emitNotify(key)
	}

	v, err := o.prv.Decode(prev.val)
	if err != nil {
		return nil, true
	}

	return v, true
}

func (o *st) AddInterned(key string, val []byte) liberr.Error {
	return o.Set(key, val, Options{Policy: PolicyInterned})
}

func (o *st) Keys(pattern string) []string {
	rex, err := libpat.Compile(pattern)
	if err != nil {
		return nil
	}

	now := time.Now()
	res := make([]string, 0)

	o.tbl.Range(func(key string, e *entry) bool {
		if e.expired(now) {
			o.reap(e, true)
			return true
		}
		if rex == nil || rex.MatchString(key) {
			res = append(res, key)
		}
		return true
	})

	return res
}

func (o *st) Clear() []string {
	res := make([]string, 0)

	o.tbl.Range(func(key string, e *entry) bool {
		if e.policy == PolicyInterned {
			return true
		}
		if o.tbl.CompareAndDelete(key, e) {
			o.sz.Add(-e.size)
			res = append(res, key)
		}
		return true
	})

	return res
}

func (o *st) Len() int {
	n := 0
	o.tbl.Range(func(string, *entry) bool {
		n++
		return true
	})
	return n
}

func (o *st) Size() int64 {
	return o.sz.Load()
}

func (o *st) Expire() int {
	now := time.Now()
	n := 0

	o.tbl.Range(func(_ string, e *entry) bool {
		if e.expired(now) && o.reap(e, true) {
			n++
		}
		return true
	})

	if n > 0 {
		o.logEntry(loglvl.DebugLevel, "expiration sweep reaped %d entries", n)
	}

	return n
}

// reap removes e from the table if it is still the live entry for its key,
// emitting the expiration notification when requested. Concurrent removal
// of the same pointer is resolved by CompareAndDelete: only one caller wins
// and emits.
func (o *st) reap(e *entry, mayNotify bool) bool {
	if !o.tbl.CompareAndDelete(e.key, e) {
		return false
	}

	o.sz.Add(-e.size)

	if mayNotify && e.notify {
		o.emitNotify(e.key)
	}

	return true
}

// Driver exposes the live table through the generic key/value driver
// surface. Values cross the boundary decoded; expired entries are invisible.
func (o *st) Driver() libkvt.KVDriver[string, []byte] {
	return o.drv
}

func (o *st) newDriver() libkvt.KVDriver[string, []byte] {
	cmp := libkvt.NewCompare[string](
		func(ref, part string) bool { return strings.EqualFold(ref, part) },
		func(ref, part string) bool { return strings.Contains(strings.ToLower(ref), strings.ToLower(part)) },
		func(part string) bool { return part == "" || part == MatchAll },
	)

	var fn libkvd.FuncNew[string, []byte]
	fn = func() libkvt.KVDriver[string, []byte] {
		return o.newDriver()
	}

	return libkvd.New[string, []byte](cmp, fn,
		func(key string) ([]byte, error) {
			if v, ok := o.Get(key); ok {
				return v, nil
			}
			return nil, ErrorKeyNotFound.Error(nil)
		},
		func(key string, val []byte) error {
			return o.Set(key, val, Options{})
		},
		func(key string) error {
			o.Remove(key)
			return nil
		},
		func() ([]string, error) {
			return o.Keys(MatchAll), nil
		},
		nil,
		func(fct libkvt.FctWalk[string, []byte]) error {
			now := time.Now()
			o.tbl.Range(func(key string, e *entry) bool {
				if e.expired(now) {
					o.reap(e, true)
					return true
				}
				v, err := o.prv.Decode(e.val)
				if err != nil {
					o.reap(e, false)
					return true
				}
				return fct(key, v)
			})
			return nil
		},
	)
}
