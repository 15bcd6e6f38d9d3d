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

// Package store implements the keyed byte-string cache at the heart of the
// cache host: get/set/remove with absolute or sliding expiration, an
// interned region exempt from expiration and eviction, expiration
// notifications, and a memory-pressure trimmer removing entries in
// least-recently-accessed order.
package store

import (
	"strings"
	"time"

	libatm "github.com/nabbar/cachehost/atomic"
	libkvt "github.com/nabbar/cachehost/database/kvtypes"
	liberr "github.com/nabbar/cachehost/errors"
	liblog "github.com/nabbar/cachehost/logger"
)

// Policy selects how an entry expires.
type Policy uint8

const (
	// PolicyDefault never expires but remains an eviction candidate.
	PolicyDefault Policy = iota
	// PolicyAbsolute expires at a fixed wall-clock instant.
	PolicyAbsolute
	// PolicySliding expires a fixed duration after the last successful read.
	PolicySliding
	// PolicyInterned never expires and is exempt from eviction.
	PolicyInterned
)

// MatchAll is the pattern shorthand matching every key without engaging
// the regex engine.
const MatchAll = "*"

// Options qualifies a Set call. Zero value means PolicyDefault with no
// removal notification.
type Options struct {
	Policy Policy

	// ExpireAt is the absolute expiration instant, PolicyAbsolute only.
	ExpireAt time.Time

	// Sliding is the time-to-live refreshed on each successful Get,
	// PolicySliding only.
	Sliding time.Duration

	// NotifyOnRemoval requests an expiration notification when the entry
	// is removed, replaced, expired or evicted. Ignored for PolicyInterned.
	NotifyOnRemoval bool
}

// FuncNotify receives the key of an entry whose removal requested a
// notification. It is called synchronously inside the removal path, before
// the caller's operation returns, so subscribers observe the notification
// before any reply depending on the new state.
type FuncNotify func(key string)

// Store is the cache host's value store. All operations are safe for
// concurrent use; operations on a single key are linearizable.
type Store interface {
	// Get returns the value stored under key, or false on miss. An entry
	// found expired is removed before reporting the miss. A sliding entry
	// read successfully has its expiration pushed forward.
	Get(key string) ([]byte, bool)

	// Set inserts or replaces the entry under key. Replacing an entry
	// whose NotifyOnRemoval was set emits a notification before Set
	// returns.
	Set(key string, val []byte, opt Options) liberr.Error

	// Remove deletes the entry under key and returns its value, or false
	// if absent. Emits a notification if the removed entry requested one.
	Remove(key string) ([]byte, bool)

	// AddInterned stores key with PolicyInterned.
	AddInterned(key string, val []byte) liberr.Error

	// Keys returns the non-expired keys matching pattern, interned keys
	// included. Pattern is a case-insensitive regex; MatchAll
	// short-circuits; a malformed pattern matches nothing.
	Keys(pattern string) []string

	// Clear removes every non-interned entry without emitting individual
	// notifications and returns the removed keys.
	Clear() []string

	// Len returns the number of live entries, interned included.
	Len() int

	// Size returns the memory currently attributed to the store, in bytes.
	Size() int64

	// Expire reaps every entry found expired, emitting notifications for
	// those that requested one, and returns the reaped count.
	Expire() int

	// Trim evicts non-interned entries in least-recently-accessed order
	// until the store's attributed memory is back under the configured
	// fraction of the host memory ceiling. Returns the evicted count.
	Trim() int

	// Driver exposes the backing table through the generic key/value
	// driver surface (List, Search, Walk over live entries).
	Driver() libkvt.KVDriver[string, []byte]

	// RegisterFuncNotify sets the removal-notification sink.
	RegisterFuncNotify(fn FuncNotify)

	// RegisterLogger sets the logger used for sweep summaries.
	RegisterLogger(fn liblog.FuncLog)
}

// New returns an empty Store using prv to transform values at the storage
// boundary and bounding non-interned memory to memLimitPercent of the host
// memory ceiling. A nil prv stores values verbatim; memLimitPercent
// outside [5,90] is clamped.
func New(prv Provider, memLimitPercent int) Store {
	if prv == nil {
		prv = &plain{}
	}

	if memLimitPercent < MinMemoryLimitPercent {
		memLimitPercent = MinMemoryLimitPercent
	} else if memLimitPercent > MaxMemoryLimitPercent {
		memLimitPercent = MaxMemoryLimitPercent
	}

	s := &st{
		tbl: libatm.NewMapTyped[string, *entry](),
		prv: prv,
		pct: memLimitPercent,
	}

	s.drv = s.newDriver()

	return s
}

// isBlankKey reports whether key is empty or whitespace-only, which the
// store rejects at the API boundary.
func isBlankKey(key string) bool {
	return strings.TrimSpace(key) == ""
}
