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

package cache

import (
	"context"
	"time"

	libatm "github.com/nabbar/cachehost/atomic"
	cchitm "github.com/nabbar/cachehost/cache/item"
)

// cc is the internal implementation of the Cache interface: a typed atomic
// map of key to CacheItem, sharing one expiration duration.
type cc[K comparable, V any] struct {
	context.Context

	n context.CancelFunc
	v libatm.MapTyped[K, cchitm.CacheItem[V]]
	e time.Duration
}

func (o *cc[K, V]) Clone(ctx context.Context) (Cache[K, V], error) {
	if e := o.Err(); e != nil {
		return nil, e
	}

	if ctx == nil {
		ctx = o.Context
	}

	n := New[K, V](ctx, o.e)

	o.Walk(func(k K, v V, _ time.Duration) bool {
		n.Store(k, v)
		return true
	})

	return n, nil
}

func (o *cc[K, V]) Merge(c Cache[K, V]) {
	if c == nil {
		return
	}

	c.Walk(func(k K, v V, _ time.Duration) bool {
		if _, ok := o.v.Load(k); !ok {
			o.Store(k, v)
		}
		return true
	})
}

func (o *cc[K, V]) Walk(fct func(K, V, time.Duration) bool) {
	if fct == nil {
		return
	}

	o.v.Range(func(key K, itm cchitm.CacheItem[V]) bool {
		if v, r, ok := itm.LoadRemain(); ok {
			return fct(key, v, r)
		}

		o.v.Delete(key)
		return true
	})
}

func (o *cc[K, V]) Load(key K) (V, time.Duration, bool) {
	var zero V

	if o.Err() != nil {
		return zero, 0, false
	}

	itm, ok := o.v.Load(key)
	if !ok {
		return zero, 0, false
	}

	v, r, ok := itm.LoadRemain()
	if !ok {
		o.v.Delete(key)
		return zero, 0, false
	}

	return v, r, true
}

func (o *cc[K, V]) Store(key K, val V) {
	if itm, ok := o.v.Load(key); ok {
		itm.Store(val)
		return
	}

	o.v.Store(key, cchitm.New[V](o.e, val))
}

func (o *cc[K, V]) Delete(key K) {
	if itm, ok := o.v.LoadAndDelete(key); ok {
		itm.Clean()
	}
}

func (o *cc[K, V]) LoadOrStore(key K, val V) (V, time.Duration, bool) {
	var zero V

	if v, r, ok := o.Load(key); ok {
		return v, r, true
	}

	o.Store(key, val)
	return zero, 0, false
}

func (o *cc[K, V]) LoadAndDelete(key K) (V, bool) {
	var zero V

	if o.Err() != nil {
		return zero, false
	}

	itm, ok := o.v.LoadAndDelete(key)
	if !ok {
		return zero, false
	}

	v, ok := itm.Load()
	itm.Clean()

	return v, ok
}

func (o *cc[K, V]) Swap(key K, val V) (V, time.Duration, bool) {
	var zero V

	if o.Err() != nil {
		return zero, 0, false
	}

	itm, ok := o.v.Load(key)
	if !ok {
		o.Store(key, val)
		return zero, 0, false
	}

	v, r, ok := itm.LoadRemain()
	itm.Store(val)

	if !ok {
		return zero, 0, false
	}

	return v, r, true
}
