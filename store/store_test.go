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

package store_test

import (
	"fmt"
	"sync"
	"time"

	libsto "github.com/nabbar/cachehost/store"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newPlainStore() libsto.Store {
	return libsto.New(nil, 90)
}

var _ = Describe("Store", func() {
	var sto libsto.Store

	BeforeEach(func() {
		sto = newPlainStore()
	})

	Describe("Set and Get", func() {
		It("round-trips a value", func() {
			Expect(sto.Set("k1", []byte("v1"), libsto.Options{})).To(BeNil())

			v, ok := sto.Get("k1")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal([]byte("v1")))
		})

		It("keeps the latest value on replacement", func() {
			Expect(sto.Set("k", []byte("v1"), libsto.Options{})).To(BeNil())
			Expect(sto.Set("k", []byte("v2"), libsto.Options{})).To(BeNil())

			v, ok := sto.Get("k")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal([]byte("v2")))
			Expect(sto.Len()).To(Equal(1))
		})

		It("stores an empty value", func() {
			Expect(sto.Set("k", []byte{}, libsto.Options{})).To(BeNil())

			v, ok := sto.Get("k")
			Expect(ok).To(BeTrue())
			Expect(v).To(BeEmpty())
		})

		It("rejects empty and whitespace-only keys with no state change", func() {
			Expect(sto.Set("", []byte("v"), libsto.Options{})).ToNot(BeNil())
			Expect(sto.Set("   ", []byte("v"), libsto.Options{})).ToNot(BeNil())
			Expect(sto.Len()).To(Equal(0))
		})

		It("misses on an unknown key", func() {
			_, ok := sto.Get("nope")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Expiration", func() {
		It("expires an absolute entry at its instant", func() {
			opt := libsto.Options{
				Policy:   libsto.PolicyAbsolute,
				ExpireAt: time.Now().Add(40 * time.Millisecond),
			}
			Expect(sto.Set("k", []byte("v"), opt)).To(BeNil())

			_, ok := sto.Get("k")
			Expect(ok).To(BeTrue())

			time.Sleep(60 * time.Millisecond)

			_, ok = sto.Get("k")
			Expect(ok).To(BeFalse())
			Expect(sto.Len()).To(Equal(0))
		})

		It("refreshes a sliding entry on each successful read", func() {
			opt := libsto.Options{
				Policy:  libsto.PolicySliding,
				Sliding: 80 * time.Millisecond,
			}
			Expect(sto.Set("k", []byte("v"), opt)).To(BeNil())

			for i := 0; i < 3; i++ {
				time.Sleep(40 * time.Millisecond)
				_, ok := sto.Get("k")
				Expect(ok).To(BeTrue())
			}

			time.Sleep(120 * time.Millisecond)

			_, ok := sto.Get("k")
			Expect(ok).To(BeFalse())
		})

		It("does not refresh a sliding entry on Remove of another key", func() {
			opt := libsto.Options{
				Policy:  libsto.PolicySliding,
				Sliding: 50 * time.Millisecond,
			}
			Expect(sto.Set("k", []byte("v"), opt)).To(BeNil())

			time.Sleep(70 * time.Millisecond)
			sto.Remove("other")

			_, ok := sto.Get("k")
			Expect(ok).To(BeFalse())
		})

		It("reaps expired entries on a sweep and notifies flagged ones", func() {
			var (
				mu   sync.Mutex
				seen []string
			)

			sto.RegisterFuncNotify(func(key string) {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, key)
			})

			opt := libsto.Options{
				Policy:          libsto.PolicyAbsolute,
				ExpireAt:        time.Now().Add(30 * time.Millisecond),
				NotifyOnRemoval: true,
			}
			Expect(sto.Set("k1", []byte("v"), opt)).To(BeNil())

			opt.NotifyOnRemoval = false
			Expect(sto.Set("k2", []byte("v"), opt)).To(BeNil())

			time.Sleep(50 * time.Millisecond)

			Expect(sto.Expire()).To(Equal(2))

			mu.Lock()
			defer mu.Unlock()
			Expect(seen).To(ConsistOf("k1"))
		})
	})

	Describe("Notifications", func() {
		var (
			mu   sync.Mutex
			seen []string
		)

		BeforeEach(func() {
			seen = nil
			sto.RegisterFuncNotify(func(key string) {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, key)
			})
		})

		notified := func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), seen...)
		}

		It("notifies when a flagged entry is replaced", func() {
			Expect(sto.Set("k", []byte("v1"), libsto.Options{NotifyOnRemoval: true})).To(BeNil())
			Expect(notified()).To(BeEmpty())

			Expect(sto.Set("k", []byte("v2"), libsto.Options{NotifyOnRemoval: true})).To(BeNil())
			Expect(notified()).To(Equal([]string{"k"}))
		})

		It("notifies when a flagged entry is removed", func() {
			Expect(sto.Set("k", []byte("v"), libsto.Options{NotifyOnRemoval: true})).To(BeNil())

			v, ok := sto.Remove("k")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal([]byte("v")))
			Expect(notified()).To(Equal([]string{"k"}))
		})

		It("stays silent for unflagged entries", func() {
			Expect(sto.Set("k", []byte("v1"), libsto.Options{})).To(BeNil())
			Expect(sto.Set("k", []byte("v2"), libsto.Options{})).To(BeNil())
			sto.Remove("k")

			Expect(notified()).To(BeEmpty())
		})

		It("removing twice emits a single notification", func() {
			Expect(sto.Set("k", []byte("v"), libsto.Options{NotifyOnRemoval: true})).To(BeNil())

			_, ok := sto.Remove("k")
			Expect(ok).To(BeTrue())
			_, ok = sto.Remove("k")
			Expect(ok).To(BeFalse())

			Expect(notified()).To(Equal([]string{"k"}))
		})
	})

	Describe("Interned region", func() {
		It("never expires nor notifies", func() {
			var count int
			sto.RegisterFuncNotify(func(string) { count++ })

			Expect(sto.AddInterned("cfg", []byte("v"))).To(BeNil())
			Expect(sto.AddInterned("cfg", []byte("v2"))).To(BeNil())

			v, ok := sto.Get("cfg")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal([]byte("v2")))
			Expect(count).To(Equal(0))
		})

		It("survives Clear while regular entries are removed", func() {
			Expect(sto.AddInterned("cfg", []byte("v"))).To(BeNil())
			Expect(sto.Set("k1", []byte("v"), libsto.Options{})).To(BeNil())
			Expect(sto.Set("k2", []byte("v"), libsto.Options{})).To(BeNil())

			removed := sto.Clear()
			Expect(removed).To(ConsistOf("k1", "k2"))

			_, ok := sto.Get("cfg")
			Expect(ok).To(BeTrue())
			Expect(sto.Len()).To(Equal(1))
		})

		It("remains enumerable through Keys", func() {
			Expect(sto.AddInterned("cfg", []byte("v"))).To(BeNil())
			Expect(sto.Keys(libsto.MatchAll)).To(ConsistOf("cfg"))
		})
	})

	Describe("Keys", func() {
		BeforeEach(func() {
			Expect(sto.Set("order-1", []byte("a"), libsto.Options{})).To(BeNil())
			Expect(sto.Set("order-2", []byte("b"), libsto.Options{})).To(BeNil())
			Expect(sto.Set("invoice-1", []byte("c"), libsto.Options{})).To(BeNil())
		})

		It("matches all with the star shorthand", func() {
			Expect(sto.Keys(libsto.MatchAll)).To(HaveLen(3))
		})

		It("filters with a case-insensitive regex", func() {
			Expect(sto.Keys("^ORDER-")).To(ConsistOf("order-1", "order-2"))
		})

		It("treats a malformed pattern as matching nothing", func() {
			Expect(sto.Keys("([")).To(BeNil())
		})
	})

	Describe("Driver surface", func() {
		It("lists, walks and searches live entries", func() {
			Expect(sto.Set("a-1", []byte("x"), libsto.Options{})).To(BeNil())
			Expect(sto.Set("a-2", []byte("y"), libsto.Options{})).To(BeNil())
			Expect(sto.Set("b-1", []byte("z"), libsto.Options{})).To(BeNil())

			drv := sto.Driver()

			l, err := drv.List()
			Expect(err).To(BeNil())
			Expect(l).To(HaveLen(3))

			var val []byte
			Expect(drv.Get("a-1", &val)).To(BeNil())
			Expect(val).To(Equal([]byte("x")))

			found, err := drv.Search("a-")
			Expect(err).To(BeNil())
			Expect(found).To(ConsistOf("a-1", "a-2"))

			n := 0
			Expect(drv.Walk(func(_ string, _ []byte) bool {
				n++
				return true
			})).To(BeNil())
			Expect(n).To(Equal(3))
		})
	})

	Describe("Gzip provider", func() {
		It("round-trips a value through compression", func() {
			prv, err := libsto.GetProvider(libsto.ProviderGzip)
			Expect(err).To(BeNil())

			s := libsto.New(prv, 90)
			Expect(s.Set("k", []byte("hello hello hello"), libsto.Options{})).To(BeNil())

			v, ok := s.Get("k")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal([]byte("hello hello hello")))
		})

		It("rejects an unknown provider name", func() {
			_, err := libsto.GetProvider("zstd")
			Expect(err).ToNot(BeNil())
		})
	})

	Describe("Concurrency", func() {
		It("keeps exactly one live entry per key under concurrent writers", func() {
			var wg sync.WaitGroup

			values := make(map[string]struct{})
			var mu sync.Mutex

			for w := 0; w < 2; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < 10000; i++ {
						v := fmt.Sprintf("w%d-%d", w, i)
						mu.Lock()
						values[v] = struct{}{}
						mu.Unlock()
						Expect(sto.Set("shared", []byte(v), libsto.Options{})).To(BeNil())
					}
				}(w)
			}

			wg.Wait()

			v, ok := sto.Get("shared")
			Expect(ok).To(BeTrue())

			mu.Lock()
			_, known := values[string(v)]
			mu.Unlock()
			Expect(known).To(BeTrue())

			Expect(sto.Keys("^shared$")).To(HaveLen(1))
		})
	})
})
