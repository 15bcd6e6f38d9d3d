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
	"sort"
	"time"

	loglvl "github.com/nabbar/cachehost/logger/level"
	psumem "github.com/shirou/gopsutil/mem"
)

const (
	// MinMemoryLimitPercent is the lowest accepted memory-limit fraction.
	MinMemoryLimitPercent = 5
	// MaxMemoryLimitPercent is the highest accepted memory-limit fraction.
	MaxMemoryLimitPercent = 90

	// DefaultTrimInterval is the period between two trimmer passes.
	DefaultTrimInterval = 15 * time.Second
)

// memCeiling returns the number of bytes the store may use: the configured
// percentage of the host's total memory. Zero when host memory cannot be
// read, which disables trimming for this pass.
func (o *st) memCeiling() int64 {
	vm, err := psumem.VirtualMemory()
	if err != nil || vm == nil {
		o.logEntry(loglvl.WarnLevel, "cannot read host memory, skipping trim pass")
		return 0
	}

	return int64(vm.Total) * int64(o.pct) / 100
}

func (o *st) Trim() int {
	limit := o.memCeiling()
	if limit <= 0 || o.sz.Load() <= limit {
		return 0
	}

	type cand struct {
		e    *entry
		last time.Time
	}

	// one bounded collection pass; user operations proceed concurrently
	cands := make([]cand, 0)
	o.tbl.Range(func(_ string, e *entry) bool {
		if e.policy != PolicyInterned {
			cands = append(cands, cand{e: e, last: e.lastAccess()})
		}
		return true
	})

	sort.Slice(cands, func(i, j int) bool {
		return cands[i].last.Before(cands[j].last)
	})

	n := 0
	for _, c := range cands {
		if o.sz.Load() <= limit {
			break
		}
		if o.reap(c.e, true) {
			n++
		}
	}

	if n > 0 {
		o.logEntry(loglvl.InfoLevel, "memory trim evicted %d entries, store size now %d bytes", n, o.sz.Load())
	}

	return n
}
