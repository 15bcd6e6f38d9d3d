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

// Package metrics publishes the cache host's operational counters and
// gauges: live connections, store size, command throughput, evictions and
// broadcast drops.
package metrics

import (
	prmsdk "github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the engine's collectors. All methods are safe for
// concurrent use.
type Metrics interface {
	// Registry returns the registry every collector is registered on,
	// ready to be exposed by a scrape endpoint.
	Registry() *prmsdk.Registry

	// ConnInc records one accepted connection.
	ConnInc()
	// ConnDec records one closed connection.
	ConnDec()

	// Command records one dispatched command for the given verb.
	Command(verb string)

	// StoreSize records the store's current entry count and byte size.
	StoreSize(entries int, bytes int64)

	// Evicted records entries removed by an expiration or trim sweep.
	Evicted(n int)

	// BroadcastDropped records broadcast deliveries dropped for slow
	// subscribers.
	BroadcastDropped(n int)
}

// New returns a Metrics set registered on reg, or on a fresh private
// registry when reg is nil.
func New(reg *prmsdk.Registry) Metrics {
	if reg == nil {
		reg = prmsdk.NewRegistry()
	}

	m := &mtr{
		reg: reg,
		con: prmsdk.NewGauge(prmsdk.GaugeOpts{
			Namespace: "cachehost",
			Name:      "connections_open",
			Help:      "Number of currently served connections.",
		}),
		cmd: prmsdk.NewCounterVec(prmsdk.CounterOpts{
			Namespace: "cachehost",
			Name:      "commands_total",
			Help:      "Number of dispatched commands by verb.",
		}, []string{"verb"}),
		ent: prmsdk.NewGauge(prmsdk.GaugeOpts{
			Namespace: "cachehost",
			Name:      "store_entries",
			Help:      "Number of live entries in the store.",
		}),
		byt: prmsdk.NewGauge(prmsdk.GaugeOpts{
			Namespace: "cachehost",
			Name:      "store_bytes",
			Help:      "Memory attributed to the store, in bytes.",
		}),
		evc: prmsdk.NewCounter(prmsdk.CounterOpts{
			Namespace: "cachehost",
			Name:      "evictions_total",
			Help:      "Entries removed by expiration or memory-pressure sweeps.",
		}),
		drp: prmsdk.NewCounter(prmsdk.CounterOpts{
			Namespace: "cachehost",
			Name:      "broadcast_dropped_total",
			Help:      "Broadcast deliveries dropped for slow subscribers.",
		}),
	}

	reg.MustRegister(m.con, m.cmd, m.ent, m.byt, m.evc, m.drp)

	return m
}
