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

// Package cachehost composes the cache-host engine: the framed TCP
// listener, the value store with its periodic trimmer, the tag index and
// the broadcast bus, wired together behind a single Start/Stop lifecycle.
package cachehost

import (
	"context"
	"time"

	libuid "github.com/google/uuid"
	libbrd "github.com/nabbar/cachehost/broadcast"
	libmet "github.com/nabbar/cachehost/cachehost/metrics"
	liberr "github.com/nabbar/cachehost/errors"
	liblog "github.com/nabbar/cachehost/logger"
	librun "github.com/nabbar/cachehost/runner/startStop"
	libtck "github.com/nabbar/cachehost/runner/ticker"
	libsto "github.com/nabbar/cachehost/store"
	libtag "github.com/nabbar/cachehost/tagindex"
)

// Engine is one cache host: a value store, a tag index and a broadcast bus
// served over a framed TCP listener.
type Engine interface {
	// Start brings up the listener and the periodic trimmer. It returns
	// once the listener accepts connections.
	Start(ctx context.Context) liberr.Error

	// Stop cancels the acceptor, closes the listening socket, waits for
	// in-flight dispatches bounded by ctx, then shuts connections down.
	// Idempotent.
	Stop(ctx context.Context) liberr.Error

	// Restart stops then starts the engine.
	Restart(ctx context.Context) liberr.Error

	// IsRunning reports whether the listener is serving.
	IsRunning() bool

	// Uptime reports the duration since the current run started, or zero.
	Uptime() time.Duration

	// OpenConnections reports the number of connections currently served.
	OpenConnections() int64

	// Store exposes the engine's value store.
	Store() libsto.Store

	// Tags exposes the engine's tag index.
	Tags() libtag.TagIndex

	// Bus exposes the engine's broadcast bus.
	Bus() libbrd.Bus

	// Metrics exposes the engine's metric collectors and their registry.
	Metrics() libmet.Metrics

	// RegisterLogger sets the logger used by the engine and every
	// component it owns.
	RegisterLogger(fn liblog.FuncLog)
}

// New validates cfg and assembles a stopped Engine.
func New(cfg Config) (Engine, liberr.Error) {
	if err := cfg.Validate(); err != nil {
		return nil, ErrorInvalidConfig.Error(err)
	}

	prv, err := libsto.GetProvider(cfg.StorageProvider)
	if err != nil {
		return nil, ErrorInvalidConfig.Error(err)
	}

	e := &engine{
		cfg: cfg,
		rid: libuid.NewString(),
		sto: libsto.New(prv, cfg.CacheMemoryLimitPercentage),
		tix: libtag.New(),
		bus: libbrd.New(),
		met: libmet.New(nil),
	}

	e.sto.RegisterFuncNotify(e.notifyExpire)

	e.tck = libtck.New(cfg.TrimInterval.Time(), e.tick)
	e.run = librun.New(e.startRun, e.stopRun)

	return e, nil
}

// newConnID mints a stable id for a connection's registration on the bus.
func newConnID() string {
	return libuid.NewString()
}
