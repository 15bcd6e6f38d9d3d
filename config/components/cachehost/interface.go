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

// Package cachehost registers the cache-host engine as a configuration
// component: its section of the viper tree maps to the engine Config, its
// flags bind to the cobra command, and the component lifecycle drives the
// engine's Start/Reload/Stop.
package cachehost

import (
	cchsrv "github.com/nabbar/cachehost/cachehost"
	libcfg "github.com/nabbar/cachehost/config"
	liblog "github.com/nabbar/cachehost/logger"
)

// ComponentType identifies this component kind in the registry.
const ComponentType = "cachehost"

// CptCacheHost is the engine's configuration-component surface.
type CptCacheHost interface {
	libcfg.Component

	// GetEngine returns the running engine, or nil before Start.
	GetEngine() cchsrv.Engine

	// SetLogger sets the logger handed to the engine at next start.
	SetLogger(fn liblog.FuncLog)
}

// New returns an unstarted cache-host component.
func New() CptCacheHost {
	return &componentCacheHost{}
}

// Register stores the component in cfg under key.
func Register(cfg libcfg.Config, key string, cpt CptCacheHost) {
	cfg.ComponentSet(key, cpt)
}

// RegisterNew creates and stores a new component in cfg under key.
func RegisterNew(cfg libcfg.Config, key string) {
	cfg.ComponentSet(key, New())
}

// Load retrieves a registered cache-host component by key.
func Load(getCpt libcfg.FuncComponentGet, key string) CptCacheHost {
	if getCpt == nil {
		return nil
	} else if c := getCpt(key); c == nil {
		return nil
	} else if h, ok := c.(CptCacheHost); !ok {
		return nil
	} else {
		return h
	}
}
