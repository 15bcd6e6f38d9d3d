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

package cachehost

import (
	"context"
	"sync"

	liblog "github.com/nabbar/cachehost/logger"
)

// FuncLoggerKind constructs a Logger for a kind named in configuration.
type FuncLoggerKind func(ctx context.Context) liblog.Logger

var (
	lkMu  sync.Mutex
	lkReg = map[string]FuncLoggerKind{}
)

// RegisterLoggerKind binds a logger constructor to a name usable as the
// customLogger configuration option.
func RegisterLoggerKind(name string, fct FuncLoggerKind) {
	lkMu.Lock()
	defer lkMu.Unlock()
	lkReg[name] = fct
}

// LoggerByKind resolves the logger kind named in configuration. An empty
// or unknown name, or a constructor yielding nil, falls back to the
// default logger.
func LoggerByKind(ctx context.Context, name string) liblog.FuncLog {
	var log liblog.Logger

	if name != "" {
		lkMu.Lock()
		fct := lkReg[name]
		lkMu.Unlock()

		if fct != nil {
			log = fct(ctx)
		}
	}

	if log == nil {
		log = liblog.New(ctx)
	}

	return func() liblog.Logger {
		return log
	}
}
