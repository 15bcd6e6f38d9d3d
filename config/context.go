/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package config

import (
	libctx "github.com/nabbar/cachehost/context"
)

// Context returns the shared engine context for all components.
// This context is used for:
//   - Storing shared application state (key-value pairs)
//   - Coordinating cancellation across components
//   - Providing context to component operations
//
// The context is thread-safe and can be accessed concurrently by multiple components.
func (c *configModel) Context() libctx.Config[string] {
	return c.ctx
}

// CancelAdd registers custom functions to execute on context cancellation.
// These functions are called before Stop() when:
//   - Application receives termination signals (SIGINT, SIGTERM, SIGQUIT)
//   - Shutdown() is called explicitly
//   - The shared context is cancelled
//
// Thread-safe: uses an atomic map, safe for concurrent registration.
func (c *configModel) CancelAdd(fct ...func()) {
	for _, f := range fct {
		if f == nil {
			continue
		}

		n := c.seq.Add(1)
		c.cnl.Store(n, f)
	}
}

// CancelClean removes all registered cancel functions.
// This resets the cancellation handler list to empty without touching components.
func (c *configModel) CancelClean() {
	c.cnl.Walk(func(k uint64, _ interface{}) bool {
		c.cnl.Delete(k)
		return true
	})
}

// cancel executes all registered cancel functions and then stops all components.
// Called automatically when the shared context is cancelled or Shutdown() is invoked.
func (c *configModel) cancel() {
	c.cnl.Walk(func(k uint64, v interface{}) bool {
		c.cnl.Delete(k)
		if f, ok := v.(func()); ok && f != nil {
			f()
		}
		return true
	})

	c.Stop()
}

func (c *configModel) watchCancel() {
	go func() {
		<-c.ctx.Done()
		c.cancel()
	}()
}
