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

// Package pattern compiles the case-insensitive key-matching expressions
// used by key enumeration and tag lookups, memoizing compilations so hot
// patterns are compiled once instead of on every command.
package pattern

import (
	"context"
	"regexp"
	"time"

	libcch "github.com/nabbar/cachehost/cache"
)

// MatchAll is the shorthand matching every key without engaging the regex
// engine. Compile returns a nil regex for it.
const MatchAll = "*"

// memoTTL bounds how long an idle compiled pattern stays cached.
const memoTTL = 5 * time.Minute

var memo = libcch.New[string, *regexp.Regexp](context.Background(), memoTTL)

// Compile returns the case-insensitive regex for p, or (nil, nil) when p
// is MatchAll or empty. A malformed expression returns an error; callers
// follow the tag-index convention and treat it as matching nothing.
func Compile(p string) (*regexp.Regexp, error) {
	if p == MatchAll || p == "" {
		return nil, nil
	}

	if r, _, ok := memo.Load(p); ok {
		return r, nil
	}

	r, err := regexp.Compile("(?i)" + p)
	if err != nil {
		return nil, err
	}

	memo.Store(p, r)

	return r, nil
}
