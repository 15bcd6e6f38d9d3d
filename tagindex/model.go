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

package tagindex

import (
	"regexp"
	"sync"

	libpat "github.com/nabbar/cachehost/pattern"
)

type idx struct {
	m   sync.RWMutex
	fwd map[string]map[string]struct{}
	rev map[string]string
}

func (o *idx) AddOrUpdate(key, tag string) {
	if key == "" || tag == "" {
		return
	}

	o.m.Lock()
	defer o.m.Unlock()

	o.unbind(key)

	s, ok := o.fwd[tag]
	if !ok {
		s = make(map[string]struct{})
		o.fwd[tag] = s
	}

	s[key] = struct{}{}
	o.rev[key] = tag
}

func (o *idx) Remove(key string) {
	o.m.Lock()
	defer o.m.Unlock()

	o.unbind(key)
}

// unbind drops key's current binding. Caller holds the write lock.
func (o *idx) unbind(key string) {
	t, ok := o.rev[key]
	if !ok {
		return
	}

	delete(o.rev, key)

	if s, ok := o.fwd[t]; ok {
		delete(s, key)
		if len(s) == 0 {
			delete(o.fwd, t)
		}
	}
}

func (o *idx) Tag(key string) (string, bool) {
	o.m.RLock()
	defer o.m.RUnlock()

	t, ok := o.rev[key]
	return t, ok
}

func (o *idx) Tags() []string {
	o.m.RLock()
	defer o.m.RUnlock()

	res := make([]string, 0, len(o.fwd))
	for t := range o.fwd {
		res = append(res, t)
	}

	return res
}

func (o *idx) GetTaggedKeys(tag, pattern string) []string {
	var rex *regexp.Regexp

	if r, e := libpat.Compile(pattern); e != nil {
		// malformed pattern means "match nothing", not an error
		return nil
	} else {
		rex = r
	}

	o.m.RLock()
	defer o.m.RUnlock()

	s, ok := o.fwd[tag]
	if !ok {
		return nil
	}

	res := make([]string, 0, len(s))
	for k := range s {
		if rex == nil || rex.MatchString(k) {
			res = append(res, k)
		}
	}

	return res
}

func (o *idx) Clear() {
	o.m.Lock()
	defer o.m.Unlock()

	o.fwd = make(map[string]map[string]struct{})
	o.rev = make(map[string]string)
}
