/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

package kvdriver

import (
	libkvt "github.com/nabbar/cachehost/database/kvtypes"
)

func (o *drv[K, M]) New() libkvt.KVDriver[K, M] {
	if o == nil || o.FctNew == nil {
		return nil
	}

	return o.FctNew()
}

func (o *drv[K, M]) Get(key K, model *M) error {
	if o == nil {
		return ErrorBadInstance.Error(nil)
	} else if o.FctGet == nil {
		return ErrorGetFunction.Error(nil)
	} else {
		m, e := o.FctGet(key)
		*model = m
		return e
	}
}

func (o *drv[K, M]) Set(key K, model M) error {
	if o == nil {
		return ErrorBadInstance.Error(nil)
	} else if o.FctSet == nil {
		return ErrorSetFunction.Error(nil)
	} else {
		return o.FctSet(key, model)
	}
}

func (o *drv[K, M]) Del(key K) error {
	if o == nil {
		return ErrorBadInstance.Error(nil)
	} else if o.FctDel == nil {
		return ErrorDelFunction.Error(nil)
	} else {
		return o.FctDel(key)
	}
}

func (o *drv[K, M]) List() ([]K, error) {
	if o == nil {
		return nil, ErrorBadInstance.Error(nil)
	} else if o.FctList == nil {
		return nil, ErrorListFunction.Error(nil)
	} else {
		return o.FctList()
	}
}

func (o *drv[K, M]) Search(pattern K) ([]K, error) {
	if o == nil {
		return nil, ErrorBadInstance.Error(nil)
	} else if o.FctSearch == nil {
		return o.fakeSearch(pattern)
	} else {
		return o.FctSearch(pattern)
	}
}

func (o *drv[K, M]) fakeSearch(pattern K) ([]K, error) {
	if o.FctCmp == nil {
		return nil, ErrorCompareFunction.Error(nil)
	}

	l, e := o.List()
	if e != nil {
		return nil, e
	}

	var res = make([]K, 0, len(l))
	for _, k := range l {
		if o.FctCmp.IsEmpty(pattern) || o.FctCmp.IsEqual(k, pattern) || o.FctCmp.IsContains(k, pattern) {
			res = append(res, k)
		}
	}

	return res, nil
}

func (o *drv[K, M]) Walk(fct libkvt.FctWalk[K, M]) error {
	if o == nil {
		return ErrorBadInstance.Error(nil)
	} else if fct == nil {
		return ErrorFunctionParams.Error(nil)
	} else if o.FctWalk == nil {
		return o.fakeWalk(fct)
	} else {
		return o.FctWalk(fct)
	}
}

func (o *drv[K, M]) fakeWalk(fct libkvt.FctWalk[K, M]) error {
	if l, e := o.List(); e != nil {
		return e
	} else {
		for _, k := range l {
			var m = *(new(M))

			if er := o.Get(k, &m); er != nil {
				return er
			}

			if !fct(k, m) {
				return nil
			}
		}
	}

	return nil
}
