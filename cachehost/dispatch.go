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
	libcmd "github.com/nabbar/cachehost/command"
	libsto "github.com/nabbar/cachehost/store"
)

// dispatch parses one command's tokens and runs it against the store and
// the tag index. A nil result means no reply frame at all, the
// fire-and-forget contract of del and clear.
func (e *engine) dispatch(tokens []byte) []byte {
	req, err := libcmd.Parse(tokens)
	if err != nil {
		if err.IsCode(libcmd.ErrorUnknownVerb) {
			return libcmd.EncodeLiteral(libcmd.InvalidCommand)
		}
		// recognized verb, malformed operands: empty-body reply
		return libcmd.EncodeEmpty()
	}

	e.met.Command(string(req.Verb))

	switch req.Verb {
	case libcmd.VerbGet:
		return e.doGet(req)
	case libcmd.VerbSet:
		return e.doSet(req)
	case libcmd.VerbDel:
		e.doDel(req)
		return nil
	case libcmd.VerbKeys:
		return libcmd.EncodeKeys(e.doKeys(req))
	case libcmd.VerbClear:
		e.doClear()
		return nil
	}

	return libcmd.EncodeLiteral(libcmd.InvalidCommand)
}

func (e *engine) doGet(req *libcmd.Request) []byte {
	var keys []string

	if req.Tagged {
		keys = e.taggedKeys(req.Pattern, req.Tags)
	} else {
		keys = req.Keys
	}

	values := make([][]byte, 0, len(keys))
	for _, k := range keys {
		// a key listed by the tag index but gone from the store is
		// skipped, reconciling the two at read time
		if v, ok := e.sto.Get(k); ok {
			values = append(values, v)
		}
	}

	return libcmd.EncodeValues(values)
}

func (e *engine) doSet(req *libcmd.Request) []byte {
	opt := setOptions(req.Flags)

	for _, p := range req.Pairs {
		if err := e.sto.Set(p.Key, p.Value, opt); err != nil {
			continue
		}
		if req.Flags.HasTag {
			e.tix.AddOrUpdate(p.Key, req.Flags.Tag)
		}
	}

	return libcmd.EncodeEmpty()
}

func (e *engine) doDel(req *libcmd.Request) {
	keys := req.Keys
	if req.Tagged {
		keys = e.taggedKeys(req.Pattern, req.Tags)
	}

	for _, k := range keys {
		e.sto.Remove(k)
		e.tix.Remove(k)
	}
}

func (e *engine) doKeys(req *libcmd.Request) []string {
	if req.Tagged {
		return e.taggedKeys(req.Pattern, req.Tags)
	}

	return e.sto.Keys(req.Pattern)
}

func (e *engine) doClear() {
	for _, k := range e.sto.Clear() {
		e.tix.Remove(k)
	}
}

// taggedKeys enumerates the keys of every listed tag filtered by pattern.
// Unknown tags and malformed patterns contribute nothing.
func (e *engine) taggedKeys(pattern string, tags []string) []string {
	res := make([]string, 0)

	for _, t := range tags {
		res = append(res, e.tix.GetTaggedKeys(t, pattern)...)
	}

	return res
}

// setOptions maps parsed set flags to store options, the flag precedence
// already resolved by the parser.
func setOptions(f libcmd.SetFlags) libsto.Options {
	switch {
	case f.Interned:
		return libsto.Options{Policy: libsto.PolicyInterned}
	case f.HasAbsolute:
		return libsto.Options{
			Policy:          libsto.PolicyAbsolute,
			ExpireAt:        f.Absolute,
			NotifyOnRemoval: f.NotifyOnRemoval,
		}
	case f.HasSliding:
		return libsto.Options{
			Policy:          libsto.PolicySliding,
			Sliding:         f.Sliding,
			NotifyOnRemoval: f.NotifyOnRemoval,
		}
	default:
		return libsto.Options{NotifyOnRemoval: f.NotifyOnRemoval}
	}
}
