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
	"bytes"
	"compress/gzip"
	"io"
	"sync"

	liberr "github.com/nabbar/cachehost/errors"
)

const (
	// ProviderPlain stores values verbatim.
	ProviderPlain = "plain"
	// ProviderGzip compresses values before storage, decompresses on read.
	ProviderGzip = "gzip"
)

// Provider transforms values at the storage boundary. The core still sees
// opaque byte strings: the transform runs inside the Store only.
type Provider interface {
	Name() string
	Encode(val []byte) ([]byte, error)
	Decode(val []byte) ([]byte, error)
}

// FuncProvider constructs a Provider. Registered under a name so process
// configuration can select one of the known kinds without reflection.
type FuncProvider func() Provider

var (
	prvMu  sync.Mutex
	prvReg = map[string]FuncProvider{
		ProviderPlain: func() Provider { return &plain{} },
		ProviderGzip:  func() Provider { return &gz{} },
	}
)

// RegisterProvider adds or replaces the constructor bound to name.
func RegisterProvider(name string, fct FuncProvider) {
	prvMu.Lock()
	defer prvMu.Unlock()
	prvReg[name] = fct
}

// GetProvider constructs the Provider registered under name.
func GetProvider(name string) (Provider, liberr.Error) {
	prvMu.Lock()
	fct, ok := prvReg[name]
	prvMu.Unlock()

	if !ok || fct == nil {
		return nil, ErrorUnknownProvider.Error(nil)
	}

	return fct(), nil
}

type plain struct{}

func (p *plain) Name() string {
	return ProviderPlain
}

func (p *plain) Encode(val []byte) ([]byte, error) {
	return val, nil
}

func (p *plain) Decode(val []byte) ([]byte, error) {
	return val, nil
}

type gz struct{}

func (g *gz) Name() string {
	return ProviderGzip
}

func (g *gz) Encode(val []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)

	if _, err := w.Write(val); err != nil {
		_ = w.Close()
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *gz) Decode(val []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(val))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = r.Close()
	}()

	return io.ReadAll(r)
}
