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
	"fmt"

	libcfg "github.com/nabbar/cachehost/config"
	liberr "github.com/nabbar/cachehost/errors"
)

const pkgName = "config/components/cachehost"

const (
	ErrorComponentParams liberr.CodeError = iota + libcfg.MinErrorComponentEngine
	ErrorComponentConfig
	ErrorComponentStart
	ErrorComponentStop
)

func init() {
	if liberr.ExistInMapMessage(ErrorComponentParams) {
		panic(fmt.Errorf("error code collision with package %s", pkgName))
	}
	liberr.RegisterIdFctMessage(ErrorComponentParams, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case liberr.UnknownError:
		return liberr.NullMessage
	case ErrorComponentParams:
		return "component called with invalid parameters"
	case ErrorComponentConfig:
		return "cache-host component cannot load its configuration section"
	case ErrorComponentStart:
		return "cache-host component cannot start its engine"
	case ErrorComponentStop:
		return "cache-host component cannot stop its engine"
	}

	return liberr.NullMessage
}
