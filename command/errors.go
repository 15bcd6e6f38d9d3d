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

package command

import (
	"fmt"

	liberr "github.com/nabbar/cachehost/errors"
)

const pkgName = "cachehost/command"

const (
	ErrorUnknownVerb liberr.CodeError = iota + liberr.MinPkgCacheCommand
	ErrorBadArity
	ErrorMissingOperand
	ErrorBadBase64
	ErrorBadDate
	ErrorBadInteger
)

func init() {
	if liberr.ExistInMapMessage(ErrorUnknownVerb) {
		panic(fmt.Errorf("error code collision with package %s", pkgName))
	}
	liberr.RegisterIdFctMessage(ErrorUnknownVerb, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case liberr.UnknownError:
		return liberr.NullMessage
	case ErrorUnknownVerb:
		return "unrecognized command verb"
	case ErrorBadArity:
		return "operand count does not match the expected key/value arity"
	case ErrorMissingOperand:
		return "a flag is missing its required operand"
	case ErrorBadBase64:
		return "value token is not valid base64"
	case ErrorBadDate:
		return "absolute expiration token is not a valid yyMMddHHmmss date"
	case ErrorBadInteger:
		return "sliding expiration token is not a valid integer number of seconds"
	}

	return liberr.NullMessage
}
