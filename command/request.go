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
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	liberr "github.com/nabbar/cachehost/errors"
)

// absoluteLayout is the yyMMddHHmmss wire layout for absolute
// expirations, assumed UTC.
const absoluteLayout = "060102150405"

// Pair is a decoded (key, value) operand couple for the set verb.
type Pair struct {
	Key   string
	Value []byte
}

// SetFlags carries the parsed flag tokens preceding a set verb's key/value
// pairs, precedence already resolved by Parse: Interned beats everything,
// Absolute beats Sliding.
type SetFlags struct {
	Interned        bool
	Tag             string
	HasTag          bool
	Absolute        time.Time
	HasAbsolute     bool
	Sliding         time.Duration
	HasSliding      bool
	NotifyOnRemoval bool
}

// Request is the structured form of one dispatched command.
type Request struct {
	Verb Verb

	// Tagged is true when the operands used the "-t tag..." form (get/del/keys).
	Tagged  bool
	Pattern string
	Tags    []string

	// Keys is the plain key list for get/del, or the key list for keys
	// enumeration results is not applicable here (that's a response concern).
	Keys []string

	// Pairs is the decoded (key, value) list for set.
	Pairs []Pair
	Flags SetFlags
}

// Parse turns a frame payload's tokens (the bytes after the message-type
// byte) into a Request. It returns a liberr.Error carrying ErrorUnknownVerb
// for an unrecognized verb, or one of the arity/operand/encoding error
// codes for a malformed but recognized verb.
func Parse(tokens []byte) (*Request, liberr.Error) {
	fields := strings.Fields(string(tokens))
	if len(fields) == 0 {
		return nil, ErrorUnknownVerb.Error(nil)
	}

	verb := Verb(strings.ToLower(fields[0]))
	operands := fields[1:]

	switch verb {
	case VerbGet:
		return parseGet(operands)
	case VerbSet:
		return parseSet(operands)
	case VerbDel:
		return parseDel(operands)
	case VerbKeys:
		return parseKeys(operands)
	case VerbClear:
		if len(operands) != 0 {
			return nil, ErrorBadArity.Error(nil)
		}
		return &Request{Verb: VerbClear}, nil
	default:
		return nil, ErrorUnknownVerb.Error(nil)
	}
}

// splitTagged recognizes the common "pattern -t tag1 ... tagN" shape used
// by get/del/keys tagged operands. ok is false when the shape does not
// match (no "-t" at index 1), in which case the caller falls back to its
// untagged parsing.
func splitTagged(operands []string) (pattern string, tags []string, ok bool) {
	if len(operands) >= 2 && operands[1] == "-t" {
		return operands[0], operands[2:], true
	}
	return "", nil, false
}

func parseGet(operands []string) (*Request, liberr.Error) {
	if pattern, tags, ok := splitTagged(operands); ok {
		if len(tags) == 0 {
			return nil, ErrorMissingOperand.Error(nil)
		}
		return &Request{Verb: VerbGet, Tagged: true, Pattern: pattern, Tags: tags}, nil
	}

	return &Request{Verb: VerbGet, Keys: operands}, nil
}

func parseDel(operands []string) (*Request, liberr.Error) {
	if pattern, tags, ok := splitTagged(operands); ok {
		if len(tags) == 0 {
			return nil, ErrorMissingOperand.Error(nil)
		}
		return &Request{Verb: VerbDel, Tagged: true, Pattern: pattern, Tags: tags}, nil
	}

	return &Request{Verb: VerbDel, Keys: operands}, nil
}

func parseKeys(operands []string) (*Request, liberr.Error) {
	if pattern, tags, ok := splitTagged(operands); ok {
		if len(tags) == 0 {
			return nil, ErrorMissingOperand.Error(nil)
		}
		return &Request{Verb: VerbKeys, Tagged: true, Pattern: pattern, Tags: tags}, nil
	}

	if len(operands) != 1 {
		return nil, ErrorBadArity.Error(nil)
	}

	return &Request{Verb: VerbKeys, Pattern: operands[0]}, nil
}

func parseSet(operands []string) (*Request, liberr.Error) {
	var flags SetFlags

	i := 0
	for i < len(operands) && isFlagToken(operands[i]) {
		switch operands[i] {
		case "-i":
			flags.Interned = true
			i++
		case "-t":
			if i+1 >= len(operands) {
				return nil, ErrorMissingOperand.Error(nil)
			}
			flags.Tag = operands[i+1]
			flags.HasTag = true
			i += 2
		case "-a":
			if i+1 >= len(operands) {
				return nil, ErrorMissingOperand.Error(nil)
			}
			t, e := time.ParseInLocation(absoluteLayout, operands[i+1], time.UTC)
			if e != nil {
				return nil, ErrorBadDate.Error(e)
			}
			flags.Absolute = t
			flags.HasAbsolute = true
			i += 2
		case "-s":
			if i+1 >= len(operands) {
				return nil, ErrorMissingOperand.Error(nil)
			}
			s, e := strconv.Atoi(operands[i+1])
			if e != nil {
				return nil, ErrorBadInteger.Error(e)
			}
			flags.Sliding = time.Duration(s) * time.Second
			flags.HasSliding = true
			i += 2
		case "-c":
			flags.NotifyOnRemoval = true
			i++
		}
	}
	stop := i

	if flags.Interned {
		flags.HasAbsolute = false
		flags.HasSliding = false
		flags.NotifyOnRemoval = false
	} else if flags.HasAbsolute {
		flags.HasSliding = false
	}

	rest := operands[stop:]
	if len(rest)%2 != 0 {
		return nil, ErrorBadArity.Error(nil)
	}

	pairs := make([]Pair, 0, len(rest)/2)
	for p := 0; p < len(rest); p += 2 {
		key := rest[p]
		val, e := base64.StdEncoding.DecodeString(rest[p+1])
		if e != nil {
			return nil, ErrorBadBase64.Error(e)
		}
		pairs = append(pairs, Pair{Key: key, Value: val})
	}

	return &Request{Verb: VerbSet, Flags: flags, Pairs: pairs}, nil
}

func isFlagToken(tok string) bool {
	switch tok {
	case "-i", "-t", "-a", "-s", "-c":
		return true
	default:
		return false
	}
}
