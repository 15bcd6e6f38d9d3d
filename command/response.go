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
	"bytes"
	"encoding/base64"
)

// EncodeRequest builds a request payload: the message-type byte advising
// the parser of the trailing token structure, then the space-joined tokens.
func EncodeRequest(mt MessageType, tokens ...string) []byte {
	buf := bytes.NewBuffer([]byte{byte(mt)})
	for i, t := range tokens {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(t)
	}
	return buf.Bytes()
}

// EncodeLiteral builds a reply payload of a single literal token (or an
// empty body when s is empty), prefixed with the Literal message type.
func EncodeLiteral(s string) []byte {
	if s == "" {
		return []byte{byte(Literal)}
	}
	return append([]byte{byte(Literal)}, []byte(s)...)
}

// EncodeEmpty builds the 1-byte empty-body frame used for the
// ValidationError reply (bad arity, missing operand, unparseable token).
func EncodeEmpty() []byte {
	return []byte{byte(Literal)}
}

// EncodeKeys builds a RepeatingKeys reply body: UTF-8 key names,
// space-separated, in the given order.
func EncodeKeys(keys []string) []byte {
	buf := bytes.NewBuffer([]byte{byte(RepeatingKeys)})
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(k)
	}
	return buf.Bytes()
}

// EncodeValues builds a RepeatingValues reply body: base64 value tokens,
// space-separated, in the given order. A nil entry is omitted rather than
// emitting a placeholder token: missing keys never appear in a multi-get
// result.
func EncodeValues(values [][]byte) []byte {
	buf := bytes.NewBuffer([]byte{byte(RepeatingValues)})
	first := true
	for _, v := range values {
		if v == nil {
			continue
		}
		if !first {
			buf.WriteByte(' ')
		}
		first = false
		buf.WriteString(base64.StdEncoding.EncodeToString(v))
	}
	return buf.Bytes()
}

// EncodePairs builds a RepeatingPairs reply body: "key base64value" tokens,
// space-separated.
func EncodePairs(pairs []Pair) []byte {
	buf := bytes.NewBuffer([]byte{byte(RepeatingPairs)})
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(p.Key)
		buf.WriteByte(' ')
		buf.WriteString(base64.StdEncoding.EncodeToString(p.Value))
	}
	return buf.Bytes()
}
