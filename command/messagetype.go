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

// Package command implements the cache-host's text command language: the
// verb/flag parser that turns a frame payload into a structured Request,
// and the message-type tagged response encoders.
package command

// MessageType is the first byte of every frame payload, identifying the
// shape of the tokens that follow.
type MessageType byte

const (
	// Literal marks a single-piece body or an in-band diagnostic such as
	// "invalid command".
	Literal MessageType = 0
	// RepeatingKeys marks a body made of space-separated UTF-8 key tokens.
	RepeatingKeys MessageType = 1
	// RepeatingValues marks a body made of space-separated base64 value tokens.
	RepeatingValues MessageType = 2
	// RepeatingPairs marks a body made of space-separated key/value token pairs.
	RepeatingPairs MessageType = 3
)

func (m MessageType) String() string {
	switch m {
	case Literal:
		return "literal"
	case RepeatingKeys:
		return "keys"
	case RepeatingValues:
		return "values"
	case RepeatingPairs:
		return "pairs"
	default:
		return "unknown"
	}
}

// Verb is the first token of a command's payload (after the message-type byte).
type Verb string

const (
	VerbGet   Verb = "get"
	VerbSet   Verb = "set"
	VerbDel   Verb = "del"
	VerbKeys  Verb = "keys"
	VerbClear Verb = "clear"
)

// InvalidCommand is the literal reply body for an unrecognized verb.
const InvalidCommand = "invalid command"
