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

// Package protocol implements the length-prefixed frame codec used on the
// cache-host's TCP wire: a 4-byte little-endian length, a 4-byte
// little-endian correlation id, and a payload whose first byte is a
// MessageType code.
package protocol

import (
	"encoding/binary"
	"io"

	liberr "github.com/nabbar/cachehost/errors"
)

// HeaderSize is the number of bytes preceding the payload: the 4-byte
// length field plus the 4-byte correlation id.
const HeaderSize = 8

// DefaultMaxFrameSize bounds a frame when the caller does not configure one.
const DefaultMaxFrameSize = 16 * 1024 * 1024

// Frame is a single decoded message: its correlation id and payload. The
// payload's first byte is always a MessageType.
type Frame struct {
	CorrelationID int32
	Payload       []byte
}

// Encode builds the wire bytes for a frame carrying payload under
// correlationID. The result is always len(payload)+HeaderSize bytes.
func Encode(correlationID int32, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(HeaderSize+len(payload)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(correlationID))
	copy(buf[8:], payload)
	return buf
}

// ReadFrame pulls exactly one frame from r. It buffers nothing itself:
// callers that read from a single connection repeatedly (typically
// through a *bufio.Reader) get streaming semantics for free, since the
// underlying reader retains unconsumed bytes between calls.
//
// maxFrameSize, if non-zero, bounds the total frame length (including the
// 8-byte header); frames above it or at/below HeaderSize-1 are rejected
// with a liberr.Error carrying ErrorFrameTooShort/ErrorFrameTooLarge, and
// the connection must be closed without a reply per the protocol's
// ProtocolError contract.
func ReadFrame(r io.Reader, maxFrameSize uint32) (correlationID int32, payload []byte, err liberr.Error) {
	hdr := make([]byte, HeaderSize)
	if _, e := io.ReadFull(r, hdr); e != nil {
		if e == io.EOF {
			// clean close between frames, not a protocol violation
			return 0, nil, ErrorFrameTruncated.Error(io.EOF)
		}
		return 0, nil, ErrorFrameTruncated.Error(e)
	}

	length := binary.LittleEndian.Uint32(hdr[0:4])
	if length <= HeaderSize-1 {
		return 0, nil, ErrorFrameTooShort.Error(nil)
	}
	if maxFrameSize > 0 && length > maxFrameSize {
		return 0, nil, ErrorFrameTooLarge.Error(nil)
	}

	cid := int32(binary.LittleEndian.Uint32(hdr[4:8]))

	body := make([]byte, length-HeaderSize)
	if len(body) > 0 {
		if _, e := io.ReadFull(r, body); e != nil {
			return 0, nil, ErrorFrameTruncated.Error(e)
		}
	}

	return cid, body, nil
}

// WriteFrame encodes and writes a single frame to w in one Write call, so
// that concurrent writers on the same connection never interleave bytes
// from two frames (see socket/server/tcp's single writer-loop guarantee).
func WriteFrame(w io.Writer, correlationID int32, payload []byte) error {
	_, err := w.Write(Encode(correlationID, payload))
	return err
}
