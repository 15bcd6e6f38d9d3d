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

package protocol_test

import (
	"bytes"
	"io"

	libproto "github.com/nabbar/cachehost/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Frame codec", func() {
	It("round-trips an encoded frame through ReadFrame", func() {
		payload := []byte{0x00, 'g', 'e', 't', ' ', 'k'}
		wire := libproto.Encode(42, payload)
		Expect(len(wire)).To(Equal(len(payload) + libproto.HeaderSize))

		cid, body, err := libproto.ReadFrame(bytes.NewReader(wire), 0)
		Expect(err).To(BeNil())
		Expect(cid).To(Equal(int32(42)))
		Expect(body).To(Equal(payload))
	})

	It("reassembles two frames written back to back on one stream", func() {
		var buf bytes.Buffer
		buf.Write(libproto.Encode(1, []byte{0x00, 'a'}))
		buf.Write(libproto.Encode(2, []byte{0x00, 'b'}))

		cid1, p1, err1 := libproto.ReadFrame(&buf, 0)
		Expect(err1).To(BeNil())
		Expect(cid1).To(Equal(int32(1)))
		Expect(p1).To(Equal([]byte{0x00, 'a'}))

		cid2, p2, err2 := libproto.ReadFrame(&buf, 0)
		Expect(err2).To(BeNil())
		Expect(cid2).To(Equal(int32(2)))
		Expect(p2).To(Equal([]byte{0x00, 'b'}))
	})

	It("reassembles a frame delivered across multiple partial reads", func() {
		wire := libproto.Encode(7, []byte{0x00, 'x', 'y', 'z'})
		r := &chunkedReader{data: wire, chunk: 3}

		cid, body, err := libproto.ReadFrame(r, 0)
		Expect(err).To(BeNil())
		Expect(cid).To(Equal(int32(7)))
		Expect(body).To(Equal([]byte{0x00, 'x', 'y', 'z'}))
	})

	It("rejects a frame shorter than the header", func() {
		wire := []byte{0x05, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
		_, _, err := libproto.ReadFrame(bytes.NewReader(wire), 0)
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libproto.ErrorFrameTooShort)).To(BeTrue())
	})

	It("rejects a frame larger than the configured maximum", func() {
		wire := libproto.Encode(1, make([]byte, 100))
		_, _, err := libproto.ReadFrame(bytes.NewReader(wire), 16)
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libproto.ErrorFrameTooLarge)).To(BeTrue())
	})
})

// chunkedReader drips data out a few bytes at a time to exercise
// ReadFrame's reliance on io.ReadFull across short reads.
type chunkedReader struct {
	data  []byte
	chunk int
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := c.chunk
	if n > len(p) {
		n = len(p)
	}
	if n > len(c.data) {
		n = len(c.data)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}
