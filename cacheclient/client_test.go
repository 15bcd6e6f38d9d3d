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

package cacheclient_test

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	libcli "github.com/nabbar/cachehost/cacheclient"
	libprt "github.com/nabbar/cachehost/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// echoServer accepts one connection and answers every frame with its own
// payload under the same correlation id. Payloads equal to "push" also
// trigger a broadcast frame before the reply.
func echoServer(l net.Listener, mute bool) {
	c, err := l.Accept()
	if err != nil {
		return
	}

	defer func() {
		_ = c.Close()
	}()

	rd := bufio.NewReader(c)

	for {
		cid, payload, e := libprt.ReadFrame(rd, 0)
		if e != nil {
			return
		}

		if mute {
			continue
		}

		if string(payload) == "push" {
			if er := libprt.WriteFrame(c, 0, []byte("\x00expire k")); er != nil {
				return
			}
		}

		if er := libprt.WriteFrame(c, cid, payload); er != nil {
			return
		}
	}
}

var _ = Describe("CacheClient", func() {
	var (
		lis net.Listener
		cli libcli.Client
	)

	startServer := func(mute bool) {
		var err error
		lis, err = net.Listen("tcp", "127.0.0.1:0")
		Expect(err).To(BeNil())

		go echoServer(lis, mute)

		cli = libcli.New(lis.Addr().String())
		Expect(cli.Connect(context.Background())).To(BeNil())
	}

	AfterEach(func() {
		if cli != nil {
			_ = cli.Close()
		}
		if lis != nil {
			_ = lis.Close()
		}
	})

	It("matches each reply to its caller", func() {
		startServer(false)

		res, err := cli.Call(context.Background(), []byte("\x00hello"))
		Expect(err).To(BeNil())
		Expect(res).To(Equal([]byte("\x00hello")))
	})

	It("keeps callers separate on one multiplexed connection", func() {
		startServer(false)

		var wg sync.WaitGroup

		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer GinkgoRecover()

				body := []byte(fmt.Sprintf("\x00req-%d", i))
				res, err := cli.Call(context.Background(), body)
				Expect(err).To(BeNil())
				Expect(res).To(Equal(body))
			}(i)
		}

		wg.Wait()
	})

	It("routes broadcast frames to the registered callback", func() {
		startServer(false)

		got := make(chan []byte, 1)
		cli.RegisterFuncBroadcast(func(payload []byte) {
			got <- payload
		})

		res, err := cli.Call(context.Background(), []byte("push"))
		Expect(err).To(BeNil())
		Expect(res).To(Equal([]byte("push")))

		Eventually(got, time.Second).Should(Receive(Equal([]byte("\x00expire k"))))
	})

	It("honors the caller context while waiting", func() {
		startServer(true)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := cli.Call(ctx, []byte("\x00never"))
		Expect(err).ToNot(BeNil())
	})

	It("releases every waiter when the connection is lost", func() {
		startServer(true)

		var wg sync.WaitGroup

		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()

				_, err := cli.Call(context.Background(), []byte("\x00stuck"))
				Expect(err).ToNot(BeNil())
			}()
		}

		time.Sleep(50 * time.Millisecond)
		_ = lis.Close()
		_ = cli.Close()

		wg.Wait()
	})

	It("refuses to send while disconnected", func() {
		c := libcli.New("127.0.0.1:1")
		Expect(c.Send([]byte("\x00x"))).ToNot(BeNil())
		_, err := c.Call(context.Background(), []byte("\x00x"))
		Expect(err).ToNot(BeNil())
	})
})
