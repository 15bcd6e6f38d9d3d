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

// Package config declares the configuration accepted by a connection
// server, mirroring the process configuration table (port, connection
// caps, buffer sizes, idle timeout).
package config

import (
	"errors"
	"net"

	libdur "github.com/nabbar/cachehost/duration"
)

var (
	ErrInvalidAddress = errors.New("socket/config: invalid listen address")
)

// Server configures a connection server.
type Server struct {
	// Address is a "host:port" TCP listen address.
	Address string

	// MaximumConnections bounds concurrently accepted connections. Zero or
	// negative means unlimited.
	MaximumConnections int64

	// MessageBufferSize sizes the per-connection read buffer, in bytes.
	MessageBufferSize int

	// ConIdleTimeout closes a connection idle for this long. Zero disables
	// the idle timeout.
	ConIdleTimeout libdur.Duration
}

// Validate checks that Address resolves as a TCP address and applies
// defaults for zero-valued fields.
func (s *Server) Validate() error {
	if s.Address == "" {
		return ErrInvalidAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", s.Address); err != nil {
		return ErrInvalidAddress
	}

	if s.MessageBufferSize <= 0 {
		s.MessageBufferSize = 4096
	}

	return nil
}
