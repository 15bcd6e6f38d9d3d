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

	libval "github.com/go-playground/validator/v10"
	libdur "github.com/nabbar/cachehost/duration"
	liberr "github.com/nabbar/cachehost/errors"
	libsto "github.com/nabbar/cachehost/store"
)

// Config is the process configuration of one cache-host engine.
type Config struct {
	// Port is the TCP port the engine listens on, any interface.
	Port int `json:"port" yaml:"port" toml:"port" mapstructure:"port" validate:"required,gt=0,lte=65535"`

	// MaximumConnections caps concurrently served connections. Zero means
	// unlimited.
	MaximumConnections int64 `json:"maximumConnections" yaml:"maximumConnections" toml:"maximumConnections" mapstructure:"maximumConnections" validate:"gte=0"`

	// MessageBufferSize sizes the per-socket read buffer, in bytes.
	MessageBufferSize int `json:"messageBufferSize" yaml:"messageBufferSize" toml:"messageBufferSize" mapstructure:"messageBufferSize" validate:"omitempty,gte=256"`

	// CommunicationTimeout closes a connection idle for this long. Zero
	// disables the idle timeout.
	CommunicationTimeout libdur.Duration `json:"communicationTimeout" yaml:"communicationTimeout" toml:"communicationTimeout" mapstructure:"communicationTimeout"`

	// MaximumMessageSize bounds a decoded frame, header included. Zero
	// applies the codec default.
	MaximumMessageSize int `json:"maximumMessageSize" yaml:"maximumMessageSize" toml:"maximumMessageSize" mapstructure:"maximumMessageSize" validate:"gte=0"`

	// CacheMemoryLimitPercentage targets this fraction of host memory for
	// the non-interned store, in [5,90].
	CacheMemoryLimitPercentage int `json:"cacheMemoryLimitPercentage" yaml:"cacheMemoryLimitPercentage" toml:"cacheMemoryLimitPercentage" mapstructure:"cacheMemoryLimitPercentage" validate:"gte=5,lte=90"`

	// TrimInterval is the period between two memory-pressure passes. Zero
	// applies the store default.
	TrimInterval libdur.Duration `json:"trimInterval" yaml:"trimInterval" toml:"trimInterval" mapstructure:"trimInterval"`

	// BroadcastQueueSize bounds each connection's outgoing queue. Zero
	// applies the default.
	BroadcastQueueSize int `json:"broadcastQueueSize" yaml:"broadcastQueueSize" toml:"broadcastQueueSize" mapstructure:"broadcastQueueSize" validate:"gte=0"`

	// StorageProvider names the registered value transform applied inside
	// the store boundary, one of "plain" or "gzip". Empty means plain.
	StorageProvider string `json:"storageProvider" yaml:"storageProvider" toml:"storageProvider" mapstructure:"storageProvider"`

	// CustomLogger names a registered logger kind. Empty or unknown names
	// fall back to the default logger.
	CustomLogger string `json:"customLogger" yaml:"customLogger" toml:"customLogger" mapstructure:"customLogger"`
}

const (
	defaultMessageBufferSize  = 4096
	defaultBroadcastQueueSize = 256
)

// DefaultConfig returns the configuration the engine runs with when the
// process supplies nothing.
func DefaultConfig() Config {
	return Config{
		Port:                       11211,
		MaximumConnections:         1024,
		MessageBufferSize:          defaultMessageBufferSize,
		CommunicationTimeout:       libdur.Seconds(30),
		MaximumMessageSize:         0,
		CacheMemoryLimitPercentage: 10,
		TrimInterval:               libdur.ParseDuration(libsto.DefaultTrimInterval),
		BroadcastQueueSize:         defaultBroadcastQueueSize,
		StorageProvider:            libsto.ProviderPlain,
	}
}

// Validate checks the configuration constraints and applies defaults for
// zero-valued optional fields.
func (c *Config) Validate() liberr.Error {
	var e = ErrorValidatorError.Error(nil)

	if err := libval.New().Struct(c); err != nil {
		if er, ok := err.(*libval.InvalidValidationError); ok {
			e.Add(er)
		}

		for _, er := range err.(libval.ValidationErrors) {
			//nolint #goerr113
			e.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", er.Namespace(), er.ActualTag()))
		}
	}

	if e.HasParent() {
		return e
	}

	if c.MessageBufferSize == 0 {
		c.MessageBufferSize = defaultMessageBufferSize
	}

	if c.BroadcastQueueSize == 0 {
		c.BroadcastQueueSize = defaultBroadcastQueueSize
	}

	if c.TrimInterval == 0 {
		c.TrimInterval = libdur.ParseDuration(libsto.DefaultTrimInterval)
	}

	if c.StorageProvider == "" {
		c.StorageProvider = libsto.ProviderPlain
	}

	return nil
}

// Address returns the listen address derived from Port.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
