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
	"bytes"
	"encoding/json"
)

var _defaultConfig = []byte(`{
  "port": 11211,
  "maximumConnections": 1024,
  "messageBufferSize": 4096,
  "communicationTimeout": "30s",
  "maximumMessageSize": 0,
  "cacheMemoryLimitPercentage": 10,
  "trimInterval": "15s",
  "broadcastQueueSize": 256,
  "storageProvider": "plain",
  "customLogger": ""
}`)

// SetDefaultConfig replaces the JSON emitted by DefaultConfig.
func SetDefaultConfig(cfg []byte) {
	_defaultConfig = cfg
}

func (o *componentCacheHost) DefaultConfig(indent string) []byte {
	var res = bytes.NewBuffer(make([]byte, 0))

	if err := json.Indent(res, _defaultConfig, indent, indent); err != nil {
		return _defaultConfig
	}

	return res.Bytes()
}
