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

package metrics

import (
	prmsdk "github.com/prometheus/client_golang/prometheus"
)

type mtr struct {
	reg *prmsdk.Registry
	con prmsdk.Gauge
	cmd *prmsdk.CounterVec
	ent prmsdk.Gauge
	byt prmsdk.Gauge
	evc prmsdk.Counter
	drp prmsdk.Counter
}

func (o *mtr) Registry() *prmsdk.Registry {
	return o.reg
}

func (o *mtr) ConnInc() {
	o.con.Inc()
}

func (o *mtr) ConnDec() {
	o.con.Dec()
}

func (o *mtr) Command(verb string) {
	o.cmd.WithLabelValues(verb).Inc()
}

func (o *mtr) StoreSize(entries int, bytes int64) {
	o.ent.Set(float64(entries))
	o.byt.Set(float64(bytes))
}

func (o *mtr) Evicted(n int) {
	if n > 0 {
		o.evc.Add(float64(n))
	}
}

func (o *mtr) BroadcastDropped(n int) {
	if n > 0 {
		o.drp.Add(float64(n))
	}
}
