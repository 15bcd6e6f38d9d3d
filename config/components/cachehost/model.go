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
	"context"
	"sync"

	cchsrv "github.com/nabbar/cachehost/cachehost"
	libcfg "github.com/nabbar/cachehost/config"
	liberr "github.com/nabbar/cachehost/errors"
	liblog "github.com/nabbar/cachehost/logger"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

type componentCacheHost struct {
	ctx libcfg.FuncContext
	get libcfg.FuncComponentGet
	vpr libcfg.FuncComponentViper
	key string

	fsb func(cpt libcfg.Component) liberr.Error
	fsa func(cpt libcfg.Component) liberr.Error
	frb func(cpt libcfg.Component) liberr.Error
	fra func(cpt libcfg.Component) liberr.Error

	m   sync.Mutex
	eng cchsrv.Engine
	log liblog.FuncLog
}

func (o *componentCacheHost) Type() string {
	return ComponentType
}

func (o *componentCacheHost) Init(key string, ctx libcfg.FuncContext, get libcfg.FuncComponentGet, vpr libcfg.FuncComponentViper) {
	o.m.Lock()
	defer o.m.Unlock()

	o.key = key
	o.ctx = ctx
	o.get = get
	o.vpr = vpr
}

func (o *componentCacheHost) RegisterFuncStart(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.fsb = before
	o.fsa = after
}

func (o *componentCacheHost) RegisterFuncReload(before, after func(cpt libcfg.Component) liberr.Error) {
	o.m.Lock()
	defer o.m.Unlock()

	o.frb = before
	o.fra = after
}

func (o *componentCacheHost) RegisterFlag(cmd *spfcbr.Command, vpr *spfvpr.Viper) error {
	if cmd == nil || vpr == nil {
		return ErrorComponentParams.Error(nil)
	}

	cmd.PersistentFlags().Int(o.key+".port", 0, "TCP port the cache host listens on")
	cmd.PersistentFlags().Int64(o.key+".maximumConnections", 0, "maximum concurrently served connections")
	cmd.PersistentFlags().Int(o.key+".cacheMemoryLimitPercentage", 0, "target fraction of host memory for the store")
	cmd.PersistentFlags().String(o.key+".storageProvider", "", "value transform inside the store: plain or gzip")
	cmd.PersistentFlags().String(o.key+".customLogger", "", "registered logger kind")

	for _, k := range []string{"port", "maximumConnections", "cacheMemoryLimitPercentage", "storageProvider", "customLogger"} {
		if err := vpr.BindPFlag(o.key+"."+k, cmd.PersistentFlags().Lookup(o.key+"."+k)); err != nil {
			return err
		}
	}

	return nil
}

func (o *componentCacheHost) IsStarted() bool {
	o.m.Lock()
	defer o.m.Unlock()

	return o.eng != nil
}

func (o *componentCacheHost) IsRunning(_ bool) bool {
	o.m.Lock()
	eng := o.eng
	o.m.Unlock()

	return eng != nil && eng.IsRunning()
}

func (o *componentCacheHost) Start(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
	return o._run(getCfg, false)
}

func (o *componentCacheHost) Reload(getCfg libcfg.FuncComponentConfigGet) liberr.Error {
	return o._run(getCfg, true)
}

func (o *componentCacheHost) _run(getCfg libcfg.FuncComponentConfigGet, reload bool) liberr.Error {
	o.m.Lock()
	defer o.m.Unlock()

	if reload && o.frb != nil {
		if err := o.frb(o); err != nil {
			return err
		}
	} else if !reload && o.fsb != nil {
		if err := o.fsb(o); err != nil {
			return err
		}
	}

	cfg := cchsrv.DefaultConfig()
	if err := getCfg(o.key, &cfg); err != nil {
		return ErrorComponentConfig.Error(err)
	}

	ctx := o.runCtx()

	if o.eng != nil {
		if err := o.eng.Stop(ctx); err != nil {
			return ErrorComponentStop.Error(err)
		}
		o.eng = nil
	}

	eng, err := cchsrv.New(cfg)
	if err != nil {
		return ErrorComponentConfig.Error(err)
	}

	if o.log != nil {
		eng.RegisterLogger(o.log)
	} else {
		eng.RegisterLogger(cchsrv.LoggerByKind(ctx, cfg.CustomLogger))
	}

	if err := eng.Start(ctx); err != nil {
		return ErrorComponentStart.Error(err)
	}

	o.eng = eng

	if reload && o.fra != nil {
		if err := o.fra(o); err != nil {
			return err
		}
	} else if !reload && o.fsa != nil {
		if err := o.fsa(o); err != nil {
			return err
		}
	}

	return nil
}

func (o *componentCacheHost) Stop() {
	o.m.Lock()
	defer o.m.Unlock()

	if o.eng != nil {
		_ = o.eng.Stop(o.runCtx())
		o.eng = nil
	}
}

// runCtx returns the engine context. Caller holds o.m.
func (o *componentCacheHost) runCtx() context.Context {
	if o.ctx != nil {
		if x := o.ctx(); x != nil {
			return x
		}
	}

	return context.Background()
}

func (o *componentCacheHost) Dependencies() []string {
	return make([]string, 0)
}

func (o *componentCacheHost) GetEngine() cchsrv.Engine {
	o.m.Lock()
	defer o.m.Unlock()

	return o.eng
}

func (o *componentCacheHost) SetLogger(fn liblog.FuncLog) {
	o.m.Lock()
	defer o.m.Unlock()

	o.log = fn
}
