/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package config

import (
	"context"

	libprm "github.com/nabbar/reactor/file/perm"
	liblog "github.com/nabbar/reactor/logger"
	loglvl "github.com/nabbar/reactor/logger/level"
	libvpr "github.com/nabbar/reactor/viper"
)

// Load builds a Viper instance bound to path (or, if path is empty, to the
// home-directory "reactor" config file), registers file/perm's decode hook
// so the Logger section's FileMode/PathMode fields unmarshal from octal
// strings, reads the configured sources and decodes the result into an App.
//
// log may be nil; a default logger bound to ctx is then used, mirroring
// viper.New's own fallback.
func Load(ctx context.Context, log liblog.FuncLog, path string) (*App, error) {
	v := libvpr.New(ctx, log)
	v.SetHomeBaseName("reactor")
	v.HookRegister(libprm.ViperDecoderHook())

	if e := v.SetConfigFile(path); e != nil {
		return nil, e
	}

	if e := v.Config(loglvl.ErrorLevel, loglvl.InfoLevel); e != nil {
		return nil, ErrorConfigRead.Error(e)
	}

	app := &App{}
	if e := v.Unmarshal(app); e != nil {
		return nil, ErrorConfigUnmarshal.Error(e)
	}

	if e := app.Logger.Validate(); e != nil {
		return nil, ErrorConfigValidate.Error(e)
	}

	return app, nil
}
