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

package viper

import (
	"encoding/json"
	"os"
	"path/filepath"

	loglvl "github.com/nabbar/reactor/logger/level"
)

// SetConfigFile implements Viper.
func (v *viperImpl) SetConfigFile(path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if path != "" {
		v.configFile = path
		v.vpr.SetConfigFile(path)
		return nil
	}

	if v.homeBase == "" {
		return ErrorBasePathNotFound.Error(nil)
	}

	home, e := os.UserHomeDir()
	if e != nil {
		return ErrorHomePathNotFound.Error(e)
	}

	dir := filepath.Join(home, "."+v.homeBase)
	v.configFile = ""
	v.vpr.SetConfigName(v.homeBase)
	v.vpr.AddConfigPath(dir)
	v.vpr.AddConfigPath(home)
	return nil
}

// Config implements Viper.
func (v *viperImpl) Config(lvlKO, lvlOK loglvl.Level) error {
	v.mu.Lock()
	prefix := v.envPrefix
	defaultCfg := v.defaultCfg
	remoteProvider := v.remoteProvider
	log := v.log
	v.mu.Unlock()

	if prefix != "" {
		v.vpr.SetEnvPrefix(prefix)
	}
	v.vpr.AutomaticEnv()

	e := v.vpr.ReadInConfig()
	if e != nil {
		if defaultCfg != nil {
			if r := defaultCfg(); r != nil {
				v.vpr.SetConfigType("json")
				if de := v.vpr.ReadConfig(r); de != nil {
					e = ErrorConfigReadDefault.Error(de)
					log().CheckError(lvlKO, loglvl.NilLevel, "load default configuration", e)
					return e
				}
				e = ErrorConfigIsDefault.Error(e)
				log().CheckError(lvlOK, lvlOK, "using default configuration", e)
				return e
			}
		}
		e = ErrorConfigRead.Error(e)
		log().CheckError(lvlKO, loglvl.NilLevel, "load configuration", e)
		return e
	}

	if remoteProvider != "" {
		if re := v.readRemote(); re != nil {
			log().CheckError(lvlKO, loglvl.NilLevel, "load remote configuration", re)
			return re
		}
	}

	log().CheckError(loglvl.NilLevel, lvlOK, "load configuration", nil)
	return nil
}

func (v *viperImpl) readRemote() error {
	v.mu.Lock()
	provider := v.remoteProvider
	endpoint := v.remoteEndpoint
	path := v.remotePath
	secure := v.remoteSecureKey
	model := v.remoteModel
	v.mu.Unlock()

	var e error
	if secure != "" {
		e = v.vpr.AddSecureRemoteProvider(provider, endpoint, path, secure)
	} else {
		e = v.vpr.AddRemoteProvider(provider, endpoint, path)
	}
	if e != nil {
		if secure != "" {
			return ErrorRemoteProviderSecure.Error(e)
		}
		return ErrorRemoteProvider.Error(e)
	}

	if e = v.vpr.ReadRemoteConfig(); e != nil {
		return ErrorRemoteProviderRead.Error(e)
	}

	if model != nil {
		if _, e = json.Marshal(model); e != nil {
			return ErrorRemoteProviderMarshall.Error(e)
		}
	}

	return nil
}
