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
	"context"
	"io"
	"sync"

	libmap "github.com/go-viper/mapstructure/v2"
	vpr "github.com/spf13/viper"

	liblog "github.com/nabbar/reactor/logger"
)

type viperImpl struct {
	mu  sync.Mutex
	ctx context.Context
	log liblog.FuncLog
	vpr *vpr.Viper

	configFile string
	homeBase   string
	envPrefix  string
	defaultCfg func() io.Reader

	remoteProvider  string
	remoteEndpoint  string
	remotePath      string
	remoteSecureKey string
	remoteModel     interface{}
	remoteReload    func()

	hooks []libmap.DecodeHookFunc
}

func (v *viperImpl) Viper() *vpr.Viper {
	return v.vpr
}

func (v *viperImpl) SetDefaultConfig(fn func() io.Reader) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.defaultCfg = fn
}

func (v *viperImpl) SetHomeBaseName(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.homeBase = name
}

func (v *viperImpl) SetEnvVarsPrefix(prefix string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.envPrefix = prefix
}

func (v *viperImpl) SetRemoteProvider(provider string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.remoteProvider = provider
}

func (v *viperImpl) SetRemoteEndpoint(endpoint string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.remoteEndpoint = endpoint
}

func (v *viperImpl) SetRemotePath(path string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.remotePath = path
}

func (v *viperImpl) SetRemoteSecureKey(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.remoteSecureKey = key
}

func (v *viperImpl) SetRemoteModel(model interface{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.remoteModel = model
}

func (v *viperImpl) SetRemoteReloadFunc(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.remoteReload = fn
}
