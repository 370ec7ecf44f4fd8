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

// Package viper composes this module's configuration loading on top of
// spf13/viper: file/env/remote sources, live reload via fsnotify, and
// mapstructure decode hooks (including file/perm's ViperDecoderHook) for
// domain types that don't unmarshal as plain scalars.
package viper

import (
	"context"
	"io"
	"time"

	vpr "github.com/spf13/viper"

	liblog "github.com/nabbar/reactor/logger"
	loglvl "github.com/nabbar/reactor/logger/level"
)

// Viper wraps a *viper.Viper with the source-composition and reload
// behavior the rest of this module's config surface (logger/config,
// file/perm, resolver, socket, socks5) is decoded through.
type Viper interface {
	// Viper returns the underlying *viper.Viper for direct access.
	Viper() *vpr.Viper

	// SetConfigFile points the loader at an explicit file. Passing an
	// empty path instead derives the file from SetHomeBaseName, searched
	// under the user's home directory.
	SetConfigFile(path string) error

	// Config loads the configured sources (file, env, remote) into the
	// instance. A default config registered via SetDefaultConfig is
	// used as a fallback, itself reported back as a non-fatal error so
	// callers can log that the running config is a default one.
	Config(lvlKO, lvlOK loglvl.Level) error

	// SetDefaultConfig registers a fallback config reader used when no
	// real config file is found.
	SetDefaultConfig(fn func() io.Reader)

	// SetHomeBaseName sets the base file name (without extension) used
	// to search the home-directory config file.
	SetHomeBaseName(name string)

	// SetEnvVarsPrefix sets the prefix environment variables must carry
	// to be picked up by AutomaticEnv.
	SetEnvVarsPrefix(prefix string)

	// SetRemoteProvider, SetRemoteEndpoint, SetRemotePath and
	// SetRemoteSecureKey configure an optional remote config backend
	// (etcd, consul, ...) read during Config.
	SetRemoteProvider(provider string)
	SetRemoteEndpoint(endpoint string)
	SetRemotePath(path string)
	SetRemoteSecureKey(key string)

	// SetRemoteModel registers the struct type used to marshal/validate
	// the remote config payload before it is merged in.
	SetRemoteModel(model interface{})

	// SetRemoteReloadFunc registers the callback invoked whenever
	// WatchConfig detects a local file change or a remote config push.
	SetRemoteReloadFunc(fn func())

	// HookRegister adds a mapstructure decode hook applied on top of
	// this package's default hooks (duration and comma-separated slice
	// conversion) during Unmarshal/UnmarshalKey/UnmarshalExact.
	HookRegister(hook interface{})

	// HookReset clears all hooks registered via HookRegister.
	HookReset()

	// Unmarshal, UnmarshalKey and UnmarshalExact decode into out using
	// the composed hook chain.
	Unmarshal(out interface{}) error
	UnmarshalKey(key string, out interface{}) error
	UnmarshalExact(out interface{}) error

	// Unset removes the given dotted keys (and any of their descendant
	// keys) from the in-memory config tree.
	Unset(key ...string) error

	// WatchConfig starts an fsnotify watch on the resolved config file;
	// on write events it re-reads the file and invokes the remote
	// reload function, if any. The watch stops when ctx is done.
	WatchConfig(ctx context.Context) error

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetUint32(key string) uint32
	GetUint64(key string) uint64
	GetFloat64(key string) float64
	GetDuration(key string) time.Duration
	GetTime(key string) time.Time
	GetIntSlice(key string) []int
	GetStringSlice(key string) []string
	GetStringMap(key string) map[string]interface{}
	GetStringMapString(key string) map[string]string
	GetStringMapStringSlice(key string) map[string][]string
}

// New creates a Viper instance. log may be nil, in which case a default
// logger bound to ctx is used.
func New(ctx context.Context, log liblog.FuncLog) Viper {
	if log == nil {
		log = func() liblog.Logger {
			return liblog.New(ctx)
		}
	}
	return &viperImpl{
		ctx: ctx,
		log: log,
		vpr: vpr.New(),
	}
}
