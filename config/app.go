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

// Package config composes the standalone settings models of the reactor,
// socket, socks5 and resolver packages into one document that a single
// Viper instance can load, validate and keep in sync on disk.
package config

import (
	"time"

	logcfg "github.com/nabbar/reactor/logger/config"
)

// ResolverServer mirrors resolver.Server for the subset that is meaningful
// as static configuration (UserData/ForceTCP binding is left to the
// caller's wiring code, not to the config file).
type ResolverServer struct {
	// Address is "host:port" of the upstream name server.
	Address string `json:"address" yaml:"address" toml:"address" mapstructure:"address"`
}

// ResolverSettings configures the resolver package's default server list
// and per-query deadline (§6 of the resolver spec).
type ResolverSettings struct {
	Servers []ResolverServer `json:"servers,omitempty" yaml:"servers,omitempty" toml:"servers,omitempty" mapstructure:"servers,omitempty"`
	Timeout time.Duration    `json:"timeout,omitempty" yaml:"timeout,omitempty" toml:"timeout,omitempty" mapstructure:"timeout,omitempty"`
}

// Socks5Listener configures one SOCKS5 listening address (§6 of the
// socks5 spec: AddListener's laddr/backlog/tag).
type Socks5Listener struct {
	Address string `json:"address" yaml:"address" toml:"address" mapstructure:"address"`
	Backlog int    `json:"backlog,omitempty" yaml:"backlog,omitempty" toml:"backlog,omitempty" mapstructure:"backlog,omitempty"`
	Tag     string `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty" mapstructure:"tag,omitempty"`
}

// Socks5Settings configures the socks5 server's listeners.
type Socks5Settings struct {
	Listeners []Socks5Listener `json:"listeners,omitempty" yaml:"listeners,omitempty" toml:"listeners,omitempty" mapstructure:"listeners,omitempty"`
}

// App is the top-level configuration document: one Logger section (built
// on logger/config.Options, unchanged from the teacher package) plus the
// resolver and socks5 sections this repo adds on top of it.
type App struct {
	Logger   logcfg.Options   `json:"logger,omitempty" yaml:"logger,omitempty" toml:"logger,omitempty" mapstructure:"logger,omitempty"`
	Resolver ResolverSettings `json:"resolver,omitempty" yaml:"resolver,omitempty" toml:"resolver,omitempty" mapstructure:"resolver,omitempty"`
	Socks5   Socks5Settings   `json:"socks5,omitempty" yaml:"socks5,omitempty" toml:"socks5,omitempty" mapstructure:"socks5,omitempty"`
}
