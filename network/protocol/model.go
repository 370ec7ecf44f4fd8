/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package protocol enumerates the transport protocols understood by the
// socket family (tcp/udp variants, unix domain, raw ip) and gives them a
// stable string/wire form usable in config files and log fields.
package protocol

import (
	"fmt"
	"reflect"
	"strings"
)

// NetworkProtocol identifies a dial/listen network as used by net.Dial,
// net.Listen and the socket family built on top of them.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkUnix
	NetworkUnixGram
	NetworkIP
	NetworkIP4
	NetworkIP6
)

var names = map[NetworkProtocol]string{
	NetworkEmpty:    "",
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkUnix:     "unix",
	NetworkUnixGram: "unixgram",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
}

// String returns the canonical lowercase network name as accepted by net.Dial.
func (p NetworkProtocol) String() string {
	if s, ok := names[p]; ok {
		return s
	}
	return ""
}

// Code is an alias of String kept for symmetry with other enum types in
// this module that expose a wire-level Code() accessor.
func (p NetworkProtocol) Code() string {
	return p.String()
}

// IsUDP reports whether the protocol is one of the datagram variants.
func (p NetworkProtocol) IsUDP() bool {
	switch p {
	case NetworkUDP, NetworkUDP4, NetworkUDP6:
		return true
	default:
		return false
	}
}

// IsTCP reports whether the protocol is one of the stream variants.
func (p NetworkProtocol) IsTCP() bool {
	switch p {
	case NetworkTCP, NetworkTCP4, NetworkTCP6:
		return true
	default:
		return false
	}
}

// IsUnix reports whether the protocol addresses a unix domain socket.
func (p NetworkProtocol) IsUnix() bool {
	return p == NetworkUnix || p == NetworkUnixGram
}

func cleanString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")
	s = strings.TrimPrefix(s, `\"`)
	s = strings.TrimSuffix(s, `\"`)
	s = strings.Trim(s, `"'`)
	return strings.ToLower(strings.TrimSpace(s))
}

// Parse decodes a network name (case-insensitive, tolerant of surrounding
// whitespace and quoting) into a NetworkProtocol. Unknown input yields
// NetworkEmpty.
func Parse(s string) NetworkProtocol {
	c := cleanString(s)
	for p, n := range names {
		if n == "" {
			continue
		}
		if n == c {
			return p
		}
	}
	return NetworkEmpty
}

func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *NetworkProtocol) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = NetworkEmpty
		return nil
	}

	c := cleanString(string(b))
	if c == "" {
		*p = NetworkEmpty
		return nil
	}

	v := Parse(c)
	if v == NetworkEmpty {
		return fmt.Errorf("protocol: unknown network %q", string(b))
	}

	*p = v
	return nil
}

// ViperDecoderHook returns a mapstructure decode hook converting a string
// field into a NetworkProtocol, so config structs can declare the field
// directly as this type.
func ViperDecoderHook() func(reflect.Type, reflect.Type, interface{}) (interface{}, error) {
	return func(src reflect.Type, dst reflect.Type, data interface{}) (interface{}, error) {
		if dst != reflect.TypeOf(NetworkProtocol(0)) {
			return data, nil
		}

		if src.Kind() != reflect.String {
			return data, nil
		}

		return Parse(data.(string)), nil
	}
}
