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

package socks5

import (
	"encoding/binary"
	"net"
	"strconv"
)

// atyp values from RFC 1928 §5.
const (
	atypIPv4   = 0x01
	atypDomain = 0x03
	atypIPv6   = 0x04
)

// cmdConnect is the only SOCKS5 command this server supports (§4.5).
const cmdConnect = 0x01

// ReplyCode is a SOCKS5 reply field value (§4.5/§6).
type ReplyCode byte

const (
	ReplySucceeded              ReplyCode = 0x00
	ReplyGeneralFailure         ReplyCode = 0x01
	ReplyNetworkUnreachable     ReplyCode = 0x03
	ReplyHostUnreachable        ReplyCode = 0x04
	ReplyConnectionRefused      ReplyCode = 0x05
	ReplyTTLExpired             ReplyCode = 0x06
	ReplyCommandNotSupported    ReplyCode = 0x07
	ReplyAddressTypeNotSupported ReplyCode = 0x08
)

// Addr is a resolved destination or bound address carried by a SOCKS5
// request or reply. Only IPv4/IPv6 are supported; domain names are rejected
// at the request stage per §4.5.
type Addr struct {
	IP   net.IP
	Port uint16
}

func (a Addr) String() string {
	return net.JoinHostPort(a.IP.String(), strconv.Itoa(int(a.Port)))
}

// containsMethod reports whether b holds method 0x00 (no authentication).
func containsMethod(methods []byte, m byte) bool {
	for _, v := range methods {
		if v == m {
			return true
		}
	}
	return false
}

// encodeReply builds the `ver rep rsv atyp bnd_addr bnd_port` frame sent in
// response to a CONNECT request (§6). A nil ip encodes as the IPv4
// zero-address, which is what most implementations send alongside a
// non-zero reply code.
func encodeReply(rep ReplyCode, ip net.IP, port uint16) []byte {
	v4 := ip.To4()
	if v4 != nil {
		out := make([]byte, 4+4+2)
		out[0], out[1], out[2], out[3] = 0x05, byte(rep), 0x00, atypIPv4
		copy(out[4:8], v4)
		binary.BigEndian.PutUint16(out[8:10], port)
		return out
	}

	out := make([]byte, 4+16+2)
	out[0], out[1], out[2], out[3] = 0x05, byte(rep), 0x00, atypIPv6
	if len(ip) == 16 {
		copy(out[4:20], ip)
	}
	binary.BigEndian.PutUint16(out[20:22], port)
	return out
}

// parseRequest consumes a complete greeting/request frame from buf,
// returning how many leading bytes were consumed. A zero consumed count
// with a nil error means more bytes are needed.
type requestFields struct {
	cmd  byte
	atyp byte
	dest Addr
}

func parseGreeting(buf []byte) (consumed int, methods []byte, ver byte, ok bool) {
	if len(buf) < 2 {
		return 0, nil, 0, false
	}
	n := int(buf[1])
	total := 2 + n
	if len(buf) < total {
		return 0, nil, 0, false
	}
	return total, buf[2:total], buf[0], true
}

func parseRequest(buf []byte) (consumed int, fields requestFields, ver byte, addressTypeSupported, ok bool) {
	if len(buf) < 4 {
		return 0, requestFields{}, 0, true, false
	}
	ver = buf[0]
	cmd := buf[1]
	atyp := buf[3]

	var addrLen int
	switch atyp {
	case atypIPv4:
		addrLen = 4
	case atypIPv6:
		addrLen = 16
	default:
		return 0, requestFields{}, ver, false, true
	}

	need := 4 + addrLen + 2
	if len(buf) < need {
		return 0, requestFields{}, 0, true, false
	}

	ip := append(net.IP(nil), buf[4:4+addrLen]...)
	port := binary.BigEndian.Uint16(buf[4+addrLen : need])

	return need, requestFields{cmd: cmd, atyp: atyp, dest: Addr{IP: ip, Port: port}}, ver, true, true
}
