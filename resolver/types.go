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

package resolver

import (
	"net"

	"github.com/miekg/dns"
)

// QType is the subset of RFC 1035 record types this resolver parses (§6).
type QType uint16

const (
	TypeA    QType = dns.TypeA
	TypeAAAA QType = dns.TypeAAAA
	TypeSRV  QType = dns.TypeSRV
)

// SRVValue carries the fields of a parsed SRV record (§4.7).
type SRVValue struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

// Record is one answer entry, already narrowed to the requested QType.
type Record struct {
	TTL  uint32
	Type QType

	// A / AAAA hold the address for TypeA / TypeAAAA records.
	IP net.IP

	// SRV holds the parsed value for TypeSRV records.
	SRV SRVValue
}

// Server describes one upstream name server to race a query against.
type Server struct {
	// Address is "host:port", usually port 53.
	Address string
	// ForceTCP skips UDP entirely and dials TCP from the start.
	ForceTCP bool
	// UserData is opaque caller state handed back to SocketFactory so it
	// can, for instance, bind this query's socket to a specific outbound
	// interface (§4.7: "Thread-local state links the call to the correct
	// per-server user data").
	UserData interface{}
}

// SocketFactory creates a non-blocking socket of the given family
// (unix.AF_INET/AF_INET6), type (unix.SOCK_DGRAM/SOCK_STREAM) and protocol,
// optionally binding it according to userData. The returned descriptor must
// already be non-blocking.
type SocketFactory func(family, sockType, protocol int, userData interface{}) (fd int, err error)
