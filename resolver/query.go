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
	"encoding/binary"
	"net"

	"golang.org/x/sys/unix"
)

// maxDNSMessage bounds a single read; RFC 1035 messages never exceed 64KiB
// even over TCP (the 2-byte length prefix caps it at that).
const maxDNSMessage = 65535

// query tracks one in-flight request to one server. UDP queries write
// their packed message once and wait for a single datagram back. TCP
// queries prepend a 2-byte length, wait for the connect to complete, then
// write and read in a streaming fashion.
type query struct {
	srv       Server
	raw       []byte // the unprefixed packed DNS message, kept for TCP retries
	usingTCP  bool
	fd        int
	connected bool
	writeOff  int
	writeBuf  []byte

	tcpLen     [2]byte
	tcpLenGot  int
	tcpBody    []byte
	tcpBodyGot int

	udpBuf []byte

	failed bool
}

func newQuery(factory SocketFactory, srv Server, raw []byte, forceTCP bool) (*query, error) {
	addr, e := net.ResolveTCPAddr("tcp", srv.Address)
	if e != nil {
		return nil, e
	}

	family := unix.AF_INET
	if addr.IP != nil && addr.IP.To4() == nil {
		family = unix.AF_INET6
	}

	sockType := unix.SOCK_DGRAM
	proto := unix.IPPROTO_UDP
	if forceTCP {
		sockType = unix.SOCK_STREAM
		proto = unix.IPPROTO_TCP
	}

	fd, e := factory(family, sockType, proto, srv.UserData)
	if e != nil {
		return nil, e
	}
	_ = unix.SetNonblock(fd, true)

	sa, e := sockaddrFromIPPort(addr.IP, addr.Port)
	if e != nil {
		_ = unix.Close(fd)
		return nil, e
	}

	e = unix.Connect(fd, sa)
	if e != nil && e != unix.EINPROGRESS {
		_ = unix.Close(fd)
		return nil, e
	}

	q := &query{srv: srv, raw: raw, usingTCP: forceTCP, fd: fd}
	if forceTCP {
		binary.BigEndian.PutUint16(q.tcpLen[:], uint16(len(raw)))
		q.writeBuf = append(append([]byte(nil), q.tcpLen[:]...), raw...)
	} else {
		q.writeBuf = raw
		q.udpBuf = make([]byte, maxDNSMessage)
	}
	return q, nil
}

func (q *query) close() {
	if q.fd >= 0 {
		_ = unix.Close(q.fd)
		q.fd = -1
	}
}

// wantWrite reports whether this query still has unwritten bytes.
func (q *query) wantWrite() bool {
	return q.writeOff < len(q.writeBuf)
}

// step is invoked when fd is readable and/or writable. It returns a
// complete response payload once one is fully received.
func (q *query) step(readable, writable bool) (response []byte, err error) {
	if writable {
		if !q.connected {
			errno, e := unix.GetsockoptInt(q.fd, unix.SOL_SOCKET, unix.SO_ERROR)
			if e != nil {
				return nil, e
			}
			if errno != 0 {
				return nil, unix.Errno(errno)
			}
			q.connected = true
		}
		if q.wantWrite() {
			n, e := unix.Write(q.fd, q.writeBuf[q.writeOff:])
			if n > 0 {
				q.writeOff += n
			}
			if e != nil && e != unix.EAGAIN && e != unix.EWOULDBLOCK {
				return nil, e
			}
		}
	}

	if !readable {
		return nil, nil
	}

	if q.usingTCP {
		return q.readTCP()
	}
	return q.readUDP()
}

func (q *query) readUDP() ([]byte, error) {
	n, e := unix.Read(q.fd, q.udpBuf)
	if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
		return nil, nil
	}
	if e != nil {
		return nil, e
	}
	return append([]byte(nil), q.udpBuf[:n]...), nil
}

func (q *query) readTCP() ([]byte, error) {
	if q.tcpLenGot < 2 {
		n, e := unix.Read(q.fd, q.tcpLen[q.tcpLenGot:])
		if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
			return nil, nil
		}
		if e != nil {
			return nil, e
		}
		if n == 0 {
			return nil, unix.ECONNRESET
		}
		q.tcpLenGot += n
		if q.tcpLenGot < 2 {
			return nil, nil
		}
		bodyLen := binary.BigEndian.Uint16(q.tcpLen[:])
		q.tcpBody = make([]byte, bodyLen)
	}

	if q.tcpBodyGot < len(q.tcpBody) {
		n, e := unix.Read(q.fd, q.tcpBody[q.tcpBodyGot:])
		if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
			return nil, nil
		}
		if e != nil {
			return nil, e
		}
		if n == 0 {
			return nil, unix.ECONNRESET
		}
		q.tcpBodyGot += n
	}

	if q.tcpBodyGot == len(q.tcpBody) {
		return q.tcpBody, nil
	}
	return nil, nil
}

func sockaddrFromIPPort(ip net.IP, port int) (unix.Sockaddr, error) {
	if v4 := ip.To4(); v4 != nil {
		sa := &unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], v4)
		return sa, nil
	}
	sa := &unix.SockaddrInet6{Port: port}
	copy(sa.Addr[:], ip.To16())
	return sa, nil
}
