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

package tcp

import (
	"net"

	liberr "github.com/nabbar/reactor/errors"
	"github.com/nabbar/reactor/reactor"
	"github.com/nabbar/reactor/socket"

	"golang.org/x/sys/unix"
)

// maxReadChunk caps how many bytes a single read-readiness drains into the
// read buffer, per §4.3.
const maxReadChunk = 64 * 1024

// flag bits private to Conn, starting at socket.FlagBaseMax so they never
// collide with the base package's own flags.
const (
	flagConnecting = socket.FlagBaseMax << iota
	flagConnected
	flagClosing
)

// Conn is a non-blocking TCP stream socket driven by a reactor.Runner. It
// satisfies socket.Socket.
type Conn struct {
	socket.Base

	rt reactor.Runner
}

var _ socket.Socket = (*Conn)(nil)

// Dial starts a non-blocking connect to raddr ("host:port", TCP only). The
// returned Conn is in the Connecting state; owner.OnConnected or
// OnConnectFailed fires once the outcome is known.
func Dial(rt reactor.Runner, raddr string, owner socket.Owner) (*Conn, error) {
	addr, e := net.ResolveTCPAddr("tcp", raddr)
	if e != nil {
		return nil, ErrDial.Error(e)
	}

	family := unix.AF_INET
	sa, e := sockaddrFromTCPAddr(addr)
	if e != nil {
		return nil, ErrDial.Error(e)
	}
	if addr.IP != nil && addr.IP.To4() == nil {
		family = unix.AF_INET6
	}

	fd, e := unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if e != nil {
		return nil, ErrDial.Error(e)
	}
	if e = unix.SetNonblock(fd, true); e != nil {
		_ = unix.Close(fd)
		return nil, ErrDial.Error(e)
	}

	c := newConn(rt, fd, owner)
	c.SetFlag(flagConnecting)

	e = unix.Connect(fd, sa)
	if e != nil && e != unix.EINPROGRESS {
		_ = unix.Close(fd)
		return nil, ErrDial.Error(e)
	}

	if err := rt.RegisterFD(fd, c.onReadiness, reactor.FDWrite); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	return c, nil
}

// newConn wraps an already-open, already-nonblocking descriptor (used both
// by Dial and by Server.onAccept for freshly accepted connections).
func newConn(rt reactor.Runner, fd int, owner socket.Owner) *Conn {
	c := &Conn{rt: rt}
	c.Init(rt, fd, c)
	if owner != nil {
		c.RefOwner(owner)
	}
	return c
}

// adopt is used by Server: the connection is already connected (accept
// returns an established stream), so it is marked Connected immediately
// without waiting on write-readiness.
func adopt(rt reactor.Runner, fd int, owner socket.Owner) (*Conn, error) {
	c := newConn(rt, fd, owner)
	c.SetFlag(flagConnected)
	if e := rt.RegisterFD(fd, c.onReadiness, reactor.FDRead); e != nil {
		_ = unix.Close(fd)
		return nil, e
	}
	return c, nil
}

func (c *Conn) onReadiness(_ int, events reactor.FDInterest) {
	if c.IsClosed() {
		return
	}

	if c.HasFlag(flagConnecting) {
		c.finishConnect()
		if c.IsClosed() {
			return
		}
	}

	if events&reactor.FDWrite != 0 && c.HasFlag(flagConnected) {
		c.flush()
	}
	if c.IsClosed() {
		return
	}
	if events&reactor.FDRead != 0 && c.HasFlag(flagConnected) {
		c.fill()
	}
}

func (c *Conn) finishConnect() {
	errno, e := unix.GetsockoptInt(c.FD(), unix.SOL_SOCKET, unix.SO_ERROR)
	if e != nil {
		c.failConnect(e)
		return
	}
	if errno != 0 {
		c.failConnect(unix.Errno(errno))
		return
	}

	c.ClearFlag(flagConnecting)
	c.SetFlag(flagConnected)
	_ = c.rt.SetFDEvents(c.FD(), reactor.FDRead)
	c.ScheduleEvent(socket.EventConnected)
}

func (c *Conn) failConnect(reason error) {
	c.ClearFlag(flagConnecting)
	c.teardown(socket.CloseReasonError)
	c.ScheduleConnectFailed(reason)
}

// fill drains up to maxReadChunk bytes of read-readiness into the read
// buffer. A zero-length read means the peer performed an orderly FIN.
func (c *Conn) fill() {
	buf := make([]byte, maxReadChunk)
	for {
		n, e := unix.Read(c.FD(), buf)
		if n > 0 {
			c.AppendRead(buf[:n])
		}
		if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
			return
		}
		if e != nil {
			c.teardown(socket.CloseReasonError)
			return
		}
		if n == 0 {
			c.teardown(socket.CloseReasonFIN)
			return
		}
		if n < len(buf) {
			return
		}
	}
}

// flush writes as much of the pending write queue as the kernel accepts.
func (c *Conn) flush() {
	for !c.WriteQueueEmpty() {
		chunk := c.WriteFront()
		n, e := unix.Write(c.FD(), chunk)
		if n > 0 {
			c.WriteAdvance(n)
		}
		if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
			c.SetFlag(socket.FlagSendBlocked)
			return
		}
		if e != nil {
			c.teardown(socket.CloseReasonError)
			return
		}
		if n == 0 {
			return
		}
	}

	if c.HasFlag(flagClosing) {
		c.teardown(socket.CloseReasonLocal)
		return
	}

	wasBlocked := c.HasFlag(socket.FlagSendBlocked)
	c.ClearFlag(socket.FlagSendBlocked)
	if wasBlocked {
		_ = c.rt.DisableWrite(c.FD())
		c.ScheduleEvent(socket.EventReadyToSend)
	}
}

// Send implements socket.Socket.
func (c *Conn) Send(b []byte) (int, error) {
	if c.IsClosed() || c.HasFlag(flagClosing) {
		return 0, socket.ErrClosed.Error(nil)
	}
	if !c.HasFlag(flagConnected) {
		return 0, socket.ErrNotConnected.Error(nil)
	}
	if len(b) == 0 {
		return 0, nil
	}

	if c.WriteQueueEmpty() && !c.HasFlag(socket.FlagSendBlocked) {
		n, e := unix.Write(c.FD(), b)
		if e == nil {
			if n == len(b) {
				return n, nil
			}
			c.EnqueueWrite(b[n:])
			c.SetFlag(socket.FlagSendBlocked)
			_ = c.rt.EnableWrite(c.FD())
			return len(b), nil
		}
		if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
			c.EnqueueWrite(b)
			c.SetFlag(socket.FlagSendBlocked)
			_ = c.rt.EnableWrite(c.FD())
			return len(b), socket.ErrSoftFail.Error(nil)
		}
		c.teardown(socket.CloseReasonError)
		return 0, socket.ErrClosed.Error(e)
	}

	c.EnqueueWrite(b)
	return len(b), socket.ErrSoftFail.Error(nil)
}

// Close implements socket.Socket: it tears the connection down locally
// (CloseReasonLocal, which per §7 is not delivered back to the caller).
// If writes are still queued, teardown is deferred until flush drains them
// so a pending reply is not dropped by closing the FD out from under it.
func (c *Conn) Close() {
	if !c.WriteQueueEmpty() {
		c.SetFlag(flagClosing)
		return
	}
	c.teardown(socket.CloseReasonLocal)
}

func (c *Conn) teardown(reason socket.CloseReason) {
	if !c.MarkClosed(reason) {
		return
	}
	fd := c.FD()
	if c.rt != nil && fd >= 0 {
		_ = c.rt.CloseFD(fd)
	}
	if reason != socket.CloseReasonLocal {
		c.ScheduleEvent(socket.EventClosed)
	}
}

// LocalAddr returns the address and port the kernel assigned this
// connection's local endpoint, used when SOCKS5 reports the bound address
// in its success reply (§4.5).
func (c *Conn) LocalAddr() (net.IP, uint16) {
	sa, e := unix.Getsockname(c.FD())
	if e != nil {
		return nil, 0
	}
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return append([]byte(nil), v.Addr[:]...), uint16(v.Port)
	case *unix.SockaddrInet6:
		return append([]byte(nil), v.Addr[:]...), uint16(v.Port)
	default:
		return nil, 0
	}
}

// DetectedMTU reports the kernel's advertised path-MTU estimate for this
// connected socket on platforms exposing IP_MTU, or 0 elsewhere (§4.3).
func (c *Conn) DetectedMTU() int {
	mtu, e := unix.GetsockoptInt(c.FD(), unix.IPPROTO_IP, unix.IP_MTU)
	if e != nil {
		return 0
	}
	return mtu
}

// sockaddrFromTCPAddr converts a resolved *net.TCPAddr into the raw
// unix.Sockaddr form Connect/Bind expect.
func sockaddrFromTCPAddr(a *net.TCPAddr) (unix.Sockaddr, error) {
	if ip4 := a.IP.To4(); ip4 != nil {
		sa := &unix.SockaddrInet4{Port: a.Port}
		copy(sa.Addr[:], ip4)
		return sa, nil
	}
	sa := &unix.SockaddrInet6{Port: a.Port}
	if a.IP != nil {
		copy(sa.Addr[:], a.IP.To16())
	}
	return sa, nil
}
