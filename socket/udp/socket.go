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

package udp

import (
	"net"
	"sync"

	"github.com/nabbar/reactor/reactor"
	"github.com/nabbar/reactor/socket"

	"golang.org/x/sys/unix"
)

// maxDatagram is the largest single read this package will attempt; UDP
// datagrams never exceed 64KiB.
const maxDatagram = 65536

// Socket is a datagram transport driven by a reactor.Runner. It satisfies
// socket.Socket; ReadBuffer/ConsumeReadBuffer expose exactly the most
// recently received datagram, and LastPeer reports who sent it.
type Socket struct {
	socket.Base

	rt        reactor.Runner
	connected bool

	mu       sync.Mutex
	lastPeer net.Addr
}

var _ socket.Socket = (*Socket)(nil)

// Dial opens a datagram socket with a fixed default peer (analogous to a
// connected UDP socket); Send always targets that peer. This is the shape
// the DNS resolver uses: one socket per query, bound to one server (§4.7).
func Dial(rt reactor.Runner, raddr string, owner socket.Owner) (*Socket, error) {
	addr, e := net.ResolveUDPAddr("udp", raddr)
	if e != nil {
		return nil, ErrOpen.Error(e)
	}

	family := unix.AF_INET
	if addr.IP != nil && addr.IP.To4() == nil {
		family = unix.AF_INET6
	}

	fd, e := unix.Socket(family, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
	if e != nil {
		return nil, ErrOpen.Error(e)
	}
	if e = unix.SetNonblock(fd, true); e != nil {
		_ = unix.Close(fd)
		return nil, ErrOpen.Error(e)
	}

	sa, e := sockaddrFromUDPAddr(addr)
	if e != nil {
		_ = unix.Close(fd)
		return nil, ErrOpen.Error(e)
	}
	if e = unix.Connect(fd, sa); e != nil {
		_ = unix.Close(fd)
		return nil, ErrOpen.Error(e)
	}

	s := newSocket(rt, fd, owner, true)
	s.mu.Lock()
	s.lastPeer = addr
	s.mu.Unlock()

	if e = rt.RegisterFD(fd, s.onReadiness, reactor.FDRead); e != nil {
		_ = unix.Close(fd)
		return nil, e
	}
	return s, nil
}

// Listen opens an unconnected datagram socket bound to laddr, able to
// exchange datagrams with any peer. Each received datagram updates LastPeer.
func Listen(rt reactor.Runner, laddr string, owner socket.Owner) (*Socket, error) {
	addr, e := net.ResolveUDPAddr("udp", laddr)
	if e != nil {
		return nil, ErrOpen.Error(e)
	}

	family := unix.AF_INET
	if addr.IP != nil && addr.IP.To4() == nil {
		family = unix.AF_INET6
	}

	fd, e := unix.Socket(family, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
	if e != nil {
		return nil, ErrOpen.Error(e)
	}
	if e = unix.SetNonblock(fd, true); e != nil {
		_ = unix.Close(fd)
		return nil, ErrOpen.Error(e)
	}

	sa, e := sockaddrFromUDPAddr(addr)
	if e != nil {
		_ = unix.Close(fd)
		return nil, ErrOpen.Error(e)
	}
	if e = unix.Bind(fd, sa); e != nil {
		_ = unix.Close(fd)
		return nil, ErrOpen.Error(e)
	}

	s := newSocket(rt, fd, owner, false)
	if e = rt.RegisterFD(fd, s.onReadiness, reactor.FDRead); e != nil {
		_ = unix.Close(fd)
		return nil, e
	}
	return s, nil
}

func newSocket(rt reactor.Runner, fd int, owner socket.Owner, connected bool) *Socket {
	s := &Socket{rt: rt, connected: connected}
	s.Init(rt, fd, s)
	if owner != nil {
		s.RefOwner(owner)
	}
	s.SetFlag(socket.FlagConnected)
	return s
}

// LastPeer reports the source address of the most recently received
// datagram, or the fixed peer for a Dial-opened socket.
func (s *Socket) LastPeer() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPeer
}

func (s *Socket) onReadiness(_ int, events reactor.FDInterest) {
	if s.IsClosed() {
		return
	}
	if events&reactor.FDRead != 0 {
		s.fill()
	}
}

func (s *Socket) fill() {
	buf := make([]byte, maxDatagram)
	if s.connected {
		n, e := unix.Read(s.FD(), buf)
		if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
			return
		}
		if e != nil {
			s.teardown(socket.CloseReasonError)
			return
		}
		s.ReplaceRead(buf[:n])
		return
	}

	n, from, e := unix.Recvfrom(s.FD(), buf, 0)
	if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
		return
	}
	if e != nil {
		s.teardown(socket.CloseReasonError)
		return
	}
	if from != nil {
		s.mu.Lock()
		s.lastPeer = sockaddrToNetAddr(from)
		s.mu.Unlock()
	}
	s.ReplaceRead(buf[:n])
}

// Send implements socket.Socket. For a Dial-opened socket it writes to the
// fixed peer; for a Listen-opened socket it writes to LastPeer, i.e. it
// replies to whoever sent the most recent datagram. Use SendTo to target a
// different peer on an unconnected socket.
func (s *Socket) Send(b []byte) (int, error) {
	if s.connected {
		return s.writeConnected(b)
	}
	return s.SendTo(s.LastPeer(), b)
}

// SendTo writes one datagram to addr on an unconnected socket.
func (s *Socket) SendTo(addr net.Addr, b []byte) (int, error) {
	if s.IsClosed() {
		return 0, socket.ErrClosed.Error(nil)
	}
	ua, ok := addr.(*net.UDPAddr)
	if !ok || ua == nil {
		return 0, socket.ErrInvalidParameter.Error(nil)
	}
	sa, e := sockaddrFromUDPAddr(ua)
	if e != nil {
		return 0, socket.ErrInvalidParameter.Error(e)
	}
	e = unix.Sendto(s.FD(), b, 0, sa)
	if e == nil {
		return len(b), nil
	}
	if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
		return 0, socket.ErrWouldBlock.Error(nil)
	}
	return 0, socket.ErrClosed.Error(e)
}

func (s *Socket) writeConnected(b []byte) (int, error) {
	if s.IsClosed() {
		return 0, socket.ErrClosed.Error(nil)
	}
	n, e := unix.Write(s.FD(), b)
	if e == nil {
		return n, nil
	}
	if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
		return 0, socket.ErrWouldBlock.Error(nil)
	}
	return 0, socket.ErrClosed.Error(e)
}

// Close implements socket.Socket.
func (s *Socket) Close() {
	s.teardown(socket.CloseReasonLocal)
}

func (s *Socket) teardown(reason socket.CloseReason) {
	if !s.MarkClosed(reason) {
		return
	}
	fd := s.FD()
	if s.rt != nil && fd >= 0 {
		_ = s.rt.CloseFD(fd)
	}
	if reason != socket.CloseReasonLocal {
		s.ScheduleEvent(socket.EventClosed)
	}
}

func sockaddrFromUDPAddr(a *net.UDPAddr) (unix.Sockaddr, error) {
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

func sockaddrToNetAddr(sa unix.Sockaddr) net.Addr {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.UDPAddr{IP: append([]byte(nil), v.Addr[:]...), Port: v.Port}
	case *unix.SockaddrInet6:
		return &net.UDPAddr{IP: append([]byte(nil), v.Addr[:]...), Port: v.Port}
	default:
		return nil
	}
}
