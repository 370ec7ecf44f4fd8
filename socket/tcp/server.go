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
	"sync"

	"github.com/nabbar/reactor/reactor"
	"github.com/nabbar/reactor/socket"

	"golang.org/x/sys/unix"
)

// maxAcceptBatch bounds how many connections Server.onAccept drains from one
// listener per read-readiness event (§4.3: "up to an implementation-defined
// batch").
const maxAcceptBatch = 64

// ServerOwner receives newly accepted connections together with the opaque
// tag supplied when the listener was added.
type ServerOwner interface {
	OnAccept(conn socket.Socket, tag interface{})
}

type listener struct {
	fd   int
	tag  interface{}
	addr net.Addr
}

// Server is a collection of listening TCP descriptors sharing one owner. A
// single Server can serve several bound addresses; each carries its own
// opaque tag so the owner can tell them apart (§4.3: "the server's
// per-listener opaque tag").
type Server struct {
	mu sync.Mutex

	rt    reactor.Runner
	owner ServerOwner

	listeners map[int]*listener
	closed    bool
}

// NewServer creates an empty Server bound to no address; call AddListener
// at least once before traffic can arrive.
func NewServer(rt reactor.Runner, owner ServerOwner) *Server {
	return &Server{
		rt:        rt,
		owner:     owner,
		listeners: make(map[int]*listener),
	}
}

// AddListener binds and listens on laddr ("host:port") with the given
// backlog, associating tag with every connection subsequently accepted on
// it.
func (s *Server) AddListener(laddr string, backlog int, tag interface{}) error {
	addr, e := net.ResolveTCPAddr("tcp", laddr)
	if e != nil {
		return ErrListen.Error(e)
	}

	family := unix.AF_INET
	if addr.IP != nil && addr.IP.To4() == nil {
		family = unix.AF_INET6
	}

	fd, e := unix.Socket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if e != nil {
		return ErrListen.Error(e)
	}

	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)

	sa, e := sockaddrFromTCPAddr(addr)
	if e != nil {
		_ = unix.Close(fd)
		return ErrListen.Error(e)
	}
	if e = unix.Bind(fd, sa); e != nil {
		_ = unix.Close(fd)
		return ErrListen.Error(e)
	}
	if backlog <= 0 {
		backlog = 128
	}
	if e = unix.Listen(fd, backlog); e != nil {
		_ = unix.Close(fd)
		return ErrListen.Error(e)
	}
	if e = unix.SetNonblock(fd, true); e != nil {
		_ = unix.Close(fd)
		return ErrListen.Error(e)
	}

	l := &listener{fd: fd, tag: tag, addr: addr}

	s.mu.Lock()
	s.listeners[fd] = l
	s.mu.Unlock()

	if e = s.rt.RegisterFD(fd, s.onAcceptReady, reactor.FDRead); e != nil {
		s.mu.Lock()
		delete(s.listeners, fd)
		s.mu.Unlock()
		_ = unix.Close(fd)
		return e
	}
	return nil
}

func (s *Server) onAcceptReady(fd int, _ reactor.FDInterest) {
	s.mu.Lock()
	l, ok := s.listeners[fd]
	s.mu.Unlock()
	if !ok {
		return
	}

	for i := 0; i < maxAcceptBatch; i++ {
		cfd, _, e := unix.Accept4(fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if e != nil {
			if e == unix.EAGAIN || e == unix.EWOULDBLOCK {
				return
			}
			return
		}

		c, e := adopt(s.rt, cfd, nil)
		if e != nil {
			continue
		}
		if s.owner != nil {
			s.owner.OnAccept(c, l.tag)
		}
	}
}

// Close shuts down every listener. Accepted connections already handed to
// the owner are unaffected.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	ls := s.listeners
	s.listeners = make(map[int]*listener)
	s.mu.Unlock()

	var first error
	for fd := range ls {
		if e := s.rt.CloseFD(fd); e != nil && first == nil {
			first = e
		}
	}
	return first
}
