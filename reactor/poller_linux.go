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

//go:build linux

package reactor

import (
	"golang.org/x/sys/unix"
)

// poller wraps an epoll instance. It is the OS readiness primitive the
// reactor waits on once per tick (§4.1 step 2).
type poller struct {
	epfd int
}

func newPoller() (*poller, error) {
	fd, e := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if e != nil {
		return nil, e
	}
	return &poller{epfd: fd}, nil
}

func (p *poller) close() error {
	return unix.Close(p.epfd)
}

func interestToEpollEvents(i FDInterest) uint32 {
	var ev uint32
	if i.has(FDRead) {
		ev |= unix.EPOLLIN
	}
	if i.has(FDWrite) {
		ev |= unix.EPOLLOUT
	}
	return ev
}

// add registers fd with epoll for the given interest.
func (p *poller) add(fd int, interest FDInterest) error {
	ev := &unix.EpollEvent{Events: interestToEpollEvents(interest), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, ev)
}

// modify updates the interest mask of an already-registered fd.
func (p *poller) modify(fd int, interest FDInterest) error {
	ev := &unix.EpollEvent{Events: interestToEpollEvents(interest), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, ev)
}

// remove drops fd from epoll. It is a no-op if fd was never added or was
// already closed - the kernel removes closed descriptors from epoll sets
// automatically, so EBADF/ENOENT are swallowed here.
func (p *poller) remove(fd int) {
	_ = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

// wait blocks up to timeoutMs (a negative value blocks indefinitely) and
// returns the ready descriptors with their observed event mask.
func (p *poller) wait(timeoutMs int, buf []unix.EpollEvent) ([]unix.EpollEvent, error) {
	n, e := unix.EpollWait(p.epfd, buf, timeoutMs)
	for e == unix.EINTR {
		n, e = unix.EpollWait(p.epfd, buf, timeoutMs)
	}
	if e != nil {
		return nil, e
	}
	return buf[:n], nil
}

func epollEventsToInterest(ev uint32) FDInterest {
	var m FDInterest
	if ev&(unix.EPOLLIN|unix.EPOLLHUP|unix.EPOLLERR|unix.EPOLLRDHUP) != 0 {
		m |= FDRead
	}
	if ev&(unix.EPOLLOUT|unix.EPOLLERR) != 0 {
		m |= FDWrite
	}
	return m
}

// newWakePipe creates a non-blocking self-pipe used to interrupt an
// in-progress epoll_wait from another goroutine (Shutdown, a SIGCHLD
// forwarder, or a cross-goroutine registry mutation).
func newWakePipe() (r, w int, err error) {
	var fds [2]int
	if err = unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return -1, -1, err
	}
	return fds[0], fds[1], nil
}

func wakeByte(fd int) {
	_, _ = unix.Write(fd, []byte{0})
}

func drainWake(fd int) {
	var buf [64]byte
	for {
		n, e := unix.Read(fd, buf[:])
		if n <= 0 || e != nil {
			return
		}
	}
}
