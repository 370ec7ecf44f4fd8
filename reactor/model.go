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

package reactor

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	liberr "github.com/nabbar/reactor/errors"
	liblog "github.com/nabbar/reactor/logger"
	loglvl "github.com/nabbar/reactor/logger/level"

	"golang.org/x/sys/unix"
)

const maxEpollBatch = 128

// Reactor is a single-threaded cooperative scheduler combining the FD,
// timer and child registries described in §3/§4.1. A process normally owns
// a single instance, but nothing here prevents spinning up isolated
// instances for tests.
type Reactor struct {
	mu sync.Mutex

	poll *poller
	evts []unix.EpollEvent

	fds map[int]*fdEntry

	timers   timerHeap
	timerSeq uint64

	children map[int]*childEntry

	loopEnd []func()

	wakeR, wakeW int

	running  int32
	shutdown int32

	log liblog.FuncLog
}

// New creates a Reactor and its underlying epoll instance and self-pipe.
// The returned Reactor is idle until Run is called.
func New(log liblog.FuncLog) (*Reactor, error) {
	p, e := newPoller()
	if e != nil {
		return nil, ErrPollerInit.Error(e)
	}

	r, w, e := newWakePipe()
	if e != nil {
		_ = p.close()
		return nil, ErrPollerInit.Error(e)
	}

	rt := &Reactor{
		poll:     p,
		evts:     make([]unix.EpollEvent, maxEpollBatch),
		fds:      make(map[int]*fdEntry),
		children: make(map[int]*childEntry),
		wakeR:    r,
		wakeW:    w,
		log:      log,
	}

	if e = p.add(r, FDRead); e != nil {
		_ = p.close()
		_ = unix.Close(r)
		_ = unix.Close(w)
		return nil, ErrFDRegister.Error(e)
	}

	return rt, nil
}

func (o *Reactor) logEntry(lvl loglvl.Level, msg string, err ...error) {
	if o.log == nil {
		return
	}
	if l := o.log(); l != nil {
		l.Entry(lvl, msg).ErrorAdd(true, err...).Log()
	}
}

func (o *Reactor) wake() {
	wakeByte(o.wakeW)
}

// RegisterFD begins delivering readiness events for fd, replacing any
// prior registration.
func (o *Reactor) RegisterFD(fd int, handler FDHandler, interest FDInterest) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	_, existed := o.fds[fd]
	o.fds[fd] = &fdEntry{fd: fd, interest: interest, handler: handler}

	var e error
	if existed {
		e = o.poll.modify(fd, interest)
	} else {
		e = o.poll.add(fd, interest)
	}
	if e != nil {
		delete(o.fds, fd)
		return ErrFDRegister.Error(e)
	}
	o.wake()
	return nil
}

// SetFDEvents replaces the interest mask for fd without touching the
// handler.
func (o *Reactor) SetFDEvents(fd int, interest FDInterest) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	ent, ok := o.fds[fd]
	if !ok {
		return nil
	}
	ent.interest = interest
	if e := o.poll.modify(fd, interest); e != nil {
		return ErrFDRegister.Error(e)
	}
	o.wake()
	return nil
}

// EnableRead adds FDRead to fd's interest mask.
func (o *Reactor) EnableRead(fd int) error { return o.addInterest(fd, FDRead) }

// EnableWrite adds FDWrite to fd's interest mask.
func (o *Reactor) EnableWrite(fd int) error { return o.addInterest(fd, FDWrite) }

// DisableRead removes FDRead from fd's interest mask.
func (o *Reactor) DisableRead(fd int) error { return o.removeInterest(fd, FDRead) }

// DisableWrite removes FDWrite from fd's interest mask.
func (o *Reactor) DisableWrite(fd int) error { return o.removeInterest(fd, FDWrite) }

func (o *Reactor) addInterest(fd int, flag FDInterest) error {
	o.mu.Lock()
	ent, ok := o.fds[fd]
	if !ok {
		o.mu.Unlock()
		return nil
	}
	ent.interest |= flag
	i := ent.interest
	o.mu.Unlock()
	return o.SetFDEvents(fd, i)
}

func (o *Reactor) removeInterest(fd int, flag FDInterest) error {
	o.mu.Lock()
	ent, ok := o.fds[fd]
	if !ok {
		o.mu.Unlock()
		return nil
	}
	ent.interest &^= flag
	i := ent.interest
	o.mu.Unlock()
	return o.SetFDEvents(fd, i)
}

// CloseFD removes fd's registration and closes the descriptor. Once this
// returns, no event for fd will ever be dispatched again, even one already
// observed from the current tick's epoll_wait batch.
func (o *Reactor) CloseFD(fd int) error {
	o.mu.Lock()
	_, existed := o.fds[fd]
	delete(o.fds, fd)
	if existed {
		o.poll.remove(fd)
	}
	o.mu.Unlock()

	return unix.Close(fd)
}

// StartTimer arms a new one-shot timer firing handler after delay. The
// returned Timer may be stopped at any time before it fires.
func (o *Reactor) StartTimer(delay time.Duration, handler TimerHandler) Timer {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.timerSeq++
	rec := &timerRecord{
		expiry:  Now().Add(delay),
		handler: handler,
		seq:     o.timerSeq,
	}
	heap.Push(&o.timers, rec)
	o.wake()
	return rec
}

// RegisterChild subscribes to lifecycle notifications for pid. pid must
// identify a direct child of this process.
func (o *Reactor) RegisterChild(pid int, handler ChildHandler) {
	o.mu.Lock()
	o.children[pid] = &childEntry{pid: pid, handler: handler}
	o.mu.Unlock()
	o.wake()
}

// RemoveChild cancels a prior RegisterChild subscription. It is a no-op if
// pid is not currently registered.
func (o *Reactor) RemoveChild(pid int) {
	o.mu.Lock()
	delete(o.children, pid)
	o.mu.Unlock()
}

// SubscribeLoopEnd registers a one-shot callback invoked after every
// FD/timer/child handler of the current tick has run, and before the next
// OS wait. The handler must re-subscribe if it wants to run again.
func (o *Reactor) SubscribeLoopEnd(handler func()) {
	o.mu.Lock()
	o.loopEnd = append(o.loopEnd, handler)
	o.mu.Unlock()
	o.wake()
}

// Shutdown arms the shutdown flag; the running Run call returns once the
// current tick completes.
func (o *Reactor) Shutdown() {
	atomic.StoreInt32(&o.shutdown, 1)
	o.wake()
}

// Close releases the poller and self-pipe. Run must have returned before
// Close is called.
func (o *Reactor) Close() error {
	_ = o.poll.close()
	_ = unix.Close(o.wakeR)
	_ = unix.Close(o.wakeW)
	return nil
}

// Run drives the reactor until Shutdown is called. It must not be called
// re-entrantly (from within one of its own handlers).
func (o *Reactor) Run() error {
	if !atomic.CompareAndSwapInt32(&o.running, 0, 1) {
		return ErrReentrantRun.Error(nil)
	}
	defer atomic.StoreInt32(&o.running, 0)

	for atomic.LoadInt32(&o.shutdown) == 0 {
		o.tick()
	}
	return nil
}

// tick runs exactly one iteration of the algorithm in §4.1.
func (o *Reactor) tick() {
	timeout := o.nextTimeout()

	ready, e := o.poll.wait(timeout, o.evts)
	if e != nil {
		o.logEntry(loglvl.ErrorLevel, "epoll_wait failed", e)
		return
	}

	// 3. FD phase, dispatched in the order the OS returned readiness.
	for _, ev := range ready {
		fd := int(ev.Fd)
		if fd == o.wakeR {
			drainWake(o.wakeR)
			continue
		}

		o.mu.Lock()
		ent, ok := o.fds[fd]
		var interest FDInterest
		var handler FDHandler
		if ok {
			interest = ent.interest
			handler = ent.handler
		}
		o.mu.Unlock()

		if !ok || handler == nil {
			continue
		}

		observed := epollEventsToInterest(ev.Events) & interest
		if observed == 0 && ev.Events&(unix.EPOLLHUP|unix.EPOLLERR) != 0 {
			observed = interest
		}
		if observed != 0 {
			handler(fd, observed)
		}
	}

	// 4. Timer phase: expire everything due, in expiry order.
	now := Now()
	for {
		o.mu.Lock()
		if o.timers.Len() == 0 {
			o.mu.Unlock()
			break
		}
		top := o.timers[0]
		if top.cancelled {
			heap.Pop(&o.timers)
			o.mu.Unlock()
			continue
		}
		if top.expiry.After(now) {
			o.mu.Unlock()
			break
		}
		heap.Pop(&o.timers)
		o.mu.Unlock()

		if top.handler != nil {
			top.handler(now)
		}
	}

	// 5. Child phase: reap every zombie and dispatch to a registered
	// handler, removing the entry before the handler runs.
	o.reapChildren()

	// 6. End-of-loop phase: callbacks scheduled during the drain are
	// deferred to the next tick.
	o.mu.Lock()
	batch := o.loopEnd
	o.loopEnd = nil
	o.mu.Unlock()

	for _, cb := range batch {
		if cb != nil {
			cb()
		}
	}
}

func (o *Reactor) reapChildren() {
	for {
		var ws syscall.WaitStatus
		pid, e := syscall.Wait4(-1, &ws, syscall.WNOHANG, nil)
		if e != nil || pid <= 0 {
			return
		}

		o.mu.Lock()
		ent, ok := o.children[pid]
		if ok {
			delete(o.children, pid)
		}
		o.mu.Unlock()

		if ok && ent.handler != nil {
			ent.handler(pid, newChildStatus(ws))
		}
	}
}

// nextTimeout computes the epoll_wait timeout in milliseconds: the delay
// until the earliest unexpired timer, or -1 (block indefinitely) if none
// is armed.
func (o *Reactor) nextTimeout() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	for o.timers.Len() > 0 && o.timers[0].cancelled {
		heap.Pop(&o.timers)
	}
	if o.timers.Len() == 0 {
		return -1
	}

	d := o.timers[0].expiry.Sub(Now())
	if d <= 0 {
		return 0
	}
	ms := d.Milliseconds()
	if ms <= 0 {
		return 1
	}
	return int(ms)
}
