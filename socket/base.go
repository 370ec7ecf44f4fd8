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

package socket

import (
	"sync"

	"github.com/nabbar/reactor/reactor"
)

// Base carries everything the abstract Socket contract in §4.2 defines:
// the owner reference, the pending-event bitmap, the durable flag bitmap,
// the read buffer and the write queue. Concrete transports (tcp.Conn,
// udp.Conn, the SOCKS5 server socket) embed Base and supply the
// transport-specific Flush/Fill behavior; Base supplies the ownership and
// deferred-delivery machinery so none of that logic is duplicated per
// transport.
//
// In the original C++ source this bookkeeping lived on an invasively
// reference-counted object with a pool-backed allocator (§9). Go's GC makes
// the reference count unnecessary: Base tracks only whether an owner is
// currently attached, and the single owner field holds the one strong
// reference the design calls for.
type Base struct {
	mu sync.Mutex

	rt   reactor.Runner
	fd   int
	self Socket

	owner Owner

	events    Event
	scheduled bool

	flags Flag

	read  readBuffer
	write writeQueue

	closeReason CloseReason
	connFailErr error
}

// Init wires the base to its reactor, descriptor and the concrete socket
// that embeds it (so Owner callbacks receive the right Socket value).
func (b *Base) Init(rt reactor.Runner, fd int, self Socket) {
	b.rt = rt
	b.fd = fd
	b.self = self
	b.flags = FlagValid
}

// FD returns the underlying descriptor, or -1 once closed.
func (b *Base) FD() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.flags&FlagClosed != 0 {
		return -1
	}
	return b.fd
}

// IsClosed reports whether FlagClosed has been set.
func (b *Base) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flags&FlagClosed != 0
}

// HasFlag reports whether every bit in f is set.
func (b *Base) HasFlag(f Flag) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flags&f == f
}

// SetFlag sets every bit in f.
func (b *Base) SetFlag(f Flag) {
	b.mu.Lock()
	b.flags |= f
	b.mu.Unlock()
}

// ClearFlag clears every bit in f.
func (b *Base) ClearFlag(f Flag) {
	b.mu.Lock()
	b.flags &^= f
	b.mu.Unlock()
}

// ReadBuffer returns an immutable view of unconsumed bytes.
func (b *Base) ReadBuffer() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read.Bytes()
}

// ConsumeReadBuffer drops the first n bytes of the read buffer.
func (b *Base) ConsumeReadBuffer(n int) {
	b.mu.Lock()
	b.read.Consume(n)
	b.mu.Unlock()
}

// AppendRead feeds freshly received bytes into the read buffer and
// schedules data-received. Coalescing is automatic: calling this twice
// before delivery just grows the buffer under one pending event bit.
func (b *Base) AppendRead(p []byte) {
	b.mu.Lock()
	b.read.Append(p)
	b.mu.Unlock()
	b.ScheduleEvent(EventDataReceived)
}

// ReplaceRead discards any unread bytes and installs p as the sole pending
// datagram, then schedules data-received. Used by datagram transports where
// §4.4 guarantees "no read buffering beyond one datagram".
func (b *Base) ReplaceRead(p []byte) {
	b.mu.Lock()
	b.read.Consume(b.read.Len())
	b.read.Append(p)
	b.mu.Unlock()
	b.ScheduleEvent(EventDataReceived)
}

// EnqueueWrite appends b to the outbound write queue.
func (b *Base) EnqueueWrite(p []byte) {
	b.mu.Lock()
	b.write.Enqueue(p)
	b.mu.Unlock()
}

// WriteQueueEmpty reports whether every queued byte has been flushed.
func (b *Base) WriteQueueEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.write.Empty()
}

// WriteQueuePending returns how many bytes are still queued.
func (b *Base) WriteQueuePending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.write.Pending()
}

// WriteFront returns the unwritten tail of the head chunk.
func (b *Base) WriteFront() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.write.Front()
}

// WriteAdvance records n bytes of the head chunk(s) as transmitted.
func (b *Base) WriteAdvance(n int) {
	b.mu.Lock()
	b.write.Advance(n)
	b.mu.Unlock()
}

// Owner returns the currently attached owner, or nil.
func (b *Base) Owner() Owner {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.owner
}

// RefOwner attaches newOwner as the socket's single strong reference,
// replacing any previous owner without an intervening gap - the new owner
// is set before any pending delivery can observe a nil owner.
func (b *Base) RefOwner(newOwner Owner) {
	b.mu.Lock()
	b.owner = newOwner
	b.mu.Unlock()
}

// UnrefOwner relinquishes ownership held by owner. Per §4.2, the last unref
// closes and releases the socket; since Base holds the only strong
// reference, "releases" is simply clearing the owner field once Close has
// run.
func (b *Base) UnrefOwner(owner Owner) {
	b.mu.Lock()
	same := b.owner == owner
	b.mu.Unlock()
	if !same {
		return
	}
	b.self.Close()
	b.mu.Lock()
	b.owner = nil
	b.mu.Unlock()
}

// MarkClosed sets FlagClosed and records why, returning false if the
// socket was already closed (so callers schedule the terminal event
// exactly once).
func (b *Base) MarkClosed(reason CloseReason) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.flags&FlagClosed != 0 {
		return false
	}
	b.flags |= FlagClosed
	b.closeReason = reason
	return true
}

// CloseReason returns the reason recorded by MarkClosed.
func (b *Base) CloseReason() CloseReason {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closeReason
}

// ScheduleEvent marks ev pending and, the first time any bit becomes
// pending within a tick, subscribes a one-shot end-of-loop callback that
// drains every pending bit for this socket. Repeated calls before delivery
// just OR more bits into the same pending callback (§4.2 event coalescing).
func (b *Base) ScheduleEvent(ev Event) {
	b.mu.Lock()
	b.events |= ev
	already := b.scheduled
	if !already {
		b.scheduled = true
	}
	rt := b.rt
	b.mu.Unlock()

	if !already && rt != nil {
		rt.SubscribeLoopEnd(b.drain)
	}
}

// drain delivers every pending event to the current owner, in the fixed
// order connected -> connect-failed -> data-received -> ready-to-send ->
// closed, then clears the pending bitmap.
func (b *Base) drain() {
	b.mu.Lock()
	pending := b.events
	b.events = 0
	b.scheduled = false
	owner := b.owner
	self := b.self
	b.mu.Unlock()

	if owner == nil {
		return
	}

	if pending&EventConnected != 0 {
		owner.OnConnected(self)
	}
	if pending&EventConnectFailed != 0 {
		owner.OnConnectFailed(self, b.connectErr())
	}
	if pending&EventDataReceived != 0 {
		if b.ReadBuffer() != nil && len(b.ReadBuffer()) > 0 {
			owner.OnDataReceived(self)
		}
	}
	if pending&EventReadyToSend != 0 {
		owner.OnReadyToSend(self)
	}
	if pending&EventClosed != 0 {
		owner.OnClosed(self, b.CloseReason())
	}
}

// connectFailErr holds the reason passed to the last ScheduleConnectFailed
// call so drain can hand it to the owner.
func (b *Base) connectErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connFailErr
}

// ScheduleConnectFailed schedules connect-failed with reason.
func (b *Base) ScheduleConnectFailed(reason error) {
	b.mu.Lock()
	b.connFailErr = reason
	b.mu.Unlock()
	b.ScheduleEvent(EventConnectFailed)
}
