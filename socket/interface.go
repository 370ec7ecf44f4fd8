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

// Event is a bitmap of pending, not-yet-delivered semantic events.
type Event uint8

const (
	EventConnected Event = 1 << iota
	EventConnectFailed
	EventDataReceived
	EventReadyToSend
	EventClosed
)

// Flag is the durable state bitmap carried by every socket. The base
// reserves the low byte; TCP, UDP and SOCKS5 reserve the next ranges
// starting at FlagBaseMax so a derived flag never collides with a base one.
type Flag uint32

const (
	FlagValid Flag = 1 << iota
	FlagBound
	FlagConnecting
	FlagConnected
	FlagClosed
	FlagRemoteClosed
	FlagSendBlocked

	// FlagBaseMax is the first bit a derived socket variant may use for its
	// own flags.
	FlagBaseMax Flag = 1 << 8
)

// CloseReason distinguishes why a socket transitioned to closed.
type CloseReason uint8

const (
	// CloseReasonLocal means Close was called by the owner; no closed
	// event is delivered to the caller that requested it (§7).
	CloseReasonLocal CloseReason = iota
	// CloseReasonFIN means the peer performed an orderly shutdown.
	CloseReasonFIN
	// CloseReasonReset means the peer aborted the connection (RST).
	CloseReasonReset
	// CloseReasonError means a transport error forced the close.
	CloseReasonError
)

func (r CloseReason) String() string {
	switch r {
	case CloseReasonLocal:
		return "local"
	case CloseReasonFIN:
		return "fin"
	case CloseReasonReset:
		return "reset"
	case CloseReasonError:
		return "error"
	default:
		return "unknown"
	}
}

// Owner receives the semantic events emitted by a Socket it owns. All five
// methods are invoked at end-of-loop (never synchronously from an
// owner-initiated call), and in the order events occurred.
type Owner interface {
	OnConnected(s Socket)
	OnConnectFailed(s Socket, reason error)
	OnDataReceived(s Socket)
	OnReadyToSend(s Socket)
	OnClosed(s Socket, reason CloseReason)
}

// Socket is the contract shared by every concrete transport.
type Socket interface {
	// Send appends b to the outbound write queue, flushing immediately if
	// possible. It returns how many leading bytes of b were accepted into
	// the pipeline; a short count means the remainder is now queued.
	Send(b []byte) (int, error)

	// ReadBuffer returns an immutable view of bytes received but not yet
	// consumed by the owner.
	ReadBuffer() []byte

	// ConsumeReadBuffer drops the first n bytes of the read buffer.
	ConsumeReadBuffer(n int)

	// Close marks the socket closed and schedules a terminal closed event
	// for any owner other than the caller.
	Close()

	// RefOwner transfers ownership to a new Owner. The socket survives the
	// transfer even if the previous owner was the only reference holder.
	RefOwner(owner Owner)

	// UnrefOwner relinquishes ownership held by owner. The last unref
	// closes and releases the socket.
	UnrefOwner(owner Owner)

	// FD returns the underlying file descriptor, or -1 once closed.
	FD() int

	// IsClosed reports whether the socket has reached the closed state.
	IsClosed() bool
}
