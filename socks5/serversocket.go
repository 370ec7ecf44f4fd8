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
	"net"

	"github.com/nabbar/reactor/socket"
	"github.com/nabbar/reactor/socket/tcp"
)

// State is the SOCKS5 server-side connection state (§4.5).
type State uint8

const (
	AwaitGreeting State = iota
	AwaitRequest
	Replying
	Relaying
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitGreeting:
		return "await-greeting"
	case AwaitRequest:
		return "await-request"
	case Replying:
		return "replying"
	case Relaying:
		return "relaying"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Owner decides how to handle a CONNECT request. ReplySucceeded means
// "connection in progress": the owner is expected to drive the outbound
// socket to completion and eventually call CompleteConnect or FailConnect
// on the ServerSocket it was given.
type Owner interface {
	TCPConnectRequested(ss *ServerSocket, dest Addr) ReplyCode
}

// ServerSocket decodes and encodes the RFC 1928 handshake over an accepted
// TCP connection. Once the handshake succeeds, it steps out of the way: the
// caller re-owns the underlying connection directly and from then on sees
// only raw bytes, per §4.5 ("the socket acts as a plain TCP socket").
type ServerSocket struct {
	conn  *tcp.Conn
	owner Owner
	state State
	dest  Addr
}

var _ socket.Owner = (*ServerSocket)(nil)

// NewServerSocket starts the handshake state machine over conn, an already
// accepted and connected TCP socket.
func NewServerSocket(conn *tcp.Conn, owner Owner) *ServerSocket {
	ss := &ServerSocket{conn: conn, owner: owner, state: AwaitGreeting}
	conn.RefOwner(ss)
	return ss
}

// Conn returns the underlying TCP connection.
func (ss *ServerSocket) Conn() *tcp.Conn { return ss.conn }

// State reports the current handshake state.
func (ss *ServerSocket) State() State { return ss.state }

// Dest returns the destination address parsed from the CONNECT request.
func (ss *ServerSocket) Dest() Addr { return ss.dest }

func (ss *ServerSocket) OnConnected(socket.Socket)          {}
func (ss *ServerSocket) OnConnectFailed(socket.Socket, error) {}
func (ss *ServerSocket) OnReadyToSend(socket.Socket)        {}

func (ss *ServerSocket) OnClosed(socket.Socket, socket.CloseReason) {
	ss.state = Failed
}

func (ss *ServerSocket) OnDataReceived(socket.Socket) {
	for {
		progressed, done := ss.step()
		if done || !progressed {
			return
		}
	}
}

// step processes as much of the pending read buffer as a complete frame
// allows. It returns whether it made progress (consumed bytes or changed
// state) and whether the connection is no longer in a state that consumes
// more handshake bytes (Replying, Relaying or Failed).
func (ss *ServerSocket) step() (progressed bool, done bool) {
	buf := ss.conn.ReadBuffer()

	switch ss.state {
	case AwaitGreeting:
		consumed, methods, ver, ok := parseGreeting(buf)
		if !ok {
			return false, false
		}
		ss.conn.ConsumeReadBuffer(consumed)

		if ver != 0x05 {
			ss.fail()
			return true, true
		}
		if !containsMethod(methods, 0x00) {
			_, _ = ss.conn.Send([]byte{0x05, 0xFF})
			ss.fail()
			return true, true
		}
		_, _ = ss.conn.Send([]byte{0x05, 0x00})
		ss.state = AwaitRequest
		return true, false

	case AwaitRequest:
		consumed, fields, ver, atypOK, ok := parseRequest(buf)
		if !ok {
			return false, false
		}
		if !atypOK {
			ss.sendReply(ReplyAddressTypeNotSupported, nil, 0)
			ss.fail()
			return true, true
		}
		ss.conn.ConsumeReadBuffer(consumed)

		if ver != 0x05 {
			ss.fail()
			return true, true
		}
		if fields.cmd != cmdConnect {
			ss.sendReply(ReplyCommandNotSupported, nil, 0)
			ss.fail()
			return true, true
		}

		ss.dest = fields.dest
		ss.state = Replying

		if ss.owner == nil {
			ss.sendReply(ReplyGeneralFailure, nil, 0)
			ss.fail()
			return true, true
		}

		rep := ss.owner.TCPConnectRequested(ss, ss.dest)
		if rep != ReplySucceeded {
			ss.sendReply(rep, nil, 0)
			ss.fail()
			return true, true
		}
		// Waits for CompleteConnect/FailConnect; nothing more to parse.
		return true, true

	default:
		return false, true
	}
}

// CompleteConnect is invoked by the owner once the outbound socket reaches
// Connected. It sends the success reply carrying the outbound socket's
// bound local address and transitions to Relaying.
func (ss *ServerSocket) CompleteConnect(localIP net.IP, localPort uint16) {
	ss.state = Relaying
	ss.sendReply(ReplySucceeded, localIP, localPort)
}

// FailConnect is invoked by the owner when the outbound socket fails to
// connect. It sends rep as the reply code and closes the inbound socket.
func (ss *ServerSocket) FailConnect(rep ReplyCode) {
	ss.sendReply(rep, nil, 0)
	ss.fail()
}

func (ss *ServerSocket) sendReply(rep ReplyCode, ip net.IP, port uint16) {
	_, _ = ss.conn.Send(encodeReply(rep, ip, port))
}

func (ss *ServerSocket) fail() {
	ss.state = Failed
	ss.conn.Close()
}
