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
	"github.com/nabbar/reactor/reactor"
	"github.com/nabbar/reactor/socket"
	"github.com/nabbar/reactor/socket/tcp"
)

// OutboundFactory creates and starts connecting an outbound TCP socket for
// dest. It mirrors §4.5's "generate_outbound_tcp_socket": the caller decides
// how the outbound socket is built (e.g. bound to a particular interface)
// but the server drives its connect/connect-failed lifecycle.
type OutboundFactory func(rt reactor.Runner, dest Addr) (*tcp.Conn, error)

// ServerOwner is notified once a CONNECT tunnel is fully established, with
// both legs still unowned beyond the server's internal bookkeeping - the
// caller is expected to take ownership (e.g. via NewProxy) immediately.
type ServerOwner interface {
	NewOutboundTCPLink(client *tcp.Conn, remote *tcp.Conn)
}

// Server is a TCP server whose accepted connections are SOCKS5 CONNECT
// tunnels (§4.5).
type Server struct {
	rt      reactor.Runner
	tcpSrv  *tcp.Server
	factory OutboundFactory
	owner   ServerOwner
}

var _ tcp.ServerOwner = (*Server)(nil)
var _ Owner = (*Server)(nil)

// NewServer creates a SOCKS5 server. factory builds the outbound socket for
// each CONNECT request; owner is notified once a tunnel is ready to relay.
func NewServer(rt reactor.Runner, factory OutboundFactory, owner ServerOwner) *Server {
	s := &Server{rt: rt, factory: factory, owner: owner}
	s.tcpSrv = tcp.NewServer(rt, s)
	return s
}

// AddListener binds a new listening address, per §6.
func (s *Server) AddListener(laddr string, backlog int, tag interface{}) error {
	return s.tcpSrv.AddListener(laddr, backlog, tag)
}

// Close closes every listener and, transitively, every in-progress
// handshake socket still owned by the server.
func (s *Server) Close() error {
	return s.tcpSrv.Close()
}

// OnAccept implements tcp.ServerOwner: every freshly accepted connection
// starts a new handshake state machine.
func (s *Server) OnAccept(conn socket.Socket, _ interface{}) {
	tc, ok := conn.(*tcp.Conn)
	if !ok {
		conn.Close()
		return
	}
	NewServerSocket(tc, s)
}

// TCPConnectRequested implements Owner: it asks the factory for an outbound
// socket and links its lifecycle to the inbound handshake.
func (s *Server) TCPConnectRequested(ss *ServerSocket, dest Addr) ReplyCode {
	out, e := s.factory(s.rt, dest)
	if e != nil {
		return mapErrToReply(e)
	}

	link := &outboundLink{server: s, inbound: ss, outbound: out}
	out.RefOwner(link)
	return ReplySucceeded
}

// outboundLink is the socket.Owner attached to an outbound socket while its
// connect is in flight; it bridges the outcome back to the inbound
// ServerSocket and, on success, to the server's outer owner.
type outboundLink struct {
	server   *Server
	inbound  *ServerSocket
	outbound *tcp.Conn
}

var _ socket.Owner = (*outboundLink)(nil)

func (l *outboundLink) OnConnected(socket.Socket) {
	ip, port := l.outbound.LocalAddr()
	l.inbound.CompleteConnect(ip, port)
	if l.server.owner != nil {
		l.server.owner.NewOutboundTCPLink(l.inbound.Conn(), l.outbound)
	}
}

func (l *outboundLink) OnConnectFailed(_ socket.Socket, reason error) {
	l.inbound.FailConnect(mapErrToReply(reason))
	l.outbound.Close()
}

func (l *outboundLink) OnDataReceived(socket.Socket)          {}
func (l *outboundLink) OnReadyToSend(socket.Socket)           {}
func (l *outboundLink) OnClosed(socket.Socket, socket.CloseReason) {}
