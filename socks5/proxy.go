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
	"github.com/nabbar/reactor/socket"
)

// Proxy forwards bytes between two already-connected TCP sockets in both
// directions (§4.6). It becomes the Owner of both legs; a hard error or a
// close on either side tears down the pair.
type Proxy struct {
	client socket.Socket
	remote socket.Socket

	clientToRemote uint64
	remoteToClient uint64
}

var _ socket.Owner = (*Proxy)(nil)

// NewProxy refs itself onto both sockets and begins pumping whatever is
// already buffered on either side.
func NewProxy(client, remote socket.Socket) *Proxy {
	p := &Proxy{client: client, remote: remote}
	client.RefOwner(p)
	remote.RefOwner(p)

	if len(client.ReadBuffer()) > 0 {
		p.pump(client, remote, &p.clientToRemote)
	}
	if len(remote.ReadBuffer()) > 0 {
		p.pump(remote, client, &p.remoteToClient)
	}
	return p
}

// ClientToRemoteBytes reports bytes forwarded from client to remote.
func (p *Proxy) ClientToRemoteBytes() uint64 { return p.clientToRemote }

// RemoteToClientBytes reports bytes forwarded from remote to client.
func (p *Proxy) RemoteToClientBytes() uint64 { return p.remoteToClient }

func (p *Proxy) OnConnected(socket.Socket)          {}
func (p *Proxy) OnConnectFailed(socket.Socket, error) {}

func (p *Proxy) OnDataReceived(s socket.Socket) {
	if s == p.client {
		p.pump(p.client, p.remote, &p.clientToRemote)
	} else {
		p.pump(p.remote, p.client, &p.remoteToClient)
	}
}

// OnReadyToSend retries the direction whose destination just became
// writable again, per §4.6's "on destination's next ready-to-send, retry".
func (p *Proxy) OnReadyToSend(s socket.Socket) {
	if s == p.remote {
		p.pump(p.client, p.remote, &p.clientToRemote)
	} else {
		p.pump(p.remote, p.client, &p.remoteToClient)
	}
}

func (p *Proxy) OnClosed(s socket.Socket, _ socket.CloseReason) {
	if s == p.client {
		p.remote.Close()
	} else {
		p.client.Close()
	}
}

// pump forwards everything currently buffered in src's read buffer into
// dst, consuming exactly what dst accepted and tearing down both legs on a
// hard error.
func (p *Proxy) pump(src, dst socket.Socket, counter *uint64) {
	b := src.ReadBuffer()
	if len(b) == 0 {
		return
	}

	n, e := dst.Send(b)
	if n > 0 {
		src.ConsumeReadBuffer(n)
		*counter += uint64(n)
	}
	if e != nil && !socket.IsTransient(e) {
		src.Close()
		dst.Close()
	}
}
