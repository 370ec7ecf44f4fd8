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
	"errors"
	"syscall"

	liberr "github.com/nabbar/reactor/errors"
)

const (
	// ErrOutboundFactory covers a factory failure creating the outbound
	// socket for a CONNECT request.
	ErrOutboundFactory liberr.CodeError = liberr.MinPkgSocks5 + iota
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgSocks5, socks5Message)
}

func socks5Message(code liberr.CodeError) string {
	switch code {
	case ErrOutboundFactory:
		return "socks5: outbound socket factory failed"
	default:
		return ""
	}
}

// mapErrToReply translates an OS-level dial failure into the closest SOCKS5
// reply code (§4.5: "the server maps the OS error to the closest SOCKS5
// reply code").
func mapErrToReply(e error) ReplyCode {
	if e == nil {
		return ReplySucceeded
	}

	var errno syscall.Errno
	if errors.As(e, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return ReplyConnectionRefused
		case syscall.ENETUNREACH:
			return ReplyNetworkUnreachable
		case syscall.EHOSTUNREACH:
			return ReplyHostUnreachable
		case syscall.ETIMEDOUT:
			return ReplyTTLExpired
		}
	}
	return ReplyGeneralFailure
}
