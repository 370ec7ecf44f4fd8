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
	liberr "github.com/nabbar/reactor/errors"
)

// Error kinds from §7. These are sentinel values: compare with errors.Is.
const (
	ErrSoftFail liberr.CodeError = liberr.MinPkgSocket + iota
	ErrWouldBlock
	ErrNotConnected
	ErrClosed
	ErrWrongState
	ErrInvalidParameter
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgSocket, socketMessage)
}

func socketMessage(code liberr.CodeError) string {
	switch code {
	case ErrSoftFail:
		return "transient condition, await ready-to-send"
	case ErrWouldBlock:
		return "operation would block"
	case ErrNotConnected:
		return "socket is not connected"
	case ErrClosed:
		return "socket is closed"
	case ErrWrongState:
		return "socket is in an incompatible state for this operation"
	case ErrInvalidParameter:
		return "invalid parameter"
	default:
		return ""
	}
}

// IsTransient reports whether err represents a transient send failure the
// caller should retry after a ready-to-send event, as opposed to a hard
// error that should tear the socket down (§4.6).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return liberr.IsCode(err, ErrSoftFail) || liberr.IsCode(err, ErrWouldBlock)
}
