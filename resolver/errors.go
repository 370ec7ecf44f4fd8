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

package resolver

import (
	liberr "github.com/nabbar/reactor/errors"
)

// Error kinds from §4.7's "errno is set on failure to a meaningful value".
const (
	// ErrInvalid mirrors EINVAL: every query failed and no server ever
	// produced even an empty answer.
	ErrInvalid liberr.CodeError = liberr.MinPkgResolver + iota
	// ErrTimedOut mirrors ETIMEDOUT: the overall deadline passed with no
	// non-empty answer and no empty answer observed either.
	ErrTimedOut
	// ErrNoMemory mirrors ENOMEM: a query buffer could not be allocated or
	// packed.
	ErrNoMemory
	// ErrNoServers means Resolve was called with zero servers.
	ErrNoServers
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgResolver, resolverMessage)
}

func resolverMessage(code liberr.CodeError) string {
	switch code {
	case ErrInvalid:
		return "resolver: all queries failed"
	case ErrTimedOut:
		return "resolver: timed out"
	case ErrNoMemory:
		return "resolver: failed to build query"
	case ErrNoServers:
		return "resolver: no servers configured"
	default:
		return ""
	}
}
