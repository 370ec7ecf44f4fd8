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
	liberr "github.com/nabbar/reactor/errors"
)

const (
	// ErrReentrantRun is returned by Run when the reactor is already
	// running on another goroutine. Nested Run calls are forbidden (§4.1).
	ErrReentrantRun liberr.CodeError = liberr.MinPkgReactor + iota
	// ErrPollerInit is returned by New when the OS readiness primitive
	// could not be initialized.
	ErrPollerInit
	// ErrFDRegister is returned when a descriptor cannot be registered
	// with the poller.
	ErrFDRegister
	// ErrUnknownTimer is a debug-only signal that StartTimer/StopTimer was
	// called with an already-released handle; it never escapes Reactor.
	ErrUnknownTimer
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgReactor, reactorMessage)
}

func reactorMessage(code liberr.CodeError) string {
	switch code {
	case ErrReentrantRun:
		return "reactor is already running"
	case ErrPollerInit:
		return "cannot initialize the OS readiness primitive"
	case ErrFDRegister:
		return "cannot register file descriptor with the poller"
	case ErrUnknownTimer:
		return "unknown or already released timer"
	default:
		return ""
	}
}
