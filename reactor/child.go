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

import "syscall"

// ChildStatus is the terminal status of a reaped child process, derived
// from the raw wait status returned by wait4(2).
type ChildStatus struct {
	Exited     bool
	ExitCode   int
	Signaled   bool
	Signal     syscall.Signal
	CoreDumped bool
}

func newChildStatus(ws syscall.WaitStatus) ChildStatus {
	return ChildStatus{
		Exited:     ws.Exited(),
		ExitCode:   ws.ExitStatus(),
		Signaled:   ws.Signaled(),
		Signal:     ws.Signal(),
		CoreDumped: ws.CoreDump(),
	}
}

// ChildHandler is invoked once a child process has been reaped. The entry
// is removed from the registry before the handler observes the final
// status, so a handler that calls RegisterChild again for the same pid
// starts from a clean slate.
type ChildHandler func(pid int, status ChildStatus)

// childEntry is the registry's bookkeeping record for one child identifier.
type childEntry struct {
	pid     int
	handler ChildHandler
}

// childEvent is one reaped-child notification queued by the reactor's
// SIGCHLD-driven poller for delivery during the child-handler phase of a
// tick.
type childEvent struct {
	pid     int
	state   *os.ProcessState
	waitErr error
}
