/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package startStop wraps a pair of start/stop functions into a supervised,
// restartable background task: Start launches the start function in its own
// goroutine and returns immediately, Stop cancels it and runs the stop
// function, and the two may be interleaved freely from multiple goroutines.
package startStop

import (
	"context"
	"time"
)

// FuncStartStop is the shape of both the start and the stop function. The
// context passed to the start function is cancelled by Stop/Restart/a
// subsequent Start.
type FuncStartStop func(ctx context.Context) error

// StartStop supervises one restartable background task.
type StartStop interface {
	// Start launches the start function in a new goroutine, first stopping
	// any instance already running. It returns immediately; failures from
	// the start function itself surface through ErrorsLast/ErrorsList.
	Start(ctx context.Context) error

	// Stop cancels the running instance, waits for it to return, then runs
	// the stop function. It is a no-op if nothing is running.
	Stop(ctx context.Context) error

	// Restart is Stop followed by Start.
	Restart(ctx context.Context) error

	// IsRunning reports whether a start function is currently active.
	IsRunning() bool

	// Uptime reports how long the current run has been active, or zero if
	// not running.
	Uptime() time.Duration

	// ErrorsLast returns the most recent error captured since the last
	// Start, or nil.
	ErrorsLast() error

	// ErrorsList returns every error captured since the last Start.
	ErrorsList() []error
}

// New creates a StartStop around the given functions. Either may be nil; a
// nil function surfaces an "invalid start/stop function" error the first
// time it would have been called instead of panicking.
func New(start, stop FuncStartStop) StartStop {
	return &runner{start: start, stop: stop}
}
