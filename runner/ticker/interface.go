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

// Package ticker wraps a periodic function into a supervised, restartable
// background task driven by a time.Ticker instead of a single run loop.
package ticker

import (
	"context"
	"time"
)

// defaultDuration is used whenever the caller supplies a non-positive or
// sub-millisecond duration to New.
const defaultDuration = 30 * time.Second

// FuncTick is called on every tick. tck is the underlying time.Ticker, handed
// through in case the callback wants to inspect or drain it.
type FuncTick func(ctx context.Context, tck *time.Ticker) error

// Ticker supervises one restartable periodic task.
type Ticker interface {
	// Start launches the ticking loop, first stopping any instance already
	// running. It returns immediately; failures from the tick function
	// surface through ErrorsLast/ErrorsList rather than here.
	Start(ctx context.Context) error

	// Stop cancels the running loop and waits for it to return. It is a
	// no-op if nothing is running.
	Stop(ctx context.Context) error

	// Restart is Stop followed by Start.
	Restart(ctx context.Context) error

	// IsRunning reports whether the loop is currently active.
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

// New creates a Ticker that calls fn every d. A non-positive or
// sub-millisecond d falls back to defaultDuration. A nil fn is tolerated: it
// surfaces an "invalid function" error on every tick instead of panicking.
func New(d time.Duration, fn FuncTick) Ticker {
	if d <= 0 || d < time.Millisecond {
		d = defaultDuration
	}
	return &ticker{d: d, fn: fn}
}
