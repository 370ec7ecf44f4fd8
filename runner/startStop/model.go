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

package startStop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/reactor/errors/pool"
)

type runner struct {
	mu     sync.Mutex
	start  FuncStartStop
	stop   FuncStartStop
	cancel context.CancelFunc
	done   chan struct{}

	running   atomic.Bool
	startedAt atomic.Int64 // UnixNano; 0 while not running

	errs pool.Pool
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()

	if r.running.Load() {
		r.stopLocked(ctx)
	}

	errs := pool.New()
	r.errs = errs

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.running.Store(true)
	r.startedAt.Store(time.Now().UnixNano())

	r.mu.Unlock()

	go func() {
		defer r.running.Store(false)
		defer close(done)
		defer r.startedAt.Store(0)

		if r.start == nil {
			errs.Add(errors.New("invalid start function"))
			return
		}
		if e := r.start(cctx); e != nil {
			errs.Add(e)
		}
	}()

	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running.Load() {
		r.mu.Unlock()
		return nil
	}
	r.stopLocked(ctx)
	r.mu.Unlock()
	return nil
}

// stopLocked cancels the active run, waits for its goroutine to finish, and
// invokes the stop function. Caller must hold r.mu.
func (r *runner) stopLocked(ctx context.Context) {
	cancel := r.cancel
	done := r.done

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	errs := r.errs
	if r.stop == nil {
		errs.Add(errors.New("invalid stop function"))
		return
	}
	if e := r.stop(ctx); e != nil {
		errs.Add(e)
	}
}

func (r *runner) Restart(ctx context.Context) error {
	_ = r.Stop(ctx)
	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	return r.running.Load()
}

func (r *runner) Uptime() time.Duration {
	if !r.running.Load() {
		return 0
	}
	started := r.startedAt.Load()
	if started == 0 {
		return 0
	}
	return time.Since(time.Unix(0, started))
}

func (r *runner) ErrorsLast() error {
	r.mu.Lock()
	errs := r.errs
	r.mu.Unlock()
	if errs == nil {
		return nil
	}
	return errs.Last()
}

func (r *runner) ErrorsList() []error {
	r.mu.Lock()
	errs := r.errs
	r.mu.Unlock()
	if errs == nil {
		return []error{}
	}
	return errs.Slice()
}
