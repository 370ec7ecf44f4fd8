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

package ticker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/reactor/errors/pool"
)

type ticker struct {
	mu sync.Mutex
	d  time.Duration
	fn FuncTick

	cancel context.CancelFunc
	done   chan struct{}

	running   atomic.Bool
	startedAt atomic.Int64

	errs pool.Pool
}

func (o *ticker) Start(ctx context.Context) error {
	if ctx == nil {
		return errors.New("ticker: nil context")
	}

	o.mu.Lock()
	if o.running.Load() {
		o.stopLocked()
	}

	errs := pool.New()
	o.errs = errs

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	o.cancel = cancel
	o.done = done
	o.running.Store(true)
	o.startedAt.Store(time.Now().UnixNano())

	d := o.d
	fn := o.fn
	o.mu.Unlock()

	go o.run(cctx, done, d, fn, errs)

	return nil
}

func (o *ticker) run(ctx context.Context, done chan struct{}, d time.Duration, fn FuncTick, errs pool.Pool) {
	defer o.running.Store(false)
	defer o.startedAt.Store(0)
	defer close(done)

	tck := time.NewTicker(d)
	defer tck.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tck.C:
			if fn == nil {
				errs.Add(errors.New("ticker: invalid function"))
				continue
			}
			errs.Add(fn(ctx, tck))
		}
	}
}

func (o *ticker) Stop(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running.Load() {
		return nil
	}
	o.stopLocked()
	return nil
}

// stopLocked cancels the active run and waits for its goroutine to finish.
// Caller must hold o.mu.
func (o *ticker) stopLocked() {
	if o.cancel != nil {
		o.cancel()
	}
	if o.done != nil {
		<-o.done
	}
}

func (o *ticker) Restart(ctx context.Context) error {
	_ = o.Stop(ctx)
	return o.Start(ctx)
}

func (o *ticker) IsRunning() bool {
	return o.running.Load()
}

func (o *ticker) Uptime() time.Duration {
	if !o.running.Load() {
		return 0
	}
	started := o.startedAt.Load()
	if started == 0 {
		return 0
	}
	return time.Since(time.Unix(0, started))
}

func (o *ticker) ErrorsLast() error {
	o.mu.Lock()
	errs := o.errs
	o.mu.Unlock()
	if errs == nil {
		return nil
	}
	return errs.Last()
}

func (o *ticker) ErrorsList() []error {
	o.mu.Lock()
	errs := o.errs
	o.mu.Unlock()
	if errs == nil {
		return []error{}
	}
	return errs.Slice()
}
