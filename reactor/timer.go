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

// TimerHandler is invoked once when the timer it was armed with expires.
// now is the monotonic instant at which the reactor observed the expiry,
// not necessarily the exact requested expiry.
type TimerHandler func(now Instant)

// Timer is the cancellable handle returned by Reactor.StartTimer.
//
// Stop is idempotent and is guaranteed to prevent the handler from firing
// even if the timer is already at the head of the expiry queue for the
// current tick.
type Timer interface {
	Stop()
}

// timerRecord is the internal representation of one armed timer. At most
// one record per Timer is ever live in the heap: StartTimer on an existing
// Timer replaces the previous record's slot content instead of appending.
type timerRecord struct {
	expiry    Instant
	handler   TimerHandler
	cancelled bool
	seq       uint64 // arming order, used to break same-instant ties
	index     int    // position in the heap, maintained by container/heap
}

// Stop marks the record cancelled. The next tick's expiry scan skips
// cancelled records without invoking their handler.
func (t *timerRecord) Stop() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// timerHeap is a container/heap.Interface ordering timerRecord by expiry,
// then by arming order for records sharing the same expiry instant.
type timerHeap []*timerRecord

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].expiry.t.Equal(h[j].expiry.t) {
		return h[i].seq < h[j].seq
	}
	return h[i].expiry.Before(h[j].expiry)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	r := x.(*timerRecord)
	r.index = len(*h)
	*h = append(*h, r)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	r := old[n-1]
	old[n-1] = nil
	r.index = -1
	*h = old[:n-1]
	return r
}
