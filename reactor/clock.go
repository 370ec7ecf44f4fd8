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

import "time"

// Instant is a monotonic point in time used only for ordering timers and for
// duration arithmetic inside the reactor. It is backed by time.Time (whose
// monotonic reading is preserved by the standard library as long as the
// value is never serialized), and it must never be surfaced as wall-clock.
type Instant struct {
	t time.Time
}

// Now returns the current monotonic instant.
func Now() Instant {
	return Instant{t: time.Now()}
}

// Add returns the instant offset by d.
func (i Instant) Add(d time.Duration) Instant {
	return Instant{t: i.t.Add(d)}
}

// Sub returns the duration elapsed between i and o (i - o).
func (i Instant) Sub(o Instant) time.Duration {
	return i.t.Sub(o.t)
}

// Before reports whether i occurs strictly before o.
func (i Instant) Before(o Instant) bool {
	return i.t.Before(o.t)
}

// After reports whether i occurs strictly after o.
func (i Instant) After(o Instant) bool {
	return i.t.After(o.t)
}

// IsZero reports whether i is the zero Instant.
func (i Instant) IsZero() bool {
	return i.t.IsZero()
}
