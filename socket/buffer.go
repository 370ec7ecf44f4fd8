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

// writeQueue is an ordered sequence of byte chunks pending transmission.
// The head chunk may be partially written; offset tracks how much of it
// has already gone out.
type writeQueue struct {
	chunks [][]byte
	offset int
	total  int
}

// Enqueue appends a copy of b to the queue. Copying is required because the
// caller's slice may be reused or mutated after Send returns.
func (q *writeQueue) Enqueue(b []byte) {
	if len(b) == 0 {
		return
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	q.chunks = append(q.chunks, cp)
	q.total += len(cp)
}

// Empty reports whether every queued byte has been flushed.
func (q *writeQueue) Empty() bool {
	return len(q.chunks) == 0
}

// Pending returns the total number of bytes still queued.
func (q *writeQueue) Pending() int {
	return q.total
}

// Front returns the unwritten tail of the head chunk, or nil if empty.
func (q *writeQueue) Front() []byte {
	if len(q.chunks) == 0 {
		return nil
	}
	return q.chunks[0][q.offset:]
}

// Advance records that n bytes of the head chunk(s) were successfully
// written, dropping fully-consumed chunks.
func (q *writeQueue) Advance(n int) {
	q.total -= n
	for n > 0 && len(q.chunks) > 0 {
		rem := len(q.chunks[0]) - q.offset
		if n < rem {
			q.offset += n
			return
		}
		n -= rem
		q.chunks = q.chunks[1:]
		q.offset = 0
	}
}

// readBuffer accumulates bytes received from the peer but not yet consumed
// by the owner. It is a thin, allocation-conscious ring over a slice.
type readBuffer struct {
	buf []byte
}

// Append grows the buffer with freshly received bytes.
func (r *readBuffer) Append(b []byte) {
	if len(b) == 0 {
		return
	}
	r.buf = append(r.buf, b...)
}

// Bytes returns an immutable view of the unread bytes. Callers must not
// retain it across a ConsumeReadBuffer call.
func (r *readBuffer) Bytes() []byte {
	return r.buf
}

// Len reports how many unread bytes remain.
func (r *readBuffer) Len() int {
	return len(r.buf)
}

// Consume drops the first n bytes, compacting the backing slice.
func (r *readBuffer) Consume(n int) {
	if n <= 0 {
		return
	}
	if n >= len(r.buf) {
		r.buf = r.buf[:0]
		return
	}
	r.buf = append(r.buf[:0], r.buf[n:]...)
}
