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

// FDInterest is a bitmask of the readiness conditions a registration cares
// about.
type FDInterest uint8

const (
	// FDRead requests read-readiness notifications.
	FDRead FDInterest = 1 << iota
	// FDWrite requests write-readiness notifications.
	FDWrite
)

func (m FDInterest) has(flag FDInterest) bool { return m&flag != 0 }

// FDHandler is invoked with the observed event mask, already intersected
// with the registration's current interest mask at dispatch time.
type FDHandler func(fd int, events FDInterest)

// fdEntry is the registry's bookkeeping record for one descriptor. Exactly
// one entry may exist per fd; RegisterFD replaces any prior entry for the
// same fd.
type fdEntry struct {
	fd       int
	interest FDInterest
	handler  FDHandler
}
