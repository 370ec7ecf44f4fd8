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

// Package reactor implements a single-threaded, cooperative event loop.
//
// A Reactor combines three registries - file descriptors, timers and child
// processes - with a one-shot end-of-loop callback queue and a signal-driven
// shutdown flag. Every higher level component in this module (TCP/UDP
// sockets, the SOCKS5 state machine, the TCP server) is driven by exactly
// one Reactor instance.
//
// The loop never blocks inside a handler: handlers run to completion inside
// a single tick, and any observable effect they want to defer (closing a
// socket, emitting a semantic event) is scheduled through the end-of-loop
// queue so that re-entrant calls from inside a callback stay safe.
//
// Reactor is not safe for concurrent ticks: Run must be invoked from a
// single goroutine, though Shutdown, RegisterFD, StartTimer and friends may
// be called from any goroutine since they only touch the registries guarded
// by the reactor's internal lock.
package reactor
