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

package resolver

import (
	"golang.org/x/sys/unix"
)

// DefaultSocketFactory opens a plain non-blocking socket with no
// interface binding. Most callers can pass this directly as the
// SocketFactory argument to Resolve.
func DefaultSocketFactory(family, sockType, protocol int, _ interface{}) (int, error) {
	fd, e := unix.Socket(family, sockType|unix.SOCK_NONBLOCK, protocol)
	if e != nil {
		return -1, e
	}
	return fd, nil
}

// BoundSocketFactory returns a SocketFactory that binds every socket it
// creates to the named network interface via SO_BINDTODEVICE (§4.7: "a
// per-server user data" carrying outbound interface selection). userData
// passed to the returned factory is ignored; the binding is fixed at
// construction time.
func BoundSocketFactory(ifaceName string) SocketFactory {
	return func(family, sockType, protocol int, _ interface{}) (int, error) {
		fd, e := unix.Socket(family, sockType|unix.SOCK_NONBLOCK, protocol)
		if e != nil {
			return -1, e
		}
		if e = unix.BindToDevice(fd, ifaceName); e != nil {
			_ = unix.Close(fd)
			return -1, e
		}
		return fd, nil
	}
}
