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
	"time"

	"github.com/miekg/dns"
	"golang.org/x/sys/unix"
)

// Resolve races a query for name/qtype against every server in servers and
// returns as soon as one produces a non-empty answer (§4.7). It never
// touches the reactor: it runs its own poll loop on the calling goroutine
// and returns once it has an answer, a definitive empty answer from every
// server, or the timeout elapses.
//
// A truncated UDP answer is retried once over TCP against the same server
// without consuming an extra slot in the race.
func Resolve(name string, qtype QType, servers []Server, factory SocketFactory, timeout time.Duration) ([]Record, error) {
	if len(servers) == 0 {
		return nil, ErrNoServers.Error(nil)
	}

	raw, e := buildQuery(name, qtype)
	if e != nil {
		return nil, ErrNoMemory.Error(e)
	}

	queries := make([]*query, 0, len(servers))
	defer func() {
		for _, q := range queries {
			q.close()
		}
	}()

	for _, srv := range servers {
		q, qe := newQuery(factory, srv, raw, srv.ForceTCP)
		if qe != nil {
			continue
		}
		queries = append(queries, q)
	}
	if len(queries) == 0 {
		return nil, ErrInvalid.Error(nil)
	}

	deadline := time.Now().Add(timeout)
	sawEmpty := false

	for {
		live := liveQueries(queries)
		if len(live) == 0 {
			break
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		timeoutMs := int(remaining / time.Millisecond)
		if timeoutMs <= 0 {
			timeoutMs = 1
		}

		pfds := make([]unix.PollFd, len(live))
		for i, q := range live {
			ev := int16(unix.POLLIN)
			if q.wantWrite() || !q.connected {
				ev |= unix.POLLOUT
			}
			pfds[i] = unix.PollFd{Fd: int32(q.fd), Events: ev}
		}

		n, pe := unix.Poll(pfds, timeoutMs)
		if pe != nil && pe != unix.EINTR {
			break
		}
		if n == 0 {
			continue
		}

		for i, pf := range pfds {
			if pf.Revents == 0 {
				continue
			}
			q := live[i]
			readable := pf.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0
			writable := pf.Revents&unix.POLLOUT != 0

			resp, qe := q.step(readable, writable)
			if qe != nil {
				q.failed = true
				q.close()
				continue
			}
			if resp == nil {
				continue
			}

			records, truncated, pe2 := parseAnswer(resp, qtype)
			if pe2 != nil {
				q.failed = true
				q.close()
				continue
			}

			if truncated && !q.usingTCP {
				q.close()
				retry, re := newQuery(factory, q.srv, raw, true)
				if re == nil {
					queries = append(queries, retry)
				}
				q.failed = true
				continue
			}

			q.close()
			if len(records) > 0 {
				return records, nil
			}
			sawEmpty = true
			q.failed = true
			if shrunk := time.Now().Add(time.Second); shrunk.Before(deadline) {
				deadline = shrunk
			}
		}
	}

	if sawEmpty {
		return nil, nil
	}
	return nil, ErrTimedOut.Error(nil)
}

func liveQueries(qs []*query) []*query {
	out := make([]*query, 0, len(qs))
	for _, q := range qs {
		if !q.failed && q.fd >= 0 {
			out = append(out, q)
		}
	}
	return out
}

func buildQuery(name string, qtype QType) ([]byte, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), uint16(qtype))
	m.RecursionDesired = true
	return m.Pack()
}

// parseAnswer unpacks a raw DNS message and narrows the answer section to
// qtype. truncated reports the header's TC bit per §4.7's UDP->TCP retry
// rule.
func parseAnswer(data []byte, qtype QType) (records []Record, truncated bool, err error) {
	m := new(dns.Msg)
	if e := m.Unpack(data); e != nil {
		return nil, false, e
	}
	if m.Truncated {
		return nil, true, nil
	}

	for _, rr := range m.Answer {
		switch v := rr.(type) {
		case *dns.A:
			if qtype == TypeA {
				records = append(records, Record{TTL: v.Hdr.Ttl, Type: TypeA, IP: v.A})
			}
		case *dns.AAAA:
			if qtype == TypeAAAA {
				records = append(records, Record{TTL: v.Hdr.Ttl, Type: TypeAAAA, IP: v.AAAA})
			}
		case *dns.SRV:
			if qtype == TypeSRV {
				records = append(records, Record{TTL: v.Hdr.Ttl, Type: TypeSRV, SRV: SRVValue{
					Priority: v.Priority,
					Weight:   v.Weight,
					Port:     v.Port,
					Target:   v.Target,
				}})
			}
		}
	}
	return records, false, nil
}
