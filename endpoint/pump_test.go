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

package endpoint

import (
	"context"
	"errors"
	"net/netip"
	"sync"
	"syscall"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liblog "github.com/nabbar/golib/logger"

	"github.com/nabbar/golib/endpoint/config"
	"github.com/nabbar/golib/endpoint/protocol"
	"github.com/nabbar/golib/endpoint/protocoltest"
	"github.com/nabbar/golib/endpoint/transport"
)

// fakeSocket is a minimal transport.Socket double for exercising the recv
// and send pumps directly, without a real UDP connection.
type fakeSocket struct {
	mu       sync.Mutex
	recvFunc func([]transport.Datagram) (int, error)
	sendFunc func([]protocol.Transmit) (int, error)
	local    netip.AddrPort
}

func (s *fakeSocket) RecvBatch(buf []transport.Datagram) (int, error) {
	if s.recvFunc != nil {
		return s.recvFunc(buf)
	}
	return 0, nil
}

func (s *fakeSocket) SendBatch(batch []protocol.Transmit) (int, error) {
	if s.sendFunc != nil {
		return s.sendFunc(batch)
	}
	return len(batch), nil
}

func (s *fakeSocket) LocalAddr() netip.AddrPort {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local
}

func (s *fakeSocket) Rebind(local netip.AddrPort) error {
	s.mu.Lock()
	s.local = local
	s.mu.Unlock()
	return nil
}

func (s *fakeSocket) MaxGSOSegments() int { return 1 }

func (s *fakeSocket) Close() error { return nil }

var _ transport.Socket = (*fakeSocket)(nil)

func newPumpTestModel(sock transport.Socket) *model {
	proto := protocoltest.NewEndpoint(true)
	cfg := &config.Config{
		Listen:                 config.Server{Network: 0, Address: "127.0.0.1:0"},
		HasDefaultClientConfig: true,
		HasServerConfig:        true,
	}
	return newModel(cfg, proto, sock, liblog.New(context.Background()))
}

var _ = Describe("receive pump", func() {
	It("ignores a connection-reset error and keeps pumping", func() {
		e := newPumpTestModel(&fakeSocket{
			recvFunc: func([]transport.Datagram) (int, error) {
				return 0, syscall.ECONNREFUSED
			},
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := e.driveRecv(ctx)
		Expect(err).ToNot(HaveOccurred())
	})

	It("treats any other transport error as fatal", func() {
		boom := errors.New("boom")
		e := newPumpTestModel(&fakeSocket{
			recvFunc: func([]transport.Datagram) (int, error) {
				return 0, boom
			},
		})

		err := e.driveRecv(context.Background())
		Expect(err).To(Equal(boom))
	})

	It("splits a GRO-coalesced read into stride-sized segments", func() {
		e := newPumpTestModel(nil)

		client := protocoltest.NewEndpoint(true)
		serverAddr := netip.MustParseAddrPort("127.0.0.1:4433")

		// Two handshakes from the same fake client endpoint get distinct
		// connection ids (1 and 2), so the driver's connSet cannot conflate
		// them if the split fails to separate the segments.
		_, _, t1, err := client.Connect(serverAddr, "localhost")
		Expect(err).ToNot(HaveOccurred())
		_, _, t2, err := client.Connect(serverAddr, "localhost")
		Expect(err).ToNot(HaveOccurred())
		Expect(len(t1[0].Contents)).To(Equal(len(t2[0].Contents)))

		stride := len(t1[0].Contents)
		combined := append(append([]byte(nil), t1[0].Contents...), t2[0].Contents...)

		before := e.conns.len()
		e.handleDatagram(transport.Datagram{
			Buffer: combined,
			N:      len(combined),
			Meta: protocol.RecvMeta{
				Source: netip.MustParseAddrPort("127.0.0.1:9"),
				Now:    time.Now(),
				Stride: stride,
			},
		})
		Expect(e.conns.len()).To(Equal(before + 2))
	})

	It("drops a short tail segment without admitting a bogus connection", func() {
		e := newPumpTestModel(nil)

		client := protocoltest.NewEndpoint(true)
		serverAddr := netip.MustParseAddrPort("127.0.0.1:4433")
		_, _, transmits, err := client.Connect(serverAddr, "localhost")
		Expect(err).ToNot(HaveOccurred())

		msg := transmits[0].Contents
		combined := append(append([]byte(nil), msg...), 0x1, 0x2, 0x3)

		before := e.conns.len()
		e.handleDatagram(transport.Datagram{
			Buffer: combined,
			N:      len(combined),
			Meta: protocol.RecvMeta{
				Source: netip.MustParseAddrPort("127.0.0.1:9"),
				Now:    time.Now(),
				Stride: len(msg),
			},
		})
		Expect(e.conns.len()).To(Equal(before + 1))
	})

	It("treats a zero or oversized stride as a single whole-datagram segment", func() {
		e := newPumpTestModel(nil)

		client := protocoltest.NewEndpoint(true)
		serverAddr := netip.MustParseAddrPort("127.0.0.1:4433")
		_, _, transmits, err := client.Connect(serverAddr, "localhost")
		Expect(err).ToNot(HaveOccurred())

		before := e.conns.len()
		e.handleDatagram(transport.Datagram{
			Buffer: transmits[0].Contents,
			N:      len(transmits[0].Contents),
			Meta: protocol.RecvMeta{
				Source: netip.MustParseAddrPort("127.0.0.1:9"),
				Now:    time.Now(),
			},
		})
		Expect(e.conns.len()).To(Equal(before + 1))
	})
})

var _ = Describe("send pump", func() {
	It("keeps the unsent remainder queued in order after a partial send", func() {
		var mu sync.Mutex
		var batches [][]protocol.Transmit

		sock := &fakeSocket{}
		sock.sendFunc = func(batch []protocol.Transmit) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, append([]protocol.Transmit(nil), batch...))
			if len(batches) == 1 {
				return len(batch) / 2, nil
			}
			return len(batch), nil
		}

		e := newPumpTestModel(sock)
		dest := netip.MustParseAddrPort("127.0.0.1:4433")
		for i := 0; i < 4; i++ {
			e.enqueueSend(protocol.Transmit{Destination: dest, Contents: []byte{byte(i)}})
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- e.driveSend(ctx) }()

		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return len(batches)
		}).Should(BeNumerically(">=", 2))

		cancel()
		Eventually(done).Should(Receive(BeNil()))

		mu.Lock()
		defer mu.Unlock()
		Expect(batches[0]).To(HaveLen(4))
		Expect(batches[1]).To(HaveLen(2))
		Expect(batches[1][0].Contents).To(Equal([]byte{2}))
		Expect(batches[1][1].Contents).To(Equal([]byte{3}))
	})

	It("returns a fatal send error unless it was caused by a deliberate shutdown", func() {
		boom := errors.New("boom")
		sock := &fakeSocket{sendFunc: func([]protocol.Transmit) (int, error) {
			return 0, boom
		}}

		e := newPumpTestModel(sock)
		e.enqueueSend(protocol.Transmit{Destination: netip.MustParseAddrPort("127.0.0.1:4433"), Contents: []byte{0}})

		err := e.driveSend(context.Background())
		Expect(err).To(Equal(boom))
	})
})

var _ = Describe("Rebind and outgoing address mapping", func() {
	It("updates dual-stack state and pings every live connection", func() {
		sock := &fakeSocket{local: netip.MustParseAddrPort("0.0.0.0:4433")}
		e := newPumpTestModel(sock)

		c, err := e.Connect(netip.MustParseAddrPort("127.0.0.1:4433"), "localhost")
		Expect(err).ToNot(HaveOccurred())
		ref, ok := e.conns.get(c.Handle())
		Expect(ok).To(BeTrue())
		conn := ref.conn.(*protocoltest.Connection)

		Expect(conn.Poll(time.Now())).To(BeEmpty())
		Expect(e.ipv6.Load()).To(BeFalse())

		Expect(e.Rebind(netip.MustParseAddrPort("[::]:4433"))).To(Succeed())
		Expect(e.ipv6.Load()).To(BeTrue())

		Expect(conn.Poll(time.Now())).ToNot(BeEmpty())
	})

	It("rejects an IPv6 remote address on an IPv4-only socket", func() {
		e := newPumpTestModel(&fakeSocket{})

		_, err := e.Connect(netip.MustParseAddrPort("[2001:db8::1]:4433"), "localhost")
		Expect(err).To(HaveOccurred())
	})

	It("maps an IPv4 destination to its IPv4-mapped IPv6 form on a dual-stack socket", func() {
		e := newPumpTestModel(&fakeSocket{})
		e.ipv6.Store(true)

		c, err := e.Connect(netip.MustParseAddrPort("127.0.0.1:4433"), "localhost")
		Expect(err).ToNot(HaveOccurred())

		ref, ok := e.conns.get(c.Handle())
		Expect(ok).To(BeTrue())
		conn := ref.conn.(*protocoltest.Connection)

		peer := conn.Peer()
		Expect(peer.Addr().Is4In6()).To(BeTrue())
		Expect(peer.Addr().As4()).To(Equal(netip.MustParseAddr("127.0.0.1").As4()))
	})
})
