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

package transport

import (
	"net"
	"net/netip"
	"sync"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/nabbar/golib/endpoint/protocol"
)

const (
	maxPayloadSize = 65527
	defaultBatch   = 32
)

// udpSocket is the production Socket: a net.UDPConn driven through the
// golang.org/x/net/ipv4 and ipv6 batched Message APIs so a single syscall
// can move many datagrams.
type udpSocket struct {
	mu   sync.RWMutex
	conn *net.UDPConn
	p4   *ipv4.PacketConn
	p6   *ipv6.PacketConn
	is6  bool

	gso int
}

func newUDPSocket(local netip.AddrPort) (*udpSocket, error) {
	s := &udpSocket{}
	if err := s.bind(local); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *udpSocket) bind(local netip.AddrPort) error {
	network := "udp"
	if local.Addr().Is4() || local.Addr().Is4In6() {
		network = "udp4"
	} else if local.Addr().Is6() {
		network = "udp6"
	}

	conn, err := listenUDP(network, local)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn = conn
	s.is6 = network == "udp6"

	if s.is6 {
		s.p6 = ipv6.NewPacketConn(conn)
		_ = s.p6.SetControlMessage(ipv6.FlagDst|ipv6.FlagTrafficClass, true)
		s.p4 = nil
	} else {
		s.p4 = ipv4.NewPacketConn(conn)
		_ = s.p4.SetControlMessage(ipv4.FlagDst|ipv4.FlagTOS, true)
		s.p6 = nil
	}

	s.gso = enableGSO(conn)
	enableGRO(conn)

	return nil
}

func (s *udpSocket) RecvBatch(buf []Datagram) (int, error) {
	s.mu.RLock()
	p4, p6, is6 := s.p4, s.p6, s.is6
	s.mu.RUnlock()

	n := len(buf)
	if n == 0 {
		return 0, nil
	}

	msgs := make([]ipv4.Message, n)
	msgs6 := make([]ipv6.Message, n)
	oobLen := ipv4.ControlMessageSpace(ipv4.FlagDst|ipv4.FlagTOS) + groControlSpace()

	for i := range buf {
		if len(buf[i].Buffer) == 0 {
			buf[i].Buffer = make([]byte, maxPayloadSize)
		}
		if is6 {
			msgs6[i] = ipv6.Message{Buffers: [][]byte{buf[i].Buffer}, OOB: make([]byte, oobLen)}
		} else {
			msgs[i] = ipv4.Message{Buffers: [][]byte{buf[i].Buffer}, OOB: make([]byte, oobLen)}
		}
	}

	now := time.Now()

	if is6 {
		got, err := p6.ReadBatch(msgs6[:n], 0)
		if err != nil {
			return 0, err
		}
		for i := 0; i < got; i++ {
			fillMeta6(&buf[i], msgs6[i], now)
		}
		return got, nil
	}

	got, err := p4.ReadBatch(msgs[:n], 0)
	if err != nil {
		return 0, err
	}
	for i := 0; i < got; i++ {
		fillMeta4(&buf[i], msgs[i], now)
	}
	return got, nil
}

func fillMeta4(d *Datagram, m ipv4.Message, now time.Time) {
	d.N = m.N
	d.Meta.Now = now
	if addr, ok := m.Addr.(*net.UDPAddr); ok {
		d.Meta.Source = addr.AddrPort()
	}
	if cm, err := ipv4.ParseControlMessage(m.OOB[:m.NN]); err == nil && cm != nil {
		if a, ok := netip.AddrFromSlice(cm.Dst); ok {
			d.Meta.DstIP = a
		}
		d.Meta.ECN = ecnFromTOS(cm.TOS)
	}
	d.Meta.Stride = groStride(m.OOB[:m.NN], m.N)
}

func fillMeta6(d *Datagram, m ipv6.Message, now time.Time) {
	d.N = m.N
	d.Meta.Now = now
	if addr, ok := m.Addr.(*net.UDPAddr); ok {
		d.Meta.Source = addr.AddrPort()
	}
	if cm, err := ipv6.ParseControlMessage(m.OOB[:m.NN]); err == nil && cm != nil {
		if a, ok := netip.AddrFromSlice(cm.Dst); ok {
			d.Meta.DstIP = a
		}
		d.Meta.ECN = ecnFromTOS(cm.TrafficClass)
	}
	d.Meta.Stride = groStride(m.OOB[:m.NN], m.N)
}

func ecnFromTOS(tos int) protocol.ECN {
	return protocol.ECN(tos & 0x3)
}

func ecnToTOS(e protocol.ECN) int {
	return int(e) & 0x3
}

func (s *udpSocket) SendBatch(batch []protocol.Transmit) (int, error) {
	s.mu.RLock()
	p4, p6, is6, gso := s.p4, s.p6, s.is6, s.gso
	s.mu.RUnlock()

	if len(batch) == 0 {
		return 0, nil
	}

	groups := coalesce(batch, gso)

	sent := 0
	for _, g := range groups {
		if is6 {
			m := ipv6.Message{
				Buffers: [][]byte{g.contents},
				Addr:    net.UDPAddrFromAddrPort(g.dest),
			}
			if _, err := p6.WriteBatch([]ipv6.Message{m}, 0); err != nil {
				return sent, err
			}
		} else {
			m := ipv4.Message{
				Buffers: [][]byte{g.contents},
				Addr:    net.UDPAddrFromAddrPort(g.dest),
			}
			if _, err := p4.WriteBatch([]ipv4.Message{m}, 0); err != nil {
				return sent, err
			}
		}
		sent += g.count
	}

	return sent, nil
}

// group is a run of same-destination, same-size transmits coalesced into one
// GSO-eligible write.
type group struct {
	dest     netip.AddrPort
	contents []byte
	count    int
}

func coalesce(batch []protocol.Transmit, maxSeg int) []group {
	var groups []group
	var cur *group

	for _, t := range batch {
		if cur != nil && cur.dest == t.Destination && len(t.Contents) == t.SegmentSize && cur.count < maxSeg {
			cur.contents = append(cur.contents, t.Contents...)
			cur.count++
			continue
		}
		groups = append(groups, group{dest: t.Destination, contents: append([]byte(nil), t.Contents...), count: 1})
		cur = &groups[len(groups)-1]
	}

	return groups
}

func (s *udpSocket) LocalAddr() netip.AddrPort {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return netip.AddrPort{}
	}
	if a, ok := s.conn.LocalAddr().(*net.UDPAddr); ok {
		return a.AddrPort()
	}
	return netip.AddrPort{}
}

func (s *udpSocket) Rebind(local netip.AddrPort) error {
	s.mu.Lock()
	old := s.conn
	s.mu.Unlock()

	if err := s.bind(local); err != nil {
		return err
	}

	if old != nil {
		return old.Close()
	}
	return nil
}

func (s *udpSocket) MaxGSOSegments() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gso
}

func (s *udpSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
