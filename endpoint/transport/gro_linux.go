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

//go:build linux

package transport

import (
	"encoding/binary"
	"net"

	"golang.org/x/sys/unix"
)

// enableGSO asks the kernel for UDP_SEGMENT support and reports the maximum
// number of segments a single SendBatch call may coalesce. Best effort: any
// failure just disables coalescing (returns 1).
func enableGSO(conn *net.UDPConn) int {
	raw, err := conn.SyscallConn()
	if err != nil {
		return 1
	}

	const maxSegments = 64
	var sockErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_UDP, unix.UDP_SEGMENT, maxPayloadSize)
	})
	if ctrlErr != nil || sockErr != nil {
		return 1
	}
	return maxSegments
}

// enableGRO asks the kernel to coalesce received datagrams on this socket
// (UDP_GRO). Best effort: failures are silently ignored, the receive pump
// falls back to one syscall per datagram.
func enableGRO(conn *net.UDPConn) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return
	}

	_ = raw.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_UDP, unix.UDP_GRO, 1)
	})
}

// groControlSpace is the extra out-of-band buffer room needed to receive a
// UDP_GRO control message alongside the ipv4/ipv6 ones already requested.
func groControlSpace() int {
	return unix.CmsgSpace(2)
}

// groStride returns the GRO segment size the kernel reports for this read
// via a UDP_GRO control message, or n (the whole datagram, i.e. one
// segment) if none is present.
func groStride(oob []byte, n int) int {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return n
	}
	for _, m := range msgs {
		if m.Header.Level == unix.IPPROTO_UDP && m.Header.Type == unix.UDP_GRO && len(m.Data) >= 2 {
			if size := int(binary.LittleEndian.Uint16(m.Data)); size > 0 {
				return size
			}
		}
	}
	return n
}
