/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package socket builds typed endpoint objects on top of pkg/fdio: a generic
// Socket, a connectionless DatagramSocket, and the protocol variants UDP,
// TCP, packet and unix-domain stream/datagram.
//
// Addresses are unix.Sockaddr values, passed to and from the kernel without
// interpretation. The kernel also owns all connection-state tracking: a
// second bind or connect fails with the OS error, never with a check made
// here. Every syscall failure is routed through fdio.CheckSystemCall and
// propagates to the caller unchanged.
package socket

import (
	"golang.org/x/sys/unix"

	"github.com/srediag/fdio/pkg/fdio"
)

// Socket is a descriptor handle with address, connection and option
// operations common to every socket kind. The address family, socket type
// and protocol are fixed at construction.
type Socket struct {
	*fdio.FileDescriptor

	domain   int
	sotype   int
	protocol int
}

// newSocket obtains a fresh descriptor via socket(2).
func newSocket(domain, sotype, protocol int) (*Socket, error) {
	fd, err := unix.Socket(domain, sotype, protocol)
	if err := fdio.CheckSystemCall("socket", err); err != nil {
		return nil, err
	}
	return &Socket{
		FileDescriptor: fdio.New(fd),
		domain:         domain,
		sotype:         sotype,
		protocol:       protocol,
	}, nil
}

// wrapSocket adopts an existing descriptor handle, used when accept returns
// a connected descriptor that must not re-run the creation syscall.
func wrapSocket(f *fdio.FileDescriptor, domain, sotype, protocol int) *Socket {
	return &Socket{
		FileDescriptor: f,
		domain:         domain,
		sotype:         sotype,
		protocol:       protocol,
	}
}

// Domain returns the address family fixed at construction.
func (s *Socket) Domain() int { return s.domain }

// Type returns the socket type fixed at construction.
func (s *Socket) Type() int { return s.sotype }

// Protocol returns the protocol number fixed at construction.
func (s *Socket) Protocol() int { return s.protocol }

// Bind assigns the given local address to the socket.
func (s *Socket) Bind(addr unix.Sockaddr) error {
	if s.Closed() {
		return fdio.ErrClosed
	}
	return fdio.CheckSystemCall("bind", unix.Bind(s.FDNum(), addr))
}

// Connect connects the socket to the given peer address.
func (s *Socket) Connect(addr unix.Sockaddr) error {
	if s.Closed() {
		return fdio.ErrClosed
	}
	return fdio.CheckSystemCall("connect", unix.Connect(s.FDNum(), addr))
}

// Shutdown half- or full-closes the connection without releasing the
// descriptor. how is unix.SHUT_RD, unix.SHUT_WR or unix.SHUT_RDWR.
func (s *Socket) Shutdown(how int) error {
	if s.Closed() {
		return fdio.ErrClosed
	}
	return fdio.CheckSystemCall("shutdown", unix.Shutdown(s.FDNum(), how))
}

// address is the shared helper behind LocalAddress and PeerAddress,
// parameterized by the underlying name-query syscall.
func (s *Socket) address(op string, get func(fd int) (unix.Sockaddr, error)) (unix.Sockaddr, error) {
	if s.Closed() {
		return nil, fdio.ErrClosed
	}
	sa, err := get(s.FDNum())
	if err := fdio.CheckSystemCall(op, err); err != nil {
		return nil, err
	}
	return sa, nil
}

// LocalAddress returns the socket's bound local address.
func (s *Socket) LocalAddress() (unix.Sockaddr, error) {
	return s.address("getsockname", unix.Getsockname)
}

// PeerAddress returns the connected peer's address.
func (s *Socket) PeerAddress() (unix.Sockaddr, error) {
	return s.address("getpeername", unix.Getpeername)
}

// GetsockoptInt reads an integer-valued socket option.
func (s *Socket) GetsockoptInt(level, option int) (int, error) {
	if s.Closed() {
		return 0, fdio.ErrClosed
	}
	v, err := unix.GetsockoptInt(s.FDNum(), level, option)
	if err := fdio.CheckSystemCall("getsockopt", err); err != nil {
		return 0, err
	}
	return v, nil
}

// SetsockoptInt writes an integer-valued socket option.
func (s *Socket) SetsockoptInt(level, option, value int) error {
	if s.Closed() {
		return fdio.ErrClosed
	}
	return fdio.CheckSystemCall("setsockopt", unix.SetsockoptInt(s.FDNum(), level, option, value))
}

// SetsockoptString writes a socket option from a raw byte string; the caller
// supplies the option's in-memory representation.
func (s *Socket) SetsockoptString(level, option int, value string) error {
	if s.Closed() {
		return fdio.ErrClosed
	}
	return fdio.CheckSystemCall("setsockopt", unix.SetsockoptString(s.FDNum(), level, option, value))
}

// SetReuseaddr enables SO_REUSEADDR, the standard server-restart
// convenience, before bind.
func (s *Socket) SetReuseaddr() error {
	return s.SetsockoptInt(unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
}

// PendingError inspects SO_ERROR and surfaces a failure recorded by the
// kernel for an earlier asynchronous operation, typically a non-blocking
// connect. It returns nil when no error is pending.
func (s *Socket) PendingError() error {
	v, err := s.GetsockoptInt(unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return err
	}
	if v != 0 {
		return fdio.CheckSystemCall("SO_ERROR", unix.Errno(v))
	}
	return nil
}
