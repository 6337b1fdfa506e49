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

package socket

import (
	"golang.org/x/sys/unix"

	"github.com/srediag/fdio/pkg/fdio"
)

// DefaultBacklog is the listen queue length used by Listen when the caller
// has no preference.
const DefaultBacklog = 16

// TCPSocket is an INET stream socket.
type TCPSocket struct {
	Socket
}

// NewTCPSocket creates a fresh, unbound and unconnected TCP socket.
func NewTCPSocket() (*TCPSocket, error) {
	s, err := newSocket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, err
	}
	return &TCPSocket{Socket: *s}, nil
}

// tcpSocketFromFD wraps a connected descriptor returned by accept.
func tcpSocketFromFD(f *fdio.FileDescriptor) *TCPSocket {
	return &TCPSocket{Socket: *wrapSocket(f, unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)}
}

// Listen marks the socket as accepting incoming connections.
func (s *TCPSocket) Listen(backlog int) error {
	if s.Closed() {
		return fdio.ErrClosed
	}
	return fdio.CheckSystemCall("listen", unix.Listen(s.FDNum(), backlog))
}

// Accept takes the next connection off the listen queue and wraps its
// descriptor in a new TCPSocket. It blocks only for the duration of the
// syscall; in non-blocking mode it fails with the kernel's would-block
// error when the queue is empty.
func (s *TCPSocket) Accept() (*TCPSocket, error) {
	if s.Closed() {
		return nil, fdio.ErrClosed
	}
	fd, _, err := unix.Accept(s.FDNum())
	if err := fdio.CheckSystemCall("accept", err); err != nil {
		return nil, err
	}
	return tcpSocketFromFD(fdio.New(fd)), nil
}
