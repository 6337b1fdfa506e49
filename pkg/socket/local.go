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

// LocalStreamSocket is a unix-domain stream socket. It is only constructed
// around an existing descriptor, typically one end of a socketpair or a
// descriptor obtained from an accepting listener.
type LocalStreamSocket struct {
	Socket
}

// NewLocalStreamSocket wraps an existing unix-domain stream descriptor.
func NewLocalStreamSocket(f *fdio.FileDescriptor) *LocalStreamSocket {
	return &LocalStreamSocket{Socket: *wrapSocket(f, unix.AF_UNIX, unix.SOCK_STREAM, 0)}
}

// LocalStreamSocketPair returns two connected unix-domain stream sockets
// created with socketpair(2).
func LocalStreamSocketPair() (*LocalStreamSocket, *LocalStreamSocket, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err := fdio.CheckSystemCall("socketpair", err); err != nil {
		return nil, nil, err
	}
	return NewLocalStreamSocket(fdio.New(fds[0])), NewLocalStreamSocket(fdio.New(fds[1])), nil
}

// LocalDatagramSocket is a unix-domain datagram socket.
type LocalDatagramSocket struct {
	DatagramSocket
}

// NewLocalDatagramSocket creates a fresh, unbound unix-domain datagram
// socket.
func NewLocalDatagramSocket() (*LocalDatagramSocket, error) {
	d, err := newDatagramSocket(unix.AF_UNIX, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, err
	}
	return &LocalDatagramSocket{DatagramSocket: *d}, nil
}

// NewLocalDatagramSocketFromFD wraps an existing unix-domain datagram
// descriptor.
func NewLocalDatagramSocketFromFD(f *fdio.FileDescriptor) *LocalDatagramSocket {
	return &LocalDatagramSocket{DatagramSocket: *wrapDatagramSocket(f, unix.AF_UNIX, unix.SOCK_DGRAM, 0)}
}
