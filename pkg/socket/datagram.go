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

// DatagramSocket adds connectionless send and receive to Socket.
type DatagramSocket struct {
	Socket
}

func newDatagramSocket(domain, sotype, protocol int) (*DatagramSocket, error) {
	s, err := newSocket(domain, sotype, protocol)
	if err != nil {
		return nil, err
	}
	return &DatagramSocket{Socket: *s}, nil
}

func wrapDatagramSocket(f *fdio.FileDescriptor, domain, sotype, protocol int) *DatagramSocket {
	return &DatagramSocket{Socket: *wrapSocket(f, domain, sotype, protocol)}
}

// Recv receives one datagram, bounded by fdio.ReadBufferSize, and returns
// the payload together with the sender's address. A zero-length datagram is
// a valid receive, not end of stream.
func (d *DatagramSocket) Recv() ([]byte, unix.Sockaddr, error) {
	if d.Closed() {
		return nil, nil, fdio.ErrClosed
	}
	buf := make([]byte, fdio.ReadBufferSize)
	n, from, err := unix.Recvfrom(d.FDNum(), buf, 0)
	if err := fdio.CheckSystemCall("recvfrom", err); err != nil {
		return nil, nil, err
	}
	d.RegisterRead()
	return buf[:n], from, nil
}

// SendTo sends one datagram to an explicit destination; for unconnected use.
func (d *DatagramSocket) SendTo(dest unix.Sockaddr, payload []byte) error {
	if d.Closed() {
		return fdio.ErrClosed
	}
	if err := fdio.CheckSystemCall("sendto", unix.Sendto(d.FDNum(), payload, 0, dest)); err != nil {
		return err
	}
	d.RegisterWrite()
	return nil
}

// Send sends one datagram to the peer set by an earlier Connect.
func (d *DatagramSocket) Send(payload []byte) error {
	if d.Closed() {
		return fdio.ErrClosed
	}
	if err := fdio.CheckSystemCall("send", unix.Sendto(d.FDNum(), payload, 0, nil)); err != nil {
		return err
	}
	d.RegisterWrite()
	return nil
}
