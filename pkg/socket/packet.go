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

//go:build linux

package socket

import (
	"golang.org/x/sys/unix"

	"github.com/srediag/fdio/pkg/fdio"
)

// PacketSocket is an AF_PACKET socket for link-layer traffic. type and
// protocol are passed straight to socket(2); the protocol is in network
// byte order, per packet(7).
type PacketSocket struct {
	DatagramSocket
}

// NewPacketSocket creates a packet socket of the given type and protocol.
// Requires CAP_NET_RAW.
func NewPacketSocket(sotype, protocol int) (*PacketSocket, error) {
	d, err := newDatagramSocket(unix.AF_PACKET, sotype, protocol)
	if err != nil {
		return nil, err
	}
	return &PacketSocket{DatagramSocket: *d}, nil
}

// SetPromiscuous makes the socket receive all link-layer traffic regardless
// of destination address.
func (s *PacketSocket) SetPromiscuous() error {
	if s.Closed() {
		return fdio.ErrClosed
	}
	mreq := unix.PacketMreq{Type: unix.PACKET_MR_PROMISC}
	return fdio.CheckSystemCall("setsockopt(PACKET_ADD_MEMBERSHIP)",
		unix.SetsockoptPacketMreq(s.FDNum(), unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, &mreq))
}
