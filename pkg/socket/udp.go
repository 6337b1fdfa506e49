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

import "golang.org/x/sys/unix"

// UDPSocket is an INET datagram socket.
type UDPSocket struct {
	DatagramSocket
}

// NewUDPSocket creates a fresh, unbound and unconnected UDP socket.
func NewUDPSocket() (*UDPSocket, error) {
	d, err := newDatagramSocket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, err
	}
	return &UDPSocket{DatagramSocket: *d}, nil
}
