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

// Package api defines the public endpoint contracts satisfied by the socket
// variants in pkg/socket.
package api

import (
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sys/unix"
)

// Endpoint is the surface every socket kind shares.
type Endpoint interface {
	FDNum() int
	Closed() bool
	Close() error
	SetBlocking(blocking bool) error
	LocalAddress() (unix.Sockaddr, error)
}

// StreamEndpoint is a connected byte-stream endpoint.
type StreamEndpoint interface {
	Endpoint
	Read(buf *bytebufferpool.ByteBuffer) error
	Write(data []byte) (int, error)
	Shutdown(how int) error
	PeerAddress() (unix.Sockaddr, error)
}

// DatagramEndpoint is a connectionless message endpoint.
type DatagramEndpoint interface {
	Endpoint
	Recv() ([]byte, unix.Sockaddr, error)
	SendTo(dest unix.Sockaddr, payload []byte) error
	Send(payload []byte) error
}
