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

// BindToDevice restricts the socket to the named network interface.
// Requires CAP_NET_RAW.
func (s *Socket) BindToDevice(device string) error {
	if s.Closed() {
		return fdio.ErrClosed
	}
	return fdio.CheckSystemCall("setsockopt(SO_BINDTODEVICE)",
		unix.SetsockoptString(s.FDNum(), unix.SOL_SOCKET, unix.SO_BINDTODEVICE, device))
}
