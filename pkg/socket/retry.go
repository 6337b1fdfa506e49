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
	"errors"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sys/unix"
)

// DialTCPWithBackoff connects to addr, retrying transient refusals under the
// given backoff policy. Each attempt uses a fresh socket: a TCP descriptor
// that failed a connect is not reusable. This is an explicit, caller-opted
// convenience; no other operation in this module ever retries.
func DialTCPWithBackoff(addr unix.Sockaddr, policy backoff.BackOff) (*TCPSocket, error) {
	var sock *TCPSocket
	op := func() error {
		s, err := NewTCPSocket()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := s.Connect(addr); err != nil {
			_ = s.Close()
			if retryableConnectError(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		sock = s
		return nil
	}
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return sock, nil
}

func retryableConnectError(err error) bool {
	return errors.Is(err, unix.ECONNREFUSED) ||
		errors.Is(err, unix.ETIMEDOUT) ||
		errors.Is(err, unix.EHOSTUNREACH) ||
		errors.Is(err, unix.ENETUNREACH)
}
