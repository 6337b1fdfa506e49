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
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sys/unix"
)

func testBackoff() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(5*time.Millisecond), 2)
}

func (s *SocketTestSuite) TestDialTCPWithBackoffConnects() {
	ln, addr := s.listeningTCP()
	defer func() { _ = ln.Close() }()

	done := make(chan struct{})
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			_ = conn.Close()
		}
		close(done)
	}()

	client, err := DialTCPWithBackoff(addr, testBackoff())
	s.Require().NoError(err)
	s.Require().NoError(client.Close())
	<-done
}

func (s *SocketTestSuite) TestDialTCPWithBackoffGivesUp() {
	addr := s.closedLoopbackPort()

	start := time.Now()
	_, err := DialTCPWithBackoff(addr, testBackoff())
	s.Require().Error(err)
	s.ErrorIs(err, unix.ECONNREFUSED)
	s.Less(time.Since(start), 2*time.Second)
}
