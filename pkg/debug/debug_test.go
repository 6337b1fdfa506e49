/*
 * Copyright 2025 SREDiag Authors
 * Copyright 2023 CloudWeGo Authors
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

package debug

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type DebugTestSuite struct {
	suite.Suite
}

func (s *DebugTestSuite) TestInstallAndReset() {
	var captured []string
	Install(func(message string) {
		captured = append(captured, message)
	})
	defer Reset()

	Debugf("close of fd %d failed", 7)
	Debugf("plain message")
	s.Equal([]string{"close of fd 7 failed", "plain message"}, captured)

	// After Reset the captured slice stops growing.
	Reset()
	Debugf("goes to the default sink")
	s.Len(captured, 2)
}

func (s *DebugTestSuite) TestInstallNilRestoresDefault() {
	var called bool
	Install(func(string) { called = true })
	Install(nil)
	defer Reset()

	Debugf("default again")
	s.False(called)
}

func (s *DebugTestSuite) TestRecentRetainsAndDrains() {
	drainRecent()
	Install(func(string) {})
	defer Reset()

	Debugf("first")
	Debugf("second %d", 2)

	got := Recent()
	s.Equal([]string{"first", "second 2"}, got)
	s.Empty(Recent(), "Recent drains the ring")
}

func (s *DebugTestSuite) TestRecentDropsOldest() {
	drainRecent()
	Install(func(string) {})
	defer Reset()

	for i := 0; i < recentCapacity+3; i++ {
		Debugf("msg %d", i)
	}
	got := Recent()
	s.Len(got, recentCapacity)
	s.Equal("msg 3", got[0])
}

func (s *DebugTestSuite) TestDefaultLoggerLevels() {
	SetLogLevel(levelTrace)
	defer SetLogLevel(levelDebug)

	internalLogger.tracef("this is tracef %s", "hello world")
	internalLogger.debugf("this is debugf %s", "hello world")
	internalLogger.infof("this is infof %s", "hello world")
	internalLogger.warnf("this is warnf %s", "hello world")
	internalLogger.errorf("this is errorf %s", "hello world")
}

func drainRecent() {
	Recent()
}

func TestDebugTestSuite(t *testing.T) {
	suite.Run(t, new(DebugTestSuite))
}
