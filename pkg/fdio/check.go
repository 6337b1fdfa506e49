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

package fdio

import "errors"

// ErrClosed is returned by any operation attempted through a resource that
// has already been closed, including a second Close. Continuing to use a
// descriptor after close is a contract violation; it is reported as an
// explicit error, never ignored.
var ErrClosed = errors.New("fdio: use of closed file descriptor")

// SyscallError describes a failed system call: the name of the attempted
// operation plus the error the kernel reported. It wraps the underlying
// errno, so errors.Is(err, unix.ECONNREFUSED) and friends keep working.
type SyscallError struct {
	Op  string
	Err error
}

func (e *SyscallError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *SyscallError) Unwrap() error { return e.Err }

// CheckSystemCall applies the single error-checking policy used at every
// syscall boundary in this module: a nil error passes through, anything else
// is wrapped with the attempted operation's name. Callers never receive
// in-band sentinels.
func CheckSystemCall(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SyscallError{Op: op, Err: err}
}
