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

import (
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/srediag/fdio/pkg/debug"
)

// fdWrapper is the shared resource state behind one kernel descriptor.
// Every FileDescriptor sharing the descriptor points at the same wrapper,
// so eof, counters and blocking mode are observed by all duplicates.
// The wrapper is never copied; close happens at most once.
type fdWrapper struct {
	fd          int
	eof         bool
	closed      bool
	nonBlocking bool
	readCount   uint64
	writeCount  uint64
}

// newFDWrapper takes over closing responsibility for fd. If the last handle
// referencing the wrapper is dropped without an explicit Close, the
// finalizer releases the descriptor and reports through the debug sink.
func newFDWrapper(fd int) *fdWrapper {
	w := &fdWrapper{fd: fd}
	registerDescriptor(fd)
	descriptorsOpened.Inc()
	runtime.SetFinalizer(w, (*fdWrapper).finalize)
	return w
}

// close releases the descriptor to the kernel. Calling it on an already
// closed wrapper is a contract violation and returns ErrClosed.
func (w *fdWrapper) close() error {
	if w.closed {
		return ErrClosed
	}
	if err := CheckSystemCall("close", unix.Close(w.fd)); err != nil {
		return err
	}
	w.closed = true
	unregisterDescriptor(w.fd)
	descriptorsClosed.Inc()
	return nil
}

// finalize runs when the last handle sharing this wrapper became
// unreachable. Errors cannot propagate out of resource teardown; they go to
// the debug sink instead.
func (w *fdWrapper) finalize() {
	if w.closed {
		return
	}
	debug.Debugf("fd %d leaked, closing in finalizer", w.fd)
	if err := w.close(); err != nil {
		debug.Debugf("finalizer close of fd %d failed: %v", w.fd, err)
	}
}
