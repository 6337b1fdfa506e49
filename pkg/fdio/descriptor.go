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

// Package fdio provides a reference-counted handle over an OS file or socket
// descriptor. Any number of FileDescriptor handles may share one kernel
// descriptor via Duplicate; the descriptor is closed exactly once, either by
// an explicit Close or when the last handle is dropped.
//
// Handles are passed by pointer. Handing the pointer to another owner is a
// transfer; Duplicate is the only way to create a second independent handle
// over the same resource. Duplicates share all resource state: eof, the
// operation counters and the blocking-mode flag.
//
// The package performs no internal locking. Descriptor lifetime is safe
// across owners, but concurrent I/O on one shared resource needs external
// synchronization.
package fdio

import (
	"errors"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/sys/unix"
)

// ReadBufferSize bounds a single read syscall issued by Read. Datagram
// receives use the same bound.
const ReadBufferSize = 16384

var chunkPool bytebufferpool.Pool

// FileDescriptor is the user-facing handle over a shared descriptor
// resource. The zero value is not usable; construct with New or Duplicate.
type FileDescriptor struct {
	w *fdWrapper
}

// New wraps a raw descriptor obtained externally (open, socket, accept,
// pipe, ...) in a fresh handle with sole ownership. The handle takes over
// closing responsibility for fd.
func New(fd int) *FileDescriptor {
	return &FileDescriptor{w: newFDWrapper(fd)}
}

// Read performs one bounded read syscall (at most ReadBufferSize bytes) and
// appends the result to buf. A zero-byte result marks the resource as eof;
// reading again at eof is permitted and observes eof again.
func (f *FileDescriptor) Read(buf *bytebufferpool.ByteBuffer) error {
	if f.w.closed {
		return ErrClosed
	}
	scratch := chunkPool.Get()
	defer chunkPool.Put(scratch)
	if cap(scratch.B) < ReadBufferSize {
		scratch.B = make([]byte, ReadBufferSize)
	}
	b := scratch.B[:ReadBufferSize]

	n, err := unix.Read(f.w.fd, b)
	if err := CheckSystemCall("read", err); err != nil {
		return err
	}
	if n == 0 {
		f.w.eof = true
	}
	_, _ = buf.Write(b[:n])
	f.RegisterRead()
	bytesRead.Add(float64(n))
	return nil
}

// ReadVectored performs one vectorized read syscall across the given
// destination buffers. Bytes fill the buffers left to right; a buffer
// receives nothing until all its predecessors are full. The total capacity
// of bufs bounds the read. Returns the number of bytes read; zero with a
// non-empty request marks eof.
func (f *FileDescriptor) ReadVectored(bufs [][]byte) (int, error) {
	if f.w.closed {
		return 0, ErrClosed
	}
	var total int
	for _, b := range bufs {
		total += len(b)
	}
	if total == 0 {
		return 0, nil
	}
	n, err := unix.Readv(f.w.fd, bufs)
	if err := CheckSystemCall("readv", err); err != nil {
		return 0, err
	}
	if n == 0 {
		f.w.eof = true
	}
	f.RegisterRead()
	bytesRead.Add(float64(n))
	return n, nil
}

// Write writes data and returns the number of bytes actually written, which
// may be less than len(data); a short write is success, not failure, and the
// caller owns any retry loop. A zero-length write performs no syscall and
// leaves the write counter untouched.
func (f *FileDescriptor) Write(data []byte) (int, error) {
	if f.w.closed {
		return 0, ErrClosed
	}
	if len(data) == 0 {
		return 0, nil
	}
	n, err := unix.Write(f.w.fd, data)
	if err := CheckSystemCall("write", err); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.New("fdio: write returned 0 given non-empty input")
	}
	f.RegisterWrite()
	bytesWritten.Add(float64(n))
	return n, nil
}

// WriteString writes the contents of s; same contract as Write.
func (f *FileDescriptor) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// WriteVectored performs one vectorized write syscall across the given
// buffers, in order, and returns the total bytes written. The return value
// may land short of the final buffer; the caller must not assume every
// buffer was consumed. A request totaling zero bytes performs no syscall.
func (f *FileDescriptor) WriteVectored(bufs [][]byte) (int, error) {
	if f.w.closed {
		return 0, ErrClosed
	}
	var total int
	for _, b := range bufs {
		total += len(b)
	}
	if total == 0 {
		return 0, nil
	}
	n, err := unix.Writev(f.w.fd, bufs)
	if err := CheckSystemCall("writev", err); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.New("fdio: writev returned 0 given non-empty input")
	}
	f.RegisterWrite()
	bytesWritten.Add(float64(n))
	return n, nil
}

// Close releases the underlying descriptor for every handle sharing it.
// Closing twice, or through two duplicates, returns ErrClosed.
func (f *FileDescriptor) Close() error {
	return f.w.close()
}

// Duplicate returns a new handle sharing this handle's resource. No kernel
// dup(2) is issued: both handles refer to the same descriptor number and the
// same eof/counter/blocking state, and the descriptor closes only once.
func (f *FileDescriptor) Duplicate() *FileDescriptor {
	return &FileDescriptor{w: f.w}
}

// SetBlocking switches the descriptor between blocking and non-blocking
// mode, preserving all other file status flags.
func (f *FileDescriptor) SetBlocking(blocking bool) error {
	if f.w.closed {
		return ErrClosed
	}
	flags, err := unix.FcntlInt(uintptr(f.w.fd), unix.F_GETFL, 0)
	if err := CheckSystemCall("fcntl(F_GETFL)", err); err != nil {
		return err
	}
	if blocking {
		flags &^= unix.O_NONBLOCK
	} else {
		flags |= unix.O_NONBLOCK
	}
	_, err = unix.FcntlInt(uintptr(f.w.fd), unix.F_SETFL, flags)
	if err := CheckSystemCall("fcntl(F_SETFL)", err); err != nil {
		return err
	}
	f.w.nonBlocking = !blocking
	return nil
}

// Size reports the file size via fstat. Meaningful for regular files only;
// the caller must know what kind of descriptor it holds.
func (f *FileDescriptor) Size() (int64, error) {
	if f.w.closed {
		return 0, ErrClosed
	}
	var st unix.Stat_t
	if err := CheckSystemCall("fstat", unix.Fstat(f.w.fd, &st)); err != nil {
		return 0, err
	}
	return st.Size, nil
}

// FDNum returns the raw descriptor number.
func (f *FileDescriptor) FDNum() int { return f.w.fd }

// EOF reports whether a read has observed end of stream. Sticky.
func (f *FileDescriptor) EOF() bool { return f.w.eof }

// Closed reports whether the underlying descriptor has been released.
func (f *FileDescriptor) Closed() bool { return f.w.closed }

// ReadCount returns the number of read operations performed through any
// handle sharing this resource.
func (f *FileDescriptor) ReadCount() uint64 { return f.w.readCount }

// WriteCount returns the number of write operations performed through any
// handle sharing this resource.
func (f *FileDescriptor) WriteCount() uint64 { return f.w.writeCount }

// RegisterRead records one read operation. Exposed for endpoint types that
// issue their own receive syscalls on the shared resource.
func (f *FileDescriptor) RegisterRead() {
	f.w.readCount++
	readsTotal.Inc()
}

// RegisterWrite records one write operation. Exposed for endpoint types that
// issue their own send syscalls on the shared resource.
func (f *FileDescriptor) RegisterWrite() {
	f.w.writeCount++
	writesTotal.Inc()
}
