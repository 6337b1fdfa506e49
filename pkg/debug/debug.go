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

// Package debug is the process-wide diagnostic channel of the module.
// Core operations report non-fatal anomalies here through Debugf. The sink
// is pluggable: Install replaces the global handler, Reset restores the
// default, which writes a leveled, colored line to standard error.
//
// Handlers may be called from any operation at any time, including from
// finalizers, and must not panic.
package debug

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/Workiva/go-datastructures/queue"
)

// Handler consumes one formatted diagnostic message.
type Handler func(message string)

const recentCapacity = 256

var (
	// callDepth reaches through Debugf and the default handler to the
	// original call site.
	internalLogger = &logger{"", os.Stderr, 5}
	handler Handler = defaultHandler
	level   int

	// recent retains the last diagnostics for inspection by tests and
	// health tooling, regardless of the installed handler.
	recent = queue.NewRingBuffer(recentCapacity)
)

var (
	magenta = string([]byte{27, 91, 57, 53, 109}) // Trace
	green   = string([]byte{27, 91, 57, 50, 109}) // Debug
	blue    = string([]byte{27, 91, 57, 52, 109}) // Info
	yellow  = string([]byte{27, 91, 57, 51, 109}) // Warn
	red     = string([]byte{27, 91, 57, 49, 109}) // Error
	reset   = string([]byte{27, 91, 48, 109})

	colors = []string{
		magenta,
		green,
		blue,
		yellow,
		red,
	}

	levelName = []string{
		"Trace",
		"Debug",
		"Info",
		"Warn",
		"Error",
	}
)

const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
	levelNoPrint
)

func init() {
	level = levelDebug
	if os.Getenv("FDIO_LOG_LEVEL") != "" {
		if n, err := strconv.Atoi(os.Getenv("FDIO_LOG_LEVEL")); err == nil {
			if n <= levelNoPrint {
				level = n
			}
		}
	}
}

// SetLogLevel changes the default sink's level. The default is Debug, so
// every diagnostic is visible; the process env `FDIO_LOG_LEVEL` can also
// set it.
func SetLogLevel(l int) {
	if l <= levelNoPrint {
		level = l
	}
}

// Install replaces the global sink with h. Passing nil restores the default.
func Install(h Handler) {
	if h == nil {
		h = defaultHandler
	}
	handler = h
}

// Reset restores the default standard-error sink.
func Reset() {
	handler = defaultHandler
}

// Debugf formats a diagnostic and hands it to the installed sink.
func Debugf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	remember(msg)
	handler(msg)
}

// Recent drains and returns the retained diagnostic messages, oldest first.
func Recent() []string {
	n := recent.Len()
	out := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := recent.Poll(time.Millisecond)
		if err != nil {
			break
		}
		out = append(out, v.(string))
	}
	return out
}

func remember(msg string) {
	ok, err := recent.Offer(msg)
	if err != nil {
		return
	}
	if !ok {
		// Full: drop the oldest entry and retry once.
		_, _ = recent.Poll(time.Millisecond)
		_, _ = recent.Offer(msg)
	}
}

func defaultHandler(message string) {
	internalLogger.debugf("%s", message)
}

type logger struct {
	name      string
	out       io.Writer
	callDepth int
}

func (l *logger) errorf(format string, a ...interface{}) {
	if level > levelError {
		return
	}
	if _, err := fmt.Fprintf(l.out, l.prefix(levelError)+format+reset+"\n", a...); err != nil {
		fmt.Fprintf(os.Stderr, "logger errorf failed: %v\n", err)
	}
}

func (l *logger) warnf(format string, a ...interface{}) {
	if level > levelWarn {
		return
	}
	if _, err := fmt.Fprintf(l.out, l.prefix(levelWarn)+format+reset+"\n", a...); err != nil {
		fmt.Fprintf(os.Stderr, "logger warnf failed: %v\n", err)
	}
}

func (l *logger) infof(format string, a ...interface{}) {
	if level > levelInfo {
		return
	}
	if _, err := fmt.Fprintf(l.out, l.prefix(levelInfo)+format+reset+"\n", a...); err != nil {
		fmt.Fprintf(os.Stderr, "logger infof failed: %v\n", err)
	}
}

func (l *logger) debugf(format string, a ...interface{}) {
	if level > levelDebug {
		return
	}
	if _, err := fmt.Fprintf(l.out, l.prefix(levelDebug)+format+reset+"\n", a...); err != nil {
		fmt.Fprintf(os.Stderr, "logger debugf failed: %v\n", err)
	}
}

func (l *logger) tracef(format string, a ...interface{}) {
	if level > levelTrace {
		return
	}
	if _, err := fmt.Fprintf(l.out, l.prefix(levelTrace)+format+reset+"\n", a...); err != nil {
		fmt.Fprintf(os.Stderr, "logger tracef failed: %v\n", err)
	}
}

func (l *logger) prefix(level int) string {
	var buffer [64]byte
	buf := bytes.NewBuffer(buffer[:0])
	_, _ = buf.WriteString(colors[level])
	_, _ = buf.WriteString(levelName[level])
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(time.Now().Format("2006-01-02 15:04:05.999999"))
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(l.location())
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(l.name)
	_ = buf.WriteByte(' ')
	return buf.String()
}

func (l *logger) location() string {
	_, file, line, ok := runtime.Caller(l.callDepth)
	if !ok {
		file = "???"
		line = 0
	}
	file = filepath.Base(file)
	return file + ":" + strconv.Itoa(line)
}
