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
	"strconv"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// DescriptorInfo records when a descriptor was wrapped. Diagnostics only.
type DescriptorInfo struct {
	FD       int
	WrappedAt time.Time
}

// liveDescriptors tracks every descriptor currently owned by this package,
// keyed by descriptor number. Wrapping an fd twice (a caller error) simply
// overwrites the entry; the registry never affects I/O or lifetime.
var liveDescriptors = cmap.New[DescriptorInfo]()

func registerDescriptor(fd int) {
	liveDescriptors.Set(strconv.Itoa(fd), DescriptorInfo{FD: fd, WrappedAt: time.Now()})
}

func unregisterDescriptor(fd int) {
	liveDescriptors.Remove(strconv.Itoa(fd))
}

// LiveDescriptors returns a snapshot of descriptors currently owned and not
// yet closed. Intended for leak diagnostics and health checks.
func LiveDescriptors() []DescriptorInfo {
	out := make([]DescriptorInfo, 0, liveDescriptors.Count())
	for _, info := range liveDescriptors.Items() {
		out = append(out, info)
	}
	return out
}

// OpenDescriptorCount returns the number of descriptors currently owned and
// not yet closed.
func OpenDescriptorCount() int { return liveDescriptors.Count() }
