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

// Package proc exposes a few facts about the current process for health
// checks.
package proc

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// NumOpenFDs reports how many file descriptors the current process holds
// open, as seen by the kernel. This is the whole process, not only
// descriptors owned by this module.
func NumOpenFDs() (int32, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	return p.NumFDs()
}
