// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fundamental

import (
	"time"

	"github.com/spf13/afero"
)

// LiveProbeDays is the number of days before the requested date that are
// checked in live mode
const LiveProbeDays = 10

type probeResult int

const (
	probeFound probeResult = iota
	probeDirectoryMissing
	probeExhausted
)

// probeBackward looks for the newest artifact in the LiveProbeDays days
// preceding from. The day itself is not checked.
func probeBackward(fs afero.Fs, dataRoot string, security Security, from time.Time) (string, time.Time, probeResult) {
	if exists, err := afero.DirExists(fs, DirPath(dataRoot, security)); err != nil || !exists {
		return "", time.Time{}, probeDirectoryMissing
	}

	date := from
	for ii := 0; ii < LiveProbeDays; ii++ {
		date = date.AddDate(0, 0, -1)
		path := BuildPath(dataRoot, security, date)
		if exists, err := afero.Exists(fs, path); err == nil && exists {
			return path, date, probeFound
		}
	}

	return "", time.Time{}, probeExhausted
}
