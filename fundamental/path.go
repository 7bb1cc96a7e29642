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
	"path/filepath"
	"strings"
	"time"
)

const (
	// DateFormat is the layout of the date component of an artifact file name
	DateFormat = "20060102"

	// ArtifactExtension is the file extension of every fine fundamental artifact
	ArtifactExtension = ".zip"
)

// DirPath returns the directory holding every artifact of a security:
//
//	<dataRoot>/equity/<market>/fundamental/fine/<ticker>
func DirPath(dataRoot string, security Security) string {
	return filepath.Join(dataRoot, "equity", strings.ToLower(security.Market), "fundamental", "fine", strings.ToLower(security.Ticker))
}

// BuildPath returns the artifact path of a security on the given date. The
// path is not checked for existence.
func BuildPath(dataRoot string, security Security, date time.Time) string {
	return filepath.Join(DirPath(dataRoot, security), date.Format(DateFormat)+ArtifactExtension)
}

// parseArtifactDate extracts the date from an artifact file name. Only
// names of the exact form YYYYMMDD.zip are accepted.
func parseArtifactDate(name string) (time.Time, bool) {
	if filepath.Ext(name) != ArtifactExtension {
		return time.Time{}, false
	}

	base := strings.TrimSuffix(name, ArtifactExtension)
	if len(base) != len(DateFormat) {
		return time.Time{}, false
	}

	dt, err := time.Parse(DateFormat, base)
	if err != nil {
		return time.Time{}, false
	}
	return dt, true
}
