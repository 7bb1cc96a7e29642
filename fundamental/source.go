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
	"fmt"
	"time"
)

// TransportMedium describes where a data source is read from
type TransportMedium int

const (
	LocalFile TransportMedium = iota
	RemoteFile
)

// FileFormat describes how a data source is read
type FileFormat int

const (
	Csv FileFormat = iota
	ZipEntryName
)

// SubscriptionDataSource locates the artifact backing a subscription on a
// given date. Source may point to a file that does not exist; readers must
// treat a missing file as no data.
type SubscriptionDataSource struct {
	Source    string          `json:"source"`
	Date      time.Time       `json:"date"`
	Transport TransportMedium `json:"transport"`
	Format    FileFormat      `json:"format"`
}

func (t TransportMedium) String() string {
	switch t {
	case LocalFile:
		return "LocalFile"
	case RemoteFile:
		return "RemoteFile"
	default:
		return fmt.Sprintf("TransportMedium(%d)", int(t))
	}
}

func (t TransportMedium) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (f FileFormat) String() string {
	switch f {
	case Csv:
		return "Csv"
	case ZipEntryName:
		return "ZipEntryName"
	default:
		return fmt.Sprintf("FileFormat(%d)", int(f))
	}
}

func (f FileFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
