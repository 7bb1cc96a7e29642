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
	"sort"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// AvailabilityCatalog caches, per security directory, the ascending list of
// dates for which an artifact existed when the security was first queried.
// Entries are keyed on the directory so that resolvers over different data
// roots can share one catalog. Entries are never refreshed or evicted. A
// security without a readable directory is cached as an empty list.
//
// Population is not synchronized: two goroutines missing on the same key
// both list the directory and store equal slices. Stored slices must not be
// mutated.
type AvailabilityCatalog struct {
	fs       afero.Fs
	dates    *haxmap.Map[string, []time.Time]
	listings atomic.Int64
}

// NewAvailabilityCatalog creates an empty catalog reading from fs
func NewAvailabilityCatalog(fs afero.Fs) *AvailabilityCatalog {
	return &AvailabilityCatalog{
		fs:    fs,
		dates: haxmap.New[string, []time.Time](),
	}
}

// DatesFor returns the cataloged dates of security, listing the parent
// directory of samplePath on the first request for that directory
func (catalog *AvailabilityCatalog) DatesFor(security Security, samplePath string) []time.Time {
	dir := filepath.Dir(samplePath)
	if dates, ok := catalog.dates.Get(dir); ok {
		return dates
	}

	dates := catalog.list(dir)
	catalog.dates.Set(dir, dates)

	log.Debug().Str("Security", security.Key()).Str("Dir", dir).Int("NumDates", len(dates)).Msg("cataloged fine fundamental artifacts")
	return dates
}

// Cached reports whether the security directory dir already has a catalog entry
func (catalog *AvailabilityCatalog) Cached(dir string) bool {
	_, ok := catalog.dates.Get(filepath.Clean(dir))
	return ok
}

// Len returns the number of security directories in the catalog
func (catalog *AvailabilityCatalog) Len() int {
	return int(catalog.dates.Len())
}

// Listings returns the number of directory listings performed so far
func (catalog *AvailabilityCatalog) Listings() int64 {
	return catalog.listings.Load()
}

func (catalog *AvailabilityCatalog) list(dir string) []time.Time {
	catalog.listings.Add(1)

	entries, err := afero.ReadDir(catalog.fs, dir)
	if err != nil {
		log.Debug().Err(err).Str("Dir", dir).Msg("could not list fine fundamental directory")
		return []time.Time{}
	}

	dates := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		dt, ok := parseArtifactDate(entry.Name())
		if !ok {
			log.Debug().Str("Dir", dir).Str("FileName", entry.Name()).Msg("skipping file with malformed date")
			continue
		}
		dates = append(dates, dt)
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	return dates
}
