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
	"context"
	"time"
)

// MaxHistoryLookbackDays bounds how far back HistoryBars walks
const MaxHistoryLookbackDays = 3650

// History resolves every calendar day in [begin, end] and returns the
// distinct artifacts found, oldest first. Days without data are skipped.
func (resolver *Resolver) History(ctx context.Context, config SubscriptionConfig, begin, end time.Time) ([]*SubscriptionDataSource, error) {
	begin = calendarDate(begin)
	end = calendarDate(end)
	if begin.After(end) {
		return nil, ErrBeginAfterEnd
	}

	sources := make([]*SubscriptionDataSource, 0)
	last := ""
	for date := begin; !date.After(end); date = date.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := resolver.resolve(ctx, config, date)
		if !res.found() || res.path == last {
			continue
		}

		last = res.path
		sources = append(sources, res.source())
	}

	return sources, nil
}

// HistoryBars returns up to n distinct artifacts published on or before
// end, oldest first
func (resolver *Resolver) HistoryBars(ctx context.Context, config SubscriptionConfig, end time.Time, n int) ([]*SubscriptionDataSource, error) {
	if n <= 0 {
		return nil, ErrInvalidBars
	}

	date := calendarDate(end)
	limit := date.AddDate(0, 0, -MaxHistoryLookbackDays)

	sources := make([]*SubscriptionDataSource, 0, n)
	for len(sources) < n && !date.Before(limit) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := resolver.resolve(ctx, config, date)
		if res.found() {
			sources = append(sources, res.source())
			date = res.date.AddDate(0, 0, -1)
			continue
		}

		if res.outcome != outcomeProbeExhausted {
			// no directory, or nothing cataloged on or before date
			break
		}

		// the probe already checked date and the LiveProbeDays before it
		date = date.AddDate(0, 0, -(LiveProbeDays + 1))
	}

	for ii, jj := 0, len(sources)-1; ii < jj; ii, jj = ii+1, jj-1 {
		sources[ii], sources[jj] = sources[jj], sources[ii]
	}

	return sources, nil
}
