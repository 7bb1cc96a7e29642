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
	"strings"
	"time"
)

// DefaultMarket is used when a security is given without a market prefix
const DefaultMarket = "usa"

// Security identifies an equity listed in a market
type Security struct {
	Market string `json:"market"`
	Ticker string `json:"ticker"`
}

// SubscriptionConfig describes a fine fundamental data subscription for
// a single security
type SubscriptionConfig struct {
	Security Security `json:"security"`
	IsLive   bool     `json:"isLive"`
}

// NewSecurity creates a security in the given market
func NewSecurity(market, ticker string) Security {
	return Security{
		Market: strings.ToLower(strings.TrimSpace(market)),
		Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
	}
}

// ParseSecurity parses either `TICKER` or `market:TICKER`
func ParseSecurity(s, defaultMarket string) (Security, error) {
	market := defaultMarket
	ticker := s
	if idx := strings.Index(s, ":"); idx >= 0 {
		market = s[:idx]
		ticker = s[idx+1:]
	}

	if market == "" {
		market = DefaultMarket
	}

	security := NewSecurity(market, ticker)
	if security.Ticker == "" {
		return Security{}, fmt.Errorf("%w: %q", ErrEmptyTicker, s)
	}

	return security, nil
}

// Key returns the catalog partition key. Tickers compare case-insensitively.
func (s Security) Key() string {
	return fmt.Sprintf("%s:%s", strings.ToLower(s.Market), strings.ToUpper(s.Ticker))
}

func (s Security) String() string {
	return s.Key()
}

// ParseDate accepts YYYY-MM-DD or YYYYMMDD and returns the calendar date
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", DateFormat} {
		if dt, err := time.Parse(layout, s); err == nil {
			return dt, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// calendarDate drops the time component and location from t
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
