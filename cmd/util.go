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

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/penny-vault/pvfine/fundamental"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// newResolver creates a resolver over data.folder. Each command runs with
// its own catalog.
func newResolver() *fundamental.Resolver {
	resolver := fundamental.NewResolver(viper.GetString("data.folder"))
	log.Debug().Str("DataFolder", resolver.DataRoot()).Msg("created fine fundamental resolver")
	return resolver
}

// subscriptionFor parses a ticker argument into a subscription using the
// configured market and mode
func subscriptionFor(ticker string) (fundamental.SubscriptionConfig, error) {
	security, err := fundamental.ParseSecurity(ticker, viper.GetString("data.market"))
	if err != nil {
		log.Error().Err(err).Str("InputStr", ticker).Msg("could not parse security")
		return fundamental.SubscriptionConfig{}, err
	}

	return fundamental.SubscriptionConfig{
		Security: security,
		IsLive:   viper.GetBool("data.live"),
	}, nil
}

func parseDateArg(s string) (time.Time, error) {
	dt, err := fundamental.ParseDate(s)
	if err != nil {
		log.Error().Err(err).Str("InputStr", s).Msg("could not parse date")
	}
	return dt, err
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
