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
	"errors"
	"fmt"

	"github.com/penny-vault/pvfine/fundamental"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var historyBars int

var (
	ErrMissingBegin    = errors.New("history requires Begin and End dates unless --bars is set")
	ErrBeginWithBars   = errors.New("a begin date cannot be combined with --bars")
	ErrHistoryArgCount = errors.New("history takes Ticker, Begin, and End, or Ticker and End with --bars")
)

// validateHistoryArgs checks the positional arguments against the mode
// selected by --bars
func validateHistoryArgs(args []string, bars int) error {
	switch {
	case len(args) < 2 || len(args) > 3:
		return fmt.Errorf("%w: got %d arguments", ErrHistoryArgCount, len(args))
	case bars > 0 && len(args) == 3:
		return ErrBeginWithBars
	case bars <= 0 && len(args) == 2:
		return ErrMissingBegin
	}
	return nil
}

func init() {
	historyCmd.Flags().IntVarP(&historyBars, "bars", "n", 0, "Return the last N artifacts on or before End instead of a date range")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [flags] Ticker [Begin] End",
	Short: "List the fine fundamental artifacts published over a period",
	Long: `List the distinct fine fundamental artifacts in effect between Begin and End,
or the last N artifacts published on or before End when --bars is given.`,
	Args: func(cmd *cobra.Command, args []string) error {
		return validateHistoryArgs(args, historyBars)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		subscription, err := subscriptionFor(args[0])
		if err != nil {
			return err
		}

		end, err := parseDateArg(args[len(args)-1])
		if err != nil {
			return err
		}

		resolver := newResolver()
		var sources []*fundamental.SubscriptionDataSource

		if historyBars > 0 {
			sources, err = resolver.HistoryBars(cmd.Context(), subscription, end, historyBars)
		} else {
			begin, parseErr := parseDateArg(args[1])
			if parseErr != nil {
				return parseErr
			}
			sources, err = resolver.History(cmd.Context(), subscription, begin, end)
		}

		if err != nil {
			log.Error().Err(err).Str("Security", subscription.Security.Key()).Msg("could not load history")
			return err
		}

		log.Info().Str("Security", subscription.Security.Key()).Int("NumSources", len(sources)).Msg("loaded history")
		return printJSON(sources)
	},
}
