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
	"os"

	"github.com/penny-vault/pvfine/fundamental"
	"github.com/spf13/cobra"
)

type resolveOutput struct {
	Security  fundamental.Security `json:"security"`
	Requested string               `json:"requested"`
	Live      bool                 `json:"live"`
	Exists    bool                 `json:"exists"`
	*fundamental.SubscriptionDataSource
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:        "resolve [flags] Ticker Date",
	Short:      "Print the fine fundamental artifact in effect on a date",
	Args:       cobra.ExactArgs(2),
	ArgAliases: []string{"Ticker", "Date"},
	RunE: func(cmd *cobra.Command, args []string) error {
		subscription, err := subscriptionFor(args[0])
		if err != nil {
			return err
		}

		date, err := parseDateArg(args[1])
		if err != nil {
			return err
		}

		source := newResolver().GetSource(cmd.Context(), subscription, date)

		_, statErr := os.Stat(source.Source)
		return printJSON(&resolveOutput{
			Security:               subscription.Security,
			Requested:              date.Format("2006-01-02"),
			Live:                   subscription.IsLive,
			Exists:                 statErr == nil,
			SubscriptionDataSource: source,
		})
	},
}
