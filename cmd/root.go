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
	"context"
	"fmt"
	"os"

	"github.com/penny-vault/pvfine/common"
	"github.com/penny-vault/pvfine/fundamental"
	"github.com/penny-vault/pvfine/observability/opentelemetry"
	"github.com/penny-vault/pvfine/pkginfo"
	"github.com/rs/zerolog/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var shutdownTracing func(context.Context) error

func init() {
	// Data
	bindPersistent("data.folder", "PV_DATA_FOLDER", "data-folder", "./data", "Root folder of the equity data tree")
	bindPersistent("data.market", "PV_MARKET", "market", fundamental.DefaultMarket, "Market of tickers given without a market prefix")

	viper.BindEnv("data.live", "PV_LIVE")
	rootCmd.PersistentFlags().Bool("live", false, "Resolve as a live session; disables the availability catalog")
	viper.BindPFlag("data.live", rootCmd.PersistentFlags().Lookup("live"))

	// Logging configuration
	bindPersistent("log.level", "PV_LOG_LEVEL", "log-level", "warning", "Logging level")
	bindPersistent("log.output", "PV_LOG_OUTPUT", "log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")

	viper.BindEnv("log.pretty", "PV_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Write human readable logs instead of JSON")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))

	viper.BindEnv("log.report_caller", "PV_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	// Tracing
	bindPersistent("otlp.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT", "otlp-endpoint", "", "OTLP collector to send traces to, if blank tracing is disabled")

	viper.BindEnv("otlp.http", "PV_OTLP_HTTP")
	rootCmd.PersistentFlags().Bool("otlp-http", false, "Use HTTP instead of gRPC for the OTLP exporter")
	viper.BindPFlag("otlp.http", rootCmd.PersistentFlags().Lookup("otlp-http"))
}

func bindPersistent(key, env, flag, value, usage string) {
	viper.BindEnv(key, env)
	rootCmd.PersistentFlags().String(flag, value, usage)
	viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

var rootCmd = &cobra.Command{
	Use:     pkginfo.ProgramName,
	Version: pkginfo.Version,
	Short:   "Locate fine fundamental snapshots on disk",
	Long: `Resolve the fine fundamental artifact in effect for a security on a given
date: the newest daily snapshot published on or before that date.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		common.SetupLogging()

		if opentelemetry.Enabled() {
			shutdown, err := opentelemetry.Setup(cmd.Context())
			if err != nil {
				log.Error().Err(err).Msg("could not setup tracing")
				return err
			}
			shutdownTracing = shutdown
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shutdownTracing == nil {
			return
		}
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("could not flush traces")
		}
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
