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
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/penny-vault/pvfine/common"
	"github.com/penny-vault/pvfine/fundamental"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	viper.BindEnv("watch.every", "PV_WATCH_EVERY")
	watchCmd.Flags().Duration("every", 15*time.Minute, "How often to re-resolve the current snapshot")
	viper.BindPFlag("watch.every", watchCmd.Flags().Lookup("every"))

	rootCmd.AddCommand(watchCmd)
}

// watcher remembers the last source reported per security so that only
// newly published snapshots are logged
type watcher struct {
	resolver      *fundamental.Resolver
	subscriptions []fundamental.SubscriptionConfig
	locker        sync.Mutex
	last          map[string]string
}

var watchCmd = &cobra.Command{
	Use:   "watch [flags] Ticker...",
	Short: "Follow the current fine fundamental snapshot of securities in a live session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := &watcher{
			resolver: newResolver(),
			last:     make(map[string]string, len(args)),
		}

		for _, arg := range args {
			subscription, err := subscriptionFor(arg)
			if err != nil {
				return err
			}
			subscription.IsLive = true
			w.subscriptions = append(w.subscriptions, subscription)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		every := viper.GetDuration("watch.every")
		scheduler := gocron.NewScheduler(common.GetTimezone())
		if _, err := scheduler.Every(every).Do(w.poll, ctx); err != nil {
			log.Error().Err(err).Dur("Every", every).Msg("could not schedule watch")
			return err
		}

		log.Info().Dur("Every", every).Int("NumSecurities", len(w.subscriptions)).Msg("watching fine fundamental snapshots")
		scheduler.StartAsync()

		<-ctx.Done()
		scheduler.Stop()
		log.Info().Msg("stopped watching")
		return nil
	},
}

func (w *watcher) poll(ctx context.Context) {
	today := common.Today()
	for _, subscription := range w.subscriptions {
		source := w.resolver.GetSource(ctx, subscription, today)
		key := subscription.Security.Key()

		w.locker.Lock()
		changed := w.last[key] != source.Source
		w.last[key] = source.Source
		w.locker.Unlock()

		if !changed {
			continue
		}

		if _, err := os.Stat(source.Source); err != nil {
			log.Warn().Str("Security", key).Time("Date", today).Str("Path", source.Source).Msg("no fine fundamental snapshot available")
			continue
		}

		log.Info().Str("Security", key).Time("SnapshotDate", source.Date).Str("Path", source.Source).Msg("fine fundamental snapshot in effect")
	}
}
