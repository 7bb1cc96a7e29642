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

package fundamental_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pvfine/fundamental"
)

var _ = Describe("Resolver", func() {
	var (
		ctx      context.Context
		fs       *countingFs
		resolver *fundamental.Resolver
		security fundamental.Security
		backtest fundamental.SubscriptionConfig
		live     fundamental.SubscriptionConfig
	)

	path := func(y, m, d int) string {
		return fundamental.BuildPath(dataRoot, security, day(y, time.Month(m), d))
	}

	BeforeEach(func() {
		ctx = context.Background()
		fs = newCountingFs()
		resolver = fundamental.NewResolver(dataRoot, fundamental.WithFs(fs))
		security = fundamental.NewSecurity("usa", "AAPL")
		backtest = fundamental.SubscriptionConfig{Security: security}
		live = fundamental.SubscriptionConfig{Security: security, IsLive: true}
	})

	Context("in backtest mode", func() {
		BeforeEach(func() {
			publish(fs, security, day(2014, 6, 2), day(2014, 6, 4), day(2014, 6, 9))
		})

		It("returns the exact artifact without listing the directory", func() {
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 4))).To(Equal(path(2014, 6, 4)))
			Expect(resolver.Catalog().Listings()).To(Equal(int64(0)))
			Expect(fs.Opens()).To(Equal(int64(0)))
		})

		It("returns the newest artifact before the requested date", func() {
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 6))).To(Equal(path(2014, 6, 4)))
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 3))).To(Equal(path(2014, 6, 2)))
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 8))).To(Equal(path(2014, 6, 4)))
		})

		It("returns the last artifact for dates after the catalog", func() {
			Expect(resolver.Resolve(ctx, backtest, day(2015, 1, 1))).To(Equal(path(2014, 6, 9)))
		})

		It("does not search forward from dates before the catalog", func() {
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 1))).To(Equal(path(2014, 6, 1)))
		})

		It("ignores the time of day of the request", func() {
			requested := time.Date(2014, 6, 6, 16, 0, 0, 0, time.FixedZone("EST", -5*60*60))
			Expect(resolver.Resolve(ctx, backtest, requested)).To(Equal(path(2014, 6, 4)))
		})

		It("lists the directory once across repeated requests", func() {
			first := resolver.Resolve(ctx, backtest, day(2014, 6, 6))
			second := resolver.Resolve(ctx, backtest, day(2014, 6, 6))
			Expect(second).To(Equal(first))
			resolver.Resolve(ctx, backtest, day(2014, 6, 7))
			Expect(resolver.Catalog().Listings()).To(Equal(int64(1)))
			Expect(fs.Opens()).To(Equal(int64(1)))
		})

		It("keeps serving the first catalog after new artifacts appear", func() {
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 11))).To(Equal(path(2014, 6, 9)))
			publish(fs, security, day(2014, 6, 10))
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 11))).To(Equal(path(2014, 6, 9)))
		})

		It("treats tickers case-insensitively", func() {
			lower := fundamental.SubscriptionConfig{Security: fundamental.Security{Market: "USA", Ticker: "aapl"}}
			Expect(resolver.Resolve(ctx, lower, day(2014, 6, 6))).To(Equal(path(2014, 6, 4)))
		})

		It("answers concurrent requests consistently", func() {
			var wg sync.WaitGroup
			results := make([]string, 16)
			for ii := range results {
				wg.Add(1)
				go func(idx int) {
					defer GinkgoRecover()
					defer wg.Done()
					results[idx] = resolver.Resolve(ctx, backtest, day(2014, 6, 6))
				}(ii)
			}
			wg.Wait()

			for _, result := range results {
				Expect(result).To(Equal(path(2014, 6, 4)))
			}
		})

		It("describes the resolved source", func() {
			source := resolver.GetSource(ctx, backtest, day(2014, 6, 6))
			Expect(source.Source).To(Equal(path(2014, 6, 4)))
			Expect(source.Date).To(Equal(day(2014, 6, 4)))
			Expect(source.Transport).To(Equal(fundamental.LocalFile))
			Expect(source.Format).To(Equal(fundamental.ZipEntryName))
		})
	})

	Context("in backtest mode without a directory", func() {
		It("returns the exact path and lists at most once", func() {
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 6))).To(Equal(path(2014, 6, 6)))
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 6))).To(Equal(path(2014, 6, 6)))
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 7))).To(Equal(path(2014, 6, 7)))
			Expect(resolver.Catalog().Listings()).To(Equal(int64(1)))
			Expect(fs.Opens()).To(Equal(int64(1)))
		})
	})

	Context("in live mode", func() {
		It("returns the exact artifact when published", func() {
			publish(fs, security, day(2014, 6, 20))
			Expect(resolver.Resolve(ctx, live, day(2014, 6, 20))).To(Equal(path(2014, 6, 20)))
		})

		It("probes back within the window", func() {
			publish(fs, security, day(2014, 6, 17), day(2014, 6, 8))
			Expect(resolver.Resolve(ctx, live, day(2014, 6, 20))).To(Equal(path(2014, 6, 17)))
		})

		It("finds an artifact exactly ten days back", func() {
			publish(fs, security, day(2014, 6, 10))
			Expect(resolver.Resolve(ctx, live, day(2014, 6, 20))).To(Equal(path(2014, 6, 10)))
		})

		It("never returns artifacts outside the window", func() {
			publish(fs, security, day(2014, 6, 8))
			Expect(resolver.Resolve(ctx, live, day(2014, 6, 20))).To(Equal(path(2014, 6, 20)))
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 20))).To(Equal(path(2014, 6, 8)))
		})

		It("never builds a catalog entry", func() {
			publish(fs, security, day(2014, 6, 1))
			Expect(resolver.Resolve(ctx, live, day(2014, 6, 20))).To(Equal(path(2014, 6, 20)))
			Expect(resolver.Catalog().Cached(fundamental.DirPath(dataRoot, security))).To(BeFalse())
			Expect(resolver.Catalog().Listings()).To(Equal(int64(0)))
		})

		It("returns the exact path when the directory is missing", func() {
			Expect(resolver.Resolve(ctx, live, day(2014, 6, 20))).To(Equal(path(2014, 6, 20)))
			Expect(resolver.Catalog().Listings()).To(Equal(int64(0)))
		})

		It("sees artifacts published during the session", func() {
			publish(fs, security, day(2014, 6, 17))
			Expect(resolver.Resolve(ctx, live, day(2014, 6, 20))).To(Equal(path(2014, 6, 17)))
			publish(fs, security, day(2014, 6, 19))
			Expect(resolver.Resolve(ctx, live, day(2014, 6, 20))).To(Equal(path(2014, 6, 19)))
		})
	})

	Context("with a shared catalog", func() {
		It("reuses entries built by another resolver", func() {
			publish(fs, security, day(2014, 6, 2))
			catalog := fundamental.NewAvailabilityCatalog(fs)
			first := fundamental.NewResolver(dataRoot, fundamental.WithFs(fs), fundamental.WithCatalog(catalog))
			second := fundamental.NewResolver(dataRoot, fundamental.WithFs(fs), fundamental.WithCatalog(catalog))

			Expect(first.Resolve(ctx, backtest, day(2014, 6, 5))).To(Equal(path(2014, 6, 2)))
			Expect(second.Resolve(ctx, backtest, day(2014, 6, 5))).To(Equal(path(2014, 6, 2)))
			Expect(catalog.Listings()).To(Equal(int64(1)))
		})

		It("keeps data roots apart", func() {
			publish(fs, security, day(2014, 6, 2))
			catalog := fundamental.NewAvailabilityCatalog(fs)
			first := fundamental.NewResolver(dataRoot, fundamental.WithFs(fs), fundamental.WithCatalog(catalog))
			other := fundamental.NewResolver("/other", fundamental.WithFs(fs), fundamental.WithCatalog(catalog))
			Expect(other.DataRoot()).To(Equal("/other"))

			Expect(first.Resolve(ctx, backtest, day(2014, 6, 5))).To(Equal(path(2014, 6, 2)))
			Expect(other.Resolve(ctx, backtest, day(2014, 6, 5))).To(Equal(fundamental.BuildPath("/other", security, day(2014, 6, 5))))

			sources, err := other.History(ctx, backtest, day(2014, 6, 1), day(2014, 6, 10))
			Expect(err).To(BeNil())
			Expect(sources).To(BeEmpty())

			Expect(catalog.Len()).To(Equal(2))
			Expect(catalog.Listings()).To(Equal(int64(2)))
		})

		It("ignores a catalog reading from another filesystem", func() {
			publish(fs, security, day(2014, 6, 2))
			foreign := fundamental.NewAvailabilityCatalog(newCountingFs())
			foreign.DatesFor(security, path(2014, 6, 5))

			resolver := fundamental.NewResolver(dataRoot, fundamental.WithFs(fs), fundamental.WithCatalog(foreign))
			Expect(resolver.Catalog()).ToNot(BeIdenticalTo(foreign))
			Expect(resolver.Resolve(ctx, backtest, day(2014, 6, 5))).To(Equal(path(2014, 6, 2)))
		})
	})
})
