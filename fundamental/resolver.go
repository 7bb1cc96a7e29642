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
	"sort"
	"time"

	"github.com/penny-vault/pvfine/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Resolver maps a (security, date) request onto the newest fine
// fundamental artifact published on or before that date
type Resolver struct {
	dataRoot string
	fs       afero.Fs
	catalog  *AvailabilityCatalog
}

type Option func(*Resolver)

type outcome string

const (
	outcomeExact          outcome = "exact"
	outcomeLiveProbe      outcome = "live-probe"
	outcomeNoDirectory    outcome = "no-directory"
	outcomeProbeExhausted outcome = "probe-exhausted"
	outcomeCatalog        outcome = "catalog"
	outcomeUnresolved     outcome = "unresolved"
)

type resolution struct {
	path    string
	date    time.Time
	outcome outcome
}

// WithFs reads artifacts from fs instead of the OS filesystem
func WithFs(fs afero.Fs) Option {
	return func(resolver *Resolver) {
		resolver.fs = fs
	}
}

// WithCatalog shares an existing catalog with the resolver. The catalog is
// ignored unless it reads from the same filesystem as the resolver.
func WithCatalog(catalog *AvailabilityCatalog) Option {
	return func(resolver *Resolver) {
		resolver.catalog = catalog
	}
}

// NewResolver creates a resolver for artifacts stored under dataRoot
func NewResolver(dataRoot string, opts ...Option) *Resolver {
	resolver := &Resolver{
		dataRoot: dataRoot,
		fs:       afero.NewOsFs(),
	}

	for _, opt := range opts {
		opt(resolver)
	}

	if resolver.catalog != nil && resolver.catalog.fs != resolver.fs {
		log.Warn().Str("DataRoot", dataRoot).Msg("shared catalog reads from a different filesystem; using a private catalog")
		resolver.catalog = nil
	}

	if resolver.catalog == nil {
		resolver.catalog = NewAvailabilityCatalog(resolver.fs)
	}

	return resolver
}

// Catalog returns the availability catalog owned by the resolver
func (resolver *Resolver) Catalog() *AvailabilityCatalog {
	return resolver.catalog
}

// DataRoot returns the directory artifacts are resolved against
func (resolver *Resolver) DataRoot() string {
	return resolver.dataRoot
}

// Resolve returns the path of the newest artifact on or before date. When
// nothing suitable is found the exact path for date is returned even though
// it does not exist.
func (resolver *Resolver) Resolve(ctx context.Context, config SubscriptionConfig, date time.Time) string {
	return resolver.resolve(ctx, config, date).path
}

// GetSource wraps Resolve into a data source descriptor for the file reader
func (resolver *Resolver) GetSource(ctx context.Context, config SubscriptionConfig, date time.Time) *SubscriptionDataSource {
	return resolver.resolve(ctx, config, date).source()
}

func (res resolution) source() *SubscriptionDataSource {
	return &SubscriptionDataSource{
		Source:    res.path,
		Date:      res.date,
		Transport: LocalFile,
		Format:    ZipEntryName,
	}
}

// found reports whether the resolution points at an existing artifact
func (res resolution) found() bool {
	switch res.outcome {
	case outcomeExact, outcomeLiveProbe, outcomeCatalog:
		return true
	default:
		return false
	}
}

func (resolver *Resolver) resolve(ctx context.Context, config SubscriptionConfig, date time.Time) resolution {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "fundamental.Resolve")
	defer span.End()

	date = calendarDate(date)
	security := config.Security
	res := resolver.search(security, date, config.IsLive)

	span.SetAttributes(
		attribute.String("security", security.Key()),
		attribute.String("date", date.Format(DateFormat)),
		attribute.Bool("live", config.IsLive),
		attribute.String("outcome", string(res.outcome)),
	)

	log.Trace().
		Str("Security", security.Key()).
		Time("Date", date).
		Bool("Live", config.IsLive).
		Str("Outcome", string(res.outcome)).
		Str("Path", res.path).
		Msg("resolved fine fundamental source")

	return res
}

func (resolver *Resolver) search(security Security, date time.Time, isLive bool) resolution {
	exact := BuildPath(resolver.dataRoot, security, date)
	unresolved := resolution{path: exact, date: date, outcome: outcomeUnresolved}

	if exists, err := afero.Exists(resolver.fs, exact); err == nil && exists {
		return resolution{path: exact, date: date, outcome: outcomeExact}
	}

	if isLive {
		path, dt, result := probeBackward(resolver.fs, resolver.dataRoot, security, date)
		switch result {
		case probeFound:
			return resolution{path: path, date: dt, outcome: outcomeLiveProbe}
		case probeDirectoryMissing:
			unresolved.outcome = outcomeNoDirectory
		default:
			unresolved.outcome = outcomeProbeExhausted
		}

		// live sessions never read or write the catalog and never list the
		// directory, not even after an exhausted probe; an unresolved live
		// request returns the exact path
		return unresolved
	}

	dates := resolver.catalog.DatesFor(security, exact)
	if len(dates) == 0 || date.Before(dates[0]) {
		return unresolved
	}

	// index of the first cataloged date after the requested date
	idx := sort.Search(len(dates), func(i int) bool {
		return dates[i].After(date)
	})
	if idx == 0 {
		return unresolved
	}

	found := dates[idx-1]
	return resolution{
		path:    BuildPath(resolver.dataRoot, security, found),
		date:    found,
		outcome: outcomeCatalog,
	}
}
