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
	"path/filepath"
	"sync/atomic"
	"time"

	. "github.com/onsi/gomega"
	"github.com/penny-vault/pvfine/fundamental"
	"github.com/spf13/afero"
)

const dataRoot = "/data"

// countingFs counts calls to Open, which afero.ReadDir uses to list a
// directory. Existence checks go through Stat and are not counted.
type countingFs struct {
	afero.Fs
	opens atomic.Int64
}

func newCountingFs() *countingFs {
	return &countingFs{Fs: afero.NewMemMapFs()}
}

func (fs *countingFs) Open(name string) (afero.File, error) {
	fs.opens.Add(1)
	return fs.Fs.Open(name)
}

func (fs *countingFs) Opens() int64 {
	return fs.opens.Load()
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func publish(fs afero.Fs, security fundamental.Security, dates ...time.Time) {
	for _, dt := range dates {
		path := fundamental.BuildPath(dataRoot, security, dt)
		Expect(fs.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		Expect(afero.WriteFile(fs, path, []byte("PK"), 0o644)).To(Succeed())
	}
}

func touchFile(fs afero.Fs, security fundamental.Security, name string) {
	dir := fundamental.DirPath(dataRoot, security)
	Expect(fs.MkdirAll(dir, 0o755)).To(Succeed())
	Expect(afero.WriteFile(fs, filepath.Join(dir, name), []byte{}, 0o644)).To(Succeed())
}
