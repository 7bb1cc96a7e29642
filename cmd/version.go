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
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/penny-vault/pvfine/pkginfo"
	"github.com/spf13/cobra"
)

var deps bool

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&deps, "deps", false, "print dependencies")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(buildVersionString())
		if deps {
			fmt.Println()
			fmt.Println("Dependencies:\n\n" + strings.Join(dependencyList(), "\n"))
		}
	},
}

// buildVersionString is what you see when running "pvfine version"
func buildVersionString() string {
	date := pkginfo.BuildDate
	if date == "" {
		date = "unknown"
	}

	commit := pkginfo.CommitHash
	if commit == "" {
		commit = "unknown"
	}

	return fmt.Sprintf(`%s v%s %s/%s

Build Date: %s
Commit: %s
Built with: %s`,
		pkginfo.ProgramName, pkginfo.Version, runtime.GOOS, runtime.GOARCH, date, commit, runtime.Version())
}

// dependencyList returns a sorted dependency list on the format package="version"
func dependencyList() []string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	deps := make([]string, 0, len(bi.Deps))
	for _, dep := range bi.Deps {
		deps = append(deps, fmt.Sprintf("%s=%q", dep.Path, dep.Version))
	}

	sort.Strings(deps)
	return deps
}
