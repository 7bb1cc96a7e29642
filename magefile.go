//go:build mage

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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/magefile/mage/mg" // mg contains helpful utility functions, like Deps
	"github.com/magefile/mage/sh"
)

const (
	binaryName  = "pvfine"
	modulePath  = "github.com/penny-vault/pvfine"
	packageName = "."
)

var ldflags = "-X " + modulePath + "/pkginfo.CommitHash=$COMMIT_HASH -X " + modulePath + "/pkginfo.BuildDate=$BUILD_DATE"

// allow user to override go executable by running as GOEXE=xxx mage ... on unix-like systems
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

// Build the pvfine binary
func Build() error {
	fmt.Println("Building...")
	return sh.RunWith(flagEnv(), goexe, argsToStrings("build", "-o", binaryName, "-ldflags", ldflags, buildFlags(), "-v", packageName)...)
}

func Install() error {
	return sh.RunWith(flagEnv(), goexe, argsToStrings("install", "-ldflags", ldflags, buildFlags(), packageName)...)
}

// Clean up
func Clean() {
	fmt.Println("Cleaning...")
	os.RemoveAll(binaryName)
}

// Run tests and linters
func Check() {
	mg.Deps(Fmt, Vet)
	mg.Deps(TestRace)
}

// Run tests
func Test() error {
	fmt.Println("Go Test")
	return runCmd(goexe, "test", "./...", buildFlags())
}

// Run tests with race detector; the catalog is shared between goroutines
func TestRace() error {
	fmt.Println("Go Test Race")
	return runCmd(goexe, "test", "-race", "./...", buildFlags())
}

// Run gofmt linter
func Fmt() error {
	fmt.Println("Go Format")

	pkgs, err := packages()
	if err != nil {
		return err
	}

	var unformatted []string
	for _, pkg := range pkgs {
		files, err := filepath.Glob(filepath.Join(pkg, "*.go"))
		if err != nil {
			return err
		}
		for _, f := range files {
			// gofmt doesn't exit with non-zero when it finds unformatted code
			s, err := sh.Output("gofmt", "-l", f)
			if err != nil {
				return fmt.Errorf("running gofmt on %q: %w", f, err)
			}
			if s != "" {
				unformatted = append(unformatted, s)
			}
		}
	}

	if len(unformatted) > 0 {
		fmt.Println("The following files are not gofmt'ed:")
		fmt.Println(strings.Join(unformatted, "\n"))
		return errors.New("improperly formatted go files")
	}
	return nil
}

// Run go vet linter
func Vet() error {
	fmt.Println("Go Vet")

	if err := sh.Run(goexe, "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %w", err)
	}
	return nil
}

// Generate test coverage report
func TestCoverHTML() error {
	fmt.Println("Generate Test Coverage HTML")

	const (
		coverAll = "coverage-all.out"
		cover    = "coverage.out"
	)

	all := bytes.NewBufferString("mode: count\n")
	pkgs, err := packages()
	if err != nil {
		return err
	}

	for _, pkg := range pkgs {
		if err := sh.Run(goexe, "test", "-coverprofile="+cover, "-covermode=count", pkg); err != nil {
			return err
		}
		b, err := os.ReadFile(cover)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		idx := bytes.Index(b, []byte{'\n'})
		all.Write(b[idx+1:])
	}

	if err := os.WriteFile(coverAll, all.Bytes(), 0o644); err != nil {
		return err
	}
	return sh.Run(goexe, "tool", "cover", "-html="+coverAll)
}

// Helpers

func buildFlags() []string {
	if runtime.GOOS == "windows" {
		return []string{"-buildmode", "exe"}
	}
	return nil
}

func flagEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

func runCmd(cmd string, args ...interface{}) error {
	if mg.Verbose() {
		return sh.Run(cmd, argsToStrings(args...)...)
	}
	output, err := sh.Output(cmd, argsToStrings(args...)...)
	if err != nil {
		fmt.Fprint(os.Stderr, output)
	}
	return err
}

var (
	pkgs     []string
	pkgsInit sync.Once
)

func packages() ([]string, error) {
	var err error
	pkgsInit.Do(func() {
		var s string
		s, err = sh.Output(goexe, "list", "./...")
		if err != nil {
			return
		}
		for _, pkg := range strings.Split(s, "\n") {
			pkgs = append(pkgs, "."+strings.TrimPrefix(pkg, modulePath))
		}
	})
	return pkgs, err
}

func argsToStrings(v ...interface{}) []string {
	var args []string
	for _, arg := range v {
		switch v := arg.(type) {
		case string:
			if v != "" {
				args = append(args, v)
			}
		case []string:
			args = append(args, v...)
		default:
			panic("invalid type")
		}
	}
	return args
}
