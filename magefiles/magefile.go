//go:build mage

// Package main provides build targets for dishes using Mage.
//
// Usage:
//
//	mage build     Compile the dishes binary to bin/ with version info
//	mage test      Run all tests
//	mage testRace  Run all tests with the race detector
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install dishes to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo       = "go"
	binLint     = "golangci-lint"
	binaryName  = "dishes"
	binaryDir   = "bin"
	cmdDir      = "./cmd/dishes"
	versionPkg  = "github.com/mesh-intelligence/dishes/internal/version"
	defaultVers = "0.1.0"
)

// Build compiles the dishes binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests. Postgres and Redis tests run only when
// DISHES_TEST_POSTGRES_DSN or DISHES_TEST_REDIS_URL is set.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestRace runs all tests with the race detector.
func TestRace() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

// ldflags stamps version, commit and build time into internal/version.
func ldflags() string {
	version := defaultVers
	if tag, err := sh.Output("git", "describe", "--tags", "--abbrev=0"); err == nil && tag != "" {
		version = strings.TrimPrefix(tag, "v")
	}
	commit := "unknown"
	if sha, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil && sha != "" {
		commit = sha
	}
	built := time.Now().UTC().Format(time.RFC3339)

	return strings.Join([]string{
		fmt.Sprintf("-X %s.Version=%s", versionPkg, version),
		fmt.Sprintf("-X %s.Commit=%s", versionPkg, commit),
		fmt.Sprintf("-X %s.BuildTime=%s", versionPkg, built),
	}, " ")
}
