//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/dkoosis/copyproblem/internal/magetasks"
)

// Default target - build the binary
var Default = Build

func init() {
	if err := magetasks.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

// Build builds the copyproblem binary
func Build() error {
	return magetasks.Build()
}

// Clean removes build artifacts
func Clean() error {
	return magetasks.Clean()
}

// QA runs lint, the race-enabled tests and the build
func QA() {
	mg.SerialDeps(Lint.All, Test.Race, Build)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// All runs all linters
func (Lint) All() error {
	return magetasks.Lint()
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return magetasks.Test(false, false)
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	return magetasks.Test(false, true)
}

// Race runs tests with race detector
func (Test) Race() error {
	return magetasks.Test(true, false)
}
