// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type (
	// Lint is the Mage namespace for linting targets.
	Lint mg.Namespace

	// Test is the Mage namespace for testing targets.
	Test mg.Namespace

	// Build is the Mage namespace for build targets.
	Build mg.Namespace
)

var binaries = []string{
	"arith-lexer",
	"lexer-server",
	"lexer-grpc",
}

// fuzzTests maps each package to the fuzz targets it defines.
var fuzzTests = map[string][]string{
	"./internal/app/": {
		"FuzzPostClassifyRandomInput",
		"FuzzPostClassifyLexeme",
		"FuzzPostAnalysisRandomInput",
	},
	"./internal/lexer/": {
		"FuzzTokenize",
	},
}

// Ensures all files have copyright and license set.
func (Lint) License() error {
	return sh.Run("reuse", "lint")
}

// Runs golangci-lint over the module.
func (Lint) Golang() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Runs unit tests with race detection and coverage.
func (Test) Unit() error {
	return sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./...")
}

// Runs fuzz tests.
func (Test) Fuzz(fuzzMinutes string) error {
	outputDir := filepath.Join("internal", "app", "fuzz-output")

	// Create the directory if it doesn't exist
	err := os.MkdirAll(outputDir, 0750)
	if err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fuzzSeconds, err := parseMinutesToSeconds(fuzzMinutes)
	if err != nil {
		return err
	}

	outputFile := filepath.Join(outputDir, "fuzz_output.txt")
	for pkg, tests := range fuzzTests {
		for _, fuzzTest := range tests {
			cmd := fmt.Sprintf("nohup go test %s -fuzz=%s -run=%s -fuzztime=%ds >> %s 2>&1 &", pkg, fuzzTest, fuzzTest, fuzzSeconds, outputFile)
			fmt.Println("Running command:", cmd)

			err := sh.Run("sh", "-c", cmd)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Builds every binary into the build directory.
func (Build) All() error {
	for _, name := range binaries {
		if err := buildBinary(name); err != nil {
			return err
		}
	}
	return nil
}

// Builds a single binary by name.
func (Build) Binary(name string) error {
	return buildBinary(name)
}

func buildBinary(name string) error {
	out := filepath.Join("build", name)
	pkg := "./" + filepath.Join("cmd", name)
	env := map[string]string{"CGO_ENABLED": "1"}
	if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, pkg); err != nil {
		return fmt.Errorf("failed to build %q: %w", name, err)
	}
	return nil
}

// parseMinutesToSeconds converts a duration in minutes to seconds.
func parseMinutesToSeconds(minutes string) (int, error) {
	if minutes == "" {
		return 60, nil
	}

	minValue, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes format: %w", err)
	}

	return minValue * 60, nil
}
