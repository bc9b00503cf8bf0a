// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "recipebox"
	binaryDir  = "bin"
	cmdDir     = "./cmd/recipebox"
)

// The sqlite driver is pure Go, so the binary never needs cgo.
var buildEnv = map[string]string{"CGO_ENABLED": "0"}

func binaryPath() string {
	return filepath.Join(binaryDir, binaryName)
}

// Build compiles a static recipebox binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunWithV(buildEnv, binGo, "build", "-trimpath", "-o", binaryPath(), cmdDir)
}

// Smoke builds the binary and runs its version command.
func Smoke() error {
	mg.Deps(Build)
	return sh.RunV(binaryPath(), "version")
}

// Clean removes build artifacts and the coverage profile.
func Clean() error {
	for _, p := range []string{binaryDir, coverProfile} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install copies the built binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), binaryPath())
}
