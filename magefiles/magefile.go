//go:build mage

// Build and CI targets for kodo.
//
//	mage build     Compile bin/kodo
//	mage test      Run the tests with the race detector and coverage
//	mage fmt       Fail when gofmt would change a file
//	mage lint      Run golangci-lint
//	mage vuln      Run govulncheck
//	mage ci        Everything above, in order
//	mage install   Copy bin/kodo to GOPATH/bin
//	mage clean     Remove build artifacts
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "kodo"
	binaryDir  = "bin"
	coverFile  = "coverage.out"
)

// Build compiles the kodo binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-o", filepath.Join(binaryDir, binaryName), ".")
}

// Test runs every test with the race detector and writes coverage.out.
func Test() error {
	return sh.RunV(binGo, "test", "-race", "-coverprofile="+coverFile, "-covermode=atomic", "./...")
}

// Fmt fails when any file is not gofmt -s clean.
func Fmt() error {
	out, err := sh.Output("gofmt", "-s", "-l", ".")
	if err != nil {
		return err
	}
	if out = strings.TrimSpace(out); out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Lint runs golangci-lint when it is installed.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println("golangci-lint not found, skipping (go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "--timeout=5m")
}

// Vuln runs govulncheck when it is installed.
func Vuln() error {
	if _, err := exec.LookPath("govulncheck"); err != nil {
		fmt.Println("govulncheck not found, skipping (go install golang.org/x/vuln/cmd/govulncheck@latest)")
		return nil
	}
	return sh.RunV("govulncheck", "./...")
}

// CI runs the checks the pipeline runs, stopping at the first failure.
func CI() error {
	mg.SerialDeps(Fmt, Lint, Test, Vuln, Build)
	return verifyBinary()
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

// Clean removes build artifacts.
func Clean() error {
	err := os.Remove(coverFile)
	if os.IsNotExist(err) {
		err = nil
	}
	return errors.Join(os.RemoveAll(binaryDir), err)
}

func verifyBinary() error {
	info, err := os.Stat(filepath.Join(binaryDir, binaryName))
	if err != nil {
		return fmt.Errorf("build produced no binary: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("build produced an empty binary")
	}
	return nil
}
