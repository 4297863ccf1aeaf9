//go:build stave

package main

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/goeclint"

var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
	"dog": Dogfood.Check,
}

type (
	Test    st.Namespace
	Lint    st.Namespace
	CI      st.Namespace
	Dogfood st.Namespace
)

// Build compiles bin/goeclint with version info when any source changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building goeclint...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/goeclint")
}

// Check formats, lints, tests, then checks the repository with itself.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default, Dogfood.Check)
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Deps downloads and tidies modules.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Default runs the race-enabled test suite through gotestsum.
func (Test) Default() error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum",
		"-f", cmp.Or(os.Getenv("GOTESTSUM_FORMAT"), "pkgname-and-test-fails"),
		"--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...",
	)
}

// Default runs golangci-lint with --fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt rewrites Go sources with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg", "stavefile.go")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "stavefile.go")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Gate runs everything CI requires, in order.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Build, Test.Default, CI.ModTidy, Dogfood.Check)
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make([][]byte, len(files))
	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[i] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for i, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if !bytes.Equal(before[i], after) {
			return fmt.Errorf("%s changed after go mod tidy", name)
		}
	}
	return nil
}

// Check runs goeclint check over this repository.
func (Dogfood) Check() error {
	st.Deps(Build)
	return sh.RunV(binary, "check", "--format", "summary", ".")
}

// Diff shows what goeclint fix would change in this repository.
func (Dogfood) Diff() error {
	st.Deps(Build)
	return sh.RunV(binary, "fix", "--dry-run", ".")
}

// Infer prints the .editorconfig this repository already follows.
func (Dogfood) Infer() error {
	st.Deps(Build)
	return sh.RunV(binary, "infer", "--format", "ini", "--root", ".")
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
