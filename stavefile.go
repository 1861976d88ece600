//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

const (
	binary       = "bin/mlexp"
	syntheticCSV = "testdata/synthetic.csv"
)

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the mlexp binary with version information.
func Build() error {
	st.Deps(Init)

	rebuild, err := target.Glob(binary, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Println("mlexp is up to date")
		}
		return nil
	}

	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", binary, "./cmd/mlexp")
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode.
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// TestONNX runs the inference tests against a real model. Set MLEXP_ONNX_MODEL
// and, if the runtime is not on the default path, ONNXRUNTIME_SHARED_LIBRARY_PATH.
func TestONNX() error {
	if os.Getenv("MLEXP_ONNX_MODEL") == "" {
		return fmt.Errorf("MLEXP_ONNX_MODEL is not set")
	}
	return sh.RunV("go", "test", "-race", "-v", "./inference/...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// LintFix runs golangci-lint with auto-fix enabled.
func LintFix() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts and experiment output.
func Clean() error {
	for _, a := range []string{"bin/", "out/", "coverage.out", "coverage.html"} {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs mlexp to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	dst := bin + "/mlexp"
	if runtime.GOOS == "windows" {
		dst += ".exe"
	}
	if err := sh.Copy(dst, binary); err != nil {
		return fmt.Errorf("installing mlexp: %w", err)
	}
	if st.Verbose() {
		fmt.Printf("Installed mlexp to %s\n", dst)
	}
	return nil
}

// Data namespace for dataset targets.
type Data st.Namespace

// Synthetic writes the imbalanced synthetic dataset used by the Experiment targets.
func (Data) Synthetic() error {
	rebuild, err := target.Path(syntheticCSV, "scripts/gen-synthetic.go")
	if err != nil {
		return err
	}
	if !rebuild {
		return nil
	}
	return sh.RunV("go", "run", "./scripts/gen-synthetic.go", "-out", syntheticCSV)
}

// Experiment namespace for end-to-end runs on the synthetic dataset.
type Experiment st.Namespace

// Sweep fits logistic regression and scores it with every scorer.
func (Experiment) Sweep() error {
	st.Deps(Build, Data.Synthetic)
	return sh.RunV(binary, "sweep",
		"--data", syntheticCSV,
		"--exclude", "id,GroupID",
		"--plots", "out/sweep",
		"--report", "out/sweep.json",
	)
}

// Grid runs a grid search over the regularization strength.
func (Experiment) Grid() error {
	st.Deps(Build, Data.Synthetic)
	return sh.RunV(binary, "grid",
		"--data", syntheticCSV,
		"--exclude", "id,GroupID",
		"--grid", "C=0.001,0.01,0.1,1,10",
		"--plots", "out/grid",
		"--report", "out/grid.json",
	)
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Tidy runs go mod tidy and verifies the go.sum is clean.
func Tidy() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return err
	}
	output, err := sh.Output("git", "diff", "--exit-code", "go.sum")
	if err != nil {
		if output != "" {
			return fmt.Errorf("go.sum is not clean:\n%s", output)
		}
	}
	return nil
}
