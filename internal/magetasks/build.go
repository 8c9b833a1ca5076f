package magetasks

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/sh"
)

// Ldflags stamps build metadata into internal/version.
func Ldflags(version, commit, date string) string {
	pkg := ModulePath + "/internal/version"
	return fmt.Sprintf("-s -w -X '%s.Version=%s' -X '%s.CommitHash=%s' -X '%s.BuildDate=%s'",
		pkg, version, pkg, commit, pkg, date)
}

// Build builds the binary with version metadata.
func Build() error {
	PrintHeader("Build")
	ldflags := Ldflags(gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*"),
		gitOutput("unknown", "rev-parse", "--short", "HEAD"),
		time.Now().UTC().Format(time.RFC3339))
	if err := Run("go build", "go", "build", "-ldflags", ldflags, "-o", BinPath, MainPackage); err != nil {
		return err
	}
	PrintSuccess("Built: " + BinPath)
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	PrintHeader("Clean")
	if err := os.RemoveAll("./bin"); err != nil {
		return err
	}
	_ = os.Remove("coverage.out")
	PrintSuccess("Cleaned build artifacts")
	return nil
}

// Test runs the test suite; race adds the race detector, cover writes
// coverage.out and prints the per-function summary.
func Test(race, cover bool) error {
	PrintHeader("Tests")
	args := []string{"test"}
	if race {
		args = append(args, "-race")
	}
	if cover {
		args = append(args, "-coverprofile=coverage.out")
	}
	args = append(args, "./...")
	if err := Run("go test", "go", args...); err != nil {
		return err
	}
	if cover {
		_ = sh.RunV("go", "tool", "cover", "-func=coverage.out")
	}
	PrintSuccess("All tests passed")
	return nil
}

// Lint runs gofmt, go vet and, when installed, staticcheck and
// golangci-lint.
func Lint() error {
	PrintHeader("Lint")
	unformatted, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if files := strings.TrimSpace(unformatted); files != "" {
		PrintError("gofmt needed:\n" + files)
		return errors.New("unformatted files")
	}
	if err := Run("go vet", "go", "vet", "./..."); err != nil {
		return err
	}
	if err := RunOptional("honnef.co/go/tools/cmd/staticcheck@latest", "staticcheck", "staticcheck", "./..."); err != nil {
		return err
	}
	if err := RunOptional("github.com/golangci/golangci-lint/cmd/golangci-lint@latest", "golangci-lint", "golangci-lint", "run", "--timeout=5m", "./..."); err != nil {
		return err
	}
	PrintSuccess("All linters passed")
	return nil
}

func gitOutput(fallback string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}
