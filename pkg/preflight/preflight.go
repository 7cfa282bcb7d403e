// pkg/preflight/preflight.go - checks that must pass before an install runs.

package preflight

import (
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// The InvokeAI install scripts require a Python interpreter in this range.
const (
	MinPythonVersion = "3.10.1"
	MaxPythonVersion = "3.11.9"
)

var pythonVersionRe = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)

// pythonCommand returns the interpreter command for the current platform.
func pythonCommand() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// ParsePythonVersion extracts the version number from `python --version` output.
func ParsePythonVersion(output string) (string, error) {
	match := pythonVersionRe.FindString(strings.TrimSpace(output))
	if match == "" {
		return "", fmt.Errorf("could not parse interpreter version from %q", output)
	}
	return match, nil
}

// CheckPythonRange reports whether ver falls inside the supported interpreter range.
func CheckPythonRange(ver string) error {
	v, err := goversion.NewVersion(ver)
	if err != nil {
		return fmt.Errorf("invalid interpreter version %q: %w", ver, err)
	}
	lower := goversion.Must(goversion.NewVersion(MinPythonVersion))
	upper := goversion.Must(goversion.NewVersion(MaxPythonVersion))

	if v.LessThan(lower) || v.GreaterThan(upper) {
		return fmt.Errorf("Python version %s - %s is required, found %s",
			MinPythonVersion, MaxPythonVersion, ver)
	}
	return nil
}

// CheckPython probes the system interpreter and validates its version.
// It returns the detected version on success.
func CheckPython() (string, error) {
	cmd := pythonCommand()
	out, err := exec.Command(cmd, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", cmd, err)
	}

	ver, err := ParsePythonVersion(string(out))
	if err != nil {
		return "", err
	}
	if err := CheckPythonRange(ver); err != nil {
		return ver, err
	}
	return ver, nil
}
