//go:build !windows && !darwin

package installer

import (
	"os"
	"os/exec"
	"strings"

	"github.com/itsjustregi/nero/pkg/logging"
)

// LoadShellEnvironment merges the user's login-shell environment into the
// current process so the install script sees the same PATH a terminal would.
// Failure is not fatal.
func LoadShellEnvironment(log *logging.Logger) {
	userShell := os.Getenv("SHELL")
	shell := "bash"
	if strings.Contains(userShell, "zsh") {
		shell = "zsh"
	}

	out, err := exec.Command("env", "-i", shell, "-ic", "env").Output()
	if err != nil {
		log.Warning("Failed to load shell environment. Using current environment.")
		return
	}

	for _, line := range strings.Split(string(out), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found || key == "" {
			continue
		}
		os.Setenv(key, value)
	}
}
