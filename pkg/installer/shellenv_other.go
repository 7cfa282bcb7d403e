//go:build windows || darwin

package installer

import "github.com/itsjustregi/nero/pkg/logging"

// LoadShellEnvironment is a no-op on Windows and macOS; the existing process
// environment is used directly.
func LoadShellEnvironment(log *logging.Logger) {}
