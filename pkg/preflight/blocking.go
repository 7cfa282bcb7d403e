// pkg/preflight/blocking.go - refuse to install while the application is running.

package preflight

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// IsAppRunning checks if a named application is currently running. Names are
// compared case-insensitively, with or without an .exe suffix.
func IsAppRunning(appName string) bool {
	processes, err := process.Processes()
	if err != nil {
		return false
	}

	cleanAppName := strings.ToLower(appName)

	for _, proc := range processes {
		name, err := proc.Name()
		if err != nil {
			continue
		}

		processName := strings.ToLower(name)
		if processName == cleanAppName || processName == cleanAppName+".exe" {
			return true
		}
	}

	return false
}

// BlockingProcessesRunning returns the names from blocking that are currently
// running.
func BlockingProcessesRunning(blocking []string) []string {
	var running []string
	for _, name := range blocking {
		if name == "" {
			continue
		}
		if IsAppRunning(name) {
			running = append(running, name)
		}
	}
	return running
}
