// pkg/installer/cleanup.go - best-effort removal of download and extraction artifacts.

package installer

import (
	"os"
	"time"
)

const deleteAttempts = 5

var deleteInterval = time.Second

// Cleanup removes the downloaded archive (unless keep is set) and the temp
// extraction directory. Each deletion is retried; failures are logged and
// otherwise ignored.
func (i *Installer) Cleanup(archivePath string, keep bool) {
	i.Log.Step("Cleaning up")

	if i.DryRun {
		if archivePath != "" && !keep {
			i.Log.DryRun("Would remove: %s", archivePath)
		}
		return
	}

	if archivePath != "" && !keep {
		if _, err := os.Stat(archivePath); err == nil {
			if removeWithRetry(archivePath, os.Remove) {
				i.Log.Success("Successfully removed %s", archivePath)
			} else {
				i.Log.Error("Failed to remove %s after multiple attempts", archivePath)
			}
		}
	}

	if i.extractDir != "" {
		if _, err := os.Stat(i.extractDir); err == nil {
			if removeWithRetry(i.extractDir, os.RemoveAll) {
				i.Log.Success("Successfully removed temporary directory")
			} else {
				i.Log.Error("Failed to remove temporary directory after multiple attempts")
			}
		}
		i.extractDir = ""
	}
}

// removeWithRetry calls remove on path up to deleteAttempts times, sleeping
// between attempts. Installers on Windows can hold files open briefly after
// exiting.
func removeWithRetry(path string, remove func(string) error) bool {
	for attempt := 0; attempt < deleteAttempts; attempt++ {
		if err := remove(path); err == nil {
			return true
		}
		if attempt < deleteAttempts-1 {
			time.Sleep(deleteInterval)
		}
	}
	return false
}
