// pkg/installer/installer.go - extracting and running the packaged installer.

package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/itsjustregi/nero/pkg/logging"
)

// InstallerDirName is the directory the release archive unpacks to.
const InstallerDirName = "InvokeAI-Installer"

// Installer extracts a downloaded release archive and runs its platform
// install script.
type Installer struct {
	Log            *logging.Logger
	TimeoutMinutes int
	DryRun         bool

	// extractDir is the temp directory of the last extraction; Cleanup
	// removes it.
	extractDir string
}

// New creates an Installer.
func New(log *logging.Logger, timeoutMinutes int, dryRun bool) *Installer {
	return &Installer{
		Log:            log,
		TimeoutMinutes: timeoutMinutes,
		DryRun:         dryRun,
	}
}

// Install extracts archivePath into a temp directory and executes the
// platform install script found inside.
func (i *Installer) Install(archivePath string) error {
	i.Log.Step("Extracting the installer")

	if i.DryRun {
		i.Log.DryRun("Would extract: %s", archivePath)
		i.Log.Step("Running the installer")
		i.Log.DryRun("Would run: %s", scriptName())
		return nil
	}

	tempDir, err := os.MkdirTemp("", "nero-installer-")
	if err != nil {
		return fmt.Errorf("creating temp extraction directory: %w", err)
	}
	i.extractDir = tempDir

	if err := ExtractZip(archivePath, tempDir); err != nil {
		return fmt.Errorf("extracting %s: %w", archivePath, err)
	}

	installerDir := filepath.Join(tempDir, InstallerDirName)
	if _, err := os.Stat(installerDir); err != nil {
		return fmt.Errorf("archive did not contain %s: %w", InstallerDirName, err)
	}

	LoadShellEnvironment(i.Log)

	i.Log.Step("Running the installer")
	return i.runScript(installerDir)
}

// scriptName returns the platform install script file name.
func scriptName() string {
	if runtime.GOOS == "windows" {
		return "install.bat"
	}
	return "install.sh"
}

// runScript executes the install script with dir as working directory,
// inheriting stdio, bounded by the configured timeout.
func (i *Installer) runScript(dir string) error {
	timeout := time.Duration(i.TimeoutMinutes) * time.Minute
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	script := scriptName()
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", script)
	} else {
		cmd = exec.CommandContext(ctx, "./"+script)
	}
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	i.Log.Info("Executing: %s", script)
	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("installer timed out after %d minutes", i.TimeoutMinutes)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("installer failed with exit code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("running installer script: %w", err)
	}
	return nil
}
