// cmd/nero/main.go

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/itsjustregi/nero/pkg/config"
	"github.com/itsjustregi/nero/pkg/download"
	"github.com/itsjustregi/nero/pkg/installer"
	"github.com/itsjustregi/nero/pkg/logging"
	"github.com/itsjustregi/nero/pkg/preflight"
	"github.com/itsjustregi/nero/pkg/releases"
	"github.com/itsjustregi/nero/pkg/resolver"
	"github.com/itsjustregi/nero/pkg/version"
)

type options struct {
	dryRun       bool
	downloadOnly bool
	latest       bool
	version      string
	rollback     bool
	keep         bool
	downloadDir  string
	check        bool
	updateConfig bool
}

func main() {
	var opts options
	pflag.BoolVar(&opts.dryRun, "dry-run", false, "Perform a dry run without making any changes.")
	pflag.BoolVar(&opts.downloadOnly, "download-only", false, "Only download the installer without running it.")
	pflag.BoolVar(&opts.latest, "latest", false, "Install the latest version without prompting.")
	pflag.StringVar(&opts.version, "version", "", "Specify a version to download and install.")
	pflag.BoolVar(&opts.rollback, "rollback", false, "Rollback to the previous version.")
	pflag.BoolVar(&opts.keep, "keep", false, "Keep the downloaded file after installation.")
	pflag.StringVar(&opts.downloadDir, "download-dir", "", "Specify the directory to save downloads.")
	pflag.BoolVar(&opts.check, "check", false, "Display current configuration and check for updates.")
	pflag.BoolVar(&opts.updateConfig, "update-config", false, "Only update the configuration file with the resolved version.")

	listVersions := pflag.Bool("list-versions", false, "List available versions of InvokeAI.")
	showConfig := pflag.Bool("show-config", false, "Display the current settings and exit.")
	appVersion := pflag.Bool("app-version", false, "Print nero's own version and exit.")

	// Count the number of -v flags.
	var verbosity int
	pflag.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (e.g. -v, -vv)")
	pflag.Parse()

	if len(os.Args) == 1 {
		pflag.Usage()
		return
	}

	logger := logging.New(verbosity)

	if *appVersion {
		version.PrintFull()
		os.Exit(0)
	}

	settingsPath, err := config.SettingsPath()
	if err != nil {
		logger.Fatal("Failed to resolve settings path: %v", err)
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		logger.Fatal("Failed to load settings: %v", err)
	}

	if *showConfig {
		data, err := yaml.Marshal(settings)
		if err != nil {
			logger.Fatal("Failed to serialize settings: %v", err)
		}
		fmt.Printf("Current settings:\n%s", string(data))
		os.Exit(0)
	}

	catalog := releases.NewClient(settings.ReleaseOwner, settings.ReleaseRepo,
		time.Duration(settings.HTTPTimeoutSeconds)*time.Second)

	if *listVersions {
		if err := printVersionList(catalog); err != nil {
			logger.Fatal("Failed to list versions: %v", err)
		}
		return
	}

	if err := run(logger, settings, catalog, opts, os.Stdin); err != nil {
		logger.Error("An error occurred: %v", err)
		os.Exit(1)
	}
}

// printVersionList prints the release catalog, newest first.
func printVersionList(catalog *releases.Client) error {
	list, err := catalog.List(30)
	if err != nil {
		return err
	}
	for _, rel := range list {
		if rel.Prerelease {
			fmt.Printf("%s (pre-release)\n", rel.Version())
		} else {
			fmt.Println(rel.Version())
		}
	}
	return nil
}

// run is the single linear install flow. All failures funnel back to main;
// cleanup of download artifacts is deferred and best-effort.
func run(logger *logging.Logger, settings *config.Settings, catalog *releases.Client, opts options, stdin io.Reader) error {
	logger.Step("Starting Invoke Installer")

	recordPath, err := config.RecordPath()
	if err != nil {
		return err
	}
	rec, err := config.LoadRecord(recordPath)
	if err != nil {
		return err
	}

	res := resolver.New(catalog, stdin, os.Stdout)
	target := opts.version

	if opts.check {
		logger.Step("Current Configuration")
		if prev, err := catalog.Previous(); err == nil && prev != "" {
			logger.Info("Previous stable release: %s", prev)
		}
		target, err = res.CheckAndDisplay(rec)
		if err != nil {
			return err
		}
		if target == "" {
			logger.Warning("No action taken. Exiting.")
			return nil
		}
	}

	if opts.rollback {
		target, err = res.RollbackVersion(rec)
		if err != nil {
			return err
		}
	}

	if target == "" && opts.latest {
		logger.Step("Checking for the latest version")
		target, err = catalog.Latest()
		if err != nil {
			return err
		}
	}

	if target == "" {
		logger.Step("Checking for the latest version")
		target, err = res.CheckForUpdates(rec.CurrentVersion)
		if err != nil {
			return err
		}
		if target == "" {
			return nil
		}
	}

	if opts.updateConfig {
		return updateRecord(logger, recordPath, rec, target, opts.dryRun, true)
	}

	downloadDir := opts.downloadDir
	if downloadDir == "" {
		downloadDir = settings.DownloadDir
	}
	if downloadDir == "" {
		downloadDir = os.TempDir()
	}
	if err := download.CheckDirWritable(downloadDir); err != nil {
		return fmt.Errorf("no write permission for directory %s", downloadDir)
	}

	archivePath := filepath.Join(downloadDir, download.ArchiveName(target))
	archiveURL := download.ArchiveURL(settings.ReleaseOwner, settings.ReleaseRepo, target)

	inst := installer.New(logger, settings.InstallerTimeoutMinutes, opts.dryRun)
	// The downloaded artifact is the point of --download-only; never delete it.
	keep := opts.keep || opts.downloadOnly
	defer inst.Cleanup(archivePath, keep)

	logger.Step("Downloading InvokeAI version %s", target)
	if opts.dryRun {
		logger.DryRun("Would download: %s to %s", archiveURL, archivePath)
	} else {
		timeout := time.Duration(settings.HTTPTimeoutSeconds) * time.Second
		if err := download.Fetch(archiveURL, archivePath, timeout, logger.Warning); err != nil {
			return err
		}
		logger.Success("Download completed")
	}

	if opts.downloadOnly {
		if !opts.dryRun {
			if sum, err := download.FileSHA256(archivePath); err == nil {
				logger.Info("SHA256: %s", sum)
			}
		}
		logger.Success("File saved to: %s", archivePath)
		return nil
	}

	if !settings.SkipPreflight {
		pyVersion, err := preflight.CheckPython()
		if err != nil {
			return err
		}
		logger.Step("Using Python %s", pyVersion)

		if running := preflight.BlockingProcessesRunning(settings.BlockingProcesses); len(running) > 0 {
			return fmt.Errorf("blocking applications are running: %v", running)
		}
	}

	if err := inst.Install(archivePath); err != nil {
		return err
	}

	if err := updateRecord(logger, recordPath, rec, target, opts.dryRun, false); err != nil {
		return err
	}

	logger.Step("Installation completed successfully")
	return nil
}

// updateRecord persists the new version to the installation record.
func updateRecord(logger *logging.Logger, path string, rec *config.Record, target string, dryRun, updateOnly bool) error {
	rec.Apply(target)
	if dryRun {
		logger.DryRun("Would save config: %+v", *rec)
	} else {
		logger.Info("Saving configuration")
		if err := config.SaveRecord(path, rec); err != nil {
			return err
		}
	}
	if updateOnly {
		logger.Success("Configuration updated successfully")
	}
	return nil
}
