// pkg/resolver/resolver.go - decides which version to install next.

package resolver

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/itsjustregi/nero/pkg/config"
)

const (
	bold  = "\033[1m"
	reset = "\033[0m"
	green = "\033[32m"
	warn  = "\033[93m"
)

// Catalog is the slice of the release catalog the resolver needs.
type Catalog interface {
	Latest() (string, error)
}

// Resolver turns persisted state and user intent into a target version.
// An empty target means no action (cancel or already up to date).
type Resolver struct {
	Catalog Catalog
	In      *bufio.Reader
	Out     io.Writer
}

// New creates a Resolver reading prompt answers from in.
func New(catalog Catalog, in io.Reader, out io.Writer) *Resolver {
	return &Resolver{
		Catalog: catalog,
		In:      bufio.NewReader(in),
		Out:     out,
	}
}

func (r *Resolver) readLine() (string, error) {
	line, err := r.In.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptYesNo asks a yes/no question; only "y" counts as yes.
func (r *Resolver) PromptYesNo(question string) (bool, error) {
	fmt.Fprintf(r.Out, "%s%s (y/n): %s", bold, question, reset)
	answer, err := r.readLine()
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) == "y", nil
}

// CheckForUpdates compares the installed version against the catalog and asks
// the user what to do. It returns the selected target version, or "" when the
// user cancels or nothing needs installing.
func (r *Resolver) CheckForUpdates(currentVersion string) (string, error) {
	latest, err := r.Catalog.Latest()
	if err != nil {
		return "", err
	}

	if currentVersion == "" {
		fmt.Fprintf(r.Out, "\n%sNo version currently installed.%s\n", warn, reset)
		install, err := r.PromptYesNo("No current version found. Do you want to install the latest version?")
		if err != nil {
			return "", err
		}
		if install {
			return latest, nil
		}
		return "", nil
	}

	fmt.Fprintf(r.Out, "Current version: %s, Latest version available: %s\n", currentVersion, latest)

	if currentVersion == latest {
		fmt.Fprintf(r.Out, "%sYou have the latest version installed.%s\n", green, reset)
		return "", nil
	}

	fmt.Fprintf(r.Out, "%sDo you want to upgrade (u), downgrade (d), or cancel (c)? %s", bold, reset)
	choice, err := r.readLine()
	if err != nil {
		return "", err
	}

	switch strings.ToLower(choice) {
	case "u":
		return latest, nil
	case "d":
		fmt.Fprintf(r.Out, "%sEnter the version you want to downgrade to (or leave blank to cancel): %s", bold, reset)
		target, err := r.readLine()
		if err != nil {
			return "", err
		}
		return target, nil
	default:
		return "", nil
	}
}

// RollbackVersion returns the recorded previous version, asking for one when
// the record holds none. Empty answers re-prompt.
func (r *Resolver) RollbackVersion(rec *config.Record) (string, error) {
	if rec.PreviousVersion != "" {
		return rec.PreviousVersion, nil
	}

	for {
		fmt.Fprintf(r.Out, "%sEnter the version you want to rollback to: %s", bold, reset)
		answer, err := r.readLine()
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintf(r.Out, "%sPlease enter a valid version.%s\n", warn, reset)
	}
}

// CheckAndDisplay prints the installation record and catalog state before
// running the usual update resolution.
func (r *Resolver) CheckAndDisplay(rec *config.Record) (string, error) {
	fmt.Fprintf(r.Out, "%scurrent_version:%s %s\n", bold, reset, rec.CurrentVersion)
	fmt.Fprintf(r.Out, "%sprevious_version:%s %s\n", bold, reset, rec.PreviousVersion)
	fmt.Fprintf(r.Out, "%slast_update:%s %s\n", bold, reset, rec.LastUpdate)

	return r.CheckForUpdates(rec.CurrentVersion)
}
