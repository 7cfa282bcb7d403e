package resolver

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsjustregi/nero/pkg/config"
)

type fakeCatalog struct {
	latest string
	err    error
}

func (f *fakeCatalog) Latest() (string, error) {
	return f.latest, f.err
}

func newTestResolver(latest, input string) (*Resolver, *bytes.Buffer) {
	out := &bytes.Buffer{}
	r := New(&fakeCatalog{latest: latest}, strings.NewReader(input), out)
	return r, out
}

func TestCheckForUpdatesUpgrade(t *testing.T) {
	r, _ := newTestResolver("0.2", "u\n")

	target, err := r.CheckForUpdates("0.1")
	require.NoError(t, err)
	assert.Equal(t, "0.2", target)
}

func TestCheckForUpdatesDowngrade(t *testing.T) {
	r, _ := newTestResolver("0.2", "d\n0.1\n")

	target, err := r.CheckForUpdates("0.2.1")
	require.NoError(t, err)
	assert.Equal(t, "0.1", target)
}

func TestCheckForUpdatesDowngradeBlankCancels(t *testing.T) {
	r, _ := newTestResolver("0.2", "d\n\n")

	target, err := r.CheckForUpdates("0.1")
	require.NoError(t, err)
	assert.Empty(t, target)
}

func TestCheckForUpdatesCancel(t *testing.T) {
	r, _ := newTestResolver("0.2", "c\n")

	target, err := r.CheckForUpdates("0.1")
	require.NoError(t, err)
	assert.Empty(t, target)
}

func TestCheckForUpdatesAlreadyLatest(t *testing.T) {
	r, out := newTestResolver("0.2", "")

	target, err := r.CheckForUpdates("0.2")
	require.NoError(t, err)
	assert.Empty(t, target)
	assert.Contains(t, out.String(), "You have the latest version installed.")
}

func TestCheckForUpdatesNoCurrentVersionAccept(t *testing.T) {
	r, _ := newTestResolver("0.2", "y\n")

	target, err := r.CheckForUpdates("")
	require.NoError(t, err)
	assert.Equal(t, "0.2", target)
}

func TestCheckForUpdatesNoCurrentVersionDecline(t *testing.T) {
	r, _ := newTestResolver("0.2", "n\n")

	target, err := r.CheckForUpdates("")
	require.NoError(t, err)
	assert.Empty(t, target)
}

func TestCheckForUpdatesCatalogError(t *testing.T) {
	out := &bytes.Buffer{}
	r := New(&fakeCatalog{err: errors.New("boom")}, strings.NewReader(""), out)

	_, err := r.CheckForUpdates("0.1")
	require.Error(t, err)
}

func TestRollbackVersionRecorded(t *testing.T) {
	r, _ := newTestResolver("0.2", "")

	target, err := r.RollbackVersion(&config.Record{PreviousVersion: "0.1"})
	require.NoError(t, err)
	assert.Equal(t, "0.1", target)
}

func TestRollbackVersionPrompted(t *testing.T) {
	// First answer is blank and must be re-asked.
	r, out := newTestResolver("0.2", "\n0.2\n")

	target, err := r.RollbackVersion(&config.Record{})
	require.NoError(t, err)
	assert.Equal(t, "0.2", target)
	assert.Contains(t, out.String(), "Please enter a valid version.")
}

func TestPromptYesNo(t *testing.T) {
	r, _ := newTestResolver("0.2", "y\n")
	ok, err := r.PromptYesNo("Do you want to proceed?")
	require.NoError(t, err)
	assert.True(t, ok)

	r, _ = newTestResolver("0.2", "n\n")
	ok, err = r.PromptYesNo("Do you want to proceed?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckAndDisplayShowsRecord(t *testing.T) {
	r, out := newTestResolver("0.2", "u\n")
	rec := &config.Record{
		CurrentVersion:  "0.1",
		PreviousVersion: "0.0.9",
		LastUpdate:      "2023-01-01T00:00:00Z",
	}

	target, err := r.CheckAndDisplay(rec)
	require.NoError(t, err)
	assert.Equal(t, "0.2", target)
	assert.Contains(t, out.String(), "0.0.9")
	assert.Contains(t, out.String(), "2023-01-01T00:00:00Z")
}
