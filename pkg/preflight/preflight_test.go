package preflight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePythonVersion(t *testing.T) {
	ver, err := ParsePythonVersion("Python 3.10.6")
	require.NoError(t, err)
	assert.Equal(t, "3.10.6", ver)

	ver, err = ParsePythonVersion("Python 3.11\n")
	require.NoError(t, err)
	assert.Equal(t, "3.11", ver)
}

func TestParsePythonVersionGarbage(t *testing.T) {
	_, err := ParsePythonVersion("command not found")
	require.Error(t, err)
}

func TestCheckPythonRange(t *testing.T) {
	assert.NoError(t, CheckPythonRange("3.10.1"))
	assert.NoError(t, CheckPythonRange("3.10.14"))
	assert.NoError(t, CheckPythonRange("3.11.9"))

	assert.Error(t, CheckPythonRange("3.10.0"))
	assert.Error(t, CheckPythonRange("3.9.18"))
	assert.Error(t, CheckPythonRange("3.12.0"))
	assert.Error(t, CheckPythonRange("not-a-version"))
}

func TestBlockingProcessesRunningEmptyList(t *testing.T) {
	assert.Empty(t, BlockingProcessesRunning(nil))
	assert.Empty(t, BlockingProcessesRunning([]string{""}))
}

func TestBlockingProcessesRunningUnlikelyName(t *testing.T) {
	assert.Empty(t, BlockingProcessesRunning([]string{"nero-test-process-that-cannot-exist"}))
}
