package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	root := t.TempDir()
	var console bytes.Buffer
	l, closeFn, err := Setup(Config{Root: root, Debug: true, Console: &console})
	require.NoError(t, err)

	l.Debug("fit.done", "iterations", 3)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(root, "logs", "bpfoil.log"))
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &rec))
	assert.Equal(t, "fit.done", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.EqualValues(t, 3, rec["iterations"])

	assert.Contains(t, console.String(), "fit.done")
}

func TestSetupInfoLevel(t *testing.T) {
	root := t.TempDir()
	l, closeFn, err := Setup(Config{Root: root})
	require.NoError(t, err)
	l.Debug("hidden")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(root, "logs", "bpfoil.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
}

func TestSetupConsoleAttrs(t *testing.T) {
	root := t.TempDir()
	var console bytes.Buffer
	l, closeFn, err := Setup(Config{Root: root, Console: &console})
	require.NoError(t, err)

	l.With("run", "iter_000000001").WithGroup("fit").Info("fit.done", "clearance", 0.14)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(root, "logs", "bpfoil.log"))
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &rec))
	assert.Equal(t, "iter_000000001", rec["run"])
	assert.Equal(t, map[string]any{"clearance": 0.14}, rec["fit"])

	assert.Contains(t, console.String(), "run=iter_000000001")
	assert.Contains(t, console.String(), "fit.clearance=0.14")
}
