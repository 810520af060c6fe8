package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

// field returns the value printed after a label by simulate.
func field(t *testing.T, out, label string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, label); ok {
			return strings.TrimSpace(rest)
		}
	}
	t.Fatalf("no %q line in output:\n%s", label, out)
	return ""
}

func number(t *testing.T, out, label string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(field(t, out, label), 64)
	require.NoError(t, err)
	return v
}

// vector parses a "(x, y, z)" value printed by simulate.
func vector(t *testing.T, out, label string) [3]float64 {
	t.Helper()
	parts := strings.Split(strings.Trim(field(t, out, label), "()"), ",")
	require.Len(t, parts, 3)
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		require.NoError(t, err)
		v[i] = f
	}
	return v
}

func TestConfigPrintsDefaults(t *testing.T) {
	out := execute(t, "config")

	printed := config.NewFile()
	require.NoError(t, printed.LoadReader(strings.NewReader(out), "yaml"))
	s := printed.Section("tools.MouseCameraTool")
	assert.Equal(t, 8.0, s.RetrieveFloat("rotateFactor", 0))
	assert.Equal(t, 0.5, s.RetrieveFloat("wheelScaleFactor", 0))
	assert.Equal(t, -0.5, s.RetrieveFloat("wheelDollyFactor", 0))
	assert.True(t, s.RetrieveBool("showFrustum", false))
	assert.False(t, s.RetrieveBool("applyScale", true))
}

func TestConfigMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxyvr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tools:\n  MouseCameraTool:\n    rotateFactor: 4\n    invertDolly: true\n"), 0o644))

	out := execute(t, "--config", path, "config")

	printed := config.NewFile()
	require.NoError(t, printed.LoadReader(strings.NewReader(out), "yaml"))
	s := printed.Section("tools.MouseCameraTool")
	assert.Equal(t, 4.0, s.RetrieveFloat("rotateFactor", 0))
	assert.True(t, s.RetrieveBool("invertDolly", false))
	assert.Equal(t, 8.0, s.RetrieveFloat("scaleFactor", 0))
}

func TestConfigMissingFileFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "config"})
	assert.Error(t, cmd.Execute())
}

func TestSimulateWheel(t *testing.T) {
	out := execute(t, "simulate", "--dx", "0", "--wheel", "1")
	assert.InDelta(t, 2, number(t, out, "scale"), 1e-4)
	assert.Equal(t, "idle", field(t, out, "mode"))
	assert.InDelta(t, 0, number(t, out, "azimuth"), 1e-4)

	out = execute(t, "simulate", "--dx", "0", "--wheel", "-2")
	assert.InDelta(t, 0.25, number(t, out, "scale"), 1e-4)
}

func TestSimulateRotateDrag(t *testing.T) {
	out := execute(t, "simulate", "--dx", "0.25", "--steps", "5")
	// dragging right turns the rig to negative azimuth
	assert.Less(t, number(t, out, "azimuth"), -0.1)
	assert.InDelta(t, 0, number(t, out, "elevation"), 1e-4)
	assert.InDelta(t, 1, number(t, out, "scale"), 1e-4)
}

func TestSimulatePanDrag(t *testing.T) {
	out := execute(t, "simulate", "--pan", "--dx", "0.25", "--steps", "5")
	assert.InDelta(t, 0, number(t, out, "azimuth"), 1e-4)
	assert.NotEqual(t, "(0.0000, 0.0000, 0.1500)", field(t, out, "center"))
}

func TestSimulateHeldPanStaysPut(t *testing.T) {
	dragged := execute(t, "simulate", "--pan", "--dx", "0.25", "--steps", "5")
	held := execute(t, "simulate", "--pan", "--dx", "0.25", "--steps", "5", "--hold", "20")
	want, got := vector(t, dragged, "center"), vector(t, held, "center")
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "center[%d]", i)
	}
}

func TestSimulateHeldRotateStaysPut(t *testing.T) {
	dragged := execute(t, "simulate", "--dx", "0.25", "--steps", "5")
	held := execute(t, "simulate", "--dx", "0.25", "--steps", "5", "--hold", "20")
	assert.InDelta(t, number(t, dragged, "azimuth"), number(t, held, "azimuth"), 1e-4)
	assert.InDelta(t, number(t, dragged, "elevation"), number(t, held, "elevation"), 1e-4)
}
