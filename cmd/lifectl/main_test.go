package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unbounded-life/pkg/pattern"
	"unbounded-life/pkg/patterns"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error", "--log-format", "json"))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestPatternsCommand(t *testing.T) {
	out, err := execute(t, "patterns")
	require.NoError(t, err)
	assert.Contains(t, out, "glider")
	assert.Contains(t, out, "spaceship")
	assert.Contains(t, out, "13x13")

	out, err = execute(t, "patterns", "glider")
	require.NoError(t, err)
	assert.Equal(t, ".O.\n..O\nOOO\n", out)

	_, err = execute(t, "patterns", "unicorn")
	assert.Error(t, err)
}

func TestStepCommand(t *testing.T) {
	blinker, _ := patterns.Lookup("blinker")
	for _, alg := range []string{"naive", "hashlife"} {
		out, err := execute(t, "step", "--pattern", "blinker", "-n", "2", "--algorithm", alg)
		require.NoError(t, err)
		assert.Equal(t, pattern.Serialize(blinker.State), out, alg)
	}

	out, err := execute(t, "step", "--pattern", "glider", "-n", "400")
	require.NoError(t, err)
	glider, _ := patterns.Lookup("glider")
	assert.Equal(t, pattern.Serialize(glider.State.OffsetBy(100, 100)), out)

	_, err = execute(t, "step", "--pattern", "glider", "--algorithm", "quantum")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	clean := writeFile(t, "clean.life", "#Life 1.05\nOO\nOO\n")
	short := writeFile(t, "short.life", "OOO\nO\n")

	out, err := execute(t, "check", clean, short)
	require.NoError(t, err)
	assert.Contains(t, out, "Line 2 is unexpectedly short")
	assert.Contains(t, out, "clean.life: 4 cells, 0 diagnostics")

	_, err = execute(t, "check", "--strict", clean)
	assert.NoError(t, err)
	_, err = execute(t, "check", "--strict", clean, short)
	assert.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	in := writeFile(t, "in.life", "OO\n")
	out, err := execute(t, "convert", in, "--dx", "1", "--dy", "-2")
	require.NoError(t, err)
	assert.Equal(t, "#Life 1.05\n#N\n#P 1 -2\nOO\n", out)

	dst := filepath.Join(t.TempDir(), "out.life")
	_, err = execute(t, "convert", in, "-o", dst)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#Life 1.05\n#N\n#P 0 0\nOO\n", string(data))
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "--soups", "3", "--size", "12", "--generations", "1,30", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "6 comparisons, 0 mismatches")
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--pattern", "glider", "--generations", "3", "--gps", "0", "-n", "4")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"generation 4: 5 cells in [1,1..3,3]",
		"generation 8: 5 cells in [2,2..4,4]",
		"generation 12: 5 cells in [3,3..5,5]",
	}, lines)
}

func TestRunWithConfigAndShow(t *testing.T) {
	cfg := writeFile(t, "life.yaml", `
simulation:
  algorithm: naive
  pattern: blinker
  generations_per_second: 0
viewer:
  width: 5
  height: 3
  cell_size: 1
`)
	out, err := execute(t, "run", "--config", cfg, "--generations", "1", "--show")
	require.NoError(t, err)
	// The library blinker is horizontal at the origin, so one step makes
	// it vertical around (1, 0).
	assert.Equal(t, "generation 1: 3 cells in [1,-1..1,1]\n...O.\n...O.\n...O.\n", out)
}

func TestRunWatchNeedsConfig(t *testing.T) {
	_, err := execute(t, "run", "--watch")
	assert.Error(t, err)
}
