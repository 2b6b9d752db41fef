package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--catalog", filepath.Join("..", "..", "examples", "catalog.yaml")}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestListAndRisk(t *testing.T) {
	out := run(t, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 30)
	assert.True(t, strings.HasPrefix(lines[0], "TREASURY_ZERO_LINEAR:FLAT_FORWARD"))

	dir := t.TempDir()
	assets := filepath.Join(dir, "assets.csv")
	liabs := filepath.Join(dir, "liabilities.csv")
	run(t, "risk",
		"--liabilities", filepath.Join("..", "..", "examples", "liability_cash_flows.csv"),
		"--assets-out", assets,
		"--liabilities-out", liabs,
	)

	data, err := os.ReadFile(assets)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1+30*4)

	data, err = os.ReadFile(liabs)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1+30)
}
