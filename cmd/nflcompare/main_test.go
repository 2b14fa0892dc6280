package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antoninbas/renderbench/internal/nfl"
)

const header = "Renderer,TotalTimeMs,AvgFrameTimeMs,FPS,MinFrameTimeMs,MaxFrameTimeMs\n"

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMissingArguments(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
	assert.Contains(t, out, "CSV file not found")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "nfl.csv", header+
		"Forward,20.0,0.2,50,0.1,0.4\n"+
		"Deferred,10.0,0.1,100,0.05,0.3\n")
	cfgPath := writeFile(t, dir, "charts.yaml", "nflComparison:\n  dpi: 30\n")
	outputDir := filepath.Join(dir, "report")

	out, err := execute(t, "--config", cfgPath, csvPath, outputDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outputDir, nfl.ChartFile))
	assert.FileExists(t, filepath.Join(outputDir, nfl.SummaryFile))
	assert.Contains(t, out, "Speedup: 2.00x")

	entries, err := ioutil.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMissingDeferred(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "nfl.csv", header+"Forward,20.0,0.2,50,0.1,0.4\n")
	outputDir := filepath.Join(dir, "report")

	out, err := execute(t, csvPath, outputDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Warning: Deferred renderer data not available")
	_, err = os.Stat(outputDir)
	assert.True(t, os.IsNotExist(err))
}
