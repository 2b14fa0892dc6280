package nfl

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antoninbas/renderbench/internal/config"
	"github.com/antoninbas/renderbench/internal/provenance"
)

const header = "Renderer,Frames,TotalTimeMs,AvgFrameTimeMs,FPS,MinFrameTimeMs,MaxFrameTimeMs\n"

const comparisonCSV = header +
	"Forward,100,20.00,0.20,50.00,0.10,0.40\n" +
	"Deferred,100,10.00,0.10,100.00,0.05,0.30\n"

func writeCSV(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "nfl.csv")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func comparison(t *testing.T) *Comparison {
	records, err := Decode(strings.NewReader(comparisonCSV))
	require.NoError(t, err)
	cmp, err := Select(records)
	require.NoError(t, err)
	return cmp
}

func smallCharts() config.ChartConfiguration {
	cfg := config.NFLComparisonDefaults
	cfg.DPI = 30
	return cfg
}

func TestMetrics(t *testing.T) {
	cmp := comparison(t)
	assert.Equal(t, 2.0, cmp.Speedup())
	assert.Equal(t, 100.0, cmp.FPSImprovement())
	assert.Equal(t, Deferred, cmp.Winner())

	slower := Comparison{
		Forward:  RendererSummary{TotalTimeMs: 10, FPS: 100},
		Deferred: RendererSummary{TotalTimeMs: 20, FPS: 50},
	}
	assert.Equal(t, 0.5, slower.Speedup())
	assert.Equal(t, -50.0, slower.FPSImprovement())
	assert.Equal(t, Forward, slower.Winner())
}

func TestSelect(t *testing.T) {
	testCases := []struct {
		renderers []string
		expectErr error
	}{
		{renderers: []string{Forward, Deferred}},
		{renderers: []string{Deferred, Forward}},
		{renderers: []string{Forward, Forward, Deferred, Deferred}},
		{renderers: []string{Forward}, expectErr: ErrMissingDeferred},
		{renderers: []string{Deferred}, expectErr: ErrMissingForward},
		{renderers: []string{"Tiled"}, expectErr: ErrMissingForward},
	}
	for _, tCase := range testCases {
		var records []RendererSummary
		for i, r := range tCase.renderers {
			records = append(records, RendererSummary{Renderer: r, TotalTimeMs: float64(i + 1)})
		}
		cmp, err := Select(records)
		assert.Equal(t, tCase.expectErr, err, "renderers %v", tCase.renderers)
		if tCase.expectErr == nil {
			assert.Equal(t, Forward, cmp.Forward.Renderer)
			assert.Equal(t, Deferred, cmp.Deferred.Renderer)
		}
	}

	records := []RendererSummary{
		{Renderer: Forward, TotalTimeMs: 1},
		{Renderer: Forward, TotalTimeMs: 2},
		{Renderer: Deferred, TotalTimeMs: 3},
	}
	cmp, err := Select(records)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cmp.Forward.TotalTimeMs)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		cmp       Comparison
		expectErr bool
	}{
		{name: "valid", cmp: *comparison(t)},
		{name: "zero deferred time", cmp: Comparison{Forward: RendererSummary{TotalTimeMs: 20, FPS: 50}}, expectErr: true},
		{name: "negative deferred time", cmp: Comparison{Forward: RendererSummary{TotalTimeMs: 20, FPS: 50}, Deferred: RendererSummary{TotalTimeMs: -1, FPS: 100}}, expectErr: true},
		{name: "zero forward fps", cmp: Comparison{Forward: RendererSummary{TotalTimeMs: 20}, Deferred: RendererSummary{TotalTimeMs: 10, FPS: 100}}, expectErr: true},
	}
	for _, tCase := range testCases {
		err := tCase.cmp.Validate()
		if tCase.expectErr {
			assert.ErrorIs(t, err, ErrInvalidTiming, tCase.name)
		} else {
			assert.NoError(t, err, tCase.name)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(header + "Forward,100,slow,0.2,50,0.1,0.4\n"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("Renderer,FPS\nForward,50\n"))
	assert.Error(t, err)
}

func TestWriteSummary(t *testing.T) {
	var b bytes.Buffer
	WriteSummary(&b, comparison(t), &provenance.Source{Commit: "abc1234", Dirty: true})
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "NFL Renderer Comparison Summary\n"))
	assert.Contains(t, out, "Source commit: abc1234 (dirty)")
	assert.Contains(t, out, "Forward Renderer:\n  Total Time: 20.00 ms (0.02 s)\n")
	assert.Contains(t, out, "Deferred Renderer:\n  Total Time: 10.00 ms (0.01 s)\n")
	assert.Contains(t, out, "  FPS: 100.00\n")
	assert.Contains(t, out, "  Speedup: 2.00x\n")
	assert.Contains(t, out, "  FPS Improvement: 100.0%\n")
	assert.Contains(t, out, "  Winner: Deferred\n")
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	var out bytes.Buffer
	written, err := Generate(writeCSV(t, comparisonCSV), dir, Options{Charts: smallCharts(), Out: &out})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, ChartFile), filepath.Join(dir, SummaryFile)}, written)

	entries, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	summary, err := ioutil.ReadFile(filepath.Join(dir, SummaryFile))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Speedup: 2.00x")
	assert.Contains(t, out.String(), "Graphs saved to: ")
	assert.Contains(t, out.String(), "Summary saved to: ")
}

func TestGenerateWithoutCharts(t *testing.T) {
	dir := t.TempDir()
	cfg := smallCharts()
	cfg.Override(false, true)
	written, err := Generate(writeCSV(t, comparisonCSV), dir, Options{Charts: cfg})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, SummaryFile)}, written)
}

func TestGenerateHTML(t *testing.T) {
	dir := t.TempDir()
	cfg := smallCharts()
	cfg.Override(true, true)
	written, err := Generate(writeCSV(t, comparisonCSV), dir, Options{Charts: cfg})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, HTMLFile), filepath.Join(dir, SummaryFile)}, written)
}

func TestGenerateMissingDeferred(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	var out bytes.Buffer
	written, err := Generate(writeCSV(t, header+"Forward,100,20,0.2,50,0.1,0.4\n"), dir, Options{Charts: smallCharts(), Out: &out})
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Contains(t, out.String(), "Warning: Deferred renderer data not available")

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateZeroDeferredTime(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	csv := header +
		"Forward,100,20.00,0.20,50.00,0.10,0.40\n" +
		"Deferred,100,0,0,100.00,0,0\n"
	written, err := Generate(writeCSV(t, csv), dir, Options{Charts: smallCharts()})
	assert.ErrorIs(t, err, ErrInvalidTiming)
	assert.Empty(t, written)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateMissingFile(t *testing.T) {
	_, err := Generate(filepath.Join(t.TempDir(), "missing.csv"), t.TempDir(), Options{Charts: smallCharts()})
	assert.Error(t, err)
}
