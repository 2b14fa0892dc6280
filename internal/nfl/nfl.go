package nfl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"k8s.io/klog/v2"

	"github.com/antoninbas/renderbench/internal/chart"
	"github.com/antoninbas/renderbench/internal/config"
	"github.com/antoninbas/renderbench/internal/provenance"
)

func init() {
	gocsv.FailIfUnmatchedStructTags = true
}

func Load(path string) ([]RendererSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	return records, nil
}

// Decode reads summaries keyed by the header row. Columns other than the
// RendererSummary fields are ignored.
func Decode(r io.Reader) ([]RendererSummary, error) {
	var records []RendererSummary
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Select picks the first Forward and the first Deferred record.
func Select(records []RendererSummary) (*Comparison, error) {
	var fwd, def *RendererSummary
	for i := range records {
		switch records[i].Renderer {
		case Forward:
			if fwd == nil {
				fwd = &records[i]
			}
		case Deferred:
			if def == nil {
				def = &records[i]
			}
		}
	}
	if fwd == nil {
		return nil, ErrMissingForward
	}
	if def == nil {
		return nil, ErrMissingDeferred
	}
	return &Comparison{Forward: *fwd, Deferred: *def}, nil
}

// Options control which outputs Generate produces.
type Options struct {
	Charts     config.ChartConfiguration
	Provenance *provenance.Source
	// Out receives progress lines such as the saved file paths.
	Out io.Writer
}

// Generate reads the comparison CSV and writes the chart panel and the
// summary text file into dir. When the Deferred row is missing a warning is
// printed and nothing is written.
func Generate(csvPath, dir string, o Options) ([]string, error) {
	if o.Out == nil {
		o.Out = io.Discard
	}
	records, err := Load(csvPath)
	if err != nil {
		return nil, err
	}
	cmp, err := Select(records)
	if errors.Is(err, ErrMissingDeferred) {
		fmt.Fprintln(o.Out, "Warning: Deferred renderer data not available")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := cmp.Validate(); err != nil {
		return nil, err
	}

	WriteTable(o.Out, cmp)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	var written []string
	if o.Charts.WantCharts() {
		if err := chart.Probe(); err != nil {
			klog.Warningf("Skipping charts: %v", err)
		} else {
			path := filepath.Join(dir, ChartFile)
			if err := RenderChart(path, cmp, o.Charts); err != nil {
				return written, err
			}
			fmt.Fprintf(o.Out, "Graphs saved to: %s\n", path)
			written = append(written, path)
		}
	}
	if o.Charts.WantHTML() {
		path := filepath.Join(dir, HTMLFile)
		if err := RenderHTML(path, cmp); err != nil {
			return written, err
		}
		fmt.Fprintf(o.Out, "Interactive graphs saved to: %s\n", path)
		written = append(written, path)
	}

	path := filepath.Join(dir, SummaryFile)
	var b strings.Builder
	WriteSummary(&b, cmp, o.Provenance)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return written, fmt.Errorf("unable to write summary: %w", err)
	}
	fmt.Fprintf(o.Out, "Summary saved to: %s\n", path)
	return append(written, path), nil
}

func writeRenderer(w io.Writer, name string, r *RendererSummary) {
	fmt.Fprintf(w, "%s Renderer:\n", name)
	fmt.Fprintf(w, "  Total Time: %.2f ms (%.2f s)\n", r.TotalTimeMs, r.TotalTimeMs/1000)
	fmt.Fprintf(w, "  Avg Frame Time: %.2f ms\n", r.AvgFrameTimeMs)
	fmt.Fprintf(w, "  FPS: %.2f\n", r.FPS)
	fmt.Fprintf(w, "  Min Frame Time: %.2f ms\n", r.MinFrameTimeMs)
	fmt.Fprintf(w, "  Max Frame Time: %.2f ms\n\n", r.MaxFrameTimeMs)
}

// WriteSummary writes the plain text comparison report.
func WriteSummary(w io.Writer, cmp *Comparison, src *provenance.Source) {
	fmt.Fprintln(w, "NFL Renderer Comparison Summary")
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 50))
	if src != nil {
		fmt.Fprintf(w, "Source commit: %s\n\n", src)
	}
	writeRenderer(w, Forward, &cmp.Forward)
	writeRenderer(w, Deferred, &cmp.Deferred)
	fmt.Fprintln(w, "Comparison:")
	fmt.Fprintf(w, "  Speedup: %.2fx\n", cmp.Speedup())
	fmt.Fprintf(w, "  FPS Improvement: %.1f%%\n", cmp.FPSImprovement())
	fmt.Fprintf(w, "  Winner: %s\n", cmp.Winner())
}
