package lightscaling

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/antoninbas/renderbench/internal/provenance"
)

const rule = 60

// WriteSummary prints the per-light-count table, the crossover point and how
// much each renderer slows down from the first to the last light count.
func WriteSummary(w io.Writer, samples []Sample, src *provenance.Source) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", rule))
	fmt.Fprintln(w, "LIGHT SCALING COMPARISON SUMMARY")
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", rule))
	if src != nil {
		fmt.Fprintf(w, "Source commit: %s\n\n", src)
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"Lights", "Forward FPS", "Deferred FPS", "Winner", "Speedup"})
	for _, s := range samples {
		row := []string{
			fmt.Sprintf("%d", s.LightCount),
			fmt.Sprintf("%.2f", s.ForwardFPS),
			fmt.Sprintf("%.2f", s.DeferredFPS),
			s.Winner,
			fmt.Sprintf("%.2fx", s.Speedup),
		}
		table.Rich(row, []tablewriter.Colors{{}, {}, {}, {}, generateColor(s.Speedup)})
	}
	table.Render()

	if crossover, ok := Crossover(samples); ok {
		fmt.Fprintf(w, "\nCROSSOVER POINT: ~%d lights\n", crossover)
		fmt.Fprintln(w, "(Deferred becomes faster at around this many lights)")
	} else {
		fmt.Fprintln(w, "\nNo crossover detected (Forward always faster)")
	}

	if len(samples) > 0 {
		first, last := samples[0], samples[len(samples)-1]
		fmt.Fprintf(w, "\nPERFORMANCE SCALING (%d → %d lights):\n", first.LightCount, last.LightCount)
		fmt.Fprintf(w, "  Forward slowdown:  %s\n", formatSlowdown(column(samples, forwardTimeMs)))
		fmt.Fprintf(w, "  Deferred slowdown: %s\n", formatSlowdown(column(samples, deferredTimeMs)))
	}
	fmt.Fprintln(w, strings.Repeat("=", rule))
}

func formatSlowdown(values []float64) string {
	ratio, ok := Slowdown(values)
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", ratio)
}

func generateColor(speedup float64) tablewriter.Colors {
	if speedup > CrossoverThreshold {
		return tablewriter.Colors{tablewriter.Bold, tablewriter.FgGreenColor}
	}
	return tablewriter.Colors{tablewriter.Bold, tablewriter.FgBlueColor}
}
