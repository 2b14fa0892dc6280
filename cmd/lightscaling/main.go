// Command lightscaling generates graphs from light scaling comparison
// results.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/antoninbas/renderbench/internal/chart"
	"github.com/antoninbas/renderbench/internal/config"
	"github.com/antoninbas/renderbench/internal/lightscaling"
	"github.com/antoninbas/renderbench/internal/provenance"
)

type options struct {
	configPath string
	html       bool
	noCharts   bool
}

func init() {
	klog.InitFlags(nil)
}

func main() {
	err := newCommand().Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:     "lightscaling <csv_file> [output_dir]",
		Short:   "Generate graphs from light scaling comparison results",
		Example: "  lightscaling output/light_scaling_comparison.csv output/",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			csvPath := args[0]
			outputDir := filepath.Dir(csvPath)
			if len(args) > 1 {
				outputDir = args[1]
			}
			return run(cmd.OutOrStdout(), csvPath, outputDir, o)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Flags().StringVar(&o.configPath, "config", "", "YAML file with chart settings")
	cmd.Flags().BoolVar(&o.html, "html", false, "also write an interactive HTML report")
	cmd.Flags().BoolVar(&o.noCharts, "no-charts", false, "only print the text summary")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

func run(w io.Writer, csvPath, outputDir string, o *options) error {
	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("CSV file not found: %s", csvPath)
	}

	c, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	cfg := c.LightScalingConfig()
	cfg.Override(o.html, o.noCharts)

	samples, err := lightscaling.Load(csvPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Loaded %d data points from %s\n", len(samples), csvPath)

	src, err := provenance.Describe(filepath.Dir(csvPath))
	if err != nil {
		klog.Warningf("Unable to describe the source of '%s': %v", csvPath, err)
	}
	lightscaling.WriteSummary(w, samples, src)

	if cfg.WantCharts() {
		if err := chart.Probe(); err != nil {
			klog.Warningf("Skipping graphs: %v", err)
			fmt.Fprintln(w, "\nNote: graphs skipped, the chart backend is unavailable")
		} else {
			fmt.Fprintln(w, "\nGenerating graphs...")
			written, err := lightscaling.RenderCharts(outputDir, samples, cfg)
			for _, path := range written {
				fmt.Fprintf(w, "Saved: %s\n", path)
			}
			if err != nil {
				return fmt.Errorf("failed to generate graphs: %w", err)
			}
			fmt.Fprintf(w, "\nAll graphs saved to: %s/\n", outputDir)
		}
	}

	if cfg.WantHTML() {
		path, err := lightscaling.RenderHTML(outputDir, samples)
		if err != nil {
			return fmt.Errorf("failed to generate the HTML report: %w", err)
		}
		fmt.Fprintf(w, "Saved: %s\n", path)
	}
	return nil
}
