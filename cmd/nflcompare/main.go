// Command nflcompare generates comparison graphs and a summary for the NFL
// renderer comparison results.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/antoninbas/renderbench/internal/config"
	"github.com/antoninbas/renderbench/internal/nfl"
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
		Use:   "nflcompare <csv_file> [output_dir]",
		Short: "Generate comparison graphs for NFL renderer comparison results",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			outputDir := "."
			if len(args) > 1 {
				outputDir = args[1]
			}
			return run(cmd.OutOrStdout(), args[0], outputDir, o)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Flags().StringVar(&o.configPath, "config", "", "YAML file with chart settings")
	cmd.Flags().BoolVar(&o.html, "html", false, "also write an interactive HTML report")
	cmd.Flags().BoolVar(&o.noCharts, "no-charts", false, "only write the text summary")
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
	cfg := c.NFLComparisonConfig()
	cfg.Override(o.html, o.noCharts)

	src, err := provenance.Describe(filepath.Dir(csvPath))
	if err != nil {
		klog.Warningf("Unable to describe the source of '%s': %v", csvPath, err)
	}

	_, err = nfl.Generate(csvPath, outputDir, nfl.Options{Charts: cfg, Provenance: src, Out: w})
	return err
}
