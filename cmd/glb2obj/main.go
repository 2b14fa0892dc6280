// Command glb2obj converts GLB (binary glTF) files to OBJ for the renderer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/antoninbas/renderbench/internal/meshconv"
)

var errConversionFailed = errors.New("conversion failed")

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
	cmd := &cobra.Command{
		Use:   "glb2obj <input.glb> <output.obj>",
		Short: "Convert a GLB file to OBJ",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			glbPath, objPath := args[0], args[1]
			if _, err := os.Stat(glbPath); err != nil {
				return fmt.Errorf("file not found: %s", glbPath)
			}
			if !convertGLBToOBJ(cmd.OutOrStdout(), glbPath, objPath) {
				return errConversionFailed
			}
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

// convertGLBToOBJ reports the outcome of a conversion instead of returning
// the error.
func convertGLBToOBJ(w io.Writer, glbPath, objPath string) bool {
	if err := meshconv.Convert(glbPath, objPath); err != nil {
		klog.ErrorS(err, "Conversion failed", "input", glbPath, "output", objPath)
		fmt.Fprintf(w, "Error converting %s: %v\n", glbPath, err)
		return false
	}
	fmt.Fprintf(w, "Successfully converted %s to %s\n", glbPath, objPath)
	return true
}
