package cmd

import (
	"time"

	"notebook/pkg/outline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var buildCmd = &cobra.Command{
	Use:   "build <directory>",
	Short: "Scan a source tree and compile it in one step",
	Long: `Equivalent to running layout followed by compile, without writing the layout
to disk. Use the two separate commands when the layout needs hand editing.`,
	Args: directoryArg,
	RunE: runBuild,
}

func init() {
	addIgnoreFlag(buildCmd)
	addCompileFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return build(args[0])
}

// build runs the whole pipeline for root. The outline goes through its text
// form so both paths see exactly what a layout file would contain.
func build(root string) error {
	start := time.Now()
	o, err := scanTree(root)
	if err != nil {
		return err
	}
	if err := compileOutline(outline.Decode(outline.Encode(o))); err != nil {
		return err
	}
	logger.Info("Build completed", zap.String("directory", root), zap.Duration("elapsed", time.Since(start)))
	return nil
}
