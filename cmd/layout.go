package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"notebook/pkg/ignore"
	"notebook/pkg/outline"
	"notebook/pkg/scan"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	layoutOutput   string
	layoutTree     bool
	ignorePatterns []string
)

var layoutCmd = &cobra.Command{
	Use:   "layout <directory>",
	Short: "Scan a source tree and print its layout",
	Long: `Scan a directory (up to three levels deep) and print the notebook layout:
one line per entry, with no leading tab for a section, one for a subsection and
two for a source file. Hidden entries and files that are not .cpp, .rs, .c, .h,
.hpp, .py, .java or .txt are left out. Patterns in <directory>/.notebookignore
and --ignore are excluded as well.

Edit the result to reorder or rename sections before running compile.`,
	Args: directoryArg,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().StringVarP(&layoutOutput, "output", "o", "", "write the layout to a file instead of stdout")
	layoutCmd.Flags().BoolVar(&layoutTree, "tree", false, "print a tree preview instead of layout text")
	addIgnoreFlag(layoutCmd)
	rootCmd.AddCommand(layoutCmd)
}

func addIgnoreFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&ignorePatterns, "ignore", nil, "gitignore-style pattern to exclude (repeatable)")
}

func runLayout(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	o, err := scanTree(args[0])
	if err != nil {
		return err
	}

	text := outline.Encode(o)
	if layoutTree {
		text = outline.RenderTree(o)
	}

	if layoutOutput == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(layoutOutput, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	logger.Info("Wrote layout", zap.String("file", layoutOutput), zap.Int("entries", len(o)))
	return nil
}

// scanTree loads ignore rules for root and scans it.
func scanTree(root string) (outline.Outline, error) {
	gi := ignore.New(logger)
	if err := gi.CompileFile(filepath.Join(root, ignore.FileName)); err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	gi.CompileLines(ignorePatterns...)

	o, err := scan.New(gi, logger).Scan(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if len(o) == 0 {
		logger.Warn("No source files found", zap.String("directory", root))
	}
	return o, nil
}
