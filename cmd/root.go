// Package cmd provides the command-line interface for notebook.
//
// A notebook is built in two steps that can also run together:
//
//	notebook layout ./library > layout.txt   scan a source tree into layout text
//	notebook compile                         turn layout.txt + notebook.yml into out.tex
//	notebook build ./library                 both steps, without writing layout.txt
//
// The resulting out.tex is typeset separately, e.g. with
// `latexmk -pdf -shell-escape out.tex`.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"notebook/pkg/logging"
	"notebook/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "notebook"

var (
	debug  bool
	logger = zap.NewNop()
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Build a typeset reference notebook from a directory of source files",
	Long: `notebook turns a directory of source files into a single LaTeX document:
folders and files become sections, code is highlighted with minted according to
its extension, and page layout is read from notebook.yml.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !debug {
			return nil
		}
		l, err := logging.New(true, appName, version.Version)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
}

// Execute runs the root command with l as the default logger.
func Execute(l *zap.Logger) error {
	if l != nil {
		logger = l
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable development logging at debug level")
}

// directoryArg accepts exactly one argument naming an existing directory.
func directoryArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	info, err := os.Stat(args[0])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("directory %s does not exist", args[0])
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", args[0])
	}
	return nil
}
