package cmd

import (
	"fmt"
	"os"

	"notebook/pkg/compile"
	"notebook/pkg/config"
	"notebook/pkg/highlight"
	"notebook/pkg/outline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultLayoutFile = "layout.txt"

var (
	layoutFile  string
	configFile  string
	outputFile  string
	resolverCmd string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a layout file into a LaTeX notebook",
	Long: `Read the layout file and the configuration, resolve a minted lexer for every
file extension with pygmentize, and write the LaTeX document. The output file
is overwritten.`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVar(&layoutFile, "layout", defaultLayoutFile, "layout file produced by the layout command")
	addCompileFlags(compileCmd)
	rootCmd.AddCommand(compileCmd)
}

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultFile, "configuration file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", compile.DefaultOutput, "LaTeX output file")
	cmd.Flags().StringVar(&resolverCmd, "resolver", "pygmentize", "command used to look up lexer names")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	f, err := os.Open(layoutFile)
	if err != nil {
		return fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()

	o, err := outline.Read(f)
	if err != nil {
		return fmt.Errorf("failed to read layout: %w", err)
	}
	logger.Debug("Decoded layout", zap.String("file", layoutFile), zap.Int("entries", len(o)))

	return compileOutline(o)
}

// compileOutline loads the configuration and writes the notebook for o.
func compileOutline(o outline.Outline) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Error("Failed to load configuration", zap.String("file", configFile), zap.Error(err))
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c := compile.New(cfg, highlight.Pygmentize{Command: resolverCmd}, logger)
	if err := c.CompileFile(outputFile, o); err != nil {
		return fmt.Errorf("failed to compile notebook: %w", err)
	}
	return nil
}
