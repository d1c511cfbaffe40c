package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"notebook/pkg/scan"
	"notebook/pkg/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDelay time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Rebuild the notebook whenever the source tree changes",
	Long: `Build once, then rebuild after every change to a source file below the
directory. Failed rebuilds are reported and watching continues. Stop with Ctrl-C.`,
	Args: directoryArg,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 300*time.Millisecond, "quiet period before rebuilding")
	addIgnoreFlag(watchCmd)
	addCompileFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	root := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanner := scan.New(nil, logger)
	filter := func(path string) bool {
		return scanner.Allowed(filepath.Base(path))
	}
	w, err := watch.New(watchDelay, filter, logger)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.AddRecursive(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	if err := build(root); err != nil {
		logger.Error("Initial build failed", zap.Error(err))
	}
	logger.Info("Watching for changes", zap.String("directory", root))
	return w.Run(ctx, func() error { return build(root) })
}
