package cmd

import (
	"fmt"

	"notebook/pkg/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a configuration with every required field set to a two-column A4
landscape layout. Existing files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultFile, "configuration file to create")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing configuration file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	if err := config.Write(configFile, config.Default(), initForce); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	logger.Info("Wrote configuration", zap.String("file", configFile))
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFile)
	return nil
}
