package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/persianpro/internal/cli"
	"codeberg.org/snonux/persianpro/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags, newRunner)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRunner builds the processor once flags and configuration are final
func newRunner(ctx context.Context, flags *cli.Flags) (cli.Runner, error) {
	logger, err := cli.NewLogger(flags.LogLevel, flags.Debug)
	if err != nil {
		return nil, err
	}

	p, err := processor.NewProcessor(ctx, flags, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return p, nil
}
