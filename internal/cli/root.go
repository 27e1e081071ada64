// Package cli implements the kumpi command line tool
package cli

import (
	"fmt"
	"io"
	"kumpisahko/internal/config"
	"kumpisahko/internal/logging"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile  string
	logLevel string

	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCmd builds the kumpi command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "kumpi",
		Short:         "Compare electricity spot price cost against a fixed price",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env", "", "Path to env file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override LOG_LEVEL")

	cmd.AddCommand(newCalculateCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newHashPasswordCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load reads configuration without requiring the API-only settings.
// Logs go to stderr so stdout carries only command output.
func (o *rootOptions) load(stderr io.Writer) error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	cfg := &config.Config{}
	cfg.ReadEnv()
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	o.cfg = cfg
	o.logger = logging.New(cfg.Logging, stderr)
	return nil
}
