package cli

import (
	"fmt"
	"kumpisahko/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.RunMigrations(opts.cfg.Database); err != nil {
				return err
			}
			opts.logger.Info().Str("path", opts.cfg.Database.MigrationsPath).Msg("migrations applied")
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		},
	}
}
