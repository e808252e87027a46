package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ayel/intranet/internal/infrastructure/config"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixtures.yaml>",
		Short: "Load fixtures into the configured storage",
		Long: `Load companies, users, posts and the other portal fixtures from a YAML
file. Records whose id already exists are skipped, so the command is safe to
run repeatedly.

Example:
  STORAGE_DRIVER=mongo intranet seed configs/seed.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			rt, err := bootstrap(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)
			if rt.cfg.StorageDriver == config.StorageMemory {
				rt.log.Warn().Msg("seeding in-memory storage; use SEED_FILE with serve to keep the data")
			}
			return rt.applySeed(ctx, args[0])
		},
	}
}
