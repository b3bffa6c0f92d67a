package cli

import (
	"context"
	"time"

	"github.com/biyonik/atom/internal/logging"
	"github.com/biyonik/atom/pkg/database"
	"github.com/spf13/cobra"
)

func newDBPingCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "db:ping",
		Short: "Connect to the configured database and report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			reg := database.NewRegistry(logging.Std())
			defer reg.Close()

			dbCfg := cfg.Database()
			db, err := reg.Connect(ctx, dbCfg)
			if err != nil {
				return err
			}

			cmd.Printf("✅ %s bağlantısı başarılı (%s)\n", db.DriverName(), dbCfg.Key())
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Connection timeout")
	return cmd
}
