// Package cli, atom komut satırı arayüzü (cobra).
package cli

import (
	"github.com/biyonik/atom/internal/config"
	"github.com/biyonik/atom/internal/logging"
	"github.com/spf13/cobra"
)

// Version, derleme sırasında -ldflags ile ezilebilir.
var Version = "v0.1.0"

type rootOptions struct {
	envFile  string
	logLevel string
}

// load, .env dosyasını okur ve log seviyesini ayarlar. --log-level verilirse
// LOG_LEVEL'ı ezer.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}

	level := cfg.App.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	if err := logging.SetLevel(level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewRootCmd builds the top-level `atom` command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "atom",
		Short:         "Atom - minimal web framework primitives",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "Path to the .env file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newDBPingCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(Version)
		},
	}
}
