package main

import (
	"context"
	"os"

	"github.com/lintang-b-s/shadowgraph/pkg/config"
	"github.com/lintang-b-s/shadowgraph/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type loggerKey struct{}

type options struct {
	verbose    bool
	configFile string
	cfg        config.Config
}

//	@title			shadowgraph API
//	@version		1.0
//	@description	read only api over a simplified openstreetmap street network (shadow graph)

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "shadowgraph",
		Short:        "shadowgraph simplifies openstreetmap street networks into topological graphs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			l, err := logger.New(opts.verbose)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, l))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "shadowgraph.toml", "toml config file")

	root.AddCommand(newBuildCmd(opts))
	root.AddCommand(newServeCmd(opts))
	return root
}

func loggerFromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
