// Package servecmder provides the serve command that runs the marquee API
// server, web page and MCP endpoint.
package servecmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/marquee/api"
	"github.com/papercomputeco/marquee/cmd/marquee/cmdutil"
	"github.com/papercomputeco/marquee/pkg/config"
)

const shutdownTimeout = 10 * time.Second

type serveCommander struct {
	catalog cmdutil.CatalogFlags
	listen  string
	topN    uint
	seed    uint64
	lazy    bool
	logJSON bool
	logFile string

	viper  *viper.Viper
	logger *slog.Logger
}

const serveLongDesc string = `Run the marquee server.

Serves the recommendation JSON API under /v1, the browsable web page at /,
and an MCP endpoint at /mcp exposing the recommend and surprise tools.

The similarity index is built before the server starts listening unless
--lazy is set, in which case the first query builds it.

Examples:
  marquee serve
  marquee serve --listen :9000 --catalog ./movies.csv
  marquee serve --provider sqlite --dsn catalog.db --log-json`

const serveShortDesc string = "Run the marquee API server"

var flagKeys = append([]string{
	config.FlagAPIListen,
	config.FlagTopN,
	config.FlagSeed,
	config.FlagLazy,
	config.FlagLogJSON,
	config.FlagLogFile,
}, cmdutil.CatalogKeys...)

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := cmdutil.InitViper(cmd, flagKeys...)
			if err != nil {
				return err
			}
			cmder.viper = v
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			debug, err := cmdutil.Debug(cmd)
			if err != nil {
				return err
			}

			var closeLog func() error
			cmder.logger, closeLog, err = cmdutil.NewLogger(cmder.viper, cmd.ErrOrStderr(), debug)
			if err != nil {
				return err
			}
			defer closeLog()

			return cmder.run(cmd.Context())
		},
	}

	cmdutil.AddCatalogFlags(cmd, &cmder.catalog)
	config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &cmder.listen)
	config.AddUintFlag(cmd, config.Flags, config.FlagTopN, &cmder.topN)
	config.AddUint64Flag(cmd, config.Flags, config.FlagSeed, &cmder.seed)
	config.AddBoolFlag(cmd, config.Flags, config.FlagLazy, &cmder.lazy)
	config.AddBoolFlag(cmd, config.Flags, config.FlagLogJSON, &cmder.logJSON)
	config.AddStringFlag(cmd, config.Flags, config.FlagLogFile, &cmder.logFile)

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	recommender, err := cmdutil.NewRecommender(ctx, c.viper, c.logger)
	if err != nil {
		return err
	}

	if !c.viper.GetBool("recommend.lazy") {
		if err := recommender.Warm(ctx); err != nil {
			return fmt.Errorf("building similarity index: %w", err)
		}
	}

	listen := c.viper.GetString("api.listen")
	server, err := api.NewServer(api.Config{
		ListenAddr:  listen,
		DefaultTopN: cmdutil.TopN(c.viper),
	},
		recommender,
		cmdutil.NewPicker(c.viper.GetUint64("recommend.seed")),
		c.logger,
	)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
		c.logger.Info("context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
