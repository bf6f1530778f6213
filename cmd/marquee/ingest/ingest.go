// Package ingestcmder provides the ingest command that copies a CSV catalog
// into a SQL catalog store.
package ingestcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/marquee/cmd/marquee/cmdutil"
	"github.com/papercomputeco/marquee/pkg/catalog"
	"github.com/papercomputeco/marquee/pkg/catalog/catalogutils"
	"github.com/papercomputeco/marquee/pkg/cliui"
	"github.com/papercomputeco/marquee/pkg/config"
)

type ingestCommander struct {
	csvPath  string
	provider string
	dsn      string
	table    string

	viper  *viper.Viper
	logger *slog.Logger
}

const ingestLongDesc string = `Load a CSV movie catalog into a SQL catalog store.

The target table is created when missing and its contents are replaced by the
CSV rows, keeping catalog order. Other commands read the store with
--provider sqlite or --provider postgres.

Examples:
  marquee ingest --csv movies.csv --provider sqlite --dsn catalog.db
  marquee ingest --csv movies.csv --provider postgres --dsn postgres://localhost/marquee`

const ingestShortDesc string = "Load a CSV catalog into a SQL store"

var flagKeys = []string{
	config.FlagCatalogProvider,
	config.FlagCatalogDSN,
	config.FlagCatalogTable,
}

func NewIngestCmd() *cobra.Command {
	cmder := &ingestCommander{}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: ingestShortDesc,
		Long:  ingestLongDesc,
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

			return cmder.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cmder.csvPath, "csv", "movies.csv", "CSV catalog to ingest")
	config.AddStringFlag(cmd, config.Flags, config.FlagCatalogProvider, &cmder.provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagCatalogDSN, &cmder.dsn)
	config.AddStringFlag(cmd, config.Flags, config.FlagCatalogTable, &cmder.table)

	return cmd
}

func (c *ingestCommander) run(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := &catalogutils.LoadCatalogOpts{
		ProviderType: c.viper.GetString("catalog.provider"),
		DSN:          c.viper.GetString("catalog.dsn"),
		Table:        c.viper.GetString("catalog.table"),
		Logger:       c.logger,
	}
	if opts.ProviderType == catalogutils.ProviderCSV {
		return fmt.Errorf("%w: ingest needs a SQL provider (sqlite or postgres)", catalog.ErrConfiguration)
	}

	var cat *catalog.Catalog
	err := cliui.Step(w, fmt.Sprintf("Reading %s", c.csvPath), func() error {
		var err error
		cat, err = (&catalog.CSVSource{Path: c.csvPath}).Load(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("loading csv catalog: %w", err)
	}

	store, err := catalogutils.OpenStore(ctx, opts)
	if err != nil {
		return fmt.Errorf("opening catalog store: %w", err)
	}
	defer store.Close()

	err = cliui.Step(w, fmt.Sprintf("Writing %d movies to %s", cat.Len(), store.Table()), func() error {
		return store.Replace(ctx, cat)
	})
	if err != nil {
		return fmt.Errorf("writing catalog store: %w", err)
	}

	c.logger.Info("catalog ingested",
		"movies", cat.Len(),
		"provider", opts.ProviderType,
		"table", store.Table(),
	)
	return nil
}
