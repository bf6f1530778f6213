// Package browsecmder provides the browse command, an interactive terminal
// UI for searching the catalog and paging through recommendations.
package browsecmder

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/marquee/cmd/marquee/cmdutil"
	"github.com/papercomputeco/marquee/pkg/config"
	"github.com/papercomputeco/marquee/pkg/logger"
)

type browseCommander struct {
	catalog cmdutil.CatalogFlags
	topN    uint
	seed    uint64

	viper  *viper.Viper
	logger *slog.Logger
}

const browseLongDesc string = `Browse recommendations in an interactive terminal UI.

Type part of a movie title and press enter for recommendations, or press
ctrl+r for a surprise pick. Use the up and down arrows to choose how many
recommendations to show (1 to 10).

Examples:
  marquee browse
  marquee browse --top 9 --catalog ./movies.csv`

const browseShortDesc string = "Browse recommendations interactively"

var flagKeys = append([]string{config.FlagTopN, config.FlagSeed}, cmdutil.CatalogKeys...)

func NewBrowseCmd() *cobra.Command {
	cmder := &browseCommander{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: browseShortDesc,
		Long:  browseLongDesc,
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

			// The TUI owns the terminal, so logs only go to the log file.
			cmder.logger = logger.Nop()
			if cmder.viper.GetString("log.file") != "" {
				var closeLog func() error
				cmder.logger, closeLog, err = cmdutil.NewLogger(cmder.viper, nopWriter{}, debug)
				if err != nil {
					return err
				}
				defer closeLog()
			}

			return cmder.run(cmd.Context())
		},
	}

	cmdutil.AddCatalogFlags(cmd, &cmder.catalog)
	config.AddUintFlag(cmd, config.Flags, config.FlagTopN, &cmder.topN)
	config.AddUint64Flag(cmd, config.Flags, config.FlagSeed, &cmder.seed)

	return cmd
}

func (c *browseCommander) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	recommender, err := cmdutil.NewRecommender(ctx, c.viper, c.logger)
	if err != nil {
		return err
	}

	model := newBrowseModel(ctx, recommender, cmdutil.NewPicker(c.viper.GetUint64("recommend.seed")), cmdutil.TopN(c.viper))

	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running browse UI: %w", err)
	}
	return nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
