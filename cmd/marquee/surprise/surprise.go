// Package surprisecmder provides the surprise command.
package surprisecmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/marquee/api/client"
	"github.com/papercomputeco/marquee/cmd/marquee/cmdutil"
	"github.com/papercomputeco/marquee/pkg/cliui"
	"github.com/papercomputeco/marquee/pkg/config"
	"github.com/papercomputeco/marquee/pkg/recommend"
)

type surpriseCommander struct {
	catalog   cmdutil.CatalogFlags
	topN      uint
	seed      uint64
	apiTarget string
	markdown  bool

	remote bool
	viper  *viper.Viper
	logger *slog.Logger
}

const surpriseLongDesc string = `Pick a random movie and recommend movies like it.

Use --seed for a reproducible pick. Without a seed every run picks anew.

Examples:
  marquee surprise
  marquee surprise --top 3 --seed 42
  marquee surprise --api-target http://localhost:8090`

const surpriseShortDesc string = "Recommend movies like a random pick"

var flagKeys = append([]string{config.FlagTopN, config.FlagSeed, config.FlagAPITarget}, cmdutil.CatalogKeys...)

func NewSurpriseCmd() *cobra.Command {
	cmder := &surpriseCommander{}

	cmd := &cobra.Command{
		Use:   "surprise",
		Short: surpriseShortDesc,
		Long:  surpriseLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := cmdutil.InitViper(cmd, flagKeys...)
			if err != nil {
				return err
			}
			cmder.viper = v
			cmder.remote = cmd.Flags().Changed(config.Flags[config.FlagAPITarget].Name)
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

	cmdutil.AddCatalogFlags(cmd, &cmder.catalog)
	config.AddUintFlag(cmd, config.Flags, config.FlagTopN, &cmder.topN)
	config.AddUint64Flag(cmd, config.Flags, config.FlagSeed, &cmder.seed)
	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	cmd.Flags().BoolVar(&cmder.markdown, "markdown", false, "Render results as a markdown table")

	return cmd
}

func (c *surpriseCommander) run(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	topN, err := cmdutil.RequireTopN(c.viper)
	if err != nil {
		return cmdutil.WriteQueryError(w, err)
	}

	var result *recommend.Result
	if c.remote {
		result, err = c.surpriseRemote(ctx, topN)
	} else {
		result, err = c.surpriseLocal(ctx, w, topN)
	}
	if err != nil {
		return cmdutil.WriteQueryError(w, err)
	}

	fmt.Fprintf(w, "\n  %s %s\n",
		cliui.KeyStyle.Render("Surprise Pick:"),
		cliui.CardTitleStyle.Render(result.Match.PrimaryTitle),
	)
	return cmdutil.WriteResult(w, result, c.markdown)
}

func (c *surpriseCommander) surpriseLocal(ctx context.Context, w io.Writer, topN int) (*recommend.Result, error) {
	r, err := cmdutil.NewRecommender(ctx, c.viper, c.logger)
	if err != nil {
		return nil, err
	}

	if err := cliui.Step(w, cliui.MsgCurating, func() error {
		return r.Warm(ctx)
	}); err != nil {
		return nil, err
	}

	return r.Surprise(ctx, cmdutil.NewPicker(c.viper.GetUint64("recommend.seed")), topN)
}

func (c *surpriseCommander) surpriseRemote(ctx context.Context, topN int) (*recommend.Result, error) {
	target := c.viper.GetString("client.api_target")
	c.logger.Debug("querying marquee API", "target", target, "top_n", topN)

	api, err := client.New(target)
	if err != nil {
		return nil, err
	}

	out, err := api.Surprise(ctx, topN)
	if err != nil {
		return nil, err
	}
	return out.Result(), nil
}
