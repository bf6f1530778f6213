// Package recommendcmder provides the recommend command.
package recommendcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/marquee/api/client"
	"github.com/papercomputeco/marquee/cmd/marquee/cmdutil"
	"github.com/papercomputeco/marquee/pkg/cliui"
	"github.com/papercomputeco/marquee/pkg/config"
	"github.com/papercomputeco/marquee/pkg/recommend"
)

type recommendCommander struct {
	catalog   cmdutil.CatalogFlags
	topN      uint
	apiTarget string
	markdown  bool

	remote bool
	viper  *viper.Viper
	logger *slog.Logger
}

const recommendLongDesc string = `Recommend movies similar to a title.

The title is matched case-insensitively as a substring of catalog titles and
the first match in catalog order wins. Recommendations are ranked by the
similarity of genres, directors and writers.

By default the catalog is loaded locally. Pass --api-target to ask a running
marquee server instead.

Examples:
  marquee recommend "the matrix"
  marquee recommend inception --top 10
  marquee recommend arrival --markdown
  marquee recommend heat --api-target http://localhost:8090`

const recommendShortDesc string = "Recommend movies similar to a title"

var flagKeys = append([]string{config.FlagTopN, config.FlagAPITarget}, cmdutil.CatalogKeys...)

func NewRecommendCmd() *cobra.Command {
	cmder := &recommendCommander{}

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: recommendShortDesc,
		Long:  recommendLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := cmdutil.InitViper(cmd, flagKeys...)
			if err != nil {
				return err
			}
			cmder.viper = v
			cmder.remote = cmd.Flags().Changed(config.Flags[config.FlagAPITarget].Name)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
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

			return cmder.run(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	cmdutil.AddCatalogFlags(cmd, &cmder.catalog)
	config.AddUintFlag(cmd, config.Flags, config.FlagTopN, &cmder.topN)
	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	cmd.Flags().BoolVar(&cmder.markdown, "markdown", false, "Render results as a markdown table")

	return cmd
}

func (c *recommendCommander) run(ctx context.Context, w io.Writer, title string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if strings.TrimSpace(title) == "" {
		fmt.Fprintf(w, "  %s %s\n", cliui.FailMark, cliui.WarnStyle.Render(cliui.MsgEmptyQuery))
		return fmt.Errorf("%w: empty title", recommend.ErrInvalidArgument)
	}

	topN, err := cmdutil.RequireTopN(c.viper)
	if err != nil {
		return cmdutil.WriteQueryError(w, err)
	}

	var result *recommend.Result
	if c.remote {
		result, err = c.recommendRemote(ctx, title, topN)
	} else {
		result, err = c.recommendLocal(ctx, w, title, topN)
	}
	if err != nil {
		return cmdutil.WriteQueryError(w, err)
	}

	return cmdutil.WriteResult(w, result, c.markdown)
}

func (c *recommendCommander) recommendLocal(ctx context.Context, w io.Writer, title string, topN int) (*recommend.Result, error) {
	r, err := cmdutil.NewRecommender(ctx, c.viper, c.logger)
	if err != nil {
		return nil, err
	}

	if err := cliui.Step(w, cliui.MsgCurating, func() error {
		return r.Warm(ctx)
	}); err != nil {
		return nil, err
	}

	return r.Recommend(ctx, title, topN)
}

func (c *recommendCommander) recommendRemote(ctx context.Context, title string, topN int) (*recommend.Result, error) {
	target := c.viper.GetString("client.api_target")
	c.logger.Debug("querying marquee API", "target", target, "title", title, "top_n", topN)

	api, err := client.New(target)
	if err != nil {
		return nil, err
	}

	out, err := api.Recommend(ctx, title, topN)
	if err != nil {
		return nil, err
	}
	return out.Result(), nil
}
