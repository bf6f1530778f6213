// Package marqueecmder
package marqueecmder

import (
	"github.com/spf13/cobra"

	browsecmder "github.com/papercomputeco/marquee/cmd/marquee/browse"
	configcmder "github.com/papercomputeco/marquee/cmd/marquee/config"
	ingestcmder "github.com/papercomputeco/marquee/cmd/marquee/ingest"
	recommendcmder "github.com/papercomputeco/marquee/cmd/marquee/recommend"
	servecmder "github.com/papercomputeco/marquee/cmd/marquee/serve"
	surprisecmder "github.com/papercomputeco/marquee/cmd/marquee/surprise"
	versioncmder "github.com/papercomputeco/marquee/cmd/marquee/version"
)

const marqueeLongDesc string = `Marquee recommends movies similar to the ones you love.

Recommendations compare the genres, directors and writers of every movie in
the catalog. Run it from the terminal or as a server:
  marquee recommend "the matrix"   Recommend movies like a title
  marquee surprise                 Recommend movies like a random pick
  marquee browse                   Interactive terminal UI
  marquee serve                    JSON API, web page and MCP endpoint
  marquee ingest                   Load a CSV catalog into a SQL store`

const marqueeShortDesc string = "Marquee - content-based movie recommendations"

func NewMarqueeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "marquee",
		Short:        marqueeShortDesc,
		Long:         marqueeLongDesc,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .marquee/ config directory")

	// Add subcommands
	cmd.AddCommand(recommendcmder.NewRecommendCmd())
	cmd.AddCommand(surprisecmder.NewSurpriseCmd())
	cmd.AddCommand(browsecmder.NewBrowseCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(ingestcmder.NewIngestCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
