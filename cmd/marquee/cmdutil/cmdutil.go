// Package cmdutil holds the wiring shared by marquee commands: config
// resolution, logging, and catalog loading.
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/marquee/pkg/catalog"
	"github.com/papercomputeco/marquee/pkg/catalog/catalogutils"
	"github.com/papercomputeco/marquee/pkg/config"
	"github.com/papercomputeco/marquee/pkg/dotdir"
	"github.com/papercomputeco/marquee/pkg/logger"
	"github.com/papercomputeco/marquee/pkg/recommend"
)

// CatalogKeys are the flag registry keys for catalog selection.
var CatalogKeys = []string{
	config.FlagCatalogPath,
	config.FlagCatalogProvider,
	config.FlagCatalogDSN,
	config.FlagCatalogTable,
}

// CatalogFlags receive the catalog selection flags. Commands read the
// resolved values from viper; these only back the pflag registrations.
type CatalogFlags struct {
	Path     string
	Provider string
	DSN      string
	Table    string
}

// AddCatalogFlags registers --catalog, --provider, --dsn and --table on cmd.
func AddCatalogFlags(cmd *cobra.Command, f *CatalogFlags) {
	config.AddStringFlag(cmd, config.Flags, config.FlagCatalogPath, &f.Path)
	config.AddStringFlag(cmd, config.Flags, config.FlagCatalogProvider, &f.Provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagCatalogDSN, &f.DSN)
	config.AddStringFlag(cmd, config.Flags, config.FlagCatalogTable, &f.Table)
}

// InitViper resolves the config for cmd and binds the given registry keys
// so flags take precedence over env and file values.
func InitViper(cmd *cobra.Command, keys ...string) (*viper.Viper, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")
	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, keys)
	return v, nil
}

// Debug reads the persistent --debug flag.
func Debug(cmd *cobra.Command) (bool, error) {
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return false, fmt.Errorf("could not get debug flag: %w", err)
	}
	return debug, nil
}

// NewLogger builds the command logger: colorized on w, JSON when log.json is
// set, and additionally JSON into log.file when one is configured. The
// returned close func releases the log file.
func NewLogger(v *viper.Viper, w io.Writer, debug bool) (*slog.Logger, func() error, error) {
	console := logger.New(
		logger.WithDebug(debug),
		logger.WithJSON(v.GetBool("log.json")),
		logger.WithPretty(!v.GetBool("log.json")),
		logger.WithWriter(w),
	)

	path := v.GetString("log.file")
	if path == "" {
		return console, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	file := logger.New(
		logger.WithDebug(debug),
		logger.WithJSON(true),
		logger.WithWriter(f),
	)
	return logger.Multi(console, file), f.Close, nil
}

// LoadCatalogOpts builds catalog options from resolved config. A relative CSV
// path that does not exist is looked up in the .marquee directories.
func LoadCatalogOpts(v *viper.Viper, log *slog.Logger) *catalogutils.LoadCatalogOpts {
	o := &catalogutils.LoadCatalogOpts{
		ProviderType: v.GetString("catalog.provider"),
		Path:         v.GetString("catalog.path"),
		DSN:          v.GetString("catalog.dsn"),
		Table:        v.GetString("catalog.table"),
		Logger:       log,
	}

	if (o.ProviderType == "" || o.ProviderType == catalogutils.ProviderCSV) && !filepath.IsAbs(o.Path) {
		if found, err := dotdir.NewManager().Find(o.Path); err == nil {
			o.Path = found
		}
	}
	return o
}

// LoadCatalog loads the configured catalog.
func LoadCatalog(ctx context.Context, v *viper.Viper, log *slog.Logger) (*catalog.Catalog, error) {
	cat, err := catalogutils.LoadCatalog(ctx, LoadCatalogOpts(v, log))
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	log.Debug("catalog loaded", "movies", cat.Len())
	return cat, nil
}

// NewRecommender loads the configured catalog and wraps it in a recommender.
// The index is not built yet.
func NewRecommender(ctx context.Context, v *viper.Viper, log *slog.Logger) (*recommend.Recommender, error) {
	cat, err := LoadCatalog(ctx, v, log)
	if err != nil {
		return nil, err
	}
	return recommend.New(recommend.Config{
		Catalog: cat,
		Logger:  log,
	})
}

// NewPicker returns the surprise picker for seed. Zero seeds from the clock.
func NewPicker(seed uint64) *recommend.Picker {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return recommend.NewPicker(seed)
}

// TopN reads recommend.top_n as an int.
func TopN(v *viper.Viper) int {
	return int(v.GetUint("recommend.top_n"))
}

// RequireTopN reads recommend.top_n and rejects zero, so local and remote
// queries refuse the same counts.
func RequireTopN(v *viper.Viper) (int, error) {
	topN := TopN(v)
	if topN <= 0 {
		return 0, fmt.Errorf("%w: top_n must be a positive integer, got %d", recommend.ErrInvalidArgument, topN)
	}
	return topN, nil
}
