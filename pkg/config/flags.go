package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --top on
// "marquee recommend", "marquee surprise" and "marquee browse").
type Flag struct {
	// Name is the long flag name (e.g. "top").
	Name string

	// Shorthand is the one-letter short flag (e.g. "n"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "recommend.top_n").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagCatalogPath     = "catalog"
	FlagCatalogProvider = "provider"
	FlagCatalogDSN      = "dsn"
	FlagCatalogTable    = "table"
	FlagAPIListen       = "listen"
	FlagAPITarget       = "api-target"
	FlagTopN            = "top"
	FlagSeed            = "seed"
	FlagLazy            = "lazy"
	FlagLogJSON         = "log-json"
	FlagLogFile         = "log-file"
)

// Flags is the registry shared by every marquee command.
var Flags = FlagSet{
	FlagCatalogPath: {
		Name:        "catalog",
		ViperKey:    "catalog.path",
		Description: "Path to the movie catalog CSV file",
	},
	FlagCatalogProvider: {
		Name:        "provider",
		ViperKey:    "catalog.provider",
		Description: "Catalog provider (csv, sqlite, postgres)",
	},
	FlagCatalogDSN: {
		Name:        "dsn",
		ViperKey:    "catalog.dsn",
		Description: "Database path or connection string for the sqlite and postgres providers",
	},
	FlagCatalogTable: {
		Name:        "table",
		ViperKey:    "catalog.table",
		Description: "SQL table holding the catalog",
	},
	FlagAPIListen: {
		Name:        "listen",
		Shorthand:   "l",
		ViperKey:    "api.listen",
		Description: "Address for the API server to listen on",
	},
	FlagAPITarget: {
		Name:        "api-target",
		Shorthand:   "a",
		ViperKey:    "client.api_target",
		Description: "Marquee API server URL",
	},
	FlagTopN: {
		Name:        "top",
		Shorthand:   "n",
		ViperKey:    "recommend.top_n",
		Description: "Number of recommendations to return",
	},
	FlagSeed: {
		Name:        "seed",
		ViperKey:    "recommend.seed",
		Description: "Seed for surprise picks (0 seeds from the clock)",
	},
	FlagLazy: {
		Name:        "lazy",
		ViperKey:    "recommend.lazy",
		Description: "Build the similarity index on the first query instead of at startup",
	},
	FlagLogJSON: {
		Name:        "log-json",
		ViperKey:    "log.json",
		Description: "Write logs as JSON",
	},
	FlagLogFile: {
		Name:        "log-file",
		ViperKey:    "log.file",
		Description: "Also write JSON logs to this file",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUint64Flag registers a uint64 flag on cmd from the given FlagSet.
func AddUint64Flag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint64) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint64(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().Uint64VarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().Uint64Var(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *bool) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint(viperKey)
}

// defaultUint64 returns the default uint64 value for a viper key from NewDefaultConfig.
func defaultUint64(viperKey string) uint64 {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint64(viperKey)
}

// defaultBool returns the default bool value for a viper key from NewDefaultConfig.
func defaultBool(viperKey string) bool {
	v := viper.New()
	setViperDefaults(v)
	return v.GetBool(viperKey)
}
