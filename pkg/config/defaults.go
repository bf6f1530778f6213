package config

import "strings"

const (
	defaultCatalogProvider = "csv"
	defaultCatalogPath     = "movies.csv"
	defaultCatalogTable    = "movies"

	defaultAPIListen       = ":8090"
	defaultClientAPITarget = "http://localhost:8090"

	// defaultTopN matches the initial position of the recommendation slider.
	defaultTopN = 6
)

// Providers lists the supported catalog providers.
var Providers = []string{"csv", "sqlite", "postgres"}

func isValidProvider(p string) bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

func providerList() string {
	return strings.Join(Providers, ", ")
}

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Catalog: CatalogConfig{
			Provider: defaultCatalogProvider,
			Path:     defaultCatalogPath,
			Table:    defaultCatalogTable,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
		Recommend: RecommendConfig{
			TopN: defaultTopN,
		},
	}
}
