package config

import "os"

const (
	catalogueDSNEnv  = "CATALOGUE_DSN"
	catalogueFileEnv = "CATALOGUE_FILE"
	catalogueSeedEnv = "CATALOGUE_SEED"
)

// CatalogueConfig selects the micro-action catalogue backend. An empty DSN
// serves the YAML catalogue; an empty File means the embedded seed.
type CatalogueConfig struct {
	DSN  string
	File string
	// SeedOnStart upserts the YAML actions into the database at startup.
	SeedOnStart bool
}

func LoadCatalogueConfig() *CatalogueConfig {
	return &CatalogueConfig{
		DSN:         os.Getenv(catalogueDSNEnv),
		File:        os.Getenv(catalogueFileEnv),
		SeedOnStart: os.Getenv(catalogueSeedEnv) == "true",
	}
}

func (c *CatalogueConfig) UseDatabase() bool {
	return c.DSN != ""
}
