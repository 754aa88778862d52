package config

type CatalogSource string

const (
	CatalogSourceBuiltin  CatalogSource = "builtin"
	CatalogSourceYaml     CatalogSource = "yaml"
	CatalogSourcePostgres CatalogSource = "postgres"
)

type CatalogConfig struct {
	Source CatalogSource
	File   string
}

func NewCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		Source: CatalogSource(getEnv("CATALOG_SOURCE", string(CatalogSourceBuiltin))),
		File:   getEnv("CATALOG_FILE", "problems.yaml"),
	}
}
