package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/graphwalker/graphwalker-go/internal/catalog"
	"github.com/graphwalker/graphwalker-go/internal/config"
	"github.com/graphwalker/graphwalker-go/internal/domain"
	"github.com/graphwalker/graphwalker-go/internal/modelio"
)

// loadModelSet resolves INPUT as a file path, unless catalogRef is set, in
// which case INPUT is ignored and catalogRef (a "name@version" reference) is
// looked up in the Postgres model catalog (internal/catalog) using
// cfg.CatalogDSN.
func loadModelSet(cfg *config.Config, input, catalogRef string) (*domain.ModelSet, error) {
	if catalogRef == "" {
		return modelio.ReadJSONFile(input)
	}

	name, version, ok := strings.Cut(catalogRef, "@")
	if !ok {
		return nil, fmt.Errorf("--catalog value %q must be NAME@VERSION", catalogRef)
	}
	if cfg.CatalogDSN == "" {
		return nil, fmt.Errorf("--catalog requires GRAPHWALKER_CATALOG_DSN to be set")
	}

	c := catalog.Open(cfg.CatalogDSN)
	return c.Get(context.Background(), name, version)
}
