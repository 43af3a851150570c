package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Load reads and parses a unit catalog from the TOML file at path.
// Structural validation is a separate step; Load only fails on I/O and
// syntax problems.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoCatalog, path)
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var cat Catalog
	if err := toml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	cat.SourceFile = filepath.Base(path)

	return &cat, nil
}
