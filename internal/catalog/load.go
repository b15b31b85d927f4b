package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape of a catalog.
type catalogFile struct {
	Recipes []Recipe `koanf:"recipes" yaml:"recipes"`
}

// Load reads a catalog from a YAML file.
//
// Error cases:
//   - File not found or cannot be read
//   - Invalid YAML syntax
//   - Validation failure (empty catalog, duplicate names, unknown tags)
func Load(path string) (*Catalog, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), koanfyaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load catalog from %q: %w", path, err)
	}

	var cf catalogFile
	if err := k.UnmarshalWithConf("", &cf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to parse catalog from %q: %w", path, err)
	}

	c, err := New(cf.Recipes)
	if err != nil {
		return nil, fmt.Errorf("catalog validation failed for %q: %w", path, err)
	}

	return c, nil
}

// LoadOrDefault loads the catalog from path, or returns the built-in
// catalog when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// WriteFile writes the catalog to path as YAML, creating parent
// directories as needed. Used by the catalog init command to scaffold
// a file users can edit.
func (c *Catalog) WriteFile(path string) error {
	data, err := yaml.Marshal(catalogFile{Recipes: c.Recipes()})
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog to %q: %w", path, err)
	}

	return nil
}
