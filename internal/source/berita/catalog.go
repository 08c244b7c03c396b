package berita

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// SourceDef describes one regional source of the enumerated catalog.
type SourceDef struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Trending   string   `yaml:"trending,omitempty"`
	RSS        string   `yaml:"rss,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
}

func (s SourceDef) HasCategory(category string) bool {
	return category == "" || slices.Contains(s.Categories, category)
}

type Catalog struct {
	Sources []SourceDef `yaml:"sources"`
}

type CatalogLoader struct {
	reader io.Reader
}

func NewCatalogLoader(reader io.Reader) *CatalogLoader {
	return &CatalogLoader{
		reader: reader,
	}
}

func (cl *CatalogLoader) Load() (*Catalog, error) {
	decoder := yaml.NewDecoder(cl.reader)
	decoder.KnownFields(true)

	var catalog Catalog
	if err := decoder.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode regional catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalogLoader(bytes.NewReader(defaultCatalog)).Load()
	if err != nil {
		panic(fmt.Sprintf("embedded regional catalog is invalid: %v", err))
	}
	return catalog
}

func (c *Catalog) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("regional catalog has no sources")
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if s.ID == "" {
			return fmt.Errorf("regional catalog source %d has no id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("regional catalog source %q is declared twice", s.ID)
		}
		seen[s.ID] = true

		if s.Trending != "" && !slices.Contains(s.Categories, s.Trending) {
			return fmt.Errorf("regional catalog source %q: trending category %q is not in categories", s.ID, s.Trending)
		}
	}
	return nil
}

func (c *Catalog) Lookup(id string) (SourceDef, bool) {
	for _, s := range c.Sources {
		if s.ID == id {
			return s, true
		}
	}
	return SourceDef{}, false
}

func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		ids = append(ids, s.ID)
	}
	return ids
}
