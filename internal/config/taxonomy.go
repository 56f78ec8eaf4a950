
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"review-crawler/internal/classifier"
)

// Taxonomy is the categorization table and stop-word list. Category
// order in the file is kept; the first matching category wins.
type Taxonomy struct {
	Categories []classifier.Category `yaml:"categories"`
	StopWords  []string              `yaml:"stop_words"`
}

func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Categories: classifier.DefaultCategories(),
		StopWords:  classifier.DefaultStopWords(),
	}
}

// LoadTaxonomy loads a taxonomy from a YAML file. An empty path gives the
// built-in taxonomy, and a section missing from the file falls back to
// its built-in value.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	if path == "" {
		return DefaultTaxonomy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	for i, c := range tax.Categories {
		if c.Label == "" {
			return nil, fmt.Errorf("parse taxonomy %s: category %d has no label", path, i)
		}
		for _, kw := range c.Keywords {
			// the categorizer matches against lower-cased text: an empty
			// keyword matches everything and an upper-case one nothing
			if kw == "" || kw != strings.ToLower(kw) {
				return nil, fmt.Errorf("parse taxonomy %s: category %q: keyword %q must be non-empty lower case", path, c.Label, kw)
			}
		}
	}

	def := DefaultTaxonomy()
	if len(tax.Categories) == 0 {
		tax.Categories = def.Categories
	}
	if len(tax.StopWords) == 0 {
		tax.StopWords = def.StopWords
	}
	return &tax, nil
}
