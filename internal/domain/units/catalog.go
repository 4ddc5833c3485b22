// Package units holds the catalog of unit categories shown on the converter
// form. The catalog only lists labels; it carries no conversion factors.
package units

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var (
	// ErrUnknownCategory is returned when a category name is not in the catalog.
	ErrUnknownCategory = errors.New("unknown unit category")
	// ErrEmptyCatalog is returned when a catalog file defines no categories.
	ErrEmptyCatalog = errors.New("unit catalog has no categories")
)

// Category is one converter tab.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Units    []string `yaml:"units" json:"units"`
	MinValue *float64 `yaml:"min_value,omitempty" json:"minValue,omitempty"`
}

// HasUnit reports whether unit is listed in the category (case-insensitive).
func (c Category) HasUnit(unit string) bool {
	_, ok := c.Unit(unit)
	return ok
}

// Unit returns the catalog spelling of unit, matched case-insensitively.
func (c Category) Unit(unit string) (string, bool) {
	for _, u := range c.Units {
		if strings.EqualFold(u, unit) {
			return u, true
		}
	}
	return "", false
}

// Catalog is an ordered, read-only set of categories.
type Catalog struct {
	categories []Category
	byName     map[string]int
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// Default returns the embedded catalog. It panics only if the embedded YAML is broken.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("units: embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns Default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("units: read catalog %q: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("units: catalog %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return New(f.Categories)
}

// New validates categories and builds a Catalog from them.
func New(categories []Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{byName: make(map[string]int, len(categories))}
	for _, cat := range categories {
		cat.Name = strings.TrimSpace(cat.Name)
		if cat.Name == "" {
			return nil, errors.New("category with empty name")
		}
		key := strings.ToLower(cat.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.Name)
		}
		if len(cat.Units) < 2 {
			return nil, fmt.Errorf("category %q needs at least two units", cat.Name)
		}
		units := make([]string, 0, len(cat.Units))
		for _, u := range cat.Units {
			if u = strings.TrimSpace(u); u == "" {
				return nil, fmt.Errorf("category %q has an empty unit label", cat.Name)
			}
			units = append(units, u)
		}
		cat.Units = units
		c.byName[key] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	return c, nil
}

// Categories returns the categories in display order. The slice is a copy.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks a category up by name, case-insensitively.
func (c *Catalog) Category(name string) (Category, error) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c.categories[i], nil
}

// First returns the first tab, used when no category is selected.
func (c *Catalog) First() Category {
	return c.categories[0]
}
