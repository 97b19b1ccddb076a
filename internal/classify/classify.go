package classify

import (
	"errors"
	"fmt"
	"strings"

	"autokit/internal/config"
)

// FallbackCategory receives files whose extension matches no category.
const FallbackCategory = "Others"

var errEmptyName = errors.New("category name must not be empty")

// Category is one named extension set.
type Category struct {
	Name       string
	Extensions []string
}

// ExtensionMap is an ordered category table. The zero value classifies
// everything as FallbackCategory.
type ExtensionMap struct {
	categories []Category
	sets       []map[string]struct{}
}

// Overlap describes an extension claimed by more than one category.
type Overlap struct {
	Extension string
	Winner    string
	Shadowed  []string
}

// NewExtensionMap copies categories into an immutable table. Extensions are
// lower-cased and given a leading dot when missing.
func NewExtensionMap(categories []config.Category) (*ExtensionMap, error) {
	m := &ExtensionMap{
		categories: make([]Category, 0, len(categories)),
		sets:       make([]map[string]struct{}, 0, len(categories)),
	}
	for i, category := range categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return nil, fmt.Errorf("category %d: %w", i, errEmptyName)
		}
		set := make(map[string]struct{}, len(category.Extensions))
		exts := make([]string, 0, len(category.Extensions))
		for _, ext := range category.Extensions {
			ext = normalizeExtension(ext)
			if ext == "" {
				continue
			}
			if _, dup := set[ext]; dup {
				continue
			}
			set[ext] = struct{}{}
			exts = append(exts, ext)
		}
		m.categories = append(m.categories, Category{Name: name, Extensions: exts})
		m.sets = append(m.sets, set)
	}
	return m, nil
}

// DefaultExtensionMap returns the built-in table.
func DefaultExtensionMap() *ExtensionMap {
	m, err := NewExtensionMap(config.DefaultCategories())
	if err != nil {
		panic(err)
	}
	return m
}

// Categories returns the category names in lookup order.
func (m *ExtensionMap) Categories() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.categories))
	for i, category := range m.categories {
		names[i] = category.Name
	}
	return names
}

// Folders returns every folder an organize pass creates: each category in
// order followed by the fallback, without duplicates.
func (m *ExtensionMap) Folders() []string {
	names := m.Categories()
	for _, name := range names {
		if name == FallbackCategory {
			return names
		}
	}
	return append(names, FallbackCategory)
}

// Lookup returns the first category containing ext.
func (m *ExtensionMap) Lookup(ext string) (string, bool) {
	if m == nil {
		return "", false
	}
	ext = strings.ToLower(ext)
	for i, set := range m.sets {
		if _, ok := set[ext]; ok {
			return m.categories[i].Name, true
		}
	}
	return "", false
}

// Overlaps lists extensions that appear in more than one category, in the
// order their winning category declares them.
func (m *ExtensionMap) Overlaps() []Overlap {
	if m == nil {
		return nil
	}
	var out []Overlap
	reported := make(map[string]struct{})
	for i, category := range m.categories {
		for _, ext := range category.Extensions {
			if _, done := reported[ext]; done {
				continue
			}
			var shadowed []string
			for j := i + 1; j < len(m.categories); j++ {
				if _, ok := m.sets[j][ext]; ok {
					shadowed = append(shadowed, m.categories[j].Name)
				}
			}
			reported[ext] = struct{}{}
			if len(shadowed) > 0 {
				out = append(out, Overlap{Extension: ext, Winner: category.Name, Shadowed: shadowed})
			}
		}
	}
	return out
}

// Classifier resolves file extensions to category names.
type Classifier struct {
	table *ExtensionMap
}

// New returns a classifier backed by table.
func New(table *ExtensionMap) *Classifier {
	return &Classifier{table: table}
}

// Table exposes the backing extension map.
func (c *Classifier) Table() *ExtensionMap {
	return c.table
}

// Classify returns the category for ext (e.g. ".JPG"), or FallbackCategory.
// Matching is case-insensitive; the empty extension is allowed.
func (c *Classifier) Classify(ext string) string {
	if name, ok := c.table.Lookup(ext); ok {
		return name
	}
	return FallbackCategory
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
