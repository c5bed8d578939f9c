// Package mapping holds the keyword-to-category table that short-circuits
// common keywords to a known complaint category.
package mapping

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"complaintfinder/internal/config"
)

//go:embed keywords.yaml
var defaultKeywordsYAML []byte

var (
	ErrEmptyKeyword     = errors.New("keyword mapping contains an empty keyword")
	ErrEmptyCategory    = errors.New("keyword mapping contains a category without a name")
	ErrDuplicateKeyword = errors.New("keyword is mapped to more than one category")
)

// Group is one category with the keywords that resolve to it, in file order.
type Group struct {
	Category string   `json:"category"`
	Domain   string   `json:"domain,omitempty"`
	Keywords []string `json:"keywords"`
}

// Table maps normalized keywords to category labels.
//
// A Table is immutable once built and safe for concurrent readers.
type Table struct {
	byKeyword map[string]string
	groups    []Group
}

// Normalize trims, NFC-normalizes and case-folds a keyword so that lookups
// are insensitive to case and to composed/decomposed Hangul input.
func Normalize(keyword string) string {
	s := strings.TrimSpace(keyword)
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}

// New builds a table from a parsed mappings file. A nil file yields an empty
// table. The same keyword may appear twice under one category, but never
// under two different categories.
func New(mf *config.MappingFile) (*Table, error) {
	t := &Table{byKeyword: make(map[string]string)}
	if mf == nil {
		return t, nil
	}

	for _, c := range mf.Categories {
		category := strings.TrimSpace(c.Name)
		if category == "" {
			return nil, ErrEmptyCategory
		}

		group := Group{Category: category, Domain: c.Domain}
		for _, raw := range c.Keywords {
			key := Normalize(raw)
			if key == "" {
				return nil, fmt.Errorf("%w (category %q)", ErrEmptyKeyword, category)
			}
			if existing, ok := t.byKeyword[key]; ok {
				if existing != category {
					return nil, fmt.Errorf("%w: %q -> %q, %q", ErrDuplicateKeyword, raw, existing, category)
				}
				continue
			}
			t.byKeyword[key] = category
			group.Keywords = append(group.Keywords, strings.TrimSpace(raw))
		}
		t.groups = append(t.groups, group)
	}

	return t, nil
}

// FromMap builds a table from a flat keyword -> category map.
func FromMap(m map[string]string) (*Table, error) {
	byCategory := make(map[string][]string)
	for keyword, category := range m {
		byCategory[category] = append(byCategory[category], keyword)
	}

	mf := &config.MappingFile{}
	for _, category := range slices.Sorted(maps.Keys(byCategory)) {
		keywords := byCategory[category]
		slices.Sort(keywords)
		mf.Categories = append(mf.Categories, config.CategoryConfig{Name: category, Keywords: keywords})
	}
	return New(mf)
}

// Default returns the built-in table.
func Default() (*Table, error) {
	mf, err := config.ParseMappingFile(defaultKeywordsYAML)
	if err != nil {
		return nil, err
	}
	return New(mf)
}

// Load returns the table from path, or the built-in table when path is empty
// or does not exist.
func Load(path string) (*Table, error) {
	mf, err := config.LoadMappingFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword mappings from %s: %w", path, err)
	}
	if mf == nil {
		return Default()
	}
	return New(mf)
}

// Lookup returns the category mapped to keyword, if any.
func (t *Table) Lookup(keyword string) (string, bool) {
	if t == nil {
		return "", false
	}
	category, ok := t.byKeyword[Normalize(keyword)]
	return category, ok
}

// Len returns the number of distinct mapped keywords.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byKeyword)
}

// Groups returns a copy of the grouped table in definition order.
func (t *Table) Groups() []Group {
	if t == nil {
		return nil
	}
	out := make([]Group, len(t.groups))
	for i, g := range t.groups {
		out[i] = Group{
			Category: g.Category,
			Domain:   g.Domain,
			Keywords: append([]string(nil), g.Keywords...),
		}
	}
	return out
}
