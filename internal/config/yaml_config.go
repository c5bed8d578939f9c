package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MappingFile represents the structure of a keyword mappings YAML file.
// Keywords are grouped under the category they resolve to.
type MappingFile struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig defines one complaint category and the keywords mapped to it.
type CategoryConfig struct {
	Name     string   `yaml:"name"`             // Category label stored on complaint records, e.g. "교통"
	Domain   string   `yaml:"domain,omitempty"` // Editorial grouping, e.g. "transportation"
	Keywords []string `yaml:"keywords"`
}

// ParseMappingFile decodes a keyword mappings YAML document.
func ParseMappingFile(data []byte) (*MappingFile, error) {
	var mf MappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse keyword mappings: %w", err)
	}
	return &mf, nil
}

// LoadMappingFile reads keyword mappings from path.
// Returns nil without error if path is empty or the file doesn't exist, so
// callers fall back to the built-in table.
func LoadMappingFile(path string) (*MappingFile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return ParseMappingFile(data)
}

// GetCategoryByName finds a category by its label.
func (m *MappingFile) GetCategoryByName(name string) *CategoryConfig {
	if m == nil {
		return nil
	}
	for i := range m.Categories {
		if m.Categories[i].Name == name {
			return &m.Categories[i]
		}
	}
	return nil
}

// KeywordCount returns the total number of keywords across all categories.
func (m *MappingFile) KeywordCount() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, c := range m.Categories {
		n += len(c.Keywords)
	}
	return n
}
