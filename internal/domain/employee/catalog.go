package employee

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog holds the closed option sets offered by the position and gender selectors.
type Catalog struct {
	Positions []string `yaml:"positions" json:"positions"`
	Genders   []string `yaml:"genders" json:"genders"`
}

func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog file. An empty path yields the embedded catalog.
func LoadCatalog(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	c.Positions = cleanOptions(c.Positions)
	c.Genders = cleanOptions(c.Genders)
	if len(c.Positions) == 0 {
		return Catalog{}, errors.New("catalog has no positions")
	}
	return c, nil
}

func cleanOptions(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Position returns the catalog spelling of value, if it is one of the positions.
func (c Catalog) Position(value string) (string, bool) {
	return lookup(c.Positions, value)
}

func (c Catalog) Gender(value string) (string, bool) {
	return lookup(c.Genders, value)
}

func (c Catalog) CheckPosition(value string) (bool, string) {
	if _, ok := c.Position(value); !ok {
		return false, MsgPosition
	}
	return true, ""
}

func lookup(options []string, value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return option, true
		}
	}
	return "", false
}
