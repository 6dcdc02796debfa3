package catalog

import (
	"fmt"
	"os"

	"github.com/okian/motorcast/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// document is the YAML shape of a catalog file:
//
//	skills:
//	  pincer_grasp:
//	    label: Pincer grasp
//	    archetype: {type: ..., description: ..., benefits: [...]}
//	    exercises: [{name: ..., duration: ..., materials: [...], steps: [...]}]
//	styles:
//	  visual: " Use picture cards ..."
type document struct {
	Skills map[string]Entry  `yaml:"skills"`
	Styles map[string]string `yaml:"styles"`
}

// LoadFile reads a catalog from a YAML file. Every tracked skill must be
// present; unknown skill keys are rejected. Styles are optional.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	var entries [SkillCount]Entry
	seen := 0
	for key, entry := range doc.Skills {
		s, err := ParseSkill(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		entries[s] = entry
		seen++
	}
	if seen != SkillCount {
		for _, s := range Skills() {
			if _, ok := doc.Skills[s.String()]; !ok {
				return nil, fmt.Errorf("%w: missing skill %s", ErrInvalidCatalog, s)
			}
		}
	}

	var styles map[model.LearningStyle]string
	if len(doc.Styles) > 0 {
		styles = make(map[model.LearningStyle]string, len(doc.Styles))
		for tag, clause := range doc.Styles {
			style := model.ParseLearningStyle(tag)
			if style == model.StyleNone {
				return nil, fmt.Errorf("%w: unknown learning style %q", ErrInvalidCatalog, tag)
			}
			styles[style] = clause
		}
	}
	return New(entries, styles)
}
