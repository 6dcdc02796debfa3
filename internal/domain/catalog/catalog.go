package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/okian/motorcast/internal/domain/model"
)

// Exercise is one concrete activity variant.
type Exercise struct {
	Name      string   `json:"name" yaml:"name"`
	Duration  string   `json:"duration" yaml:"duration"`
	Materials []string `json:"materials" yaml:"materials"`
	Steps     []string `json:"steps" yaml:"steps"`
}

// Archetype describes the kind of suggestion made for a skill.
// Description may reference {name} and {skill}.
type Archetype struct {
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	Benefits    []string `json:"benefits" yaml:"benefits"`
}

// Entry is the static configuration for one skill.
type Entry struct {
	Label     string     `json:"label" yaml:"label"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
	Archetype Archetype  `json:"archetype" yaml:"archetype"`
}

// Catalog is an immutable skill catalog plus the learning-style phrase table.
// Accessors return copies, so a *Catalog can be shared between goroutines.
type Catalog struct {
	entries [SkillCount]Entry
	styles  map[model.LearningStyle]string
}

// New builds a catalog from entries and a style table. Inputs are copied.
// A nil styles map selects the default phrases.
func New(entries [SkillCount]Entry, styles map[model.LearningStyle]string) (*Catalog, error) {
	c := &Catalog{styles: make(map[model.LearningStyle]string)}
	for i, e := range entries {
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("%w: %s has no label", ErrInvalidCatalog, Skill(i))
		}
		for j, ex := range e.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				return nil, fmt.Errorf("%w: %s exercise %d has no name", ErrInvalidCatalog, Skill(i), j)
			}
		}
		c.entries[i] = cloneEntry(e)
	}

	if styles == nil {
		styles = defaultStyleClauses
	}
	for style, clause := range styles {
		if style == model.StyleNone {
			continue
		}
		c.styles[style] = clause
	}
	return c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := New(defaultEntries, defaultStyleClauses)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the built-in catalog. It is built once per process.
func Default() *Catalog { return defaultCatalog() }

// Entry returns a copy of the entry for s. Unknown skills yield a zero Entry.
func (c *Catalog) Entry(s Skill) Entry {
	if !s.Valid() {
		return Entry{}
	}
	return cloneEntry(c.entries[s])
}

// Label returns the human-readable label for s.
func (c *Catalog) Label(s Skill) string {
	if !s.Valid() {
		return s.String()
	}
	return c.entries[s].Label
}

// StyleClause returns the adaptation sentence appended to suggestion
// descriptions for a learning style, or "" when there is none.
func (c *Catalog) StyleClause(style model.LearningStyle) string {
	return c.styles[style]
}

func cloneEntry(e Entry) Entry {
	out := Entry{
		Label: e.Label,
		Archetype: Archetype{
			Type:        e.Archetype.Type,
			Description: e.Archetype.Description,
			Benefits:    slices.Clone(e.Archetype.Benefits),
		},
	}
	if e.Exercises != nil {
		out.Exercises = make([]Exercise, len(e.Exercises))
		for i, ex := range e.Exercises {
			out.Exercises[i] = Exercise{
				Name:      ex.Name,
				Duration:  ex.Duration,
				Materials: slices.Clone(ex.Materials),
				Steps:     slices.Clone(ex.Steps),
			}
		}
	}
	return out
}
