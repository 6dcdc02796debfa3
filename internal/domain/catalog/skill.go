// Package catalog holds the fixed set of tracked fine-motor skills and the
// static exercise catalog the suggestion engine draws from.
package catalog

import (
	"fmt"

	"github.com/okian/motorcast/internal/domain/model"
)

// SkillCount is the number of tracked skills.
const SkillCount = model.MaxSkills

// Skill identifies a tracked fine-motor skill. Its value is the index of the
// skill's score in an evaluation record.
type Skill int

// Tracked skills in catalog order.
const (
	PincerGrasp Skill = iota
	ScissorCutting
	LineTracing
	BeadThreading
	Buttoning
	Coloring
	BlockStacking
	ClayModeling
)

var skillKeys = [SkillCount]string{
	PincerGrasp:    "pincer_grasp",
	ScissorCutting: "scissor_cutting",
	LineTracing:    "line_tracing",
	BeadThreading:  "bead_threading",
	Buttoning:      "buttoning",
	Coloring:       "coloring",
	BlockStacking:  "block_stacking",
	ClayModeling:   "clay_modeling",
}

// Skills returns every skill in catalog order.
func Skills() []Skill {
	out := make([]Skill, SkillCount)
	for i := range out {
		out[i] = Skill(i)
	}
	return out
}

// Valid reports whether s is one of the tracked skills.
func (s Skill) Valid() bool { return s >= 0 && int(s) < SkillCount }

// String returns the stable key of the skill, e.g. "pincer_grasp".
func (s Skill) String() string {
	if !s.Valid() {
		return fmt.Sprintf("skill(%d)", int(s))
	}
	return skillKeys[s]
}

// MarshalText encodes the skill as its key.
func (s Skill) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSkill, int(s))
	}
	return []byte(skillKeys[s]), nil
}

// UnmarshalText decodes a skill key.
func (s *Skill) UnmarshalText(b []byte) error {
	parsed, err := ParseSkill(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSkill returns the skill with the given key.
func ParseSkill(key string) (Skill, error) {
	for i, k := range skillKeys {
		if k == key {
			return Skill(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSkill, key)
}
