package entity

import (
	"fmt"
	"strings"
)

// Species represents a monster's kind.
type Species int

const (
	SpeciesDragon Species = iota
	SpeciesExoskeleton
	SpeciesSpirit
)

// speciesTraits holds the display data for a species. Species never change
// combat behaviour; stats come from the monster's own template.
type speciesTraits struct {
	name  string
	id    string
	glyph rune
	color string // hex, for terminal rendering
}

var speciesTable = [...]speciesTraits{
	SpeciesDragon:      {name: "Dragon", id: "dragon", glyph: 'D', color: "#FF5555"},
	SpeciesExoskeleton: {name: "Exoskeleton", id: "exoskeleton", glyph: 'X', color: "#55FF55"},
	SpeciesSpirit:      {name: "Spirit", id: "spirit", glyph: 'G', color: "#AA88FF"},
}

func (s Species) traits() (speciesTraits, bool) {
	if s < 0 || int(s) >= len(speciesTable) {
		return speciesTraits{}, false
	}
	return speciesTable[s], true
}

// String returns the species name.
func (s Species) String() string {
	if t, ok := s.traits(); ok {
		return t.name
	}
	return "Unknown"
}

// ID returns the species identifier used in data files.
func (s Species) ID() string {
	if t, ok := s.traits(); ok {
		return t.id
	}
	return "unknown"
}

// Glyph returns the display glyph for a species.
func (s Species) Glyph() rune {
	if t, ok := s.traits(); ok {
		return t.glyph
	}
	return '?'
}

// Color returns the species' hex display color.
func (s Species) Color() string {
	if t, ok := s.traits(); ok {
		return t.color
	}
	return "#FFFFFF"
}

// ParseSpecies maps a data-file identifier to a Species.
func ParseSpecies(id string) (Species, error) {
	for s, t := range speciesTable {
		if strings.EqualFold(t.id, id) {
			return Species(s), nil
		}
	}
	return 0, fmt.Errorf("unknown monster species %q", id)
}

// Monster is a hostile creature marching down a lane.
type Monster struct {
	Name    string
	Species Species
	Level   int

	HP         float64
	BaseDamage float64
	Defense    float64
	Dodge      float64 // percent, 0-100
}

// NewMonster creates a monster with a full HP pool for its level.
func NewMonster(name string, species Species, level int, damage, defense, dodge float64) *Monster {
	return &Monster{
		Name:       name,
		Species:    species,
		Level:      level,
		HP:         float64(level) * HPPerLevel,
		BaseDamage: damage,
		Defense:    defense,
		Dodge:      dodge,
	}
}

// Clone returns an independent copy, used to stamp monsters out of templates.
func (m *Monster) Clone() *Monster {
	c := *m
	return &c
}

// ScaleTo rescales damage and defense to a new level using the monster's
// per-level ratio, and resets HP for that level.
func (m *Monster) ScaleTo(level int) {
	if level < 1 {
		level = 1
	}
	if m.Level > 0 {
		m.BaseDamage = m.BaseDamage / float64(m.Level) * float64(level)
		m.Defense = m.Defense / float64(m.Level) * float64(level)
	}
	m.Level = level
	m.HP = float64(level) * HPPerLevel
}

// GetName returns the monster's name.
func (m *Monster) GetName() string { return m.Name }

// GetLevel returns the monster's level.
func (m *Monster) GetLevel() int { return m.Level }

// GetHP returns current HP.
func (m *Monster) GetHP() float64 { return m.HP }

// GetBaseDamage returns the damage dealt per hit before armor.
func (m *Monster) GetBaseDamage() float64 { return m.BaseDamage }

// GetDefense returns the monster's defense.
func (m *Monster) GetDefense() float64 { return m.Defense }

// GetDodge returns the dodge rating as a percentage.
func (m *Monster) GetDodge() float64 { return m.Dodge }

// IsFainted returns true once HP has dropped to zero.
func (m *Monster) IsFainted() bool { return m.HP <= 0 }

// TakeDamage reduces HP, never below zero, and returns the damage actually taken.
func (m *Monster) TakeDamage(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > m.HP {
		actual = m.HP
	}
	m.HP -= actual
	return actual
}

// String returns a short status line.
func (m *Monster) String() string {
	return fmt.Sprintf("%s (Lvl %d) - HP: %.1f", m.Name, m.Level, m.HP)
}
