// Package entity provides the heroes and monsters that occupy the lane board.
package entity

import (
	"fmt"
	"strings"
)

const (
	// HPPerLevel is the hit point pool granted per level, for heroes and monsters alike.
	HPPerLevel = 100.0

	skillScale = 1.05
	manaScale  = 1.1
	manaFloor  = 100.0
	xpPerLevel = 10.0
	maxLevel   = 10
)

// Class represents a hero's class.
type Class int

const (
	ClassWarrior Class = iota
	ClassSorcerer
	ClassPaladin
)

// classTraits holds the data that distinguishes one class from another.
// Every class shares the same behaviour; only these values differ.
type classTraits struct {
	name   string
	id     string
	symbol rune

	// Stats that get an extra skillScale on level up.
	favorStrength  bool
	favorAgility   bool
	favorDexterity bool
}

var classTable = [...]classTraits{
	ClassWarrior:  {name: "Warrior", id: "warrior", symbol: 'W', favorStrength: true, favorAgility: true},
	ClassSorcerer: {name: "Sorcerer", id: "sorcerer", symbol: 'S', favorAgility: true, favorDexterity: true},
	ClassPaladin:  {name: "Paladin", id: "paladin", symbol: 'P', favorStrength: true, favorDexterity: true},
}

func (c Class) traits() (classTraits, bool) {
	if c < 0 || int(c) >= len(classTable) {
		return classTraits{}, false
	}
	return classTable[c], true
}

// String returns the class name.
func (c Class) String() string {
	if t, ok := c.traits(); ok {
		return t.name
	}
	return "Unknown"
}

// ID returns the class identifier used in data files.
func (c Class) ID() string {
	if t, ok := c.traits(); ok {
		return t.id
	}
	return "unknown"
}

// Symbol returns the display symbol for a class.
func (c Class) Symbol() rune {
	if t, ok := c.traits(); ok {
		return t.symbol
	}
	return '?'
}

// ParseClass maps a data-file identifier to a Class.
func ParseClass(id string) (Class, error) {
	for c, t := range classTable {
		if strings.EqualFold(t.id, id) {
			return Class(c), nil
		}
	}
	return 0, fmt.Errorf("unknown hero class %q", id)
}

// Armor reduces incoming damage while equipped.
type Armor struct {
	Name            string
	DamageReduction float64
}

// Weapon adds to a hero's strike damage while equipped.
type Weapon struct {
	Name   string
	Damage float64
	Hands  int
}

// Hero is a playable character.
type Hero struct {
	Name  string
	Class Class
	Level int

	HP   float64
	Mana float64

	Strength  float64
	Agility   float64
	Dexterity float64

	Gold       float64
	Experience float64

	Armor  *Armor  // nil when unarmored
	Weapon *Weapon // nil when unarmed
}

// NewHero creates a level 1 hero with the given starting stats.
func NewHero(name string, class Class, mana, strength, agility, dexterity, gold, experience float64) *Hero {
	return &Hero{
		Name:       name,
		Class:      class,
		Level:      1,
		HP:         HPPerLevel,
		Mana:       mana,
		Strength:   strength,
		Agility:    agility,
		Dexterity:  dexterity,
		Gold:       gold,
		Experience: experience,
	}
}

// GetName returns the hero's name.
func (h *Hero) GetName() string { return h.Name }

// GetLevel returns the hero's level.
func (h *Hero) GetLevel() int { return h.Level }

// GetHP returns current HP.
func (h *Hero) GetHP() float64 { return h.HP }

// IsFainted returns true once HP has dropped to zero.
func (h *Hero) IsFainted() bool { return h.HP <= 0 }

// GetStrength returns the current strength, including any active terrain buff.
func (h *Hero) GetStrength() float64 { return h.Strength }

// GetAgility returns the current agility, including any active terrain buff.
func (h *Hero) GetAgility() float64 { return h.Agility }

// GetDexterity returns the current dexterity, including any active terrain buff.
func (h *Hero) GetDexterity() float64 { return h.Dexterity }

// SetStrength overwrites strength.
func (h *Hero) SetStrength(v float64) { h.Strength = v }

// SetAgility overwrites agility.
func (h *Hero) SetAgility(v float64) { h.Agility = v }

// SetDexterity overwrites dexterity.
func (h *Hero) SetDexterity(v float64) { h.Dexterity = v }

// TakeDamage reduces HP, never below zero, and returns the damage actually taken.
func (h *Hero) TakeDamage(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > h.HP {
		actual = h.HP
	}
	h.HP -= actual
	return actual
}

// Heal restores HP up to the level cap and returns the amount healed.
func (h *Hero) Heal(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	limit := float64(h.Level) * HPPerLevel
	actual := amount
	if h.HP+actual > limit {
		actual = limit - h.HP
	}
	if actual < 0 {
		return 0
	}
	h.HP += actual
	return actual
}

// DamageReduction returns the equipped armor's reduction, or 0 when unarmored.
func (h *Hero) DamageReduction() float64 {
	if h.Armor == nil {
		return 0
	}
	return h.Armor.DamageReduction
}

// WeaponDamage returns the equipped weapon's damage, or 0 when unarmed.
func (h *Hero) WeaponDamage() float64 {
	if h.Weapon == nil {
		return 0
	}
	return h.Weapon.Damage
}

// AddGold adds gold to the hero's purse.
func (h *Hero) AddGold(amount float64) {
	h.Gold += amount
}

// GainExperience adds experience and levels the hero up as many times as it
// pays for. Returns the number of levels gained.
func (h *Hero) GainExperience(amount float64) int {
	h.Experience += amount
	gained := 0
	for h.Level < maxLevel && h.Experience >= float64(h.Level)*xpPerLevel {
		h.Experience -= float64(h.Level) * xpPerLevel
		h.LevelUp()
		gained++
	}
	return gained
}

// LevelUp raises the hero one level: HP resets to the new pool, mana grows
// from at least the floor, every skill scales and the class-favoured skills
// scale a second time.
func (h *Hero) LevelUp() {
	h.Level++
	h.HP = float64(h.Level) * HPPerLevel

	if h.Mana < manaFloor {
		h.Mana = manaFloor
	}
	h.Mana *= manaScale

	h.Strength *= skillScale
	h.Agility *= skillScale
	h.Dexterity *= skillScale

	t, ok := h.Class.traits()
	if !ok {
		return
	}
	if t.favorStrength {
		h.Strength *= skillScale
	}
	if t.favorAgility {
		h.Agility *= skillScale
	}
	if t.favorDexterity {
		h.Dexterity *= skillScale
	}
}

// String returns a short status line.
func (h *Hero) String() string {
	return fmt.Sprintf("%s | HP: %.1f | Level: %d", h.Name, h.HP, h.Level)
}
