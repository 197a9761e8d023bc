package gamedata

import (
	"fmt"

	"github.com/samdwyer/valor/internal/entity"
)

// HeroDef defines a selectable hero loaded from JSON.
type HeroDef struct {
	Name       string  `json:"name"`
	Class      string  `json:"class"` // Matches entity.Class.ID (e.g., "warrior")
	Mana       float64 `json:"mana"`
	Strength   float64 `json:"strength"`
	Agility    float64 `json:"agility"`
	Dexterity  float64 `json:"dexterity"`
	Gold       float64 `json:"gold"`
	Experience float64 `json:"experience"`
	Armor      string  `json:"armor,omitempty"`  // Armor ID, empty when unarmored
	Weapon     string  `json:"weapon,omitempty"` // Weapon ID, empty when unarmed
}

// HeroesFile represents the structure of heroes.json.
type HeroesFile struct {
	Heroes []HeroDef `json:"heroes"`
}

// LoadHeroes loads hero definitions from the embedded heroes.json file.
func LoadHeroes() ([]HeroDef, error) {
	file, err := Load[HeroesFile]("heroes.json")
	if err != nil {
		return nil, err
	}
	return file.Heroes, nil
}

// NewHero builds a fresh level 1 hero from the definition, equipped from items.
func (d *HeroDef) NewHero(items *ItemRegistry) (*entity.Hero, error) {
	class, err := entity.ParseClass(d.Class)
	if err != nil {
		return nil, fmt.Errorf("hero %s: %w", d.Name, err)
	}
	h := entity.NewHero(d.Name, class, d.Mana, d.Strength, d.Agility, d.Dexterity, d.Gold, d.Experience)

	if d.Armor != "" {
		armor := items.Armor(d.Armor)
		if armor == nil {
			return nil, fmt.Errorf("hero %s: unknown armor %q", d.Name, d.Armor)
		}
		h.Armor = armor
	}
	if d.Weapon != "" {
		weapon := items.Weapon(d.Weapon)
		if weapon == nil {
			return nil, fmt.Errorf("hero %s: unknown weapon %q", d.Name, d.Weapon)
		}
		h.Weapon = weapon
	}
	return h, nil
}

// MonsterDef defines a monster template loaded from JSON.
type MonsterDef struct {
	Name    string  `json:"name"`
	Species string  `json:"species"` // Matches entity.Species.ID (e.g., "dragon")
	Level   int     `json:"level"`
	Damage  float64 `json:"damage"`
	Defense float64 `json:"defense"`
	Dodge   float64 `json:"dodge"` // Percent
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json file.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}

// NewMonster builds a monster at the definition's own level.
func (d *MonsterDef) NewMonster() (*entity.Monster, error) {
	species, err := entity.ParseSpecies(d.Species)
	if err != nil {
		return nil, fmt.Errorf("monster %s: %w", d.Name, err)
	}
	if d.Level < 1 {
		return nil, fmt.Errorf("monster %s: level %d below 1", d.Name, d.Level)
	}
	return entity.NewMonster(d.Name, species, d.Level, d.Damage, d.Defense, d.Dodge), nil
}

// ArmorDef defines a piece of armor loaded from JSON.
type ArmorDef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Cost      float64 `json:"cost"`
	Level     int     `json:"level"`
	Reduction float64 `json:"reduction"` // Flat damage reduction per hit
}

// WeaponDef defines a weapon loaded from JSON.
type WeaponDef struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Cost   float64 `json:"cost"`
	Level  int     `json:"level"`
	Damage float64 `json:"damage"`
	Hands  int     `json:"hands"`
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Armor   []ArmorDef  `json:"armor"`
	Weapons []WeaponDef `json:"weapons"`
}

// LoadItems loads armor and weapon definitions from the embedded items.json file.
func LoadItems() (ItemsFile, error) {
	return Load[ItemsFile]("items.json")
}
