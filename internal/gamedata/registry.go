package gamedata

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samdwyer/valor/internal/entity"
)

// HeroRegistry holds loaded hero definitions.
type HeroRegistry struct {
	heroes []HeroDef
}

// NewHeroRegistry creates a registry from loaded hero definitions.
func NewHeroRegistry(heroes []HeroDef) *HeroRegistry {
	return &HeroRegistry{heroes: heroes}
}

// LoadHeroRegistry loads and creates a registry from the embedded heroes.json.
func LoadHeroRegistry() (*HeroRegistry, error) {
	heroes, err := LoadHeroes()
	if err != nil {
		return nil, err
	}
	if len(heroes) == 0 {
		return nil, errors.New("no heroes loaded from heroes.json")
	}
	return NewHeroRegistry(heroes), nil
}

// GetByName returns the hero definition with the given name, or nil if not found.
func (r *HeroRegistry) GetByName(name string) *HeroDef {
	for i := range r.heroes {
		if r.heroes[i].Name == name {
			return &r.heroes[i]
		}
	}
	return nil
}

// All returns all hero definitions.
func (r *HeroRegistry) All() []HeroDef {
	return r.heroes
}

// Count returns the number of heroes in the registry.
func (r *HeroRegistry) Count() int {
	return len(r.heroes)
}

// Roster builds one fresh hero per definition, in file order.
func (r *HeroRegistry) Roster(items *ItemRegistry) ([]*entity.Hero, error) {
	roster := make([]*entity.Hero, 0, len(r.heroes))
	for i := range r.heroes {
		h, err := r.heroes[i].NewHero(items)
		if err != nil {
			return nil, err
		}
		roster = append(roster, h)
	}
	return roster, nil
}

// =============================================================================
// MonsterRegistry
// =============================================================================

// MonsterRegistry holds monster templates. Templates are never handed out
// directly; callers get clones.
type MonsterRegistry struct {
	templates []*entity.Monster
}

// NewMonsterRegistry creates a registry, validating every definition.
func NewMonsterRegistry(defs []MonsterDef) (*MonsterRegistry, error) {
	templates := make([]*entity.Monster, 0, len(defs))
	for i := range defs {
		m, err := defs[i].NewMonster()
		if err != nil {
			return nil, err
		}
		templates = append(templates, m)
	}
	return &MonsterRegistry{templates: templates}, nil
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*MonsterRegistry, error) {
	defs, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	return NewMonsterRegistry(defs)
}

// Random returns a clone of a uniformly chosen template, or nil if the
// registry is empty.
func (r *MonsterRegistry) Random(rng *rand.Rand) *entity.Monster {
	if len(r.templates) == 0 {
		return nil
	}
	return r.templates[rng.Intn(len(r.templates))].Clone()
}

// GetByName returns a clone of the named template, or nil if not found.
func (r *MonsterRegistry) GetByName(name string) *entity.Monster {
	for _, m := range r.templates {
		if m.Name == name {
			return m.Clone()
		}
	}
	return nil
}

// Count returns the number of monster templates in the registry.
func (r *MonsterRegistry) Count() int {
	return len(r.templates)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry indexes armor and weapons by ID.
type ItemRegistry struct {
	armor   map[string]ArmorDef
	weapons map[string]WeaponDef
}

// NewItemRegistry creates a registry from loaded item definitions.
// Duplicate IDs are rejected.
func NewItemRegistry(file ItemsFile) (*ItemRegistry, error) {
	r := &ItemRegistry{
		armor:   make(map[string]ArmorDef, len(file.Armor)),
		weapons: make(map[string]WeaponDef, len(file.Weapons)),
	}
	for _, a := range file.Armor {
		if _, dup := r.armor[a.ID]; dup {
			return nil, fmt.Errorf("duplicate armor id %q", a.ID)
		}
		r.armor[a.ID] = a
	}
	for _, w := range file.Weapons {
		if _, dup := r.weapons[w.ID]; dup {
			return nil, fmt.Errorf("duplicate weapon id %q", w.ID)
		}
		r.weapons[w.ID] = w
	}
	return r, nil
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	file, err := LoadItems()
	if err != nil {
		return nil, err
	}
	return NewItemRegistry(file)
}

// Armor returns a new armor piece for the ID, or nil if not found.
func (r *ItemRegistry) Armor(id string) *entity.Armor {
	def, ok := r.armor[id]
	if !ok {
		return nil
	}
	return &entity.Armor{Name: def.Name, DamageReduction: def.Reduction}
}

// Weapon returns a new weapon for the ID, or nil if not found.
func (r *ItemRegistry) Weapon(id string) *entity.Weapon {
	def, ok := r.weapons[id]
	if !ok {
		return nil
	}
	return &entity.Weapon{Name: def.Name, Damage: def.Damage, Hands: def.Hands}
}

// Count returns the number of armor pieces and weapons.
func (r *ItemRegistry) Count() (armor, weapons int) {
	return len(r.armor), len(r.weapons)
}

// =============================================================================
// Bundle
// =============================================================================

// Data is everything a session needs from the embedded files.
type Data struct {
	Heroes   *HeroRegistry
	Monsters *MonsterRegistry
	Items    *ItemRegistry
}

// LoadAll loads every registry.
func LoadAll() (*Data, error) {
	heroes, err := LoadHeroRegistry()
	if err != nil {
		return nil, fmt.Errorf("load heroes: %w", err)
	}
	monsters, err := LoadMonsterRegistry()
	if err != nil {
		return nil, fmt.Errorf("load monsters: %w", err)
	}
	items, err := LoadItemRegistry()
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return &Data{Heroes: heroes, Monsters: monsters, Items: items}, nil
}

// MustLoadAll loads every registry, panicking on error.
func MustLoadAll() *Data {
	data, err := LoadAll()
	if err != nil {
		panic(err)
	}
	return data
}
