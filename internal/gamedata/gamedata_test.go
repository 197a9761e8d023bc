package gamedata

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/valor/internal/entity"
)

func TestLoadHeroes(t *testing.T) {
	heroes, err := LoadHeroes()
	if err != nil {
		t.Fatalf("LoadHeroes() error: %v", err)
	}
	if len(heroes) != 10 {
		t.Fatalf("LoadHeroes() returned %d heroes, want 10", len(heroes))
	}

	first := heroes[0]
	if first.Name != "Gaerdal_Ironhand" || first.Class != "warrior" {
		t.Errorf("first hero = %s/%s, want Gaerdal_Ironhand/warrior", first.Name, first.Class)
	}
	if first.Strength != 700 || first.Agility != 500 || first.Dexterity != 600 {
		t.Errorf("Gaerdal stats = %v/%v/%v, want 700/500/600", first.Strength, first.Agility, first.Dexterity)
	}

	for _, h := range heroes {
		if _, err := entity.ParseClass(h.Class); err != nil {
			t.Errorf("hero %s has invalid class: %v", h.Name, err)
		}
	}
}

func TestRosterEquipsHeroes(t *testing.T) {
	data := MustLoadAll()

	roster, err := data.Heroes.Roster(data.Items)
	if err != nil {
		t.Fatalf("Roster() error: %v", err)
	}
	if len(roster) != data.Heroes.Count() {
		t.Fatalf("Roster() has %d heroes, want %d", len(roster), data.Heroes.Count())
	}

	g := roster[0]
	if g.Level != 1 || g.HP != entity.HPPerLevel {
		t.Errorf("Gaerdal level %d hp %v, want 1/%v", g.Level, g.HP, entity.HPPerLevel)
	}
	if g.DamageReduction() != 600 {
		t.Errorf("Gaerdal armor reduction = %v, want 600 (Breastplate)", g.DamageReduction())
	}
	if g.WeaponDamage() != 800 {
		t.Errorf("Gaerdal weapon damage = %v, want 800 (Sword)", g.WeaponDamage())
	}

	// Each call builds independent heroes.
	again, _ := data.Heroes.Roster(data.Items)
	again[0].TakeDamage(50)
	if roster[0].HP != entity.HPPerLevel {
		t.Error("rosters share hero instances")
	}
}

func TestHeroDefErrors(t *testing.T) {
	items, err := NewItemRegistry(ItemsFile{})
	if err != nil {
		t.Fatalf("NewItemRegistry() error: %v", err)
	}

	tests := []struct {
		name string
		def  HeroDef
	}{
		{"bad class", HeroDef{Name: "X", Class: "bard"}},
		{"unknown armor", HeroDef{Name: "X", Class: "warrior", Armor: "cardboard"}},
		{"unknown weapon", HeroDef{Name: "X", Class: "paladin", Weapon: "spoon"}},
	}
	for _, tt := range tests {
		if _, err := tt.def.NewHero(items); err == nil {
			t.Errorf("%s: NewHero() should fail", tt.name)
		}
	}
}

func TestMonsterRegistry(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		t.Fatalf("LoadMonsterRegistry() error: %v", err)
	}
	if registry.Count() != 15 {
		t.Errorf("Count() = %d, want 15", registry.Count())
	}

	d := registry.GetByName("Desghidorrah")
	if d == nil {
		t.Fatal("GetByName(Desghidorrah) returned nil")
	}
	if d.Species != entity.SpeciesDragon || d.Level != 3 || d.BaseDamage != 300 || d.Dodge != 35 {
		t.Errorf("Desghidorrah = %+v", d)
	}
	d.TakeDamage(100)
	if fresh := registry.GetByName("Desghidorrah"); fresh.HP != 300 {
		t.Errorf("template HP changed to %v", fresh.HP)
	}

	if registry.GetByName("Nobody") != nil {
		t.Error("GetByName(Nobody) should be nil")
	}
}

func TestMonsterRegistryRejectsBadSpecies(t *testing.T) {
	_, err := NewMonsterRegistry([]MonsterDef{{Name: "Slime", Species: "ooze", Level: 1}})
	if err == nil {
		t.Error("NewMonsterRegistry() should reject an unknown species")
	}
	_, err = NewMonsterRegistry([]MonsterDef{{Name: "Egg", Species: "dragon", Level: 0}})
	if err == nil {
		t.Error("NewMonsterRegistry() should reject level 0")
	}
}

func TestMonsterFactoryScalesToLevel(t *testing.T) {
	registry, err := NewMonsterRegistry([]MonsterDef{
		{Name: "Natsunomeryu", Species: "dragon", Level: 1, Damage: 100, Defense: 200, Dodge: 10},
	})
	if err != nil {
		t.Fatalf("NewMonsterRegistry() error: %v", err)
	}
	f := NewMonsterFactory(registry, rand.New(rand.NewSource(1)))

	m := f.MonsterForLane(2, 4)
	if m == nil {
		t.Fatal("MonsterForLane() returned nil")
	}
	if m.Level != 4 || m.BaseDamage != 400 || m.Defense != 800 || m.HP != 400 {
		t.Errorf("scaled monster = %+v, want level 4 damage 400 defense 800 hp 400", m)
	}
	if other := f.MonsterForLane(0, 1); other == m {
		t.Error("factory returned the same instance twice")
	}

	empty, _ := NewMonsterRegistry(nil)
	if got := NewMonsterFactory(empty, rand.New(rand.NewSource(1))).MonsterForLane(0, 1); got != nil {
		t.Errorf("empty factory returned %v", got)
	}
}

func TestMonsterFactoryIsSeeded(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		t.Fatalf("LoadMonsterRegistry() error: %v", err)
	}
	a := NewMonsterFactory(registry, rand.New(rand.NewSource(99)))
	b := NewMonsterFactory(registry, rand.New(rand.NewSource(99)))

	for i := 0; i < 10; i++ {
		if ma, mb := a.MonsterForLane(0, 2), b.MonsterForLane(0, 2); ma.Name != mb.Name {
			t.Fatalf("pick %d differs: %s vs %s", i, ma.Name, mb.Name)
		}
	}
}

func TestItemRegistry(t *testing.T) {
	items, err := LoadItemRegistry()
	if err != nil {
		t.Fatalf("LoadItemRegistry() error: %v", err)
	}
	armor, weapons := items.Count()
	if armor != 4 || weapons != 5 {
		t.Errorf("Count() = %d, %d, want 4, 5", armor, weapons)
	}
	if a := items.Armor("platinum_shield"); a == nil || a.DamageReduction != 200 {
		t.Errorf("Armor(platinum_shield) = %+v", a)
	}
	if w := items.Weapon("bow"); w == nil || w.Hands != 2 {
		t.Errorf("Weapon(bow) = %+v", w)
	}
	if items.Armor("nope") != nil || items.Weapon("nope") != nil {
		t.Error("unknown ids should return nil")
	}

	_, err = NewItemRegistry(ItemsFile{Weapons: []WeaponDef{{ID: "x"}, {ID: "x"}}})
	if err == nil {
		t.Error("duplicate weapon ids should be rejected")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input    string
		expected tcell.Color
		wantErr  bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00ff80", tcell.NewRGBColor(0, 255, 128), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GG0000", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}

	if SpeciesColor(entity.SpeciesDragon) == tcell.ColorDefault {
		t.Error("dragons should have a colour")
	}
	if got := SpeciesColor(entity.Species(42)); got != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("SpeciesColor(unknown) = %v, want white", got)
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Errorf("NewSeed() error: %v", err)
	}
}
