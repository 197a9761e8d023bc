package world

// TerrainBuffMultiplier is applied to the single stat a buff terrain boosts.
const TerrainBuffMultiplier = 1.10

// Buffable is a hero whose stats terrain can boost.
type Buffable interface {
	GetStrength() float64
	GetAgility() float64
	GetDexterity() float64
	SetStrength(v float64)
	SetAgility(v float64)
	SetDexterity(v float64)
}

// StatSnapshot is a hero's stats as they were before a terrain buff.
type StatSnapshot struct {
	Strength  float64
	Agility   float64
	Dexterity float64
}

// BuffManager applies and reverts terrain buffs. A snapshot exists for a hero
// exactly while that hero stands on buff terrain.
type BuffManager struct {
	snapshots map[HeroID]StatSnapshot
}

// NewBuffManager creates an empty buff manager.
func NewBuffManager() *BuffManager {
	return &BuffManager{snapshots: make(map[HeroID]StatSnapshot)}
}

// Enter handles a hero stepping onto terrain: any active buff is released
// first, then the terrain's buff, if it has one, is applied to the restored
// stats. There is no way to apply a buff without releasing the previous one.
func (m *BuffManager) Enter(id HeroID, hero Buffable, terrain TerrainType) {
	m.Release(id, hero)

	stat := terrain.traits().buff
	if stat == buffNone {
		return
	}

	snap := StatSnapshot{
		Strength:  hero.GetStrength(),
		Agility:   hero.GetAgility(),
		Dexterity: hero.GetDexterity(),
	}
	m.snapshots[id] = snap

	switch stat {
	case buffDexterity:
		hero.SetDexterity(snap.Dexterity * TerrainBuffMultiplier)
	case buffAgility:
		hero.SetAgility(snap.Agility * TerrainBuffMultiplier)
	case buffStrength:
		hero.SetStrength(snap.Strength * TerrainBuffMultiplier)
	}
}

// Release writes the saved pre-buff stats back verbatim and drops the
// snapshot. It is a no-op for a hero without an active buff.
func (m *BuffManager) Release(id HeroID, hero Buffable) {
	snap, ok := m.snapshots[id]
	if !ok {
		return
	}
	hero.SetStrength(snap.Strength)
	hero.SetAgility(snap.Agility)
	hero.SetDexterity(snap.Dexterity)
	delete(m.snapshots, id)
}

// Snapshot returns the hero's saved pre-buff stats, if a buff is active.
func (m *BuffManager) Snapshot(id HeroID) (StatSnapshot, bool) {
	snap, ok := m.snapshots[id]
	return snap, ok
}

// Active returns the number of heroes currently buffed.
func (m *BuffManager) Active() int {
	return len(m.snapshots)
}
