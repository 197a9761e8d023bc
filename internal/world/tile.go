// Package world provides the Legends of Valor lane board: grid, lanes, nexus
// rows, terrain, occupancy, and terrain buffs.
package world

// TerrainType is the flavour of a tile's ground.
type TerrainType int

const (
	TerrainPlain TerrainType = iota
	TerrainBush
	TerrainCave
	TerrainKoulou
	TerrainObstacle
)

// buffStat names the hero stat a terrain boosts.
type buffStat int

const (
	buffNone buffStat = iota
	buffStrength
	buffAgility
	buffDexterity
)

type terrainTraits struct {
	name   string
	symbol rune
	buff   buffStat
}

var terrainTable = [...]terrainTraits{
	TerrainPlain:    {name: "plain", symbol: 'P'},
	TerrainBush:     {name: "bush", symbol: 'B', buff: buffDexterity},
	TerrainCave:     {name: "cave", symbol: 'C', buff: buffAgility},
	TerrainKoulou:   {name: "koulou", symbol: 'K', buff: buffStrength},
	TerrainObstacle: {name: "obstacle", symbol: 'O'},
}

func (t TerrainType) traits() terrainTraits {
	if t < 0 || int(t) >= len(terrainTable) {
		return terrainTraits{name: "unknown", symbol: '?'}
	}
	return terrainTable[t]
}

// String returns the terrain name.
func (t TerrainType) String() string {
	return t.traits().name
}

// Symbol returns the terrain's display character.
func (t TerrainType) Symbol() rune {
	return t.traits().symbol
}

// GrantsBuff returns true for terrain that boosts a hero standing on it.
func (t TerrainType) GrantsBuff() bool {
	return t.traits().buff != buffNone
}

// IsObstacle returns true if the terrain blocks passage.
func (t TerrainType) IsObstacle() bool {
	return t == TerrainObstacle
}

// TileOverlay is a tile's structural role. It is fixed at board construction.
type TileOverlay int

const (
	OverlayNone TileOverlay = iota
	OverlayHeroNexus
	OverlayMonsterNexus
	OverlayInaccessible
)

// String returns a human-readable overlay name.
func (o TileOverlay) String() string {
	switch o {
	case OverlayNone:
		return "none"
	case OverlayHeroNexus:
		return "hero_nexus"
	case OverlayMonsterNexus:
		return "monster_nexus"
	case OverlayInaccessible:
		return "inaccessible"
	default:
		return "unknown"
	}
}

// IsNexus returns true for either side's nexus.
func (o TileOverlay) IsNexus() bool {
	return o == OverlayHeroNexus || o == OverlayMonsterNexus
}

// HeroID is the board handle of a registered hero. Zero means no hero.
type HeroID int

// MonsterID is the board handle of a placed monster. Zero means no monster.
type MonsterID int

const (
	noHero    HeroID    = 0
	noMonster MonsterID = 0
)

// Tile is a single grid cell. It holds at most one hero and one monster.
// Tiles are only mutated by the Board; callers get copies.
type Tile struct {
	terrain TerrainType
	overlay TileOverlay
	hero    HeroID
	monster MonsterID
}

// Terrain returns the tile's current terrain.
func (t Tile) Terrain() TerrainType { return t.terrain }

// Overlay returns the tile's structural overlay.
func (t Tile) Overlay() TileOverlay { return t.overlay }

// HeroOccupant returns the hero on the tile and whether there is one.
func (t Tile) HeroOccupant() (HeroID, bool) { return t.hero, t.hero != noHero }

// MonsterOccupant returns the monster on the tile and whether there is one.
func (t Tile) MonsterOccupant() (MonsterID, bool) { return t.monster, t.monster != noMonster }

// HeroPassable returns true if a hero may stand on the tile.
func (t Tile) HeroPassable() bool {
	return t.overlay != OverlayInaccessible && !t.terrain.IsObstacle()
}

// MonsterPassable returns true if a monster may stand on the tile.
func (t Tile) MonsterPassable() bool {
	return t.overlay != OverlayInaccessible && !t.terrain.IsObstacle()
}

// IsEmpty returns true if nobody stands on the tile.
func (t Tile) IsEmpty() bool {
	return t.hero == noHero && t.monster == noMonster
}
