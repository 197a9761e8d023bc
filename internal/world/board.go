package world

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/valor/internal/entity"
	"github.com/samdwyer/valor/internal/telemetry"
)

const (
	// Board layout
	BoardSize = 8
	LaneCount = 3
	LaneWidth = 2
)

// dividerColumns are the permanently inaccessible columns between lanes.
var dividerColumns = []int{2, 5}

// terrainRatios is the share of candidate tiles each terrain receives.
// Plain absorbs whatever rounding leaves over.
var terrainRatios = []struct {
	terrain TerrainType
	ratio   float64
}{
	{TerrainBush, 0.15},
	{TerrainCave, 0.15},
	{TerrainKoulou, 0.15},
	{TerrainObstacle, 0.15},
}

type heroSlot struct {
	hero   *entity.Hero // nil once retired
	pos    Position
	placed bool
}

type monsterSlot struct {
	monster *entity.Monster // nil once retired
	pos     Position
}

// Board is the lane board. It owns the grid, the occupancy index, and the
// terrain buffs; every placement goes through it so tiles and positions
// always agree.
type Board struct {
	size   int
	grid   [][]Tile
	lanes  [][]int // lane index -> columns
	laneOf []int   // column -> lane index, -1 for dividers
	buffs  *BuffManager

	// Arenas indexed by handle-1.
	heroes     []heroSlot
	heroIDs    map[*entity.Hero]HeroID
	monsters   []monsterSlot
	monsterIDs map[*entity.Monster]MonsterID
}

// NewBoard builds the board: nexus rows and divider columns first, then
// terrain shuffled with the given seed over the remaining tiles. The same
// seed always yields the same layout.
func NewBoard(ctx context.Context, seed int64) *Board {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "board.generate")
	defer span.End()

	b := &Board{
		size:       BoardSize,
		buffs:      NewBuffManager(),
		heroIDs:    make(map[*entity.Hero]HeroID),
		monsterIDs: make(map[*entity.Monster]MonsterID),
	}
	b.computeLanes()
	b.layOverlay()
	counts := b.assignTerrain(rand.New(rand.NewSource(seed)))

	span.SetAttributes(
		attribute.Int64("board.seed", seed),
		attribute.Int("board.size", b.size),
		attribute.Int("board.lanes", len(b.lanes)),
		attribute.Int("terrain.plain", counts[TerrainPlain]),
		attribute.Int("terrain.bush", counts[TerrainBush]),
		attribute.Int("terrain.cave", counts[TerrainCave]),
		attribute.Int("terrain.koulou", counts[TerrainKoulou]),
		attribute.Int("terrain.obstacle", counts[TerrainObstacle]),
	)
	return b
}

func isDivider(col int) bool {
	return slices.Contains(dividerColumns, col)
}

// computeLanes groups the non-divider columns, left to right, into lanes.
func (b *Board) computeLanes() {
	b.laneOf = make([]int, b.size)
	b.lanes = make([][]int, 0, LaneCount)
	var current []int
	for col := 0; col < b.size; col++ {
		if isDivider(col) {
			b.laneOf[col] = -1
			continue
		}
		b.laneOf[col] = len(b.lanes)
		current = append(current, col)
		if len(current) == LaneWidth {
			b.lanes = append(b.lanes, current)
			current = nil
		}
	}
}

func (b *Board) layOverlay() {
	b.grid = make([][]Tile, b.size)
	for row := range b.grid {
		b.grid[row] = make([]Tile, b.size)
		for col := range b.grid[row] {
			b.grid[row][col] = Tile{terrain: TerrainPlain, overlay: b.overlayFor(row, col)}
		}
	}
}

func (b *Board) overlayFor(row, col int) TileOverlay {
	switch {
	case isDivider(col):
		return OverlayInaccessible
	case row == 0:
		return OverlayMonsterNexus
	case row == b.size-1:
		return OverlayHeroNexus
	default:
		return OverlayNone
	}
}

// assignTerrain distributes terrain over the candidate tiles in row-major
// order and returns the per-terrain counts.
func (b *Board) assignTerrain(rng *rand.Rand) map[TerrainType]int {
	var candidates []Position
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.grid[row][col].overlay == OverlayNone {
				candidates = append(candidates, Position{Row: row, Col: col})
			}
		}
	}

	counts := terrainDistribution(len(candidates))
	pool := make([]TerrainType, 0, len(candidates))
	for t := TerrainPlain; t <= TerrainObstacle; t++ {
		for i := 0; i < counts[t]; i++ {
			pool = append(pool, t)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for i, pos := range candidates {
		b.grid[pos.Row][pos.Col].terrain = pool[i]
	}
	return counts
}

// terrainDistribution splits n tiles across the terrain types. Every
// non-plain type gets at least one tile when n allows it, and the counts
// always sum to n.
func terrainDistribution(n int) map[TerrainType]int {
	counts := make(map[TerrainType]int, len(terrainRatios)+1)
	if n <= 0 {
		return counts
	}

	assigned := 0
	for _, r := range terrainRatios {
		c := max(1, int(math.Round(float64(n)*r.ratio)))
		counts[r.terrain] = c
		assigned += c
	}

	// Tiny boards: take tiles back from the last types until it fits.
	for i := len(terrainRatios) - 1; assigned > n && i >= 0; i-- {
		t := terrainRatios[i].terrain
		take := min(counts[t], assigned-n)
		counts[t] -= take
		assigned -= take
	}
	counts[TerrainPlain] = n - assigned
	return counts
}

// Size returns the board's side length.
func (b *Board) Size() int {
	return b.size
}

// LaneCount returns the number of lanes.
func (b *Board) LaneCount() int {
	return len(b.lanes)
}

// LaneColumns returns a copy of each lane's columns.
func (b *Board) LaneColumns() [][]int {
	out := make([][]int, len(b.lanes))
	for i, cols := range b.lanes {
		out[i] = slices.Clone(cols)
	}
	return out
}

// LaneOf returns the lane a column belongs to, or -1 for dividers and
// columns off the board.
func (b *Board) LaneOf(col int) int {
	if col < 0 || col >= b.size {
		return -1
	}
	return b.laneOf[col]
}

// Inside returns true if the position is on the board.
func (b *Board) Inside(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.size && pos.Col >= 0 && pos.Col < b.size
}

// Tile returns a copy of the tile at pos. Asking for a tile off the board is
// a caller bug and panics.
func (b *Board) Tile(pos Position) Tile {
	return *b.tileAt(pos)
}

func (b *Board) tileAt(pos Position) *Tile {
	if !b.Inside(pos) {
		panic(fmt.Sprintf("world: position out of bounds: %v", pos))
	}
	return &b.grid[pos.Row][pos.Col]
}

// IsNexus returns true if pos is on either nexus row.
func (b *Board) IsNexus(pos Position) bool {
	return b.tileAt(pos).overlay.IsNexus()
}

func (b *Board) mustLane(lane int) {
	if lane < 0 || lane >= len(b.lanes) {
		panic(fmt.Sprintf("world: lane index out of bounds: %d", lane))
	}
}

// HeroNexusEntry returns the first hero-nexus tile of a lane.
func (b *Board) HeroNexusEntry(lane int) Position {
	b.mustLane(lane)
	return Position{Row: b.size - 1, Col: b.lanes[lane][0]}
}

// MonsterNexusEntry returns the first monster-nexus tile of a lane.
func (b *Board) MonsterNexusEntry(lane int) Position {
	b.mustLane(lane)
	return Position{Row: 0, Col: b.lanes[lane][0]}
}

// ClearObstacle turns an obstacle into plain ground. It returns false, and
// changes nothing, when there is no obstacle at pos.
func (b *Board) ClearObstacle(pos Position) bool {
	tile := b.tileAt(pos)
	if !tile.terrain.IsObstacle() {
		return false
	}
	tile.terrain = TerrainPlain
	return true
}

// =============================================================================
// Heroes
// =============================================================================

// RegisterHeroes assigns ids 1..n to the heroes in order and returns them.
// It must run before any hero is placed.
func (b *Board) RegisterHeroes(heroes []*entity.Hero) []HeroID {
	for _, slot := range b.heroes {
		if slot.placed {
			panic("world: RegisterHeroes called with heroes on the board")
		}
	}
	b.heroes = make([]heroSlot, len(heroes))
	b.heroIDs = make(map[*entity.Hero]HeroID, len(heroes))
	ids := make([]HeroID, len(heroes))
	for i, h := range heroes {
		if h == nil {
			panic("world: nil hero")
		}
		id := HeroID(i + 1)
		b.heroes[i] = heroSlot{hero: h}
		b.heroIDs[h] = id
		ids[i] = id
	}
	return ids
}

func (b *Board) heroSlot(id HeroID) *heroSlot {
	if id <= noHero || int(id) > len(b.heroes) || b.heroes[id-1].hero == nil {
		panic(fmt.Sprintf("world: hero %d is not registered", id))
	}
	return &b.heroes[id-1]
}

// HeroID returns the handle of a registered hero.
func (b *Board) HeroID(h *entity.Hero) (HeroID, bool) {
	id, ok := b.heroIDs[h]
	return id, ok
}

// Hero returns the hero behind a handle, or nil if it is unknown or retired.
func (b *Board) Hero(id HeroID) *entity.Hero {
	if id <= noHero || int(id) > len(b.heroes) {
		return nil
	}
	return b.heroes[id-1].hero
}

// HeroPosition returns where a hero stands, if it is on the board.
func (b *Board) HeroPosition(id HeroID) (Position, bool) {
	if b.Hero(id) == nil {
		return Position{}, false
	}
	slot := b.heroes[id-1]
	return slot.pos, slot.placed
}

// HeroOnBoard returns true if the hero is registered and placed.
func (b *Board) HeroOnBoard(id HeroID) bool {
	_, ok := b.HeroPosition(id)
	return ok
}

// HeroIDs returns the registered, not yet retired heroes in id order.
func (b *Board) HeroIDs() []HeroID {
	ids := make([]HeroID, 0, len(b.heroes))
	for i, slot := range b.heroes {
		if slot.hero != nil {
			ids = append(ids, HeroID(i+1))
		}
	}
	return ids
}

// AddHero places a registered hero at pos. It fails, changing nothing, if
// pos is off the board, impassable, or held by another hero.
func (b *Board) AddHero(id HeroID, pos Position) bool {
	b.heroSlot(id)
	return b.placeHero(id, pos)
}

// MoveHero steps a placed hero one tile. The same rules as AddHero apply;
// a tile holding a monster is allowed.
func (b *Board) MoveHero(id HeroID, dir Direction) bool {
	slot := b.heroSlot(id)
	if !slot.placed {
		panic(fmt.Sprintf("world: hero %d is not on the board", id))
	}
	return b.placeHero(id, slot.pos.Step(dir))
}

func (b *Board) placeHero(id HeroID, target Position) bool {
	if !b.Inside(target) {
		return false
	}
	tile := b.tileAt(target)
	if !tile.HeroPassable() {
		return false
	}
	if tile.hero != noHero && tile.hero != id {
		return false
	}

	slot := b.heroSlot(id)
	if slot.placed {
		b.tileAt(slot.pos).hero = noHero
	}
	tile.hero = id
	slot.pos = target
	slot.placed = true
	b.buffs.Enter(id, slot.hero, tile.terrain)
	return true
}

// RemoveHero takes a hero off the board, reverts its buff, and retires its
// handle. The handle is never given to another hero.
func (b *Board) RemoveHero(id HeroID) {
	slot := b.heroSlot(id)
	if slot.placed {
		b.tileAt(slot.pos).hero = noHero
	}
	b.buffs.Release(id, slot.hero)
	delete(b.heroIDs, slot.hero)
	*slot = heroSlot{}
}

// WithBaseStats lifts the hero's terrain buff, runs fn, then re-enters the
// hero's current tile. Use it for permanent stat changes such as level-ups
// so the buff snapshot never restores stale values.
func (b *Board) WithBaseStats(id HeroID, fn func(h *entity.Hero)) {
	slot := b.heroSlot(id)
	b.buffs.Release(id, slot.hero)
	fn(slot.hero)
	if slot.placed {
		b.buffs.Enter(id, slot.hero, b.tileAt(slot.pos).terrain)
	}
}

// BuffSnapshot returns the hero's pre-buff stats while a terrain buff is active.
func (b *Board) BuffSnapshot(id HeroID) (StatSnapshot, bool) {
	return b.buffs.Snapshot(id)
}

// HeroesInRange returns the placed heroes in the same lane as pos within
// Manhattan distance rng, in id order. Heroes in another lane never count,
// however close.
func (b *Board) HeroesInRange(pos Position, rng int) []HeroID {
	lane := b.LaneOf(pos.Col)
	if lane < 0 {
		return nil
	}
	var out []HeroID
	for i, slot := range b.heroes {
		if slot.hero == nil || !slot.placed {
			continue
		}
		if b.laneOf[slot.pos.Col] != lane {
			continue
		}
		if slot.pos.Distance(pos) <= rng {
			out = append(out, HeroID(i+1))
		}
	}
	return out
}

// =============================================================================
// Monsters
// =============================================================================

func (b *Board) monsterSlot(id MonsterID) *monsterSlot {
	if id <= noMonster || int(id) > len(b.monsters) || b.monsters[id-1].monster == nil {
		panic(fmt.Sprintf("world: monster %d is not on the board", id))
	}
	return &b.monsters[id-1]
}

// MonsterID returns the handle of a monster on the board.
func (b *Board) MonsterID(m *entity.Monster) (MonsterID, bool) {
	id, ok := b.monsterIDs[m]
	return id, ok
}

// Monster returns the monster behind a handle, or nil if it is unknown or removed.
func (b *Board) Monster(id MonsterID) *entity.Monster {
	if id <= noMonster || int(id) > len(b.monsters) {
		return nil
	}
	return b.monsters[id-1].monster
}

// MonsterPosition returns where a monster stands, if it is on the board.
func (b *Board) MonsterPosition(id MonsterID) (Position, bool) {
	if b.Monster(id) == nil {
		return Position{}, false
	}
	return b.monsters[id-1].pos, true
}

// MonsterIDs returns the monsters on the board in id order.
func (b *Board) MonsterIDs() []MonsterID {
	ids := make([]MonsterID, 0, len(b.monsterIDs))
	for i, slot := range b.monsters {
		if slot.monster != nil {
			ids = append(ids, MonsterID(i+1))
		}
	}
	return ids
}

func (b *Board) monsterCanEnter(id MonsterID, target Position) bool {
	if !b.Inside(target) {
		return false
	}
	tile := b.tileAt(target)
	if !tile.MonsterPassable() {
		return false
	}
	return tile.monster == noMonster || tile.monster == id
}

// AddMonster places a monster at pos. A monster gets its handle the first
// time it is placed; placing a monster already on the board moves it.
// It fails, changing nothing, if pos is off the board, impassable, or held
// by another monster. Heroes on the tile do not block placement.
func (b *Board) AddMonster(m *entity.Monster, pos Position) (MonsterID, bool) {
	if m == nil {
		panic("world: nil monster")
	}
	id, known := b.monsterIDs[m]
	if !b.monsterCanEnter(id, pos) {
		return id, false
	}
	if !known {
		b.monsters = append(b.monsters, monsterSlot{monster: m, pos: pos})
		id = MonsterID(len(b.monsters))
		b.monsterIDs[m] = id
		b.tileAt(pos).monster = id
		return id, true
	}
	b.placeMonster(id, pos)
	return id, true
}

// MoveMonster steps a monster one tile under the AddMonster rules.
func (b *Board) MoveMonster(id MonsterID, dir Direction) bool {
	slot := b.monsterSlot(id)
	target := slot.pos.Step(dir)
	if !b.monsterCanEnter(id, target) {
		return false
	}
	b.placeMonster(id, target)
	return true
}

func (b *Board) placeMonster(id MonsterID, target Position) {
	slot := b.monsterSlot(id)
	b.tileAt(slot.pos).monster = noMonster
	b.tileAt(target).monster = id
	slot.pos = target
}

// RemoveMonster takes a monster off the board and retires its handle.
func (b *Board) RemoveMonster(id MonsterID) {
	slot := b.monsterSlot(id)
	b.tileAt(slot.pos).monster = noMonster
	delete(b.monsterIDs, slot.monster)
	*slot = monsterSlot{}
}

// MonstersInLane returns the monsters in a lane, closest to the hero nexus
// first. Monsters level with each other keep id order. This is the order in
// which monsters act.
func (b *Board) MonstersInLane(lane int) []MonsterID {
	b.mustLane(lane)
	var out []MonsterID
	for i, slot := range b.monsters {
		if slot.monster != nil && b.laneOf[slot.pos.Col] == lane {
			out = append(out, MonsterID(i+1))
		}
	}
	slices.SortStableFunc(out, func(a, c MonsterID) int {
		return b.monsters[c-1].pos.Row - b.monsters[a-1].pos.Row
	})
	return out
}
