package world

import (
	"context"
	"testing"

	"github.com/samdwyer/valor/internal/entity"
)

// plainBoard returns a board whose interior is all plain ground.
func plainBoard(t *testing.T) *Board {
	t.Helper()
	b := NewBoard(context.Background(), 1)
	for row := 1; row < b.Size()-1; row++ {
		for col := 0; col < b.Size(); col++ {
			if !isDivider(col) {
				setTerrain(b, Position{Row: row, Col: col}, TerrainPlain)
			}
		}
	}
	return b
}

func setTerrain(b *Board, pos Position, terrain TerrainType) {
	b.tileAt(pos).terrain = terrain
}

func newTestHero(name string) *entity.Hero {
	return entity.NewHero(name, entity.ClassWarrior, 100, 500, 400, 300, 0, 0)
}

func newTestMonster(name string) *entity.Monster {
	return entity.NewMonster(name, entity.SpeciesDragon, 1, 100, 100, 10)
}

func TestTerrainCountsSumToCandidates(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		b := NewBoard(context.Background(), seed)

		counts := make(map[TerrainType]int)
		candidates := 0
		for row := 0; row < b.Size(); row++ {
			for col := 0; col < b.Size(); col++ {
				tile := b.Tile(Position{Row: row, Col: col})
				if tile.Overlay() != OverlayNone {
					if tile.Terrain() != TerrainPlain {
						t.Errorf("seed %d: overlay tile (%d,%d) has terrain %v", seed, row, col, tile.Terrain())
					}
					continue
				}
				candidates++
				counts[tile.Terrain()]++
			}
		}

		if candidates != 36 {
			t.Fatalf("seed %d: %d candidate tiles, want 36", seed, candidates)
		}
		sum := 0
		for _, c := range counts {
			sum += c
		}
		if sum != candidates {
			t.Errorf("seed %d: terrain counts sum to %d, want %d", seed, sum, candidates)
		}
		for _, terrain := range []TerrainType{TerrainBush, TerrainCave, TerrainKoulou, TerrainObstacle} {
			if counts[terrain] != 5 {
				t.Errorf("seed %d: %v count = %d, want 5", seed, terrain, counts[terrain])
			}
		}
		if counts[TerrainPlain] != 16 {
			t.Errorf("seed %d: plain count = %d, want 16", seed, counts[TerrainPlain])
		}
	}
}

func TestTerrainDistribution(t *testing.T) {
	tests := []struct {
		n     int
		plain int
		other int
	}{
		{36, 16, 5},
		{10, 2, 2},
		{4, 0, 1},
		{0, 0, 0},
	}

	for _, tt := range tests {
		counts := terrainDistribution(tt.n)
		sum := 0
		for _, c := range counts {
			sum += c
		}
		if sum != tt.n {
			t.Errorf("terrainDistribution(%d) sums to %d", tt.n, sum)
		}
		if counts[TerrainPlain] != tt.plain {
			t.Errorf("terrainDistribution(%d) plain = %d, want %d", tt.n, counts[TerrainPlain], tt.plain)
		}
		if counts[TerrainBush] != tt.other {
			t.Errorf("terrainDistribution(%d) bush = %d, want %d", tt.n, counts[TerrainBush], tt.other)
		}
	}

	// Fewer tiles than terrain types: counts never go negative.
	counts := terrainDistribution(2)
	for terrain, c := range counts {
		if c < 0 {
			t.Errorf("terrainDistribution(2)[%v] = %d", terrain, c)
		}
	}
}

func TestSameSeedSameLayout(t *testing.T) {
	a := NewBoard(context.Background(), 42)
	b := NewBoard(context.Background(), 42)

	for row := 0; row < a.Size(); row++ {
		for col := 0; col < a.Size(); col++ {
			pos := Position{Row: row, Col: col}
			if a.Tile(pos).Terrain() != b.Tile(pos).Terrain() {
				t.Fatalf("seed 42 boards differ at %v", pos)
			}
		}
	}
}

func TestLayout(t *testing.T) {
	b := plainBoard(t)

	if b.LaneCount() != 3 {
		t.Fatalf("LaneCount() = %d, want 3", b.LaneCount())
	}
	want := [][]int{{0, 1}, {3, 4}, {6, 7}}
	for i, cols := range b.LaneColumns() {
		if len(cols) != 2 || cols[0] != want[i][0] || cols[1] != want[i][1] {
			t.Errorf("lane %d columns = %v, want %v", i, cols, want[i])
		}
	}

	laneOf := []int{0, 0, -1, 1, 1, -1, 2, 2}
	for col, lane := range laneOf {
		if got := b.LaneOf(col); got != lane {
			t.Errorf("LaneOf(%d) = %d, want %d", col, got, lane)
		}
	}
	if b.LaneOf(-1) != -1 || b.LaneOf(8) != -1 {
		t.Error("LaneOf off the board should be -1")
	}

	tests := []struct {
		pos     Position
		overlay TileOverlay
	}{
		{Position{0, 0}, OverlayMonsterNexus},
		{Position{0, 2}, OverlayInaccessible},
		{Position{7, 7}, OverlayHeroNexus},
		{Position{7, 5}, OverlayInaccessible},
		{Position{4, 2}, OverlayInaccessible},
		{Position{4, 3}, OverlayNone},
	}
	for _, tt := range tests {
		if got := b.Tile(tt.pos).Overlay(); got != tt.overlay {
			t.Errorf("Tile(%v).Overlay() = %v, want %v", tt.pos, got, tt.overlay)
		}
	}

	if got := b.HeroNexusEntry(1); got != (Position{7, 3}) {
		t.Errorf("HeroNexusEntry(1) = %v, want (7,3)", got)
	}
	if got := b.MonsterNexusEntry(2); got != (Position{0, 6}) {
		t.Errorf("MonsterNexusEntry(2) = %v, want (0,6)", got)
	}
	if !b.IsNexus(Position{0, 1}) || b.IsNexus(Position{3, 1}) {
		t.Error("IsNexus mismatch")
	}
}

func TestTileOutOfBoundsPanics(t *testing.T) {
	b := plainBoard(t)

	defer func() {
		if recover() == nil {
			t.Error("Tile(8,0) should panic")
		}
	}()
	b.Tile(Position{Row: 8, Col: 0})
}

func TestHeroMovesNorthOntoKoulou(t *testing.T) {
	b := plainBoard(t)
	setTerrain(b, Position{Row: 6, Col: 0}, TerrainKoulou)

	h := newTestHero("Gaerdal")
	ids := b.RegisterHeroes([]*entity.Hero{h})
	id := ids[0]

	if !b.AddHero(id, Position{Row: 7, Col: 0}) {
		t.Fatal("AddHero(7,0) failed")
	}
	if !b.MoveHero(id, North) {
		t.Fatal("MoveHero(North) failed")
	}

	pos, ok := b.HeroPosition(id)
	if !ok || pos != (Position{Row: 6, Col: 0}) {
		t.Errorf("HeroPosition() = %v, %v, want (6,0)", pos, ok)
	}
	if !closeTo(h.Strength, 500*TerrainBuffMultiplier) {
		t.Errorf("Strength = %v, want %v", h.Strength, 500*TerrainBuffMultiplier)
	}
	if h.Agility != 400 || h.Dexterity != 300 {
		t.Errorf("other stats changed: agi %v dex %v", h.Agility, h.Dexterity)
	}
	if snap, ok := b.BuffSnapshot(id); !ok || snap.Strength != 500 {
		t.Errorf("BuffSnapshot() = %+v, %v", snap, ok)
	}

	// Back to plain ground drops the buff.
	if !b.MoveHero(id, South) {
		t.Fatal("MoveHero(South) failed")
	}
	if h.Strength != 500 {
		t.Errorf("Strength after leaving koulou = %v, want 500", h.Strength)
	}
	if _, ok := b.BuffSnapshot(id); ok {
		t.Error("snapshot should be gone on plain ground")
	}
}

func TestHeroCannotEnterDividerColumn(t *testing.T) {
	b := plainBoard(t)
	h := newTestHero("Muamman")
	id := b.RegisterHeroes([]*entity.Hero{h})[0]

	if b.AddHero(id, Position{Row: 7, Col: 2}) {
		t.Error("AddHero onto column 2 should fail")
	}
	if b.HeroOnBoard(id) {
		t.Error("failed AddHero should leave the hero off the board")
	}

	for row := 0; row < b.Size(); row++ {
		start := Position{Row: row, Col: 1}
		if !b.AddHero(id, start) {
			t.Fatalf("AddHero(%v) failed", start)
		}
		if b.MoveHero(id, East) {
			t.Errorf("row %d: move onto column 2 succeeded", row)
		}
		if pos, _ := b.HeroPosition(id); pos != start {
			t.Errorf("row %d: position = %v, want %v", row, pos, start)
		}
		if _, ok := b.Tile(Position{Row: row, Col: 2}).HeroOccupant(); ok {
			t.Errorf("row %d: divider tile holds a hero", row)
		}
	}
}

func TestHeroMoveRejections(t *testing.T) {
	b := plainBoard(t)
	h1 := newTestHero("A")
	h2 := newTestHero("B")
	ids := b.RegisterHeroes([]*entity.Hero{h1, h2})

	b.AddHero(ids[0], Position{Row: 7, Col: 0})
	b.AddHero(ids[1], Position{Row: 6, Col: 0})

	if b.MoveHero(ids[0], North) {
		t.Error("move onto another hero should fail")
	}
	if b.MoveHero(ids[0], South) {
		t.Error("move off the board should fail")
	}
	setTerrain(b, Position{Row: 5, Col: 0}, TerrainObstacle)
	if b.MoveHero(ids[1], North) {
		t.Error("move onto an obstacle should fail")
	}
	if pos, _ := b.HeroPosition(ids[1]); pos != (Position{Row: 6, Col: 0}) {
		t.Errorf("rejected move changed position to %v", pos)
	}

	// Sharing with a monster is fine.
	m := newTestMonster("Natsunomeryu")
	b.AddMonster(m, Position{Row: 6, Col: 1})
	if !b.MoveHero(ids[1], East) {
		t.Error("move onto a monster's tile should succeed")
	}
	tile := b.Tile(Position{Row: 6, Col: 1})
	if hid, ok := tile.HeroOccupant(); !ok || hid != ids[1] {
		t.Errorf("HeroOccupant() = %v, %v", hid, ok)
	}
	if _, ok := tile.MonsterOccupant(); !ok {
		t.Error("monster should still be on the shared tile")
	}
	if _, ok := b.Tile(Position{Row: 6, Col: 0}).HeroOccupant(); ok {
		t.Error("old tile still holds the hero")
	}
}

func TestUnregisteredHeroPanics(t *testing.T) {
	b := plainBoard(t)

	defer func() {
		if recover() == nil {
			t.Error("AddHero with an unregistered id should panic")
		}
	}()
	b.AddHero(HeroID(3), Position{Row: 7, Col: 0})
}

func TestRemoveHeroRevertsBuffAndRetires(t *testing.T) {
	b := plainBoard(t)
	setTerrain(b, Position{Row: 6, Col: 3}, TerrainCave)
	h := newTestHero("Skye")
	id := b.RegisterHeroes([]*entity.Hero{h})[0]

	b.AddHero(id, Position{Row: 6, Col: 3})
	if !closeTo(h.Agility, 400*TerrainBuffMultiplier) {
		t.Fatalf("Agility = %v, want buffed", h.Agility)
	}

	b.RemoveHero(id)

	if h.Agility != 400 {
		t.Errorf("Agility after removal = %v, want 400", h.Agility)
	}
	if b.Hero(id) != nil || b.HeroOnBoard(id) {
		t.Error("removed hero still resolvable")
	}
	if _, ok := b.HeroID(h); ok {
		t.Error("HeroID should forget a removed hero")
	}
	if _, ok := b.Tile(Position{Row: 6, Col: 3}).HeroOccupant(); ok {
		t.Error("tile still holds the removed hero")
	}
	if len(b.HeroIDs()) != 0 {
		t.Errorf("HeroIDs() = %v, want empty", b.HeroIDs())
	}
}

func TestWithBaseStatsKeepsLevelUp(t *testing.T) {
	b := plainBoard(t)
	setTerrain(b, Position{Row: 6, Col: 0}, TerrainKoulou)
	h := newTestHero("Amaryllis")
	id := b.RegisterHeroes([]*entity.Hero{h})[0]
	b.AddHero(id, Position{Row: 6, Col: 0})

	b.WithBaseStats(id, func(h *entity.Hero) { h.LevelUp() })

	base := 500 * 1.05 * 1.05
	snap, ok := b.BuffSnapshot(id)
	if !ok || !closeTo(snap.Strength, base) {
		t.Errorf("snapshot strength = %v, want %v", snap.Strength, base)
	}
	if !closeTo(h.Strength, base*TerrainBuffMultiplier) {
		t.Errorf("Strength = %v, want %v", h.Strength, base*TerrainBuffMultiplier)
	}

	b.MoveHero(id, South)
	if !closeTo(h.Strength, base) {
		t.Errorf("Strength on plain = %v, want %v", h.Strength, base)
	}
}

func TestHeroesInRangeStaysInLane(t *testing.T) {
	b := plainBoard(t)
	near := newTestHero("Near")
	across := newTestHero("Across")
	far := newTestHero("Far")
	ids := b.RegisterHeroes([]*entity.Hero{near, across, far})

	b.AddHero(ids[0], Position{Row: 4, Col: 1})
	b.AddHero(ids[1], Position{Row: 3, Col: 3}) // lane 1, two columns away
	b.AddHero(ids[2], Position{Row: 6, Col: 0})

	got := b.HeroesInRange(Position{Row: 3, Col: 1}, 1)
	if len(got) != 1 || got[0] != ids[0] {
		t.Errorf("HeroesInRange(range 1) = %v, want [%d]", got, ids[0])
	}

	got = b.HeroesInRange(Position{Row: 3, Col: 1}, 10)
	if len(got) != 2 || got[0] != ids[0] || got[1] != ids[2] {
		t.Errorf("HeroesInRange(range 10) = %v, want [%d %d]", got, ids[0], ids[2])
	}
	for _, id := range got {
		pos, _ := b.HeroPosition(id)
		if b.LaneOf(pos.Col) != 0 {
			t.Errorf("hero %d from lane %d returned for lane 0", id, b.LaneOf(pos.Col))
		}
	}

	if got := b.HeroesInRange(Position{Row: 3, Col: 2}, 10); len(got) != 0 {
		t.Errorf("HeroesInRange from a divider = %v, want none", got)
	}
}

func TestMonsterIDsAreNeverReused(t *testing.T) {
	b := plainBoard(t)
	m1 := newTestMonster("One")
	m2 := newTestMonster("Two")

	id1, ok := b.AddMonster(m1, Position{Row: 0, Col: 0})
	if !ok || id1 != 1 {
		t.Fatalf("AddMonster(m1) = %d, %v, want 1, true", id1, ok)
	}
	if _, ok := b.AddMonster(m2, Position{Row: 0, Col: 0}); ok {
		t.Error("two monsters on one tile")
	}
	if _, ok := b.MonsterID(m2); ok {
		t.Error("a failed placement should not assign an id")
	}

	b.RemoveMonster(id1)
	if b.Monster(id1) != nil {
		t.Error("removed monster still resolvable")
	}

	id2, ok := b.AddMonster(m2, Position{Row: 0, Col: 0})
	if !ok || id2 != 2 {
		t.Errorf("AddMonster(m2) = %d, %v, want 2, true", id2, ok)
	}
	id3, _ := b.AddMonster(m1, Position{Row: 0, Col: 1})
	if id3 != 3 {
		t.Errorf("re-added monster id = %d, want 3", id3)
	}
	if got := b.MonsterIDs(); len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("MonsterIDs() = %v, want [2 3]", got)
	}
}

func TestMoveMonster(t *testing.T) {
	b := plainBoard(t)
	id, _ := b.AddMonster(newTestMonster("Walker"), Position{Row: 3, Col: 1})

	if !b.MoveMonster(id, South) {
		t.Fatal("MoveMonster(South) failed")
	}
	if pos, _ := b.MonsterPosition(id); pos != (Position{Row: 4, Col: 1}) {
		t.Errorf("MonsterPosition() = %v, want (4,1)", pos)
	}
	if b.MoveMonster(id, East) {
		t.Error("monster moved onto a divider")
	}
	if _, ok := b.Tile(Position{Row: 3, Col: 1}).MonsterOccupant(); ok {
		t.Error("old tile still holds the monster")
	}
}

func TestMonstersInLaneOrder(t *testing.T) {
	b := plainBoard(t)
	rows := []Position{{1, 0}, {5, 1}, {3, 0}, {6, 0}, {2, 1}}
	for i, pos := range rows {
		if _, ok := b.AddMonster(newTestMonster("M"), pos); !ok {
			t.Fatalf("AddMonster #%d at %v failed", i, pos)
		}
	}
	b.AddMonster(newTestMonster("Other lane"), Position{Row: 7, Col: 3})

	got := b.MonstersInLane(0)
	if len(got) != len(rows) {
		t.Fatalf("MonstersInLane(0) has %d monsters, want %d", len(got), len(rows))
	}
	prev := b.Size()
	for _, id := range got {
		pos, _ := b.MonsterPosition(id)
		if pos.Row >= prev {
			t.Errorf("MonstersInLane(0) not strictly descending: %v", got)
		}
		prev = pos.Row
	}

	// Level monsters keep id order.
	b2 := plainBoard(t)
	a, _ := b2.AddMonster(newTestMonster("A"), Position{Row: 2, Col: 4})
	c, _ := b2.AddMonster(newTestMonster("C"), Position{Row: 2, Col: 3})
	if got := b2.MonstersInLane(1); len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("MonstersInLane(1) = %v, want [%d %d]", got, a, c)
	}
}

func TestInvalidLanePanics(t *testing.T) {
	b := plainBoard(t)

	defer func() {
		if recover() == nil {
			t.Error("MonstersInLane(3) should panic")
		}
	}()
	b.MonstersInLane(3)
}

func TestClearObstacleIsIdempotent(t *testing.T) {
	b := plainBoard(t)
	pos := Position{Row: 4, Col: 6}
	setTerrain(b, pos, TerrainObstacle)

	if !b.ClearObstacle(pos) {
		t.Error("first ClearObstacle should report a clear")
	}
	if b.Tile(pos).Terrain() != TerrainPlain {
		t.Errorf("terrain after clear = %v, want plain", b.Tile(pos).Terrain())
	}
	if b.ClearObstacle(pos) {
		t.Error("second ClearObstacle should report no obstacle")
	}
	if b.Tile(pos).Terrain() != TerrainPlain {
		t.Errorf("terrain after second clear = %v, want plain", b.Tile(pos).Terrain())
	}
}
