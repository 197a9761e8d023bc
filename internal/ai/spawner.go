package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/valor/internal/entity"
	"github.com/samdwyer/valor/internal/telemetry"
	"github.com/samdwyer/valor/internal/world"
)

// DefaultSpawnInterval is the number of rounds between waves.
const DefaultSpawnInterval = 8

// ErrInvalidInterval is returned for a spawn interval below one.
var ErrInvalidInterval = errors.New("spawn interval must be positive")

// Factory produces a fresh monster of the given level for a lane.
// It may return nil when it has nothing to offer.
type Factory interface {
	MonsterForLane(lane, level int) *entity.Monster
}

// FactoryFunc adapts a plain function to Factory.
type FactoryFunc func(lane, level int) *entity.Monster

// MonsterForLane calls f.
func (f FactoryFunc) MonsterForLane(lane, level int) *entity.Monster {
	return f(lane, level)
}

// Spawner releases a wave of monsters every interval rounds.
type Spawner struct {
	interval int
	round    int
	log      logrus.FieldLogger
}

// NewSpawner creates a spawner. The interval must be at least one.
func NewSpawner(interval int, log logrus.FieldLogger) (*Spawner, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, interval)
	}
	return &Spawner{interval: interval, log: log}, nil
}

// Round returns how many rounds the spawner has seen.
func (s *Spawner) Round() int {
	return s.round
}

// Interval returns the number of rounds between waves.
func (s *Spawner) Interval() int {
	return s.interval
}

// OnRoundStart counts a round and, on every interval-th round, places at
// most one monster per lane on the monster nexus. Each monster matches the
// highest hero level on the roster. A lane whose spawn slots are both taken
// is skipped for this wave.
func (s *Spawner) OnRoundStart(ctx context.Context, b *world.Board, factory Factory, roster *entity.Party) []string {
	s.round++
	if s.round%s.interval != 0 {
		return nil
	}

	tracer := telemetry.Tracer("ai")
	_, span := tracer.Start(ctx, "spawner.wave")
	defer span.End()

	level := roster.MaxLevel()
	var lines []string
	spawned := 0
	for lane, cols := range b.LaneColumns() {
		slot, ok := freeSpawnSlot(b, cols)
		if !ok {
			s.log.WithField("lane", lane).Debug("spawn blocked")
			lines = append(lines, fmt.Sprintf("Lane %d spawn blocked.", lane+1))
			continue
		}

		m := factory.MonsterForLane(lane, level)
		if m == nil {
			lines = append(lines, fmt.Sprintf("No monster available for lane %d.", lane+1))
			continue
		}

		id, placed := b.AddMonster(m, slot)
		if !placed {
			lines = append(lines, fmt.Sprintf("Lane %d spawn blocked.", lane+1))
			continue
		}
		spawned++
		s.log.WithFields(logrus.Fields{
			"lane":       lane,
			"monster_id": id,
			"name":       m.Name,
			"level":      m.Level,
		}).Info("monster spawned")
		lines = append(lines, fmt.Sprintf("%s emerges in lane %d.", m.Name, lane+1))
	}

	span.SetAttributes(
		attribute.Int("spawn.round", s.round),
		attribute.Int("spawn.level", level),
		attribute.Int("spawn.count", spawned),
	)
	return lines
}

// freeSpawnSlot returns the first column on row 0 without a monster.
func freeSpawnSlot(b *world.Board, cols []int) (world.Position, bool) {
	for _, col := range cols {
		pos := world.Position{Row: 0, Col: col}
		tile := b.Tile(pos)
		if _, taken := tile.MonsterOccupant(); taken || !tile.MonsterPassable() {
			continue
		}
		return pos, true
	}
	return world.Position{}, false
}
