package gamedata

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/samdwyer/valor/internal/entity"
)

// MonsterFactory stamps out spawn-ready monsters from the registry's
// templates. The lane does not influence the pick.
type MonsterFactory struct {
	registry *MonsterRegistry
	rng      *rand.Rand
}

// NewMonsterFactory creates a factory drawing templates with rng.
func NewMonsterFactory(registry *MonsterRegistry, rng *rand.Rand) *MonsterFactory {
	return &MonsterFactory{registry: registry, rng: rng}
}

// MonsterForLane returns a random template scaled to level, or nil when
// there are no templates.
func (f *MonsterFactory) MonsterForLane(lane, level int) *entity.Monster {
	m := f.registry.Random(f.rng)
	if m == nil {
		return nil
	}
	m.ScaleTo(level)
	return m
}

// NewSeed generates a random session seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
