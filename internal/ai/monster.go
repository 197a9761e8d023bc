// Package ai drives the monster side of a lane battle: per-round monster
// turns and interval-gated wave spawning.
package ai

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/valor/internal/combat"
	"github.com/samdwyer/valor/internal/entity"
	"github.com/samdwyer/valor/internal/telemetry"
	"github.com/samdwyer/valor/internal/world"
)

// AttackRange is how far, in lane-confined Manhattan distance, a monster reaches.
const AttackRange = 1

// MonsterAI decides and resolves every monster's action for a round.
type MonsterAI struct {
	resolver *combat.Resolver
	log      logrus.FieldLogger
}

// NewMonsterAI creates the monster AI. All dodge rolls come from resolver.
func NewMonsterAI(resolver *combat.Resolver, log logrus.FieldLogger) *MonsterAI {
	return &MonsterAI{resolver: resolver, log: log}
}

// PerformRound gives every monster one turn: lanes in index order, and
// within a lane the monster closest to the hero nexus first. It returns the
// narration for the round in order.
func (a *MonsterAI) PerformRound(ctx context.Context, b *world.Board) []string {
	tracer := telemetry.Tracer("ai")
	_, span := tracer.Start(ctx, "monsters.round")
	defer span.End()

	var lines []string
	turns := 0
	for lane := 0; lane < b.LaneCount(); lane++ {
		for _, id := range b.MonstersInLane(lane) {
			turns++
			if line := a.TakeTurn(b, id); line != "" {
				lines = append(lines, line)
			}
		}
	}

	span.SetAttributes(
		attribute.Int("monsters.turns", turns),
		attribute.Int("monsters.actions", len(lines)),
	)
	return lines
}

// TakeTurn makes one monster attack the weakest hero in reach, or advance
// one tile south when nobody is in reach. A monster no longer on the board
// does nothing and yields an empty line.
func (a *MonsterAI) TakeTurn(b *world.Board, id world.MonsterID) string {
	m := b.Monster(id)
	pos, ok := b.MonsterPosition(id)
	if m == nil || !ok {
		return ""
	}

	if targets := b.HeroesInRange(pos, AttackRange); len(targets) > 0 {
		return a.attack(b, id, m, weakest(b, targets))
	}
	return a.advance(b, id, m, pos)
}

// weakest returns the candidate with the lowest current HP. Ties go to the
// earliest candidate.
func weakest(b *world.Board, candidates []world.HeroID) world.HeroID {
	best := candidates[0]
	for _, id := range candidates[1:] {
		if b.Hero(id).GetHP() < b.Hero(best).GetHP() {
			best = id
		}
	}
	return best
}

func (a *MonsterAI) attack(b *world.Board, id world.MonsterID, m *entity.Monster, target world.HeroID) string {
	hero := b.Hero(target)
	res := a.resolver.MonsterAttack(m, hero)

	a.log.WithFields(logrus.Fields{
		"monster_id": id,
		"hero_id":    target,
		"dodged":     res.Dodged,
		"damage":     res.Damage,
		"hero_hp":    hero.HP,
	}).Debug("monster attack")

	if res.Fainted {
		b.RemoveHero(target)
		a.log.WithField("hero_id", target).Info("hero fainted")
	}
	return res.Message
}

func (a *MonsterAI) advance(b *world.Board, id world.MonsterID, m *entity.Monster, pos world.Position) string {
	next := pos.Step(world.South)
	if b.Inside(next) {
		// Monsters never push past a hero, even though they may share its tile.
		if _, blocked := b.Tile(next).HeroOccupant(); !blocked && b.MoveMonster(id, world.South) {
			a.log.WithFields(logrus.Fields{"monster_id": id, "to": next.String()}).Debug("monster advanced")
			return fmt.Sprintf("%s advances.", m.Name)
		}
	}
	a.log.WithField("monster_id", id).Debug("monster blocked")
	return fmt.Sprintf("%s waits.", m.Name)
}
