package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/valor/internal/ai"
	"github.com/samdwyer/valor/internal/combat"
	"github.com/samdwyer/valor/internal/entity"
	"github.com/samdwyer/valor/internal/telemetry"
	"github.com/samdwyer/valor/internal/world"
)

const heroPrompt = "Command (move <id> <N|S|E|W> | clear <row> <col> | attack <id> | end | quit): "

// playRound runs one full round. It returns ErrQuit if the player quits
// during the hero phase; the remaining phases are then skipped.
func (g *Game) playRound(ctx context.Context) error {
	g.round++
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "round")
	defer span.End()
	span.SetAttributes(
		attribute.Int("round", g.round),
		attribute.Int("party.size", g.party.Size()),
	)
	g.log.WithField("round", g.round).Debug("round started")

	g.view.Say(ToneRound, fmt.Sprintf("-- Round %d --", g.round))
	g.view.ShowBoard(g.board, g.party)

	if err := g.heroPhase(ctx); err != nil {
		return err
	}
	g.spawnPhase(ctx)
	g.monsterPhase(ctx)
	g.prunePhase(ctx)
	return nil
}

// heroPhase reads commands until the player ends the phase or quits.
func (g *Game) heroPhase(ctx context.Context) error {
	g.state = StateHeroPhase
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "phase.heroes")
	defer span.End()

	actions := 0
	defer func() { span.SetAttributes(attribute.Int("heroes.actions", actions)) }()

	for {
		cmd, err := g.next(ctx, Prompt{State: StateHeroPhase, Text: heroPrompt})
		var cerr *CommandError
		if errors.As(err, &cerr) {
			g.view.Say(ToneError, cerr.Msg)
			continue
		}
		if err != nil {
			return err
		}

		switch cmd.Kind {
		case CmdMove:
			if g.moveHero(cmd) {
				actions++
			}
		case CmdClear:
			if g.clearObstacle(cmd.Pos) {
				actions++
			}
		case CmdAttack:
			if g.attack(cmd.N) {
				actions++
			}
		case CmdEnd:
			g.announceHeroesAtNexus()
			return nil
		default:
			g.view.Say(ToneError, "Unknown command.")
		}
	}
}

// lookupHero resolves a player-typed hero id to a hero on the board.
func (g *Game) lookupHero(n int) (world.HeroID, bool) {
	id := world.HeroID(n)
	if g.board.Hero(id) == nil || !g.board.HeroOnBoard(id) {
		g.view.Say(ToneError, fmt.Sprintf("Hero with id %d not found.", n))
		return 0, false
	}
	return id, true
}

func (g *Game) moveHero(cmd Command) bool {
	id, ok := g.lookupHero(cmd.N)
	if !ok {
		return false
	}
	if !g.board.MoveHero(id, cmd.Dir) {
		g.view.Say(ToneError, "Cannot move hero in that direction.")
		return false
	}
	pos, _ := g.board.HeroPosition(id)
	g.log.WithFields(logrus.Fields{
		"round":   g.round,
		"hero_id": id,
		"dir":     cmd.Dir.String(),
		"pos":     pos.String(),
	}).Debug("hero moved")
	g.view.ShowBoard(g.board, g.party)
	return true
}

func (g *Game) clearObstacle(pos world.Position) bool {
	if !g.board.Inside(pos) {
		g.view.Say(ToneError, "Position out of bounds.")
		return false
	}
	if !g.board.ClearObstacle(pos) {
		g.view.Say(ToneError, "No obstacle at that location.")
		return false
	}
	g.log.WithFields(logrus.Fields{
		"round": g.round,
		"pos":   pos.String(),
	}).Debug("obstacle cleared")
	g.view.Say(ToneInfo, "Obstacle cleared. Terrain is now plain.")
	g.view.ShowBoard(g.board, g.party)
	return true
}

// attack has the hero strike the lowest-HP monster within reach in its lane.
// A slain monster leaves the board and pays its reward; any level-up is
// applied to the hero's unbuffed stats.
func (g *Game) attack(n int) bool {
	id, ok := g.lookupHero(n)
	if !ok {
		return false
	}
	pos, _ := g.board.HeroPosition(id)
	target, ok := g.targetFor(pos)
	if !ok {
		g.view.Say(ToneError, "No monster in range.")
		return false
	}

	hero := g.board.Hero(id)
	m := g.board.Monster(target)
	res := g.resolver.HeroStrike(hero, m)
	g.view.Say(ToneInfo, res.Message)
	if !res.Fainted {
		return true
	}

	g.board.RemoveMonster(target)
	gold, xp := combat.Reward(m)
	hero.AddGold(gold)
	levels := 0
	g.board.WithBaseStats(id, func(h *entity.Hero) {
		levels = h.GainExperience(xp)
	})
	g.log.WithFields(logrus.Fields{
		"round":      g.round,
		"hero_id":    id,
		"monster_id": target,
		"gold":       gold,
		"levels":     levels,
	}).Info("monster slain")

	g.view.Say(ToneInfo, fmt.Sprintf("%s earns %.0f gold and %.0f experience.", hero.Name, gold, xp))
	if levels > 0 {
		g.view.Say(ToneNotice, fmt.Sprintf("%s reached level %d!", hero.Name, hero.Level))
	}
	g.view.ShowBoard(g.board, g.party)
	return true
}

// targetFor returns the weakest monster in the lane of pos within attack
// range. Ties go to the monster the lane order lists first.
func (g *Game) targetFor(pos world.Position) (world.MonsterID, bool) {
	var best world.MonsterID
	bestHP := 0.0
	for _, mid := range g.board.MonstersInLane(g.board.LaneOf(pos.Col)) {
		mpos, _ := g.board.MonsterPosition(mid)
		if pos.Distance(mpos) > ai.AttackRange {
			continue
		}
		if hp := g.board.Monster(mid).HP; best == 0 || hp < bestHP {
			best, bestHP = mid, hp
		}
	}
	return best, best != 0
}

func (g *Game) announceHeroesAtNexus() {
	for _, id := range g.board.HeroIDs() {
		pos, ok := g.board.HeroPosition(id)
		if !ok || g.board.Tile(pos).Overlay() != world.OverlayMonsterNexus {
			continue
		}
		g.view.Say(ToneNotice, fmt.Sprintf("%s has reached the monsters' nexus!", g.board.Hero(id).Name))
	}
}

func (g *Game) spawnPhase(ctx context.Context) {
	g.state = StateSpawnPhase
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "phase.spawn")
	defer span.End()

	for _, line := range g.spawner.OnRoundStart(ctx, g.board, g.factory, g.party) {
		g.view.Say(ToneSpawn, line)
	}
	span.SetAttributes(attribute.Int("monsters.on_board", len(g.board.MonsterIDs())))
}

func (g *Game) monsterPhase(ctx context.Context) {
	g.state = StateMonsterPhase
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "phase.monsters")
	defer span.End()

	for _, line := range g.monsters.PerformRound(ctx, g.board) {
		g.view.Say(ToneMonster, line)
	}

	for _, mid := range g.board.MonsterIDs() {
		pos, _ := g.board.MonsterPosition(mid)
		if g.board.Tile(pos).Overlay() == world.OverlayHeroNexus {
			g.view.Say(ToneNotice, fmt.Sprintf("%s has reached the heroes' nexus!", g.board.Monster(mid).Name))
		}
	}
}

// prunePhase drops heroes that fainted or are no longer on the board.
func (g *Game) prunePhase(ctx context.Context) {
	g.state = StatePrunePhase
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "phase.prune")
	defer span.End()

	removed := g.party.Prune(func(h *entity.Hero) bool {
		id, ok := g.board.HeroID(h)
		return !ok || h.IsFainted() || !g.board.HeroOnBoard(id)
	})
	for _, h := range removed {
		if id, ok := g.board.HeroID(h); ok {
			g.board.RemoveHero(id)
		}
		g.log.WithFields(logrus.Fields{
			"round": g.round,
			"name":  h.Name,
		}).Info("hero pruned")
		g.view.Say(ToneNotice, fmt.Sprintf("%s leaves the battle.", h.Name))
	}
	span.SetAttributes(
		attribute.Int("prune.removed", len(removed)),
		attribute.Int("party.size", g.party.Size()),
	)
}
