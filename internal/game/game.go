package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/valor/internal/ai"
	"github.com/samdwyer/valor/internal/combat"
	"github.com/samdwyer/valor/internal/entity"
	"github.com/samdwyer/valor/internal/gamedata"
	"github.com/samdwyer/valor/internal/telemetry"
	"github.com/samdwyer/valor/internal/world"
)

// Game holds the entire session state.
type Game struct {
	cfg       Config
	seed      int64
	sessionID string
	log       logrus.FieldLogger

	input Input
	view  View

	board    *world.Board
	roster   []*entity.Hero
	party    *entity.Party
	ids      []world.HeroID
	factory  ai.Factory
	source   combat.Source
	resolver *combat.Resolver
	monsters *ai.MonsterAI
	spawner  *ai.Spawner

	state State
	round int
}

// Option customises a Game at construction.
type Option func(*Game)

// WithBoard plays on b instead of generating a board from the seed.
func WithBoard(b *world.Board) Option {
	return func(g *Game) { g.board = b }
}

// WithRoster offers heroes for selection instead of the embedded roster.
func WithRoster(heroes []*entity.Hero) Option {
	return func(g *Game) { g.roster = heroes }
}

// WithFactory spawns monsters from f instead of the embedded templates.
func WithFactory(f ai.Factory) Option {
	return func(g *Game) { g.factory = f }
}

// WithCombatSource rolls dodges from src instead of the session RNG.
func WithCombatSource(src combat.Source) Option {
	return func(g *Game) { g.source = src }
}

// New creates a session. data may be nil when both WithRoster and
// WithFactory are given.
func New(cfg Config, data *gamedata.Data, input Input, view View, log logrus.FieldLogger, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = gamedata.NewSeed(); err != nil {
			return nil, err
		}
	}

	spawner, err := ai.NewSpawner(cfg.SpawnInterval, log.WithField("component", "spawner"))
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		seed:      seed,
		sessionID: uuid.NewString(),
		log:       log,
		input:     input,
		view:      view,
		spawner:   spawner,
		state:     StateSelectingHeroes,
	}
	for _, opt := range opts {
		opt(g)
	}

	rng := rand.New(rand.NewSource(seed))
	if g.roster == nil {
		if data == nil {
			return nil, errors.New("no hero roster: game data not loaded")
		}
		if g.roster, err = data.Heroes.Roster(data.Items); err != nil {
			return nil, fmt.Errorf("build roster: %w", err)
		}
	}
	if g.factory == nil {
		if data == nil {
			return nil, errors.New("no monster factory: game data not loaded")
		}
		g.factory = gamedata.NewMonsterFactory(data.Monsters, rng)
	}
	if g.source == nil {
		g.source = rng
	}
	g.resolver = combat.NewResolver(g.source)
	g.monsters = ai.NewMonsterAI(g.resolver, log.WithField("component", "ai"))
	return g, nil
}

// Seed returns the session seed.
func (g *Game) Seed() int64 { return g.seed }

// SessionID returns the unique id of this session.
func (g *Game) SessionID() string { return g.sessionID }

// State returns the current phase.
func (g *Game) State() State { return g.state }

// Round returns the number of rounds started so far.
func (g *Game) Round() int { return g.round }

// Board returns the session board, or nil before Run.
func (g *Game) Board() *world.Board { return g.board }

// Party returns the fielded heroes, or nil before selection.
func (g *Game) Party() *entity.Party { return g.party }

// Run plays the session until every hero is gone or the player quits.
// Quitting is not an error.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", g.sessionID),
		attribute.Int64("session.seed", g.seed),
	)

	g.log.WithFields(logrus.Fields{
		"session_id": g.sessionID,
		"seed":       g.seed,
	}).Info("session started")

	if g.board == nil {
		g.board = world.NewBoard(ctx, g.seed)
	}

	err := g.play(ctx)
	g.state = StateEnded
	if err != nil && !errors.Is(err, ErrQuit) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	standing := g.summarize()
	span.SetAttributes(
		attribute.Int("session.rounds", g.round),
		attribute.Int("session.standing", standing),
		attribute.Bool("session.quit", errors.Is(err, ErrQuit)),
	)
	return nil
}

func (g *Game) play(ctx context.Context) error {
	if err := g.selectHeroes(ctx); err != nil {
		return err
	}
	g.positionHeroes()

	for !g.party.IsEmpty() {
		if err := g.playRound(ctx); err != nil {
			return err
		}
	}
	g.view.Say(ToneNotice, "All heroes have fallen.")
	return nil
}

// next asks the input for a command, folding every way of leaving the
// session into ErrQuit. A *CommandError is passed through.
func (g *Game) next(ctx context.Context, p Prompt) (Command, error) {
	cmd, err := g.input.Next(ctx, p)
	switch {
	case err == nil && cmd.Kind == CmdQuit:
		return Command{}, ErrQuit
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Command{}, ErrQuit
	}
	return cmd, err
}

// selectHeroes fields one hero per lane, either from the configured
// roster numbers or by asking the player.
func (g *Game) selectHeroes(ctx context.Context) error {
	g.state = StateSelectingHeroes
	want := min(g.board.LaneCount(), len(g.roster))
	if want == 0 {
		return errors.New("hero roster is empty")
	}

	var chosen []*entity.Hero
	if len(g.cfg.Heroes) > 0 {
		var err error
		if chosen, err = g.preselected(want); err != nil {
			return err
		}
	} else {
		g.view.ShowRoster(g.roster)
		taken := make(map[int]bool, want)
		for len(chosen) < want {
			cmd, err := g.next(ctx, Prompt{
				State: StateSelectingHeroes,
				Text:  fmt.Sprintf("Select hero for lane %d: ", len(chosen)+1),
			})
			var cerr *CommandError
			if errors.As(err, &cerr) || (err == nil && cmd.Kind != CmdSelect) {
				g.view.Say(ToneError, "Invalid input.")
				continue
			}
			if err != nil {
				return err
			}
			if cmd.N < 1 || cmd.N > len(g.roster) {
				g.view.Say(ToneError, "Number out of range.")
				continue
			}
			if taken[cmd.N] {
				g.view.Say(ToneError, "Hero already selected.")
				continue
			}
			taken[cmd.N] = true
			h := g.roster[cmd.N-1]
			chosen = append(chosen, h)
			g.view.Say(ToneInfo, fmt.Sprintf("%s will hold lane %d.", h.Name, len(chosen)))
		}
	}

	g.ids = g.board.RegisterHeroes(chosen)
	g.party = entity.NewParty(chosen...)
	for i, h := range chosen {
		g.log.WithFields(logrus.Fields{
			"hero_id": g.ids[i],
			"name":    h.Name,
			"class":   h.Class.ID(),
		}).Info("hero selected")
	}
	return nil
}

func (g *Game) preselected(want int) ([]*entity.Hero, error) {
	if len(g.cfg.Heroes) != want {
		return nil, fmt.Errorf("need %d preselected heroes, got %d", want, len(g.cfg.Heroes))
	}
	chosen := make([]*entity.Hero, 0, want)
	taken := make(map[int]bool, want)
	for _, n := range g.cfg.Heroes {
		if n < 1 || n > len(g.roster) {
			return nil, fmt.Errorf("hero number %d out of range 1..%d", n, len(g.roster))
		}
		if taken[n] {
			return nil, fmt.Errorf("hero number %d selected twice", n)
		}
		taken[n] = true
		chosen = append(chosen, g.roster[n-1])
	}
	return chosen, nil
}

// positionHeroes places the hero of lane i on that lane's nexus entry.
func (g *Game) positionHeroes() {
	g.state = StatePositioning
	for lane, id := range g.ids {
		pos := g.board.HeroNexusEntry(lane)
		if !g.board.AddHero(id, pos) {
			g.log.WithFields(logrus.Fields{
				"hero_id": id,
				"lane":    lane,
			}).Warn("hero could not be placed")
		}
	}
}

// summarize reports the end of the session and returns the heroes standing.
func (g *Game) summarize() int {
	var names []string
	if g.party != nil {
		for _, h := range g.party.Heroes {
			names = append(names, h.Name)
		}
	}

	g.view.Say(ToneInfo, fmt.Sprintf("Rounds played: %d", g.round))
	if len(names) == 0 {
		g.view.Say(ToneInfo, "No heroes left standing.")
	} else {
		g.view.Say(ToneInfo, "Heroes standing: "+strings.Join(names, ", "))
	}
	g.view.Say(ToneInfo, "Legends of Valor session ended.")

	g.log.WithFields(logrus.Fields{
		"session_id": g.sessionID,
		"rounds":     g.round,
		"standing":   len(names),
	}).Info("session ended")
	return len(names)
}
