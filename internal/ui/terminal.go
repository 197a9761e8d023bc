package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/valor/internal/entity"
	"github.com/samdwyer/valor/internal/game"
	"github.com/samdwyer/valor/internal/world"
)

// visibleLines is how many narration lines stay on screen.
const visibleLines = 10

type logEntry struct {
	tone game.Tone
	text string
}

// Terminal is the interactive tcell front end. It is both the game's View
// and its Input: digits pick a hero, arrows move it, x then an arrow
// clears an obstacle next to it, f attacks, enter ends the turn.
type Terminal struct {
	screen   *Screen
	renderer *Renderer

	board  *world.Board
	party  *entity.Party
	roster []*entity.Hero
	log    []logEntry

	prompt   game.Prompt
	active   int
	clearing bool
	status   string
}

// NewTerminal creates a terminal front end on screen.
func NewTerminal(screen *Screen) *Terminal {
	return &Terminal{
		screen:   screen,
		renderer: NewRenderer(screen),
		active:   1,
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Close()
}

// ShowRoster implements game.View.
func (t *Terminal) ShowRoster(heroes []*entity.Hero) {
	t.roster = heroes
	t.draw()
}

// ShowBoard implements game.View.
func (t *Terminal) ShowBoard(b *world.Board, party *entity.Party) {
	t.board = b
	t.party = party
	t.draw()
}

// Say implements game.View.
func (t *Terminal) Say(tone game.Tone, text string) {
	t.log = append(t.log, logEntry{tone: tone, text: text})
	if len(t.log) > visibleLines {
		t.log = t.log[len(t.log)-visibleLines:]
	}
	t.draw()
}

// Next implements game.Input. It blocks on terminal events until a key
// completes a command, the screen closes, or ctx is cancelled.
func (t *Terminal) Next(ctx context.Context, p game.Prompt) (game.Command, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	t.prompt = p
	t.draw()
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return game.Command{}, io.EOF
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return game.Command{}, err
			}
		case *tcell.EventResize:
			t.screen.Sync()
			t.draw()
		case *tcell.EventKey:
			if cmd, ok := t.handleKey(ev.Key(), ev.Rune()); ok {
				t.status = ""
				return cmd, nil
			}
			t.draw()
		}
	}
}

// WaitForKey shows a closing hint and blocks until any key is pressed.
func (t *Terminal) WaitForKey() {
	t.status = "Press any key to exit."
	t.prompt = game.Prompt{State: game.StateEnded}
	t.draw()
	for {
		switch t.screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		case *tcell.EventResize:
			t.screen.Sync()
			t.draw()
		}
	}
}

func (t *Terminal) handleKey(key tcell.Key, r rune) (game.Command, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Command{Kind: game.CmdQuit}, true
	case tcell.KeyUp:
		return t.directional(world.North)
	case tcell.KeyDown:
		return t.directional(world.South)
	case tcell.KeyLeft:
		return t.directional(world.West)
	case tcell.KeyRight:
		return t.directional(world.East)
	case tcell.KeyEnter:
		if t.prompt.State == game.StateHeroPhase {
			return game.Command{Kind: game.CmdEnd}, true
		}
	case tcell.KeyRune:
		return t.handleRune(r)
	}
	return game.Command{}, false
}

func (t *Terminal) handleRune(r rune) (game.Command, bool) {
	if r == 'q' || r == 'Q' {
		return game.Command{Kind: game.CmdQuit}, true
	}

	if r >= '0' && r <= '9' {
		n := int(r - '0')
		if n == 0 {
			n = 10
		}
		switch t.prompt.State {
		case game.StateSelectingHeroes:
			return game.Command{Kind: game.CmdSelect, N: n}, true
		case game.StateHeroPhase:
			t.active = n
			t.clearing = false
			t.status = fmt.Sprintf("Hero %d selected.", n)
		}
		return game.Command{}, false
	}

	if t.prompt.State != game.StateHeroPhase {
		return game.Command{}, false
	}
	switch r {
	case 'x', 'X':
		t.clearing = true
		t.status = "Clear which direction?"
	case 'f', 'F':
		return game.Command{Kind: game.CmdAttack, N: t.active}, true
	case 'e', 'E':
		return game.Command{Kind: game.CmdEnd}, true
	}
	return game.Command{}, false
}

// directional turns an arrow into a move of the active hero, or into a
// clear of the neighbouring tile when x was pressed first.
func (t *Terminal) directional(dir world.Direction) (game.Command, bool) {
	if t.prompt.State != game.StateHeroPhase {
		return game.Command{}, false
	}
	if !t.clearing {
		return game.Command{Kind: game.CmdMove, N: t.active, Dir: dir}, true
	}

	t.clearing = false
	if t.board == nil {
		return game.Command{}, false
	}
	pos, ok := t.board.HeroPosition(world.HeroID(t.active))
	if !ok {
		t.status = fmt.Sprintf("Hero %d is not on the board.", t.active)
		return game.Command{}, false
	}
	return game.Command{Kind: game.CmdClear, Pos: pos.Step(dir)}, true
}

func (t *Terminal) draw() {
	t.screen.Clear()

	y := 0
	switch {
	case t.prompt.State == game.StateSelectingHeroes && t.roster != nil:
		y = t.renderer.DrawRoster(t.roster)
	case t.board != nil:
		w, h := t.renderer.DrawBoard(t.board)
		t.renderer.DrawParty(t.board, t.party, world.HeroID(t.active), w+2, 0)
		y = h
	}
	y++

	for _, e := range t.log {
		t.renderer.DrawLine(0, y, e.tone, e.text)
		y++
	}
	y++

	hint := tcell.StyleDefault.Foreground(tcell.ColorGray)
	t.screen.DrawText(0, y, t.help(), hint)
	if t.status != "" {
		t.screen.DrawText(0, y+1, t.status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	t.screen.Show()
}

func (t *Terminal) help() string {
	switch t.prompt.State {
	case game.StateSelectingHeroes:
		return "1-9, 0 pick a hero | q quit"
	case game.StateHeroPhase:
		return fmt.Sprintf("Hero %d | digits pick hero | arrows move | x+arrow clear | f attack | enter end turn | q quit", t.active)
	default:
		return ""
	}
}
