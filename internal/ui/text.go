package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/samdwyer/valor/internal/entity"
	"github.com/samdwyer/valor/internal/game"
	"github.com/samdwyer/valor/internal/world"
)

const textCellWidth = 6

// baseSymbol is the character a tile shows when nobody stands on it.
// Overlays win over terrain.
func baseSymbol(t world.Tile) rune {
	switch t.Overlay() {
	case world.OverlayHeroNexus, world.OverlayMonsterNexus:
		return 'N'
	case world.OverlayInaccessible:
		return 'I'
	default:
		return t.Terrain().Symbol()
	}
}

// cellToken describes a tile: "H1/M2" when shared, "H1-K" or "M2-P" for a
// single occupant, " P " when empty.
func cellToken(t world.Tile) string {
	hero, hasHero := t.HeroOccupant()
	monster, hasMonster := t.MonsterOccupant()
	sym := string(baseSymbol(t))
	switch {
	case hasHero && hasMonster:
		return fmt.Sprintf("H%d/M%d", hero, monster)
	case hasHero:
		return fmt.Sprintf("H%d-%s", hero, sym)
	case hasMonster:
		return fmt.Sprintf("M%d-%s", monster, sym)
	default:
		return " " + sym + " "
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderToString draws the board as a bordered text grid.
func RenderToString(b *world.Board) string {
	var sb strings.Builder
	horizontal := strings.Repeat("+"+strings.Repeat("-", textCellWidth), b.Size()) + "+\n"
	for row := 0; row < b.Size(); row++ {
		sb.WriteString(horizontal)
		for col := 0; col < b.Size(); col++ {
			sb.WriteByte('|')
			sb.WriteString(pad(cellToken(b.Tile(world.Position{Row: row, Col: col})), textCellWidth))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(horizontal)
	return sb.String()
}

// heroStatus is one roster line under the board.
func heroStatus(id world.HeroID, h *entity.Hero) string {
	return fmt.Sprintf("H%d %-18s HP:%-6.1f Lvl:%d", id, h.Name, h.HP, h.Level)
}

// TextView prints the session as plain text. Pair it with game.LineInput.
type TextView struct {
	out io.Writer
}

// NewTextView creates a text view writing to out.
func NewTextView(out io.Writer) *TextView {
	return &TextView{out: out}
}

// ShowRoster lists the selectable heroes, numbered from 1.
func (v *TextView) ShowRoster(heroes []*entity.Hero) {
	fmt.Fprintln(v.out, "Available heroes:")
	for i, h := range heroes {
		fmt.Fprintf(v.out, "%2d) %-20s %-9s Lvl:%d HP:%-5.0f STR:%-5.0f AGI:%-5.0f DEX:%-5.0f\n",
			i+1, h.Name, h.Class, h.Level, h.HP, h.Strength, h.Agility, h.Dexterity)
	}
}

// ShowBoard prints the grid followed by one status line per fielded hero.
func (v *TextView) ShowBoard(b *world.Board, party *entity.Party) {
	fmt.Fprint(v.out, RenderToString(b))
	if party == nil {
		return
	}
	for _, h := range party.Heroes {
		if id, ok := b.HeroID(h); ok {
			fmt.Fprintln(v.out, heroStatus(id, h))
		}
	}
}

// Say prints one narration line.
func (v *TextView) Say(tone game.Tone, text string) {
	fmt.Fprintln(v.out, text)
}
