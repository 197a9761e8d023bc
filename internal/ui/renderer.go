package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/valor/internal/entity"
	"github.com/samdwyer/valor/internal/game"
	"github.com/samdwyer/valor/internal/gamedata"
	"github.com/samdwyer/valor/internal/world"
)

// Terminal cells are one column wider than the token to leave a gap.
const cellStride = textCellWidth + 1

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// DrawBoard draws the grid at the top-left corner and returns the area it
// covered.
func (r *Renderer) DrawBoard(b *world.Board) (width, height int) {
	for row := 0; row < b.Size(); row++ {
		for col := 0; col < b.Size(); col++ {
			tile := b.Tile(world.Position{Row: row, Col: col})
			style := r.cellStyle(b, tile)
			r.screen.DrawText(col*cellStride, row, pad(cellToken(tile), textCellWidth), style)
		}
	}
	return b.Size() * cellStride, b.Size()
}

// cellStyle colours occupants over terrain: heroes in yellow, monsters in
// their species colour, a shared tile in red.
func (r *Renderer) cellStyle(b *world.Board, tile world.Tile) tcell.Style {
	_, hasHero := tile.HeroOccupant()
	monster, hasMonster := tile.MonsterOccupant()
	switch {
	case hasHero && hasMonster:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case hasHero:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case hasMonster:
		return tcell.StyleDefault.Foreground(gamedata.SpeciesColor(b.Monster(monster).Species))
	}
	return tileStyle(tile)
}

// tileStyle returns the appropriate style for an empty tile.
func tileStyle(tile world.Tile) tcell.Style {
	switch tile.Overlay() {
	case world.OverlayInaccessible:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.OverlayHeroNexus, world.OverlayMonsterNexus:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	}
	switch tile.Terrain() {
	case world.TerrainBush:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case world.TerrainCave:
		return tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	case world.TerrainKoulou:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	case world.TerrainObstacle:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Bold(true)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

// DrawParty lists the fielded heroes starting at (x, y). The active hero
// is highlighted.
func (r *Renderer) DrawParty(b *world.Board, party *entity.Party, active world.HeroID, x, y int) {
	if party == nil {
		return
	}
	for _, h := range party.Heroes {
		id, ok := b.HeroID(h)
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if id == active {
			style = style.Foreground(tcell.ColorYellow).Bold(true)
		}
		r.screen.DrawText(x, y, heroStatus(id, h), style)
		y++
	}
}

// DrawRoster lists the selectable heroes from the top of the screen and
// returns the number of rows used.
func (r *Renderer) DrawRoster(heroes []*entity.Hero) int {
	r.screen.DrawText(0, 0, "Choose your heroes:", tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	for i, h := range heroes {
		key := rune('1' + i)
		if i == 9 {
			key = '0'
		}
		x := r.screen.DrawText(0, i+1, string(key)+") ", tcell.StyleDefault.Foreground(tcell.ColorYellow))
		x = r.screen.DrawText(x, i+1, pad(h.Name, 22), tcell.StyleDefault.Foreground(tcell.ColorWhite))
		r.screen.DrawText(x, i+1, pad(h.Class.String(), 10), tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	return len(heroes) + 1
}

// DrawLine writes one narration line in its tone's colour.
func (r *Renderer) DrawLine(x, y int, tone game.Tone, text string) {
	r.screen.DrawText(x, y, text, toneStyle(tone))
}

func toneStyle(tone game.Tone) tcell.Style {
	switch tone {
	case game.ToneRound:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case game.ToneSpawn:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case game.ToneMonster:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case game.ToneNotice:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkCyan).Bold(true)
	case game.ToneError:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
}
