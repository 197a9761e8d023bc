package game

import (
	"github.com/samdwyer/valor/internal/entity"
	"github.com/samdwyer/valor/internal/world"
)

// Tone classifies a narration line so a view can colour it.
type Tone int

const (
	ToneInfo Tone = iota
	ToneRound
	ToneSpawn
	ToneMonster
	ToneNotice
	ToneError
)

// View presents the session to the player. Implementations only read the
// board and party they are given.
type View interface {
	ShowRoster(heroes []*entity.Hero)
	ShowBoard(b *world.Board, party *entity.Party)
	Say(tone Tone, text string)
}
