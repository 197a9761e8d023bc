// Package game runs a Legends of Valor session: hero selection, positioning
// and the round loop of hero, spawn, monster and prune phases.
package game

// State is the controller's current phase.
type State int

const (
	// StateSelectingHeroes waits for the player to pick one hero per lane.
	StateSelectingHeroes State = iota
	// StatePositioning drops the chosen heroes onto their nexus entries.
	StatePositioning
	// StateHeroPhase reads commands until the player ends the phase.
	StateHeroPhase
	StateSpawnPhase
	StateMonsterPhase
	StatePrunePhase
	// StateEnded is terminal.
	StateEnded
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateSelectingHeroes:
		return "selecting_heroes"
	case StatePositioning:
		return "positioning"
	case StateHeroPhase:
		return "hero_phase"
	case StateSpawnPhase:
		return "spawn_phase"
	case StateMonsterPhase:
		return "monster_phase"
	case StatePrunePhase:
		return "prune_phase"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}
