package entity

// Party is the player's active roster of heroes.
// Order is selection order, which is also lane order at positioning time.
type Party struct {
	Heroes []*Hero
}

// NewParty creates a party from the selected heroes.
func NewParty(heroes ...*Hero) *Party {
	return &Party{Heroes: append([]*Hero(nil), heroes...)}
}

// Size returns the number of heroes still on the roster.
func (p *Party) Size() int {
	return len(p.Heroes)
}

// IsEmpty returns true once every hero has been pruned.
func (p *Party) IsEmpty() bool {
	return len(p.Heroes) == 0
}

// Contains reports whether the hero is on the roster.
func (p *Party) Contains(h *Hero) bool {
	for _, existing := range p.Heroes {
		if existing == h {
			return true
		}
	}
	return false
}

// MaxLevel returns the highest hero level, or 1 for an empty party.
func (p *Party) MaxLevel() int {
	level := 1
	for i, h := range p.Heroes {
		if i == 0 || h.Level > level {
			level = h.Level
		}
	}
	return level
}

// Prune removes every hero for which drop returns true and returns the removed heroes.
func (p *Party) Prune(drop func(*Hero) bool) []*Hero {
	kept := p.Heroes[:0]
	var removed []*Hero
	for _, h := range p.Heroes {
		if drop(h) {
			removed = append(removed, h)
			continue
		}
		kept = append(kept, h)
	}
	p.Heroes = kept
	return removed
}
