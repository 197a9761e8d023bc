// Package combat provides the strike math used on the lane board.
package combat

import "fmt"

const (
	heroDodgePerAgility  = 0.002
	heroDodgeCap         = 0.5
	heroStrikeScale      = 0.05
	monsterDodgeScale    = 0.01
	monsterDefenseScale  = 0.02
	goldPerMonsterLevel  = 100.0
	experiencePerMonster = 2.0
)

// Combatant is anything that can be hit.
type Combatant interface {
	GetName() string
	GetHP() float64
	IsFainted() bool
	TakeDamage(amount float64) float64 // Returns actual damage taken
}

// Hero is the hero side of a fight.
type Hero interface {
	Combatant
	GetStrength() float64
	GetAgility() float64
	WeaponDamage() float64
	DamageReduction() float64
}

// Monster is the monster side of a fight.
type Monster interface {
	Combatant
	GetLevel() int
	GetBaseDamage() float64
	GetDefense() float64
	GetDodge() float64
}

// Result contains the outcome of one strike.
type Result struct {
	Dodged  bool
	Damage  float64 // Damage actually taken
	Fainted bool    // True if the strike dropped the target to zero HP
	Message string  // Human-readable description
}

// Source yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Resolver rolls dodges and applies damage. Its source is the only
// randomness in a fight, so a seeded resolver replays identically.
type Resolver struct {
	rng Source
}

// NewResolver creates a resolver drawing from rng.
func NewResolver(rng Source) *Resolver {
	return &Resolver{rng: rng}
}

// HeroDodgeChance returns the probability a hero evades a monster's attack.
func HeroDodgeChance(h Hero) float64 {
	return min(h.GetAgility()*heroDodgePerAgility, heroDodgeCap)
}

// MonsterDodgeChance returns the probability a monster evades a hero's strike.
func MonsterDodgeChance(m Monster) float64 {
	return m.GetDodge() * monsterDodgeScale
}

// MonsterDamage returns what a monster's hit does to a hero after armor.
func MonsterDamage(m Monster, h Hero) float64 {
	return max(0, m.GetBaseDamage()-h.DamageReduction())
}

// StrikeDamage returns what a hero's strike does to a monster after defense.
func StrikeDamage(h Hero, m Monster) float64 {
	raw := (h.GetStrength() + h.WeaponDamage()) * heroStrikeScale
	return max(0, raw-m.GetDefense()*monsterDefenseScale)
}

// Reward returns the gold and experience a hero earns for a kill.
func Reward(m Monster) (gold, experience float64) {
	return float64(m.GetLevel()) * goldPerMonsterLevel, experiencePerMonster
}

func (r *Resolver) roll(chance float64) bool {
	return r.rng.Float64() < chance
}

// MonsterAttack resolves a monster attacking a hero.
func (r *Resolver) MonsterAttack(m Monster, h Hero) Result {
	if r.roll(HeroDodgeChance(h)) {
		return Result{
			Dodged:  true,
			Message: fmt.Sprintf("%s attacks %s but misses.", m.GetName(), h.GetName()),
		}
	}
	return hit(m, h, MonsterDamage(m, h), "has fallen")
}

// HeroStrike resolves a hero striking a monster.
func (r *Resolver) HeroStrike(h Hero, m Monster) Result {
	if r.roll(MonsterDodgeChance(m)) {
		return Result{
			Dodged:  true,
			Message: fmt.Sprintf("%s attacks %s but %s dodges.", h.GetName(), m.GetName(), m.GetName()),
		}
	}
	return hit(h, m, StrikeDamage(h, m), "is defeated")
}

func hit(attacker, target Combatant, damage float64, downed string) Result {
	actual := target.TakeDamage(damage)
	res := Result{
		Damage:  actual,
		Fainted: target.IsFainted(),
		Message: fmt.Sprintf("%s hits %s for %.1f damage.", attacker.GetName(), target.GetName(), actual),
	}
	if res.Fainted {
		res.Message += fmt.Sprintf(" %s %s.", target.GetName(), downed)
	}
	return res
}
