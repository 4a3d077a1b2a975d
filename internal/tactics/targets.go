package tactics

import "sort"

// CombatTarget is an ephemeral scored target, rebuilt from the battlefield
// every tick. Exactly one of Unit/Structure is set.
type CombatTarget struct {
	Unit        *Unit
	Structure   *Structure
	Priority    int // lower = attacked first
	ThreatLevel float64
}

// Alive reports whether the target reference still resolves to something.
func (t CombatTarget) Alive() bool {
	if t.Unit != nil {
		return t.Unit.Alive()
	}
	return t.Structure.Alive()
}

// Pos returns the target's cell.
func (t CombatTarget) Pos() Point {
	if t.Unit != nil {
		return t.Unit.Pos
	}
	return t.Structure.Pos
}

// Zone returns the target's zone.
func (t CombatTarget) Zone() string {
	if t.Unit != nil {
		return t.Unit.Zone
	}
	return t.Structure.Zone
}

// Label describes the target for log lines.
func (t CombatTarget) Label() string {
	if t.Unit != nil {
		return unitLabel(t.Unit)
	}
	return t.Structure.Type.String()
}

// Unit priority scoring: every capability a hostile carries makes it more
// urgent (lower number), being wounded makes it easier, and distance from
// the leader deprioritizes stragglers.
const (
	unitBasePriority      = 50
	healCapabilityBonus   = 20
	meleeCapabilityBonus  = 15
	rangedCapabilityBonus = 15
	woundedBonus          = 10
)

func unitPriority(u *Unit, from Point) int {
	p := unitBasePriority
	if u.CanHeal() {
		p -= healCapabilityBonus
	}
	if u.CanMelee() {
		p -= meleeCapabilityBonus
	}
	if u.CanRanged() {
		p -= rangedCapabilityBonus
	}
	if u.Hits*2 < u.HitsMax {
		p -= woundedBonus
	}
	return p + u.Pos.Range(from)
}

// identifyTargets scans the leader's current zone for hostile units and
// attackable hostile structures, scores them, and returns the combined list
// sorted ascending by priority. Stable sort keeps scan order for ties.
func (sq *Squad) identifyTargets() []CombatTarget {
	if sq.leader == nil {
		return nil
	}
	lead := sq.leader.unit
	var out []CombatTarget

	for _, u := range sq.world.HostileUnitsIn(sq.team, lead.Zone) {
		out = append(out, CombatTarget{
			Unit:        u,
			Priority:    unitPriority(u, lead.Pos),
			ThreatLevel: u.ThreatLevel(),
		})
	}
	for _, s := range sq.world.HostileStructuresIn(sq.team, lead.Zone) {
		out = append(out, CombatTarget{
			Structure:   s,
			Priority:    s.Type.basePriority(),
			ThreatLevel: s.ThreatLevel(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// siegeStructureTargets returns hostile structures worth dismantling:
// everything except control markers and fortifications, sorted by the fixed
// per-type priority.
func (sq *Squad) siegeStructureTargets() []CombatTarget {
	if sq.leader == nil {
		return nil
	}
	var out []CombatTarget
	for _, s := range sq.world.HostileStructuresIn(sq.team, sq.leader.unit.Zone) {
		if s.Type.isFortification() {
			continue
		}
		out = append(out, CombatTarget{
			Structure:   s,
			Priority:    s.Type.basePriority(),
			ThreatLevel: s.ThreatLevel(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}
