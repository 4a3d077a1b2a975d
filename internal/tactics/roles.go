package tactics

import "sort"

// Role fixes a member's combat behavior at add-time.
type Role int

const (
	RoleAttacker Role = iota
	RoleHealer
	RoleRanged
	RoleTank
	RoleDismantler
)

func (r Role) String() string {
	switch r {
	case RoleAttacker:
		return "attacker"
	case RoleHealer:
		return "healer"
	case RoleRanged:
		return "ranged"
	case RoleTank:
		return "tank"
	case RoleDismantler:
		return "dismantler"
	default:
		return "unknown"
	}
}

// Ranged stand-off band: advance beyond it, kite inside it.
const (
	standoffMax      = 3 // advance when farther than this
	standoffMin      = 2 // back off when closer than this
	massAttackNearby = 3 // hostiles within range 3 to justify an area attack
)

// executeRole dispatches one member's combat action against the sorted
// target list. Dismantlers act only under siege; under any other tactic
// they hold formation and contribute nothing.
func (sq *Squad) executeRole(m *SquadMember, targets []CombatTarget, siege bool) {
	switch m.role {
	case RoleAttacker:
		sq.runAttacker(m, targets)
	case RoleRanged:
		sq.runRanged(m, targets)
	case RoleHealer:
		sq.runHealer(m)
	case RoleTank:
		sq.runTank(m, targets)
	case RoleDismantler:
		if siege {
			sq.runDismantler(m)
		}
	}
}

func attackTarget(u *Unit, t CombatTarget) {
	if t.Unit != nil {
		u.Attack(t.Unit)
		return
	}
	u.AttackStructure(t.Structure)
}

func rangedAttackTarget(u *Unit, t CombatTarget) {
	if t.Unit != nil {
		u.RangedAttack(t.Unit)
		return
	}
	u.RangedAttackStructure(t.Structure)
}

// runAttacker closes to melee on the top target. The ranged strike is
// issued against the same target regardless of range — units may carry both
// capabilities, and an out-of-range command is a harmless no-op.
func (sq *Squad) runAttacker(m *SquadMember, targets []CombatTarget) {
	if len(targets) == 0 {
		return
	}
	top := targets[0]
	u := m.unit
	if u.Zone != top.Zone() {
		return
	}
	if u.Pos.Range(top.Pos()) > meleeRange {
		u.MoveTo(top.Pos())
	} else {
		attackTarget(u, top)
	}
	rangedAttackTarget(u, top)
}

// runRanged holds the stand-off band and prefers an area attack when the
// member is crowded by three or more hostiles.
func (sq *Squad) runRanged(m *SquadMember, targets []CombatTarget) {
	if len(targets) == 0 {
		return
	}
	top := targets[0]
	u := m.unit
	if u.Zone != top.Zone() {
		return
	}

	r := u.Pos.Range(top.Pos())
	if r > standoffMax {
		u.MoveTo(top.Pos())
	} else if r < standoffMin {
		u.MoveTo(u.Pos.StepAway(top.Pos()))
	}

	if len(sq.world.HostileUnitsInRange(sq.team, u.Zone, u.Pos, massAttackNearby)) >= 3 {
		u.RangedMassAttack()
		return
	}
	rangedAttackTarget(u, top)
}

// woundedAlliesNear returns own-faction units within radius 3 with health
// below max, most wounded first (health fraction ascending).
func (sq *Squad) woundedAlliesNear(u *Unit) []*Unit {
	var wounded []*Unit
	for _, a := range sq.world.FriendlyUnitsInRange(sq.team, u.Zone, u.Pos, 3) {
		if a.Hits < a.HitsMax {
			wounded = append(wounded, a)
		}
	}
	sort.SliceStable(wounded, func(i, j int) bool {
		fi := float64(wounded[i].Hits) / float64(wounded[i].HitsMax)
		fj := float64(wounded[j].Hits) / float64(wounded[j].HitsMax)
		return fi < fj
	})
	return wounded
}

// runHealer tends the most wounded nearby ally, self-healing when nobody
// else needs it.
func (sq *Squad) runHealer(m *SquadMember) {
	u := m.unit
	wounded := sq.woundedAlliesNear(u)
	for _, t := range wounded {
		if t == u {
			continue
		}
		if u.Pos.Range(t.Pos) <= healRange {
			u.Heal(t)
		} else {
			u.RangedHeal(t)
			u.MoveTo(t.Pos)
		}
		return
	}
	if u.Hits < u.HitsMax {
		u.Heal(u)
	}
}

// runTank closes to melee on the top target to draw aggression. Same
// movement rule as the attacker, without the ranged fallback.
func (sq *Squad) runTank(m *SquadMember, targets []CombatTarget) {
	if len(targets) == 0 {
		return
	}
	top := targets[0]
	u := m.unit
	if u.Zone != top.Zone() {
		return
	}
	if u.Pos.Range(top.Pos()) > meleeRange {
		u.MoveTo(top.Pos())
		return
	}
	attackTarget(u, top)
}

// runDismantler tears down the highest-value hostile structure, skipping
// control markers and fortifications.
func (sq *Squad) runDismantler(m *SquadMember) {
	targets := sq.siegeStructureTargets()
	if len(targets) == 0 {
		return
	}
	top := targets[0].Structure
	u := m.unit
	if u.Zone != top.Zone {
		return
	}
	if u.Pos.Range(top.Pos) > meleeRange {
		u.MoveTo(top.Pos)
		return
	}
	u.Dismantle(top)
}

// coveringFire is the ranged member's retreat behavior: opportunistic shots
// at hostiles within range 3, never pursuing.
func (sq *Squad) coveringFire(m *SquadMember) {
	u := m.unit
	hostiles := sq.world.HostileUnitsInRange(sq.team, u.Zone, u.Pos, rangedRange)
	if len(hostiles) == 0 {
		return
	}
	if len(hostiles) >= 3 {
		u.RangedMassAttack()
		return
	}
	u.RangedAttack(hostiles[0])
}
