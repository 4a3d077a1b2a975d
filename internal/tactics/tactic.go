package tactics

// Tactic is the squad's behavioral mode.
type Tactic int

const (
	TacticAssault Tactic = iota
	TacticSiege
	TacticRaid
	TacticDefend
	TacticRetreat
)

func (t Tactic) String() string {
	switch t {
	case TacticAssault:
		return "assault"
	case TacticSiege:
		return "siege"
	case TacticRaid:
		return "raid"
	case TacticDefend:
		return "defend"
	case TacticRetreat:
		return "retreat"
	default:
		return "unknown"
	}
}

// defendRadius is the advisory leash around the rally point in defend mode.
// Members drift beyond it while fighting; the nudge applies only when idle.
const defendRadius = 3

// dispatch routes one tick of behavior through the active tactic. The
// fallback arm makes a corrupted tactic value visible instead of silently
// idling: the squad holds at rally and the log records the bad value.
func (sq *Squad) dispatch() {
	switch sq.cfg.Tactic {
	case TacticAssault:
		sq.runAssault(false)
	case TacticSiege:
		sq.runAssault(true)
	case TacticRaid:
		sq.runRaid()
	case TacticDefend:
		sq.runDefend()
	case TacticRetreat:
		sq.runRetreat()
	default:
		sq.log.Add(sq.world.Tick(), sq.label(), sq.team.String(), "tactic", "unknown", sq.cfg.Tactic.String(), float64(sq.cfg.Tactic))
		sq.holdAtRally()
	}
}

// runAssault moves everyone in formation and throws every role at the
// prioritized target list. Under siege the dismantlers work structures
// instead of riding along idle.
func (sq *Squad) runAssault(siege bool) {
	targets := sq.identifyTargets()
	for _, m := range sq.members {
		sq.moveInFormation(m)
		sq.executeRole(m, targets, siege)
	}
}

// runRaid is hit-and-run: lock the single top-priority target, everyone
// fights it until the reference resolves to nothing, then fall back to
// rally and re-acquire. At most one target is locked at any time.
func (sq *Squad) runRaid() {
	if sq.lockedTarget != nil && !sq.lockedTarget.Alive() {
		sq.releaseLock()
	}
	if sq.lockedTarget == nil {
		targets := sq.identifyTargets()
		if len(targets) == 0 {
			sq.holdAtRally()
			return
		}
		sq.acquireLock(targets[0])
	}

	locked := []CombatTarget{*sq.lockedTarget}
	for _, m := range sq.members {
		sq.moveInFormation(m)
		sq.executeRole(m, locked, false)
	}
}

// runDefend engages whatever shows up within engage range of the rally
// point while nudging idle members back inside the defend radius. The
// radius is advisory: a member mid-fight can drift past it.
func (sq *Squad) runDefend() {
	var targets []CombatTarget
	for _, t := range sq.identifyTargets() {
		if sq.cfg.EngageRange <= 0 || t.Pos().Range(sq.cfg.RallyPoint.Pos) <= sq.cfg.EngageRange {
			targets = append(targets, t)
		}
	}

	for _, m := range sq.members {
		if len(targets) > 0 {
			sq.executeRole(m, targets, false)
			continue
		}
		sq.nudgeTowardRally(m)
	}
}

// runRetreat sends everyone to the rally point. Healers patch wounds on the
// way; ranged members give covering fire without pursuing.
func (sq *Squad) runRetreat() {
	for _, m := range sq.members {
		sq.nudgeTowardRally(m)
		switch m.role {
		case RoleHealer:
			sq.retreatHeal(m)
		case RoleRanged:
			sq.coveringFire(m)
		}
	}
}

// holdAtRally is pure movement: everyone converges on the rally point.
func (sq *Squad) holdAtRally() {
	for _, m := range sq.members {
		sq.nudgeTowardRally(m)
	}
}

// nudgeTowardRally steps one member toward the rally point, crossing zones
// when needed. Unreachable routes skip movement for the tick.
func (sq *Squad) nudgeTowardRally(m *SquadMember) {
	u := m.unit
	rp := sq.cfg.RallyPoint
	if rp.Zone != "" && u.Zone != rp.Zone {
		u.MoveTowardZone(rp.Zone)
		return
	}
	if u.Pos.Range(rp.Pos) > defendRadius {
		u.MoveTo(rp.Pos)
	}
}

// retreatHeal is the healer's retreat behavior: heal the most wounded ally
// in reach without breaking off the withdrawal.
func (sq *Squad) retreatHeal(m *SquadMember) {
	u := m.unit
	for _, t := range sq.woundedAlliesNear(u) {
		if t == u {
			continue
		}
		if u.Pos.Range(t.Pos) <= healRange {
			u.Heal(t)
		} else {
			u.RangedHeal(t)
		}
		return
	}
	if u.Hits < u.HitsMax {
		u.Heal(u)
	}
}
