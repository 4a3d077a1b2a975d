package tactics

// Team distinguishes friendly vs opposing force.
type Team int

const (
	TeamRed  Team = iota // friendly
	TeamBlue             // OpFor
)

func (t Team) String() string {
	if t == TeamRed {
		return "red"
	}
	return "blue"
}

// Point is a cell coordinate inside one zone's grid.
type Point struct {
	X, Y int
}

// Range returns the grid (Chebyshev) distance between two points.
func (p Point) Range(o Point) int {
	dx := p.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// StepToward returns p advanced one cell toward target (diagonals allowed).
func (p Point) StepToward(target Point) Point {
	next := p
	if target.X > p.X {
		next.X++
	} else if target.X < p.X {
		next.X--
	}
	if target.Y > p.Y {
		next.Y++
	} else if target.Y < p.Y {
		next.Y--
	}
	return next
}

// StepAway returns p retreated one cell directly away from threat,
// clamped to the zone bounds by the caller's move resolution.
func (p Point) StepAway(threat Point) Point {
	next := p
	if threat.X > p.X {
		next.X--
	} else if threat.X < p.X {
		next.X++
	}
	if threat.Y > p.Y {
		next.Y--
	} else if threat.Y < p.Y {
		next.Y++
	}
	return next
}

// Unit is an autonomous agent on the battlefield. Its combat capabilities
// derive from part counts; commands are recorded as intents and resolved by
// the World at the end of the tick.
type Unit struct {
	ID      int
	Team    Team
	Zone    string
	Pos     Point
	Hits    int
	HitsMax int

	MeleeParts  int
	RangedParts int
	HealParts   int
	WorkParts   int

	world *World
	alive bool
}

// Alive reports whether the unit still exists in the world.
func (u *Unit) Alive() bool {
	return u != nil && u.alive && u.Hits > 0
}

func (u *Unit) CanMelee() bool  { return u.MeleeParts > 0 }
func (u *Unit) CanRanged() bool { return u.RangedParts > 0 }
func (u *Unit) CanHeal() bool   { return u.HealParts > 0 }
func (u *Unit) CanWork() bool   { return u.WorkParts > 0 }

// ThreatLevel estimates the unit's combat danger, independent of proximity.
func (u *Unit) ThreatLevel() float64 {
	return float64(u.MeleeParts)*2 + float64(u.RangedParts)*1.5 + float64(u.HealParts)*1
}

// --- Command intents ---
// Every command degrades to a no-op when the target is gone or out of range;
// validation happens at resolution, not at issue time.

// Attack queues a melee strike (range 1).
func (u *Unit) Attack(target *Unit) {
	u.world.queueAction(action{kind: actAttack, actor: u, targetUnit: target})
}

// AttackStructure queues a melee strike against a structure.
func (u *Unit) AttackStructure(target *Structure) {
	u.world.queueAction(action{kind: actAttack, actor: u, targetStruct: target})
}

// RangedAttack queues a ranged strike (range 3).
func (u *Unit) RangedAttack(target *Unit) {
	u.world.queueAction(action{kind: actRangedAttack, actor: u, targetUnit: target})
}

// RangedAttackStructure queues a ranged strike against a structure.
func (u *Unit) RangedAttackStructure(target *Structure) {
	u.world.queueAction(action{kind: actRangedAttack, actor: u, targetStruct: target})
}

// RangedMassAttack queues an area strike hitting every hostile within range 3,
// with damage falling off by distance.
func (u *Unit) RangedMassAttack() {
	u.world.queueAction(action{kind: actMassAttack, actor: u})
}

// Heal queues an adjacent heal (range 1).
func (u *Unit) Heal(target *Unit) {
	u.world.queueAction(action{kind: actHeal, actor: u, targetUnit: target})
}

// RangedHeal queues a weaker heal at range 3.
func (u *Unit) RangedHeal(target *Unit) {
	u.world.queueAction(action{kind: actRangedHeal, actor: u, targetUnit: target})
}

// Dismantle queues a demolition strike against a structure (range 1).
func (u *Unit) Dismantle(target *Structure) {
	u.world.queueAction(action{kind: actDismantle, actor: u, targetStruct: target})
}

// MoveTo queues a single-cell step toward the target cell in the unit's zone.
func (u *Unit) MoveTo(target Point) {
	u.world.queueAction(action{kind: actMove, actor: u, movePos: target})
}

// MoveTowardZone queues one zone-transition step toward the named zone.
// Reports false when no path through the zone graph exists.
func (u *Unit) MoveTowardZone(zone string) bool {
	step, ok := u.world.FindExitStep(u, zone)
	if !ok {
		return false
	}
	u.world.queueAction(action{kind: actMove, actor: u, movePos: step.cell, crossInto: step.crossInto, entryPos: step.entry})
	return true
}
