package tactics

import "fmt"

// RallyPoint is where the squad regroups and retreats to.
type RallyPoint struct {
	Zone string
	Pos  Point
}

// SquadConfig is the squad's behavioral configuration. Setters replace
// fields without validation; dispatch treats unknown values explicitly.
type SquadConfig struct {
	Formation                Formation
	Tactic                   Tactic
	RallyPoint               RallyPoint
	TargetZone               string
	EngageRange              int
	FallbackThresholdPercent int
}

// SquadMember pairs a unit with its fixed role, formation slot and the
// health snapshot cached for this tick.
type SquadMember struct {
	unit   *Unit
	role   Role
	offset Offset

	// Snapshot refreshed once per tick, after cleanup and before the
	// retreat calculation so dead entries never pollute the aggregate.
	hits    int
	hitsMax int
}

// Unit returns the member's underlying unit.
func (m *SquadMember) Unit() *Unit { return m.unit }

// Role returns the member's fixed role.
func (m *SquadMember) Role() Role { return m.role }

// Offset returns the member's current formation slot.
func (m *SquadMember) Offset() Offset { return m.offset }

// SquadStatus is the snapshot surface exposed to the operations manager.
type SquadStatus struct {
	Size                   int
	AvgHealthPercent       float64
	Tactic                 Tactic
	Formation              Formation
	AllMembersInTargetZone bool
}

// Squad coordinates a group of units as one fighting body. All state lives
// in the instance and is touched only inside Run, which executes exactly
// one synchronous decision pass per tick — no goroutines, no blocking.
type Squad struct {
	ID    int
	world *World
	cfg   SquadConfig
	team  Team

	members []*SquadMember
	leader  *SquadMember

	// Raid target lock: nil means unlocked. At most one target is ever
	// locked; acquire/release go through the helpers below.
	lockedTarget *CombatTarget

	log *SimLog
}

// NewSquad creates an empty squad. The world's log receives squad events.
func NewSquad(id int, world *World, cfg SquadConfig) *Squad {
	return &Squad{
		ID:    id,
		world: world,
		cfg:   cfg,
		log:   world.log,
	}
}

func (sq *Squad) label() string {
	return fmt.Sprintf("sq%d", sq.ID)
}

// AddMember registers a unit under a fixed role. The very first member
// becomes leader; the squad's team follows it. Offsets are recomputed for
// everyone so role-segmented formations stay consistent.
func (sq *Squad) AddMember(u *Unit, role Role) *SquadMember {
	m := &SquadMember{
		unit:    u,
		role:    role,
		hits:    u.Hits,
		hitsMax: u.HitsMax,
	}
	sq.members = append(sq.members, m)
	if sq.leader == nil {
		sq.leader = m
		sq.team = u.Team
	}
	sq.assignOffsets()
	return m
}

// Members returns the current membership in registration order.
func (sq *Squad) Members() []*SquadMember { return sq.members }

// Leader returns the formation anchor, or nil for an empty squad.
func (sq *Squad) Leader() *SquadMember { return sq.leader }

// cleanupMembers drops every member whose unit is gone or at zero health.
// When the leader falls, an arbitrary survivor (first in iteration order)
// takes over; an empty squad has no leader. Must run before any health
// aggregation reads the roster.
func (sq *Squad) cleanupMembers() {
	kept := sq.members[:0]
	leaderLost := false
	for _, m := range sq.members {
		if m.unit.Alive() {
			kept = append(kept, m)
			continue
		}
		if m == sq.leader {
			leaderLost = true
		}
	}
	sq.members = kept

	if leaderLost {
		if len(sq.members) > 0 {
			sq.leader = sq.members[0]
			sq.log.Add(sq.world.Tick(), sq.label(), sq.team.String(), "squad", "leader_promoted", unitLabel(sq.leader.unit), 0)
		} else {
			sq.leader = nil
			sq.log.Add(sq.world.Tick(), sq.label(), sq.team.String(), "squad", "leader_lost", "squad wiped", 0)
		}
	}
}

// refreshSnapshots re-reads live unit health into the per-tick cache.
func (sq *Squad) refreshSnapshots() {
	for _, m := range sq.members {
		m.hits = m.unit.Hits
		m.hitsMax = m.unit.HitsMax
	}
}

// healthPercent aggregates the cached snapshots (0–100).
func (sq *Squad) healthPercent() float64 {
	sum, max := 0, 0
	for _, m := range sq.members {
		sum += m.hits
		max += m.hitsMax
	}
	if max == 0 {
		return 0
	}
	return float64(sum) / float64(max) * 100
}

// shouldRetreat is recomputed fresh every tick from the just-refreshed
// snapshots — no smoothing, no hysteresis. An empty squad always retreats.
func (sq *Squad) shouldRetreat() bool {
	if len(sq.members) == 0 {
		return true
	}
	return sq.healthPercent() < float64(sq.cfg.FallbackThresholdPercent)
}

// Run executes one full tactical decision pass. Ordering is load-bearing:
// cleanup → snapshot refresh → retreat check → tactic dispatch. The engine
// never raises an error; every failure mode degrades to a no-op.
func (sq *Squad) Run() {
	sq.cleanupMembers()
	if len(sq.members) == 0 {
		return
	}
	sq.refreshSnapshots()

	if sq.shouldRetreat() && sq.cfg.Tactic != TacticRetreat {
		sq.log.Add(sq.world.Tick(), sq.label(), sq.team.String(), "tactic", "forced_retreat",
			fmt.Sprintf("%s → retreat (%.0f%% < %d%%)", sq.cfg.Tactic, sq.healthPercent(), sq.cfg.FallbackThresholdPercent),
			sq.healthPercent())
		sq.cfg.Tactic = TacticRetreat
	}

	sq.dispatch()
}

// SetTactic replaces the active tactic. This is also the only way out of a
// forced retreat — the engine never auto-exits it.
func (sq *Squad) SetTactic(t Tactic) {
	if t == sq.cfg.Tactic {
		return
	}
	sq.log.Add(sq.world.Tick(), sq.label(), sq.team.String(), "tactic", "set", fmt.Sprintf("%s → %s", sq.cfg.Tactic, t), 0)
	sq.cfg.Tactic = t
	if t != TacticRaid {
		sq.releaseLock()
	}
}

// SetFormation replaces the formation and recomputes every member's slot.
func (sq *Squad) SetFormation(f Formation) {
	sq.cfg.Formation = f
	sq.assignOffsets()
	sq.log.Add(sq.world.Tick(), sq.label(), sq.team.String(), "formation", "set", f.String(), 0)
}

// SetTarget points the squad at a new target zone.
func (sq *Squad) SetTarget(zone string) {
	sq.cfg.TargetZone = zone
}

// SetRallyPoint moves the squad's rally point.
func (sq *Squad) SetRallyPoint(rp RallyPoint) {
	sq.cfg.RallyPoint = rp
}

// Config returns a copy of the current configuration.
func (sq *Squad) Config() SquadConfig {
	return sq.cfg
}

// Status reports the squad snapshot for the operations manager.
func (sq *Squad) Status() SquadStatus {
	inZone := len(sq.members) > 0
	for _, m := range sq.members {
		if m.unit.Zone != sq.cfg.TargetZone {
			inZone = false
			break
		}
	}
	return SquadStatus{
		Size:                   len(sq.members),
		AvgHealthPercent:       sq.healthPercent(),
		Tactic:                 sq.cfg.Tactic,
		Formation:              sq.cfg.Formation,
		AllMembersInTargetZone: inZone,
	}
}

// acquireLock records the raid target. At most one target is locked at any
// time; acquiring replaces nothing — callers must hold no lock.
func (sq *Squad) acquireLock(t CombatTarget) {
	sq.lockedTarget = &t
	sq.log.Add(sq.world.Tick(), sq.label(), sq.team.String(), "target", "lock_acquired", t.Label(), float64(t.Priority))
}

// releaseLock clears the raid target lock, if any.
func (sq *Squad) releaseLock() {
	if sq.lockedTarget == nil {
		return
	}
	sq.log.Add(sq.world.Tick(), sq.label(), sq.team.String(), "target", "lock_released", sq.lockedTarget.Label(), 0)
	sq.lockedTarget = nil
}

// LockedTarget returns the raid lock, or nil when unlocked.
func (sq *Squad) LockedTarget() *CombatTarget {
	return sq.lockedTarget
}
