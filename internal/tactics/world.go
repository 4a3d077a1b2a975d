package tactics

import (
	"fmt"
	"sort"
)

// Combat power per part. One resolution pass per tick keeps damage
// deterministic: same inputs, same casualties.
const (
	meleePower      = 30
	rangedPower     = 10
	healPower       = 12
	rangedHealPower = 4
	dismantlePower  = 50

	meleeRange  = 1
	rangedRange = 3
	healRange   = 1
)

// massAttackPower returns per-part area damage at the given range.
// Falloff: adjacent targets take full damage, the rim almost none.
func massAttackPower(r int) int {
	switch r {
	case 0, 1:
		return 10
	case 2:
		return 4
	case 3:
		return 1
	default:
		return 0
	}
}

type actionKind int

const (
	actMove actionKind = iota
	actAttack
	actRangedAttack
	actMassAttack
	actHeal
	actRangedHeal
	actDismantle
)

// action is one queued unit command, validated and applied at resolution.
type action struct {
	kind         actionKind
	actor        *Unit
	targetUnit   *Unit
	targetStruct *Structure
	movePos      Point
	crossInto    string // non-empty when the move crosses a zone border
	entryPos     Point
}

// exitEdge joins two zones: stand on cell, emerge at entry in the neighbor.
type exitEdge struct {
	cell  Point
	entry Point
}

// Zone is a named region with its own coordinate grid.
type Zone struct {
	Name   string
	Width  int
	Height int

	exits map[string]exitEdge // neighbor zone name -> edge
}

func (z *Zone) clamp(p Point) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= z.Width {
		p.X = z.Width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= z.Height {
		p.Y = z.Height - 1
	}
	return p
}

// World owns every zone, unit and structure, and resolves the command
// intents queued during a tick. It is the movement and combat service the
// squad engine drives; the engine itself never mutates hits or positions.
type World struct {
	zones     map[string]*Zone
	zoneOrder []string
	units     []*Unit
	structs   []*Structure
	pending   []action

	log    *SimLog
	tick   int
	nextID int
}

// NewWorld creates an empty world logging into the given SimLog (may be nil).
func NewWorld(log *SimLog) *World {
	if log == nil {
		log = NewSimLog(false)
	}
	return &World{
		zones: make(map[string]*Zone),
		log:   log,
	}
}

// AddZone registers a zone grid.
func (w *World) AddZone(name string, width, height int) *Zone {
	z := &Zone{Name: name, Width: width, Height: height, exits: make(map[string]exitEdge)}
	w.zones[name] = z
	w.zoneOrder = append(w.zoneOrder, name)
	return z
}

// LinkZones creates a two-way border crossing: standing on exitA in zone a
// moves the unit to entryB in zone b, and vice versa.
func (w *World) LinkZones(a string, exitA Point, b string, entryB Point) {
	za, zb := w.zones[a], w.zones[b]
	if za == nil || zb == nil {
		return
	}
	za.exits[b] = exitEdge{cell: exitA, entry: entryB}
	zb.exits[a] = exitEdge{cell: entryB, entry: exitA}
}

// ZoneNames returns zone names in registration order.
func (w *World) ZoneNames() []string {
	return w.zoneOrder
}

// ZoneByName returns the named zone, or nil.
func (w *World) ZoneByName(name string) *Zone {
	return w.zones[name]
}

// AddUnit places a unit into the world.
func (w *World) AddUnit(team Team, zone string, pos Point, hits, melee, ranged, heal, work int) *Unit {
	w.nextID++
	u := &Unit{
		ID:          w.nextID,
		Team:        team,
		Zone:        zone,
		Pos:         pos,
		Hits:        hits,
		HitsMax:     hits,
		MeleeParts:  melee,
		RangedParts: ranged,
		HealParts:   heal,
		WorkParts:   work,
		world:       w,
		alive:       true,
	}
	w.units = append(w.units, u)
	return u
}

// AddStructure places a structure into the world.
func (w *World) AddStructure(team Team, st StructureType, zone string, pos Point, hits int) *Structure {
	w.nextID++
	s := &Structure{
		ID:      w.nextID,
		Type:    st,
		Team:    team,
		Zone:    zone,
		Pos:     pos,
		Hits:    hits,
		HitsMax: hits,
	}
	w.structs = append(w.structs, s)
	return s
}

// Units returns all living units.
func (w *World) Units() []*Unit {
	return w.units
}

// Structures returns all standing structures.
func (w *World) Structures() []*Structure {
	return w.structs
}

// HostileUnitsIn returns living units in the zone with a different team.
func (w *World) HostileUnitsIn(team Team, zone string) []*Unit {
	var out []*Unit
	for _, u := range w.units {
		if u.Team != team && u.Zone == zone && u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// HostileStructuresIn returns standing hostile structures in the zone,
// excluding control markers (which cannot be attacked).
func (w *World) HostileStructuresIn(team Team, zone string) []*Structure {
	var out []*Structure
	for _, s := range w.structs {
		if s.Team != team && s.Zone == zone && s.Alive() && s.Type != StructureControl {
			out = append(out, s)
		}
	}
	return out
}

// FriendlyUnitsInRange returns same-team living units within r of pos.
func (w *World) FriendlyUnitsInRange(team Team, zone string, pos Point, r int) []*Unit {
	var out []*Unit
	for _, u := range w.units {
		if u.Team == team && u.Zone == zone && u.Alive() && u.Pos.Range(pos) <= r {
			out = append(out, u)
		}
	}
	return out
}

// HostileUnitsInRange returns enemy living units within r of pos.
func (w *World) HostileUnitsInRange(team Team, zone string, pos Point, r int) []*Unit {
	var out []*Unit
	for _, u := range w.units {
		if u.Team != team && u.Zone == zone && u.Alive() && u.Pos.Range(pos) <= r {
			out = append(out, u)
		}
	}
	return out
}

type exitStep struct {
	cell      Point
	crossInto string
	entry     Point
}

// FindExitStep plans one zone-transition step for the unit toward the named
// zone: either a cell move toward the border, or the crossing itself when the
// unit already stands on the exit cell. Reports false when the unit is
// already there or no route exists through the zone graph.
func (w *World) FindExitStep(u *Unit, target string) (exitStep, bool) {
	if u.Zone == target {
		return exitStep{}, false
	}
	next, ok := w.nextZoneToward(u.Zone, target)
	if !ok {
		return exitStep{}, false
	}
	edge := w.zones[u.Zone].exits[next]
	if u.Pos == edge.cell {
		return exitStep{cell: edge.cell, crossInto: next, entry: edge.entry}, true
	}
	return exitStep{cell: u.Pos.StepToward(edge.cell)}, true
}

// nextZoneToward runs BFS over the zone graph and returns the first hop.
func (w *World) nextZoneToward(from, to string) (string, bool) {
	if from == to {
		return "", false
	}
	prev := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		z := w.zones[cur]
		if z == nil {
			continue
		}
		neighbors := make([]string, 0, len(z.exits))
		for n := range z.exits {
			neighbors = append(neighbors, n)
		}
		sort.Strings(neighbors) // deterministic route choice
		for _, n := range neighbors {
			if _, seen := prev[n]; seen {
				continue
			}
			prev[n] = cur
			if n == to {
				// Walk back to the hop adjacent to `from`.
				hop := n
				for prev[hop] != from {
					hop = prev[hop]
				}
				return hop, true
			}
			queue = append(queue, n)
		}
	}
	return "", false
}

func (w *World) queueAction(a action) {
	if a.actor == nil || !a.actor.Alive() {
		return
	}
	w.pending = append(w.pending, a)
}

// ResolveActions applies every queued command in issue order, then removes
// the dead. Out-of-range or stale-target commands are dropped silently.
// A unit moves at most one cell per tick: when several move intents were
// queued, only the last one (the most specific decision) is honored.
func (w *World) ResolveActions() {
	lastMove := make(map[*Unit]int)
	for i, a := range w.pending {
		if a.kind == actMove {
			lastMove[a.actor] = i
		}
	}
	for i, a := range w.pending {
		if !a.actor.Alive() {
			continue
		}
		switch a.kind {
		case actMove:
			if lastMove[a.actor] != i {
				continue
			}
			w.resolveMove(a)
		case actAttack:
			w.resolveStrike(a, a.actor.MeleeParts*meleePower, meleeRange, "melee")
		case actRangedAttack:
			w.resolveStrike(a, a.actor.RangedParts*rangedPower, rangedRange, "ranged")
		case actMassAttack:
			w.resolveMassAttack(a.actor)
		case actHeal:
			w.resolveHeal(a.actor, a.targetUnit, a.actor.HealParts*healPower, healRange)
		case actRangedHeal:
			w.resolveHeal(a.actor, a.targetUnit, a.actor.HealParts*rangedHealPower, rangedRange)
		case actDismantle:
			w.resolveDismantle(a.actor, a.targetStruct)
		}
	}
	w.pending = w.pending[:0]
	w.sweepDead()
	w.tick++
}

func (w *World) resolveMove(a action) {
	u := a.actor
	if a.crossInto != "" {
		u.Zone = a.crossInto
		u.Pos = a.entryPos
		w.log.Add(w.tick, unitLabel(u), u.Team.String(), "move", "zone_cross", a.crossInto, 0)
		return
	}
	z := w.zones[u.Zone]
	if z == nil {
		return
	}
	u.Pos = z.clamp(u.Pos.StepToward(a.movePos))
}

func (w *World) resolveStrike(a action, dmg, maxRange int, kind string) {
	if dmg <= 0 {
		return
	}
	if t := a.targetUnit; t != nil {
		if !t.Alive() || t.Zone != a.actor.Zone || a.actor.Pos.Range(t.Pos) > maxRange {
			return
		}
		t.Hits -= dmg
		w.log.Add(w.tick, unitLabel(a.actor), a.actor.Team.String(), "combat", kind, unitLabel(t), float64(dmg))
		return
	}
	if s := a.targetStruct; s != nil {
		if !s.Alive() || s.Zone != a.actor.Zone || a.actor.Pos.Range(s.Pos) > maxRange || s.Type == StructureControl {
			return
		}
		s.Hits -= dmg
		w.log.Add(w.tick, unitLabel(a.actor), a.actor.Team.String(), "combat", kind, s.Type.String(), float64(dmg))
	}
}

func (w *World) resolveMassAttack(u *Unit) {
	if u.RangedParts <= 0 {
		return
	}
	hit := 0
	for _, t := range w.HostileUnitsInRange(u.Team, u.Zone, u.Pos, rangedRange) {
		dmg := u.RangedParts * massAttackPower(u.Pos.Range(t.Pos))
		if dmg <= 0 {
			continue
		}
		t.Hits -= dmg
		hit++
	}
	if hit > 0 {
		w.log.Add(w.tick, unitLabel(u), u.Team.String(), "combat", "mass_attack", fmt.Sprintf("%d targets", hit), float64(hit))
	}
}

func (w *World) resolveHeal(u, target *Unit, amount, maxRange int) {
	if amount <= 0 || target == nil || !target.Alive() {
		return
	}
	if target.Zone != u.Zone || u.Pos.Range(target.Pos) > maxRange {
		return
	}
	target.Hits += amount
	if target.Hits > target.HitsMax {
		target.Hits = target.HitsMax
	}
	w.log.Add(w.tick, unitLabel(u), u.Team.String(), "combat", "heal", unitLabel(target), float64(amount))
}

func (w *World) resolveDismantle(u *Unit, s *Structure) {
	dmg := u.WorkParts * dismantlePower
	if dmg <= 0 || s == nil || !s.Alive() || s.Type == StructureControl {
		return
	}
	if s.Zone != u.Zone || u.Pos.Range(s.Pos) > meleeRange {
		return
	}
	s.Hits -= dmg
	w.log.Add(w.tick, unitLabel(u), u.Team.String(), "combat", "dismantle", s.Type.String(), float64(dmg))
}

func (w *World) sweepDead() {
	units := w.units[:0]
	for _, u := range w.units {
		if u.Hits > 0 {
			units = append(units, u)
			continue
		}
		u.alive = false
		w.log.Add(w.tick, unitLabel(u), u.Team.String(), "state", "destroyed", "unit", 0)
	}
	w.units = units

	structs := w.structs[:0]
	for _, s := range w.structs {
		if s.Hits > 0 {
			structs = append(structs, s)
			continue
		}
		s.destroyed = true
		w.log.Add(w.tick, fmt.Sprintf("S%d", s.ID), s.Team.String(), "state", "destroyed", s.Type.String(), 0)
	}
	w.structs = structs
}

// Tick returns the number of resolved ticks.
func (w *World) Tick() int {
	return w.tick
}

// unitLabel formats a unit as e.g. "R3" / "B7" for log lines.
func unitLabel(u *Unit) string {
	prefix := "R"
	if u.Team == TeamBlue {
		prefix = "B"
	}
	return fmt.Sprintf("%s%d", prefix, u.ID)
}
