package tactics

import "testing"

func TestRaid_LockLifecycle(t *testing.T) {
	w := NewWorld(nil)
	w.AddZone("field", 24, 24)
	sq := NewSquad(0, w, SquadConfig{Tactic: TacticRaid})
	shooter := w.AddUnit(TeamRed, "field", Point{X: 5, Y: 5}, 200, 0, 4, 0, 0)
	sq.AddMember(shooter, RoleRanged)

	// Two fragile hostiles; one ranged volley (40) kills either.
	first := w.AddUnit(TeamBlue, "field", Point{X: 7, Y: 5}, 30, 1, 0, 0, 0)
	second := w.AddUnit(TeamBlue, "field", Point{X: 5, Y: 8}, 30, 0, 0, 0, 0)

	sq.Run()
	lock := sq.LockedTarget()
	if lock == nil || lock.Unit != first {
		t.Fatalf("raid must lock the top-priority hostile")
	}
	w.ResolveActions()
	if first.Alive() {
		t.Fatalf("locked target should be dead after one volley, at %d hits", first.Hits)
	}

	// Dead lock released, next target acquired in the same pass.
	sq.Run()
	lock = sq.LockedTarget()
	if lock == nil || lock.Unit != second {
		t.Fatalf("squad must re-acquire the remaining hostile")
	}
	w.ResolveActions()

	// Nothing left: lock released, squad falls back to rally.
	sq.Run()
	if sq.LockedTarget() != nil {
		t.Fatalf("no hostiles left, lock must be released")
	}

	if n := w.log.CountCategory("target", "lock_acquired"); n != 2 {
		t.Fatalf("expected 2 lock_acquired entries, got %d", n)
	}
	if n := w.log.CountCategory("target", "lock_released"); n != 2 {
		t.Fatalf("expected 2 lock_released entries, got %d", n)
	}
}

func TestRaid_NoTargetsHoldsAtRally(t *testing.T) {
	w := NewWorld(nil)
	w.AddZone("field", 24, 24)
	rally := Point{X: 5, Y: 5}
	sq := NewSquad(0, w, SquadConfig{Tactic: TacticRaid, RallyPoint: RallyPoint{Zone: "field", Pos: rally}})
	u := w.AddUnit(TeamRed, "field", Point{X: 15, Y: 15}, 200, 1, 0, 0, 0)
	sq.AddMember(u, RoleAttacker)

	for i := 0; i < 12; i++ {
		sq.Run()
		w.ResolveActions()
	}
	if u.Pos.Range(rally) > defendRadius {
		t.Fatalf("with nothing to raid the member must converge on rally, at %v", u.Pos)
	}
}

func TestDispatch_UnknownTacticFallsBackToRally(t *testing.T) {
	w := NewWorld(nil)
	w.AddZone("field", 24, 24)
	rally := Point{X: 5, Y: 5}
	sq := NewSquad(0, w, SquadConfig{Tactic: Tactic(99), RallyPoint: RallyPoint{Zone: "field", Pos: rally}})
	u := w.AddUnit(TeamRed, "field", Point{X: 12, Y: 5}, 200, 1, 0, 0, 0)
	sq.AddMember(u, RoleAttacker)

	sq.Run()
	w.ResolveActions()

	if n := w.log.CountCategory("tactic", "unknown"); n != 1 {
		t.Fatalf("corrupted tactic must be logged, got %d entries", n)
	}
	if u.Pos != (Point{X: 11, Y: 5}) {
		t.Fatalf("fallback must move the member toward rally, at %v", u.Pos)
	}
}

func TestDefend_EngageRangeFiltersDistantHostiles(t *testing.T) {
	w := NewWorld(nil)
	w.AddZone("field", 24, 24)
	rally := Point{X: 5, Y: 5}
	sq := NewSquad(0, w, SquadConfig{Tactic: TacticDefend, EngageRange: 4, RallyPoint: RallyPoint{Zone: "field", Pos: rally}})
	u := w.AddUnit(TeamRed, "field", Point{X: 5, Y: 5}, 200, 0, 4, 0, 0)
	sq.AddMember(u, RoleRanged)

	distant := w.AddUnit(TeamBlue, "field", Point{X: 20, Y: 20}, 200, 1, 0, 0, 0)
	sq.Run()
	w.ResolveActions()
	if n := w.log.CountCategory("combat", ""); n != 0 {
		t.Fatalf("hostile outside engage range must be ignored, got %d combat entries", n)
	}
	if u.Pos != rally {
		t.Fatalf("idle defender must stay at rally, at %v", u.Pos)
	}

	nearby := w.AddUnit(TeamBlue, "field", Point{X: 7, Y: 5}, 200, 1, 0, 0, 0)
	sq.Run()
	w.ResolveActions()
	if nearby.Hits == 200 {
		t.Fatalf("hostile inside engage range must be engaged")
	}
	if distant.Hits != 200 {
		t.Fatalf("distant hostile must stay untouched")
	}
}

func TestDefend_IdleMembersNudgedInsideRadius(t *testing.T) {
	w := NewWorld(nil)
	w.AddZone("field", 24, 24)
	rally := Point{X: 5, Y: 5}
	sq := NewSquad(0, w, SquadConfig{Tactic: TacticDefend, RallyPoint: RallyPoint{Zone: "field", Pos: rally}})
	far := w.AddUnit(TeamRed, "field", Point{X: 15, Y: 15}, 200, 1, 0, 0, 0)
	near := w.AddUnit(TeamRed, "field", Point{X: 7, Y: 5}, 200, 1, 0, 0, 0)
	sq.AddMember(far, RoleAttacker)
	sq.AddMember(near, RoleAttacker)

	sq.Run()
	w.ResolveActions()
	if far.Pos != (Point{X: 14, Y: 14}) {
		t.Fatalf("straggler must step toward rally, at %v", far.Pos)
	}
	if near.Pos != (Point{X: 7, Y: 5}) {
		t.Fatalf("member already inside the defend radius must hold, at %v", near.Pos)
	}
}

func TestRetreat_CrossesZonesTowardRally(t *testing.T) {
	w := NewWorld(nil)
	w.AddZone("home", 12, 12)
	w.AddZone("front", 12, 12)
	w.LinkZones("home", Point{X: 11, Y: 6}, "front", Point{X: 0, Y: 6})
	sq := NewSquad(0, w, SquadConfig{Tactic: TacticRetreat, RallyPoint: RallyPoint{Zone: "home", Pos: Point{X: 3, Y: 6}}})
	u := w.AddUnit(TeamRed, "front", Point{X: 6, Y: 6}, 200, 1, 0, 0, 0)
	sq.AddMember(u, RoleAttacker)

	for i := 0; i < 20; i++ {
		sq.Run()
		w.ResolveActions()
	}
	if u.Zone != "home" {
		t.Fatalf("retreating member must cross back to the rally zone, still in %s", u.Zone)
	}
	if u.Pos.Range(Point{X: 3, Y: 6}) > defendRadius {
		t.Fatalf("retreating member must close on the rally point, at %v", u.Pos)
	}
}

func TestRetreat_HealerPatchesWithoutBreakingOff(t *testing.T) {
	w := NewWorld(nil)
	w.AddZone("field", 24, 24)
	rally := Point{X: 2, Y: 5}
	sq := NewSquad(0, w, SquadConfig{Tactic: TacticRetreat, RallyPoint: RallyPoint{Zone: "field", Pos: rally}})
	wounded := w.AddUnit(TeamRed, "field", Point{X: 10, Y: 5}, 200, 1, 0, 0, 0)
	healer := w.AddUnit(TeamRed, "field", Point{X: 11, Y: 5}, 200, 0, 0, 4, 0)
	sq.AddMember(wounded, RoleAttacker)
	sq.AddMember(healer, RoleHealer)
	wounded.Hits = 100

	sq.Run()
	w.ResolveActions()
	if wounded.Hits != 100+4*healPower {
		t.Fatalf("healer must patch the wounded ally in passing, ally at %d", wounded.Hits)
	}
	if healer.Pos != (Point{X: 10, Y: 5}) {
		t.Fatalf("healer must keep withdrawing, at %v", healer.Pos)
	}
}

func TestRetreat_RangedGivesCoveringFireWithoutPursuit(t *testing.T) {
	w := NewWorld(nil)
	w.AddZone("field", 24, 24)
	rally := Point{X: 2, Y: 5}
	sq := NewSquad(0, w, SquadConfig{Tactic: TacticRetreat, RallyPoint: RallyPoint{Zone: "field", Pos: rally}})
	shooter := w.AddUnit(TeamRed, "field", Point{X: 10, Y: 5}, 200, 0, 4, 0, 0)
	sq.AddMember(shooter, RoleRanged)
	chaser := w.AddUnit(TeamBlue, "field", Point{X: 12, Y: 5}, 200, 1, 0, 0, 0)

	sq.Run()
	w.ResolveActions()
	if chaser.Hits != 200-4*rangedPower {
		t.Fatalf("covering fire should land %d, hostile at %d", 4*rangedPower, chaser.Hits)
	}
	if shooter.Pos != (Point{X: 9, Y: 5}) {
		t.Fatalf("shooter must keep falling back toward rally, at %v", shooter.Pos)
	}
}
