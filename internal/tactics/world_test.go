package tactics

import "testing"

func twoZoneWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(nil)
	w.AddZone("alpha", 10, 10)
	w.AddZone("beta", 10, 10)
	w.LinkZones("alpha", Point{X: 9, Y: 5}, "beta", Point{X: 0, Y: 5})
	return w
}

func TestMoveTowardZone_WalksToExitAndCrosses(t *testing.T) {
	w := twoZoneWorld(t)
	u := w.AddUnit(TeamRed, "alpha", Point{X: 5, Y: 5}, 100, 1, 0, 0, 0)

	for i := 0; i < 10 && u.Zone == "alpha"; i++ {
		if !u.MoveTowardZone("beta") {
			t.Fatalf("route alpha→beta should exist")
		}
		w.ResolveActions()
	}
	if u.Zone != "beta" {
		t.Fatalf("unit should have crossed into beta, still in %s at %v", u.Zone, u.Pos)
	}
	if u.Pos != (Point{X: 0, Y: 5}) {
		t.Fatalf("unit should emerge at the entry cell (0,5), got %v", u.Pos)
	}
	if n := w.log.CountCategory("move", "zone_cross"); n != 1 {
		t.Fatalf("expected exactly 1 zone_cross entry, got %d", n)
	}
}

func TestMoveTowardZone_NoRouteIsNoOp(t *testing.T) {
	w := twoZoneWorld(t)
	w.AddZone("island", 10, 10) // never linked
	u := w.AddUnit(TeamRed, "alpha", Point{X: 5, Y: 5}, 100, 1, 0, 0, 0)

	if u.MoveTowardZone("island") {
		t.Fatalf("unlinked zone should report no route")
	}
	w.ResolveActions()
	if u.Zone != "alpha" || u.Pos != (Point{X: 5, Y: 5}) {
		t.Fatalf("unit should not have moved, got %s %v", u.Zone, u.Pos)
	}
}

func TestResolveActions_OnlyLastMoveApplies(t *testing.T) {
	w := twoZoneWorld(t)
	u := w.AddUnit(TeamRed, "alpha", Point{X: 5, Y: 5}, 100, 1, 0, 0, 0)

	u.MoveTo(Point{X: 9, Y: 5})
	u.MoveTo(Point{X: 5, Y: 9})
	w.ResolveActions()
	if u.Pos != (Point{X: 5, Y: 6}) {
		t.Fatalf("only the last move intent should apply, expected (5,6), got %v", u.Pos)
	}
}

func TestResolveStrike_RangeValidatedAtResolution(t *testing.T) {
	w := twoZoneWorld(t)
	a := w.AddUnit(TeamRed, "alpha", Point{X: 0, Y: 0}, 100, 1, 2, 0, 0)
	b := w.AddUnit(TeamBlue, "alpha", Point{X: 0, Y: 5}, 200, 0, 0, 0, 0)

	a.Attack(b) // range 5, melee reaches 1
	a.RangedAttack(b)
	w.ResolveActions()
	if b.Hits != 200 {
		t.Fatalf("out-of-range strikes must be dropped, hostile at %d hits", b.Hits)
	}

	b.Pos = Point{X: 0, Y: 3}
	a.RangedAttack(b)
	w.ResolveActions()
	if b.Hits != 200-2*rangedPower {
		t.Fatalf("ranged strike at range 3 should deal %d, hostile at %d hits", 2*rangedPower, b.Hits)
	}
}

func TestResolveMassAttack_FalloffByRange(t *testing.T) {
	w := twoZoneWorld(t)
	a := w.AddUnit(TeamRed, "alpha", Point{X: 5, Y: 5}, 100, 0, 2, 0, 0)
	near := w.AddUnit(TeamBlue, "alpha", Point{X: 6, Y: 5}, 200, 0, 0, 0, 0)
	mid := w.AddUnit(TeamBlue, "alpha", Point{X: 7, Y: 5}, 200, 0, 0, 0, 0)
	rim := w.AddUnit(TeamBlue, "alpha", Point{X: 8, Y: 5}, 200, 0, 0, 0, 0)
	far := w.AddUnit(TeamBlue, "alpha", Point{X: 9, Y: 9}, 200, 0, 0, 0, 0)

	a.RangedMassAttack()
	w.ResolveActions()

	if near.Hits != 200-2*10 {
		t.Fatalf("adjacent target: expected %d hits, got %d", 200-2*10, near.Hits)
	}
	if mid.Hits != 200-2*4 {
		t.Fatalf("range-2 target: expected %d hits, got %d", 200-2*4, mid.Hits)
	}
	if rim.Hits != 200-2*1 {
		t.Fatalf("range-3 target: expected %d hits, got %d", 200-2*1, rim.Hits)
	}
	if far.Hits != 200 {
		t.Fatalf("out-of-range target must be untouched, got %d", far.Hits)
	}
}

func TestResolveHeal_ClampsAtMax(t *testing.T) {
	w := twoZoneWorld(t)
	h := w.AddUnit(TeamRed, "alpha", Point{X: 5, Y: 5}, 100, 0, 0, 4, 0)
	ally := w.AddUnit(TeamRed, "alpha", Point{X: 6, Y: 5}, 200, 1, 0, 0, 0)
	ally.Hits = 180

	h.Heal(ally) // 4 parts * 12 = 48, would overshoot
	w.ResolveActions()
	if ally.Hits != ally.HitsMax {
		t.Fatalf("heal must clamp at max %d, got %d", ally.HitsMax, ally.Hits)
	}
}

func TestResolveStrike_ControlStructureIsUntargetable(t *testing.T) {
	w := twoZoneWorld(t)
	a := w.AddUnit(TeamRed, "alpha", Point{X: 5, Y: 5}, 100, 2, 2, 0, 4)
	ctl := w.AddStructure(TeamBlue, StructureControl, "alpha", Point{X: 6, Y: 5}, 1000)

	a.AttackStructure(ctl)
	a.RangedAttackStructure(ctl)
	a.Dismantle(ctl)
	w.ResolveActions()
	if ctl.Hits != 1000 {
		t.Fatalf("control structures must never take damage, got %d hits", ctl.Hits)
	}
}

func TestResolveDismantle_WorkPartsScaleDamage(t *testing.T) {
	w := twoZoneWorld(t)
	d := w.AddUnit(TeamRed, "alpha", Point{X: 5, Y: 5}, 100, 0, 0, 0, 4)
	ext := w.AddStructure(TeamBlue, StructureExtension, "alpha", Point{X: 6, Y: 5}, 500)

	d.Dismantle(ext)
	w.ResolveActions()
	if ext.Hits != 500-4*dismantlePower {
		t.Fatalf("dismantle should deal %d, structure at %d hits", 4*dismantlePower, ext.Hits)
	}
}

func TestSweepDead_RemovesAndLogs(t *testing.T) {
	w := twoZoneWorld(t)
	a := w.AddUnit(TeamRed, "alpha", Point{X: 5, Y: 5}, 100, 0, 4, 0, 0)
	b := w.AddUnit(TeamBlue, "alpha", Point{X: 6, Y: 5}, 30, 0, 0, 0, 0)

	a.RangedAttack(b) // 40 damage kills the 30-hit target
	w.ResolveActions()

	if b.Alive() {
		t.Fatalf("target at %d hits should be dead", b.Hits)
	}
	for _, u := range w.Units() {
		if u == b {
			t.Fatalf("dead unit must be swept from the world")
		}
	}
	if n := w.log.CountCategory("state", "destroyed"); n != 1 {
		t.Fatalf("expected 1 destroyed entry, got %d", n)
	}
}

func TestStrikeAgainstDeadTargetIsDropped(t *testing.T) {
	w := twoZoneWorld(t)
	a := w.AddUnit(TeamRed, "alpha", Point{X: 5, Y: 5}, 30, 4, 0, 0, 0)
	b := w.AddUnit(TeamBlue, "alpha", Point{X: 6, Y: 5}, 200, 0, 0, 0, 0)

	b.Hits = 0 // dies during the tick
	a.Attack(b)
	w.ResolveActions()
	if n := w.log.CountCategory("combat", "melee"); n != 0 {
		t.Fatalf("strike against a dead target must be dropped, got %d combat entries", n)
	}
}
