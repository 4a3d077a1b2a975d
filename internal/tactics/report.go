package tactics

import (
	"fmt"
	"strings"
)

// BattleReport summarizes one simulation for the headless reporter and the
// in-game clipboard export.
type BattleReport struct {
	Ticks            int
	SquadSize        int
	AvgHealthPercent float64
	Tactic           Tactic
	Formation        Formation
	InTargetZone     bool

	HostilesAlive   int
	HostilesKilled  int
	StructuresAlive int
	StructuresRazed int

	FirstContactTick int // first combat event by the squad's team
	ForcedRetreats   int
	LocksAcquired    int
	LocksReleased    int
	LeaderPromotions int
}

// BuildReport derives a BattleReport from the sim's current state and log.
func BuildReport(bs *BattleSim) BattleReport {
	rep := BattleReport{
		Ticks:            bs.Tick,
		FirstContactTick: -1,
	}
	st := bs.Squad.Status()
	rep.SquadSize = st.Size
	rep.AvgHealthPercent = st.AvgHealthPercent
	rep.Tactic = st.Tactic
	rep.Formation = st.Formation
	rep.InTargetZone = st.AllMembersInTargetZone

	for _, u := range bs.World.Units() {
		if u.Team == TeamBlue && u.Alive() {
			rep.HostilesAlive++
		}
	}
	for _, s := range bs.World.Structures() {
		if s.Team == TeamBlue && s.Alive() {
			rep.StructuresAlive++
		}
	}

	for _, e := range bs.SimLog.Entries() {
		switch {
		case e.Category == "combat" && e.Team == "red":
			if rep.FirstContactTick < 0 {
				rep.FirstContactTick = e.Tick
			}
		case e.Category == "tactic" && e.Key == "forced_retreat":
			rep.ForcedRetreats++
		case e.Category == "target" && e.Key == "lock_acquired":
			rep.LocksAcquired++
		case e.Category == "target" && e.Key == "lock_released":
			rep.LocksReleased++
		case e.Category == "squad" && e.Key == "leader_promoted":
			rep.LeaderPromotions++
		case e.Category == "state" && e.Key == "destroyed" && e.Team == "blue":
			if e.Value == "unit" {
				rep.HostilesKilled++
			} else {
				rep.StructuresRazed++
			}
		}
	}
	return rep
}

// String formats the report as a small fixed block, one fact per line.
func (r BattleReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ticks=%d\n", r.Ticks)
	fmt.Fprintf(&b, "squad: size=%d health=%.1f%% tactic=%s formation=%s in_target_zone=%v\n",
		r.SquadSize, r.AvgHealthPercent, r.Tactic, r.Formation, r.InTargetZone)
	fmt.Fprintf(&b, "hostiles: alive=%d killed=%d structures_alive=%d structures_razed=%d\n",
		r.HostilesAlive, r.HostilesKilled, r.StructuresAlive, r.StructuresRazed)
	fmt.Fprintf(&b, "events: first_contact=%d forced_retreats=%d locks=%d/%d leader_promotions=%d\n",
		r.FirstContactTick, r.ForcedRetreats, r.LocksAcquired, r.LocksReleased, r.LeaderPromotions)
	return b.String()
}
