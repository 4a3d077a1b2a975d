package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/Merovar/Warband-Tactics/internal/tactics"
)

type runStats struct {
	runIndex int
	seed     int64
	report   tactics.BattleReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base placement seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "assault", "scenario name (assault|siege|raid)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "assault" && scenario != "siege" && scenario != "raid" {
		fmt.Printf("error: unsupported scenario %q (supported: assault, siege, raid)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		bs := buildScenario(scenario, seed)
		bs.RunTicks(ticks)
		rs := runStats{runIndex: i + 1, seed: seed, report: tactics.BuildReport(bs)}
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)
}

// buildScenario assembles the battlefield. The engine itself is free of
// randomness; the seed only jitters hostile placement so runs differ.
func buildScenario(name string, seed int64) *tactics.BattleSim {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- scenario placement only
	jit := func(n int) int { return n + rng.Intn(5) - 2 }

	tactic := tactics.TacticAssault
	switch name {
	case "siege":
		tactic = tactics.TacticSiege
	case "raid":
		tactic = tactics.TacticRaid
	}

	opts := []tactics.SimOption{
		tactics.WithHostileAI(),
		tactics.WithZone("staging", 24, 24),
		tactics.WithZone("frontier", 24, 24),
		tactics.WithZoneLink("staging", 23, 12, "frontier", 0, 12),
		tactics.WithConfig(tactics.SquadConfig{
			Formation:                tactics.FormationWedge,
			Tactic:                   tactic,
			RallyPoint:               tactics.RallyPoint{Zone: "staging", Pos: tactics.Point{X: 6, Y: 12}},
			TargetZone:               "frontier",
			EngageRange:              10,
			FallbackThresholdPercent: 35,
		}),
		tactics.WithMember(tactics.RoleTank, "staging", 6, 12),
		tactics.WithMember(tactics.RoleAttacker, "staging", 5, 11),
		tactics.WithMember(tactics.RoleAttacker, "staging", 5, 13),
		tactics.WithMember(tactics.RoleRanged, "staging", 4, 11),
		tactics.WithMember(tactics.RoleRanged, "staging", 4, 13),
		tactics.WithMember(tactics.RoleHealer, "staging", 4, 12),
		tactics.WithMember(tactics.RoleDismantler, "staging", 3, 12),
		tactics.WithHostile("frontier", jit(16), jit(10), 3, 0, 0),
		tactics.WithHostile("frontier", jit(16), jit(14), 0, 3, 0),
		tactics.WithHostile("frontier", jit(18), jit(12), 0, 0, 3),
		tactics.WithHostile("frontier", jit(14), jit(12), 2, 2, 0),
		tactics.WithHostileStructure(tactics.StructureCommand, "frontier", 21, 12, 3000),
		tactics.WithHostileStructure(tactics.StructureTower, "frontier", 20, 10, 1500),
		tactics.WithHostileStructure(tactics.StructureLab, "frontier", 21, 14, 1000),
		tactics.WithHostileStructure(tactics.StructureExtension, "frontier", 22, 11, 500),
		tactics.WithHostileStructure(tactics.StructureRampart, "frontier", 19, 12, 5000),
	}
	return tactics.NewBattleSim(opts...)
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Print(rs.report.String())
	fmt.Println()
}

func printAggregate(all []runStats) {
	var contactTicks []int
	totalKilled := 0
	totalRazed := 0
	totalRetreats := 0
	totalLocks := 0
	totalPromotions := 0
	survivedRuns := 0
	healthSum := 0.0

	for _, rs := range all {
		r := rs.report
		if r.FirstContactTick >= 0 {
			contactTicks = append(contactTicks, r.FirstContactTick)
		}
		totalKilled += r.HostilesKilled
		totalRazed += r.StructuresRazed
		totalRetreats += r.ForcedRetreats
		totalLocks += r.LocksAcquired
		totalPromotions += r.LeaderPromotions
		if r.SquadSize > 0 {
			survivedRuns++
		}
		healthSum += r.AvgHealthPercent
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d squad_survived=%d/%d avg_final_health=%.1f%%\n", n, survivedRuns, n, healthSum/float64(n))
	fmt.Printf("avg_per_run: hostiles_killed=%.1f structures_razed=%.1f forced_retreats=%.1f locks=%.1f leader_promotions=%.1f\n",
		avg(totalKilled, n), avg(totalRazed, n), avg(totalRetreats, n), avg(totalLocks, n), avg(totalPromotions, n))
	fmt.Printf("first_contact_avg_tick=%s\n", avgTickString(contactTicks))
}

func avg(sum, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
