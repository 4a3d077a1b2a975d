package tactics

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenW = 1280
	screenH = 720
)

// Game is the ebiten shell around a BattleSim: watch the squad fight and
// drive its tactic/formation live from the keyboard.
type Game struct {
	sim    *BattleSim
	paused bool
	speed  int // sim ticks per step-frame
	frame  int
}

// framesPerStep throttles the 60Hz update loop so individual decisions stay
// watchable at speed 1.
const framesPerStep = 10

// New builds the default demo: a squad staging in one zone and assaulting a
// fortified base across the border.
func New() *Game {
	return &Game{
		sim:   demoScenario(),
		speed: 1,
	}
}

func demoScenario() *BattleSim {
	return NewBattleSim(
		WithHostileAI(),
		WithZone("staging", 24, 24),
		WithZone("frontier", 24, 24),
		WithZoneLink("staging", 23, 12, "frontier", 0, 12),
		WithConfig(SquadConfig{
			Formation:                FormationWedge,
			Tactic:                   TacticAssault,
			RallyPoint:               RallyPoint{Zone: "staging", Pos: Point{X: 6, Y: 12}},
			TargetZone:               "frontier",
			EngageRange:              10,
			FallbackThresholdPercent: 35,
		}),
		WithMember(RoleTank, "staging", 6, 12),
		WithMember(RoleAttacker, "staging", 5, 11),
		WithMember(RoleAttacker, "staging", 5, 13),
		WithMember(RoleRanged, "staging", 4, 11),
		WithMember(RoleRanged, "staging", 4, 13),
		WithMember(RoleHealer, "staging", 4, 12),
		WithMember(RoleDismantler, "staging", 3, 12),
		WithHostile("frontier", 16, 10, 3, 0, 0),
		WithHostile("frontier", 16, 14, 0, 3, 0),
		WithHostile("frontier", 18, 12, 0, 0, 3),
		WithHostile("frontier", 14, 12, 2, 2, 0),
		WithHostileStructure(StructureCommand, "frontier", 21, 12, 3000),
		WithHostileStructure(StructureTower, "frontier", 20, 10, 1500),
		WithHostileStructure(StructureLab, "frontier", 21, 14, 1000),
		WithHostileStructure(StructureExtension, "frontier", 22, 11, 500),
		WithHostileStructure(StructureRelay, "frontier", 22, 13, 500),
		WithHostileStructure(StructureRampart, "frontier", 19, 12, 5000),
	)
}

// Update handles input and advances the simulation.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		g.sim.Squad.SetTactic(TacticAssault)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		g.sim.Squad.SetTactic(TacticSiege)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		g.sim.Squad.SetTactic(TacticRaid)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit4):
		g.sim.Squad.SetTactic(TacticDefend)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit5):
		g.sim.Squad.SetTactic(TacticRetreat)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.sim.Squad.SetFormation((g.sim.Squad.Config().Formation + 1) % 4)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		if g.speed < 8 {
			g.speed *= 2
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		if g.speed > 1 {
			g.speed /= 2
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		// Export the battle report; a clipboard failure is not fatal.
		_ = clipboard.WriteAll(BuildReport(g.sim).String())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.sim = demoScenario()
	}

	if g.paused {
		return nil
	}
	g.frame++
	if g.frame%framesPerStep == 0 {
		g.sim.RunTicks(g.speed)
	}
	return nil
}

// Draw renders the world panels, HUD and controls.
func (g *Game) Draw(screen *ebiten.Image) {
	g.sim.DrawWorld(screen)
	g.sim.DrawHUD(screen, g.paused, g.speed)
	ebitenutil.DebugPrintAt(screen,
		"[1-5] assault/siege/raid/defend/retreat  [F] formation  [space] pause  [+/-] speed  [C] copy report  [R] reset",
		marginPx, screenH-18)
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}
