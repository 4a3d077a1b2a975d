package tactics

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	cellPx    = 13
	zoneGapPx = 26
	marginPx  = 24
	unitR     = 4.5
)

func roleColor(r Role) color.RGBA {
	switch r {
	case RoleAttacker:
		return color.RGBA{R: 220, G: 70, B: 40, A: 255}
	case RoleRanged:
		return color.RGBA{R: 230, G: 190, B: 40, A: 255}
	case RoleHealer:
		return color.RGBA{R: 60, G: 200, B: 90, A: 255}
	case RoleTank:
		return color.RGBA{R: 160, G: 160, B: 185, A: 255}
	case RoleDismantler:
		return color.RGBA{R: 170, G: 80, B: 210, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
}

func structureGlyph(st StructureType) string {
	switch st {
	case StructureCommand:
		return "C"
	case StructureTower:
		return "T"
	case StructureAreaWeapon:
		return "N"
	case StructureTradePost:
		return "M"
	case StructureLab:
		return "L"
	case StructureStorage:
		return "S"
	case StructurePowerPlant:
		return "P"
	case StructureExtension:
		return "e"
	case StructureRelay:
		return "r"
	case StructureControl:
		return "K"
	case StructureWall:
		return "#"
	case StructureRampart:
		return "="
	default:
		return "?"
	}
}

// zoneOrigin returns the pixel origin of the zone panel at the given index.
func (bs *BattleSim) zoneOrigin(idx int) (int, int) {
	x := marginPx
	for i, name := range bs.World.ZoneNames() {
		if i == idx {
			break
		}
		x += bs.World.ZoneByName(name).Width*cellPx + zoneGapPx
	}
	return x, marginPx + 14
}

// DrawWorld renders every zone panel with its structures and units.
func (bs *BattleSim) DrawWorld(screen *ebiten.Image) {
	panel := color.RGBA{R: 24, G: 28, B: 24, A: 255}
	border := color.RGBA{R: 90, G: 100, B: 90, A: 255}

	for idx, name := range bs.World.ZoneNames() {
		z := bs.World.ZoneByName(name)
		ox, oy := bs.zoneOrigin(idx)
		w := float32(z.Width * cellPx)
		h := float32(z.Height * cellPx)

		vector.DrawFilledRect(screen, float32(ox), float32(oy), w, h, panel, false)
		vector.StrokeRect(screen, float32(ox), float32(oy), w, h, 1, border, false)
		ebitenutil.DebugPrintAt(screen, name, ox, oy-16)

		for _, s := range bs.World.Structures() {
			if s.Zone != name {
				continue
			}
			bs.drawStructure(screen, s, ox, oy)
		}
		for _, u := range bs.World.Units() {
			if u.Zone != name {
				continue
			}
			bs.drawUnit(screen, u, ox, oy)
		}
	}
}

func (bs *BattleSim) drawStructure(screen *ebiten.Image, s *Structure, ox, oy int) {
	x := float32(ox + s.Pos.X*cellPx)
	y := float32(oy + s.Pos.Y*cellPx)
	c := color.RGBA{R: 70, G: 90, B: 150, A: 255}
	if s.Type.isFortification() {
		c = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	}
	vector.DrawFilledRect(screen, x+1, y+1, cellPx-2, cellPx-2, c, false)
	ebitenutil.DebugPrintAt(screen, structureGlyph(s.Type), int(x)+3, int(y)-1)
	drawHitsBar(screen, x, y-3, s.Hits, s.HitsMax)
}

func (bs *BattleSim) drawUnit(screen *ebiten.Image, u *Unit, ox, oy int) {
	cx := float32(ox+u.Pos.X*cellPx) + cellPx/2
	cy := float32(oy+u.Pos.Y*cellPx) + cellPx/2

	var c color.RGBA
	if u.Team == TeamBlue {
		c = color.RGBA{R: 40, G: 110, B: 230, A: 255}
	} else {
		c = color.RGBA{R: 200, G: 200, B: 200, A: 255}
		if m := bs.memberFor(u); m != nil {
			c = roleColor(m.role)
		}
	}
	vector.DrawFilledCircle(screen, cx, cy, unitR, c, true)

	// Leader marker: white outline.
	if bs.Squad.leader != nil && bs.Squad.leader.unit == u {
		vector.StrokeCircle(screen, cx, cy, unitR+2, 1.0,
			color.RGBA{R: 255, G: 255, B: 255, A: 200}, true)
	}
	drawHitsBar(screen, cx-cellPx/2, cy-unitR-5, u.Hits, u.HitsMax)
}

func (bs *BattleSim) memberFor(u *Unit) *SquadMember {
	for _, m := range bs.Squad.members {
		if m.unit == u {
			return m
		}
	}
	return nil
}

func drawHitsBar(screen *ebiten.Image, x, y float32, hits, max int) {
	if max <= 0 || hits >= max {
		return
	}
	frac := float32(hits) / float32(max)
	vector.DrawFilledRect(screen, x, y, cellPx, 2, color.RGBA{R: 60, G: 20, B: 20, A: 255}, false)
	vector.DrawFilledRect(screen, x, y, cellPx*frac, 2, color.RGBA{R: 220, G: 60, B: 60, A: 255}, false)
}

// DrawHUD renders the squad status line and the tail of the sim log.
func (bs *BattleSim) DrawHUD(screen *ebiten.Image, paused bool, speed int) {
	st := bs.Squad.Status()
	line := fmt.Sprintf("T=%d  size=%d hp=%.0f%% tactic=%s formation=%s in_zone=%v  speed=%dx",
		bs.Tick, st.Size, st.AvgHealthPercent, st.Tactic, st.Formation, st.AllMembersInTargetZone, speed)
	if paused {
		line += "  [PAUSED]"
	}
	ebitenutil.DebugPrintAt(screen, line, marginPx, 2)

	// Last few log entries, thought-log style.
	entries := bs.SimLog.Entries()
	const tail = 8
	start := 0
	if len(entries) > tail {
		start = len(entries) - tail
	}
	sh := screen.Bounds().Dy()
	y := sh - (len(entries)-start)*14 - 6
	for _, e := range entries[start:] {
		ebitenutil.DebugPrintAt(screen, e.String(), marginPx, y)
		y += 14
	}
}
