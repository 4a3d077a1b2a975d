package tactics

import "math"

// Formation identifies the shape of a squad formation.
type Formation int

const (
	FormationLine    Formation = iota // 5-wide centered rows
	FormationBox                      // role-segmented rows: tanks front, healers mid, ranged rear
	FormationWedge                    // expanding V, leader at the apex
	FormationScatter                  // deterministic pseudo-spread
)

func (f Formation) String() string {
	switch f {
	case FormationLine:
		return "line"
	case FormationBox:
		return "box"
	case FormationWedge:
		return "wedge"
	case FormationScatter:
		return "scatter"
	default:
		return "unknown"
	}
}

// Offset is a member's slot relative to the leader's cell.
type Offset struct {
	DX, DY int
}

// CalculateFormationOffset maps (formation, role, index) to a relative slot.
// Pure function: identical inputs always yield identical offsets. The
// scatter spread is modular arithmetic, not randomness, so squad positions
// stay stable and replayable.
func CalculateFormationOffset(f Formation, role Role, index int) Offset {
	switch f {
	case FormationLine:
		return Offset{DX: index%5 - 2, DY: index / 5}

	case FormationBox:
		switch role {
		case RoleTank:
			return Offset{DX: index - 1, DY: -1}
		case RoleHealer:
			return Offset{DX: index - 1, DY: 0}
		case RoleRanged:
			return Offset{DX: index - 1, DY: 1}
		default:
			return Offset{DX: index, DY: 0}
		}

	case FormationWedge:
		row := int(math.Sqrt(float64(index)))
		col := index - row*row
		return Offset{DX: col - row, DY: row}

	case FormationScatter:
		return Offset{DX: (index*7)%5 - 2, DY: (index*3)%5 - 2}

	default:
		return Offset{}
	}
}

// assignOffsets recomputes every member's slot. Index is the member's
// position in registration order, so the layout follows iteration order the
// same way leader promotion does.
func (sq *Squad) assignOffsets() {
	for i, m := range sq.members {
		m.offset = CalculateFormationOffset(sq.cfg.Formation, m.role, i)
	}
}

// moveInFormation issues this tick's formation movement for one member.
// The leader advances one zone-transition step toward the target zone until
// it arrives; everyone else tracks leader-position + offset exactly — a
// member one cell off its slot still moves.
func (sq *Squad) moveInFormation(m *SquadMember) {
	u := m.unit
	if m == sq.leader || len(sq.members) == 1 {
		if sq.cfg.TargetZone != "" && u.Zone != sq.cfg.TargetZone {
			if !u.MoveTowardZone(sq.cfg.TargetZone) {
				// No route this tick; skip movement rather than surface an error.
				sq.log.AddVerbose(sq.world.Tick(), unitLabel(u), u.Team.String(), "move", "no_path", sq.cfg.TargetZone, 0)
			}
		}
		return
	}

	lead := sq.leader.unit
	if u.Zone != lead.Zone {
		u.MoveTowardZone(lead.Zone)
		return
	}
	slot := Point{X: lead.Pos.X + m.offset.DX, Y: lead.Pos.Y + m.offset.DY}
	if u.Pos != slot {
		u.MoveTo(slot)
	}
}
