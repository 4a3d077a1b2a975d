package tactics

// StructureType identifies a battlefield structure.
type StructureType int

const (
	StructureCommand    StructureType = iota // spawn point; highest-value target
	StructureTower                           // point-defense tower
	StructureAreaWeapon                      // long-range area weapon
	StructureTradePost
	StructureLab
	StructureStorage
	StructurePowerPlant
	StructureExtension
	StructureRelay
	StructureControl // claim marker; cannot be attacked or dismantled
	StructureWall    // fortification
	StructureRampart // fortification
)

func (st StructureType) String() string {
	switch st {
	case StructureCommand:
		return "command"
	case StructureTower:
		return "tower"
	case StructureAreaWeapon:
		return "area_weapon"
	case StructureTradePost:
		return "trade_post"
	case StructureLab:
		return "lab"
	case StructureStorage:
		return "storage"
	case StructurePowerPlant:
		return "power_plant"
	case StructureExtension:
		return "extension"
	case StructureRelay:
		return "relay"
	case StructureControl:
		return "control"
	case StructureWall:
		return "wall"
	case StructureRampart:
		return "rampart"
	default:
		return "unknown"
	}
}

// basePriority is the fixed target priority for each structure type
// (lower = attacked first). Types outside the table rank last at 100.
func (st StructureType) basePriority() int {
	switch st {
	case StructureCommand:
		return 10
	case StructureTower:
		return 15
	case StructureAreaWeapon:
		return 20
	case StructureTradePost:
		return 25
	case StructureLab:
		return 30
	case StructureStorage:
		return 35
	case StructurePowerPlant:
		return 40
	case StructureExtension:
		return 60
	case StructureRelay:
		return 70
	default:
		return 100
	}
}

// isFortification reports wall-class structures, which dismantlers skip.
func (st StructureType) isFortification() bool {
	return st == StructureWall || st == StructureRampart
}

// Structure is a static battlefield installation.
type Structure struct {
	ID      int
	Type    StructureType
	Team    Team
	Zone    string
	Pos     Point
	Hits    int
	HitsMax int

	destroyed bool
}

// Alive reports whether the structure still stands.
func (s *Structure) Alive() bool {
	return s != nil && !s.destroyed && s.Hits > 0
}

// ThreatLevel is nonzero only for point-defense towers.
func (s *Structure) ThreatLevel() float64 {
	if s.Type == StructureTower {
		return 5
	}
	return 0
}
