package tactics

// BattleSim is a headless harness wrapping one squad and its world. It has
// no rendering dependency and is fully deterministic: the engine itself
// contains no randomness, so identical setups replay identically. Tests,
// the headless reporter and the ebiten front end all build on it.
type BattleSim struct {
	World  *World
	Squad  *Squad
	SimLog *SimLog
	Tick   int

	hostileAI bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptLog    simOptionKind = iota // logging setup — before the world exists
	simOptInfra                       // zones and links — applied to the world
	simOptActor                       // hostiles and squad members
	simOptConfig                      // squad configuration
)

// SimOption is a builder function applied to a BattleSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*BattleSim)
}

// WithZone adds a named zone grid.
func WithZone(name string, w, h int) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) {
		bs.World.AddZone(name, w, h)
	}}
}

// WithZoneLink joins two zones: stand on (ax,ay) in a, emerge at (bx,by) in b.
func WithZoneLink(a string, ax, ay int, b string, bx, by int) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) {
		bs.World.LinkZones(a, Point{X: ax, Y: ay}, b, Point{X: bx, Y: by})
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptLog, func(bs *BattleSim) {
		bs.SimLog = NewSimLog(v)
	}}
}

// WithConfig sets the squad configuration.
func WithConfig(cfg SquadConfig) SimOption {
	return SimOption{simOptConfig, func(bs *BattleSim) {
		bs.Squad.cfg = cfg
	}}
}

// WithMember adds a red squad member with role-typical parts at (x,y).
func WithMember(role Role, zone string, x, y int) SimOption {
	return SimOption{simOptActor, func(bs *BattleSim) {
		u := bs.World.AddUnit(TeamRed, zone, Point{X: x, Y: y}, memberHits(role), memberMelee(role), memberRanged(role), memberHeal(role), memberWork(role))
		bs.Squad.AddMember(u, role)
	}}
}

// WithHostile adds a blue unit with explicit part counts.
func WithHostile(zone string, x, y, melee, ranged, heal int) SimOption {
	return SimOption{simOptActor, func(bs *BattleSim) {
		bs.World.AddUnit(TeamBlue, zone, Point{X: x, Y: y}, 200, melee, ranged, heal, 0)
	}}
}

// WithHostileStructure adds a blue structure.
func WithHostileStructure(st StructureType, zone string, x, y, hits int) SimOption {
	return SimOption{simOptActor, func(bs *BattleSim) {
		bs.World.AddStructure(TeamBlue, st, zone, Point{X: x, Y: y}, hits)
	}}
}

// WithHostileAI makes blue units fight back each tick (melee/ranged toward
// the nearest red unit). Off by default so unit tests see only the squad's
// own commands.
func WithHostileAI() SimOption {
	return SimOption{simOptLog, func(bs *BattleSim) {
		bs.hostileAI = true
	}}
}

// Role-typical bodies. Tanks are mostly hit points; attackers carry a token
// ranged capability since the attacker role fires both weapons.
func memberHits(role Role) int {
	if role == RoleTank {
		return 500
	}
	return 200
}

func memberMelee(role Role) int {
	switch role {
	case RoleAttacker:
		return 4
	case RoleTank:
		return 2
	default:
		return 0
	}
}

func memberRanged(role Role) int {
	switch role {
	case RoleAttacker:
		return 1
	case RoleRanged:
		return 4
	default:
		return 0
	}
}

func memberHeal(role Role) int {
	if role == RoleHealer {
		return 4
	}
	return 0
}

func memberWork(role Role) int {
	if role == RoleDismantler {
		return 4
	}
	return 0
}

// NewBattleSim constructs a BattleSim from the given options in ordered
// passes: logging, then zones, then the squad shell + config, then actors.
func NewBattleSim(opts ...SimOption) *BattleSim {
	bs := &BattleSim{SimLog: NewSimLog(false)}
	for _, o := range opts {
		if o.kind == simOptLog {
			o.fn(bs)
		}
	}
	bs.World = NewWorld(bs.SimLog)
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(bs)
		}
	}
	bs.Squad = NewSquad(0, bs.World, SquadConfig{
		Formation:                FormationLine,
		Tactic:                   TacticAssault,
		EngageRange:              10,
		FallbackThresholdPercent: 0,
	})
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(bs)
		}
	}
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(bs)
		}
	}
	return bs
}

// RunTicks advances the simulation n discrete time-steps: one squad
// decision pass, optional hostile reactions, then world resolution.
func (bs *BattleSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		bs.Squad.Run()
		if bs.hostileAI {
			bs.runHostileAI()
		}
		bs.World.ResolveActions()
		bs.Tick++
	}
}

// runHostileAI gives blue units a minimal fight-back loop: close with the
// nearest red unit, melee when adjacent, shoot inside ranged range.
func (bs *BattleSim) runHostileAI() {
	for _, h := range bs.World.Units() {
		if h.Team != TeamBlue || !h.Alive() {
			continue
		}
		var nearest *Unit
		best := 1 << 30
		for _, r := range bs.World.HostileUnitsIn(TeamBlue, h.Zone) {
			if d := h.Pos.Range(r.Pos); d < best {
				best = d
				nearest = r
			}
		}
		if nearest == nil {
			continue
		}
		if h.CanMelee() && best <= meleeRange {
			h.Attack(nearest)
		} else if h.CanRanged() && best <= rangedRange {
			h.RangedAttack(nearest)
		} else if h.CanMelee() || h.CanRanged() {
			h.MoveTo(nearest.Pos)
		}
		if h.CanHeal() && h.Hits < h.HitsMax {
			h.Heal(h)
		}
	}
}
