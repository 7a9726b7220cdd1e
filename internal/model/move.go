package model

// Category splits moves by which stats they use.
type Category int

const (
	CategoryPhysical Category = iota
	CategorySpecial
	CategoryStatus
)

func (c Category) String() string {
	switch c {
	case CategoryPhysical:
		return "physical"
	case CategorySpecial:
		return "special"
	default:
		return "status"
	}
}

// TargetKind describes which battlers a move may hit.
type TargetKind int

const (
	TargetAdjacentFoe TargetKind = iota
	TargetUser
	TargetAllFoes
	TargetAllAdjacent
	TargetAlly
	TargetRandomFoe
)

// Fixed reports whether the target set is implied by the move itself,
// so the player is never asked to pick one.
func (t TargetKind) Fixed() bool {
	switch t {
	case TargetUser, TargetAllFoes, TargetAllAdjacent, TargetRandomFoe:
		return true
	default:
		return false
	}
}

// MoveFlag marks move traits effects react to.
type MoveFlag uint16

const (
	FlagContact MoveFlag = 1 << iota
	FlagPunch
	FlagSound
	FlagTwoTurn
	FlagHeal
	FlagBite
	FlagPulse
)

// StatChange is a stage change applied by a move.
type StatChange struct {
	Stat  Stat `yaml:"stat"`
	Power int  `yaml:"power"`
	// Self applies the change to the user instead of the target.
	Self bool `yaml:"self"`
}

// MoveData is the immutable description of a move.
type MoveData struct {
	ID           string
	Type         Type
	Power        int
	Accuracy     int // 0 never misses
	PP           int
	Priority     int
	Category     Category
	Target       TargetKind
	Flags        MoveFlag
	EffectChance int // percent chance of Status / StatChanges on hit, 0 = always
	Status       Status
	StatChanges  []StatChange
	Hits         int // fixed hit count, 0 means 1
	// Routine names a special resolution routine ("struggle" applies recoil).
	Routine string
}

// Move is a move slot of a battler with its remaining PP.
type Move struct {
	Data *MoveData
	PP   int
	// Disabled moves cannot be selected.
	Disabled bool
}

// NewMove returns a fresh move slot with full PP.
func NewMove(data *MoveData) *Move {
	return &Move{Data: data, PP: data.PP}
}

// ID returns the move identifier.
func (m *Move) ID() string { return m.Data.ID }

// Has reports whether the move carries flag f.
func (m *Move) Has(f MoveFlag) bool { return m.Data.Flags&f != 0 }

// Usable reports whether the move can be selected.
func (m *Move) Usable() bool {
	return !m.Disabled && (m.PP > 0 || m.Data.PP == 0)
}

// Physical reports whether the move uses Attack and Defense.
func (m *Move) Physical() bool { return m.Data.Category == CategoryPhysical }

// Special reports whether the move uses Sp. Atk and Sp. Def.
func (m *Move) Special() bool { return m.Data.Category == CategorySpecial }

// StatusMove reports whether the move deals no direct damage.
func (m *Move) StatusMove() bool { return m.Data.Category == CategoryStatus }

// Struggle is the move used when nothing else can be selected.
var Struggle = &MoveData{
	ID:       "struggle",
	Type:     TypeNone,
	Power:    50,
	Accuracy: 0,
	Category: CategoryPhysical,
	Target:   TargetRandomFoe,
	Flags:    FlagContact,
	Routine:  "struggle",
}

// NewStruggle returns a struggle slot. Struggle never runs out of PP.
func NewStruggle() *Move {
	return &Move{Data: Struggle}
}
