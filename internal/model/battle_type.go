package model

// Type is an elemental type of a creature or a move.
type Type int

const (
	TypeNone Type = iota
	TypeNormal
	TypeFire
	TypeWater
	TypeGrass
	TypeElectric
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon
	TypeDark
	TypeSteel
	TypeFairy
)

var typeNames = [...]string{
	TypeNone:     "none",
	TypeNormal:   "normal",
	TypeFire:     "fire",
	TypeWater:    "water",
	TypeGrass:    "grass",
	TypeElectric: "electric",
	TypeIce:      "ice",
	TypeFighting: "fighting",
	TypePoison:   "poison",
	TypeGround:   "ground",
	TypeFlying:   "flying",
	TypePsychic:  "psychic",
	TypeBug:      "bug",
	TypeRock:     "rock",
	TypeGhost:    "ghost",
	TypeDragon:   "dragon",
	TypeDark:     "dark",
	TypeSteel:    "steel",
	TypeFairy:    "fairy",
}

// String returns the lowercase type name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// ParseType resolves a type by its lowercase name.
// Unknown names resolve to TypeNone.
func ParseType(name string) Type {
	for i, n := range typeNames {
		if n == name {
			return Type(i)
		}
	}
	return TypeNone
}

// typeChart holds only the non-neutral matchups: attacker → defender → factor.
var typeChart = map[Type]map[Type]float64{
	TypeNormal:   {TypeRock: 0.5, TypeGhost: 0, TypeSteel: 0.5},
	TypeFire:     {TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 2, TypeBug: 2, TypeRock: 0.5, TypeDragon: 0.5, TypeSteel: 2},
	TypeWater:    {TypeFire: 2, TypeWater: 0.5, TypeGrass: 0.5, TypeGround: 2, TypeRock: 2, TypeDragon: 0.5},
	TypeGrass:    {TypeFire: 0.5, TypeWater: 2, TypeGrass: 0.5, TypePoison: 0.5, TypeGround: 2, TypeFlying: 0.5, TypeBug: 0.5, TypeRock: 2, TypeDragon: 0.5, TypeSteel: 0.5},
	TypeElectric: {TypeWater: 2, TypeGrass: 0.5, TypeElectric: 0.5, TypeGround: 0, TypeFlying: 2, TypeDragon: 0.5},
	TypeIce:      {TypeFire: 0.5, TypeWater: 0.5, TypeGrass: 2, TypeIce: 0.5, TypeGround: 2, TypeFlying: 2, TypeDragon: 2, TypeSteel: 0.5},
	TypeFighting: {TypeNormal: 2, TypeIce: 2, TypePoison: 0.5, TypeFlying: 0.5, TypePsychic: 0.5, TypeBug: 0.5, TypeRock: 2, TypeGhost: 0, TypeDark: 2, TypeSteel: 2, TypeFairy: 0.5},
	TypePoison:   {TypeGrass: 2, TypePoison: 0.5, TypeGround: 0.5, TypeRock: 0.5, TypeGhost: 0.5, TypeSteel: 0, TypeFairy: 2},
	TypeGround:   {TypeFire: 2, TypeGrass: 0.5, TypeElectric: 2, TypePoison: 2, TypeFlying: 0, TypeBug: 0.5, TypeRock: 2, TypeSteel: 2},
	TypeFlying:   {TypeGrass: 2, TypeElectric: 0.5, TypeFighting: 2, TypeBug: 2, TypeRock: 0.5, TypeSteel: 0.5},
	TypePsychic:  {TypeFighting: 2, TypePoison: 2, TypePsychic: 0.5, TypeDark: 0, TypeSteel: 0.5},
	TypeBug:      {TypeFire: 0.5, TypeGrass: 2, TypeFighting: 0.5, TypePoison: 0.5, TypeFlying: 0.5, TypePsychic: 2, TypeGhost: 0.5, TypeDark: 2, TypeSteel: 0.5, TypeFairy: 0.5},
	TypeRock:     {TypeFire: 2, TypeIce: 2, TypeFighting: 0.5, TypeGround: 0.5, TypeFlying: 2, TypeBug: 2, TypeSteel: 0.5},
	TypeGhost:    {TypeNormal: 0, TypePsychic: 2, TypeGhost: 2, TypeDark: 0.5},
	TypeDragon:   {TypeDragon: 2, TypeSteel: 0.5, TypeFairy: 0},
	TypeDark:     {TypeFighting: 0.5, TypePsychic: 2, TypeGhost: 2, TypeDark: 0.5, TypeFairy: 0.5},
	TypeSteel:    {TypeFire: 0.5, TypeWater: 0.5, TypeElectric: 0.5, TypeIce: 2, TypeRock: 2, TypeSteel: 0.5, TypeFairy: 2},
	TypeFairy:    {TypeFire: 0.5, TypeFighting: 2, TypePoison: 0.5, TypeDragon: 2, TypeDark: 2, TypeSteel: 0.5},
}

// Effectiveness returns the damage factor of an attack of type atk against
// a defender of the given types. TypeNone on either side is neutral.
func Effectiveness(atk Type, defender ...Type) float64 {
	factor := 1.0
	row := typeChart[atk]
	for _, d := range defender {
		if d == TypeNone {
			continue
		}
		if f, ok := row[d]; ok {
			factor *= f
		}
	}
	return factor
}
