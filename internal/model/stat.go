package model

// Stat identifies a battle statistic that can be staged.
type Stat int

const (
	StatAtk Stat = iota
	StatDfe
	StatSpd
	StatAts
	StatDfs
	StatAcc
	StatEva

	statCount
)

// StatCount is the number of stageable stats.
const StatCount = int(statCount)

// Stage bounds.
const (
	MinStage = -6
	MaxStage = 6
)

var statNames = [...]string{
	StatAtk: "atk",
	StatDfe: "dfe",
	StatSpd: "spd",
	StatAts: "ats",
	StatDfs: "dfs",
	StatAcc: "acc",
	StatEva: "eva",
}

func (s Stat) String() string {
	if s < 0 || s >= statCount {
		return "unknown"
	}
	return statNames[s]
}

// Label returns a human readable stat name for battle messages.
func (s Stat) Label() string {
	switch s {
	case StatAtk:
		return "Attack"
	case StatDfe:
		return "Defense"
	case StatSpd:
		return "Speed"
	case StatAts:
		return "Sp. Atk"
	case StatDfs:
		return "Sp. Def"
	case StatAcc:
		return "accuracy"
	case StatEva:
		return "evasiveness"
	default:
		return "stat"
	}
}

// StageMultiplier converts a combat stage to the stat multiplier.
// Accuracy and evasion use the 3-based table.
func StageMultiplier(s Stat, stage int) float64 {
	stage = ClampStage(stage)
	base := 2.0
	if s == StatAcc || s == StatEva {
		base = 3.0
	}
	if stage >= 0 {
		return (base + float64(stage)) / base
	}
	return base / (base - float64(stage))
}

// ClampStage bounds a stage to [MinStage, MaxStage].
func ClampStage(stage int) int {
	if stage < MinStage {
		return MinStage
	}
	if stage > MaxStage {
		return MaxStage
	}
	return stage
}

// BaseStats are the unstaged battle stats of a creature.
type BaseStats struct {
	HP  int `yaml:"hp"`
	Atk int `yaml:"atk"`
	Dfe int `yaml:"dfe"`
	Spd int `yaml:"spd"`
	Ats int `yaml:"ats"`
	Dfs int `yaml:"dfs"`
}

// Get returns the unstaged value of s. Accuracy and evasion have no base value.
func (b BaseStats) Get(s Stat) int {
	switch s {
	case StatAtk:
		return b.Atk
	case StatDfe:
		return b.Dfe
	case StatSpd:
		return b.Spd
	case StatAts:
		return b.Ats
	case StatDfs:
		return b.Dfs
	default:
		return 1
	}
}
