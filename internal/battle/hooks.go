package battle

import "github.com/udisondev/battlecore/internal/model"

// Multiplier hooks. Results are multiplied together and must not depend on
// the evaluation order or mutate anything.

type BasePowerMultiplier interface {
	BasePowerMultiplier(ctx Context, user, target *Battler, move *model.Move) float64
}

// SpAtkMultiplier scales the attacking stat in the damage formula.
type SpAtkMultiplier interface {
	SpAtkMultiplier(ctx Context, user, target *Battler, move *model.Move) float64
}

// SpDefMultiplier scales the defending stat in the damage formula.
type SpDefMultiplier interface {
	SpDefMultiplier(ctx Context, user, target *Battler, move *model.Move) float64
}

type Mod1Multiplier interface {
	Mod1Multiplier(ctx Context, user, target *Battler, move *model.Move) float64
}

type Mod2Multiplier interface {
	Mod2Multiplier(ctx Context, user, target *Battler, move *model.Move) float64
}

type Mod3Multiplier interface {
	Mod3Multiplier(ctx Context, user, target *Battler, move *model.Move) float64
}

type ChanceOfHitMultiplier interface {
	ChanceOfHitMultiplier(ctx Context, user, target *Battler, move *model.Move) float64
}

// EffectChanceModifier scales the secondary effect chance of the user's moves.
type EffectChanceModifier interface {
	EffectChanceModifier(ctx Context, user *Battler, move *model.Move) float64
}

// StatModifier scales a battler's effective stat.
type StatModifier interface {
	StatModifier(ctx Context, b *Battler, stat model.Stat) float64
}

// Prevention hooks. The first non-nil blocking result wins.

type DamagePrevention interface {
	DamagePrevention(h *DamageHandler, hp int, target, launcher *Battler, move *model.Move) *Prevention
}

type StatusPrevention interface {
	StatusPrevention(h *StatusChangeHandler, status model.Status, target, launcher *Battler, move *model.Move) *Prevention
}

type StatIncreasePrevention interface {
	StatIncreasePrevention(h *StatChangeHandler, stat model.Stat, target, launcher *Battler, move *model.Move) *Prevention
}

type StatDecreasePrevention interface {
	StatDecreasePrevention(h *StatChangeHandler, stat model.Stat, target, launcher *Battler, move *model.Move) *Prevention
}

// MovePreventionUser can stop the user from executing its move.
type MovePreventionUser interface {
	MovePreventionUser(l *Logic, user *Battler, targets []*Battler, move *model.Move) *Prevention
}

// MovePreventionTarget can stop one target from being affected.
type MovePreventionTarget interface {
	MovePreventionTarget(l *Logic, user, target *Battler, move *model.Move) *Prevention
}

// MoveAbilityImmunity is the ability-driven variant of MovePreventionTarget,
// consulted after it (absorb, levitate, soundproof).
type MoveAbilityImmunity interface {
	MoveAbilityImmunity(l *Logic, user, target *Battler, move *model.Move) *Prevention
}

// MoveDisabledCheck can reject a move at selection and execution time.
type MoveDisabledCheck interface {
	MoveDisabledCheck(l *Logic, user *Battler, move *model.Move) *Prevention
}

type WeatherPrevention interface {
	WeatherPrevention(h *WeatherChangeHandler, weather, last model.Weather) *Prevention
}

type TerrainPrevention interface {
	TerrainPrevention(h *TerrainChangeHandler, terrain, last model.Terrain) *Prevention
}

type SwitchPrevention interface {
	SwitchPrevention(h *SwitchHandler, who *Battler, move *model.Move, reason SwitchReason) *Prevention
}

// SwitchPassthrough lets a battler switch out regardless of preventions.
type SwitchPassthrough interface {
	SwitchPassthrough(h *SwitchHandler, who *Battler, move *model.Move, reason SwitchReason) bool
}

type ItemChangePrevention interface {
	ItemChangePrevention(h *ItemChangeHandler, item string, target, launcher *Battler, move *model.Move) *Prevention
}

type AbilityChangePrevention interface {
	AbilityChangePrevention(h *AbilityChangeHandler, ability string, target, launcher *Battler, move *model.Move) *Prevention
}

// Notification hooks. Every matching effect fires, in board order.

// SwitchEvent fires when with replaces who. On entry events who == with.
type SwitchEvent interface {
	OnSwitchEvent(h *SwitchHandler, who, with *Battler)
}

// PreSwitchEvent fires on the whole board before the switch events of with,
// so field-wide conditions apply to the entrant before its own entry effects.
type PreSwitchEvent interface {
	OnPreSwitchEvent(h *SwitchHandler, who, with *Battler)
}

type PostDamage interface {
	OnPostDamage(h *DamageHandler, hp int, target, launcher *Battler, move *model.Move)
}

type PostDamageDeath interface {
	OnPostDamageDeath(h *DamageHandler, hp int, target, launcher *Battler, move *model.Move)
}

type PostStatusChange interface {
	OnPostStatusChange(h *StatusChangeHandler, status model.Status, target, launcher *Battler, move *model.Move)
}

type StatChangePost interface {
	OnStatChangePost(h *StatChangeHandler, stat model.Stat, power int, target, launcher *Battler, move *model.Move)
}

type EndTurnEvent interface {
	OnEndTurnEvent(l *Logic, battlers []*Battler)
}

type PostActionEvent interface {
	OnPostActionEvent(l *Logic, battlers []*Battler)
}

type PostWeatherChange interface {
	OnPostWeatherChange(h *WeatherChangeHandler, weather, last model.Weather)
}

type PostTerrainChange interface {
	OnPostTerrainChange(h *TerrainChangeHandler, terrain, last model.Terrain)
}

type PreItemChange interface {
	OnPreItemChange(h *ItemChangeHandler, item string, target, launcher *Battler, move *model.Move)
}

type PostItemChange interface {
	OnPostItemChange(h *ItemChangeHandler, item string, target, launcher *Battler, move *model.Move)
}

type PostAbilityChange interface {
	OnPostAbilityChange(h *AbilityChangeHandler, ability string, target, launcher *Battler, move *model.Move)
}

// PreAccuracyCheck fires once per move execution, before any target is rolled.
type PreAccuracyCheck interface {
	OnPreAccuracyCheck(l *Logic, user *Battler, targets []*Battler, move *model.Move)
}

// Override hooks. The first effect answering ok wins.

type MoveTypeChange interface {
	MoveTypeChange(ctx Context, user, target *Battler, move *model.Move, t model.Type) (model.Type, bool)
}

type MovePriorityChange interface {
	MovePriorityChange(ctx Context, user *Battler, priority int, move *model.Move) (int, bool)
}

// StatChangeOverride rewrites the power of an incoming stage change.
type StatChangeOverride interface {
	StatChangeOverride(h *StatChangeHandler, stat model.Stat, power int, target, launcher *Battler, move *model.Move) (int, bool)
}

// MoveRoutineOverride swaps the resolution routine of a damaging move.
type MoveRoutineOverride interface {
	MoveRoutineOverride(ctx Context, user *Battler, move *model.Move) (Routine, bool)
}

// TwoTurnShortcut lets a charging move skip its charge turn.
type TwoTurnShortcut interface {
	TwoTurnShortcut(l *Logic, user *Battler, move *model.Move) bool
}

// ForcedMove pins the next move of its owner (encore-like effects).
type ForcedMove interface {
	ForcedMove() *model.Move
}

// Routine describes how a damaging move distributes its hits.
type Routine struct {
	// Hits is the number of strikes, at least 1.
	Hits int
	// FollowUp scales the power of every strike after the first. 0 means 1.
	FollowUp float64
}
