package ability

import (
	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

func registerOffense(r *battle.Registry) {
	register(r, typeBoost(model.TypeFire, 1.0/3, 1.5), "blaze")
	register(r, typeBoost(model.TypeWater, 1.0/3, 1.5), "torrent")
	register(r, typeBoost(model.TypeGrass, 1.0/3, 1.5), "overgrow")
	register(r, typeBoost(model.TypeBug, 1.0/3, 1.5), "swarm")
	register(r, typeBoost(model.TypeSteel, 0, 1.5), "steelworker")
	register(r, typeBoost(model.TypeDragon, 0, 1.5), "dragons_maw")
	register(r, typeBoost(model.TypeElectric, 0, 1.3), "transistor")
	register(r, typeBoost(model.TypeRock, 0, 1.5), "rocky_payload")

	register(r, typeConverter(model.TypeNormal, model.TypeFairy, 1.2), "pixilate")
	register(r, typeConverter(model.TypeNormal, model.TypeFlying, 1.2), "aerilate")
	register(r, typeConverter(model.TypeNormal, model.TypeIce, 1.2), "refrigerate")
	register(r, typeConverter(model.TypeNormal, model.TypeElectric, 1.2), "galvanize")
	register(r, typeConverter(model.TypeNone, model.TypeNormal, 1.2), "normalize")

	register(r, priorityBoost(1, func(_ *battle.Battler, m *model.Move) bool { return m.StatusMove() }), "prankster")
	register(r, priorityBoost(1, func(b *battle.Battler, m *model.Move) bool {
		return m.Data.Type == model.TypeFlying && b.HP == b.MaxHP
	}), "gale_wings")
	register(r, priorityBoost(3, func(_ *battle.Battler, m *model.Move) bool { return m.Has(model.FlagHeal) }), "triage")

	register(r, flagBoost(model.FlagPunch, 1.2), "iron_fist")
	register(r, flagBoost(model.FlagBite, 1.5), "strong_jaw")
	register(r, flagBoost(model.FlagPulse, 1.5), "mega_launcher")
	register(r, flagBoost(model.FlagContact, 1.3), "tough_claws")
	register(r, flagBoost(model.FlagSound, 1.3), "punk_rock")

	register(r, statBoost(model.StatAtk, 2), "huge_power", "pure_power")

	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Technician{Base: battle.NewAbility(id, owner)}
	}, "technician")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Guts{Base: battle.NewAbility(id, owner)}
	}, "guts")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &ParentalBond{Base: battle.NewAbility(id, owner)}
	}, "parental_bond")
	register(r, accuracy(1.3, 1), "compound_eyes")
	register(r, accuracy(0.8, 1.5), "hustle")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &VictoryStar{Base: battle.NewAbility(id, owner).WithAllies()}
	}, "victory_star")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &SereneGrace{Base: battle.NewAbility(id, owner)}
	}, "serene_grace")
}

// TypeBoost scales the owner's moves of Type. With a Threshold the boost
// only applies at or below that HP rate.
type TypeBoost struct {
	battle.Base
	Type      model.Type
	Threshold float64
	Factor    float64
}

func typeBoost(t model.Type, threshold, factor float64) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &TypeBoost{Base: battle.NewAbility(id, owner), Type: t, Threshold: threshold, Factor: factor}
	}
}

func (t *TypeBoost) SpAtkMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !t.OwnedBy(user) || move.Data.Type != t.Type || move.StatusMove() {
		return 1
	}
	if t.Threshold > 0 && user.HPRate() > t.Threshold {
		return 1
	}
	return t.Factor
}

// TypeConverter turns the owner's moves of From (any type for TypeNone)
// into To and boosts the converted moves.
type TypeConverter struct {
	battle.Base
	From   model.Type
	To     model.Type
	Factor float64
}

func typeConverter(from, to model.Type, factor float64) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &TypeConverter{Base: battle.NewAbility(id, owner), From: from, To: to, Factor: factor}
	}
}

func (c *TypeConverter) converts(user *battle.Battler, move *model.Move) bool {
	if !c.OwnedBy(user) || move.StatusMove() {
		return false
	}
	return c.From == model.TypeNone || move.Data.Type == c.From
}

func (c *TypeConverter) MoveTypeChange(_ battle.Context, user, _ *battle.Battler, move *model.Move, _ model.Type) (model.Type, bool) {
	if !c.converts(user, move) {
		return model.TypeNone, false
	}
	return c.To, true
}

func (c *TypeConverter) BasePowerMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !c.converts(user, move) {
		return 1
	}
	return c.Factor
}

// PriorityBoost raises the priority of the owner's moves matching Applies.
type PriorityBoost struct {
	battle.Base
	Delta   int
	Applies func(*battle.Battler, *model.Move) bool
}

func priorityBoost(delta int, applies func(*battle.Battler, *model.Move) bool) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &PriorityBoost{Base: battle.NewAbility(id, owner), Delta: delta, Applies: applies}
	}
}

func (p *PriorityBoost) MovePriorityChange(_ battle.Context, user *battle.Battler, priority int, move *model.Move) (int, bool) {
	if !p.OwnedBy(user) || !p.Applies(user, move) {
		return 0, false
	}
	return priority + p.Delta, true
}

// FlagBoost scales the base power of the owner's moves carrying Flag.
type FlagBoost struct {
	battle.Base
	Flag   model.MoveFlag
	Factor float64
}

func flagBoost(flag model.MoveFlag, factor float64) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &FlagBoost{Base: battle.NewAbility(id, owner), Flag: flag, Factor: factor}
	}
}

func (f *FlagBoost) BasePowerMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !f.OwnedBy(user) || !move.Has(f.Flag) {
		return 1
	}
	return f.Factor
}

// StatBoost scales one stat of its owner.
type StatBoost struct {
	battle.Base
	Stat   model.Stat
	Factor float64
}

func statBoost(stat model.Stat, factor float64) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &StatBoost{Base: battle.NewAbility(id, owner), Stat: stat, Factor: factor}
	}
}

func (s *StatBoost) StatModifier(_ battle.Context, b *battle.Battler, stat model.Stat) float64 {
	if stat != s.Stat || !s.OwnedBy(b) {
		return 1
	}
	return s.Factor
}

// Technician boosts the owner's weak moves.
type Technician struct {
	battle.Base
}

func (t *Technician) BasePowerMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !t.OwnedBy(user) || move.Data.Power <= 0 || move.Data.Power > 60 {
		return 1
	}
	return 1.5
}

// Guts boosts physical attacks while the owner has a major status.
type Guts struct {
	battle.Base
}

func (g *Guts) SpAtkMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !g.OwnedBy(user) || !move.Physical() || !user.Status.Major() {
		return 1
	}
	return 1.5
}

// ParentalBond makes single-strike attacks hit a second time at quarter power.
type ParentalBond struct {
	battle.Base
}

func (p *ParentalBond) MoveRoutineOverride(_ battle.Context, user *battle.Battler, move *model.Move) (battle.Routine, bool) {
	if !p.OwnedBy(user) || move.StatusMove() || move.Data.Hits > 1 || !singleTarget(move) {
		return battle.Routine{}, false
	}
	return battle.Routine{Hits: 2, FollowUp: 0.25}, true
}

func singleTarget(m *model.Move) bool {
	return m.Data.Target == model.TargetAdjacentFoe || m.Data.Target == model.TargetRandomFoe
}

// Accuracy scales the owner's accuracy, and its attack by AtkFactor.
type Accuracy struct {
	battle.Base
	Factor    float64
	AtkFactor float64
}

func accuracy(factor, atk float64) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &Accuracy{Base: battle.NewAbility(id, owner), Factor: factor, AtkFactor: atk}
	}
}

func (a *Accuracy) ChanceOfHitMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !a.OwnedBy(user) {
		return 1
	}
	if a.AtkFactor != 1 && !move.Physical() {
		return 1
	}
	return a.Factor
}

func (a *Accuracy) StatModifier(_ battle.Context, b *battle.Battler, stat model.Stat) float64 {
	if stat != model.StatAtk || !a.OwnedBy(b) {
		return 1
	}
	return a.AtkFactor
}

// VictoryStar raises the accuracy of the owner and its allies.
type VictoryStar struct {
	battle.Base
}

func (v *VictoryStar) ChanceOfHitMultiplier(_ battle.Context, user, _ *battle.Battler, _ *model.Move) float64 {
	if !v.SameBank(user) {
		return 1
	}
	return 1.1
}

// SereneGrace doubles the secondary effect chance of the owner's moves.
type SereneGrace struct {
	battle.Base
}

func (s *SereneGrace) EffectChanceModifier(_ battle.Context, user *battle.Battler, _ *model.Move) float64 {
	if !s.OwnedBy(user) {
		return 1
	}
	return 2
}
