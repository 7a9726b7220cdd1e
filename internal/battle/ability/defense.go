package ability

import (
	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

func registerDefense(r *battle.Registry) {
	register(r, statusImmunity(false, model.StatusParalysis), "limber")
	register(r, statusImmunity(false, model.StatusSleep), "insomnia", "vital_spirit")
	register(r, statusImmunity(false, model.StatusPoison, model.StatusToxic), "immunity")
	register(r, statusImmunity(false, model.StatusBurn), "water_veil")
	register(r, statusImmunity(false, model.StatusFreeze), "magma_armor")
	register(r, statusImmunity(false, model.StatusConfusion), "own_tempo")
	register(r, statusImmunity(false, model.StatusFlinch), "inner_focus")
	register(r, statusImmunity(true, model.StatusPoison, model.StatusToxic), "pastel_veil")
	register(r, statusImmunity(true, model.StatusSleep), "sweet_veil")

	all := []model.Stat{model.StatAtk, model.StatDfe, model.StatSpd, model.StatAts, model.StatDfs, model.StatAcc, model.StatEva}
	register(r, statGuard(all...), "clear_body", "white_smoke", "full_metal_body")
	register(r, statGuard(model.StatAtk), "hyper_cutter")
	register(r, statGuard(model.StatAcc), "keen_eye")
	register(r, statGuard(model.StatDfe), "big_pecks")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &FlowerVeil{Base: battle.NewAbility(id, owner).WithAllies()}
	}, "flower_veil")

	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &FriendGuard{Base: battle.NewAbility(id, owner).WithAllies()}
	}, "friend_guard")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Sturdy{Base: battle.NewAbility(id, owner)}
	}, "sturdy")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Multiscale{Base: battle.NewAbility(id, owner)}
	}, "multiscale", "shadow_shield")
	register(r, typeResist(0.5, model.TypeFire, model.TypeIce), "thick_fat")
	register(r, typeResist(0.5, model.TypeFire), "heatproof", "water_bubble")

	register(r, moveImmunity(func(_, _ *battle.Battler, m *model.Move) bool {
		return m.Data.Type == model.TypeGround && !m.StatusMove()
	}), "levitate")
	register(r, moveImmunity(func(_, _ *battle.Battler, m *model.Move) bool {
		return m.Has(model.FlagSound)
	}), "soundproof")
	register(r, moveImmunity(func(user, target *battle.Battler, m *model.Move) bool {
		return isFoe(target, user) && m.Data.Priority > 0
	}), "queenly_majesty", "dazzling")

	register(r, absorbHeal(model.TypeElectric), "volt_absorb")
	register(r, absorbHeal(model.TypeWater), "water_absorb")
	register(r, absorbStat(model.TypeGrass, model.StatAtk), "sap_sipper")
	register(r, absorbStat(model.TypeElectric, model.StatAts), "lightning_rod")
	register(r, absorbStat(model.TypeWater, model.StatAts), "storm_drain")
	register(r, absorbStat(model.TypeElectric, model.StatSpd), "motor_drive")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &AbsorbType{Base: battle.NewAbility(id, owner), Type: model.TypeFire, FlashFire: true}
	}, "flash_fire")

	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &MagicGuard{Base: battle.NewAbility(id, owner)}
	}, "magic_guard")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &StickyHold{Base: battle.NewAbility(id, owner)}
	}, "sticky_hold")
}

// StatusImmunity prevents a set of statuses on its owner, or on the whole
// bank when it affects allies.
type StatusImmunity struct {
	battle.Base
	Statuses []model.Status
}

func statusImmunity(allies bool, statuses ...model.Status) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		base := battle.NewAbility(id, owner)
		if allies {
			base = base.WithAllies()
		}
		return &StatusImmunity{Base: base, Statuses: statuses}
	}
}

func (s *StatusImmunity) StatusPrevention(h *battle.StatusChangeHandler, status model.Status, target, _ *battle.Battler, _ *model.Move) *battle.Prevention {
	if s.AffectsAllies() {
		if !s.SameBank(target) {
			return nil
		}
	} else if !s.OwnedBy(target) {
		return nil
	}
	for _, st := range s.Statuses {
		if st != status {
			continue
		}
		owner := s.Owner()
		if status == model.StatusFlinch {
			return battle.Prevent(nil)
		}
		return battle.Prevent(func() {
			announce(h, owner, "%s is protected by %s!", target.Name, s.ID())
		})
	}
	return nil
}

// StatGuard prevents foes from lowering the listed stats of its owner.
type StatGuard struct {
	battle.Base
	Stats []model.Stat
}

func statGuard(stats ...model.Stat) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &StatGuard{Base: battle.NewAbility(id, owner), Stats: stats}
	}
}

func (g *StatGuard) StatDecreasePrevention(h *battle.StatChangeHandler, stat model.Stat, target, launcher *battle.Battler, _ *model.Move) *battle.Prevention {
	if !g.OwnedBy(target) || !isFoe(target, launcher) {
		return nil
	}
	for _, s := range g.Stats {
		if s == stat {
			return battle.Prevent(func() {
				announce(h, target, "%s's %s was not lowered!", target.Name, stat.Label())
			})
		}
	}
	return nil
}

// FlowerVeil keeps foes from lowering the stats of grass battlers on its bank.
type FlowerVeil struct {
	battle.Base
}

func (f *FlowerVeil) StatDecreasePrevention(h *battle.StatChangeHandler, _ model.Stat, target, launcher *battle.Battler, _ *model.Move) *battle.Prevention {
	if !f.SameBank(target) || !target.HasType(model.TypeGrass) || !isFoe(target, launcher) {
		return nil
	}
	owner := f.Owner()
	return battle.Prevent(func() {
		announce(h, owner, "%s is protected by a veil of flowers!", target.Name)
	})
}

// FriendGuard softens the damage its allies take.
type FriendGuard struct {
	battle.Base
}

func (f *FriendGuard) Mod3Multiplier(_ battle.Context, _, target *battle.Battler, _ *model.Move) float64 {
	if !f.SameBank(target) || f.OwnedBy(target) {
		return 1
	}
	return 0.75
}

// Sturdy leaves its owner at 1 HP when a hit would knock it out from full HP.
type Sturdy struct {
	battle.Base
}

func (s *Sturdy) DamagePrevention(h *battle.DamageHandler, hp int, target, launcher *battle.Battler, move *model.Move) *battle.Prevention {
	if !s.OwnedBy(target) || launcher == nil || move == nil || target.HP != target.MaxHP || hp < target.HP {
		return nil
	}
	return battle.Replace(target.HP-1, func() {
		announce(h, target, "%s endured the hit!", target.Name)
	})
}

// Multiscale halves the damage taken at full HP.
type Multiscale struct {
	battle.Base
}

func (m *Multiscale) Mod3Multiplier(_ battle.Context, _, target *battle.Battler, _ *model.Move) float64 {
	if !m.OwnedBy(target) || target.HP != target.MaxHP {
		return 1
	}
	return 0.5
}

// TypeResist weakens the attacking stat of moves of Types aimed at its owner.
type TypeResist struct {
	battle.Base
	Types  []model.Type
	Factor float64
}

func typeResist(factor float64, types ...model.Type) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &TypeResist{Base: battle.NewAbility(id, owner), Types: types, Factor: factor}
	}
}

func (t *TypeResist) SpAtkMultiplier(_ battle.Context, _, target *battle.Battler, move *model.Move) float64 {
	if !t.OwnedBy(target) {
		return 1
	}
	for _, tp := range t.Types {
		if move.Data.Type == tp {
			return t.Factor
		}
	}
	return 1
}

// MoveImmunity makes its owner unaffected by the moves matching Matches.
type MoveImmunity struct {
	battle.Base
	Matches func(user, target *battle.Battler, move *model.Move) bool
}

func moveImmunity(matches func(user, target *battle.Battler, move *model.Move) bool) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &MoveImmunity{Base: battle.NewAbility(id, owner), Matches: matches}
	}
}

func (m *MoveImmunity) MoveAbilityImmunity(l *battle.Logic, user, target *battle.Battler, move *model.Move) *battle.Prevention {
	if !m.OwnedBy(target) || user == target || !m.Matches(user, target, move) {
		return nil
	}
	return battle.Prevent(func() {
		announce(l.Presenter(), target, "It doesn't affect %s...", target.Name)
	})
}

// AbsorbType makes its owner immune to moves of Type. The absorbed move
// heals a quarter of its max HP, raises Stat, or powers up its fire moves.
type AbsorbType struct {
	battle.Base
	Type      model.Type
	Heal      bool
	Stat      model.Stat
	Power     int
	FlashFire bool

	activated bool
}

func absorbHeal(t model.Type) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &AbsorbType{Base: battle.NewAbility(id, owner), Type: t, Heal: true}
	}
}

func absorbStat(t model.Type, stat model.Stat) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &AbsorbType{Base: battle.NewAbility(id, owner), Type: t, Stat: stat, Power: 1}
	}
}

func (a *AbsorbType) MoveAbilityImmunity(l *battle.Logic, user, target *battle.Battler, move *model.Move) *battle.Prevention {
	if !a.OwnedBy(target) || user == target || move.Data.Type != a.Type {
		return nil
	}
	return battle.Prevent(func() {
		l.Presenter().ShowAbility(target)
		switch {
		case a.Heal:
			if l.DamageHandler().Heal(target, max(target.MaxHP/4, 1), move) == 0 {
				l.Presenter().Message("It doesn't affect " + target.Name + "...")
			}
		case a.Power != 0:
			l.StatChangeHandler().StatChange(a.Stat, a.Power, target, target, move)
		case a.FlashFire:
			a.activated = true
			l.Presenter().Message("The power of " + target.Name + "'s fire-type moves rose!")
		}
	})
}

func (a *AbsorbType) SpAtkMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !a.activated || !a.OwnedBy(user) || move.Data.Type != a.Type {
		return 1
	}
	return 1.5
}

// MagicGuard protects its owner from passive damage.
type MagicGuard struct {
	battle.Base
}

func (m *MagicGuard) DamagePrevention(_ *battle.DamageHandler, _ int, target, launcher *battle.Battler, move *model.Move) *battle.Prevention {
	if !m.OwnedBy(target) || move != nil || launcher != nil {
		return nil
	}
	return battle.Prevent(nil)
}

// StickyHold keeps foes from taking its owner's item.
type StickyHold struct {
	battle.Base
}

func (s *StickyHold) ItemChangePrevention(h *battle.ItemChangeHandler, _ string, target, launcher *battle.Battler, _ *model.Move) *battle.Prevention {
	if !s.OwnedBy(target) || !isFoe(target, launcher) {
		return nil
	}
	return battle.Prevent(func() {
		announce(h, target, "%s's item cannot be removed!", target.Name)
	})
}
