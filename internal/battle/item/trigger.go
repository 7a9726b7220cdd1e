package item

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

func registerTriggers(r *battle.Registry) {
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Leftovers{Base: battle.NewItem(id, owner)}
	}, "leftovers")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Leftovers{Base: battle.NewItem(id, owner), PoisonOnly: true}
	}, "black_sludge")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &LifeOrb{Base: battle.NewItem(id, owner)}
	}, "life_orb")
	register(r, statusOrb(model.StatusBurn), "flame_orb")
	register(r, statusOrb(model.StatusToxic), "toxic_orb")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &RockyHelmet{Base: battle.NewItem(id, owner)}
	}, "rocky_helmet")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &ShellBell{Base: battle.NewItem(id, owner)}
	}, "shell_bell")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &KingsRock{Base: battle.NewItem(id, owner)}
	}, "kings_rock", "razor_fang")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &ShedShell{Base: battle.NewItem(id, owner)}
	}, "shed_shell")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &AbilityShield{Base: battle.NewItem(id, owner)}
	}, "ability_shield")
}

// Leftovers restores 1/16 of its owner's max HP every turn. With
// PoisonOnly non-poison owners lose 1/8 instead.
type Leftovers struct {
	battle.Base
	PoisonOnly bool
}

func (i *Leftovers) OnEndTurnEvent(l *battle.Logic, _ []*battle.Battler) {
	owner := i.Owner()
	if owner.Dead() || !owner.Active() {
		return
	}
	if i.PoisonOnly && !owner.HasType(model.TypePoison) {
		l.Presenter().Message(fmt.Sprintf("%s is hurt by its %s!", owner.Name, itemName(i.ID())))
		l.DamageHandler().Damage(max(owner.MaxHP/8, 1), owner, nil, nil)
		return
	}
	if owner.HP < owner.MaxHP {
		l.DamageHandler().Heal(owner, max(owner.MaxHP/16, 1), nil)
	}
}

// LifeOrb boosts its owner's attacks at the cost of 1/10 max HP per move.
type LifeOrb struct {
	battle.Base
	hit *model.Move
}

func (o *LifeOrb) Mod2Multiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !o.OwnedBy(user) || move.StatusMove() {
		return 1
	}
	return 1.3
}

func (o *LifeOrb) OnPostDamage(_ *battle.DamageHandler, _ int, _, launcher *battle.Battler, move *model.Move) {
	if o.OwnedBy(launcher) && move != nil {
		o.hit = move
	}
}

func (o *LifeOrb) OnPostDamageDeath(_ *battle.DamageHandler, _ int, target, launcher *battle.Battler, move *model.Move) {
	if o.OwnedBy(launcher) && launcher != target && move != nil {
		o.hit = move
	}
}

func (o *LifeOrb) OnPostActionEvent(l *battle.Logic, _ []*battle.Battler) {
	if o.hit == nil {
		return
	}
	o.hit = nil
	owner := o.Owner()
	if owner.Alive() {
		l.DamageHandler().Damage(max(owner.MaxHP/10, 1), owner, nil, nil)
	}
}

// StatusOrb gives its owner a status at the end of the turn.
type StatusOrb struct {
	battle.Base
	Status model.Status
}

func statusOrb(status model.Status) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &StatusOrb{Base: battle.NewItem(id, owner), Status: status}
	}
}

func (o *StatusOrb) OnEndTurnEvent(l *battle.Logic, _ []*battle.Battler) {
	owner := o.Owner()
	if owner.Dead() || !owner.Active() {
		return
	}
	l.StatusChangeHandler().StatusChange(o.Status, owner, owner, nil)
}

// RockyHelmet hurts foes making contact with its owner by 1/6 of their max HP.
type RockyHelmet struct {
	battle.Base
}

func (r *RockyHelmet) OnPostDamage(h *battle.DamageHandler, _ int, target, launcher *battle.Battler, move *model.Move) {
	r.retaliate(h, target, launcher, move)
}

func (r *RockyHelmet) OnPostDamageDeath(h *battle.DamageHandler, _ int, target, launcher *battle.Battler, move *model.Move) {
	r.retaliate(h, target, launcher, move)
}

func (r *RockyHelmet) retaliate(h *battle.DamageHandler, target, launcher *battle.Battler, move *model.Move) {
	if !r.OwnedBy(target) || !hasContact(target, launcher, move) {
		return
	}
	h.Message(fmt.Sprintf("%s was hurt by the Rocky Helmet!", launcher.Name))
	h.Damage(max(launcher.MaxHP/6, 1), launcher, nil, nil)
}

// ShellBell heals its owner by 1/8 of the damage it deals.
type ShellBell struct {
	battle.Base
}

func (s *ShellBell) OnPostDamage(h *battle.DamageHandler, hp int, target, launcher *battle.Battler, move *model.Move) {
	if !s.OwnedBy(launcher) || launcher == target || move == nil || hp < 8 {
		return
	}
	h.Heal(launcher, hp/8, nil)
}

// KingsRock makes the owner's attacks flinch 10% of the time.
type KingsRock struct {
	battle.Base
}

func (k *KingsRock) OnPostDamage(h *battle.DamageHandler, _ int, target, launcher *battle.Battler, move *model.Move) {
	if !k.OwnedBy(launcher) || launcher == target || move == nil || !h.Context().Chance(10) {
		return
	}
	h.Logic().StatusChangeHandler().StatusChange(model.StatusFlinch, target, launcher, move)
}

// ShedShell lets its owner switch out whatever traps it.
type ShedShell struct {
	battle.Base
}

func (s *ShedShell) SwitchPassthrough(_ *battle.SwitchHandler, who *battle.Battler, _ *model.Move, reason battle.SwitchReason) bool {
	return s.OwnedBy(who) && reason == battle.SwitchReasonSwitch
}

// AbilityShield keeps its owner's ability from being changed.
type AbilityShield struct {
	battle.Base
}

func (a *AbilityShield) AbilityChangePrevention(h *battle.AbilityChangeHandler, _ string, target, _ *battle.Battler, _ *model.Move) *battle.Prevention {
	if !a.OwnedBy(target) {
		return nil
	}
	return battle.Prevent(func() {
		h.Message(fmt.Sprintf("%s's ability is protected by the Ability Shield!", target.Name))
	})
}
