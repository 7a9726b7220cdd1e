package battle

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/battlecore/internal/model"
)

// DamageHandler owns HP changes.
type DamageHandler struct {
	handler
}

// Damage removes up to hp from target after the damage preventions ran.
// launcher and move are nil for passive damage (weather, status, recoil).
// Returns the HP actually removed.
func (h *DamageHandler) Damage(hp int, target, launcher *Battler, move *model.Move) int {
	if hp <= 0 || target.Dead() {
		return 0
	}
	effects := h.logic.EffectsFor(target, launcher)
	hp, blocked := ResolvePrevention(effects, hp, func(e DamagePrevention, v int) *Prevention {
		return e.DamagePrevention(h, v, target, launcher, move)
	})
	if blocked || hp <= 0 {
		return 0
	}
	dealt := min(hp, target.HP)
	target.HP -= dealt
	h.logic.presenter.ShowHP(target)
	slog.Debug("damage dealt", "target", target, "hp", dealt, "left", target.HP)

	if target.Dead() {
		h.Message(fmt.Sprintf("%s fainted!", target.Name))
		Notify(effects, func(e PostDamageDeath) {
			e.OnPostDamageDeath(h, dealt, target, launcher, move)
		})
		return dealt
	}
	Notify(effects, func(e PostDamage) {
		e.OnPostDamage(h, dealt, target, launcher, move)
	})
	return dealt
}

// Heal restores up to hp to target. Returns the HP actually restored.
func (h *DamageHandler) Heal(target *Battler, hp int, move *model.Move) int {
	if hp <= 0 || target.Dead() || target.HP >= target.MaxHP {
		return 0
	}
	healed := min(hp, target.MaxHP-target.HP)
	target.HP += healed
	h.logic.presenter.ShowHP(target)
	h.Message(fmt.Sprintf("%s's HP was restored.", target.Name))
	return healed
}
