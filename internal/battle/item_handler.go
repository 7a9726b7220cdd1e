package battle

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/model"
)

// ItemChangeHandler owns held item changes.
type ItemChangeHandler struct {
	handler
}

// CanLoseItem reports whether launcher may take or replace target's item.
func (h *ItemChangeHandler) CanLoseItem(item string, target, launcher *Battler, move *model.Move) bool {
	if launcher == nil || launcher == target {
		return true
	}
	return FirstPrevention(h.logic.EffectsFor(target, launcher), func(e ItemChangePrevention) *Prevention {
		return e.ItemChangePrevention(h, item, target, launcher, move)
	}) == nil
}

// ChangeItem gives item to target, "" removing the held item. When
// overwrite is false a removal counts as consumption.
func (h *ItemChangeHandler) ChangeItem(item string, overwrite bool, target, launcher *Battler, move *model.Move) bool {
	if !h.CanLoseItem(item, target, launcher, move) {
		return false
	}
	effects := h.logic.EffectsFor(target, launcher)
	Notify(effects, func(e PreItemChange) {
		e.OnPreItemChange(h, item, target, launcher, move)
	})
	old := target.ItemID
	if item == "" && !overwrite && old != "" {
		target.ItemConsumed = true
		target.ConsumedItem = old
	}
	if item != "" {
		target.ItemConsumed = false
	}
	target.ItemID = item
	if target.item != nil {
		target.item.Kill()
		target.item = nil
	}
	if item != "" && target.Active() {
		target.item = h.logic.registry.Create(FamilyItem, item, target)
	}
	Notify(effects, func(e PostItemChange) {
		e.OnPostItemChange(h, item, target, launcher, move)
	})
	return true
}

// ConsumeItem uses up the item held by target.
func (h *ItemChangeHandler) ConsumeItem(target *Battler) bool {
	if target.ItemID == "" || target.ItemConsumed {
		return false
	}
	return h.ChangeItem("", false, target, nil, nil)
}

// AbilityChangeHandler owns ability changes.
type AbilityChangeHandler struct {
	handler
}

// CanChangeAbility reports whether target's ability may become ability.
func (h *AbilityChangeHandler) CanChangeAbility(ability string, target, launcher *Battler, move *model.Move) bool {
	if target.AbilityID == ability {
		return false
	}
	return FirstPrevention(h.logic.EffectsFor(target, launcher), func(e AbilityChangePrevention) *Prevention {
		return e.AbilityChangePrevention(h, ability, target, launcher, move)
	}) == nil
}

// ChangeAbility replaces target's ability effect. The new ability hears a
// switch event so entry abilities activate.
func (h *AbilityChangeHandler) ChangeAbility(ability string, target, launcher *Battler, move *model.Move) bool {
	if !h.CanChangeAbility(ability, target, launcher, move) {
		return false
	}
	l := h.logic
	target.AbilityID = ability
	if target.ability != nil {
		target.ability.Kill()
	}
	target.ability = l.registry.Create(FamilyAbility, ability, target)
	h.ShowAbility(target)
	h.Message(fmt.Sprintf("%s acquired %s!", target.Name, ability))
	Notify(l.EffectsFor(target, launcher), func(e PostAbilityChange) {
		e.OnPostAbilityChange(h, ability, target, launcher, move)
	})
	if !target.AbilitySuppressed() {
		Notify([]Effect{target.ability}, func(e SwitchEvent) {
			e.OnSwitchEvent(l.switcher, target, target)
		})
	}
	return true
}
