package battle

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/model"
)

// StatChangeHandler owns combat stage changes.
type StatChangeHandler struct {
	handler
}

// StatChangePower returns the power a change will really have once
// StatChangeOverride effects rewrote it.
func (h *StatChangeHandler) StatChangePower(stat model.Stat, power int, target, launcher *Battler, move *model.Move) int {
	if v, ok := FirstOverride(h.logic.EffectsFor(target, launcher), func(e StatChangeOverride) (int, bool) {
		return e.StatChangeOverride(h, stat, power, target, launcher, move)
	}); ok {
		return v
	}
	return power
}

// StatChange applies power stages of stat to target. Returns the applied
// delta, 0 when the change was prevented or the stage is already at its bound.
func (h *StatChangeHandler) StatChange(stat model.Stat, power int, target, launcher *Battler, move *model.Move) int {
	if power == 0 || target.Dead() {
		return 0
	}
	power = h.StatChangePower(stat, power, target, launcher, move)
	if power == 0 {
		return 0
	}
	effects := h.logic.EffectsFor(target, launcher)
	var blocked bool
	if power > 0 {
		power, blocked = ResolvePrevention(effects, power, func(e StatIncreasePrevention, v int) *Prevention {
			return e.StatIncreasePrevention(h, stat, target, launcher, move)
		})
	} else {
		power, blocked = ResolvePrevention(effects, power, func(e StatDecreasePrevention, v int) *Prevention {
			return e.StatDecreasePrevention(h, stat, target, launcher, move)
		})
	}
	if blocked || power == 0 {
		return 0
	}

	old := target.Stages[stat]
	next := model.ClampStage(old + power)
	if next == old {
		dir := "higher"
		if power < 0 {
			dir = "lower"
		}
		h.Message(fmt.Sprintf("%s's %s won't go any %s!", target.Name, stat.Label(), dir))
		return 0
	}
	target.Stages[stat] = next
	delta := next - old
	h.Message(stageMessage(target, stat, delta))
	Notify(effects, func(e StatChangePost) {
		e.OnStatChangePost(h, stat, delta, target, launcher, move)
	})
	return delta
}

func stageMessage(b *Battler, stat model.Stat, delta int) string {
	verb := "rose"
	if delta < 0 {
		verb = "fell"
	}
	if delta >= 2 || delta <= -2 {
		verb += " sharply"
	}
	return fmt.Sprintf("%s's %s %s!", b.Name, stat.Label(), verb)
}
