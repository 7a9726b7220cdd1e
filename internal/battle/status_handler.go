package battle

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/model"
)

// StatusChangeHandler owns major and volatile status changes.
type StatusChangeHandler struct {
	handler
}

// StatusAppliable reports whether status may be given to target. When an
// effect prevents it, that effect's announcement runs.
func (h *StatusChangeHandler) StatusAppliable(status model.Status, target, launcher *Battler, move *model.Move) bool {
	if target.Dead() {
		return false
	}
	switch status {
	case model.StatusNone:
		return false
	case model.StatusCure:
		return target.Status != model.StatusNone
	case model.StatusConfusion:
		if target.Confusion > 0 {
			return false
		}
	case model.StatusFlinch:
		if target.Flinched {
			return false
		}
	default:
		if target.Status != model.StatusNone || typeImmune(target, status) {
			return false
		}
	}
	return FirstPrevention(h.logic.EffectsFor(target, launcher), func(e StatusPrevention) *Prevention {
		return e.StatusPrevention(h, status, target, launcher, move)
	}) == nil
}

func typeImmune(b *Battler, status model.Status) bool {
	switch status {
	case model.StatusBurn:
		return b.HasType(model.TypeFire)
	case model.StatusFreeze:
		return b.HasType(model.TypeIce)
	case model.StatusParalysis:
		return b.HasType(model.TypeElectric)
	case model.StatusPoison, model.StatusToxic:
		return b.HasType(model.TypePoison) || b.HasType(model.TypeSteel)
	default:
		return false
	}
}

// StatusChange gives status to target if appliable.
func (h *StatusChangeHandler) StatusChange(status model.Status, target, launcher *Battler, move *model.Move) bool {
	if !h.StatusAppliable(status, target, launcher, move) {
		return false
	}
	l := h.logic
	switch status {
	case model.StatusCure:
		h.Message(cureMessage(target))
		target.Status = model.StatusNone
		target.StatusCount = 0
	case model.StatusConfusion:
		target.Confusion = 2 + l.Roll(4)
		h.Message(fmt.Sprintf("%s became confused!", target.Name))
	case model.StatusFlinch:
		target.Flinched = true
	default:
		target.Status = status
		target.StatusCount = 0
		if status == model.StatusSleep {
			target.StatusCount = 1 + l.Roll(3)
		}
		h.Message(statusMessage(target, status))
	}
	Notify(l.EffectsFor(target, launcher), func(e PostStatusChange) {
		e.OnPostStatusChange(h, status, target, launcher, move)
	})
	return true
}

// residual deals the end-of-turn damage of poison, toxic and burn.
func (h *StatusChangeHandler) residual(b *Battler) {
	var hp int
	switch b.Status {
	case model.StatusPoison:
		hp = b.MaxHP / 8
		h.Message(fmt.Sprintf("%s is hurt by poison!", b.Name))
	case model.StatusToxic:
		b.StatusCount++
		hp = b.MaxHP * b.StatusCount / 16
		h.Message(fmt.Sprintf("%s is hurt by poison!", b.Name))
	case model.StatusBurn:
		hp = b.MaxHP / 16
		h.Message(fmt.Sprintf("%s is hurt by its burn!", b.Name))
	default:
		return
	}
	h.logic.damage.Damage(max(hp, 1), b, nil, nil)
}

func statusMessage(b *Battler, s model.Status) string {
	switch s {
	case model.StatusPoison:
		return fmt.Sprintf("%s was poisoned!", b.Name)
	case model.StatusToxic:
		return fmt.Sprintf("%s was badly poisoned!", b.Name)
	case model.StatusSleep:
		return fmt.Sprintf("%s fell asleep!", b.Name)
	case model.StatusFreeze:
		return fmt.Sprintf("%s was frozen solid!", b.Name)
	case model.StatusParalysis:
		return fmt.Sprintf("%s is paralyzed! It may be unable to move!", b.Name)
	case model.StatusBurn:
		return fmt.Sprintf("%s was burned!", b.Name)
	default:
		return fmt.Sprintf("%s is affected by %s.", b.Name, s)
	}
}

func cureMessage(b *Battler) string {
	switch b.Status {
	case model.StatusSleep:
		return fmt.Sprintf("%s woke up!", b.Name)
	case model.StatusFreeze:
		return fmt.Sprintf("%s thawed out!", b.Name)
	default:
		return fmt.Sprintf("%s was cured of its %s.", b.Name, b.Status)
	}
}
