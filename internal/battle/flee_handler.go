package battle

import (
	"fmt"
	"math"

	"github.com/udisondev/battlecore/internal/model"
)

// FleeResult is the outcome of a flee attempt.
type FleeResult int

const (
	FleeSuccess FleeResult = iota
	// FleeBlocked re-prompts the player without using the turn.
	FleeBlocked
	// FleeFailed uses the turn.
	FleeFailed
)

func (r FleeResult) String() string {
	switch r {
	case FleeSuccess:
		return "success"
	case FleeBlocked:
		return "blocked"
	default:
		return "failed"
	}
}

// FleeHandler owns escape attempts from wild battles.
type FleeHandler struct {
	handler
	attempts int
}

// Attempt tries to flee with the active player battler at position.
func (h *FleeHandler) Attempt(position int) FleeResult {
	l := h.logic
	if l.info.TrainerBattle {
		h.Message("No! There's no running from a Trainer battle!")
		return FleeBlocked
	}
	b := l.Battler(0, position)
	if b == nil || b.Dead() {
		return FleeBlocked
	}
	if !l.switcher.CanSwitch(b, nil, SwitchReasonFlee) {
		return FleeBlocked
	}
	h.attempts++
	foes := l.Foes(b)
	if len(foes) == 0 {
		h.Message("Got away safely!")
		return FleeSuccess
	}
	speed := l.Stat(b, model.StatSpd)
	foeSpeed := 1
	for _, f := range foes {
		foeSpeed = max(foeSpeed, l.Stat(f, model.StatSpd))
	}
	odds := speed*128/foeSpeed + 30*h.attempts
	if speed >= foeSpeed || odds > 255 || l.Roll(256) < odds {
		h.Message("Got away safely!")
		return FleeSuccess
	}
	h.Message("You couldn't get away!")
	return FleeFailed
}

// CatchHandler owns capture attempts.
type CatchHandler struct {
	handler
}

// TryToCatch throws ball at target. Returns true when target was caught.
func (h *CatchHandler) TryToCatch(target, user *Battler, ball *model.ItemData) bool {
	l := h.logic
	if target == nil || target.Dead() {
		return false
	}
	l.presenter.ShowAnimation("ball_throw", user, []*Battler{target})
	if l.info.TrainerBattle {
		h.Message("The Trainer blocked the Ball!")
		return false
	}
	rate := target.CatchRate
	if rate <= 0 {
		rate = 45
	}
	ballRate := ball.CatchRate
	if ballRate <= 0 {
		ballRate = 1
	}
	a := float64(3*target.MaxHP-2*target.HP) * float64(rate) * ballRate / float64(3*target.MaxHP)
	switch target.Status {
	case model.StatusSleep, model.StatusFreeze:
		a *= 2.5
	case model.StatusParalysis, model.StatusPoison, model.StatusToxic, model.StatusBurn:
		a *= 1.5
	}
	caught := a >= 255
	shakes := 4
	if !caught {
		threshold := 65536 / math.Pow(255/a, 0.1875)
		shakes = 0
		for shakes < 4 && float64(l.Roll(65536)) < threshold {
			shakes++
		}
		caught = shakes == 4
	}
	if !caught {
		h.Message(fmt.Sprintf("Oh no! %s broke free after %d shake(s)!", target.Name, shakes))
		return false
	}
	l.caught = target
	h.Message(fmt.Sprintf("Gotcha! %s was caught!", target.Name))
	return true
}
