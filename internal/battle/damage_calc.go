package battle

import (
	"math"

	"github.com/udisondev/battlecore/internal/model"
)

// DamageCalculator computes the raw damage of one hit.
// scale multiplies the base power of follow-up hits.
// The returned effectiveness is 0 when the target is immune.
type DamageCalculator interface {
	Damage(l *Logic, user, target *Battler, move *model.Move, scale float64) (hp int, effectiveness float64)
}

// StandardDamage is the default staged damage formula. Every stage folds in
// the product of the matching multiplier hooks and floors its result.
type StandardDamage struct {
	// NoRandom disables the 85-100% damage roll.
	NoRandom bool
	// NoCritical disables critical hits.
	NoCritical bool
}

func (s *StandardDamage) Damage(l *Logic, user, target *Battler, move *model.Move, scale float64) (int, float64) {
	ctx := l.Context()
	effects := l.EffectsFor(user, target)
	moveType := l.MoveType(user, target, move)
	effectiveness := model.Effectiveness(moveType, target.Types...)
	if effectiveness == 0 {
		return 0, 0
	}

	power := float64(move.Data.Power) * scale
	power *= Product(effects, func(h BasePowerMultiplier) float64 {
		return h.BasePowerMultiplier(ctx, user, target, move)
	})
	power = math.Max(math.Floor(power), 1)

	atkStat, defStat := model.StatAtk, model.StatDfe
	if move.Special() {
		atkStat, defStat = model.StatAts, model.StatDfs
	}
	critical := !s.NoCritical && l.Chance(100.0/24)
	atk := float64(l.Stat(user, atkStat))
	def := float64(l.Stat(target, defStat))
	if critical {
		// critical hits ignore positive defensive and negative offensive stages
		if user.Stages[atkStat] < 0 {
			atk /= model.StageMultiplier(atkStat, user.Stages[atkStat])
		}
		if target.Stages[defStat] > 0 {
			def /= model.StageMultiplier(defStat, target.Stages[defStat])
		}
	}
	atk = math.Floor(atk * Product(effects, func(h SpAtkMultiplier) float64 {
		return h.SpAtkMultiplier(ctx, user, target, move)
	}))
	def = math.Max(math.Floor(def*Product(effects, func(h SpDefMultiplier) float64 {
		return h.SpDefMultiplier(ctx, user, target, move)
	})), 1)

	levelFactor := math.Floor(float64(user.Level)*2/5) + 2
	damage := math.Floor(math.Floor(levelFactor*power*atk/def) / 50)
	damage = math.Floor(damage * weatherModifier(ctx.Weather(), moveType))
	if user.Status == model.StatusBurn && move.Physical() {
		damage = math.Floor(damage / 2)
	}
	damage = math.Floor(damage * Product(effects, func(h Mod1Multiplier) float64 {
		return h.Mod1Multiplier(ctx, user, target, move)
	}))
	damage += 2
	if critical {
		damage = math.Floor(damage * 1.5)
		l.presenter.Message("A critical hit!")
	}
	damage = math.Floor(damage * Product(effects, func(h Mod2Multiplier) float64 {
		return h.Mod2Multiplier(ctx, user, target, move)
	}))
	if !s.NoRandom {
		damage = math.Floor(damage * float64(85+l.Roll(16)) / 100)
	}
	if moveType != model.TypeNone && user.HasType(moveType) {
		damage = math.Floor(damage * 1.5)
	}
	damage = math.Floor(damage * effectiveness)
	damage = math.Floor(damage * Product(effects, func(h Mod3Multiplier) float64 {
		return h.Mod3Multiplier(ctx, user, target, move)
	}))
	return max(int(damage), 1), effectiveness
}

func weatherModifier(w model.Weather, t model.Type) float64 {
	switch {
	case w.Rainy() && t == model.TypeWater, w.Sunny() && t == model.TypeFire:
		return 1.5
	case w == model.WeatherRain && t == model.TypeFire, w == model.WeatherSunny && t == model.TypeWater:
		return 0.5
	default:
		return 1
	}
}
