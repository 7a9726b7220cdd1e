package battle

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/model"
)

// ChargingID identifies the volatile effect of a battler charging a two-turn move.
const ChargingID = "charging"

// charging pins the charged move until it is released.
type charging struct {
	Base
	move *model.Move
}

func (c *charging) ForcedMove() *model.Move { return c.move }

// ForcedMove returns the move an effect pins b to, nil when b chooses freely.
func (l *Logic) ForcedMove(b *Battler) *model.Move {
	m, _ := FirstOverride(l.EffectsFor(b), func(h ForcedMove) (*model.Move, bool) {
		m := h.ForcedMove()
		return m, m != nil
	})
	return m
}

// Selectable reports whether b may pick move: it has PP and no effect
// disables it. Nothing is announced.
func (l *Logic) Selectable(b *Battler, move *model.Move) bool {
	if move == nil || !move.Usable() {
		return false
	}
	return !Blocks(l.EffectsFor(b), func(h MoveDisabledCheck) *Prevention {
		return h.MoveDisabledCheck(l, b, move)
	})
}

// UsableMoves returns the moves b may pick this turn.
func (l *Logic) UsableMoves(b *Battler) []*model.Move {
	var out []*model.Move
	for _, m := range b.Moves {
		if l.Selectable(b, m) {
			out = append(out, m)
		}
	}
	return out
}

// CanMove reports whether b has any move to pick. When it has none it
// struggles.
func (l *Logic) CanMove(b *Battler) bool {
	return len(l.UsableMoves(b)) > 0
}

// UseMove resolves one move use of user aimed at (bank, position).
func (l *Logic) UseMove(user *Battler, move *model.Move, bank, position int) {
	if user.Dead() || !user.Active() {
		return
	}
	if !l.canAct(user) {
		return
	}
	targets := l.ResolveTargets(user, move, bank, position)
	effects := l.EffectsFor(user)
	if FirstPrevention(effects, func(h MoveDisabledCheck) *Prevention {
		return h.MoveDisabledCheck(l, user, move)
	}) != nil {
		return
	}
	if FirstPrevention(effects, func(h MovePreventionUser) *Prevention {
		return h.MovePreventionUser(l, user, targets, move)
	}) != nil {
		return
	}

	if move.Has(model.FlagTwoTurn) && !l.releaseCharge(user, move) {
		return
	}
	if move.Data.PP > 0 && move.PP > 0 {
		move.PP--
	}
	user.LastMove = move
	l.presenter.Message(fmt.Sprintf("%s used %s!", user.Name, move.ID()))
	l.presenter.ShowAnimation(move.ID(), user, targets)

	Notify(l.EffectsFor(append([]*Battler{user}, targets...)...), func(h PreAccuracyCheck) {
		h.OnPreAccuracyCheck(l, user, targets, move)
	})
	if len(targets) == 0 {
		l.presenter.Message("But there was no target...")
		return
	}

	for _, t := range targets {
		if t.Dead() {
			continue
		}
		if t != user && !l.moveAffects(user, t, move) {
			continue
		}
		if !l.AccuracyCheck(user, t, move) {
			l.presenter.Message(fmt.Sprintf("%s's attack missed!", user.Name))
			continue
		}
		if move.StatusMove() {
			l.applyMoveEffects(user, t, move)
			continue
		}
		if l.strike(user, t, move) && t.Alive() {
			l.applyMoveEffects(user, t, move)
		}
	}

	if move.Data.Routine == "struggle" && user.Alive() {
		l.damage.Damage(max(user.MaxHP/4, 1), user, nil, nil)
	}
}

// releaseCharge returns true when the two-turn move executes this turn.
func (l *Logic) releaseCharge(user *Battler, move *model.Move) bool {
	if user.effects.Has(ChargingID) {
		user.effects.Remove(ChargingID)
		return true
	}
	if Any(l.EffectsFor(user), func(h TwoTurnShortcut) bool {
		return h.TwoTurnShortcut(l, user, move)
	}) {
		return true
	}
	user.effects.Add(&charging{Base: NewBase(FamilyVolatile, ChargingID, user), move: move})
	l.presenter.Message(fmt.Sprintf("%s is charging %s!", user.Name, move.ID()))
	return false
}

// canAct applies the built-in flinch and status checks.
func (l *Logic) canAct(user *Battler) bool {
	if user.Flinched {
		l.presenter.Message(fmt.Sprintf("%s flinched and couldn't move!", user.Name))
		return false
	}
	switch user.Status {
	case model.StatusSleep:
		if user.StatusCount > 0 {
			user.StatusCount--
			l.presenter.Message(fmt.Sprintf("%s is fast asleep.", user.Name))
			return false
		}
		l.status.StatusChange(model.StatusCure, user, nil, nil)
	case model.StatusFreeze:
		if !l.Chance(20) {
			l.presenter.Message(fmt.Sprintf("%s is frozen solid!", user.Name))
			return false
		}
		l.status.StatusChange(model.StatusCure, user, nil, nil)
	case model.StatusParalysis:
		if l.Chance(25) {
			l.presenter.Message(fmt.Sprintf("%s is paralyzed! It can't move!", user.Name))
			return false
		}
	}
	if user.Confusion > 0 {
		user.Confusion--
		if user.Confusion == 0 {
			l.presenter.Message(fmt.Sprintf("%s snapped out of its confusion!", user.Name))
		} else if l.Chance(33) {
			l.presenter.Message(fmt.Sprintf("%s hurt itself in its confusion!", user.Name))
			l.damage.Damage(max(user.MaxHP/8, 1), user, user, nil)
			return false
		}
	}
	return true
}

// moveAffects runs the per-target preventions.
func (l *Logic) moveAffects(user, target *Battler, move *model.Move) bool {
	effects := l.EffectsFor(target, user)
	if FirstPrevention(effects, func(h MovePreventionTarget) *Prevention {
		return h.MovePreventionTarget(l, user, target, move)
	}) != nil {
		return false
	}
	return FirstPrevention(effects, func(h MoveAbilityImmunity) *Prevention {
		return h.MoveAbilityImmunity(l, user, target, move)
	}) == nil
}

// ResolveTargets returns the battlers move actually aims at.
func (l *Logic) ResolveTargets(user *Battler, move *model.Move, bank, position int) []*Battler {
	switch move.Data.Target {
	case model.TargetUser:
		return []*Battler{user}
	case model.TargetAllFoes:
		return l.Foes(user)
	case model.TargetAllAdjacent:
		return append(l.Allies(user), l.Foes(user)...)
	case model.TargetAlly:
		if b := l.Battler(bank, position); b != nil && b.Alive() && b.Bank == user.Bank && b != user {
			return []*Battler{b}
		}
		if allies := l.Allies(user); len(allies) > 0 {
			return allies[:1]
		}
		return nil
	case model.TargetRandomFoe:
		foes := l.Foes(user)
		if len(foes) == 0 {
			return nil
		}
		return []*Battler{foes[l.Roll(len(foes))]}
	default:
		if b := l.Battler(bank, position); b != nil && b.Alive() && b != user {
			return []*Battler{b}
		}
		// retarget when the chosen foe fainted
		if foes := l.Foes(user); len(foes) > 0 {
			return foes[:1]
		}
		return nil
	}
}

// AccuracyCheck rolls whether move connects with target.
func (l *Logic) AccuracyCheck(user, target *Battler, move *model.Move) bool {
	if move.Data.Accuracy <= 0 || user == target {
		return true
	}
	stage := model.ClampStage(user.Stages[model.StatAcc] - target.Stages[model.StatEva])
	chance := float64(move.Data.Accuracy) * model.StageMultiplier(model.StatAcc, stage)
	chance *= Product(l.EffectsFor(user, target), func(h ChanceOfHitMultiplier) float64 {
		return h.ChanceOfHitMultiplier(l.Context(), user, target, move)
	})
	return l.Chance(chance)
}

// MoveType returns the type move has when used by user on target.
func (l *Logic) MoveType(user, target *Battler, move *model.Move) model.Type {
	t := move.Data.Type
	if v, ok := FirstOverride(l.EffectsFor(user, target), func(h MoveTypeChange) (model.Type, bool) {
		return h.MoveTypeChange(l.Context(), user, target, move, t)
	}); ok {
		return v
	}
	return t
}

// MoveRoutine returns the hit routine of move for user.
func (l *Logic) MoveRoutine(user *Battler, move *model.Move) Routine {
	if r, ok := FirstOverride(l.EffectsFor(user), func(h MoveRoutineOverride) (Routine, bool) {
		return h.MoveRoutineOverride(l.Context(), user, move)
	}); ok && r.Hits > 0 {
		return r
	}
	return Routine{Hits: max(move.Data.Hits, 1)}
}

// strike deals the damage of every hit. Returns false if target was immune.
func (l *Logic) strike(user, target *Battler, move *model.Move) bool {
	routine := l.MoveRoutine(user, move)
	hits := 0
	var effectiveness float64
	for i := 0; i < routine.Hits; i++ {
		if target.Dead() || user.Dead() {
			break
		}
		scale := 1.0
		if i > 0 && routine.FollowUp > 0 {
			scale = routine.FollowUp
		}
		var hp int
		hp, effectiveness = l.calc.Damage(l, user, target, move, scale)
		if effectiveness == 0 {
			l.presenter.Message(fmt.Sprintf("It doesn't affect %s...", target.Name))
			return false
		}
		l.damage.Damage(hp, target, user, move)
		hits++
	}
	switch {
	case effectiveness > 1:
		l.presenter.Message("It's super effective!")
	case effectiveness > 0 && effectiveness < 1:
		l.presenter.Message("It's not very effective...")
	}
	if hits > 1 {
		l.presenter.Message(fmt.Sprintf("Hit %d time(s)!", hits))
	}
	return hits > 0
}

// applyMoveEffects rolls the status and stage changes of move.
func (l *Logic) applyMoveEffects(user, target *Battler, move *model.Move) {
	data := move.Data
	if data.Status == model.StatusNone && len(data.StatChanges) == 0 {
		return
	}
	if data.EffectChance > 0 {
		chance := float64(data.EffectChance) * Product(l.EffectsFor(user), func(h EffectChanceModifier) float64 {
			return h.EffectChanceModifier(l.Context(), user, move)
		})
		if !l.Chance(chance) {
			return
		}
	}
	if data.Status != model.StatusNone {
		l.status.StatusChange(data.Status, target, user, move)
	}
	for _, sc := range data.StatChanges {
		receiver := target
		if sc.Self {
			receiver = user
		}
		if receiver.Alive() {
			l.stat.StatChange(sc.Stat, sc.Power, receiver, user, move)
		}
	}
}
