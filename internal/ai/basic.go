package ai

import (
	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// Basic is a deterministic AI whose skill grows with its level:
//
//	1  random usable move on a random foe
//	2+ the move and foe with the best expected damage, mega evolves when it can
//	3+ switches out when no move can affect any foe
type Basic struct {
	logic *battle.Logic
	bank  int
	party int
	level int
}

// NewBasic is the Factory of Basic.
func NewBasic(l *battle.Logic, bank, party, level int) AI {
	return &Basic{logic: l, bank: bank, party: party, level: level}
}

func (a *Basic) Bank() int  { return a.bank }
func (a *Basic) Party() int { return a.party }
func (a *Basic) Level() int { return a.level }

// Trigger decides for every active alive battler of the party.
func (a *Basic) Trigger() []battle.Action {
	var out []battle.Action
	reserved := make(map[*battle.Battler]bool)
	for _, b := range a.logic.AliveBattlers(a.bank) {
		if b.Party != a.party {
			continue
		}
		actions := a.decide(b, reserved)
		traceDecision(a.logic, a.level, b, actions)
		out = append(out, actions...)
	}
	return out
}

func (a *Basic) decide(b *battle.Battler, reserved map[*battle.Battler]bool) []battle.Action {
	l := a.logic
	foes := l.Foes(b)
	if len(foes) == 0 {
		return []battle.Action{battle.Pass{}}
	}
	if forced := l.ForcedMove(b); forced != nil {
		return []battle.Action{attack(b, forced, foes[0])}
	}
	if !l.CanMove(b) {
		return []battle.Action{attack(b, model.NewStruggle(), foes[0])}
	}

	if a.level <= 1 {
		moves := l.UsableMoves(b)
		return []battle.Action{attack(b, moves[l.Roll(len(moves))], foes[l.Roll(len(foes))])}
	}

	move, target, score := a.best(b, foes)
	if a.level >= 3 && score <= 0 {
		if with := a.reserve(b, reserved); with != nil {
			reserved[with] = true
			return []battle.Action{&battle.Switch{Who: b, With: with}}
		}
	}
	actions := []battle.Action{attack(b, move, target)}
	if b.MegaAbility != "" && !b.MegaEvolved && !b.MegaPending {
		actions = append(actions, &battle.Mega{User: b})
	}
	return actions
}

// best returns the highest scoring (move, foe) pair, first found on ties.
func (a *Basic) best(b *battle.Battler, foes []*battle.Battler) (*model.Move, *battle.Battler, float64) {
	var (
		move   *model.Move
		target *battle.Battler
		score  = -1.0
	)
	for _, m := range a.logic.UsableMoves(b) {
		for _, f := range foes {
			if s := a.score(b, f, m); s > score {
				move, target, score = m, f, s
			}
		}
	}
	return move, target, score
}

func (a *Basic) score(user, target *battle.Battler, m *model.Move) float64 {
	if m.StatusMove() {
		if m.Data.Status != model.StatusNone && target.Status == model.StatusNone {
			return 20
		}
		return 0
	}
	t := a.logic.MoveType(user, target, m)
	s := float64(m.Data.Power) * model.Effectiveness(t, target.Types...)
	if user.HasType(t) {
		s *= 1.5
	}
	return s
}

func (a *Basic) reserve(b *battle.Battler, reserved map[*battle.Battler]bool) *battle.Battler {
	l := a.logic
	if !l.SwitchHandler().CanSwitch(b, nil, battle.SwitchReasonSwitch) {
		return nil
	}
	for _, r := range l.AliveReserves(a.bank) {
		if r.Party == a.party && !r.Switching && !reserved[r] {
			return r
		}
	}
	return nil
}

func attack(user *battle.Battler, m *model.Move, target *battle.Battler) *battle.Attack {
	return &battle.Attack{Move: m, User: user, TargetBank: target.Bank, TargetPosition: target.Position}
}
