package scene

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// playerActionChoice asks the player for the next free slot, or hands over
// to the AI once every slot is filled.
func (s *Scene) playerActionChoice() {
	l := s.logic
	if !s.hasPlayer() && !s.aiCanWin {
		slog.Warn("battle without player battler stopped", "battleID", l.Info().BattleID)
		l.SetResult(battle.ResultDraw)
		s.next(PhaseBattleEnd)
		return
	}
	if !s.canPlayerMakeAnotherChoice() {
		s.next(PhaseTriggerAllAI)
		return
	}
	d, ok := s.visual.PlayerChoice(s.slot())
	if !ok {
		return
	}
	switch d.Choice {
	case ChoiceAttack:
		s.next(PhaseSkillChoice)
	case ChoiceBag:
		s.next(PhaseItemChoice)
	case ChoiceSwitch:
		s.next(PhaseSwitchChoice)
	case ChoiceFlee:
		s.flee()
	case ChoiceCancel:
		// wait a frame so a repeated cancel cannot spin
		s.queue.Cancel()
	case ChoiceTryNext:
		s.push(battle.Pass{})
		s.skip = true
	case ChoiceAction:
		if d.Action != nil {
			s.push(d.Action)
			s.skip = true
		}
	}
}

func (s *Scene) flee() {
	l := s.logic
	switch l.FleeHandler().Attempt(s.slot()) {
	case battle.FleeSuccess:
		l.SetResult(battle.ResultFlee)
		s.next(PhaseBattleEnd)
	case battle.FleeFailed:
		s.pad()
		s.next(PhaseTriggerAllAI)
	default:
		// blocked: ask again next frame
	}
}

func (s *Scene) skillChoice() {
	b := s.slotBattler()
	if forced := s.logic.ForcedMove(b); forced != nil {
		s.move, s.forced = forced, true
		s.toTargetChoice(b, forced)
		return
	}
	s.forced = false
	if !s.logic.CanMove(b) {
		s.push(&battle.Attack{Move: model.NewStruggle(), User: b, TargetBank: foeBank(b)})
		s.next(PhasePlayerActionChoice)
		return
	}
	m, ok := s.visual.SkillChoice(s.slot(), b)
	if !ok {
		return
	}
	if m == nil {
		s.next(PhasePlayerActionChoice)
		return
	}
	if !s.logic.Selectable(b, m) {
		return
	}
	s.move = m
	s.toTargetChoice(b, m)
}

// toTargetChoice asks for a target unless move implies it.
func (s *Scene) toTargetChoice(b *battle.Battler, m *model.Move) {
	if !m.Data.Target.Fixed() {
		s.next(PhaseTargetChoice)
		return
	}
	s.push(&battle.Attack{Move: m, User: b, TargetBank: foeBank(b)})
	s.next(PhasePlayerActionChoice)
}

func (s *Scene) targetChoice() {
	b := s.slotBattler()
	d, ok := s.visual.TargetChoice(b, s.move)
	if !ok {
		return
	}
	if d.Cancel {
		if s.forced {
			s.next(PhasePlayerActionChoice)
		} else {
			s.next(PhaseSkillChoice)
		}
		return
	}
	move := s.move
	if forced := s.logic.ForcedMove(b); forced != nil {
		move = forced
	}
	attack := &battle.Attack{Move: move, User: b, TargetBank: d.Bank, TargetPosition: d.Position}
	if d.Mega && canMega(b) {
		s.push(attack, &battle.Mega{User: b})
	} else {
		s.push(attack)
	}
	s.next(PhasePlayerActionChoice)
}

func canMega(b *battle.Battler) bool {
	return b.MegaAbility != "" && !b.MegaEvolved && !b.MegaPending
}

func (s *Scene) itemChoice() {
	l := s.logic
	b := s.slotBattler()
	w, ok := s.visual.ItemChoice(s.slot(), b)
	if !ok {
		return
	}
	if w == nil || w.Item == nil {
		s.next(PhasePlayerActionChoice)
		return
	}
	if b.Bag != nil && b.Bag.Count(w.Item.ID) <= 0 {
		l.Presenter().Message(fmt.Sprintf("There is no %s left.", w.Item.ID))
		s.phase = PhasePlayerActionChoice
		return
	}
	switch w.Item.Kind {
	case model.ItemFleeing:
		if l.Info().TrainerBattle {
			l.Presenter().Message("It won't have any effect.")
			s.phase = PhasePlayerActionChoice
			return
		}
		takeFromBag(b, w.Item)
		l.SetResult(battle.ResultFlee)
		s.next(PhaseBattleEnd)
	case model.ItemBall:
		takeFromBag(b, w.Item)
		var target *battle.Battler
		if foes := l.AliveBattlers(foeBank(b)); len(foes) > 0 {
			target = foes[0]
		}
		if l.CatchHandler().TryToCatch(target, b, w.Item) {
			l.SetResult(battle.ResultCaught)
			s.next(PhaseBattleEnd)
			return
		}
		s.pad()
		s.next(PhaseTriggerAllAI)
	default:
		s.push(&battle.ItemAction{Wrapper: *w, Bag: b.Bag, User: b})
		s.phase = PhasePlayerActionChoice
	}
}

func takeFromBag(b *battle.Battler, item *model.ItemData) {
	if b.Bag != nil {
		b.Bag.Take(item.ID)
	}
}

func (s *Scene) switchChoice() {
	l := s.logic
	b := s.slotBattler()
	with, ok := s.visual.SwitchChoice(s.slot(), b)
	if !ok {
		return
	}
	if with == nil {
		s.next(PhasePlayerActionChoice)
		return
	}
	if with.Bank != b.Bank || with.Active() || with.Dead() || with.Switching {
		return
	}
	if !l.SwitchHandler().CanSwitch(b, nil, battle.SwitchReasonSwitch) {
		s.phase = PhasePlayerActionChoice
		return
	}
	s.push(&battle.Switch{Who: b, With: with})
	s.phase = PhasePlayerActionChoice
}

// foeBank returns the bank facing b.
func foeBank(b *battle.Battler) int {
	if b.Bank == 0 {
		return 1
	}
	return 0
}
