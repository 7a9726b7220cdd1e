// Package scene sequences one battle: entry, action choice, AI decisions,
// action resolution and termination. A scene is advanced by an external
// per-frame Update call and never blocks it.
package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// AI chooses the actions of one AI-driven party.
type AI interface {
	Bank() int
	Party() int
	Trigger() []battle.Action
}

// Config holds the collaborators of a scene.
type Config struct {
	Logic *battle.Logic
	// Visual defaults to Headless.
	Visual Visual
	AIs    []AI
	Events Events
	// AICanWin lets battles without any player battler run to the end.
	AICanWin bool
	// Debug enables DebugTerminate.
	Debug bool
	// OnEnd is called once with the final result.
	OnEnd func(battle.Result)
	// Observer sees every phase call, in order.
	Observer func(Phase)
}

// Scene is the battle phase machine. It is not safe for concurrent use.
type Scene struct {
	logic    *battle.Logic
	visual   Visual
	ais      []AI
	events   Events
	aiCanWin bool
	debug    bool
	onEnd    func(battle.Result)
	observer func(Phase)

	phase Phase
	// skip lets Update run the next phase within the same frame.
	skip   bool
	done   bool
	result battle.Result

	queue     ActionQueue
	aiActions []battle.Action
	// move is the move picked in SkillChoice; forced is set when an
	// effect picked it instead of the player.
	move   *model.Move
	forced bool
}

// New creates a scene at PhasePreTransition and fires logic_init.
func New(cfg Config) (*Scene, error) {
	if cfg.Logic == nil {
		return nil, errors.New("scene needs a battle logic")
	}
	if cfg.Visual == nil {
		cfg.Visual = Headless{Logic: cfg.Logic}
	}
	cfg.Logic.SetPresenter(cfg.Visual)
	s := &Scene{
		logic:    cfg.Logic,
		visual:   cfg.Visual,
		ais:      cfg.AIs,
		events:   cfg.Events,
		aiCanWin: cfg.AICanWin,
		debug:    cfg.Debug,
		onEnd:    cfg.OnEnd,
		observer: cfg.Observer,
		phase:    PhasePreTransition,
		result:   battle.ResultPending,
	}
	s.callEvent(EventLogicInit)
	return s, nil
}

// Logic returns the battle being sequenced.
func (s *Scene) Logic() *battle.Logic { return s.logic }

// Phase returns the current phase.
func (s *Scene) Phase() Phase { return s.phase }

// Queue returns the player action queue.
func (s *Scene) Queue() *ActionQueue { return &s.queue }

// Done reports whether the battle reached its end.
func (s *Scene) Done() bool { return s.done }

// Result returns the final result, ResultPending until Done.
func (s *Scene) Result() battle.Result { return s.result }

// Update advances the scene by one frame. Deterministic phases chain
// within the frame; waiting on the visual yields until the next one.
func (s *Scene) Update() {
	if s.done {
		return
	}
	s.visual.Update()
	if s.visual.Locking() {
		return
	}
	s.skip = true
	for s.skip && !s.done {
		s.skip = false
		s.callPhase()
	}
}

// Run updates the scene until the battle ends, ctx is done or maxFrames
// frames went by.
func (s *Scene) Run(ctx context.Context, maxFrames int) (battle.Result, error) {
	for frame := 0; !s.done; frame++ {
		if err := ctx.Err(); err != nil {
			return battle.ResultPending, fmt.Errorf("running battle %d: %w", s.logic.Info().BattleID, err)
		}
		if maxFrames > 0 && frame >= maxFrames {
			return battle.ResultPending, fmt.Errorf("battle %d did not end after %d frames", s.logic.Info().BattleID, maxFrames)
		}
		s.Update()
	}
	return s.result, nil
}

// DebugTerminate ends the battle with r on the next frame. It only works
// when the scene runs in debug mode.
func (s *Scene) DebugTerminate(r battle.Result) bool {
	if !s.debug || s.done {
		return false
	}
	for s.queue.Len() > 0 {
		s.queue.Pop()
	}
	s.logic.SetResult(r)
	s.logic.DebugEndOfBattle = true
	s.phase = PhaseBattleEnd
	return true
}

func (s *Scene) callPhase() {
	slog.Debug("calling phase", "battleID", s.logic.Info().BattleID, "phase", s.phase)
	if s.observer != nil {
		s.observer(s.phase)
	}
	switch s.phase {
	case PhasePreTransition:
		s.visual.ShowPreTransition()
		s.next(PhaseTransitionAnimation)
	case PhaseTransitionAnimation:
		s.visual.ShowTransition()
		s.next(PhaseShowEnterEvent)
	case PhaseShowEnterEvent:
		s.logic.SwitchHandler().ExecuteEnterEvents()
		s.callEvent(EventBattleBegin)
		s.next(PhasePlayerActionChoice)
	case PhasePlayerActionChoice:
		s.playerActionChoice()
	case PhaseSkillChoice:
		s.skillChoice()
	case PhaseTargetChoice:
		s.targetChoice()
	case PhaseItemChoice:
		s.itemChoice()
	case PhaseSwitchChoice:
		s.switchChoice()
	case PhaseTriggerAllAI:
		s.triggerAllAI()
	case PhaseStartBattlePhase:
		s.startBattlePhase()
	case PhaseUpdateBattlePhase:
		s.updateBattlePhase()
	case PhaseBattleEnd:
		s.battleEnd()
	default:
		slog.Error("invalid battle phase", "battleID", s.logic.Info().BattleID, "phase", int(s.phase))
		panic(fmt.Sprintf("scene: invalid phase %d", s.phase))
	}
}

// next moves to p within the current frame.
func (s *Scene) next(p Phase) {
	s.phase = p
	s.skip = true
}

// push queues the actions of the current slot.
func (s *Scene) push(actions ...battle.Action) {
	if s.queue.Len() >= s.logic.Info().VsType {
		slog.Error("action queue overflow",
			"battleID", s.logic.Info().BattleID,
			"len", s.queue.Len(),
			"vsType", s.logic.Info().VsType)
		panic("scene: action queue longer than active slots")
	}
	s.queue.Push(actions...)
}

// pad fills the remaining slots with Pass.
func (s *Scene) pad() {
	for s.queue.Len() < s.logic.Info().VsType {
		s.queue.Push(battle.Pass{})
	}
}

func (s *Scene) slot() int { return s.queue.Len() }

func (s *Scene) slotBattler() *battle.Battler {
	return s.logic.Battler(0, s.slot())
}

func (s *Scene) hasPlayer() bool {
	for _, b := range s.logic.Party(0) {
		if b.FromPlayerParty {
			return true
		}
	}
	return false
}

func playerCanAct(b *battle.Battler) bool {
	return b != nil && b.Alive() && b.FromPlayerParty
}

// canPlayerMakeAnotherChoice skips the slots whose occupant cannot act,
// filling them with Pass, and reports whether a player slot is left.
func (s *Scene) canPlayerMakeAnotherChoice() bool {
	for s.queue.Len() < s.logic.Info().VsType {
		if playerCanAct(s.slotBattler()) {
			return true
		}
		s.queue.Push(battle.Pass{})
	}
	return false
}

func (s *Scene) triggerAllAI() {
	l := s.logic
	s.pad()
	l.UpdateTurnCount()
	s.callEvent(EventTrainerDialog)
	for _, ai := range s.ais {
		actions, ok := s.callEvent(EventAIForceAction, ai.Bank(), ai.Party()).([]battle.Action)
		if !ok || len(actions) == 0 {
			actions = ai.Trigger()
		}
		for _, a := range actions {
			if p, ok := a.(battle.Provisional); ok {
				p.PreApply()
			}
		}
		s.aiActions = append(s.aiActions, actions...)
	}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("actions gathered",
			"battleID", l.Info().BattleID,
			"turn", l.Turn(),
			"player", s.queue.Flatten(),
			"ai", s.aiActions)
	}
	s.next(PhaseStartBattlePhase)
}

func (s *Scene) startBattlePhase() {
	l := s.logic
	l.AddActions(s.queue.Flatten()...)
	l.AddActions(s.aiActions...)
	s.queue.Clear()
	s.aiActions = nil
	l.SortActions()
	s.next(PhaseUpdateBattlePhase)
}

// updateBattlePhase resolves one action per frame.
func (s *Scene) updateBattlePhase() {
	l := s.logic
	if l.PerformNextAction() {
		return
	}
	s.callEvent(EventAfterActionDialog)
	if l.CanBattleContinue() {
		l.BattlePhaseEnd()
	}
	if l.CanBattleContinue() {
		s.next(PhasePlayerActionChoice)
		return
	}
	s.next(PhaseBattleEnd)
}

func (s *Scene) battleEnd() {
	l := s.logic
	r := l.Result()
	if r == battle.ResultPending {
		r = battle.ResultDraw
		l.SetResult(r)
	}
	s.result = r
	s.done = true
	slog.Info("battle ended",
		"battleID", l.Info().BattleID,
		"result", r,
		"turns", l.Turn(),
		"debug", l.DebugEndOfBattle)
	if s.onEnd != nil {
		s.onEnd(r)
	}
}
