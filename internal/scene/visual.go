package scene

import (
	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// Choice is the top-level decision of the player for one slot.
type Choice int

const (
	ChoiceAttack Choice = iota
	ChoiceBag
	ChoiceSwitch
	ChoiceFlee
	// ChoiceCancel drops the last queued action.
	ChoiceCancel
	// ChoiceTryNext skips the slot with a Pass.
	ChoiceTryNext
	// ChoiceAction queues PlayerDecision.Action as is.
	ChoiceAction
)

// PlayerDecision is the answer to the player choice prompt.
type PlayerDecision struct {
	Choice Choice
	Action battle.Action
}

// TargetDecision is the answer to the target prompt.
type TargetDecision struct {
	Cancel   bool
	Bank     int
	Position int
	// Mega asks the user to mega evolve before attacking.
	Mega bool
}

// Visual is the presentation collaborator of a scene. Prompts never block:
// ok is false while the player has not decided yet, and the scene asks
// again on the next frame.
type Visual interface {
	battle.Presenter

	// Update advances animations by one frame.
	Update()
	// Locking reports whether an animation must finish before the
	// scene may continue.
	Locking() bool
	ShowPreTransition()
	ShowTransition()

	PlayerChoice(slot int) (d PlayerDecision, ok bool)
	// SkillChoice returns the chosen move, nil to go back.
	SkillChoice(slot int, user *battle.Battler) (m *model.Move, ok bool)
	TargetChoice(user *battle.Battler, move *model.Move) (d TargetDecision, ok bool)
	// ItemChoice returns the chosen bag item, nil to go back.
	ItemChoice(slot int, user *battle.Battler) (w *battle.ItemWrapper, ok bool)
	// SwitchChoice returns the reserve to send, nil to go back.
	SwitchChoice(slot int, user *battle.Battler) (with *battle.Battler, ok bool)
}

// Headless is the visual of unattended battles. It never animates and
// answers every prompt at once: attack with the first usable move on the
// first foe.
type Headless struct {
	battle.NopPresenter
	Logic *battle.Logic
}

func (Headless) Update()            {}
func (Headless) Locking() bool      { return false }
func (Headless) ShowPreTransition() {}
func (Headless) ShowTransition()    {}

func (Headless) PlayerChoice(int) (PlayerDecision, bool) {
	return PlayerDecision{Choice: ChoiceAttack}, true
}

func (h Headless) SkillChoice(_ int, user *battle.Battler) (*model.Move, bool) {
	moves := user.UsableMoves()
	if h.Logic != nil {
		moves = h.Logic.UsableMoves(user)
	}
	if len(moves) == 0 {
		return nil, true
	}
	return moves[0], true
}

func (h Headless) TargetChoice(user *battle.Battler, _ *model.Move) (TargetDecision, bool) {
	if h.Logic != nil {
		if foes := h.Logic.Foes(user); len(foes) > 0 {
			return TargetDecision{Bank: foes[0].Bank, Position: foes[0].Position}, true
		}
	}
	return TargetDecision{Bank: 1}, true
}

func (Headless) ItemChoice(int, *battle.Battler) (*battle.ItemWrapper, bool) { return nil, true }

func (Headless) SwitchChoice(int, *battle.Battler) (*battle.Battler, bool) { return nil, true }
