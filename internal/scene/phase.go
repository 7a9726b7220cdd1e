package scene

// Phase is one state of the battle phase machine.
type Phase int

const (
	PhasePreTransition Phase = iota
	PhaseTransitionAnimation
	PhaseShowEnterEvent
	PhasePlayerActionChoice
	PhaseSkillChoice
	PhaseTargetChoice
	PhaseItemChoice
	PhaseSwitchChoice
	PhaseTriggerAllAI
	PhaseStartBattlePhase
	PhaseUpdateBattlePhase
	PhaseBattleEnd
)

var phaseNames = [...]string{
	PhasePreTransition:       "pre_transition",
	PhaseTransitionAnimation: "transition_animation",
	PhaseShowEnterEvent:      "show_enter_event",
	PhasePlayerActionChoice:  "player_action_choice",
	PhaseSkillChoice:         "skill_choice",
	PhaseTargetChoice:        "target_choice",
	PhaseItemChoice:          "item_choice",
	PhaseSwitchChoice:        "switch_choice",
	PhaseTriggerAllAI:        "trigger_all_AI",
	PhaseStartBattlePhase:    "start_battle_phase",
	PhaseUpdateBattlePhase:   "update_battle_phase",
	PhaseBattleEnd:           "battle_end",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}
