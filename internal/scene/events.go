package scene

import (
	"errors"
	"fmt"
	"log/slog"
)

// EventName is one of the fixed extension points a battle script can hook.
type EventName string

const (
	// EventLogicInit fires once the battle logic is loaded.
	EventLogicInit EventName = "logic_init"
	// EventBattleBegin fires after the enter switch events.
	EventBattleBegin EventName = "battle_begin"
	// EventTrainerDialog fires at the start of every AI turn.
	EventTrainerDialog EventName = "trainer_dialog"
	// EventAIForceAction fires per AI. Returning a non-empty []battle.Action replaces
	// the actions the AI would have chosen.
	EventAIForceAction EventName = "AI_force_action"
	// EventAfterActionDialog fires once every action of the turn resolved.
	EventAfterActionDialog EventName = "after_action_dialog"
)

// EventFunc is a scripted closure. It receives the scene and
// event-specific arguments.
type EventFunc func(s *Scene, args ...any) any

// Events maps event names to closures. It is not modified once a scene
// starts.
type Events map[EventName]EventFunc

// ErrNoEvents is returned by loaders that have nothing for a battle id.
var ErrNoEvents = errors.New("no battle events")

// EventLoader resolves the event table of a battle id.
type EventLoader interface {
	Load(battleID int) (Events, error)
}

// LoadEvents runs loader for battleID. A missing table yields nil Events,
// any other failure is logged and yields nil Events too.
func LoadEvents(loader EventLoader, battleID int) Events {
	if loader == nil {
		return nil
	}
	events, err := loader.Load(battleID)
	if err != nil {
		if !errors.Is(err, ErrNoEvents) {
			slog.Warn("battle events not loaded", "battleID", battleID, "error", err)
		}
		return nil
	}
	return events
}

// callEvent invokes the closure registered under name. Missing closures are
// skipped and panicking ones are logged.
func (s *Scene) callEvent(name EventName, args ...any) (result any) {
	fn, ok := s.events[name]
	if !ok || fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("battle event failed",
				"battleID", s.logic.Info().BattleID,
				"event", string(name),
				"error", fmt.Sprint(r))
			result = nil
		}
	}()
	return fn(s, args...)
}
