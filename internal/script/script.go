// Package script loads per-battle Lua scripts hooking the scene events.
//
// A battle with id N runs every file of the events directory matching
// "%05d*.lua". Scripts register closures through the Battle global:
//
//	Battle.register_event("battle_begin", function(scene)
//	    scene:message("The wind is howling.")
//	end)
package script

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/Shopify/go-lua"

	"github.com/udisondev/battlecore/internal/scene"
)

// ErrNoScript is returned when a battle id has no script.
var ErrNoScript = fmt.Errorf("no battle script: %w", scene.ErrNoEvents)

const eventsKey = "battlecore.events"

var eventNames = map[scene.EventName]bool{
	scene.EventLogicInit:         true,
	scene.EventBattleBegin:       true,
	scene.EventTrainerDialog:     true,
	scene.EventAIForceAction:     true,
	scene.EventAfterActionDialog: true,
}

// Loader resolves battle scripts from a directory.
type Loader struct {
	dir string
}

// NewLoader returns a loader reading scripts from dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Files returns the script files of battleID in load order.
func (ld *Loader) Files(battleID int) ([]string, error) {
	if battleID < 0 || ld.dir == "" {
		return nil, nil
	}
	files, err := filepath.Glob(filepath.Join(ld.dir, fmt.Sprintf("%05d*.lua", battleID)))
	if err != nil {
		return nil, fmt.Errorf("listing scripts of battle %d: %w", battleID, err)
	}
	sort.Strings(files)
	return files, nil
}

// Load runs the scripts of battleID and returns the events they
// registered. Scripts that fail are logged and skipped.
func (ld *Loader) Load(battleID int) (scene.Events, error) {
	files, err := ld.Files(battleID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoScript
	}

	state := newState()
	for _, path := range files {
		if err := run(state, path); err != nil {
			slog.Warn("battle script skipped", "battleID", battleID, "path", path, "error", err)
			continue
		}
		slog.Debug("battle script loaded", "battleID", battleID, "path", path)
	}
	events := registered(state)
	if len(events) == 0 {
		return nil, ErrNoScript
	}
	return events, nil
}

func run(state *lua.State, path string) error {
	top := state.Top()
	defer state.SetTop(top)
	if err := lua.LoadFile(state, path, ""); err != nil {
		return fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("run lua: %w", err)
	}
	return nil
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)

	state.NewTable()
	state.SetField(lua.RegistryIndex, eventsKey)

	state.NewTable()
	lua.SetFunctions(state, battleFunctions, 0)
	state.SetGlobal("Battle")

	registerSceneType(state)
	registerActionType(state)
	return state
}

var battleFunctions = []lua.RegistryFunction{
	{Name: "register_event", Function: registerEvent},
}

func registerEvent(state *lua.State) int {
	name := lua.CheckString(state, 1)
	lua.CheckType(state, 2, lua.TypeFunction)
	if !eventNames[scene.EventName(name)] {
		lua.Errorf(state, "unknown battle event %q", name)
	}
	state.Field(lua.RegistryIndex, eventsKey)
	state.PushValue(2)
	state.SetField(-2, name)
	state.Pop(1)
	return 0
}

// registered wraps every Lua closure of the events table.
func registered(state *lua.State) scene.Events {
	events := make(scene.Events)
	state.Field(lua.RegistryIndex, eventsKey)
	for name := range eventNames {
		state.Field(-1, string(name))
		if state.IsFunction(-1) {
			events[name] = closure(state, name)
		}
		state.Pop(1)
	}
	state.Pop(1)
	return events
}

// closure calls the Lua function registered under name with the scene and
// args, and converts its result.
func closure(state *lua.State, name scene.EventName) scene.EventFunc {
	return func(s *scene.Scene, args ...any) any {
		top := state.Top()
		defer state.SetTop(top)

		state.Field(lua.RegistryIndex, eventsKey)
		state.Field(-1, string(name))
		pushScene(state, s)
		for _, a := range args {
			pushArg(state, a)
		}
		if err := state.ProtectedCall(1+len(args), 1, 0); err != nil {
			slog.Warn("battle script event failed",
				"battleID", s.Logic().Info().BattleID,
				"event", string(name),
				"error", err)
			return nil
		}
		return toActions(state, -1)
	}
}

func pushArg(state *lua.State, v any) {
	switch v := v.(type) {
	case int:
		state.PushInteger(v)
	case string:
		state.PushString(v)
	case bool:
		state.PushBoolean(v)
	case float64:
		state.PushNumber(v)
	default:
		state.PushNil()
	}
}
