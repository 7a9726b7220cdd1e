package script

import (
	"github.com/Shopify/go-lua"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/scene"
)

const (
	sceneTypeName  = "battle_scene"
	actionTypeName = "battle_action"
)

var results = map[string]battle.Result{
	"win":    battle.ResultWin,
	"flee":   battle.ResultFlee,
	"lose":   battle.ResultLose,
	"draw":   battle.ResultDraw,
	"caught": battle.ResultCaught,
}

// luaAction carries an action built by a script back to Go.
type luaAction struct {
	action battle.Action
}

func registerSceneType(state *lua.State) {
	lua.NewMetaTable(state, sceneTypeName)
	state.NewTable()
	lua.SetFunctions(state, sceneMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerActionType(state *lua.State) {
	lua.NewMetaTable(state, actionTypeName)
	state.NewTable()
	lua.SetFunctions(state, actionMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

var sceneMethods = []lua.RegistryFunction{
	{Name: "battle_id", Function: sceneBattleID},
	{Name: "turn", Function: sceneTurn},
	{Name: "message", Function: sceneMessage},
	{Name: "battler", Function: sceneBattler},
	{Name: "set_result", Function: sceneSetResult},
	{Name: "attack", Function: sceneAttack},
	{Name: "pass", Function: scenePass},
}

var actionMethods = []lua.RegistryFunction{
	{Name: "kind", Function: actionKind},
}

func pushScene(state *lua.State, s *scene.Scene) {
	state.PushUserData(s)
	lua.SetMetaTableNamed(state, sceneTypeName)
}

func checkScene(state *lua.State) *scene.Scene {
	ud := lua.CheckUserData(state, 1, sceneTypeName)
	if s, ok := ud.(*scene.Scene); ok && s != nil {
		return s
	}
	lua.ArgumentError(state, 1, "scene expected")
	return nil
}

func sceneBattleID(state *lua.State) int {
	state.PushInteger(checkScene(state).Logic().Info().BattleID)
	return 1
}

func sceneTurn(state *lua.State) int {
	state.PushInteger(checkScene(state).Logic().Turn())
	return 1
}

func sceneMessage(state *lua.State) int {
	s := checkScene(state)
	s.Logic().Presenter().Message(lua.CheckString(state, 2))
	return 0
}

// sceneBattler pushes a table describing the active battler at
// (bank, position), or nil.
func sceneBattler(state *lua.State) int {
	s := checkScene(state)
	b := s.Logic().Battler(lua.CheckInteger(state, 2), lua.CheckInteger(state, 3))
	if b == nil {
		state.PushNil()
		return 1
	}
	state.NewTable()
	state.PushString(b.Name)
	state.SetField(-2, "name")
	state.PushInteger(b.Level)
	state.SetField(-2, "level")
	state.PushInteger(b.HP)
	state.SetField(-2, "hp")
	state.PushInteger(b.MaxHP)
	state.SetField(-2, "max_hp")
	state.PushString(b.Status.String())
	state.SetField(-2, "status")
	state.PushString(b.AbilityID)
	state.SetField(-2, "ability")
	state.PushString(b.ItemID)
	state.SetField(-2, "item")
	state.PushInteger(len(b.Moves))
	state.SetField(-2, "moves")
	return 1
}

func sceneSetResult(state *lua.State) int {
	s := checkScene(state)
	name := lua.CheckString(state, 2)
	r, ok := results[name]
	if !ok {
		lua.ArgumentError(state, 2, "unknown result "+name)
	}
	s.Logic().SetResult(r)
	return 0
}

// sceneAttack builds an attack of the active battler at (bank, position)
// using its move number move_index (1-based) on (target_bank, target_position).
func sceneAttack(state *lua.State) int {
	s := checkScene(state)
	user := s.Logic().Battler(lua.CheckInteger(state, 2), lua.CheckInteger(state, 3))
	if user == nil {
		lua.ArgumentError(state, 2, "no active battler")
	}
	index := lua.CheckInteger(state, 4)
	if index < 1 || index > len(user.Moves) {
		lua.ArgumentError(state, 4, "move index out of range")
	}
	a := &battle.Attack{
		Move:           user.Moves[index-1],
		User:           user,
		TargetBank:     lua.CheckInteger(state, 5),
		TargetPosition: lua.OptInteger(state, 6, 0),
	}
	pushAction(state, a)
	return 1
}

func scenePass(state *lua.State) int {
	checkScene(state)
	pushAction(state, battle.Pass{})
	return 1
}

func pushAction(state *lua.State, a battle.Action) {
	state.PushUserData(&luaAction{action: a})
	lua.SetMetaTableNamed(state, actionTypeName)
}

func actionKind(state *lua.State) int {
	ud := lua.CheckUserData(state, 1, actionTypeName)
	a, ok := ud.(*luaAction)
	if !ok {
		lua.ArgumentError(state, 1, "action expected")
		return 0
	}
	state.PushString(a.action.Kind().String())
	return 1
}

// toActions converts the value at index: one action or an array of
// actions. Anything else yields nil.
func toActions(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeUserData:
		if a, ok := state.ToUserData(index).(*luaAction); ok {
			return []battle.Action{a.action}
		}
	case lua.TypeTable:
		index = state.AbsIndex(index)
		var out []battle.Action
		for i := 1; ; i++ {
			state.RawGetInt(index, i)
			if state.IsNil(-1) {
				state.Pop(1)
				break
			}
			if a, ok := state.ToUserData(-1).(*luaAction); ok {
				out = append(out, a.action)
			}
			state.Pop(1)
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
