package script_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/scene"
	"github.com/udisondev/battlecore/internal/script"
	"github.com/udisondev/battlecore/internal/testutil"
)

// logVisual is a headless visual keeping the messages.
type logVisual struct {
	scene.Headless
	lines []string
}

func (v *logVisual) Message(text string) { v.lines = append(v.lines, text) }

func writeScripts(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

// firstFoeAI attacks the first foe with the first move.
type firstFoeAI struct {
	l    *battle.Logic
	bank int
}

func (a firstFoeAI) Bank() int  { return a.bank }
func (a firstFoeAI) Party() int { return 0 }

func (a firstFoeAI) Trigger() []battle.Action {
	var out []battle.Action
	for _, b := range a.l.AliveBattlers(a.bank) {
		if foes := a.l.Foes(b); len(foes) > 0 {
			out = append(out, &battle.Attack{Move: b.Moves[0], User: b, TargetBank: foes[0].Bank, TargetPosition: foes[0].Position})
		}
	}
	return out
}

func TestLoader_NoScript(t *testing.T) {
	dir := writeScripts(t, map[string]string{"00002_other.lua": `Battle.register_event("battle_begin", function(s) end)`})

	tests := []struct {
		name string
		dir  string
		id   int
	}{
		{"negative id", dir, -1},
		{"no matching file", dir, 1},
		{"no dir", "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := script.NewLoader(tt.dir).Load(tt.id)
			assert.ErrorIs(t, err, script.ErrNoScript)
			assert.True(t, errors.Is(err, scene.ErrNoEvents))
		})
	}
}

func TestLoader_Files(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"00012_b.lua": "",
		"00012_a.lua": "",
		"00120.lua":   "",
		"00012.txt":   "",
	})

	files, err := script.NewLoader(dir).Files(12)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "00012_a.lua", filepath.Base(files[0]))
	assert.Equal(t, "00012_b.lua", filepath.Base(files[1]))
}

func TestLoader_BattleBegin(t *testing.T) {
	dir := writeScripts(t, map[string]string{"00001_intro.lua": `
Battle.register_event("battle_begin", function(s)
    local foe = s:battler(1, 0)
    s:message("A wild " .. foe.name .. " appeared at level " .. foe.level .. "!")
end)
`})
	events, err := script.NewLoader(dir).Load(1)
	require.NoError(t, err)
	require.Contains(t, events, scene.EventBattleBegin)

	l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}})
	v := &logVisual{Headless: scene.Headless{Logic: l}}
	s, err := scene.New(scene.Config{Logic: l, Visual: v, Events: events, AIs: []scene.AI{firstFoeAI{l, 1}}})
	require.NoError(t, err)
	s.Update()

	assert.Contains(t, v.lines, "A wild y appeared at level 50!")
}

func TestLoader_AIForceAction(t *testing.T) {
	dir := writeScripts(t, map[string]string{"00001.lua": `
Battle.register_event("AI_force_action", function(s, bank, party)
    if bank == 1 then
        return { s:pass() }
    end
end)
`})
	events, err := script.NewLoader(dir).Load(1)
	require.NoError(t, err)

	x := testutil.Battler("x", testutil.WithSpeed(200))
	l := testutil.Logic(t, [][]*battle.Battler{{x}, {testutil.Battler("y")}}, testutil.WithAI(true))
	s, err := scene.New(scene.Config{
		Logic:    l,
		Events:   events,
		AIs:      []scene.AI{firstFoeAI{l, 0}, firstFoeAI{l, 1}},
		AICanWin: true,
	})
	require.NoError(t, err)

	for !s.Done() {
		s.Update()
	}
	assert.Equal(t, battle.ResultWin, s.Result())
	assert.Equal(t, 100, x.HP, "foe only passed")
}

func TestLoader_ScriptedAttack(t *testing.T) {
	dir := writeScripts(t, map[string]string{"00001.lua": `
Battle.register_event("AI_force_action", function(s, bank, party)
    return s:attack(bank, 0, 1, 1 - bank, 0)
end)
`})
	events, err := script.NewLoader(dir).Load(1)
	require.NoError(t, err)

	l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}})
	s, err := scene.New(scene.Config{Logic: l, Visual: &logVisual{}})
	require.NoError(t, err)

	got, ok := events[scene.EventAIForceAction](s, 1, 0).([]battle.Action)
	require.True(t, ok)
	require.Len(t, got, 1)
	atk, ok := got[0].(*battle.Attack)
	require.True(t, ok)
	assert.Same(t, l.Battler(1, 0), atk.User)
	assert.Equal(t, 0, atk.TargetBank)
}

func TestLoader_SetResult(t *testing.T) {
	dir := writeScripts(t, map[string]string{"00004.lua": `
Battle.register_event("trainer_dialog", function(s)
    if s:turn() >= 2 then s:set_result("draw") end
end)
`})
	events, err := script.NewLoader(dir).Load(4)
	require.NoError(t, err)

	l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}}, testutil.WithAI(true))
	s, err := scene.New(scene.Config{
		Logic:    l,
		Events:   events,
		AIs:      []scene.AI{firstFoeAI{l, 0}, firstFoeAI{l, 1}},
		AICanWin: true,
	})
	require.NoError(t, err)

	for !s.Done() {
		s.Update()
	}
	assert.Equal(t, battle.ResultDraw, s.Result())
	assert.Equal(t, 2, l.Turn())
}

func TestLoader_FailingScriptsSkipped(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"00003_a_syntax.lua":  `Battle.register_event("battle_begin", function(s)`,
		"00003_b_unknown.lua": `Battle.register_event("no_such_event", function(s) end)`,
		"00003_c_good.lua":    `Battle.register_event("after_action_dialog", function(s) error("boom") end)`,
	})
	events, err := script.NewLoader(dir).Load(3)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	require.Contains(t, events, scene.EventAfterActionDialog)

	l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}})
	s, err := scene.New(scene.Config{Logic: l, Visual: &logVisual{}})
	require.NoError(t, err)
	assert.Nil(t, events[scene.EventAfterActionDialog](s), "runtime errors yield no result")
}
