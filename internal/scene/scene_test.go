package scene_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/battle/item"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/scene"
	"github.com/udisondev/battlecore/internal/testutil"
)

// scripted answers prompts from prepared decisions and waits once they run out.
type scripted struct {
	battle.MessageLog

	choices  []scene.PlayerDecision
	targets  []scene.TargetDecision
	items    []*battle.ItemWrapper
	switches []*battle.Battler

	locked      int
	playerCalls int
}

func (v *scripted) Update() {}

func (v *scripted) Locking() bool {
	if v.locked > 0 {
		v.locked--
		return true
	}
	return false
}

func (v *scripted) ShowPreTransition() {}
func (v *scripted) ShowTransition()    {}

func (v *scripted) PlayerChoice(int) (scene.PlayerDecision, bool) {
	v.playerCalls++
	if len(v.choices) == 0 {
		return scene.PlayerDecision{}, false
	}
	d := v.choices[0]
	v.choices = v.choices[1:]
	return d, true
}

func (v *scripted) SkillChoice(_ int, user *battle.Battler) (*model.Move, bool) {
	return user.Moves[0], true
}

func (v *scripted) TargetChoice(*battle.Battler, *model.Move) (scene.TargetDecision, bool) {
	if len(v.targets) == 0 {
		return scene.TargetDecision{}, false
	}
	d := v.targets[0]
	v.targets = v.targets[1:]
	return d, true
}

func (v *scripted) ItemChoice(int, *battle.Battler) (*battle.ItemWrapper, bool) {
	if len(v.items) == 0 {
		return nil, false
	}
	w := v.items[0]
	v.items = v.items[1:]
	return w, true
}

func (v *scripted) SwitchChoice(int, *battle.Battler) (*battle.Battler, bool) {
	if len(v.switches) == 0 {
		return nil, false
	}
	b := v.switches[0]
	v.switches = v.switches[1:]
	return b, true
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
		foes := a.l.Foes(b)
		if len(foes) == 0 {
			continue
		}
		out = append(out, &battle.Attack{Move: b.Moves[0], User: b, TargetBank: foes[0].Bank, TargetPosition: foes[0].Position})
	}
	return out
}

func newScene(t *testing.T, cfg scene.Config) *scene.Scene {
	t.Helper()
	s, err := scene.New(cfg)
	require.NoError(t, err)
	return s
}

func run(t *testing.T, s *scene.Scene) battle.Result {
	t.Helper()
	r, err := s.Run(context.Background(), 1000)
	require.NoError(t, err)
	return r
}

func TestNew_RequiresLogic(t *testing.T) {
	_, err := scene.New(scene.Config{})
	assert.Error(t, err)
}

func TestScene_AIOnlyBattleEnds(t *testing.T) {
	x := testutil.Battler("x", testutil.WithSpeed(200))
	y := testutil.Battler("y")
	l := testutil.Logic(t, [][]*battle.Battler{{x}, {y}}, testutil.WithAI(true))
	v := &scripted{}
	var phases []scene.Phase
	s := newScene(t, scene.Config{
		Logic:    l,
		Visual:   v,
		AIs:      []scene.AI{firstFoeAI{l, 0}, firstFoeAI{l, 1}},
		AICanWin: true,
		Observer: func(p scene.Phase) { phases = append(phases, p) },
	})

	assert.Equal(t, battle.ResultWin, run(t, s))
	assert.True(t, s.Done())
	assert.Equal(t, 0, v.playerCalls, "no player prompt in an AI-only battle")
	assert.Equal(t, 16, x.HP)
	assert.Equal(t, 4, l.Turn())

	require.NotEmpty(t, phases)
	assert.Equal(t, []scene.Phase{
		scene.PhasePreTransition,
		scene.PhaseTransitionAnimation,
		scene.PhaseShowEnterEvent,
		scene.PhasePlayerActionChoice,
		scene.PhaseTriggerAllAI,
	}, phases[:5])
	assert.Equal(t, scene.PhaseBattleEnd, phases[len(phases)-1])
	for _, p := range phases {
		assert.NotEqual(t, scene.PhaseSkillChoice, p)
	}
}

func TestScene_AIOnlyBattleRequiresAICanWin(t *testing.T) {
	l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}}, testutil.WithAI(true))
	s := newScene(t, scene.Config{Logic: l, AIs: []scene.AI{firstFoeAI{l, 0}, firstFoeAI{l, 1}}})

	assert.Equal(t, battle.ResultDraw, run(t, s))
	assert.Equal(t, 0, l.Turn())
}

func TestScene_HeadlessPlayer(t *testing.T) {
	x := testutil.Battler("x", testutil.WithSpeed(200))
	y := testutil.Battler("y")
	l := testutil.Logic(t, [][]*battle.Battler{{x}, {y}})
	var got battle.Result
	s := newScene(t, scene.Config{
		Logic: l,
		AIs:   []scene.AI{firstFoeAI{l, 1}},
		OnEnd: func(r battle.Result) { got = r },
	})

	assert.Equal(t, battle.ResultWin, run(t, s))
	assert.Equal(t, battle.ResultWin, got)
	assert.Equal(t, 6, x.Moves[0].PP, "player attacked on each of the four turns")
}

func TestScene_WaitsForPlayer(t *testing.T) {
	l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}})
	v := &scripted{}
	s := newScene(t, scene.Config{Logic: l, Visual: v, AIs: []scene.AI{firstFoeAI{l, 1}}})

	for range 3 {
		s.Update()
	}
	assert.Equal(t, scene.PhasePlayerActionChoice, s.Phase())
	assert.Equal(t, 3, v.playerCalls, "asked once per frame")
	assert.False(t, s.Done())
}

func TestScene_Locking(t *testing.T) {
	l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}})
	v := &scripted{locked: 2}
	var calls int
	s := newScene(t, scene.Config{Logic: l, Visual: v, Observer: func(scene.Phase) { calls++ }})

	s.Update()
	s.Update()
	assert.Equal(t, 0, calls)
	assert.Equal(t, scene.PhasePreTransition, s.Phase())

	s.Update()
	assert.Equal(t, scene.PhasePlayerActionChoice, s.Phase())
}

func TestScene_QueueMatchesSlots(t *testing.T) {
	a := testutil.Battler("a")
	fainted := testutil.Battler("fainted", testutil.WithHP(0, 100))
	y := testutil.Battler("y")
	z := testutil.Battler("z")
	l := testutil.Logic(t, [][]*battle.Battler{{a, fainted}, {y, z}}, testutil.WithVsType(2))
	v := &scripted{
		choices: []scene.PlayerDecision{{Choice: scene.ChoiceAttack}},
		targets: []scene.TargetDecision{{Bank: 1, Position: 1}},
	}
	var s *scene.Scene
	var entries [][]battle.Action
	s = newScene(t, scene.Config{
		Logic:  l,
		Visual: v,
		AIs:    []scene.AI{firstFoeAI{l, 1}},
		Observer: func(p scene.Phase) {
			if p == scene.PhaseStartBattlePhase && entries == nil {
				for i := range s.Queue().Len() {
					entries = append(entries, s.Queue().Entry(i))
				}
			}
		},
	})
	s.Update()

	require.Len(t, entries, 2)
	atk, ok := entries[0][0].(*battle.Attack)
	require.True(t, ok)
	assert.Same(t, a, atk.User)
	assert.Equal(t, 1, atk.TargetPosition)
	assert.Equal(t, battle.ActionPass, entries[1][0].Kind(), "empty slot is padded")
}

func TestScene_CancelSwitch(t *testing.T) {
	a := testutil.Battler("a")
	b := testutil.Battler("b")
	reserve := testutil.Battler("reserve")
	l := testutil.Logic(t, [][]*battle.Battler{{a, b, reserve}, {testutil.Battler("y"), testutil.Battler("z")}},
		testutil.WithVsType(2))
	v := &scripted{
		choices:  []scene.PlayerDecision{{Choice: scene.ChoiceSwitch}, {Choice: scene.ChoiceCancel}},
		switches: []*battle.Battler{reserve},
	}
	s := newScene(t, scene.Config{Logic: l, Visual: v})

	s.Update()
	require.Equal(t, 1, s.Queue().Len())
	assert.True(t, a.Switching)
	assert.True(t, reserve.Switching)

	s.Update()
	assert.Equal(t, 0, s.Queue().Len())
	assert.False(t, a.Switching)
	assert.False(t, reserve.Switching)

	s.Update()
	assert.Equal(t, scene.PhasePlayerActionChoice, s.Phase())
}

func TestScene_Struggle(t *testing.T) {
	x := testutil.Battler("x")
	x.Moves[0].PP = 0
	l := testutil.Logic(t, [][]*battle.Battler{{x}, {testutil.Battler("y")}})
	v := &scripted{choices: []scene.PlayerDecision{{Choice: scene.ChoiceAttack}}}
	var s *scene.Scene
	var move string
	s = newScene(t, scene.Config{
		Logic:  l,
		Visual: v,
		Observer: func(p scene.Phase) {
			if p == scene.PhaseTriggerAllAI && move == "" {
				move = s.Queue().Entry(0)[0].(*battle.Attack).Move.ID()
			}
		},
	})
	s.Update()

	assert.Equal(t, "struggle", move)
}

func TestScene_DisabledMoves(t *testing.T) {
	items := func() *battle.Registry {
		r := battle.NewRegistry()
		item.RegisterAll(r)
		r.Freeze()
		return r
	}

	t.Run("only disabled moves struggles", func(t *testing.T) {
		x := testutil.Battler("x", testutil.WithItem("assault_vest"),
			testutil.WithMoves(testutil.StatusMove("toxic", model.StatusToxic)))
		l := testutil.Logic(t, [][]*battle.Battler{{x}, {testutil.Battler("y")}}, testutil.WithRegistry(items()))
		v := &scripted{choices: []scene.PlayerDecision{{Choice: scene.ChoiceAttack}}}
		var s *scene.Scene
		var move string
		s = newScene(t, scene.Config{
			Logic:  l,
			Visual: v,
			Observer: func(p scene.Phase) {
				if p == scene.PhaseTriggerAllAI && move == "" {
					move = s.Queue().Entry(0)[0].(*battle.Attack).Move.ID()
				}
			},
		})
		s.Update()

		assert.Equal(t, "struggle", move)
	})

	t.Run("locked out move is refused", func(t *testing.T) {
		scratch := testutil.Move("scratch", model.TypeNormal, 40)
		x := testutil.Battler("x", testutil.WithItem("choice_band"),
			testutil.WithMoves(scratch, testutil.Move("tackle", model.TypeNormal, 40)))
		y := testutil.Battler("y", testutil.WithHP(1000, 1000))
		l := testutil.Logic(t, [][]*battle.Battler{{x}, {y}}, testutil.WithRegistry(items()))
		l.UseMove(x, x.Moves[1], 1, 0)
		v := &scripted{choices: []scene.PlayerDecision{{Choice: scene.ChoiceAttack}}}
		s := newScene(t, scene.Config{Logic: l, Visual: v})

		s.Update()
		assert.Equal(t, scene.PhaseSkillChoice, s.Phase())
		assert.Zero(t, s.Queue().Len())
		assert.Equal(t, 10, scratch.PP)
	})
}

func TestScene_Mega(t *testing.T) {
	x := testutil.Battler("x")
	x.MegaAbility = "mega_launcher"
	l := testutil.Logic(t, [][]*battle.Battler{{x}, {testutil.Battler("y")}})
	v := &scripted{
		choices: []scene.PlayerDecision{{Choice: scene.ChoiceAttack}},
		targets: []scene.TargetDecision{{Bank: 1, Mega: true}},
	}
	var s *scene.Scene
	var kinds []battle.ActionKind
	s = newScene(t, scene.Config{
		Logic:  l,
		Visual: v,
		Observer: func(p scene.Phase) {
			if p == scene.PhaseTriggerAllAI && kinds == nil {
				for _, a := range s.Queue().Entry(0) {
					kinds = append(kinds, a.Kind())
				}
			}
		},
	})
	s.Update()

	assert.Equal(t, []battle.ActionKind{battle.ActionAttack, battle.ActionMega}, kinds)
	assert.True(t, x.MegaEvolved)
	assert.Equal(t, "mega_launcher", x.AbilityID)
}

// encore pins its owner to the last move of its set.
type encore struct {
	battle.Base
}

func (e *encore) ForcedMove() *model.Move {
	moves := e.Owner().Moves
	return moves[len(moves)-1]
}

func encoreRegistry() *battle.Registry {
	r := battle.NewRegistry()
	r.Register(battle.FamilyAbility, "encore", func(id string, owner *battle.Battler) battle.Effect {
		return &encore{Base: battle.NewAbility(id, owner)}
	})
	return r
}

func TestScene_ForcedMove(t *testing.T) {
	pinned := testutil.Move("pound", model.TypeNormal, 40)

	t.Run("replaces the chosen move", func(t *testing.T) {
		x := testutil.Battler("x", testutil.WithAbility("encore"),
			testutil.WithMoves(testutil.Move("tackle", model.TypeNormal, 40), pinned))
		l := testutil.Logic(t, [][]*battle.Battler{{x}, {testutil.Battler("y")}}, testutil.WithRegistry(encoreRegistry()))
		v := &scripted{
			choices: []scene.PlayerDecision{{Choice: scene.ChoiceAttack}},
			targets: []scene.TargetDecision{{Bank: 1}},
		}
		var s *scene.Scene
		var move *model.Move
		s = newScene(t, scene.Config{
			Logic:  l,
			Visual: v,
			Observer: func(p scene.Phase) {
				if p == scene.PhaseTriggerAllAI && move == nil {
					move = s.Queue().Entry(0)[0].(*battle.Attack).Move
				}
			},
		})
		s.Update()

		assert.Same(t, pinned, move)
	})

	t.Run("cancel goes back to action choice", func(t *testing.T) {
		x := testutil.Battler("x", testutil.WithAbility("encore"), testutil.WithMoves(pinned))
		l := testutil.Logic(t, [][]*battle.Battler{{x}, {testutil.Battler("y")}}, testutil.WithRegistry(encoreRegistry()))
		v := &scripted{
			choices: []scene.PlayerDecision{{Choice: scene.ChoiceAttack}},
			targets: []scene.TargetDecision{{Cancel: true}},
		}
		var phases []scene.Phase
		s := newScene(t, scene.Config{Logic: l, Visual: v, Observer: func(p scene.Phase) { phases = append(phases, p) }})
		s.Update()

		require.GreaterOrEqual(t, len(phases), 3)
		tail := phases[len(phases)-3:]
		assert.Equal(t, []scene.Phase{scene.PhaseSkillChoice, scene.PhaseTargetChoice, scene.PhasePlayerActionChoice}, tail)
	})
}

func TestScene_Flee(t *testing.T) {
	t.Run("wild battle", func(t *testing.T) {
		x := testutil.Battler("x", testutil.WithSpeed(200))
		l := testutil.Logic(t, [][]*battle.Battler{{x}, {testutil.Battler("y")}})
		v := &scripted{choices: []scene.PlayerDecision{{Choice: scene.ChoiceFlee}}}
		s := newScene(t, scene.Config{Logic: l, Visual: v})

		s.Update()
		assert.True(t, s.Done())
		assert.Equal(t, battle.ResultFlee, s.Result())
		assert.Contains(t, v.Lines, "Got away safely!")
	})

	t.Run("trainer battle", func(t *testing.T) {
		l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}}, testutil.WithTrainer())
		v := &scripted{choices: []scene.PlayerDecision{{Choice: scene.ChoiceFlee}}}
		s := newScene(t, scene.Config{Logic: l, Visual: v})

		s.Update()
		s.Update()
		assert.False(t, s.Done())
		assert.Equal(t, scene.PhasePlayerActionChoice, s.Phase())
		assert.Contains(t, v.Lines, "No! There's no running from a Trainer battle!")
	})
}

func TestScene_SpecialItems(t *testing.T) {
	t.Run("ball", func(t *testing.T) {
		ball := &model.ItemData{ID: "master_ball", Kind: model.ItemBall, CatchRate: 255}
		x := testutil.Battler("x")
		x.Bag = model.NewBag()
		x.Bag.Add(ball, 1)
		y := testutil.Battler("y", testutil.WithHP(1, 100))
		y.CatchRate = 255
		l := testutil.Logic(t, [][]*battle.Battler{{x}, {y}})
		v := &scripted{
			choices: []scene.PlayerDecision{{Choice: scene.ChoiceBag}},
			items:   []*battle.ItemWrapper{{Item: ball}},
		}
		s := newScene(t, scene.Config{Logic: l, Visual: v})

		s.Update()
		assert.Equal(t, battle.ResultCaught, s.Result())
		assert.Same(t, y, l.Caught())
		assert.Equal(t, 0, x.Bag.Count("master_ball"))
	})

	t.Run("fleeing item", func(t *testing.T) {
		doll := &model.ItemData{ID: "poke_doll", Kind: model.ItemFleeing}
		l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}})
		v := &scripted{
			choices: []scene.PlayerDecision{{Choice: scene.ChoiceBag}},
			items:   []*battle.ItemWrapper{{Item: doll}},
		}
		s := newScene(t, scene.Config{Logic: l, Visual: v})

		s.Update()
		assert.Equal(t, battle.ResultFlee, s.Result())
	})

	t.Run("used up item is refused", func(t *testing.T) {
		ball := &model.ItemData{ID: "master_ball", Kind: model.ItemBall, CatchRate: 255}
		x := testutil.Battler("x")
		x.Bag = model.NewBag()
		x.Bag.Add(ball, 0)
		y := testutil.Battler("y", testutil.WithHP(1, 100))
		y.CatchRate = 255
		l := testutil.Logic(t, [][]*battle.Battler{{x}, {y}})
		v := &scripted{
			choices: []scene.PlayerDecision{{Choice: scene.ChoiceBag}},
			items:   []*battle.ItemWrapper{{Item: ball}},
		}
		s := newScene(t, scene.Config{Logic: l, Visual: v})

		s.Update()
		assert.False(t, s.Done())
		assert.Nil(t, l.Caught())
		assert.Zero(t, s.Queue().Len())
		assert.Equal(t, scene.PhasePlayerActionChoice, s.Phase())
		assert.Contains(t, v.Lines, "There is no master_ball left.")
	})

	t.Run("healing item is queued", func(t *testing.T) {
		potion := &model.ItemData{ID: "potion", Kind: model.ItemHealing, Heal: 20}
		x := testutil.Battler("x", testutil.WithHP(50, 100))
		x.Bag = model.NewBag()
		x.Bag.Add(potion, 2)
		l := testutil.Logic(t, [][]*battle.Battler{{x}, {testutil.Battler("y")}})
		v := &scripted{
			choices: []scene.PlayerDecision{{Choice: scene.ChoiceBag}},
			items:   []*battle.ItemWrapper{{Item: potion, Target: x}},
		}
		s := newScene(t, scene.Config{Logic: l, Visual: v})

		s.Update()
		require.Equal(t, 1, s.Queue().Len())
		assert.Equal(t, 1, x.Bag.Count("potion"))
	})
}

func TestScene_AIForceAction(t *testing.T) {
	x := testutil.Battler("x", testutil.WithSpeed(200))
	y := testutil.Battler("y")
	l := testutil.Logic(t, [][]*battle.Battler{{x}, {y}}, testutil.WithAI(true))
	var dialogs int
	s := newScene(t, scene.Config{
		Logic:    l,
		AIs:      []scene.AI{firstFoeAI{l, 0}, firstFoeAI{l, 1}},
		AICanWin: true,
		Events: scene.Events{
			scene.EventTrainerDialog: func(*scene.Scene, ...any) any {
				dialogs++
				return nil
			},
			scene.EventAIForceAction: func(_ *scene.Scene, args ...any) any {
				if args[0].(int) == 1 {
					return []battle.Action{battle.Pass{}}
				}
				return nil
			},
		},
	})

	assert.Equal(t, battle.ResultWin, run(t, s))
	assert.Equal(t, 100, x.HP, "forced pass replaced every foe attack")
	assert.Equal(t, 4, dialogs)
}

func TestScene_AIForceActionEmptyKeepsAI(t *testing.T) {
	x := testutil.Battler("x", testutil.WithSpeed(200))
	y := testutil.Battler("y")
	l := testutil.Logic(t, [][]*battle.Battler{{x}, {y}}, testutil.WithAI(true))
	s := newScene(t, scene.Config{
		Logic:    l,
		AIs:      []scene.AI{firstFoeAI{l, 0}, firstFoeAI{l, 1}},
		AICanWin: true,
		Events: scene.Events{
			scene.EventAIForceAction: func(*scene.Scene, ...any) any {
				return []battle.Action{}
			},
		},
	})

	assert.Equal(t, battle.ResultWin, run(t, s))
	assert.Equal(t, 16, x.HP, "both AIs still attacked")
}

func TestScene_FailingEventIsSkipped(t *testing.T) {
	x := testutil.Battler("x", testutil.WithSpeed(200))
	l := testutil.Logic(t, [][]*battle.Battler{{x}, {testutil.Battler("y")}}, testutil.WithAI(true))
	s := newScene(t, scene.Config{
		Logic:    l,
		AIs:      []scene.AI{firstFoeAI{l, 0}, firstFoeAI{l, 1}},
		AICanWin: true,
		Events: scene.Events{
			scene.EventBattleBegin: func(*scene.Scene, ...any) any { panic("broken script") },
		},
	})

	assert.Equal(t, battle.ResultWin, run(t, s))
}

func TestScene_DebugTerminate(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  bool
	}{
		{"debug off", false, false},
		{"debug on", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}})
			s := newScene(t, scene.Config{Logic: l, Visual: &scripted{}, Debug: tt.debug})
			s.Update()

			if got := s.DebugTerminate(battle.ResultLose); got != tt.want {
				t.Fatalf("DebugTerminate() = %v, want %v", got, tt.want)
			}
			s.Update()
			assert.Equal(t, tt.want, s.Done())
			assert.Equal(t, tt.want, l.DebugEndOfBattle)
			if tt.want {
				assert.Equal(t, battle.ResultLose, s.Result())
			}
		})
	}
}

func TestScene_RunStopsOnCancelledContext(t *testing.T) {
	l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}})
	s := newScene(t, scene.Config{Logic: l, Visual: &scripted{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScene_RunFrameLimit(t *testing.T) {
	l := testutil.Logic(t, [][]*battle.Battler{{testutil.Battler("x")}, {testutil.Battler("y")}})
	s := newScene(t, scene.Config{Logic: l, Visual: &scripted{}})

	_, err := s.Run(context.Background(), 5)
	assert.Error(t, err)
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase scene.Phase
		want  string
	}{
		{scene.PhasePreTransition, "pre_transition"},
		{scene.PhaseTriggerAllAI, "trigger_all_AI"},
		{scene.PhaseBattleEnd, "battle_end"},
		{scene.Phase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.phase), got, tt.want)
		}
	}
}
