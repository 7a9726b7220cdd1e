package ability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/battle/ability"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
)

func registry() *battle.Registry {
	r := battle.NewRegistry()
	ability.RegisterAll(r)
	r.Freeze()
	return r
}

func duel(t *testing.T, x, y *battle.Battler) *battle.Logic {
	t.Helper()
	return testutil.Logic(t, [][]*battle.Battler{{x}, {y}}, testutil.WithRegistry(registry()))
}

func contactMove(id string, t model.Type, power int) *model.Move {
	m := testutil.Move(id, t, power)
	m.Data.Flags |= model.FlagContact
	return m
}

func TestRegisterAll(t *testing.T) {
	r := registry()
	for _, id := range []string{"intimidate", "drizzle", "levitate", "sturdy", "neutralizing_gas", "parental_bond"} {
		assert.True(t, r.Has(battle.FamilyAbility, id), id)
	}
	e := r.Create(battle.FamilyAbility, "not_an_ability", nil)
	_, isDefault := e.(*battle.Default)
	assert.True(t, isDefault)
}

func TestTypeBoost_Threshold(t *testing.T) {
	tests := []struct {
		name string
		hp   int
		want int
	}{
		{"full hp", 100, 81},
		{"below a third", 30, 72},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := testutil.Battler("x", testutil.WithAbility("blaze"), testutil.WithHP(tt.hp, 100))
			y := testutil.Battler("y")
			l := duel(t, x, y)
			l.UseMove(x, testutil.SpecialMove("ember", model.TypeFire, 40), 1, 0)
			if y.HP != tt.want {
				t.Errorf("y.HP = %v, want %v", y.HP, tt.want)
			}
		})
	}
}

func TestParentalBond_SecondHit(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("parental_bond"))
	y := testutil.Battler("y")
	l := duel(t, x, y)

	l.UseMove(x, x.Moves[0], 1, 0)
	assert.Equal(t, 63, y.HP)
}

func TestPrankster_Priority(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("prankster"))
	y := testutil.Battler("y")
	l := duel(t, x, y)

	assert.Equal(t, 1, l.MovePriority(x, testutil.StatusMove("thunder_wave", model.StatusParalysis)))
	assert.Zero(t, l.MovePriority(x, x.Moves[0]))
}

func TestIntimidate(t *testing.T) {
	t.Run("lowers foe attack", func(t *testing.T) {
		x := testutil.Battler("x", testutil.WithAbility("intimidate"))
		y := testutil.Battler("y")
		l := duel(t, x, y)
		l.SwitchHandler().ExecuteEnterEvents()
		assert.Equal(t, -1, y.Stage(model.StatAtk))
	})
	t.Run("hyper cutter", func(t *testing.T) {
		x := testutil.Battler("x", testutil.WithAbility("intimidate"))
		y := testutil.Battler("y", testutil.WithAbility("hyper_cutter"))
		l := duel(t, x, y)
		log := &battle.MessageLog{}
		l.SetPresenter(log)
		l.SwitchHandler().ExecuteEnterEvents()
		assert.Zero(t, y.Stage(model.StatAtk))
		assert.Contains(t, log.Lines, "y's Attack was not lowered!")
	})
	t.Run("defiant", func(t *testing.T) {
		x := testutil.Battler("x", testutil.WithAbility("intimidate"))
		y := testutil.Battler("y", testutil.WithAbility("defiant"))
		l := duel(t, x, y)
		l.SwitchHandler().ExecuteEnterEvents()
		assert.Equal(t, 1, y.Stage(model.StatAtk))
	})
}

func TestStageScaling(t *testing.T) {
	x := testutil.Battler("x")
	y := testutil.Battler("y", testutil.WithAbility("contrary"))
	l := duel(t, x, y)

	assert.Equal(t, 1, l.StatChangeHandler().StatChange(model.StatDfe, -1, y, x, nil))
	assert.Equal(t, 1, y.Stage(model.StatDfe))
}

func TestMoveImmunity(t *testing.T) {
	t.Run("levitate", func(t *testing.T) {
		x := testutil.Battler("x")
		y := testutil.Battler("y", testutil.WithAbility("levitate"))
		l := duel(t, x, y)
		l.UseMove(x, testutil.Move("mud_shot", model.TypeGround, 60), 1, 0)
		assert.Equal(t, 100, y.HP)
	})
	t.Run("volt absorb heals", func(t *testing.T) {
		x := testutil.Battler("x")
		y := testutil.Battler("y", testutil.WithAbility("volt_absorb"), testutil.WithHP(50, 100))
		l := duel(t, x, y)
		l.UseMove(x, testutil.SpecialMove("thunderbolt", model.TypeElectric, 90), 1, 0)
		assert.Equal(t, 75, y.HP)
	})
	t.Run("motor drive raises speed", func(t *testing.T) {
		x := testutil.Battler("x")
		y := testutil.Battler("y", testutil.WithAbility("motor_drive"))
		l := duel(t, x, y)
		l.UseMove(x, testutil.SpecialMove("thunderbolt", model.TypeElectric, 90), 1, 0)
		assert.Equal(t, 100, y.HP)
		assert.Equal(t, 1, y.Stage(model.StatSpd))
	})
}

func TestSturdy(t *testing.T) {
	x := testutil.Battler("x")
	y := testutil.Battler("y", testutil.WithAbility("sturdy"))
	l := duel(t, x, y)

	l.UseMove(x, testutil.Move("giga_impact", model.TypeNormal, 500), 1, 0)
	assert.Equal(t, 1, y.HP)
	l.UseMove(x, x.Moves[0], 1, 0)
	assert.True(t, y.Dead(), "sturdy only holds at full hp")
}

func TestMagicGuard(t *testing.T) {
	x := testutil.Battler("x")
	y := testutil.Battler("y", testutil.WithAbility("magic_guard"))
	l := duel(t, x, y)

	assert.Zero(t, l.DamageHandler().Damage(10, y, nil, nil))
	assert.Equal(t, 10, l.DamageHandler().Damage(10, y, x, x.Moves[0]))
}

func TestContactRetaliation(t *testing.T) {
	x := testutil.Battler("x", testutil.WithMoves(contactMove("scratch", model.TypeNormal, 40)))
	y := testutil.Battler("y", testutil.WithAbility("rough_skin"))
	l := duel(t, x, y)

	l.UseMove(x, x.Moves[0], 1, 0)
	assert.Equal(t, 72, y.HP)
	assert.Equal(t, 88, x.HP)

	l.UseMove(x, testutil.Move("tackle", model.TypeNormal, 40), 1, 0)
	assert.Equal(t, 88, x.HP, "no contact flag")
}

func TestTrapper(t *testing.T) {
	cases := []struct {
		name    string
		trapper string
		opts    []testutil.BattlerOption
		want    bool
	}{
		{"shadow tag traps", "shadow_tag", nil, false},
		{"ghost escapes", "shadow_tag", []testutil.BattlerOption{testutil.WithTypes(model.TypeGhost)}, true},
		{"arena trap ignores flying", "arena_trap", []testutil.BattlerOption{testutil.WithTypes(model.TypeFlying)}, true},
		{"magnet pull traps steel", "magnet_pull", []testutil.BattlerOption{testutil.WithTypes(model.TypeSteel)}, false},
		{"magnet pull ignores normal", "magnet_pull", nil, true},
		{"run away flees", "shadow_tag", []testutil.BattlerOption{testutil.WithAbility("run_away")}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x := testutil.Battler("x", tc.opts...)
			y := testutil.Battler("y", testutil.WithAbility(tc.trapper))
			l := duel(t, x, y)
			got := l.SwitchHandler().CanSwitch(x, nil, battle.SwitchReasonFlee)
			if got != tc.want {
				t.Errorf("CanSwitch() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWeatherSetter(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("drizzle"), testutil.WithItem("damp_rock"))
	y := testutil.Battler("y")
	l := duel(t, x, y)

	l.SwitchHandler().ExecuteEnterEvents()
	assert.Equal(t, model.WeatherRain, l.Weather())
	assert.Equal(t, 8, l.WeatherChangeHandler().WeatherTurns())
}

func TestPrimalWeather(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("primordial_sea"))
	x2 := testutil.Battler("x2", testutil.WithParty(1))
	y := testutil.Battler("y", testutil.WithAbility("drought"))
	l := testutil.Logic(t, [][]*battle.Battler{{x, x2}, {y}}, testutil.WithRegistry(registry()),
		func(c *battle.Config) { c.Info.AILevels = [][]*int{{nil, nil}, {testutil.Level(1)}} })

	x.Stats.Spd = 200
	l.SwitchHandler().ExecuteEnterEvents()
	require.Equal(t, model.WeatherHardRain, l.Weather())
	assert.False(t, l.WeatherChangeHandler().WeatherChange(model.WeatherSunny, 5))

	l.SwitchHandler().ExecuteSwitch(x, x2)
	assert.Equal(t, model.WeatherNone, l.Weather(), "primal weather ends with its holder")
}

func TestPrimalWeather_EndsOnFaint(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("desolate_land"), testutil.WithSpeed(200))
	y := testutil.Battler("y")
	l := duel(t, x, y)

	l.SwitchHandler().ExecuteEnterEvents()
	require.Equal(t, model.WeatherHardSun, l.Weather())

	l.DamageHandler().Damage(x.HP, x, nil, nil)
	require.True(t, x.Dead())
	assert.Equal(t, model.WeatherNone, l.Weather(), "primal weather ends when its holder faints")
}

func TestNeutralizingGas(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("neutralizing_gas"), testutil.WithSpeed(200))
	x2 := testutil.Battler("x2", testutil.WithParty(1))
	y := testutil.Battler("y", testutil.WithAbility("intimidate"))
	l := testutil.Logic(t, [][]*battle.Battler{{x, x2}, {y}}, testutil.WithRegistry(registry()),
		func(c *battle.Config) { c.Info.AILevels = [][]*int{{nil, nil}, {testutil.Level(1)}} })

	l.SwitchHandler().ExecuteEnterEvents()
	require.True(t, y.AbilitySuppressed())
	assert.Zero(t, x.Stage(model.StatAtk), "suppressed intimidate does not fire")
	assert.NotContains(t, l.EffectsFor(y), y.AbilityEffect())

	l.SwitchHandler().ExecuteSwitch(x, x2)
	assert.False(t, y.AbilitySuppressed())
}

func TestNeutralizingGas_SuppressesEntrant(t *testing.T) {
	a := testutil.Battler("a")
	b := testutil.Battler("b", testutil.WithAbility("intimidate"), testutil.WithParty(1))
	g := testutil.Battler("g", testutil.WithAbility("neutralizing_gas"))
	l := testutil.Logic(t, [][]*battle.Battler{{a, b}, {g}}, testutil.WithRegistry(registry()),
		func(c *battle.Config) { c.Info.AILevels = [][]*int{{nil, nil}, {testutil.Level(1)}} })

	l.SwitchHandler().ExecuteEnterEvents()
	l.SwitchHandler().ExecuteSwitch(a, b)
	l.SwitchHandler().ExecuteSwitchEvents(a, b)

	require.True(t, b.AbilitySuppressed())
	if got := g.Stage(model.StatAtk); got != 0 {
		t.Errorf("g.Stage(atk) = %v, want 0", got)
	}
}

func TestNeutralizingGas_SlowerOwnerDoesNotSuppressEarlierEntry(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("neutralizing_gas"))
	y := testutil.Battler("y", testutil.WithAbility("intimidate"), testutil.WithSpeed(200))
	l := duel(t, x, y)

	l.SwitchHandler().ExecuteEnterEvents()
	assert.Equal(t, -1, x.Stage(model.StatAtk), "intimidate entered before the gas")
	assert.True(t, y.AbilitySuppressed())
}

func TestTruant(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("truant"))
	y := testutil.Battler("y")
	l := duel(t, x, y)

	l.UseMove(x, x.Moves[0], 1, 0)
	assert.Equal(t, 72, y.HP)
	l.UseMove(x, x.Moves[0], 1, 0)
	assert.Equal(t, 72, y.HP, "loafing turn")
	l.UseMove(x, x.Moves[0], 1, 0)
	assert.Equal(t, 44, y.HP)
}

func TestStatusImmunity(t *testing.T) {
	x := testutil.Battler("x")
	y := testutil.Battler("y", testutil.WithAbility("limber"))
	l := duel(t, x, y)

	assert.False(t, l.StatusChangeHandler().StatusChange(model.StatusParalysis, y, x, nil))
	assert.True(t, l.StatusChangeHandler().StatusChange(model.StatusBurn, y, x, nil))
}

func TestSynchronize(t *testing.T) {
	x := testutil.Battler("x")
	y := testutil.Battler("y", testutil.WithAbility("synchronize"))
	l := duel(t, x, y)

	require.True(t, l.StatusChangeHandler().StatusChange(model.StatusBurn, y, x, nil))
	assert.Equal(t, model.StatusBurn, x.Status)
}

func TestRegenerator(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("regenerator"), testutil.WithHP(40, 90))
	x2 := testutil.Battler("x2", testutil.WithParty(1))
	y := testutil.Battler("y")
	l := testutil.Logic(t, [][]*battle.Battler{{x, x2}, {y}}, testutil.WithRegistry(registry()),
		func(c *battle.Config) { c.Info.AILevels = [][]*int{{nil, nil}, {testutil.Level(1)}} })

	l.SwitchHandler().ExecuteSwitch(x, x2)
	assert.Equal(t, 70, x.HP)
	assert.False(t, x.Active())
}

func TestTrace(t *testing.T) {
	x := testutil.Battler("x", testutil.WithAbility("trace"), testutil.WithSpeed(200))
	y := testutil.Battler("y", testutil.WithAbility("intimidate"))
	l := duel(t, x, y)

	l.SwitchHandler().ExecuteEnterEvents()
	assert.Equal(t, "intimidate", x.AbilityID)
	assert.Equal(t, -1, y.Stage(model.StatAtk), "traced ability runs its entry event")
	assert.Equal(t, -1, x.Stage(model.StatAtk))
}
