package testutil

import (
	"testing"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// Move returns a physical move slot that never misses.
func Move(id string, t model.Type, power int) *model.Move {
	return model.NewMove(&model.MoveData{
		ID:       id,
		Type:     t,
		Power:    power,
		PP:       10,
		Category: model.CategoryPhysical,
		Target:   model.TargetAdjacentFoe,
	})
}

// SpecialMove returns a special move slot that never misses.
func SpecialMove(id string, t model.Type, power int) *model.Move {
	m := Move(id, t, power)
	m.Data.Category = model.CategorySpecial
	return m
}

// StatusMove returns a status move slot inflicting status on its target.
func StatusMove(id string, status model.Status) *model.Move {
	return model.NewMove(&model.MoveData{
		ID:       id,
		Type:     model.TypeNormal,
		PP:       10,
		Category: model.CategoryStatus,
		Target:   model.TargetAdjacentFoe,
		Status:   status,
	})
}

// BattlerOption customizes a fixture battler.
type BattlerOption func(*battle.Battler)

// WithTypes sets the battler types.
func WithTypes(types ...model.Type) BattlerOption {
	return func(b *battle.Battler) { b.Types = types }
}

// WithAbility sets the ability id.
func WithAbility(id string) BattlerOption {
	return func(b *battle.Battler) { b.AbilityID = id }
}

// WithItem sets the held item id.
func WithItem(id string) BattlerOption {
	return func(b *battle.Battler) { b.ItemID = id }
}

// WithMoves replaces the move set.
func WithMoves(moves ...*model.Move) BattlerOption {
	return func(b *battle.Battler) { b.Moves = moves }
}

// WithHP sets current and max HP.
func WithHP(hp, maxHP int) BattlerOption {
	return func(b *battle.Battler) {
		b.HP = hp
		b.MaxHP = maxHP
	}
}

// WithSpeed sets the base speed.
func WithSpeed(spd int) BattlerOption {
	return func(b *battle.Battler) { b.Stats.Spd = spd }
}

// WithParty sets the party index inside the bank.
func WithParty(party int) BattlerOption {
	return func(b *battle.Battler) { b.Party = party }
}

// Battler returns a level 50 normal-type battler with 100 in every stat.
func Battler(name string, opts ...BattlerOption) *battle.Battler {
	b := &battle.Battler{
		Name:  name,
		Level: 50,
		HP:    100,
		MaxHP: 100,
		Stats: model.BaseStats{HP: 100, Atk: 100, Dfe: 100, Spd: 100, Ats: 100, Dfs: 100},
		Types: []model.Type{model.TypeNormal},
		Moves: []*model.Move{Move("tackle", model.TypeNormal, 40)},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Level returns a pointer to an AI level.
func Level(n int) *int { return &n }

// LogicOption customizes a fixture battle.
type LogicOption func(*battle.Config)

// WithRegistry binds battlers against r.
func WithRegistry(r *battle.Registry) LogicOption {
	return func(c *battle.Config) { c.Registry = r }
}

// WithPresenter installs p.
func WithPresenter(p battle.Presenter) LogicOption {
	return func(c *battle.Config) { c.Presenter = p }
}

// WithVsType sets the active slots per bank.
func WithVsType(n int) LogicOption {
	return func(c *battle.Config) { c.Info.VsType = n }
}

// WithAI drives every bank but the first with AI level 1, and the first
// with AI too when allAI is set.
func WithAI(allAI bool) LogicOption {
	return func(c *battle.Config) {
		c.Info.AILevels = make([][]*int, len(c.Parties))
		for bank := range c.Parties {
			if bank == 0 && !allAI {
				c.Info.AILevels[bank] = []*int{nil}
				continue
			}
			c.Info.AILevels[bank] = []*int{Level(1)}
		}
	}
}

// WithSeed sets the RNG seed.
func WithSeed(seed uint64) LogicOption {
	return func(c *battle.Config) { c.Seed = seed }
}

// WithMaxTurns bounds the battle length.
func WithMaxTurns(n int) LogicOption {
	return func(c *battle.Config) { c.MaxTurns = n }
}

// WithTrainer marks the battle as a trainer battle.
func WithTrainer() LogicOption {
	return func(c *battle.Config) { c.Info.TrainerBattle = true }
}

// Logic builds a 1v1-by-default battle with deterministic damage.
// Bank 0 is player controlled unless WithAI(true) is given.
func Logic(tb testing.TB, parties [][]*battle.Battler, opts ...LogicOption) *battle.Logic {
	tb.Helper()
	cfg := battle.Config{
		Info:       battle.Info{BattleID: 1, VsType: 1},
		Parties:    parties,
		Registry:   battle.NewRegistry(),
		Seed:       42,
		Calculator: &battle.StandardDamage{NoRandom: true, NoCritical: true},
	}
	WithAI(false)(&cfg)
	for _, opt := range opts {
		opt(&cfg)
	}
	l, err := battle.NewLogic(cfg)
	if err != nil {
		tb.Fatalf("NewLogic() error = %v", err)
	}
	return l
}
