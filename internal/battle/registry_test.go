package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/testutil"
)

// doubler doubles the base power of its owner's moves.
type doubler struct {
	battle.Base
}

func newDoubler(id string, owner *battle.Battler) battle.Effect {
	return &doubler{Base: battle.NewAbility(id, owner)}
}

func (d *doubler) BasePowerMultiplier(_ battle.Context, user, _ *battle.Battler, _ *model.Move) float64 {
	if d.OwnedBy(user) {
		return 2
	}
	return 1
}

func TestRegistry_Create(t *testing.T) {
	r := battle.NewRegistry()
	r.Register(battle.FamilyAbility, "a", newDoubler)
	owner := testutil.Battler("x")

	e := r.Create(battle.FamilyAbility, "a", owner)
	require.NotNil(t, e)
	assert.IsType(t, &doubler{}, e)
	assert.Same(t, owner, e.Owner())
	assert.Equal(t, "a", e.ID())
	assert.Equal(t, battle.FamilyAbility, e.Family())

	def := r.Create(battle.FamilyAbility, "unknown", owner)
	require.NotNil(t, def)
	assert.IsType(t, &battle.Default{}, def)
	assert.Same(t, owner, def.Owner())
	assert.Equal(t, "unknown", def.ID())

	// families do not share identifiers
	item := r.Create(battle.FamilyItem, "a", owner)
	assert.IsType(t, &battle.Default{}, item)
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := battle.NewRegistry()
	r.Register(battle.FamilyItem, "x", func(id string, owner *battle.Battler) battle.Effect {
		return battle.NewDefault(battle.FamilyItem, id, owner)
	})
	r.Register(battle.FamilyItem, "x", newDoubler)

	assert.IsType(t, &doubler{}, r.Create(battle.FamilyItem, "x", nil))
	assert.Equal(t, []string{"x"}, r.IDs(battle.FamilyItem))
}

func TestRegistry_FrozenRejectsRegister(t *testing.T) {
	r := battle.NewRegistry()
	r.Freeze()
	assert.Panics(t, func() {
		r.Register(battle.FamilyAbility, "late", newDoubler)
	})
	assert.False(t, r.Has(battle.FamilyAbility, "late"))
}

func TestRegistry_NilFactoryResultFallsBack(t *testing.T) {
	r := battle.NewRegistry()
	r.Register(battle.FamilyAbility, "nil", func(string, *battle.Battler) battle.Effect { return nil })
	assert.IsType(t, &battle.Default{}, r.Create(battle.FamilyAbility, "nil", nil))
}

func TestPrevention_CommitRunsOnce(t *testing.T) {
	calls := 0
	p := battle.Prevent(func() { calls++ })
	p.Commit()
	p.Commit()
	assert.Equal(t, 1, calls)
	assert.True(t, p.Block)

	var nilPrevention *battle.Prevention
	assert.NotPanics(t, nilPrevention.Commit)
}
