package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
	"github.com/udisondev/battlecore/internal/scene"
	"github.com/udisondev/battlecore/internal/testutil"
)

func TestActionQueue_CancelSwitch(t *testing.T) {
	who := testutil.Battler("who")
	with := testutil.Battler("with")

	var q scene.ActionQueue
	q.Push(&battle.Switch{Who: who, With: with})
	require.Equal(t, 1, q.Len())
	assert.True(t, who.Switching)
	assert.True(t, with.Switching)

	assert.True(t, q.Cancel())
	assert.Equal(t, 0, q.Len())
	assert.False(t, who.Switching, "outgoing flag restored")
	assert.False(t, with.Switching, "incoming flag restored")
}

func TestActionQueue_CancelItemReturnsToBag(t *testing.T) {
	potion := &model.ItemData{ID: "potion", Kind: model.ItemHealing, Heal: 20}
	bag := model.NewBag()
	bag.Add(potion, 1)
	user := testutil.Battler("user")

	var q scene.ActionQueue
	q.Push(&battle.ItemAction{Wrapper: battle.ItemWrapper{Item: potion, Target: user}, Bag: bag, User: user})
	assert.Equal(t, 0, bag.Count("potion"))

	q.Cancel()
	assert.Equal(t, 1, bag.Count("potion"))
}

func TestActionQueue_CancelSkipsPasses(t *testing.T) {
	user := testutil.Battler("user")
	mega := &battle.Mega{User: user}

	var q scene.ActionQueue
	q.Push(&battle.Attack{Move: user.Moves[0], User: user, TargetBank: 1}, mega)
	q.Push(battle.Pass{})
	q.Push(battle.Pass{})
	require.True(t, user.MegaPending)

	assert.True(t, q.Cancel())
	assert.Equal(t, 0, q.Len(), "passes and the real entry are gone")
	assert.False(t, user.MegaPending)
	assert.False(t, q.Cancel(), "nothing left to cancel")
}

func TestActionQueue_Flatten(t *testing.T) {
	user := testutil.Battler("user")
	attack := &battle.Attack{Move: user.Moves[0], User: user, TargetBank: 1}
	mega := &battle.Mega{User: user}

	var q scene.ActionQueue
	q.Push(attack, mega)
	q.Push(battle.Pass{})

	got := q.Flatten()
	require.Len(t, got, 3)
	assert.Same(t, attack, got[0])
	assert.Same(t, mega, got[1])
	assert.Equal(t, battle.ActionPass, got[2].Kind())
	assert.Len(t, q.Entry(0), 2)
	assert.Nil(t, q.Entry(5))

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.True(t, user.MegaPending, "clear keeps applied state for resolution")
}
