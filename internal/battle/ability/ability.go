// Package ability holds the battle abilities as parameterized policies.
// Each policy type serves every identifier sharing its behavior.
package ability

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

type presenter interface {
	ShowAbility(b *battle.Battler)
	Message(text string)
}

// announce flashes the owner's ability and shows a message.
func announce(p presenter, owner *battle.Battler, format string, args ...any) {
	p.ShowAbility(owner)
	p.Message(fmt.Sprintf(format, args...))
}

func isFoe(owner, b *battle.Battler) bool {
	return b != nil && owner != nil && b.Bank != owner.Bank
}

func grounded(b *battle.Battler) bool {
	return !b.HasType(model.TypeFlying) && !b.HasAbility("levitate") && !b.HoldsItem("air_balloon")
}

// RegisterAll registers every ability of the catalog.
func RegisterAll(r *battle.Registry) {
	registerField(r)
	registerOffense(r)
	registerDefense(r)
	registerTriggers(r)
}

func register(r *battle.Registry, build func(id string, owner *battle.Battler) battle.Effect, ids ...string) {
	r.RegisterAll(battle.FamilyAbility, build, ids...)
}
