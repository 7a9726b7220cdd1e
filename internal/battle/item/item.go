// Package item holds the held items as parameterized policies.
package item

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// RegisterAll registers every held item of the catalog.
func RegisterAll(r *battle.Registry) {
	registerModifiers(r)
	registerConsumables(r)
	registerTriggers(r)
}

func register(r *battle.Registry, build func(id string, owner *battle.Battler) battle.Effect, ids ...string) {
	r.RegisterAll(battle.FamilyItem, build, ids...)
}

// consume uses up the owner's item and shows why.
func consume(l *battle.Logic, owner *battle.Battler, format string, args ...any) bool {
	if !l.ItemChangeHandler().ConsumeItem(owner) {
		return false
	}
	l.Presenter().Message(fmt.Sprintf(format, args...))
	return true
}

func itemName(id string) string {
	b := []byte(id)
	for i, c := range b {
		if c == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}

func hasContact(target, launcher *battle.Battler, move *model.Move) bool {
	return launcher != nil && launcher != target && launcher.Alive() && move != nil && move.Has(model.FlagContact)
}
