package item

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

func registerModifiers(r *battle.Registry) {
	register(r, choiceItem(model.StatAtk), "choice_band")
	register(r, choiceItem(model.StatAts), "choice_specs")
	register(r, choiceItem(model.StatSpd), "choice_scarf")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &AssaultVest{Base: battle.NewItem(id, owner)}
	}, "assault_vest")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Eviolite{Base: battle.NewItem(id, owner)}
	}, "eviolite")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &HalfSpeed{Base: battle.NewItem(id, owner)}
	}, "iron_ball", "macho_brace", "power_weight", "power_bracer", "power_belt", "power_lens", "power_band", "power_anklet")

	typed := map[model.Type][]string{
		model.TypeFire:     {"charcoal"},
		model.TypeWater:    {"mystic_water", "sea_incense"},
		model.TypeGrass:    {"miracle_seed", "rose_incense"},
		model.TypeElectric: {"magnet"},
		model.TypeIce:      {"never_melt_ice"},
		model.TypeFighting: {"black_belt"},
		model.TypePoison:   {"poison_barb"},
		model.TypeGround:   {"soft_sand"},
		model.TypeFlying:   {"sharp_beak"},
		model.TypePsychic:  {"twisted_spoon", "odd_incense"},
		model.TypeBug:      {"silver_powder"},
		model.TypeRock:     {"hard_stone", "rock_incense"},
		model.TypeGhost:    {"spell_tag"},
		model.TypeDragon:   {"dragon_fang"},
		model.TypeDark:     {"black_glasses"},
		model.TypeSteel:    {"metal_coat"},
		model.TypeNormal:   {"silk_scarf"},
		model.TypeFairy:    {"fairy_feather"},
	}
	for t, ids := range typed {
		register(r, typeItem(t, "", 1.2), ids...)
	}
	plates := map[model.Type]string{
		model.TypeFire: "flame_plate", model.TypeWater: "splash_plate", model.TypeGrass: "meadow_plate",
		model.TypeElectric: "zap_plate", model.TypeIce: "icicle_plate", model.TypeFighting: "fist_plate",
		model.TypePoison: "toxic_plate", model.TypeGround: "earth_plate", model.TypeFlying: "sky_plate",
		model.TypePsychic: "mind_plate", model.TypeBug: "insect_plate", model.TypeRock: "stone_plate",
		model.TypeGhost: "spooky_plate", model.TypeDragon: "draco_plate", model.TypeDark: "dread_plate",
		model.TypeSteel: "iron_plate", model.TypeFairy: "pixie_plate",
	}
	for t, id := range plates {
		register(r, typeItem(t, "judgment", 1.2), id)
	}
	drives := map[model.Type]string{
		model.TypeWater: "douse_drive", model.TypeElectric: "shock_drive",
		model.TypeFire: "burn_drive", model.TypeIce: "chill_drive",
	}
	for t, id := range drives {
		register(r, typeItem(t, "techno_blast", 1), id)
	}

	register(r, categoryBoost(model.CategoryPhysical), "muscle_band")
	register(r, categoryBoost(model.CategorySpecial), "wise_glasses")
	register(r, accuracy(true, 1.1), "wide_lens")
	register(r, accuracy(false, 0.9), "bright_powder", "lax_incense")
}

// ChoiceItem boosts one stat of its owner and locks it into the first
// move it uses.
type ChoiceItem struct {
	battle.Base
	Stat   model.Stat
	locked *model.Move
}

func choiceItem(stat model.Stat) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &ChoiceItem{Base: battle.NewItem(id, owner), Stat: stat}
	}
}

func (c *ChoiceItem) StatModifier(_ battle.Context, b *battle.Battler, stat model.Stat) float64 {
	if stat != c.Stat || !c.OwnedBy(b) {
		return 1
	}
	return 1.5
}

func (c *ChoiceItem) OnPreAccuracyCheck(_ *battle.Logic, user *battle.Battler, _ []*battle.Battler, move *model.Move) {
	if c.OwnedBy(user) && c.locked == nil && move.Data.Routine != "struggle" {
		c.locked = move
	}
}

func (c *ChoiceItem) MoveDisabledCheck(l *battle.Logic, user *battle.Battler, move *model.Move) *battle.Prevention {
	if !c.OwnedBy(user) || c.locked == nil || c.locked == move || !c.locked.Usable() {
		return nil
	}
	locked := c.locked
	return battle.Prevent(func() {
		l.Presenter().Message(fmt.Sprintf("%s is locked into %s!", user.Name, locked.ID()))
	})
}

// AssaultVest raises special defense and forbids status moves.
type AssaultVest struct {
	battle.Base
}

func (a *AssaultVest) SpDefMultiplier(_ battle.Context, _, target *battle.Battler, move *model.Move) float64 {
	if !a.OwnedBy(target) || !move.Special() {
		return 1
	}
	return 1.5
}

func (a *AssaultVest) MoveDisabledCheck(l *battle.Logic, user *battle.Battler, move *model.Move) *battle.Prevention {
	if !a.OwnedBy(user) || !move.StatusMove() {
		return nil
	}
	return battle.Prevent(func() {
		l.Presenter().Message(fmt.Sprintf("%s can't use status moves!", user.Name))
	})
}

// Eviolite raises both defenses of its owner.
type Eviolite struct {
	battle.Base
}

func (e *Eviolite) SpDefMultiplier(_ battle.Context, _, target *battle.Battler, _ *model.Move) float64 {
	if !e.OwnedBy(target) {
		return 1
	}
	return 1.5
}

// HalfSpeed halves its owner's speed.
type HalfSpeed struct {
	battle.Base
}

func (h *HalfSpeed) StatModifier(_ battle.Context, b *battle.Battler, stat model.Stat) float64 {
	if stat != model.StatSpd || !h.OwnedBy(b) {
		return 1
	}
	return 0.5
}

// TypeItem boosts the owner's moves of Type. With a Routine it also turns
// the moves running that routine into Type.
type TypeItem struct {
	battle.Base
	Type    model.Type
	Routine string
	Factor  float64
}

func typeItem(t model.Type, routine string, factor float64) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &TypeItem{Base: battle.NewItem(id, owner), Type: t, Routine: routine, Factor: factor}
	}
}

func (t *TypeItem) MoveTypeChange(_ battle.Context, user, _ *battle.Battler, move *model.Move, _ model.Type) (model.Type, bool) {
	if t.Routine == "" || !t.OwnedBy(user) || move.Data.Routine != t.Routine {
		return model.TypeNone, false
	}
	return t.Type, true
}

func (t *TypeItem) BasePowerMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !t.OwnedBy(user) || move.StatusMove() {
		return 1
	}
	if move.Data.Type == t.Type || t.Routine != "" && move.Data.Routine == t.Routine {
		return t.Factor
	}
	return 1
}

// CategoryBoost raises the power of the owner's moves of one category.
type CategoryBoost struct {
	battle.Base
	Category model.Category
}

func categoryBoost(c model.Category) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &CategoryBoost{Base: battle.NewItem(id, owner), Category: c}
	}
}

func (c *CategoryBoost) BasePowerMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !c.OwnedBy(user) || move.Data.Category != c.Category {
		return 1
	}
	return 1.1
}

// Accuracy scales the accuracy of the owner's moves, or of moves aimed at
// the owner when Offensive is false.
type Accuracy struct {
	battle.Base
	Offensive bool
	Factor    float64
}

func accuracy(offensive bool, factor float64) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &Accuracy{Base: battle.NewItem(id, owner), Offensive: offensive, Factor: factor}
	}
}

func (a *Accuracy) ChanceOfHitMultiplier(_ battle.Context, user, target *battle.Battler, _ *model.Move) float64 {
	holder := target
	if a.Offensive {
		holder = user
	}
	if !a.OwnedBy(holder) {
		return 1
	}
	return a.Factor
}
