package item

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

// GemBoostID identifies the volatile power boost left by a consumed gem.
const GemBoostID = "gem_boost"

func registerConsumables(r *battle.Registry) {
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &FocusSash{Base: battle.NewItem(id, owner)}
	}, "focus_sash")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &FocusBand{Base: battle.NewItem(id, owner)}
	}, "focus_band")

	gems := map[model.Type]string{
		model.TypeNormal: "normal_gem", model.TypeFire: "fire_gem", model.TypeWater: "water_gem",
		model.TypeGrass: "grass_gem", model.TypeElectric: "electric_gem", model.TypeIce: "ice_gem",
		model.TypeFighting: "fighting_gem", model.TypePoison: "poison_gem", model.TypeGround: "ground_gem",
		model.TypeFlying: "flying_gem", model.TypePsychic: "psychic_gem", model.TypeBug: "bug_gem",
		model.TypeRock: "rock_gem", model.TypeGhost: "ghost_gem", model.TypeDragon: "dragon_gem",
		model.TypeDark: "dark_gem", model.TypeSteel: "steel_gem", model.TypeFairy: "fairy_gem",
	}
	for t, id := range gems {
		register(r, gem(t), id)
	}

	register(r, healingBerry(10, 0), "oran_berry")
	register(r, healingBerry(0, 4), "sitrus_berry")
	register(r, statusBerry(false, model.StatusParalysis), "cheri_berry")
	register(r, statusBerry(false, model.StatusSleep), "chesto_berry")
	register(r, statusBerry(false, model.StatusPoison, model.StatusToxic), "pecha_berry")
	register(r, statusBerry(false, model.StatusBurn), "rawst_berry")
	register(r, statusBerry(false, model.StatusFreeze), "aspear_berry")
	register(r, statusBerry(true), "persim_berry")
	register(r, statusBerry(true, model.StatusParalysis, model.StatusSleep, model.StatusPoison,
		model.StatusToxic, model.StatusBurn, model.StatusFreeze), "lum_berry")

	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &AirBalloon{Base: battle.NewItem(id, owner)}
	}, "air_balloon")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &PowerHerb{Base: battle.NewItem(id, owner)}
	}, "power_herb")

	register(r, terrainSeed(model.TerrainElectric, model.StatDfe), "electric_seed")
	register(r, terrainSeed(model.TerrainGrassy, model.StatDfe), "grassy_seed")
	register(r, terrainSeed(model.TerrainMisty, model.StatDfs), "misty_seed")
	register(r, terrainSeed(model.TerrainPsychic, model.StatDfs), "psychic_seed")
}

// FocusSash leaves its owner at 1 HP when a hit would knock it out from
// full HP, then is used up.
type FocusSash struct {
	battle.Base
	triggered bool
}

func (f *FocusSash) DamagePrevention(h *battle.DamageHandler, hp int, target, launcher *battle.Battler, move *model.Move) *battle.Prevention {
	if !f.OwnedBy(target) || launcher == nil || move == nil || target.HP != target.MaxHP || hp < target.HP {
		return nil
	}
	return battle.Replace(target.HP-1, func() {
		f.triggered = true
		h.Message(fmt.Sprintf("%s hung on using its Focus Sash!", target.Name))
	})
}

func (f *FocusSash) OnPostDamage(h *battle.DamageHandler, _ int, target, _ *battle.Battler, _ *model.Move) {
	if f.triggered && f.OwnedBy(target) {
		f.triggered = false
		h.Logic().ItemChangeHandler().ConsumeItem(target)
	}
}

// FocusBand lets its owner survive a lethal hit 10% of the time.
type FocusBand struct {
	battle.Base
}

func (f *FocusBand) DamagePrevention(h *battle.DamageHandler, hp int, target, launcher *battle.Battler, move *model.Move) *battle.Prevention {
	if !f.OwnedBy(target) || launcher == nil || move == nil || hp < target.HP || !h.Context().Chance(10) {
		return nil
	}
	return battle.Replace(target.HP-1, func() {
		h.Message(fmt.Sprintf("%s hung on using its Focus Band!", target.Name))
	})
}

// Gem is used up right before a move of its type is rolled and powers
// that move up. The gem is lost even when the move then misses.
type Gem struct {
	battle.Base
	Type model.Type
}

func gem(t model.Type) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &Gem{Base: battle.NewItem(id, owner), Type: t}
	}
}

func (g *Gem) OnPreAccuracyCheck(l *battle.Logic, user *battle.Battler, targets []*battle.Battler, move *model.Move) {
	if !g.OwnedBy(user) || move.StatusMove() || len(targets) == 0 {
		return
	}
	if l.MoveType(user, targets[0], move) != g.Type {
		return
	}
	name := g.ID()
	if !consume(l, user, "The %s strengthened %s's power!", itemName(name), move.ID()) {
		return
	}
	user.Effects().Replace(&gemBoost{Base: battle.NewBase(battle.FamilyVolatile, GemBoostID, user), move: move})
}

// gemBoost powers up one move execution, then expires.
type gemBoost struct {
	battle.Base
	move *model.Move
}

func (g *gemBoost) BasePowerMultiplier(_ battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if !g.OwnedBy(user) || move != g.move {
		return 1
	}
	return 1.3
}

func (g *gemBoost) OnPostActionEvent(*battle.Logic, []*battle.Battler) {
	g.Kill()
}

// HealingBerry restores Flat HP, or 1/Div of the max HP, once its owner
// drops to half HP.
type HealingBerry struct {
	battle.Base
	Flat int
	Div  int
}

func healingBerry(flat, div int) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &HealingBerry{Base: battle.NewItem(id, owner), Flat: flat, Div: div}
	}
}

func (b *HealingBerry) OnPostDamage(h *battle.DamageHandler, _ int, target, _ *battle.Battler, _ *model.Move) {
	if !b.OwnedBy(target) || target.Dead() || target.HPRate() > 0.5 {
		return
	}
	hp := b.Flat
	if b.Div > 0 {
		hp = max(target.MaxHP/b.Div, 1)
	}
	if consume(h.Logic(), target, "%s ate its %s!", target.Name, itemName(b.ID())) {
		h.Heal(target, hp, nil)
	}
}

// StatusBerry cures the listed statuses, and confusion when Confusion is
// set, as soon as its owner gets them.
type StatusBerry struct {
	battle.Base
	Confusion bool
	Statuses  []model.Status
}

func statusBerry(confusion bool, statuses ...model.Status) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &StatusBerry{Base: battle.NewItem(id, owner), Confusion: confusion, Statuses: statuses}
	}
}

func (b *StatusBerry) cures(status model.Status) bool {
	if status == model.StatusConfusion {
		return b.Confusion
	}
	for _, s := range b.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (b *StatusBerry) OnPostStatusChange(h *battle.StatusChangeHandler, status model.Status, target, _ *battle.Battler, _ *model.Move) {
	if !b.OwnedBy(target) || !b.cures(status) {
		return
	}
	if !consume(h.Logic(), target, "%s ate its %s!", target.Name, itemName(b.ID())) {
		return
	}
	if status == model.StatusConfusion {
		target.Confusion = 0
		h.Message(fmt.Sprintf("%s snapped out of its confusion!", target.Name))
		return
	}
	h.StatusChange(model.StatusCure, target, nil, nil)
}

// AirBalloon makes its owner immune to ground moves until a hit pops it.
type AirBalloon struct {
	battle.Base
}

func (a *AirBalloon) OnSwitchEvent(h *battle.SwitchHandler, _, with *battle.Battler) {
	if a.OwnedBy(with) {
		h.Message(fmt.Sprintf("%s floats in the air with its Air Balloon!", with.Name))
	}
}

func (a *AirBalloon) MovePreventionTarget(l *battle.Logic, user, target *battle.Battler, move *model.Move) *battle.Prevention {
	if !a.OwnedBy(target) || user == target || move.StatusMove() || l.MoveType(user, target, move) != model.TypeGround {
		return nil
	}
	return battle.Prevent(func() {
		l.Presenter().Message(fmt.Sprintf("It doesn't affect %s...", target.Name))
	})
}

func (a *AirBalloon) OnPostDamage(h *battle.DamageHandler, _ int, target, launcher *battle.Battler, move *model.Move) {
	if !a.OwnedBy(target) || launcher == nil || move == nil {
		return
	}
	consume(h.Logic(), target, "%s's Air Balloon popped!", target.Name)
}

// PowerHerb lets its owner skip the charge turn of a two-turn move once.
type PowerHerb struct {
	battle.Base
}

func (p *PowerHerb) TwoTurnShortcut(l *battle.Logic, user *battle.Battler, move *model.Move) bool {
	if !p.OwnedBy(user) || !move.Has(model.FlagTwoTurn) {
		return false
	}
	return consume(l, user, "%s became fully charged due to its Power Herb!", user.Name)
}

// TerrainSeed raises Stat once when its terrain is active.
type TerrainSeed struct {
	battle.Base
	Terrain model.Terrain
	Stat    model.Stat
}

func terrainSeed(t model.Terrain, stat model.Stat) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &TerrainSeed{Base: battle.NewItem(id, owner), Terrain: t, Stat: stat}
	}
}

func (s *TerrainSeed) OnPostTerrainChange(h *battle.TerrainChangeHandler, terrain, _ model.Terrain) {
	s.trigger(h.Logic(), terrain)
}

func (s *TerrainSeed) OnSwitchEvent(h *battle.SwitchHandler, _, with *battle.Battler) {
	if s.OwnedBy(with) {
		s.trigger(h.Logic(), h.Logic().Terrain())
	}
}

func (s *TerrainSeed) trigger(l *battle.Logic, terrain model.Terrain) {
	owner := s.Owner()
	if terrain != s.Terrain || owner.Dead() || !owner.Active() {
		return
	}
	if consume(l, owner, "%s used its %s!", owner.Name, itemName(s.ID())) {
		l.StatChangeHandler().StatChange(s.Stat, 1, owner, owner, nil)
	}
}
