package main

import (
	"math/rand/v2"

	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

type species struct {
	name    string
	types   []model.Type
	stats   model.BaseStats
	ability string
	item    string
	mega    string
	moves   []*model.MoveData
}

var (
	moveTackle      = &model.MoveData{ID: "tackle", Type: model.TypeNormal, Power: 40, Accuracy: 100, PP: 35, Category: model.CategoryPhysical, Flags: model.FlagContact}
	moveEmber       = &model.MoveData{ID: "ember", Type: model.TypeFire, Power: 40, Accuracy: 100, PP: 25, Category: model.CategorySpecial, EffectChance: 10, Status: model.StatusBurn}
	moveFlamethrow  = &model.MoveData{ID: "flamethrower", Type: model.TypeFire, Power: 90, Accuracy: 100, PP: 15, Category: model.CategorySpecial, EffectChance: 10, Status: model.StatusBurn}
	moveWaterGun    = &model.MoveData{ID: "water_gun", Type: model.TypeWater, Power: 40, Accuracy: 100, PP: 25, Category: model.CategorySpecial}
	moveSurf        = &model.MoveData{ID: "surf", Type: model.TypeWater, Power: 90, Accuracy: 100, PP: 15, Category: model.CategorySpecial, Target: model.TargetAllAdjacent}
	moveVineWhip    = &model.MoveData{ID: "vine_whip", Type: model.TypeGrass, Power: 45, Accuracy: 100, PP: 25, Category: model.CategoryPhysical, Flags: model.FlagContact}
	moveGigaDrain   = &model.MoveData{ID: "giga_drain", Type: model.TypeGrass, Power: 75, Accuracy: 100, PP: 10, Category: model.CategorySpecial}
	moveThunderbolt = &model.MoveData{ID: "thunderbolt", Type: model.TypeElectric, Power: 90, Accuracy: 100, PP: 15, Category: model.CategorySpecial, EffectChance: 10, Status: model.StatusParalysis}
	moveThunderWave = &model.MoveData{ID: "thunder_wave", Type: model.TypeElectric, Accuracy: 90, PP: 20, Category: model.CategoryStatus, Status: model.StatusParalysis}
	moveRockSlide   = &model.MoveData{ID: "rock_slide", Type: model.TypeRock, Power: 75, Accuracy: 90, PP: 10, Category: model.CategoryPhysical, Target: model.TargetAllFoes}
	moveEarthquake  = &model.MoveData{ID: "earthquake", Type: model.TypeGround, Power: 100, Accuracy: 100, PP: 10, Category: model.CategoryPhysical, Target: model.TargetAllAdjacent}
	moveShadowBall  = &model.MoveData{ID: "shadow_ball", Type: model.TypeGhost, Power: 80, Accuracy: 100, PP: 15, Category: model.CategorySpecial}
	moveIceBeam     = &model.MoveData{ID: "ice_beam", Type: model.TypeIce, Power: 90, Accuracy: 100, PP: 10, Category: model.CategorySpecial, EffectChance: 10, Status: model.StatusFreeze}
	moveDragonClaw  = &model.MoveData{ID: "dragon_claw", Type: model.TypeDragon, Power: 80, Accuracy: 100, PP: 15, Category: model.CategoryPhysical, Flags: model.FlagContact}
	moveBrickBreak  = &model.MoveData{ID: "brick_break", Type: model.TypeFighting, Power: 75, Accuracy: 100, PP: 15, Category: model.CategoryPhysical, Flags: model.FlagContact}
	moveToxic       = &model.MoveData{ID: "toxic", Type: model.TypePoison, Accuracy: 90, PP: 10, Category: model.CategoryStatus, Status: model.StatusToxic}
)

// demoSpecies is the fixed pool battlesim draws parties from.
var demoSpecies = []species{
	{name: "emberfox", types: []model.Type{model.TypeFire}, stats: model.BaseStats{HP: 78, Atk: 84, Dfe: 78, Spd: 100, Ats: 109, Dfs: 85}, ability: "blaze", item: "charcoal", moves: []*model.MoveData{moveFlamethrow, moveEmber, moveDragonClaw, moveTackle}},
	{name: "tidecrab", types: []model.Type{model.TypeWater}, stats: model.BaseStats{HP: 79, Atk: 83, Dfe: 100, Spd: 78, Ats: 85, Dfs: 105}, ability: "torrent", item: "leftovers", mega: "mega_launcher", moves: []*model.MoveData{moveSurf, moveWaterGun, moveIceBeam, moveTackle}},
	{name: "mossback", types: []model.Type{model.TypeGrass, model.TypePoison}, stats: model.BaseStats{HP: 80, Atk: 82, Dfe: 83, Spd: 80, Ats: 100, Dfs: 100}, ability: "overgrow", item: "black_sludge", moves: []*model.MoveData{moveGigaDrain, moveVineWhip, moveToxic, moveEarthquake}},
	{name: "voltmouse", types: []model.Type{model.TypeElectric}, stats: model.BaseStats{HP: 60, Atk: 90, Dfe: 55, Spd: 110, Ats: 90, Dfs: 80}, ability: "static", item: "focus_sash", moves: []*model.MoveData{moveThunderbolt, moveThunderWave, moveBrickBreak, moveTackle}},
	{name: "bouldergut", types: []model.Type{model.TypeRock, model.TypeGround}, stats: model.BaseStats{HP: 80, Atk: 110, Dfe: 130, Spd: 45, Ats: 55, Dfs: 65}, ability: "sturdy", item: "hard_stone", moves: []*model.MoveData{moveRockSlide, moveEarthquake, moveBrickBreak, moveTackle}},
	{name: "duskwisp", types: []model.Type{model.TypeGhost}, stats: model.BaseStats{HP: 60, Atk: 65, Dfe: 60, Spd: 110, Ats: 130, Dfs: 75}, ability: "levitate", item: "spell_tag", moves: []*model.MoveData{moveShadowBall, moveThunderbolt, moveToxic, moveGigaDrain}},
	{name: "frostwyrm", types: []model.Type{model.TypeDragon, model.TypeIce}, stats: model.BaseStats{HP: 91, Atk: 120, Dfe: 90, Spd: 80, Ats: 100, Dfs: 90}, ability: "intimidate", item: "life_orb", moves: []*model.MoveData{moveDragonClaw, moveIceBeam, moveEarthquake, moveFlamethrow}},
	{name: "galecrest", types: []model.Type{model.TypeNormal, model.TypeFlying}, stats: model.BaseStats{HP: 83, Atk: 80, Dfe: 75, Spd: 101, Ats: 70, Dfs: 70}, ability: "speed_boost", item: "sitrus_berry", moves: []*model.MoveData{moveTackle, moveBrickBreak, moveShadowBall, moveWaterGun}},
}

// newBattler builds a level 50 battler of sp with its full move set.
func newBattler(sp species) *battle.Battler {
	const level = 50
	hp := (2*sp.stats.HP*level)/100 + level + 10
	moves := make([]*model.Move, len(sp.moves))
	for i, d := range sp.moves {
		moves[i] = model.NewMove(d)
	}
	return &battle.Battler{
		Name:        sp.name,
		Level:       level,
		HP:          hp,
		MaxHP:       hp,
		Stats:       sp.stats,
		Types:       append([]model.Type(nil), sp.types...),
		Moves:       moves,
		AbilityID:   sp.ability,
		ItemID:      sp.item,
		MegaAbility: sp.mega,
	}
}

// demoParties draws two AI parties of size battlers from the pool, the
// same ones for the same seed.
func demoParties(seed uint64, size int) [][]*battle.Battler {
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	parties := make([][]*battle.Battler, 2)
	for bank := range parties {
		for range size {
			parties[bank] = append(parties[bank], newBattler(demoSpecies[rng.IntN(len(demoSpecies))]))
		}
	}
	return parties
}
