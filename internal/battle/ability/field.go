package ability

import (
	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

func registerField(r *battle.Registry) {
	register(r, weatherSetter(model.WeatherRain, "damp_rock", "drizzle"), "drizzle")
	register(r, weatherSetter(model.WeatherSunny, "heat_rock", "drought"), "drought")
	register(r, weatherSetter(model.WeatherSandstorm, "smooth_rock", "sand_stream"), "sand_stream")
	register(r, weatherSetter(model.WeatherHail, "icy_rock", "snow_warning"), "snow_warning")

	register(r, primalWeather(model.WeatherHardRain), "primordial_sea")
	register(r, primalWeather(model.WeatherHardSun), "desolate_land")
	register(r, primalWeather(model.WeatherStrongWinds), "delta_stream")

	register(r, terrainSetter(model.TerrainElectric), "electric_surge")
	register(r, terrainSetter(model.TerrainGrassy), "grassy_surge")
	register(r, terrainSetter(model.TerrainMisty), "misty_surge")
	register(r, terrainSetter(model.TerrainPsychic), "psychic_surge")

	register(r, weatherSpeed(model.Weather.Rainy), "swift_swim")
	register(r, weatherSpeed(model.Weather.Sunny), "chlorophyll")
	register(r, weatherSpeed(func(w model.Weather) bool { return w == model.WeatherSandstorm }), "sand_rush")
	register(r, weatherSpeed(func(w model.Weather) bool { return w == model.WeatherHail }), "slush_rush")

	register(r, weatherHeal(model.Weather.Rainy, 16, nil, 0, 1), "rain_dish")
	register(r, weatherHeal(func(w model.Weather) bool { return w == model.WeatherHail }, 16, nil, 0, 1), "ice_body")
	register(r, weatherHeal(model.Weather.Rainy, 8, model.Weather.Sunny, 8, 1), "dry_skin")
	register(r, weatherHeal(nil, 0, model.Weather.Sunny, 8, 1.5), "solar_power")
}

// WeatherSetter sets a weather when its owner enters. Holding BoostItem
// extends it from 5 to 8 turns.
type WeatherSetter struct {
	battle.Base
	Weather   model.Weather
	BoostItem string
	Animation string
}

func weatherSetter(weather model.Weather, item, animation string) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &WeatherSetter{Base: battle.NewAbility(id, owner), Weather: weather, BoostItem: item, Animation: animation}
	}
}

func (w *WeatherSetter) OnSwitchEvent(h *battle.SwitchHandler, _, with *battle.Battler) {
	if !w.OwnedBy(with) {
		return
	}
	weather := h.Logic().WeatherChangeHandler()
	if !weather.WeatherAppliable(w.Weather) {
		return
	}
	turns := 5
	if with.HoldsItem(w.BoostItem) {
		turns = 8
	}
	h.ShowAbility(with)
	h.ShowAnimation(w.Animation, with)
	weather.WeatherChange(w.Weather, turns)
}

// PrimalWeather sets an unlimited weather that only another primal weather
// replaces. The weather ends when its last holder leaves or faints.
type PrimalWeather struct {
	battle.Base
	Weather model.Weather
}

func primalWeather(weather model.Weather) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &PrimalWeather{Base: battle.NewAbility(id, owner), Weather: weather}
	}
}

func (p *PrimalWeather) OnSwitchEvent(h *battle.SwitchHandler, who, with *battle.Battler) {
	switch {
	case p.OwnedBy(with):
		h.ShowAbility(with)
		h.Logic().WeatherChangeHandler().WeatherChange(p.Weather, 0)
	case p.OwnedBy(who):
		p.fade(h.Logic(), who)
	}
}

func (p *PrimalWeather) OnPostDamageDeath(h *battle.DamageHandler, _ int, target, _ *battle.Battler, _ *model.Move) {
	if p.OwnedBy(target) {
		p.fade(h.Logic(), target)
	}
}

// fade clears the weather unless another active holder keeps it.
func (p *PrimalWeather) fade(l *battle.Logic, leaving *battle.Battler) {
	if l.Weather() != p.Weather {
		return
	}
	for _, b := range l.AllAliveBattlers() {
		if b != leaving && b.Active() && b.HasAbility(p.ID()) && !b.AbilitySuppressed() {
			return
		}
	}
	l.WeatherChangeHandler().WeatherChange(model.WeatherNone, 0)
}

func (p *PrimalWeather) WeatherPrevention(h *battle.WeatherChangeHandler, weather, last model.Weather) *battle.Prevention {
	if last != p.Weather || weather.Primal() || weather == model.WeatherNone {
		return nil
	}
	owner := p.Owner()
	return battle.Prevent(func() {
		announce(h, owner, "The %s weather is not affected!", last)
	})
}

// TerrainSetter sets a terrain when its owner enters.
type TerrainSetter struct {
	battle.Base
	Terrain model.Terrain
}

func terrainSetter(terrain model.Terrain) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &TerrainSetter{Base: battle.NewAbility(id, owner), Terrain: terrain}
	}
}

func (t *TerrainSetter) OnSwitchEvent(h *battle.SwitchHandler, _, with *battle.Battler) {
	if !t.OwnedBy(with) {
		return
	}
	terrain := h.Logic().TerrainChangeHandler()
	if !terrain.TerrainAppliable(t.Terrain) {
		return
	}
	turns := 5
	if with.HoldsItem("terrain_extender") {
		turns = 8
	}
	h.ShowAbility(with)
	terrain.TerrainChange(t.Terrain, turns)
}

// WeatherSpeed doubles its owner's speed under a weather.
type WeatherSpeed struct {
	battle.Base
	Active func(model.Weather) bool
}

func weatherSpeed(active func(model.Weather) bool) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &WeatherSpeed{Base: battle.NewAbility(id, owner), Active: active}
	}
}

func (w *WeatherSpeed) StatModifier(ctx battle.Context, b *battle.Battler, stat model.Stat) float64 {
	if stat != model.StatSpd || !w.OwnedBy(b) || !w.Active(ctx.Weather()) {
		return 1
	}
	return 2
}

// WeatherHeal heals its owner by 1/HealDiv under one weather and hurts it by
// 1/HurtDiv under another at the end of each turn. Boost scales the owner's
// special attacks while the hurting weather lasts.
type WeatherHeal struct {
	battle.Base
	Heal    func(model.Weather) bool
	HealDiv int
	Hurt    func(model.Weather) bool
	HurtDiv int
	Boost   float64
}

func weatherHeal(heal func(model.Weather) bool, healDiv int, hurt func(model.Weather) bool, hurtDiv int, boost float64) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &WeatherHeal{Base: battle.NewAbility(id, owner), Heal: heal, HealDiv: healDiv, Hurt: hurt, HurtDiv: hurtDiv, Boost: boost}
	}
}

func (w *WeatherHeal) OnEndTurnEvent(l *battle.Logic, _ []*battle.Battler) {
	owner := w.Owner()
	if owner.Dead() {
		return
	}
	weather := l.Weather()
	switch {
	case w.HealDiv > 0 && w.Heal != nil && w.Heal(weather) && owner.HP < owner.MaxHP:
		l.Presenter().ShowAbility(owner)
		l.DamageHandler().Heal(owner, max(owner.MaxHP/w.HealDiv, 1), nil)
	case w.HurtDiv > 0 && w.Hurt != nil && w.Hurt(weather):
		l.Presenter().ShowAbility(owner)
		l.DamageHandler().Damage(max(owner.MaxHP/w.HurtDiv, 1), owner, nil, nil)
	}
}

func (w *WeatherHeal) SpAtkMultiplier(ctx battle.Context, user, _ *battle.Battler, move *model.Move) float64 {
	if w.Boost == 0 || w.Hurt == nil || !w.OwnedBy(user) || !move.Special() || !w.Hurt(ctx.Weather()) {
		return 1
	}
	return w.Boost
}
