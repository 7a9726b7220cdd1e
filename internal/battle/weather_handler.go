package battle

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/model"
)

// WeatherChangeHandler owns the field weather.
type WeatherChangeHandler struct {
	handler
}

// WeatherAppliable reports whether weather may replace the current one.
func (h *WeatherChangeHandler) WeatherAppliable(weather model.Weather) bool {
	last := h.logic.weather
	if weather == last {
		return false
	}
	return FirstPrevention(h.logic.BoardEffects(0), func(e WeatherPrevention) *Prevention {
		return e.WeatherPrevention(h, weather, last)
	}) == nil
}

// WeatherChange sets weather for turns turns, 0 meaning until replaced.
func (h *WeatherChangeHandler) WeatherChange(weather model.Weather, turns int) bool {
	if !h.WeatherAppliable(weather) {
		return false
	}
	l := h.logic
	last := l.weather
	l.weather = weather
	l.weatherTurns = turns
	if weather != model.WeatherNone {
		h.ShowAnimation(weather.String(), nil)
		h.Message(weatherStartMessage(weather))
	} else {
		h.Message(weatherEndMessage(last))
	}
	Notify(l.BoardEffects(0), func(e PostWeatherChange) {
		e.OnPostWeatherChange(h, weather, last)
	})
	return true
}

// WeatherTurns returns the turns left, 0 for unlimited.
func (h *WeatherChangeHandler) WeatherTurns() int { return h.logic.weatherTurns }

func (h *WeatherChangeHandler) endTurn() {
	l := h.logic
	if l.weather == model.WeatherNone {
		return
	}
	if l.weatherTurns > 0 {
		l.weatherTurns--
		if l.weatherTurns == 0 {
			last := l.weather
			l.weather = model.WeatherNone
			h.Message(weatherEndMessage(last))
			Notify(l.BoardEffects(0), func(e PostWeatherChange) {
				e.OnPostWeatherChange(h, model.WeatherNone, last)
			})
			return
		}
	}
	for _, b := range l.AllAliveBattlers() {
		switch {
		case l.weather == model.WeatherSandstorm && !b.HasType(model.TypeRock) && !b.HasType(model.TypeGround) && !b.HasType(model.TypeSteel):
			h.Message(fmt.Sprintf("%s is buffeted by the sandstorm!", b.Name))
			l.damage.Damage(max(b.MaxHP/16, 1), b, nil, nil)
		case l.weather == model.WeatherHail && !b.HasType(model.TypeIce):
			h.Message(fmt.Sprintf("%s is pelted by hail!", b.Name))
			l.damage.Damage(max(b.MaxHP/16, 1), b, nil, nil)
		}
	}
}

func weatherStartMessage(w model.Weather) string {
	switch w {
	case model.WeatherRain:
		return "It started to rain!"
	case model.WeatherSunny:
		return "The sunlight turned harsh!"
	case model.WeatherSandstorm:
		return "A sandstorm kicked up!"
	case model.WeatherHail:
		return "It started to hail!"
	case model.WeatherFog:
		return "The fog is deep..."
	case model.WeatherHardSun:
		return "The sunlight turned extremely harsh!"
	case model.WeatherHardRain:
		return "A heavy rain began to fall!"
	case model.WeatherStrongWinds:
		return "Mysterious strong winds are protecting Flying-type Pokémon!"
	default:
		return "The weather changed."
	}
}

func weatherEndMessage(w model.Weather) string {
	switch w {
	case model.WeatherRain, model.WeatherHardRain:
		return "The rain stopped."
	case model.WeatherSunny, model.WeatherHardSun:
		return "The sunlight faded."
	case model.WeatherSandstorm:
		return "The sandstorm subsided."
	case model.WeatherHail:
		return "The hail stopped."
	default:
		return "The weather cleared up."
	}
}

// TerrainChangeHandler owns the field terrain.
type TerrainChangeHandler struct {
	handler
}

// TerrainAppliable reports whether terrain may replace the current one.
func (h *TerrainChangeHandler) TerrainAppliable(terrain model.Terrain) bool {
	last := h.logic.terrain
	if terrain == last {
		return false
	}
	return FirstPrevention(h.logic.BoardEffects(0), func(e TerrainPrevention) *Prevention {
		return e.TerrainPrevention(h, terrain, last)
	}) == nil
}

// TerrainChange sets terrain for turns turns, 0 meaning until replaced.
func (h *TerrainChangeHandler) TerrainChange(terrain model.Terrain, turns int) bool {
	if !h.TerrainAppliable(terrain) {
		return false
	}
	l := h.logic
	last := l.terrain
	l.terrain = terrain
	l.terrainTurns = turns
	if terrain != model.TerrainNone {
		h.ShowAnimation(terrain.String(), nil)
		h.Message(fmt.Sprintf("The battlefield is covered by %s!", terrain))
	} else {
		h.Message(fmt.Sprintf("The %s disappeared.", last))
	}
	Notify(l.BoardEffects(0), func(e PostTerrainChange) {
		e.OnPostTerrainChange(h, terrain, last)
	})
	return true
}

func (h *TerrainChangeHandler) endTurn() {
	l := h.logic
	if l.terrain == model.TerrainNone {
		return
	}
	if l.terrain == model.TerrainGrassy {
		for _, b := range l.AllAliveBattlers() {
			if !b.HasType(model.TypeFlying) {
				l.damage.Heal(b, max(b.MaxHP/16, 1), nil)
			}
		}
	}
	if l.terrainTurns > 0 {
		l.terrainTurns--
		if l.terrainTurns == 0 {
			h.TerrainChange(model.TerrainNone, 0)
		}
	}
}
