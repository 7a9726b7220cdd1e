package model

// Weather is the field-wide weather condition.
type Weather int

const (
	WeatherNone Weather = iota
	WeatherRain
	WeatherSunny
	WeatherSandstorm
	WeatherHail
	WeatherFog
	WeatherHardSun
	WeatherHardRain
	WeatherStrongWinds
)

func (w Weather) String() string {
	switch w {
	case WeatherNone:
		return "none"
	case WeatherRain:
		return "rain"
	case WeatherSunny:
		return "sunny"
	case WeatherSandstorm:
		return "sandstorm"
	case WeatherHail:
		return "hail"
	case WeatherFog:
		return "fog"
	case WeatherHardSun:
		return "hardsun"
	case WeatherHardRain:
		return "hardrain"
	case WeatherStrongWinds:
		return "strong_winds"
	default:
		return "unknown"
	}
}

// Primal reports whether w can only be replaced by another primal weather.
func (w Weather) Primal() bool {
	return w == WeatherHardSun || w == WeatherHardRain || w == WeatherStrongWinds
}

// Sunny reports whether w counts as sun, primal included.
func (w Weather) Sunny() bool {
	return w == WeatherSunny || w == WeatherHardSun
}

// Rainy reports whether w counts as rain, primal included.
func (w Weather) Rainy() bool {
	return w == WeatherRain || w == WeatherHardRain
}

// Terrain is the field-wide terrain condition.
type Terrain int

const (
	TerrainNone Terrain = iota
	TerrainElectric
	TerrainGrassy
	TerrainMisty
	TerrainPsychic
)

func (t Terrain) String() string {
	switch t {
	case TerrainNone:
		return "none"
	case TerrainElectric:
		return "electric_terrain"
	case TerrainGrassy:
		return "grassy_terrain"
	case TerrainMisty:
		return "misty_terrain"
	case TerrainPsychic:
		return "psychic_terrain"
	default:
		return "unknown"
	}
}
