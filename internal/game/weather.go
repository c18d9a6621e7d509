package game

import (
	"math"
	"math/rand"
	"sync"
)

type WeatherCategory string

const (
	WeatherCalm  WeatherCategory = "calm"
	WeatherWindy WeatherCategory = "windy"
	WeatherRain  WeatherCategory = "rain"
	WeatherSnow  WeatherCategory = "snow"
)

// WeatherState is fixed for the duration of one hole.
type WeatherState struct {
	WindSpeed     float64         `json:"wind_speed"`
	WindDirection float64         `json:"wind_direction"` // radians in [0, 2π)
	Category      WeatherCategory `json:"category"`
}

// WeatherSource produces the weather for the next hole.
type WeatherSource interface {
	Next() WeatherState
}

type weatherBand struct {
	category WeatherCategory
	weight   float64
	minSpeed float64
	maxSpeed float64
}

var weatherBands = []weatherBand{
	{WeatherCalm, 0.5, 0, 3},
	{WeatherWindy, 0.3, 8, 20},
	{WeatherRain, 0.1, 3, 12},
	{WeatherSnow, 0.1, 2, 10},
}

// WeatherGenerator draws weighted weather from a seeded source.
type WeatherGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewWeatherGenerator(seed int64) *WeatherGenerator {
	return &WeatherGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *WeatherGenerator) Next() WeatherState {
	g.mu.Lock()
	defer g.mu.Unlock()

	roll := g.rng.Float64()
	band := weatherBands[len(weatherBands)-1]
	for _, b := range weatherBands {
		if roll < b.weight {
			band = b
			break
		}
		roll -= b.weight
	}
	speed := band.minSpeed + g.rng.Float64()*(band.maxSpeed-band.minSpeed)
	dir := g.rng.Float64() * 2 * math.Pi
	return WeatherState{WindSpeed: speed, WindDirection: dir, Category: band.category}
}

// FixedWeather always returns the same state.
type FixedWeather WeatherState

func (w FixedWeather) Next() WeatherState {
	return WeatherState(w)
}

// Calm is a windless day.
var Calm = FixedWeather{Category: WeatherCalm}
