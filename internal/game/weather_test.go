package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeatherGeneratorIsSeeded(t *testing.T) {
	a := NewWeatherGenerator(42)
	b := NewWeatherGenerator(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestWeatherRanges(t *testing.T) {
	g := NewWeatherGenerator(7)
	counts := map[WeatherCategory]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		w := g.Next()
		counts[w.Category]++
		assert.GreaterOrEqual(t, w.WindDirection, 0.0)
		assert.Less(t, w.WindDirection, 2*math.Pi)

		switch w.Category {
		case WeatherCalm:
			assert.LessOrEqual(t, w.WindSpeed, 3.0)
		case WeatherWindy:
			assert.GreaterOrEqual(t, w.WindSpeed, 8.0)
			assert.LessOrEqual(t, w.WindSpeed, 20.0)
		case WeatherRain:
			assert.GreaterOrEqual(t, w.WindSpeed, 3.0)
		case WeatherSnow:
			assert.GreaterOrEqual(t, w.WindSpeed, 2.0)
		default:
			t.Fatalf("unexpected category %q", w.Category)
		}
	}

	assert.InDelta(t, 0.5, float64(counts[WeatherCalm])/n, 0.03)
	assert.InDelta(t, 0.3, float64(counts[WeatherWindy])/n, 0.03)
	assert.InDelta(t, 0.1, float64(counts[WeatherRain])/n, 0.02)
	assert.InDelta(t, 0.1, float64(counts[WeatherSnow])/n, 0.02)
}

func TestFixedWeather(t *testing.T) {
	w := FixedWeather{WindSpeed: 5, WindDirection: 1, Category: WeatherRain}
	assert.Equal(t, WeatherState{WindSpeed: 5, WindDirection: 1, Category: WeatherRain}, w.Next())
	assert.Zero(t, Calm.Next().WindSpeed)
}
