package autoplay

import (
	"errors"
	"math"

	"github.com/playmatatu/fairway/internal/game"
)

// ErrNoPlayableClub means nothing in the bag can be hit from the current lie.
var ErrNoPlayableClub = errors.New("no playable club from this lie")

// Plan is the club and power the caddie recommends, with the rest position it
// expects in the current weather.
type Plan struct {
	Club     string    `json:"club"`
	Power    float64   `json:"power"`
	Rest     game.Vec2 `json:"rest"`
	Terrain  string    `json:"terrain"`
	Distance float64   `json:"distance"`
}

// Caddie picks shots by simulating every usable club at a range of power
// settings and keeping the one that finishes nearest the cup.
type Caddie struct {
	Physics         game.PhysicsConfig
	AimAlongFairway bool
	// Powers are the candidate power meter readings. They must be reachable
	// by the power meter, i.e. multiples of game.PowerMeterSpeed.
	Powers []float64
}

func DefaultPowers() []float64 {
	var powers []float64
	for p := game.MeterMax; p > 0; p -= 2 * game.PowerMeterSpeed {
		powers = append(powers, p)
	}
	return powers
}

// Plan recommends the next shot for the round's current position.
func (c Caddie) Plan(r *game.RoundController) (Plan, error) {
	ctx := r.Context()
	hole := r.Hole()
	lie := ctx.Round.Terrain
	ball := ctx.Ball.Position
	stats := r.Snapshot().Profile.Stats
	terrain := hole.TerrainMap()

	target := hole.Cup
	if c.AimAlongFairway {
		target = hole.AimPoint(ball)
	}

	if c.Physics == (game.PhysicsConfig{}) {
		c.Physics = game.DefaultPhysics()
	}
	powers := c.Powers
	if len(powers) == 0 {
		powers = DefaultPowers()
	}

	best := Plan{Distance: math.Inf(1)}
	bestScore := math.Inf(1)
	for _, club := range r.UsableClubs() {
		for _, power := range powers {
			launch, err := game.ResolveShot(game.ShotInput{
				Power:    power,
				Accuracy: 50,
				Control:  50,
				Club:     club,
				Stats:    stats,
				Terrain:  lie,
				Ball:     ball,
				Target:   target,
			}, c.Physics)
			if err != nil {
				continue
			}
			f := game.NewFlight(game.NewBall(ball), launch, ctx.Weather, terrain, c.Physics)
			rest := f.Simulate()

			dist := rest.Position.DistanceTo(hole.Cup)
			score := c.score(dist, f.Terrain.ID)
			if score < bestScore {
				bestScore = score
				best = Plan{
					Club:     club.ID,
					Power:    power,
					Rest:     rest.Position,
					Terrain:  f.Terrain.ID,
					Distance: dist,
				}
			}
		}
	}

	if math.IsInf(bestScore, 1) {
		return Plan{}, ErrNoPlayableClub
	}
	return best, nil
}

// score ranks a simulated rest position; lower is better.
func (c Caddie) score(dist float64, terrain string) float64 {
	switch {
	case terrain == game.TerrainWater:
		return 1e6 + dist
	case terrain == game.TerrainGreen && dist <= c.Physics.WinRadius:
		return -1
	}
	return dist
}
