package game

import (
	"fmt"
	"math"
)

// ShotInput is everything the resolver needs to launch a ball.
type ShotInput struct {
	Power       float64 // meter values in [0,100]
	Accuracy    float64
	Control     float64
	SpinEnabled bool
	Club        Club
	Stats       Stats
	Terrain     TerrainType // the lie
	Ball        Vec2
	Target      Vec2
}

// Launch is the initial velocity produced by a resolved shot.
type Launch struct {
	Velocity    Vec2    `json:"velocity"` // horizontal
	VZ          float64 `json:"vz"`
	TotalPower  float64 `json:"total_power"`
	AngleOffset float64 `json:"angle_offset"` // degrees, positive when the accuracy meter was early
	Heading     float64 `json:"heading"`      // radians
	Spin        float64 `json:"spin"`         // horizontal speed added by spin
}

func clampMeter(v float64) float64 {
	if v < MeterMin || math.IsNaN(v) {
		return MeterMin
	}
	if v > MeterMax {
		return MeterMax
	}
	return v
}

// ResolveShot converts caught meter values into a launch velocity. It fails with
// ErrUnusableClub when the club cannot be played from the lie.
func ResolveShot(in ShotInput, phys PhysicsConfig) (Launch, error) {
	perf := in.Club.PerformanceOn(in.Terrain.ID)
	if perf <= 0 {
		return Launch{}, fmt.Errorf("%w: %s from %s", ErrUnusableClub, in.Club.ID, in.Terrain.ID)
	}
	phys = phys.withDefaults()

	power := clampMeter(in.Power)
	accuracy := clampMeter(in.Accuracy)

	powerComponent := 1 + float64(in.Stats.Power)/PowerStatDivisor
	total := in.Club.BaseDistance * powerComponent * (power / 100) * perf

	miss := math.Abs(MeterCenter-accuracy) / MeterCenter
	penalty := 1 - float64(in.Stats.Accuracy)/AccuracyStatDivisor
	if penalty < 0 {
		penalty = 0
	}
	offset := miss * MaxAccuracyOffsetDeg * penalty
	if accuracy >= MeterCenter {
		offset = -offset
	}

	heading := in.Target.Minus(in.Ball).Angle() + offset*math.Pi/180

	loft := in.Club.LoftRadians()
	vz := total * math.Sin(loft) * phys.VelocityScale
	horizontal := total * math.Cos(loft) * phys.VelocityScale

	var spin float64
	if in.SpinEnabled && !in.Club.Putter {
		spinRaw := (clampMeter(in.Control) - MeterCenter) / MeterCenter
		effectiveness := 1 + float64(in.Stats.Control)/SpinStatDivisor
		spin = spinRaw * effectiveness * phys.SpinScale
		horizontal += spin
		if horizontal < 0 {
			horizontal = 0
		}
	}

	return Launch{
		Velocity:    FromAngle(heading, horizontal),
		VZ:          vz,
		TotalPower:  total,
		AngleOffset: offset,
		Heading:     heading,
		Spin:        spin,
	}, nil
}
