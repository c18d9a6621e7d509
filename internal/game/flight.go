package game

import "math"

// BallState is the ball on the course. Z is height above ground.
type BallState struct {
	Position Vec2    `json:"position"`
	Z        float64 `json:"z"`
	Velocity Vec2    `json:"velocity"`
	VZ       float64 `json:"vz"`
	Moving   bool    `json:"moving"`
	Radius   float64 `json:"radius"`
}

// NewBall places a stationary ball at p.
func NewBall(p Vec2) BallState {
	return BallState{Position: p, Radius: BallRadius}
}

// Stop zeroes all motion and marks the ball at rest on the ground.
func (b *BallState) Stop() {
	b.Z = 0
	b.Velocity = Vec2{}
	b.VZ = 0
	b.Moving = false
}

// HorizontalSpeed returns |(vx, vy)|.
func (b BallState) HorizontalSpeed() float64 {
	return b.Velocity.Magnitude()
}

// Classifier looks up terrain at a course point. TerrainMap implements it.
type Classifier interface {
	Classify(p Vec2) TerrainType
}

// Flight integrates a single shot with a fixed timestep. It is driven one Step
// at a time so a caller can pace it against a clock, or run to completion with
// Simulate; both give the same result for the same inputs.
type Flight struct {
	Ball    BallState
	Terrain TerrainType // last terrain the ball touched

	phys    PhysicsConfig
	wind    Vec2
	terrain Classifier
	steps   int
	bounces int
}

// NewFlight launches ball with the given velocity.
func NewFlight(ball BallState, launch Launch, weather WeatherState, terrain Classifier, phys PhysicsConfig) *Flight {
	phys = phys.withDefaults()
	ball.Velocity = launch.Velocity
	ball.VZ = launch.VZ
	if ball.Z < 0 {
		ball.Z = 0
	}
	ball.Moving = true

	f := &Flight{
		Ball:    ball,
		phys:    phys,
		wind:    FromAngle(weather.WindDirection, weather.WindSpeed*phys.WindAccel),
		terrain: terrain,
	}
	f.Terrain = terrain.Classify(ball.Position)
	if f.atRest() {
		f.Ball.Stop()
	}
	return f
}

// Done reports whether the ball has come to rest.
func (f *Flight) Done() bool {
	return !f.Ball.Moving
}

func (f *Flight) Steps() int   { return f.steps }
func (f *Flight) Bounces() int { return f.bounces }

func (f *Flight) atRest() bool {
	return f.Ball.Z == 0 && f.Ball.VZ == 0 && f.Ball.HorizontalSpeed() < f.phys.RestSpeed
}

// Step advances the flight by one timestep. It returns false once the ball is at rest.
func (f *Flight) Step() bool {
	if f.Done() {
		return false
	}
	dt := f.phys.TimeStep
	b := &f.Ball

	airborne := b.Z > 0 || b.VZ > 0
	if airborne {
		b.VZ += f.phys.Gravity * dt
		if b.Z > 0 {
			b.Velocity = b.Velocity.Plus(f.wind.Times(dt))
		}
	}

	b.Position = b.Position.Plus(b.Velocity.Times(dt * f.phys.DistanceScale))
	b.Z += b.VZ * dt * f.phys.DistanceScale

	if b.Z <= 0 {
		landing := airborne && b.VZ < 0
		b.Z = 0
		f.Terrain = f.terrain.Classify(b.Position)
		if landing {
			f.bounces++
			b.VZ = -b.VZ * f.Terrain.Bounce
			if math.Abs(b.VZ) < f.phys.BounceCutoff {
				b.VZ = 0
			}
		} else {
			b.VZ = 0
		}
		b.Velocity = b.Velocity.Times(f.Terrain.Friction)
	}

	f.steps++
	if f.atRest() || f.steps >= f.phys.MaxFlightSteps {
		b.Stop()
		return false
	}
	return true
}

// Simulate runs Step until the ball rests and returns the final state.
func (f *Flight) Simulate() BallState {
	for f.Step() {
	}
	return f.Ball
}
