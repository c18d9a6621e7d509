package game

// Terrain identifiers the round rules depend on. Catalogs may add others.
const (
	TerrainTeeBox  = "TEE_BOX"
	TerrainFairway = "FAIRWAY"
	TerrainGreen   = "GREEN"
	TerrainRough   = "ROUGH"
	TerrainSand    = "SAND"
	TerrainWater   = "WATER"
)

// Swing meter constants.
const (
	MeterMin    = 0.0
	MeterMax    = 100.0
	MeterCenter = 50.0

	PowerMeterSpeed = 2.0 // units per tick
	BaseMeterSpeed  = 5.0
	MinMeterSpeed   = 0.5
)

// Shot resolution constants.
const (
	MaxAccuracyOffsetDeg = 15.0
	AccuracyStatDivisor  = 150.0
	PowerStatDivisor     = 100.0
	SpinStatDivisor      = 20.0

	BallRadius          = 5.0
	WaterPenaltyStrokes = 1
)

// PhysicsConfig holds the flight integrator constants. All values are in course
// units (roughly yards) and seconds.
type PhysicsConfig struct {
	Gravity        float64 `json:"gravity"`         // vertical acceleration, negative pulls down
	TimeStep       float64 `json:"time_step"`       // fixed integration step
	VelocityScale  float64 `json:"velocity_scale"`  // shot power to launch speed
	DistanceScale  float64 `json:"distance_scale"`  // velocity*dt to course units
	WindAccel      float64 `json:"wind_accel"`      // acceleration per unit of wind speed
	SpinScale      float64 `json:"spin_scale"`      // launch speed added at full spin
	WinRadius      float64 `json:"win_radius"`      // max distance from the cup that counts as holed
	RestSpeed      float64 `json:"rest_speed"`      // horizontal speed below which a grounded ball stops
	BounceCutoff   float64 `json:"bounce_cutoff"`   // rebound speeds below this are zeroed
	MaxFlightSteps int     `json:"max_flight_steps"` // hard stop for the integrator
}

// DefaultPhysics returns the canonical integrator constants (30 steps per second).
func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		Gravity:        -9.8,
		TimeStep:       1.0 / 30.0,
		VelocityScale:  0.29,
		DistanceScale:  1.0,
		WindAccel:      0.15,
		SpinScale:      4.0,
		WinRadius:      6.0,
		RestSpeed:      0.5,
		BounceCutoff:   2.0,
		MaxFlightSteps: 30 * 120,
	}
}

// withDefaults fills zero fields from DefaultPhysics.
func (p PhysicsConfig) withDefaults() PhysicsConfig {
	d := DefaultPhysics()
	if p.Gravity == 0 {
		p.Gravity = d.Gravity
	}
	if p.TimeStep <= 0 {
		p.TimeStep = d.TimeStep
	}
	if p.VelocityScale <= 0 {
		p.VelocityScale = d.VelocityScale
	}
	if p.DistanceScale <= 0 {
		p.DistanceScale = d.DistanceScale
	}
	if p.WinRadius <= 0 {
		p.WinRadius = d.WinRadius
	}
	if p.RestSpeed <= 0 {
		p.RestSpeed = d.RestSpeed
	}
	if p.MaxFlightSteps <= 0 {
		p.MaxFlightSteps = d.MaxFlightSteps
	}
	return p
}
