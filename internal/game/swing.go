package game

// SwingPhase is the state of the timed swing input.
type SwingPhase string

const (
	PhaseIdle     SwingPhase = "idle"
	PhasePower    SwingPhase = "power"
	PhaseAccuracy SwingPhase = "accuracy"
	PhaseControl  SwingPhase = "control"
	PhaseShot     SwingPhase = "shot"
)

// Meter oscillates between MeterMin and MeterMax.
type Meter struct {
	Value     float64 `json:"value"`
	Direction int     `json:"direction"`
}

func (m *Meter) Reset() {
	m.Value = MeterMin
	m.Direction = 1
}

// Advance moves the meter one tick and bounces it off the boundaries.
func (m *Meter) Advance(speed float64) {
	if m.Direction == 0 {
		m.Direction = 1
	}
	m.Value += speed * float64(m.Direction)
	if m.Value >= MeterMax {
		m.Value = MeterMax
		m.Direction = -1
	} else if m.Value <= MeterMin {
		m.Value = MeterMin
		m.Direction = 1
	}
}

type SwingMeters struct {
	Power    Meter `json:"power"`
	Accuracy Meter `json:"accuracy"`
	Control  Meter `json:"control"`
}

func (s *SwingMeters) Reset() {
	s.Power.Reset()
	s.Accuracy.Reset()
	s.Control.Reset()
}

// MeterSpeed is the per-tick speed of the accuracy or control meter for a stat.
// Higher stats slow the meter down; factor is the terrain multiplier.
func MeterSpeed(stat int, factor float64) float64 {
	if factor <= 0 {
		factor = 1
	}
	speed := (BaseMeterSpeed - float64(stat)/4) * factor
	if speed < MinMeterSpeed {
		return MinMeterSpeed
	}
	return speed
}

// SwingMachine walks Idle -> Power -> Accuracy -> [Control] -> Shot.
type SwingMachine struct {
	Phase       SwingPhase  `json:"phase"`
	Meters      SwingMeters `json:"meters"`
	SpinEnabled bool        `json:"spin_enabled"`
}

func NewSwingMachine(spinEnabled bool) SwingMachine {
	s := SwingMachine{Phase: PhaseIdle, SpinEnabled: spinEnabled}
	s.Meters.Reset()
	return s
}

// Reset returns to Idle with all meters at zero.
func (s *SwingMachine) Reset() {
	s.Phase = PhaseIdle
	s.Meters.Reset()
}

// Metering reports whether a meter is currently oscillating.
func (s *SwingMachine) Metering() bool {
	return s.Phase == PhasePower || s.Phase == PhaseAccuracy || s.Phase == PhaseControl
}

// Advance applies one player action. It returns true when the swing is complete
// and the shot should be resolved. Actions during Shot are ignored.
func (s *SwingMachine) Advance(putter bool) bool {
	switch s.Phase {
	case PhaseIdle:
		s.Meters.Reset()
		s.Phase = PhasePower
	case PhasePower:
		s.Phase = PhaseAccuracy
	case PhaseAccuracy:
		if s.SpinEnabled && !putter {
			s.Phase = PhaseControl
			return false
		}
		s.Phase = PhaseShot
		return true
	case PhaseControl:
		s.Phase = PhaseShot
		return true
	}
	return false
}

// Tick advances the active meter by one step.
func (s *SwingMachine) Tick(accuracySpeed, controlSpeed float64) {
	switch s.Phase {
	case PhasePower:
		s.Meters.Power.Advance(PowerMeterSpeed)
	case PhaseAccuracy:
		s.Meters.Accuracy.Advance(accuracySpeed)
	case PhaseControl:
		s.Meters.Control.Advance(controlSpeed)
	}
}
