package game

import "fmt"

// StatusKind is the player-facing state of the round.
type StatusKind string

const (
	StatusAwaitingSwing    StatusKind = "AWAITING_SWING"
	StatusAwaitingPower    StatusKind = "AWAITING_POWER"
	StatusAwaitingAccuracy StatusKind = "AWAITING_ACCURACY"
	StatusAwaitingSpin     StatusKind = "AWAITING_SPIN"
	StatusInFlight         StatusKind = "IN_FLIGHT"
	StatusHoleComplete     StatusKind = "HOLE_COMPLETE"
	StatusRoundComplete    StatusKind = "ROUND_COMPLETE"
	StatusUnusableClub     StatusKind = "UNUSABLE_CLUB"
	StatusWaterHazard      StatusKind = "WATER_HAZARD"
)

// Status carries the status kind plus the numbers that go with it.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Score   int        `json:"score,omitempty"` // HoleComplete: strokes minus par
	Total   int        `json:"total,omitempty"` // RoundComplete: sum of the scorecard
	Label   string     `json:"label,omitempty"`
	Message string     `json:"message"`
}

func statusFor(kind StatusKind) Status {
	return Status{Kind: kind, Message: statusMessages[kind]}
}

var statusMessages = map[StatusKind]string{
	StatusAwaitingSwing:    "Click to start your swing",
	StatusAwaitingPower:    "Click to set power",
	StatusAwaitingAccuracy: "Click to set accuracy",
	StatusAwaitingSpin:     "Click to set spin",
	StatusInFlight:         "Ball in flight",
	StatusWaterHazard:      "Water hazard! +1 stroke penalty",
}

func holeCompleteStatus(award HoleAward) Status {
	return Status{
		Kind:    StatusHoleComplete,
		Score:   award.Score,
		Label:   award.Label,
		Message: fmt.Sprintf("In the hole! Score: %s", award.Label),
	}
}

func roundCompleteStatus(total, par int) Status {
	return Status{
		Kind:    StatusRoundComplete,
		Total:   total,
		Score:   total - par,
		Message: fmt.Sprintf("Round complete! %d strokes (%+d)", total, total-par),
	}
}

func unusableClubStatus(club Club, terrain TerrainType) Status {
	return Status{
		Kind:    StatusUnusableClub,
		Message: fmt.Sprintf("Cannot use %s from the %s", club.Name, terrain),
	}
}

// swingStatus maps a swing phase to the status it waits on.
func swingStatus(p SwingPhase) Status {
	switch p {
	case PhasePower:
		return statusFor(StatusAwaitingPower)
	case PhaseAccuracy:
		return statusFor(StatusAwaitingAccuracy)
	case PhaseControl:
		return statusFor(StatusAwaitingSpin)
	case PhaseShot:
		return statusFor(StatusInFlight)
	default:
		return statusFor(StatusAwaitingSwing)
	}
}
