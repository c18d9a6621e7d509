package autoplay

import (
	"errors"
	"fmt"
	"math"

	"github.com/playmatatu/fairway/internal/game"
	"github.com/sirupsen/logrus"
)

// ErrShotLimit stops a round that is not converging.
var ErrShotLimit = errors.New("shot limit reached")

const (
	defaultMaxShots = 18 * 15
	maxMeterTicks   = 1000
	aimAccuracy     = 50.0
)

// Player drives a RoundController the way a person at the keyboard would:
// it picks a club, then presses the swing button as each meter passes the
// value it wants.
type Player struct {
	round    *game.RoundController
	caddie   Caddie
	log      *logrus.Entry
	maxShots int
	shots    int
}

func NewPlayer(round *game.RoundController, caddie Caddie, log *logrus.Entry) *Player {
	return &Player{
		round:    round,
		caddie:   caddie,
		log:      log,
		maxShots: defaultMaxShots,
	}
}

// Shots is the number of swings taken so far, penalties excluded.
func (p *Player) Shots() int {
	return p.shots
}

// PlayShot plans, swings and runs one shot to rest. It returns the events the
// shot produced.
func (p *Player) PlayShot() ([]game.Event, error) {
	plan, err := p.caddie.Plan(p.round)
	if err != nil {
		return nil, err
	}
	if err := p.round.SelectClub(plan.Club); err != nil {
		return nil, fmt.Errorf("select %s: %w", plan.Club, err)
	}

	// start the swing, let the power meter climb, catch it
	if err := p.round.Advance(); err != nil {
		return nil, err
	}
	if err := p.catchMeter(func(m game.SwingMeters) float64 { return m.Power.Value }, plan.Power, game.PowerMeterSpeed); err != nil {
		return nil, err
	}

	stats := p.round.Snapshot().Profile.Stats
	accSpeed := game.MeterSpeed(stats.Accuracy, p.round.Context().Round.Terrain.MeterSpeed)
	if err := p.catchMeter(func(m game.SwingMeters) float64 { return m.Accuracy.Value }, aimAccuracy, accSpeed); err != nil {
		return nil, err
	}

	if p.round.Context().Swing.Phase == game.PhaseControl {
		ctrlSpeed := game.MeterSpeed(stats.Control, 1)
		if err := p.catchMeter(func(m game.SwingMeters) float64 { return m.Control.Value }, aimAccuracy, ctrlSpeed); err != nil {
			return nil, err
		}
	}

	p.shots++
	p.round.FinishShot()

	p.log.WithFields(logrus.Fields{
		"club":     plan.Club,
		"power":    plan.Power,
		"expected": plan.Terrain,
		"distance": p.round.Snapshot().DistanceToHole,
	}).Debug("Shot played")
	return p.round.DrainEvents(), nil
}

// catchMeter ticks until the active meter is within half a step of target and
// then presses the button.
func (p *Player) catchMeter(read func(game.SwingMeters) float64, target, speed float64) error {
	for i := 0; i < maxMeterTicks; i++ {
		if math.Abs(read(p.round.Context().Swing.Meters)-target) <= speed/2 {
			return p.round.Advance()
		}
		p.round.Tick()
	}
	return fmt.Errorf("meter never reached %.1f", target)
}

// PlayRound plays until the last hole is holed and returns the round result.
// The shot limit applies to each round on its own.
func (p *Player) PlayRound() (game.RoundResult, error) {
	p.round.DrainEvents()
	start := p.shots
	for p.shots-start < p.maxShots {
		events, err := p.PlayShot()
		if err != nil {
			return game.RoundResult{}, err
		}
		for _, e := range events {
			switch e.Type {
			case game.EventHoleComplete:
				res := e.Data.(game.HoleResult)
				p.log.WithFields(logrus.Fields{
					"hole":    res.HoleID,
					"par":     res.Par,
					"strokes": res.Strokes,
					"label":   res.Label,
				}).Info("Hole complete")
			case game.EventHazardPenalty:
				p.log.WithField("hole", p.round.Hole().ID).Info("Penalty stroke")
			case game.EventRoundComplete:
				return e.Data.(game.RoundResult), nil
			}
		}
	}
	return game.RoundResult{}, ErrShotLimit
}
