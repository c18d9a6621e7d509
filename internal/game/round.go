package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// RoundState is the stroke and scorecard bookkeeping for the current round.
type RoundState struct {
	HoleIndex int         `json:"hole_index"`
	Strokes   int         `json:"strokes"`
	Scorecard []int       `json:"scorecard"` // strokes per hole index, 0 until holed
	Terrain   TerrainType `json:"terrain"`   // lie of the resting ball
}

// SimulationContext is all mutable state of a round in one place.
type SimulationContext struct {
	Ball    BallState
	Swing   SwingMachine
	Round   RoundState
	Weather WeatherState
	Club    Club
	Status  Status
	Flight  *Flight
}

type RoundOptions struct {
	Physics         PhysicsConfig
	SpinEnabled     bool
	AimAlongFairway bool
	Weather         WeatherSource
	StartClub       string
	Profile         *PlayerProfile
	Logger          *logrus.Entry
	Now             func() time.Time
}

// RoundController drives one player through a course. It is not safe for
// concurrent use; Session serializes access to it.
type RoundController struct {
	course      *Course
	opts        RoundOptions
	phys        PhysicsConfig
	progression *ProgressionEngine
	log         *logrus.Entry

	ctx     SimulationContext
	hole    *Hole
	terrain *TerrainMap
	pending ShotRecord
	events  []Event
}

func NewRoundController(course *Course, opts RoundOptions) (*RoundController, error) {
	if course == nil || len(course.Holes) == 0 {
		return nil, ErrEmptyCourse
	}
	if course.Clubs == nil || course.Clubs.Len() == 0 {
		return nil, fmt.Errorf("%w: course has no clubs", ErrUnknownClub)
	}
	if opts.Weather == nil {
		opts.Weather = Calm
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	profile := NewProfile()
	if opts.Profile != nil {
		profile = *opts.Profile
	}

	r := &RoundController{
		course:      course,
		opts:        opts,
		phys:        opts.Physics.withDefaults(),
		progression: NewProgressionEngine(course.Skills, profile),
		log:         opts.Logger.WithField("component", "round"),
	}
	r.ctx.Swing = NewSwingMachine(opts.SpinEnabled)
	r.ctx.Round.Scorecard = make([]int, len(course.Holes))

	clubs := course.Clubs.All()
	r.ctx.Club = clubs[0]
	if opts.StartClub != "" {
		c, err := course.Clubs.Get(opts.StartClub)
		if err != nil {
			return nil, err
		}
		r.ctx.Club = c
	}

	r.loadHole(0)
	return r, nil
}

// LoadHole jumps to hole i, discarding any shot in progress.
func (r *RoundController) LoadHole(i int) error {
	if i < 0 || i >= len(r.course.Holes) {
		return fmt.Errorf("%w: %d", ErrHoleIndex, i)
	}
	r.loadHole(i)
	return nil
}

func (r *RoundController) loadHole(i int) {
	h := r.course.Holes[i]
	r.hole = h
	r.terrain = h.TerrainMap()

	r.ctx.Round.HoleIndex = i
	r.ctx.Round.Strokes = 0
	r.ctx.Ball = NewBall(h.Start)
	r.ctx.Flight = nil
	r.ctx.Weather = r.opts.Weather.Next()
	r.ctx.Swing.Reset()
	r.ctx.Round.Terrain = r.terrain.Classify(h.Start)
	r.ctx.Status = statusFor(StatusAwaitingSwing)

	r.log.WithFields(logrus.Fields{
		"hole":    h.ID,
		"par":     h.Par,
		"weather": r.ctx.Weather.Category,
		"wind":    r.ctx.Weather.WindSpeed,
	}).Debug("hole loaded")
	r.emit(EventHoleLoaded, map[string]interface{}{
		"hole_index": i,
		"hole_id":    h.ID,
		"par":        h.Par,
		"weather":    r.ctx.Weather,
		"terrain":    r.ctx.Round.Terrain.ID,
	})
}

// SelectClub changes the active club. Only allowed before a swing starts.
func (r *RoundController) SelectClub(id string) error {
	if r.ctx.Swing.Phase != PhaseIdle || r.ctx.Flight != nil {
		return ErrSwingInProgress
	}
	c, err := r.course.Clubs.Get(id)
	if err != nil {
		return err
	}
	r.ctx.Club = c
	return nil
}

// Advance is the single player action. It starts a swing, catches the active
// meter, or fires the shot. It is ignored while the ball is moving. A swing
// finished with a club that cannot be played from the lie returns
// ErrUnusableClub and costs no stroke.
func (r *RoundController) Advance() error {
	if r.ctx.Flight != nil {
		return nil
	}
	if !r.ctx.Swing.Advance(r.ctx.Club.Putter) {
		r.ctx.Status = swingStatus(r.ctx.Swing.Phase)
		return nil
	}
	return r.fire()
}

// Tick advances the active meter or the ball in flight by one step.
func (r *RoundController) Tick() {
	if r.ctx.Flight != nil {
		r.ctx.Flight.Step()
		r.ctx.Ball = r.ctx.Flight.Ball
		r.emit(EventBallMoved, r.ctx.Ball)
		if r.ctx.Flight.Done() {
			r.settle()
		}
		return
	}
	if r.ctx.Swing.Metering() {
		stats := r.progression.Stats()
		r.ctx.Swing.Tick(
			MeterSpeed(stats.Accuracy, r.ctx.Round.Terrain.MeterSpeed),
			MeterSpeed(stats.Control, 1),
		)
	}
}

// FinishShot runs the ball in flight to rest without pacing.
func (r *RoundController) FinishShot() {
	if r.ctx.Flight == nil {
		return
	}
	r.ctx.Ball = r.ctx.Flight.Simulate()
	r.settle()
}

// InFlight reports whether a shot is being integrated.
func (r *RoundController) InFlight() bool {
	return r.ctx.Flight != nil
}

func (r *RoundController) fire() error {
	lie := r.ctx.Round.Terrain
	club := r.ctx.Club
	m := r.ctx.Swing.Meters

	target := r.hole.Cup
	if r.opts.AimAlongFairway {
		target = r.hole.AimPoint(r.ctx.Ball.Position)
	}

	launch, err := ResolveShot(ShotInput{
		Power:       m.Power.Value,
		Accuracy:    m.Accuracy.Value,
		Control:     m.Control.Value,
		SpinEnabled: r.ctx.Swing.SpinEnabled,
		Club:        club,
		Stats:       r.progression.Stats(),
		Terrain:     lie,
		Ball:        r.ctx.Ball.Position,
		Target:      target,
	}, r.phys)
	if err != nil {
		r.ctx.Swing.Reset()
		if errors.Is(err, ErrUnusableClub) {
			r.ctx.Status = unusableClubStatus(club, lie)
			r.emit(EventUnusableClub, map[string]string{"club": club.ID, "terrain": lie.ID})
		}
		return err
	}

	r.ctx.Round.Strokes++
	r.pending = ShotRecord{
		HoleID:   r.hole.ID,
		Stroke:   r.ctx.Round.Strokes,
		ClubID:   club.ID,
		Power:    m.Power.Value,
		Accuracy: m.Accuracy.Value,
		Control:  m.Control.Value,
		Terrain:  lie.ID,
		Start:    r.ctx.Ball.Position,
	}
	r.ctx.Flight = NewFlight(r.ctx.Ball, launch, r.ctx.Weather, r.terrain, r.phys)
	r.ctx.Ball = r.ctx.Flight.Ball
	r.ctx.Status = statusFor(StatusInFlight)

	r.log.WithFields(logrus.Fields{
		"hole":   r.hole.ID,
		"stroke": r.ctx.Round.Strokes,
		"club":   club.ID,
		"power":  launch.TotalPower,
		"offset": launch.AngleOffset,
	}).Debug("shot started")
	r.emit(EventShotStarted, launch)

	if r.ctx.Flight.Done() {
		r.settle()
	}
	return nil
}

func (r *RoundController) settle() {
	f := r.ctx.Flight
	r.ctx.Flight = nil
	r.ctx.Ball = f.Ball
	r.ctx.Ball.Stop()

	rest := r.terrain.Classify(r.ctx.Ball.Position)
	r.ctx.Round.Terrain = rest
	dist := r.ctx.Ball.Position.DistanceTo(r.hole.Cup)

	shot := r.pending
	shot.Rest = r.ctx.Ball.Position
	shot.RestTerrain = rest.ID
	shot.DistanceToHole = dist
	shot.Steps = f.Steps()
	r.emit(EventShotSettled, shot)

	switch {
	case rest.ID == TerrainWater:
		r.ctx.Round.Strokes += WaterPenaltyStrokes
		r.ctx.Ball = NewBall(r.hole.Start)
		r.ctx.Round.Terrain = r.teeBox()
		r.ctx.Swing.Reset()
		r.ctx.Status = statusFor(StatusWaterHazard)
		r.log.WithField("hole", r.hole.ID).Info("water hazard")
		r.emit(EventHazardPenalty, map[string]interface{}{
			"hole_id": r.hole.ID,
			"strokes": r.ctx.Round.Strokes,
			"penalty": WaterPenaltyStrokes,
		})
	case dist <= r.phys.WinRadius && rest.ID == TerrainGreen:
		r.completeHole()
	default:
		r.ctx.Swing.Reset()
		r.ctx.Status = statusFor(StatusAwaitingSwing)
	}
}

func (r *RoundController) teeBox() TerrainType {
	if t, ok := r.course.Terrains[TerrainTeeBox]; ok {
		return t
	}
	return r.terrain.Classify(r.hole.Start)
}

func (r *RoundController) completeHole() {
	h := r.hole
	strokes := r.ctx.Round.Strokes
	before := r.progression.Profile()
	award := r.progression.AwardHole(strokes, h.Par)
	r.ctx.Round.Scorecard[r.ctx.Round.HoleIndex] = strokes

	r.log.WithFields(logrus.Fields{
		"hole":    h.ID,
		"strokes": strokes,
		"score":   award.Score,
		"xp":      award.XPGained,
	}).Info("hole complete")
	r.emit(EventHoleComplete, HoleResult{
		HoleID:   h.ID,
		Par:      h.Par,
		Strokes:  strokes,
		Score:    award.Score,
		Label:    award.Label,
		XPGained: award.XPGained,
		Levels:   award.LevelsGained,
	})
	if award.LevelsGained > 0 {
		after := r.progression.Profile()
		r.log.WithFields(logrus.Fields{"from": before.Level, "to": after.Level}).Info("level up")
		r.emit(EventLevelUp, LevelUp{Level: after.Level, SkillPoints: after.SkillPoints})
	}

	next := r.ctx.Round.HoleIndex + 1
	if next < len(r.course.Holes) {
		r.loadHole(next)
		r.ctx.Status = holeCompleteStatus(award)
		return
	}

	result := RoundResult{Scorecard: append([]int(nil), r.ctx.Round.Scorecard...)}
	for i, s := range r.ctx.Round.Scorecard {
		result.Total += s
		result.Par += r.course.Holes[i].Par
	}
	r.log.WithFields(logrus.Fields{"total": result.Total, "par": result.Par}).Info("round complete")
	r.emit(EventRoundComplete, result)

	r.ctx.Round.Scorecard = make([]int, len(r.course.Holes))
	r.loadHole(0)
	r.ctx.Status = roundCompleteStatus(result.Total, result.Par)
}

// PurchaseSkill spends skill points. Rejections leave the profile untouched.
func (r *RoundController) PurchaseSkill(id string) (Skill, error) {
	s, err := r.progression.Purchase(id)
	if err != nil {
		return Skill{}, err
	}
	r.emit(EventSkillPurchased, map[string]interface{}{
		"skill":     s.ID,
		"stats":     r.progression.Stats(),
		"purchased": r.progression.PurchasedIDs(),
	})
	return s, nil
}

func (r *RoundController) Skills() []SkillView {
	return r.progression.Skills()
}

// Clubs lists the bag with usability from the current lie.
func (r *RoundController) Clubs() []ClubView {
	lie := r.ctx.Round.Terrain.ID
	all := r.course.Clubs.All()
	out := make([]ClubView, 0, len(all))
	for _, c := range all {
		out = append(out, ClubView{
			Club:     c,
			Usable:   c.UsableOn(lie),
			Selected: c.ID == r.ctx.Club.ID,
		})
	}
	return out
}

// UsableClubs lists the clubs that can be played from the current lie.
func (r *RoundController) UsableClubs() []Club {
	return r.course.Clubs.UsableOn(r.ctx.Round.Terrain.ID)
}

type ClubView struct {
	Club
	Usable   bool `json:"usable"`
	Selected bool `json:"selected"`
}

// Context exposes the live simulation state. Callers must not keep it across calls.
func (r *RoundController) Context() *SimulationContext {
	return &r.ctx
}

func (r *RoundController) Hole() *Hole {
	return r.hole
}

// Snapshot is the read-only view of a round for rendering.
type Snapshot struct {
	HoleIndex      int           `json:"hole_index"`
	HoleID         int           `json:"hole_id"`
	Par            int           `json:"par"`
	Holes          int           `json:"holes"`
	Strokes        int           `json:"strokes"`
	Ball           BallState     `json:"ball"`
	Cup            Vec2          `json:"cup"`
	Terrain        string        `json:"terrain"`
	DistanceToHole float64       `json:"distance_to_hole"`
	Club           string        `json:"club"`
	Swing          SwingMachine  `json:"swing"`
	Weather        WeatherState  `json:"weather"`
	Status         Status        `json:"status"`
	Profile        PlayerProfile `json:"profile"`
	Scorecard      []int         `json:"scorecard"`
}

func (r *RoundController) Snapshot() Snapshot {
	return Snapshot{
		HoleIndex:      r.ctx.Round.HoleIndex,
		HoleID:         r.hole.ID,
		Par:            r.hole.Par,
		Holes:          len(r.course.Holes),
		Strokes:        r.ctx.Round.Strokes,
		Ball:           r.ctx.Ball,
		Cup:            r.hole.Cup,
		Terrain:        r.ctx.Round.Terrain.String(),
		DistanceToHole: math.Round(r.ctx.Ball.Position.DistanceTo(r.hole.Cup)),
		Club:           r.ctx.Club.ID,
		Swing:          r.ctx.Swing,
		Weather:        r.ctx.Weather,
		Status:         r.ctx.Status,
		Profile:        r.progression.Profile(),
		Scorecard:      append([]int(nil), r.ctx.Round.Scorecard...),
	}
}

// DrainEvents returns and clears the events emitted since the last call.
func (r *RoundController) DrainEvents() []Event {
	out := r.events
	r.events = nil
	return out
}

func (r *RoundController) emit(t EventType, data interface{}) {
	r.events = append(r.events, Event{Type: t, Time: r.opts.Now(), Data: data})
}
