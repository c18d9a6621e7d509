package game

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var (
	teeBox  = TerrainType{ID: TerrainTeeBox, Name: "Tee Box", Friction: 0.95, Bounce: 0.45, MeterSpeed: 1}
	fairway = TerrainType{ID: TerrainFairway, Name: "Fairway", Friction: 0.95, Bounce: 0.45, MeterSpeed: 1}
	green   = TerrainType{ID: TerrainGreen, Name: "Green", Friction: 0.99, Bounce: 0.3, MeterSpeed: 1}
	rough   = TerrainType{ID: TerrainRough, Name: "Rough", Friction: 0.6, Bounce: 0.2, MeterSpeed: 1.5}
	water   = TerrainType{ID: TerrainWater, Name: "Water"}
)

func testTerrains() map[string]TerrainType {
	return map[string]TerrainType{
		teeBox.ID:  teeBox,
		fairway.ID: fairway,
		green.ID:   green,
		rough.ID:   rough,
		water.ID:   water,
	}
}

func perf(tee, fw, gr, ro float64) map[string]float64 {
	return map[string]float64{
		TerrainTeeBox:  tee,
		TerrainFairway: fw,
		TerrainGreen:   gr,
		TerrainRough:   ro,
		TerrainWater:   0,
	}
}

var (
	driver  = Club{ID: "1W", Name: "Driver", BaseDistance: 260, Loft: 10, Performance: perf(1, 0.8, 0, 0)}
	sevenI  = Club{ID: "7I", Name: "7 Iron", BaseDistance: 150, Loft: 20, Performance: perf(1, 1, 0, 0.85)}
	putterC = Club{ID: "P", Name: "Putter", BaseDistance: 20, Putter: true, Performance: perf(0, 0.5, 1, 0)}
)

func testClubs() *ClubSet {
	return NewClubSet([]Club{driver, sevenI, putterC})
}

func testSkills() []Skill {
	return []Skill{
		{ID: "power1", Cost: 1, Effect: StatEffect{Stat: StatPower, Amount: 2}},
		{ID: "power2", Cost: 2, Requires: "power1", Effect: StatEffect{Stat: StatPower, Amount: 3}},
		{ID: "accuracy1", Cost: 1, Effect: StatEffect{Stat: StatAccuracy, Amount: 2}},
	}
}

// straightHole is a plain par 4 from (400,550) to (400,80).
func straightHole(id int) *Hole {
	h := &Hole{
		ID:    id,
		Par:   4,
		Start: Vec2{X: 400, Y: 550},
		Cup:   Vec2{X: 400, Y: 80},
		Regions: []Region{
			{Terrain: teeBox, Shape: Rect{X: 375, Y: 540, W: 50, H: 20}},
			{Terrain: green, Shape: Ellipse{CX: 400, CY: 90, RX: 60, RY: 30}},
			{Terrain: rough, Shape: Rect{X: 0, Y: 0, W: 280, H: 600}},
		},
		Fairway:        []Vec2{{X: 400, Y: 550}, {X: 400, Y: 80}},
		DefaultTerrain: fairway,
	}
	return h.Prepare()
}

// puttingHole starts the ball on the green, close enough that a full putt drops.
func puttingHole(id int) *Hole {
	h := &Hole{
		ID:    id,
		Par:   4,
		Start: Vec2{X: 400, Y: 100},
		Cup:   Vec2{X: 400, Y: 80},
		Regions: []Region{
			{Terrain: green, Shape: Ellipse{CX: 400, CY: 90, RX: 60, RY: 30}},
		},
		DefaultTerrain: fairway,
	}
	return h.Prepare()
}

// lakeHole has water everywhere past the tee.
func lakeHole(id int) *Hole {
	h := &Hole{
		ID:    id,
		Par:   3,
		Start: Vec2{X: 400, Y: 550},
		Cup:   Vec2{X: 400, Y: 80},
		Regions: []Region{
			{Terrain: teeBox, Shape: Rect{X: 375, Y: 540, W: 50, H: 20}},
			{Terrain: water, Shape: Rect{X: 0, Y: 0, W: 800, H: 530}},
		},
		DefaultTerrain: rough,
	}
	return h.Prepare()
}

func testCourse(holes ...*Hole) *Course {
	return &Course{
		Name:     "test",
		Holes:    holes,
		Terrains: testTerrains(),
		Clubs:    testClubs(),
		Skills:   testSkills(),
	}
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestRound(t *testing.T, course *Course, club string) *RoundController {
	t.Helper()
	r, err := NewRoundController(course, RoundOptions{
		StartClub: club,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	r.DrainEvents()
	return r
}

// swing runs a whole swing with exact meter values and returns the error from
// the final advance.
func swing(t *testing.T, r *RoundController, power, accuracy float64) error {
	t.Helper()
	require.NoError(t, r.Advance())
	r.Context().Swing.Meters.Power.Value = power
	require.NoError(t, r.Advance())
	r.Context().Swing.Meters.Accuracy.Value = accuracy
	return r.Advance()
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, 0, len(events))
	for _, e := range events {
		if e.Type != EventBallMoved {
			out = append(out, e.Type)
		}
	}
	return out
}
