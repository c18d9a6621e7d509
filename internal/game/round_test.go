package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoundLoadsFirstHole(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1), straightHole(2)), "")
	snap := r.Snapshot()

	assert.Equal(t, 0, snap.HoleIndex)
	assert.Equal(t, 1, snap.HoleID)
	assert.Equal(t, 4, snap.Par)
	assert.Equal(t, 2, snap.Holes)
	assert.Zero(t, snap.Strokes)
	assert.Equal(t, Vec2{X: 400, Y: 550}, snap.Ball.Position)
	assert.Equal(t, "Tee Box", snap.Terrain)
	assert.Equal(t, 470.0, snap.DistanceToHole)
	assert.Equal(t, "1W", snap.Club, "first club in the bag")
	assert.Equal(t, StatusAwaitingSwing, snap.Status.Kind)
	assert.Equal(t, []int{0, 0}, snap.Scorecard)
}

func TestNewRoundRejectsBadInput(t *testing.T) {
	_, err := NewRoundController(testCourse(), RoundOptions{})
	assert.ErrorIs(t, err, ErrEmptyCourse)

	_, err = NewRoundController(testCourse(straightHole(1)), RoundOptions{StartClub: "2H", Logger: quietLogger()})
	assert.ErrorIs(t, err, ErrUnknownClub)
}

func TestAdvanceWalksStatuses(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1)), "7I")

	require.NoError(t, r.Advance())
	assert.Equal(t, StatusAwaitingPower, r.Snapshot().Status.Kind)
	for i := 0; i < 30; i++ {
		r.Tick()
	}
	require.NoError(t, r.Advance())
	assert.Equal(t, StatusAwaitingAccuracy, r.Snapshot().Status.Kind)
	for i := 0; i < 20; i++ {
		r.Tick()
	}
	require.NoError(t, r.Advance())
	assert.Equal(t, StatusInFlight, r.Snapshot().Status.Kind)
	assert.True(t, r.InFlight())
}

func TestZeroPowerSwingSettlesAtOnce(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1)), "7I")

	require.NoError(t, swing(t, r, 0, 50))
	snap := r.Snapshot()
	assert.Equal(t, 1, snap.Strokes)
	assert.False(t, r.InFlight())
	assert.Equal(t, StatusAwaitingSwing, snap.Status.Kind)
	assert.Equal(t, Vec2{X: 400, Y: 550}, snap.Ball.Position)
	assert.Equal(t, []EventType{EventShotStarted, EventShotSettled}, eventTypes(r.DrainEvents()))
}

func TestTickAdvancesActiveMeter(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1)), "7I")
	require.NoError(t, r.Advance())
	for i := 0; i < 10; i++ {
		r.Tick()
	}
	assert.Equal(t, 20.0, r.Context().Swing.Meters.Power.Value)

	require.NoError(t, r.Advance())
	r.Tick()
	// tee box factor 1, accuracy stat 10
	assert.Equal(t, 2.5, r.Context().Swing.Meters.Accuracy.Value)
}

func TestShotCountsOneStrokeAndSettles(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1)), "7I")
	require.NoError(t, swing(t, r, 100, 50))
	assert.Equal(t, 1, r.Snapshot().Strokes)

	for r.InFlight() {
		r.Tick()
	}
	snap := r.Snapshot()
	assert.Equal(t, 1, snap.Strokes)
	assert.Equal(t, StatusAwaitingSwing, snap.Status.Kind)
	assert.Equal(t, PhaseIdle, snap.Swing.Phase)
	assert.Equal(t, "Fairway", snap.Terrain)
	assert.Less(t, snap.Ball.Position.Y, 550.0)
	assert.False(t, snap.Ball.Moving)

	events := r.DrainEvents()
	assert.Equal(t, []EventType{EventShotStarted, EventShotSettled}, eventTypes(events))
	assert.Greater(t, len(events), 2, "ball_moved frames while ticking")
	settled := events[len(events)-1].Data.(ShotRecord)
	assert.Equal(t, 1, settled.Stroke)
	assert.Equal(t, "7I", settled.ClubID)
	assert.Equal(t, TerrainTeeBox, settled.Terrain)
	assert.Equal(t, TerrainFairway, settled.RestTerrain)
}

func TestTickedAndFinishedShotsAgree(t *testing.T) {
	play := func(finish bool) Snapshot {
		r := newTestRound(t, testCourse(straightHole(1)), "1W")
		require.NoError(t, swing(t, r, 90, 40))
		if finish {
			r.FinishShot()
		} else {
			for r.InFlight() {
				r.Tick()
			}
		}
		return r.Snapshot()
	}
	a, b := play(true), play(false)
	assert.Equal(t, a.Ball, b.Ball)
	assert.Equal(t, a.Strokes, b.Strokes)
}

func TestUnusableClubCostsNoStroke(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1)), "P")
	err := swing(t, r, 100, 50)
	assert.ErrorIs(t, err, ErrUnusableClub)

	snap := r.Snapshot()
	assert.Zero(t, snap.Strokes)
	assert.Equal(t, PhaseIdle, snap.Swing.Phase)
	assert.Zero(t, snap.Swing.Meters.Power.Value)
	assert.Equal(t, StatusUnusableClub, snap.Status.Kind)
	assert.False(t, r.InFlight())
	assert.Equal(t, []EventType{EventUnusableClub}, eventTypes(r.DrainEvents()))
}

func TestSelectClubOnlyWhileIdle(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1)), "")
	require.NoError(t, r.SelectClub("7I"))
	assert.ErrorIs(t, r.SelectClub("9W"), ErrUnknownClub)

	require.NoError(t, r.Advance())
	assert.ErrorIs(t, r.SelectClub("1W"), ErrSwingInProgress)
	assert.Equal(t, "7I", r.Snapshot().Club)
}

func TestWaterHazardPenalty(t *testing.T) {
	r := newTestRound(t, testCourse(lakeHole(1)), "7I")
	require.NoError(t, swing(t, r, 100, 50))
	r.FinishShot()

	snap := r.Snapshot()
	assert.Equal(t, 2, snap.Strokes, "one stroke plus one penalty")
	assert.Equal(t, Vec2{X: 400, Y: 550}, snap.Ball.Position)
	assert.Equal(t, "Tee Box", snap.Terrain)
	assert.Equal(t, StatusWaterHazard, snap.Status.Kind)
	assert.Equal(t, PhaseIdle, snap.Swing.Phase)
	assert.Equal(t, []EventType{EventShotStarted, EventShotSettled, EventHazardPenalty}, eventTypes(r.DrainEvents()))
}

func TestHoleOutAdvancesToNextHole(t *testing.T) {
	r := newTestRound(t, testCourse(puttingHole(1), straightHole(2)), "P")
	r.Context().Round.Strokes = 3

	require.NoError(t, swing(t, r, 100, 50))
	r.FinishShot()

	snap := r.Snapshot()
	assert.Equal(t, StatusHoleComplete, snap.Status.Kind)
	assert.Equal(t, 0, snap.Status.Score)
	assert.Equal(t, "Par", snap.Status.Label)
	assert.Equal(t, 1, snap.HoleIndex)
	assert.Equal(t, 2, snap.HoleID)
	assert.Zero(t, snap.Strokes)
	assert.Equal(t, []int{4, 0}, snap.Scorecard)
	assert.Equal(t, 50, snap.Profile.Experience)

	events := r.DrainEvents()
	assert.Equal(t, []EventType{EventShotStarted, EventShotSettled, EventHoleComplete, EventHoleLoaded}, eventTypes(events))
	for _, e := range events {
		if e.Type == EventHoleComplete {
			res := e.Data.(HoleResult)
			assert.Equal(t, 4, res.Strokes)
			assert.Equal(t, 50, res.XPGained)
		}
	}
}

func TestShortOfTheCupIsNotAWin(t *testing.T) {
	r := newTestRound(t, testCourse(puttingHole(1)), "P")
	require.NoError(t, swing(t, r, 40, 50))
	r.FinishShot()

	snap := r.Snapshot()
	assert.Equal(t, StatusAwaitingSwing, snap.Status.Kind)
	assert.Equal(t, 1, snap.Strokes)
	assert.Greater(t, snap.DistanceToHole, 6.0)
}

func TestRoundCompleteWrapsAround(t *testing.T) {
	r := newTestRound(t, testCourse(puttingHole(1), puttingHole(2)), "P")

	require.NoError(t, swing(t, r, 100, 50))
	r.FinishShot()
	require.Equal(t, 1, r.Snapshot().HoleIndex)
	r.Context().Round.Strokes = 1
	require.NoError(t, swing(t, r, 100, 50))
	r.FinishShot()

	snap := r.Snapshot()
	assert.Equal(t, StatusRoundComplete, snap.Status.Kind)
	assert.Equal(t, 3, snap.Status.Total)
	assert.Equal(t, 0, snap.HoleIndex)
	assert.Equal(t, []int{0, 0}, snap.Scorecard, "scorecard clears for the next round")
	// a hole in one and an eagle: 80 + 70 crosses the first level
	assert.Equal(t, 2, snap.Profile.Level)
	assert.Equal(t, 1, snap.Profile.SkillPoints)

	var result RoundResult
	var levelUps int
	for _, e := range r.DrainEvents() {
		switch e.Type {
		case EventRoundComplete:
			result = e.Data.(RoundResult)
		case EventLevelUp:
			levelUps++
		}
	}
	assert.Equal(t, []int{1, 2}, result.Scorecard)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 8, result.Par)
	assert.Equal(t, 1, levelUps)
}

func TestPurchaseSkillFeedsShots(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1)), "")
	_, err := r.PurchaseSkill("power1")
	assert.ErrorIs(t, err, ErrInsufficientSkillPoints)

	r.progression.AddExperience(100)
	s, err := r.PurchaseSkill("power1")
	require.NoError(t, err)
	assert.Equal(t, "power1", s.ID)
	assert.Equal(t, 12, r.Snapshot().Profile.Stats.Power)

	events := r.DrainEvents()
	require.Equal(t, []EventType{EventSkillPurchased}, eventTypes(events))
	data := events[0].Data.(map[string]interface{})
	assert.Equal(t, "power1", data["skill"])
	assert.Equal(t, []string{"power1"}, data["purchased"])
}

func TestClubsView(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1)), "7I")
	clubs := r.Clubs()
	require.Len(t, clubs, 3)
	assert.True(t, clubs[0].Usable)
	assert.False(t, clubs[2].Usable, "no putter from the tee")
	assert.True(t, clubs[1].Selected)
}

func TestUsableClubsFollowTheLie(t *testing.T) {
	r := newTestRound(t, testCourse(puttingHole(1)), "P")
	ids := func() []string {
		var out []string
		for _, c := range r.UsableClubs() {
			out = append(out, c.ID)
		}
		return out
	}
	assert.Equal(t, []string{"P"}, ids(), "only the putter plays from the green")

	r = newTestRound(t, testCourse(straightHole(1)), "7I")
	assert.Equal(t, []string{"1W", "7I"}, ids())
}

func TestLoadHole(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1), lakeHole(2)), "7I")
	require.NoError(t, r.Advance())
	require.NoError(t, r.LoadHole(1))
	snap := r.Snapshot()
	assert.Equal(t, 2, snap.HoleID)
	assert.Equal(t, PhaseIdle, snap.Swing.Phase)
	assert.ErrorIs(t, r.LoadHole(2), ErrHoleIndex)
	assert.ErrorIs(t, r.LoadHole(-1), ErrHoleIndex)
}

func TestAdvanceIgnoredInFlight(t *testing.T) {
	r := newTestRound(t, testCourse(straightHole(1)), "7I")
	require.NoError(t, swing(t, r, 100, 50))
	require.True(t, r.InFlight())
	require.NoError(t, r.Advance())
	assert.Equal(t, 1, r.Snapshot().Strokes)
	assert.True(t, r.InFlight())
}
