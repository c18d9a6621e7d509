package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectContainsIsStrict(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, r.Contains(Vec2{X: 5, Y: 5}))
	assert.False(t, r.Contains(Vec2{X: 0, Y: 5}))
	assert.False(t, r.Contains(Vec2{X: 10, Y: 5}))
	assert.False(t, r.Contains(Vec2{X: 5, Y: 10}))
	assert.False(t, r.Contains(Vec2{X: 11, Y: 5}))
}

func TestEllipseContains(t *testing.T) {
	e := Ellipse{CX: 100, CY: 100, RX: 20, RY: 10}
	assert.True(t, e.Contains(Vec2{X: 100, Y: 100}))
	assert.True(t, e.Contains(Vec2{X: 120, Y: 100}), "boundary counts")
	assert.False(t, e.Contains(Vec2{X: 100, Y: 111}))
	assert.False(t, e.Contains(Vec2{X: 115, Y: 108}))

	assert.False(t, Ellipse{CX: 0, CY: 0, RX: 0, RY: 5}.Contains(Vec2{}))
}

func TestPolygonContains(t *testing.T) {
	// L shape: a vertical bar joined to a horizontal bar at the top.
	poly, err := NewPolygon([]Vec2{
		{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 40}, {X: 0, Y: 40},
	})
	require.NoError(t, err)

	assert.Equal(t, ShapePolygon, poly.Kind())
	assert.True(t, poly.Contains(Vec2{X: 5, Y: 30}))
	assert.True(t, poly.Contains(Vec2{X: 25, Y: 5}))
	assert.False(t, poly.Contains(Vec2{X: 20, Y: 20}), "notch of the L")
	assert.False(t, poly.Contains(Vec2{X: -1, Y: 5}))

	_, err = NewPolygon([]Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}})
	assert.ErrorIs(t, err, ErrPolygonTooSmall)
}

func TestPolygonRejectsSelfIntersectingRing(t *testing.T) {
	// bow tie: the second and fourth edges cross at (5,5)
	_, err := NewPolygon([]Vec2{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}})
	assert.Error(t, err)
}

func TestTerrainMapClassifiesPolygonRegions(t *testing.T) {
	dogleg, err := NewPolygon([]Vec2{
		{X: 320, Y: 560}, {X: 320, Y: 340}, {X: 430, Y: 340}, {X: 430, Y: 80},
		{X: 470, Y: 80}, {X: 470, Y: 360}, {X: 340, Y: 360}, {X: 340, Y: 560},
	})
	require.NoError(t, err)

	m := NewTerrainMap([]Region{
		{Terrain: water, Shape: Rect{X: 0, Y: 0, W: 50, H: 50}},
		{Terrain: fairway, Shape: dogleg},
	}, rough)

	assert.Equal(t, TerrainFairway, m.Classify(Vec2{X: 330, Y: 450}).ID)
	assert.Equal(t, TerrainFairway, m.Classify(Vec2{X: 400, Y: 350}).ID)
	assert.Equal(t, TerrainFairway, m.Classify(Vec2{X: 450, Y: 200}).ID)
	assert.Equal(t, TerrainRough, m.Classify(Vec2{X: 380, Y: 450}).ID)
	assert.Equal(t, TerrainWater, m.Classify(Vec2{X: 10, Y: 10}).ID)
}

func TestTerrainMapFirstMatchWins(t *testing.T) {
	m := NewTerrainMap([]Region{
		{Terrain: water, Shape: Rect{X: 40, Y: 40, W: 20, H: 20}},
		{Terrain: rough, Shape: Rect{X: 0, Y: 0, W: 100, H: 100}},
	}, fairway)

	assert.Equal(t, TerrainWater, m.Classify(Vec2{X: 50, Y: 50}).ID)
	assert.Equal(t, TerrainRough, m.Classify(Vec2{X: 10, Y: 10}).ID)
}

func TestTerrainMapFallback(t *testing.T) {
	m := NewTerrainMap([]Region{
		{Terrain: green, Shape: Ellipse{CX: 0, CY: 0, RX: 5, RY: 5}},
		{Terrain: rough, Shape: nil},
	}, rough)

	for _, p := range []Vec2{{X: 100, Y: 100}, {X: -100, Y: 3}, {X: 6, Y: 0}} {
		assert.Equal(t, rough, m.Classify(p))
	}

	empty := NewTerrainMap(nil, fairway)
	assert.Equal(t, fairway, empty.Classify(Vec2{X: 1, Y: 1}))
}

func TestTerrainValidate(t *testing.T) {
	assert.NoError(t, fairway.Validate())
	assert.NoError(t, water.Validate())
	assert.Error(t, TerrainType{ID: "X", Friction: 1.2}.Validate())
	assert.Error(t, TerrainType{ID: "X", Bounce: -0.1}.Validate())
	assert.Error(t, TerrainType{Friction: 0.5}.Validate())
}

func TestAimPoint(t *testing.T) {
	dogleg := &Hole{
		Start:   Vec2{X: 350, Y: 550},
		Cup:     Vec2{X: 450, Y: 100},
		Fairway: []Vec2{{X: 350, Y: 550}, {X: 350, Y: 350}, {X: 450, Y: 350}, {X: 450, Y: 100}},
	}
	assert.Equal(t, Vec2{X: 350, Y: 350}, dogleg.AimPoint(Vec2{X: 350, Y: 550}))
	assert.Equal(t, Vec2{X: 450, Y: 350}, dogleg.AimPoint(Vec2{X: 400, Y: 345}))
	assert.Equal(t, dogleg.Cup, dogleg.AimPoint(Vec2{X: 455, Y: 200}))

	straight := straightHole(1)
	assert.Equal(t, straight.Cup, straight.AimPoint(straight.Start))

	bare := &Hole{Cup: Vec2{X: 1, Y: 2}}
	assert.Equal(t, bare.Cup, bare.AimPoint(Vec2{}))
}
