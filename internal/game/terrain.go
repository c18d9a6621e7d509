package game

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
)

// TerrainType describes how a surface treats the ball and the swing.
type TerrainType struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Friction   float64 `json:"friction"`    // horizontal speed kept per ground contact, 0 stops the ball
	Bounce     float64 `json:"bounce"`      // vertical restitution
	MeterSpeed float64 `json:"meter_speed"` // accuracy meter speed multiplier
}

// ShapeKind tags the concrete shape of a terrain region.
type ShapeKind string

const (
	ShapeRect    ShapeKind = "rect"
	ShapeEllipse ShapeKind = "ellipse"
	ShapePolygon ShapeKind = "polygon"
)

// Shape is one of Rect, Ellipse or Polygon.
type Shape interface {
	Kind() ShapeKind
	Contains(p Vec2) bool
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Kind() ShapeKind { return ShapeRect }

// Contains reports whether p lies strictly inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Ellipse is an axis-aligned ellipse given by its center and radii.
type Ellipse struct {
	CX, CY, RX, RY float64
}

func (e Ellipse) Kind() ShapeKind { return ShapeEllipse }

func (e Ellipse) Contains(p Vec2) bool {
	if e.RX <= 0 || e.RY <= 0 {
		return false
	}
	dx := (p.X - e.CX) / e.RX
	dy := (p.Y - e.CY) / e.RY
	return dx*dx+dy*dy <= 1
}

// Polygon is a closed free-form outline. Build it with NewPolygon.
type Polygon struct {
	Points []Vec2
	poly   geom.Polygon
}

// NewPolygon closes the ring if needed and prepares it for containment queries.
func NewPolygon(points []Vec2) (Polygon, error) {
	if len(points) < 3 {
		return Polygon{}, ErrPolygonTooSmall
	}
	coords := make([]float64, 0, (len(points)+1)*2)
	for _, p := range points {
		coords = append(coords, p.X, p.Y)
	}
	if first, last := points[0], points[len(points)-1]; first != last {
		coords = append(coords, first.X, first.Y)
	}
	ring, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return Polygon{}, err
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return Polygon{}, err
	}
	return Polygon{
		Points: append([]Vec2(nil), points...),
		poly:   poly,
	}, nil
}

func (pg Polygon) Kind() ShapeKind { return ShapePolygon }

func (pg Polygon) Contains(p Vec2) bool {
	pt, ok := geomPoint(p)
	return ok && pg.containsPoint(pt)
}

func (pg Polygon) containsPoint(pt geom.Point) bool {
	return geom.Intersects(pg.poly.AsGeometry(), pt.AsGeometry())
}

func geomPoint(p Vec2) (geom.Point, bool) {
	pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: p.X, Y: p.Y}, Type: geom.DimXY})
	return pt, err == nil
}

// Region tags a shape with the terrain it represents.
type Region struct {
	Terrain TerrainType
	Shape   Shape
}

// TerrainMap classifies course points against an ordered list of regions.
type TerrainMap struct {
	regions  []Region
	fallback TerrainType
}

// NewTerrainMap keeps regions in the given order; the first containing region wins.
func NewTerrainMap(regions []Region, fallback TerrainType) *TerrainMap {
	return &TerrainMap{
		regions:  append([]Region(nil), regions...),
		fallback: fallback,
	}
}

// Classify returns the terrain at p, or the fallback when no region contains it.
func (m *TerrainMap) Classify(p Vec2) TerrainType {
	pt, ptOK := geomPoint(p)
	for _, r := range m.regions {
		if pg, ok := r.Shape.(Polygon); ok {
			if ptOK && pg.containsPoint(pt) {
				return r.Terrain
			}
			continue
		}
		if r.Shape != nil && r.Shape.Contains(p) {
			return r.Terrain
		}
	}
	return m.fallback
}

func (t TerrainType) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// Validate checks the coefficient ranges.
func (t TerrainType) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("terrain: missing id")
	}
	if t.Friction < 0 || t.Friction > 1 {
		return fmt.Errorf("terrain %q: friction %v outside [0,1]", t.ID, t.Friction)
	}
	if t.Bounce < 0 || t.Bounce > 1 {
		return fmt.Errorf("terrain %q: bounce %v outside [0,1]", t.ID, t.Bounce)
	}
	if t.MeterSpeed < 0 {
		return fmt.Errorf("terrain %q: negative meter speed", t.ID)
	}
	return nil
}
