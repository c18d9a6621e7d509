package game

// Hole is one playable layout.
type Hole struct {
	ID             int         `json:"id"`
	Par            int         `json:"par"`
	Start          Vec2        `json:"start"`
	Cup            Vec2        `json:"cup"`
	Regions        []Region    `json:"-"`
	Fairway        []Vec2      `json:"fairway"` // centerline waypoints from tee toward the cup
	DefaultTerrain TerrainType `json:"-"`

	terrain *TerrainMap
}

// Prepare builds the terrain map. Holes shared between rounds must be prepared
// before use so TerrainMap never writes.
func (h *Hole) Prepare() *Hole {
	h.terrain = NewTerrainMap(h.Regions, h.DefaultTerrain)
	return h
}

// TerrainMap returns the classifier for this hole's regions.
func (h *Hole) TerrainMap() *TerrainMap {
	if h.terrain == nil {
		return NewTerrainMap(h.Regions, h.DefaultTerrain)
	}
	return h.terrain
}

// AimPoint is where a shot from ball should be pointed. Without a fairway path,
// or from the final leg, that is the cup. Otherwise it is the far end of the
// centerline leg nearest the ball, so doglegs are played around the corner.
func (h *Hole) AimPoint(ball Vec2) Vec2 {
	path := h.path()
	if len(path) < 3 {
		return h.Cup
	}
	best, bestDist := 0, -1.0
	for i := 0; i < len(path)-1; i++ {
		d := distanceToSegment(ball, path[i], path[i+1])
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= len(path)-2 {
		return h.Cup
	}
	return path[best+1]
}

func (h *Hole) path() []Vec2 {
	if len(h.Fairway) == 0 {
		return nil
	}
	p := make([]Vec2, 0, len(h.Fairway)+1)
	p = append(p, h.Fairway...)
	if p[len(p)-1] != h.Cup {
		p = append(p, h.Cup)
	}
	return p
}

// Course is the ordered set of holes played in a round.
type Course struct {
	Name     string
	Holes    []*Hole
	Terrains map[string]TerrainType
	Clubs    *ClubSet
	Skills   []Skill
}

func (c *Course) Hole(i int) (*Hole, error) {
	if i < 0 || i >= len(c.Holes) {
		return nil, ErrHoleIndex
	}
	return c.Holes[i], nil
}
