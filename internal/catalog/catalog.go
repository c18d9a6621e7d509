package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/playmatatu/fairway/internal/game"
)

//go:embed default.yaml
var defaultCatalog []byte

// LayoutStandard expands to the tee, side rough, bunker, green and center fairway
// regions every plain par 4 uses.
const LayoutStandard = "standard"

type File struct {
	Name     string       `yaml:"name"`
	Terrains []TerrainDef `yaml:"terrains"`
	Clubs    []ClubDef    `yaml:"clubs"`
	Skills   []SkillDef   `yaml:"skills"`
	Holes    []HoleDef    `yaml:"holes"`
}

type TerrainDef struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Friction   float64 `yaml:"friction"`
	Bounce     float64 `yaml:"bounce"`
	MeterSpeed float64 `yaml:"meter_speed"`
}

type ClubDef struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	BaseDistance float64            `yaml:"base_distance"`
	Loft         float64            `yaml:"loft"`
	Putter       bool               `yaml:"putter"`
	Performance  map[string]float64 `yaml:"performance"`
}

type SkillDef struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Cost        int             `yaml:"cost"`
	Requires    string          `yaml:"requires"`
	Effect      game.StatEffect `yaml:"effect"`
}

type HoleDef struct {
	ID             int         `yaml:"id"`
	Par            int         `yaml:"par"`
	Repeat         int         `yaml:"repeat"` // clone this hole with consecutive ids
	Start          game.Vec2   `yaml:"start"`
	Cup            game.Vec2   `yaml:"cup"`
	Fairway        []game.Vec2 `yaml:"fairway"`
	DefaultTerrain string      `yaml:"default_terrain"`
	Layout         string      `yaml:"layout"`
	Regions        []RegionDef `yaml:"regions"`
}

// RegionDef sets exactly one of Rect, Ellipse or Polygon.
type RegionDef struct {
	Terrain string      `yaml:"terrain"`
	Rect    []float64   `yaml:"rect"`    // x, y, w, h
	Ellipse []float64   `yaml:"ellipse"` // cx, cy, rx, ry
	Polygon [][]float64 `yaml:"polygon"`
}

// Default returns the built-in 18 hole course.
func Default() (*game.Course, error) {
	c, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("default.yaml: %w", err)
	}
	return c, nil
}

// Load reads a catalog file from disk.
func Load(path string) (*game.Course, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(raw []byte) (*game.Course, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return f.Build()
}

// Build validates the file and assembles a course with prepared holes.
func (f File) Build() (*game.Course, error) {
	terrains := make(map[string]game.TerrainType, len(f.Terrains))
	for _, td := range f.Terrains {
		t := game.TerrainType{
			ID:         td.ID,
			Name:       td.Name,
			Friction:   td.Friction,
			Bounce:     td.Bounce,
			MeterSpeed: td.MeterSpeed,
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := terrains[t.ID]; dup {
			return nil, fmt.Errorf("terrain %q: duplicate id", t.ID)
		}
		terrains[t.ID] = t
	}
	for _, id := range []string{game.TerrainTeeBox, game.TerrainGreen, game.TerrainWater} {
		if _, ok := terrains[id]; !ok {
			return nil, fmt.Errorf("terrain %q: required", id)
		}
	}

	clubs, err := f.buildClubs(terrains)
	if err != nil {
		return nil, err
	}
	skills, err := f.buildSkills()
	if err != nil {
		return nil, err
	}

	course := &game.Course{
		Name:     f.Name,
		Terrains: terrains,
		Clubs:    clubs,
		Skills:   skills,
	}
	for _, hd := range f.Holes {
		n := hd.Repeat
		if n <= 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			h, err := hd.build(hd.ID+i, terrains)
			if err != nil {
				return nil, err
			}
			course.Holes = append(course.Holes, h)
		}
	}
	if len(course.Holes) == 0 {
		return nil, game.ErrEmptyCourse
	}
	return course, nil
}

func (f File) buildClubs(terrains map[string]game.TerrainType) (*game.ClubSet, error) {
	if len(f.Clubs) == 0 {
		return nil, fmt.Errorf("catalog: no clubs")
	}
	seen := make(map[string]bool, len(f.Clubs))
	clubs := make([]game.Club, 0, len(f.Clubs))
	for _, cd := range f.Clubs {
		if cd.ID == "" {
			return nil, fmt.Errorf("club: missing id")
		}
		if seen[cd.ID] {
			return nil, fmt.Errorf("club %q: duplicate id", cd.ID)
		}
		seen[cd.ID] = true
		if cd.BaseDistance <= 0 {
			return nil, fmt.Errorf("club %q: base distance must be positive", cd.ID)
		}
		if cd.Loft < 0 || cd.Loft >= 90 {
			return nil, fmt.Errorf("club %q: loft %v outside [0,90)", cd.ID, cd.Loft)
		}
		for id := range terrains {
			v, ok := cd.Performance[id]
			if !ok {
				return nil, fmt.Errorf("club %q: missing multiplier for terrain %q", cd.ID, id)
			}
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("club %q: multiplier %v for terrain %q outside [0,1]", cd.ID, v, id)
			}
		}
		for id := range cd.Performance {
			if _, ok := terrains[id]; !ok {
				return nil, fmt.Errorf("club %q: unknown terrain %q", cd.ID, id)
			}
		}
		clubs = append(clubs, game.Club{
			ID:           cd.ID,
			Name:         cd.Name,
			BaseDistance: cd.BaseDistance,
			Loft:         cd.Loft,
			Putter:       cd.Putter,
			Performance:  cd.Performance,
		})
	}
	return game.NewClubSet(clubs), nil
}

func (f File) buildSkills() ([]game.Skill, error) {
	ids := make(map[string]bool, len(f.Skills))
	for _, sd := range f.Skills {
		if sd.ID == "" {
			return nil, fmt.Errorf("skill: missing id")
		}
		if ids[sd.ID] {
			return nil, fmt.Errorf("skill %q: duplicate id", sd.ID)
		}
		ids[sd.ID] = true
	}

	skills := make([]game.Skill, 0, len(f.Skills))
	for _, sd := range f.Skills {
		if sd.Cost <= 0 {
			return nil, fmt.Errorf("skill %q: cost must be positive", sd.ID)
		}
		if sd.Requires != "" && !ids[sd.Requires] {
			return nil, fmt.Errorf("skill %q: unknown prerequisite %q", sd.ID, sd.Requires)
		}
		if sd.Requires == sd.ID {
			return nil, fmt.Errorf("skill %q: requires itself", sd.ID)
		}
		var probe game.Stats
		if err := sd.Effect.Apply(&probe); err != nil {
			return nil, fmt.Errorf("skill %q: %w", sd.ID, err)
		}
		skills = append(skills, game.Skill{
			ID:          sd.ID,
			Name:        sd.Name,
			Description: sd.Description,
			Cost:        sd.Cost,
			Requires:    sd.Requires,
			Effect:      sd.Effect,
		})
	}
	return skills, nil
}

func (hd HoleDef) build(id int, terrains map[string]game.TerrainType) (*game.Hole, error) {
	if hd.Par <= 0 {
		return nil, fmt.Errorf("hole %d: par must be positive", id)
	}
	fallback, ok := terrains[hd.DefaultTerrain]
	if !ok {
		return nil, fmt.Errorf("hole %d: default terrain %q unknown", id, hd.DefaultTerrain)
	}

	defs := hd.Regions
	switch hd.Layout {
	case "":
	case LayoutStandard:
		defs = append(append([]RegionDef(nil), defs...), standardLayout(hd.Start, hd.Cup)...)
	default:
		return nil, fmt.Errorf("hole %d: unknown layout %q", id, hd.Layout)
	}

	regions := make([]game.Region, 0, len(defs))
	for i, rd := range defs {
		r, err := rd.build(terrains)
		if err != nil {
			return nil, fmt.Errorf("hole %d region %d: %w", id, i, err)
		}
		regions = append(regions, r)
	}

	h := &game.Hole{
		ID:             id,
		Par:            hd.Par,
		Start:          hd.Start,
		Cup:            hd.Cup,
		Regions:        regions,
		Fairway:        append([]game.Vec2(nil), hd.Fairway...),
		DefaultTerrain: fallback,
	}
	return h.Prepare(), nil
}

func (rd RegionDef) build(terrains map[string]game.TerrainType) (game.Region, error) {
	t, ok := terrains[rd.Terrain]
	if !ok {
		return game.Region{}, fmt.Errorf("unknown terrain %q", rd.Terrain)
	}

	set := 0
	for _, present := range []bool{rd.Rect != nil, rd.Ellipse != nil, rd.Polygon != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return game.Region{}, fmt.Errorf("terrain %q: exactly one of rect, ellipse, polygon required", rd.Terrain)
	}

	switch {
	case rd.Rect != nil:
		if len(rd.Rect) != 4 {
			return game.Region{}, fmt.Errorf("rect needs 4 numbers, got %d", len(rd.Rect))
		}
		return game.Region{Terrain: t, Shape: game.Rect{X: rd.Rect[0], Y: rd.Rect[1], W: rd.Rect[2], H: rd.Rect[3]}}, nil
	case rd.Ellipse != nil:
		if len(rd.Ellipse) != 4 {
			return game.Region{}, fmt.Errorf("ellipse needs 4 numbers, got %d", len(rd.Ellipse))
		}
		return game.Region{Terrain: t, Shape: game.Ellipse{CX: rd.Ellipse[0], CY: rd.Ellipse[1], RX: rd.Ellipse[2], RY: rd.Ellipse[3]}}, nil
	default:
		pts := make([]game.Vec2, len(rd.Polygon))
		for i, p := range rd.Polygon {
			if len(p) != 2 {
				return game.Region{}, fmt.Errorf("polygon point %d needs 2 numbers", i)
			}
			pts[i] = game.Vec2{X: p[0], Y: p[1]}
		}
		poly, err := game.NewPolygon(pts)
		if err != nil {
			return game.Region{}, err
		}
		return game.Region{Terrain: t, Shape: poly}, nil
	}
}

func standardLayout(tee, cup game.Vec2) []RegionDef {
	return []RegionDef{
		{Terrain: game.TerrainTeeBox, Rect: []float64{tee.X - 25, tee.Y - 10, 50, 20}},
		{Terrain: game.TerrainRough, Rect: []float64{0, 0, 280, 600}},
		{Terrain: game.TerrainRough, Rect: []float64{520, 0, 280, 600}},
		{Terrain: game.TerrainSand, Ellipse: []float64{450, 150, 40, 30}},
		{Terrain: game.TerrainGreen, Ellipse: []float64{cup.X, cup.Y + 10, 60, 30}},
		{Terrain: game.TerrainFairway, Rect: []float64{280, 0, 240, 600}},
	}
}
