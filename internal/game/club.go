package game

import (
	"fmt"
	"math"
)

// Club is one entry of the equipment catalog.
type Club struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	BaseDistance float64            `json:"base_distance"` // yards at full power, no modifiers
	Loft         float64            `json:"loft"`          // degrees above horizontal
	Putter       bool               `json:"putter"`
	Performance  map[string]float64 `json:"performance"` // terrain id -> multiplier in [0,1]
}

// PerformanceOn returns the multiplier for a terrain. Unknown terrains count as 0.
func (c Club) PerformanceOn(terrainID string) float64 {
	v, ok := c.Performance[terrainID]
	if !ok || v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (c Club) UsableOn(terrainID string) bool {
	return c.PerformanceOn(terrainID) > 0
}

func (c Club) LoftRadians() float64 {
	return c.Loft * math.Pi / 180
}

// ClubSet resolves club ids while keeping catalog order.
type ClubSet struct {
	order []string
	byID  map[string]Club
}

func NewClubSet(clubs []Club) *ClubSet {
	s := &ClubSet{byID: make(map[string]Club, len(clubs))}
	for _, c := range clubs {
		if _, dup := s.byID[c.ID]; !dup {
			s.order = append(s.order, c.ID)
		}
		s.byID[c.ID] = c
	}
	return s
}

func (s *ClubSet) Get(id string) (Club, error) {
	c, ok := s.byID[id]
	if !ok {
		return Club{}, fmt.Errorf("%w: %q", ErrUnknownClub, id)
	}
	return c, nil
}

func (s *ClubSet) All() []Club {
	out := make([]Club, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// UsableOn lists the clubs that can be played from the given terrain.
func (s *ClubSet) UsableOn(terrainID string) []Club {
	var out []Club
	for _, id := range s.order {
		if c := s.byID[id]; c.UsableOn(terrainID) {
			out = append(out, c)
		}
	}
	return out
}

func (s *ClubSet) Len() int {
	return len(s.order)
}
