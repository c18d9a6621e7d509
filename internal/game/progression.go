package game

import (
	"fmt"
	"math"
	"sort"
)

// StatKind names one of the player's permanent stats.
type StatKind string

const (
	StatPower    StatKind = "power"
	StatAccuracy StatKind = "accuracy"
	StatControl  StatKind = "control"
)

type Stats struct {
	Power    int `json:"power"`
	Accuracy int `json:"accuracy"`
	Control  int `json:"control"`
}

// StatEffect is a permanent addition to one stat.
type StatEffect struct {
	Stat   StatKind `json:"stat" yaml:"stat"`
	Amount int      `json:"amount" yaml:"amount"`
}

// Apply adds the effect to s.
func (e StatEffect) Apply(s *Stats) error {
	switch e.Stat {
	case StatPower:
		s.Power += e.Amount
	case StatAccuracy:
		s.Accuracy += e.Amount
	case StatControl:
		s.Control += e.Amount
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatKind, e.Stat)
	}
	return nil
}

// Skill is a purchasable node of the skill tree.
type Skill struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	Requires    string     `json:"requires,omitempty"`
	Effect      StatEffect `json:"effect"`
}

const (
	StartLevel     = 1
	StartThreshold = 100
	StartStat      = 10
	MinHoleXP      = 10
	BaseHoleXP     = 50
	XPPerStroke    = 10
	LevelGrowth    = 1.5
)

// PlayerProfile is the character progression state.
type PlayerProfile struct {
	Level       int             `json:"level"`
	Experience  int             `json:"experience"`
	XPToNext    int             `json:"xp_to_next"`
	SkillPoints int             `json:"skill_points"`
	Stats       Stats           `json:"stats"`
	Purchased   map[string]bool `json:"purchased"`
}

// HoleAward is what a completed hole earned.
type HoleAward struct {
	Score        int    `json:"score"`
	Label        string `json:"label"`
	XPGained     int    `json:"xp_gained"`
	LevelsGained int    `json:"levels_gained"`
}

// ProgressionEngine owns the profile and the skill tree.
type ProgressionEngine struct {
	profile PlayerProfile
	skills  map[string]Skill
	order   []string
}

func NewProfile() PlayerProfile {
	return PlayerProfile{
		Level:     StartLevel,
		XPToNext:  StartThreshold,
		Stats:     Stats{Power: StartStat, Accuracy: StartStat, Control: StartStat},
		Purchased: make(map[string]bool),
	}
}

func NewProgressionEngine(skills []Skill, profile PlayerProfile) *ProgressionEngine {
	e := &ProgressionEngine{
		profile: profile,
		skills:  make(map[string]Skill, len(skills)),
	}
	e.profile.Purchased = make(map[string]bool, len(profile.Purchased))
	for id, ok := range profile.Purchased {
		e.profile.Purchased[id] = ok
	}
	if e.profile.XPToNext <= 0 {
		e.profile.XPToNext = StartThreshold
	}
	if e.profile.Level < StartLevel {
		e.profile.Level = StartLevel
	}
	for _, s := range skills {
		if _, dup := e.skills[s.ID]; !dup {
			e.order = append(e.order, s.ID)
		}
		e.skills[s.ID] = s
	}
	return e
}

// Profile returns a copy of the current profile.
func (e *ProgressionEngine) Profile() PlayerProfile {
	p := e.profile
	p.Purchased = make(map[string]bool, len(e.profile.Purchased))
	for id, ok := range e.profile.Purchased {
		p.Purchased[id] = ok
	}
	return p
}

func (e *ProgressionEngine) Stats() Stats {
	return e.profile.Stats
}

// HoleXP is the experience earned for a score relative to par.
func HoleXP(score int) int {
	xp := BaseHoleXP - score*XPPerStroke
	if xp < MinHoleXP {
		return MinHoleXP
	}
	return xp
}

// AwardHole scores a completed hole and applies the experience.
func (e *ProgressionEngine) AwardHole(strokes, par int) HoleAward {
	score := strokes - par
	xp := HoleXP(score)
	return HoleAward{
		Score:        score,
		Label:        ScoreLabel(strokes, par),
		XPGained:     xp,
		LevelsGained: e.AddExperience(xp),
	}
}

// AddExperience adds xp and settles every level crossed. It returns the number of levels gained.
func (e *ProgressionEngine) AddExperience(xp int) int {
	if xp <= 0 {
		return 0
	}
	p := &e.profile
	p.Experience += xp
	gained := 0
	for p.Experience >= p.XPToNext {
		p.Experience -= p.XPToNext
		p.Level++
		p.XPToNext = int(math.Round(float64(p.XPToNext) * LevelGrowth))
		p.SkillPoints++
		gained++
	}
	return gained
}

// Purchase buys a skill. Nothing changes when it is rejected.
func (e *ProgressionEngine) Purchase(id string) (Skill, error) {
	s, ok := e.skills[id]
	if !ok {
		return Skill{}, fmt.Errorf("%w: %q", ErrUnknownSkill, id)
	}
	p := &e.profile
	if p.Purchased[id] {
		return Skill{}, fmt.Errorf("%w: %q", ErrSkillAlreadyPurchased, id)
	}
	if s.Requires != "" && !p.Purchased[s.Requires] {
		return Skill{}, fmt.Errorf("%w: %q needs %q", ErrSkillPrerequisite, id, s.Requires)
	}
	if p.SkillPoints < s.Cost {
		return Skill{}, fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientSkillPoints, id, s.Cost, p.SkillPoints)
	}

	stats := p.Stats
	if err := s.Effect.Apply(&stats); err != nil {
		return Skill{}, err
	}
	p.Stats = stats
	p.SkillPoints -= s.Cost
	p.Purchased[id] = true
	return s, nil
}

// SkillView is a skill with its availability for the current profile.
type SkillView struct {
	Skill
	Purchased bool `json:"purchased"`
	Available bool `json:"available"`
}

// Skills lists the tree in catalog order.
func (e *ProgressionEngine) Skills() []SkillView {
	out := make([]SkillView, 0, len(e.order))
	for _, id := range e.order {
		s := e.skills[id]
		bought := e.profile.Purchased[id]
		prereq := s.Requires == "" || e.profile.Purchased[s.Requires]
		out = append(out, SkillView{
			Skill:     s,
			Purchased: bought,
			Available: !bought && prereq && e.profile.SkillPoints >= s.Cost,
		})
	}
	return out
}

// PurchasedIDs returns the purchased skill ids sorted.
func (e *ProgressionEngine) PurchasedIDs() []string {
	ids := make([]string, 0, len(e.profile.Purchased))
	for id, ok := range e.profile.Purchased {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// ScoreLabel names a hole score relative to par.
func ScoreLabel(strokes, par int) string {
	if strokes == 1 {
		return "Hole in One"
	}
	switch diff := strokes - par; {
	case diff == -3:
		return "Albatross"
	case diff == -2:
		return "Eagle"
	case diff == -1:
		return "Birdie"
	case diff == 0:
		return "Par"
	case diff == 1:
		return "Bogey"
	case diff == 2:
		return "Double Bogey"
	case diff == 3:
		return "Triple Bogey"
	default:
		return fmt.Sprintf("%+d", diff)
	}
}
