package game

import "time"

// EventType names something the round wants observers to know about.
type EventType string

const (
	EventHoleLoaded     EventType = "hole_loaded"
	EventShotStarted    EventType = "shot_started"
	EventBallMoved      EventType = "ball_moved"
	EventShotSettled    EventType = "shot_settled"
	EventHazardPenalty  EventType = "hazard_penalty"
	EventUnusableClub   EventType = "unusable_club"
	EventHoleComplete   EventType = "hole_complete"
	EventRoundComplete  EventType = "round_complete"
	EventLevelUp        EventType = "level_up"
	EventSkillPurchased EventType = "skill_purchased"
	EventSessionClosed  EventType = "session_closed"
)

// Event is emitted by the round controller and drained by the session.
type Event struct {
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Time      time.Time   `json:"time"`
	Data      interface{} `json:"data,omitempty"`
}

// ShotRecord describes one settled shot.
type ShotRecord struct {
	HoleID         int     `json:"hole_id"`
	Stroke         int     `json:"stroke"`
	ClubID         string  `json:"club_id"`
	Power          float64 `json:"power"`
	Accuracy       float64 `json:"accuracy"`
	Control        float64 `json:"control"`
	Terrain        string  `json:"terrain"`
	Start          Vec2    `json:"start"`
	Rest           Vec2    `json:"rest"`
	RestTerrain    string  `json:"rest_terrain"`
	DistanceToHole float64 `json:"distance_to_hole"`
	Steps          int     `json:"steps"`
}

// HoleResult is recorded when a hole is holed out.
type HoleResult struct {
	HoleID   int    `json:"hole_id"`
	Par      int    `json:"par"`
	Strokes  int    `json:"strokes"`
	Score    int    `json:"score"`
	Label    string `json:"label"`
	XPGained int    `json:"xp_gained"`
	Levels   int    `json:"levels_gained"`
}

// RoundResult is recorded when the last hole completes.
type RoundResult struct {
	Scorecard []int `json:"scorecard"`
	Total     int   `json:"total"`
	Par       int   `json:"par"`
}

type LevelUp struct {
	Level       int `json:"level"`
	SkillPoints int `json:"skill_points"`
}
