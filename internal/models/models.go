package models

import (
	"time"

	"github.com/playmatatu/fairway/internal/game"
)

// ShotRow is one settled shot as written to the telemetry store
type ShotRow struct {
	ID             int64     `db:"id" json:"id"`
	SessionID      string    `db:"session_id" json:"session_id"`
	HoleID         int       `db:"hole_id" json:"hole_id"`
	Stroke         int       `db:"stroke" json:"stroke"`
	ClubID         string    `db:"club_id" json:"club_id"`
	Power          float64   `db:"power" json:"power"`
	Accuracy       float64   `db:"accuracy" json:"accuracy"`
	Control        float64   `db:"control" json:"control"`
	Terrain        string    `db:"terrain" json:"terrain"`
	StartX         float64   `db:"start_x" json:"start_x"`
	StartY         float64   `db:"start_y" json:"start_y"`
	RestX          float64   `db:"rest_x" json:"rest_x"`
	RestY          float64   `db:"rest_y" json:"rest_y"`
	RestTerrain    string    `db:"rest_terrain" json:"rest_terrain"`
	DistanceToHole float64   `db:"distance_to_hole" json:"distance_to_hole"`
	Steps          int       `db:"steps" json:"steps"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// HoleResultRow is one completed hole
type HoleResultRow struct {
	ID           int64     `db:"id" json:"id"`
	SessionID    string    `db:"session_id" json:"session_id"`
	HoleID       int       `db:"hole_id" json:"hole_id"`
	Par          int       `db:"par" json:"par"`
	Strokes      int       `db:"strokes" json:"strokes"`
	Score        int       `db:"score" json:"score"`
	Label        string    `db:"label" json:"label"`
	XPGained     int       `db:"xp_gained" json:"xp_gained"`
	LevelsGained int       `db:"levels_gained" json:"levels_gained"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func NewShotRow(sessionID string, at time.Time, s game.ShotRecord) ShotRow {
	return ShotRow{
		SessionID:      sessionID,
		HoleID:         s.HoleID,
		Stroke:         s.Stroke,
		ClubID:         s.ClubID,
		Power:          s.Power,
		Accuracy:       s.Accuracy,
		Control:        s.Control,
		Terrain:        s.Terrain,
		StartX:         s.Start.X,
		StartY:         s.Start.Y,
		RestX:          s.Rest.X,
		RestY:          s.Rest.Y,
		RestTerrain:    s.RestTerrain,
		DistanceToHole: s.DistanceToHole,
		Steps:          s.Steps,
		CreatedAt:      at,
	}
}

func NewHoleResultRow(sessionID string, at time.Time, r game.HoleResult) HoleResultRow {
	return HoleResultRow{
		SessionID:    sessionID,
		HoleID:       r.HoleID,
		Par:          r.Par,
		Strokes:      r.Strokes,
		Score:        r.Score,
		Label:        r.Label,
		XPGained:     r.XPGained,
		LevelsGained: r.Levels,
		CreatedAt:    at,
	}
}
