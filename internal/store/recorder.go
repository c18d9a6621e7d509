package store

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/playmatatu/fairway/internal/game"
	"github.com/playmatatu/fairway/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	insertShot = `INSERT INTO shots (session_id, hole_id, stroke, club_id, power, accuracy, control,
		terrain, start_x, start_y, rest_x, rest_y, rest_terrain, distance_to_hole, steps, created_at)
		VALUES (:session_id, :hole_id, :stroke, :club_id, :power, :accuracy, :control,
		:terrain, :start_x, :start_y, :rest_x, :rest_y, :rest_terrain, :distance_to_hole, :steps, :created_at)`

	insertHoleResult = `INSERT INTO hole_results (session_id, hole_id, par, strokes, score, label,
		xp_gained, levels_gained, created_at)
		VALUES (:session_id, :hole_id, :par, :strokes, :score, :label, :xp_gained, :levels_gained, :created_at)`

	writeTimeout = 5 * time.Second
	queueSize    = 1024
)

// NamedExecer is the slice of *sqlx.DB the recorder writes through.
type NamedExecer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// Recorder persists settled shots and completed holes. It implements game.Sink;
// Publish never blocks the session that calls it, rows are written by a single
// background writer and dropped with a warning if the queue is full.
type Recorder struct {
	db    NamedExecer
	log   *logrus.Entry
	queue chan interface{}
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewRecorder(db NamedExecer, log *logrus.Entry) *Recorder {
	r := &Recorder{
		db:    db,
		log:   log,
		queue: make(chan interface{}, queueSize),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

func (r *Recorder) Publish(sessionID string, events []game.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	for _, e := range events {
		var row interface{}
		switch data := e.Data.(type) {
		case game.ShotRecord:
			if e.Type != game.EventShotSettled {
				continue
			}
			row = models.NewShotRow(sessionID, e.Time, data)
		case game.HoleResult:
			row = models.NewHoleResultRow(sessionID, e.Time, data)
		default:
			continue
		}

		select {
		case r.queue <- row:
		default:
			r.log.WithField("session_id", sessionID).Warn("Telemetry queue full, dropping row")
		}
	}
}

// Close stops accepting rows and waits for queued ones to be written.
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for row := range r.queue {
		r.write(row)
	}
}

func (r *Recorder) write(row interface{}) {
	query := insertShot
	if _, ok := row.(models.HoleResultRow); ok {
		query = insertHoleResult
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		r.log.WithError(err).Error("Failed to write telemetry row")
	}
}
