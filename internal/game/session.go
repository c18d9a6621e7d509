package game

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Sink receives the events a session produces, in order.
type Sink interface {
	Publish(sessionID string, events []Event)
}

// Sinks fans events out to several sinks.
type Sinks []Sink

func (s Sinks) Publish(sessionID string, events []Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Publish(sessionID, events)
		}
	}
}

type command struct {
	fn    func(*RoundController)
	reply chan struct{}
}

// Session owns one RoundController on its own goroutine. Player actions and
// clock ticks are applied one at a time, so the round needs no locking.
type Session struct {
	ID        string
	CreatedAt time.Time

	round      *RoundController
	sink       Sink
	tick       time.Duration
	log        *logrus.Entry
	cmds       chan command
	stop       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
	lastActive atomic.Int64
}

func newSession(id string, round *RoundController, sink Sink, tick time.Duration, log *logrus.Entry) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		round:     round,
		sink:      sink,
		tick:      tick,
		log:       log.WithField("session", id),
		cmds:      make(chan command),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	s.touch()
	return s
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive is the time of the last player command.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.flush()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.round.Tick()
			s.flush()
		case c := <-s.cmds:
			c.fn(s.round)
			s.flush()
			close(c.reply)
		}
	}
}

func (s *Session) flush() {
	events := s.round.DrainEvents()
	if len(events) == 0 || s.sink == nil {
		return
	}
	for i := range events {
		events[i].SessionID = s.ID
	}
	s.sink.Publish(s.ID, events)
}

// do runs fn on the session goroutine and waits for it.
func (s *Session) do(ctx context.Context, fn func(*RoundController)) error {
	c := command{fn: fn, reply: make(chan struct{})}
	select {
	case s.cmds <- c:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	s.touch()
	select {
	case <-c.reply:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

func (s *Session) Advance(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var actionErr error
	err := s.do(ctx, func(r *RoundController) {
		actionErr = r.Advance()
		snap = r.Snapshot()
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, actionErr
}

func (s *Session) SelectClub(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	var actionErr error
	err := s.do(ctx, func(r *RoundController) {
		actionErr = r.SelectClub(id)
		snap = r.Snapshot()
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, actionErr
}

func (s *Session) PurchaseSkill(ctx context.Context, id string) (Skill, Snapshot, error) {
	var skill Skill
	var snap Snapshot
	var actionErr error
	err := s.do(ctx, func(r *RoundController) {
		skill, actionErr = r.PurchaseSkill(id)
		snap = r.Snapshot()
	})
	if err != nil {
		return Skill{}, Snapshot{}, err
	}
	return skill, snap, actionErr
}

func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.do(ctx, func(r *RoundController) { snap = r.Snapshot() })
	return snap, err
}

func (s *Session) Clubs(ctx context.Context) ([]ClubView, error) {
	var clubs []ClubView
	err := s.do(ctx, func(r *RoundController) { clubs = r.Clubs() })
	return clubs, err
}

func (s *Session) Skills(ctx context.Context) ([]SkillView, error) {
	var skills []SkillView
	err := s.do(ctx, func(r *RoundController) { skills = r.Skills() })
	return skills, err
}

// Close stops the session goroutine and waits for it to exit.
func (s *Session) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Done is closed once the session goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
