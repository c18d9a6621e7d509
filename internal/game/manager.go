package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ManagerConfig is the template every new session is built from.
type ManagerConfig struct {
	Physics         PhysicsConfig
	SpinEnabled     bool
	AimAlongFairway bool
	WeatherSeed     int64 // 0 seeds each session from the clock
	TickInterval    time.Duration
	StartClub       string
}

// SessionManager keeps the live sessions keyed by id.
type SessionManager struct {
	course   *Course
	cfg      ManagerConfig
	sink     Sink
	log      *logrus.Entry
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewSessionManager(course *Course, cfg ManagerConfig, sink Sink, log *logrus.Entry) *SessionManager {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second / 30
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SessionManager{
		course:   course,
		cfg:      cfg,
		sink:     sink,
		log:      log.WithField("component", "sessions"),
		sessions: make(map[string]*Session),
	}
}

// Create starts a new round on hole 1 with a fresh profile.
func (m *SessionManager) Create() (*Session, error) {
	id := uuid.NewString()
	seed := m.cfg.WeatherSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	round, err := NewRoundController(m.course, RoundOptions{
		Physics:         m.cfg.Physics,
		SpinEnabled:     m.cfg.SpinEnabled,
		AimAlongFairway: m.cfg.AimAlongFairway,
		Weather:         NewWeatherGenerator(seed),
		StartClub:       m.cfg.StartClub,
		Logger:          m.log.WithField("session", id),
	})
	if err != nil {
		return nil, fmt.Errorf("create round: %w", err)
	}

	s := newSession(id, round, m.sink, m.cfg.TickInterval, m.log)
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	go s.run()
	m.log.WithField("session", id).Info("session created")
	return s, nil
}

func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// End stops and forgets a session.
func (m *SessionManager) End(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	m.publishClosed(id, "ended")
	m.log.WithField("session", id).Info("session ended")
	return nil
}

// ExpireIdle ends sessions with no player command for maxIdle and returns the count.
func (m *SessionManager) ExpireIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	var expired []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
		m.publishClosed(s.ID, "idle")
	}
	return len(expired)
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown stops every session.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
	m.log.WithField("count", len(all)).Info("sessions stopped")
}

func (m *SessionManager) publishClosed(id, reason string) {
	if m.sink == nil {
		return
	}
	m.sink.Publish(id, []Event{{
		Type:      EventSessionClosed,
		SessionID: id,
		Time:      time.Now(),
		Data:      map[string]string{"reason": reason},
	}})
}
