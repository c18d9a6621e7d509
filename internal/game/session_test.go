package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Publish(_ string, events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
}

func (s *recordingSink) types() []EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return eventTypes(s.events)
}

func newTestManager(sink Sink, course *Course) *SessionManager {
	return NewSessionManager(course, ManagerConfig{
		WeatherSeed:  1,
		TickInterval: time.Millisecond,
		StartClub:    "P",
	}, sink, quietLogger())
}

func TestSessionPlaysAHole(t *testing.T) {
	sink := &recordingSink{}
	m := newTestManager(sink, testCourse(puttingHole(1), puttingHole(2)))
	defer m.Shutdown()

	s, err := m.Create()
	require.NoError(t, err)
	ctx := context.Background()

	snap, err := s.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusAwaitingPower, snap.Status.Kind)

	// Let the power meter run, then catch power and accuracy.
	time.Sleep(20 * time.Millisecond)
	_, err = s.Advance(ctx)
	require.NoError(t, err)
	snap, err = s.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Strokes)

	require.Eventually(t, func() bool {
		snap, err := s.Snapshot(ctx)
		return err == nil && snap.Ball.Moving == false && snap.Status.Kind != StatusInFlight
	}, 5*time.Second, 5*time.Millisecond)

	types := sink.types()
	assert.Contains(t, types, EventHoleLoaded)
	assert.Contains(t, types, EventShotStarted)
	assert.Contains(t, types, EventShotSettled)

	sink.mu.Lock()
	for _, e := range sink.events {
		assert.Equal(t, s.ID, e.SessionID)
	}
	sink.mu.Unlock()
}

func TestSessionCommands(t *testing.T) {
	m := newTestManager(nil, testCourse(straightHole(1)))
	defer m.Shutdown()
	s, err := m.Create()
	require.NoError(t, err)
	ctx := context.Background()

	snap, err := s.SelectClub(ctx, "7I")
	require.NoError(t, err)
	assert.Equal(t, "7I", snap.Club)

	_, err = s.SelectClub(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownClub)

	clubs, err := s.Clubs(ctx)
	require.NoError(t, err)
	assert.Len(t, clubs, 3)

	skills, err := s.Skills(ctx)
	require.NoError(t, err)
	assert.Len(t, skills, 3)

	_, _, err = s.PurchaseSkill(ctx, "power1")
	assert.ErrorIs(t, err, ErrInvalidSkillPurchase)
}

func TestManagerGetAndEnd(t *testing.T) {
	sink := &recordingSink{}
	m := newTestManager(sink, testCourse(straightHole(1)))
	defer m.Shutdown()

	s, err := m.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.End(s.ID))
	assert.Zero(t, m.Count())
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.End(s.ID), ErrSessionNotFound)

	_, err = s.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Contains(t, sink.types(), EventSessionClosed)
}

func TestManagerExpireIdle(t *testing.T) {
	m := newTestManager(nil, testCourse(straightHole(1)))
	defer m.Shutdown()

	stale, err := m.Create()
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	fresh, err := m.Create()
	require.NoError(t, err)

	assert.Equal(t, 1, m.ExpireIdle(20*time.Millisecond))
	_, err = m.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)

	select {
	case <-stale.Done():
	default:
		t.Fatal("expired session still running")
	}
}

func TestIdleWorkerExpiresSessions(t *testing.T) {
	m := newTestManager(nil, testCourse(straightHole(1)))
	defer m.Shutdown()
	_, err := m.Create()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartIdleWorker(ctx, m, 5*time.Millisecond, 10*time.Millisecond, quietLogger())

	require.Eventually(t, func() bool { return m.Count() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestSessionRespectsContext(t *testing.T) {
	m := newTestManager(nil, testCourse(straightHole(1)))
	s, err := m.Create()
	require.NoError(t, err)
	m.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Advance(ctx)
	assert.Error(t, err)
}
