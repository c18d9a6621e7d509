package redis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/playmatatu/fairway/internal/game"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// EventsChannel carries every session event except per-step ball frames.
const EventsChannel = "golf_events"

// PubClient is the part of *redis.Client used to announce events.
type PubClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// EventPublisher forwards session events to Redis pub/sub. Messages are queued
// and sent from one goroutine so a slow Redis never stalls a session.
type EventPublisher struct {
	client  PubClient
	channel string
	log     *logrus.Entry
	queue   chan []byte
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewEventPublisher(client PubClient, log *logrus.Entry) *EventPublisher {
	p := &EventPublisher{
		client:  client,
		channel: EventsChannel,
		log:     log,
		queue:   make(chan []byte, 512),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *EventPublisher) Publish(sessionID string, events []game.Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}

	for _, e := range events {
		if e.Type == game.EventBallMoved {
			continue
		}
		e.SessionID = sessionID
		payload, err := json.Marshal(e)
		if err != nil {
			p.log.WithError(err).WithField("type", e.Type).Error("Failed to encode event")
			continue
		}
		select {
		case p.queue <- payload:
		default:
			p.log.WithField("session_id", sessionID).Warn("Event queue full, dropping event")
		}
	}
}

func (p *EventPublisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *EventPublisher) run() {
	defer p.wg.Done()
	for payload := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
			p.log.WithError(err).Warn("Failed to publish event")
		}
		cancel()
	}
}
