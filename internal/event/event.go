package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Outbound notification types consumed by the transport layer. The
// core has no knowledge of how they are rendered.
const (
	PredictionRecorded Type = "prediction.recorded"
	PredictionCleared  Type = "prediction.cleared"
	ResultSettled      Type = "result.settled"
	ResultCleared      Type = "result.cleared"
	BonusRecorded      Type = "bonus.recorded"
	BonusFinalized     Type = "bonus.finalized"
	StandingsUpdated   Type = "standings.updated"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// PredictionRecordedPayloadV1 notifies that a user's prediction was
// stored or replaced
type PredictionRecordedPayloadV1 struct {
	UserID    int64     `json:"user_id"`
	MatchID   uuid.UUID `json:"match_id"`
	Winner    string    `json:"winner"`
	Scoreline string    `json:"scoreline"`
	Timestamp int64     `json:"timestamp"`
}

// PredictionClearedPayloadV1 notifies that a user retracted their
// prediction for a match
type PredictionClearedPayloadV1 struct {
	UserID    int64     `json:"user_id"`
	MatchID   uuid.UUID `json:"match_id"`
	Timestamp int64     `json:"timestamp"`
}

// ResultSettledPayloadV1 notifies that a match result was recorded and
// every stored prediction scored
type ResultSettledPayloadV1 struct {
	MatchID   uuid.UUID     `json:"match_id"`
	Winner    string        `json:"winner"`
	Scoreline string        `json:"scoreline"`
	Awarded   map[int64]int `json:"awarded"`
	Timestamp int64         `json:"timestamp"`
}

// ResultClearedPayloadV1 notifies that results for a whole period were
// undone and their awards reversed
type ResultClearedPayloadV1 struct {
	Period    int   `json:"period"`
	Timestamp int64 `json:"timestamp"`
}

// BonusRecordedPayloadV1 notifies that a user's bonus answer set changed
type BonusRecordedPayloadV1 struct {
	UserID     int64     `json:"user_id"`
	QuestionID uuid.UUID `json:"question_id"`
	Selections []string  `json:"selections"`
	Timestamp  int64     `json:"timestamp"`
}

// BonusFinalizedPayloadV1 notifies that a bonus question was scored
type BonusFinalizedPayloadV1 struct {
	QuestionID     uuid.UUID     `json:"question_id"`
	CorrectAnswers []string      `json:"correct_answers"`
	Awarded        map[int64]int `json:"awarded"`
	Timestamp      int64         `json:"timestamp"`
}

// StandingsUpdatedPayloadV1 carries the freshly computed ranking
type StandingsUpdatedPayloadV1 struct {
	Ranking   []domain.Standing `json:"ranking"`
	Timestamp int64             `json:"timestamp"`
}

// Type-safe event constructors

// NewPredictionRecordedEvent creates a prediction recorded event
func NewPredictionRecordedEvent(p *domain.Prediction) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PredictionRecorded,
		Payload: PredictionRecordedPayloadV1{
			UserID:    p.UserID,
			MatchID:   p.MatchID,
			Winner:    p.Winner,
			Scoreline: p.Scoreline,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPredictionClearedEvent creates a prediction cleared event
func NewPredictionClearedEvent(userID int64, matchID uuid.UUID) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PredictionCleared,
		Payload: PredictionClearedPayloadV1{
			UserID:    userID,
			MatchID:   matchID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewResultClearedEvent creates a result cleared event
func NewResultClearedEvent(period int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ResultCleared,
		Payload: ResultClearedPayloadV1{
			Period:    period,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewResultSettledEvent creates a result settled event
func NewResultSettledEvent(matchID uuid.UUID, winner, scoreline string, awarded map[int64]int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ResultSettled,
		Payload: ResultSettledPayloadV1{
			MatchID:   matchID,
			Winner:    winner,
			Scoreline: scoreline,
			Awarded:   awarded,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewBonusRecordedEvent creates a bonus answer recorded event
func NewBonusRecordedEvent(a *domain.BonusAnswer) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BonusRecorded,
		Payload: BonusRecordedPayloadV1{
			UserID:     a.UserID,
			QuestionID: a.QuestionID,
			Selections: a.Selections,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewBonusFinalizedEvent creates a bonus finalized event
func NewBonusFinalizedEvent(questionID uuid.UUID, correct []string, awarded map[int64]int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BonusFinalized,
		Payload: BonusFinalizedPayloadV1{
			QuestionID:     questionID,
			CorrectAnswers: correct,
			Awarded:        awarded,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewStandingsUpdatedEvent creates a standings updated event
func NewStandingsUpdatedEvent(ranking []domain.Standing) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StandingsUpdated,
		Payload: StandingsUpdatedPayloadV1{
			Ranking:   ranking,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the event bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
