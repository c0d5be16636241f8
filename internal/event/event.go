package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playventures/bizlab/internal/domain"
)

// EventSchemaVersion is the current version of the event envelope
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// GameCompletedPayloadV1 is the typed payload for game completion events
type GameCompletedPayloadV1 struct {
	UserID         string `json:"user_id"`
	BusinessID     string `json:"business_id"`
	GameType       string `json:"game_type"`
	CurrencyEarned int    `json:"currency_earned"`
	XPEarned       int    `json:"xp_earned"`
	Timestamp      int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level-up events
type LevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	XP       int64  `json:"xp"`
}

// ManagerHiredPayloadV1 is the typed payload for manager hire events
type ManagerHiredPayloadV1 struct {
	UserID     string `json:"user_id"`
	BusinessID string `json:"business_id"`
	Cost       int    `json:"cost"`
	Timestamp  int64  `json:"timestamp"`
}

// IncomeCollectedPayloadV1 is the typed payload for idle income collection events
type IncomeCollectedPayloadV1 struct {
	UserID     string `json:"user_id"`
	Collected  int    `json:"collected"`
	Businesses int    `json:"businesses"`
	Timestamp  int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewGameCompletedEvent creates a new game completed event
func NewGameCompletedEvent(userID, businessID, gameType string, currency, xp int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeGameCompleted),
		Payload: GameCompletedPayloadV1{
			UserID:         userID,
			BusinessID:     businessID,
			GameType:       gameType,
			CurrencyEarned: currency,
			XPEarned:       xp,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewLevelUpEvent creates a new level up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, xp int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeLevelUp),
		Payload: LevelUpPayloadV1{
			UserID:   userID,
			OldLevel: oldLevel,
			NewLevel: newLevel,
			XP:       xp,
		},
	}
}

// NewManagerHiredEvent creates a new manager hired event
func NewManagerHiredEvent(userID, businessID string, cost int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeManagerHired),
		Payload: ManagerHiredPayloadV1{
			UserID:     userID,
			BusinessID: businessID,
			Cost:       cost,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewIncomeCollectedEvent creates a new income collected event
func NewIncomeCollectedEvent(userID string, collected, businesses int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeIncomeCollected),
		Payload: IncomeCollectedPayloadV1{
			UserID:     userID,
			Collected:  collected,
			Businesses: businesses,
			Timestamp:  time.Now().Unix(),
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

// MemoryBus is an in-memory implementation of the Event Bus
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

// Publish publishes an event to all subscribers. Handlers run synchronously;
// handler errors are aggregated, not short-circuited.
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
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
