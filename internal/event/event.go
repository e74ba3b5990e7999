package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version    string         `json:"version"`
	Type       Type           `json:"type"`
	Payload    any            `json:"payload"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Event types published after a finalization commits
const (
	GameFinalized     Type = "game.finalized"
	PlayerLeveledUp   Type = "player.leveled_up"
	BadgeEarned       Type = "player.badge_earned"
	DivisionChanged   Type = "league.division_changed"
	MilestoneUnlocked Type = "player.milestone_unlocked"
)

// GameFinalizedPayloadV1 summarizes a committed finalization
type GameFinalizedPayloadV1 struct {
	GameID           string `json:"game_id"`
	PlayersProcessed int    `json:"players_processed"`
	Mutations        int    `json:"mutations"`
}

// PlayerLeveledUpPayloadV1 announces a level change
type PlayerLeveledUpPayloadV1 struct {
	UserID    string `json:"user_id"`
	GameID    string `json:"game_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	LevelName string `json:"level_name"`
}

// BadgeEarnedPayloadV1 announces a badge award
type BadgeEarnedPayloadV1 struct {
	UserID  string           `json:"user_id"`
	GameID  string           `json:"game_id"`
	BadgeID domain.BadgeType `json:"badge_id"`
	Count   int              `json:"count"`
}

// DivisionChangedPayloadV1 announces a promotion or relegation
type DivisionChangedPayloadV1 struct {
	UserID   string          `json:"user_id"`
	SeasonID string          `json:"season_id"`
	From     domain.Division `json:"from"`
	To       domain.Division `json:"to"`
	Promoted bool            `json:"promoted"`
}

// MilestoneUnlockedPayloadV1 announces milestone rewards
type MilestoneUnlockedPayloadV1 struct {
	UserID     string   `json:"user_id"`
	GameID     string   `json:"game_id"`
	Milestones []string `json:"milestones"`
	XPReward   int64    `json:"xp_reward"`
}

func newEvent(t Type, payload any) Event {
	return Event{
		Version:    EventSchemaVersion,
		Type:       t,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// NewGameFinalizedEvent creates a game finalized event
func NewGameFinalizedEvent(gameID string, players, mutations int) Event {
	return newEvent(GameFinalized, GameFinalizedPayloadV1{
		GameID:           gameID,
		PlayersProcessed: players,
		Mutations:        mutations,
	})
}

// NewPlayerLeveledUpEvent creates a level up event
func NewPlayerLeveledUpEvent(userID, gameID string, oldLevel, newLevel int, levelName string) Event {
	return newEvent(PlayerLeveledUp, PlayerLeveledUpPayloadV1{
		UserID:    userID,
		GameID:    gameID,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LevelName: levelName,
	})
}

// NewBadgeEarnedEvent creates a badge earned event
func NewBadgeEarnedEvent(userID, gameID string, badge domain.BadgeType, count int) Event {
	return newEvent(BadgeEarned, BadgeEarnedPayloadV1{
		UserID:  userID,
		GameID:  gameID,
		BadgeID: badge,
		Count:   count,
	})
}

// NewDivisionChangedEvent creates a division change event
func NewDivisionChangedEvent(userID, seasonID string, from, to domain.Division, promoted bool) Event {
	return newEvent(DivisionChanged, DivisionChangedPayloadV1{
		UserID:   userID,
		SeasonID: seasonID,
		From:     from,
		To:       to,
		Promoted: promoted,
	})
}

// NewMilestoneUnlockedEvent creates a milestone event
func NewMilestoneUnlockedEvent(userID, gameID string, milestones []string, reward int64) Event {
	return newEvent(MilestoneUnlocked, MilestoneUnlockedPayloadV1{
		UserID:     userID,
		GameID:     gameID,
		Milestones: milestones,
		XPReward:   reward,
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus publishes events and dispatches them to subscribers
type Bus interface {
	Publisher
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

// Publish runs every subscriber of the event type synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	handlers := b.Handlers(event.Type)

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Handlers returns a copy of the subscribers of an event type
func (b *MemoryBus) Handlers(eventType Type) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Handler(nil), b.handlers[eventType]...)
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
