// Package notification turns progression events into in-app notifications.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/futebadosparcas/matchday/internal/domain"
	"github.com/futebadosparcas/matchday/internal/event"
	"github.com/futebadosparcas/matchday/internal/logger"
	"github.com/futebadosparcas/matchday/internal/repository"
)

// Notification types
const (
	TypeLevelUp         = "LEVEL_UP"
	TypeBadgeEarned     = "BADGE_EARNED"
	TypeDivisionChanged = "DIVISION_CHANGED"
)

const logMsgDecodeFailed = "Failed to decode notification event payload"

// Notifier writes one notification per progression event.
type Notifier struct {
	store repository.Notifications
	title cases.Caser
	now   func() time.Time
}

// NewNotifier creates a notifier backed by store.
func NewNotifier(store repository.Notifications) *Notifier {
	return &Notifier{
		store: store,
		title: cases.Title(language.BrazilianPortuguese),
		now:   time.Now,
	}
}

// Register subscribes the notifier to the progression events.
func (n *Notifier) Register(bus event.Bus) {
	bus.Subscribe(event.PlayerLeveledUp, n.HandleEvent)
	bus.Subscribe(event.BadgeEarned, n.HandleEvent)
	bus.Subscribe(event.DivisionChanged, n.HandleEvent)
}

// HandleEvent stores the notification for evt. Events of other types and
// undecodable payloads are ignored.
func (n *Notifier) HandleEvent(ctx context.Context, evt event.Event) error {
	notif, ok := n.build(ctx, evt)
	if !ok {
		return nil
	}
	if err := n.store.InsertNotifications(ctx, []domain.Notification{notif}); err != nil {
		return fmt.Errorf("failed to store %s notification: %w", notif.Type, err)
	}
	return nil
}

func (n *Notifier) build(ctx context.Context, evt event.Event) (domain.Notification, bool) {
	log := logger.FromContext(ctx)
	notif := domain.Notification{ID: uuid.NewString(), CreatedAt: n.now()}

	switch evt.Type {
	case event.PlayerLeveledUp:
		p, err := event.DecodePayload[event.PlayerLeveledUpPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(logMsgDecodeFailed, "type", evt.Type, "error", err)
			return notif, false
		}
		notif.UserID = p.UserID
		notif.Type = TypeLevelUp
		notif.Title = "Subiu de nível! 🎉"
		notif.Body = fmt.Sprintf("Parabéns! Você agora é %s!", p.LevelName)
		notif.Data = map[string]any{"game_id": p.GameID, "level": p.NewLevel}

	case event.BadgeEarned:
		p, err := event.DecodePayload[event.BadgeEarnedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(logMsgDecodeFailed, "type", evt.Type, "error", err)
			return notif, false
		}
		notif.UserID = p.UserID
		notif.Type = TypeBadgeEarned
		notif.Title = "Nova conquista! 🏅"
		notif.Body = fmt.Sprintf("Você ganhou a insígnia %s.", n.displayName(string(p.BadgeID)))
		if p.Count > 1 {
			notif.Body = fmt.Sprintf("Você ganhou a insígnia %s pela %dª vez.", n.displayName(string(p.BadgeID)), p.Count)
		}
		notif.Data = map[string]any{"game_id": p.GameID, "badge_id": string(p.BadgeID), "count": p.Count}

	case event.DivisionChanged:
		p, err := event.DecodePayload[event.DivisionChangedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(logMsgDecodeFailed, "type", evt.Type, "error", err)
			return notif, false
		}
		notif.UserID = p.UserID
		notif.Type = TypeDivisionChanged
		if p.Promoted {
			notif.Title = "Promovido! ⬆️"
			notif.Body = fmt.Sprintf("Você subiu para a divisão %s.", n.displayName(string(p.To)))
		} else {
			notif.Title = "Rebaixado ⬇️"
			notif.Body = fmt.Sprintf("Você caiu para a divisão %s.", n.displayName(string(p.To)))
		}
		notif.Data = map[string]any{"season_id": p.SeasonID, "from": string(p.From), "to": string(p.To)}

	default:
		return notif, false
	}

	return notif, notif.UserID != ""
}

// displayName turns an enum value like HAT_TRICK into "Hat Trick".
func (n *Notifier) displayName(raw string) string {
	return n.title.String(strings.ReplaceAll(raw, "_", " "))
}
