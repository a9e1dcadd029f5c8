package handler

import (
	"context"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/event"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/observability"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Emitter is the realtime side of the notifier. Satisfied by *hub.Hub.
type Emitter interface {
	EmitToUser(userID string, ev event.WsEvent)
	Broadcast(ev event.WsEvent)
}

// Notifier persists a notification and then pushes it to the recipient's
// personal room. The persisted document is the durable record; the push is
// best-effort and a failure on either half never fails the caller's request.
type Notifier struct {
	notifications repo.NotificationRepository
	emitter       Emitter
	logger        *zap.Logger
}

func NewNotifier(notifications repo.NotificationRepository, emitter Emitter, logger *zap.Logger) *Notifier {
	return &Notifier{
		notifications: notifications,
		emitter:       emitter,
		logger:        logger,
	}
}

// Notify stores the notification and pushes it live.
func (n *Notifier) Notify(ctx context.Context, userID primitive.ObjectID, title, message, ntype, link string) {
	created, err := n.notifications.Create(ctx, &model.Notification{
		User:    userID,
		Title:   title,
		Message: message,
		Type:    ntype,
		Link:    link,
	})
	if err != nil {
		n.logger.Error("failed to persist notification",
			zap.String("userId", userID.Hex()),
			zap.String("title", title),
			zap.Error(err),
		)
		return
	}

	ev, err := event.New(event.EventNewNotification, created)
	if err != nil {
		n.logger.Error("failed to encode notification event", zap.Error(err))
		return
	}
	n.emitter.EmitToUser(userID.Hex(), ev)
	observability.IncNotificationPushed()
}

// AnnounceConnection broadcasts an accepted edge so online clients can
// refresh their connection lists.
func (n *Notifier) AnnounceConnection(user1, user2 string) {
	ev, err := event.New(event.EventConnectionUpdate, event.ConnectionUpdatePayload{
		User1: user1,
		User2: user2,
	})
	if err != nil {
		n.logger.Error("failed to encode connection update", zap.Error(err))
		return
	}
	n.emitter.Broadcast(ev)
}
