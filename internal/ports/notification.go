package ports

import (
	"context"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

// NotificationStrategy delivers one message to one recipient over a channel.
type NotificationStrategy interface {
	Send(ctx context.Context, message, recipient string) error
}

// Notifier fans an event out to every registered channel.
type Notifier interface {
	Notify(ctx context.Context, ev domain.Event) (domain.DispatchReport, error)
}
