package push

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukerupert/listkeep/internal/model"
)

// SubscriptionStore is the subset of subscription persistence the
// notifier needs.
type SubscriptionStore interface {
	List() ([]model.PushSubscription, error)
	DeleteByEndpoint(endpoint string) error
}

// Notifier fans notifications out to every registered subscription and
// prunes endpoints the push service reports as gone.
type Notifier struct {
	service *Service
	store   SubscriptionStore
	logger  *slog.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(service *Service, store SubscriptionStore, logger *slog.Logger) *Notifier {
	return &Notifier{service: service, store: store, logger: logger}
}

// NotifyItemAdded tells subscribers an item landed on a list.
// Failures are logged, never surfaced; notifications are best effort.
func (n *Notifier) NotifyItemAdded(itemName, listName string) {
	n.broadcast(Payload{
		Title: "Shopping List Updated",
		Body:  fmt.Sprintf("%s was added to %s", itemName, listName),
		URL:   "/lists",
		Tag:   "item-added",
	})
}

func (n *Notifier) broadcast(payload Payload) {
	subs, err := n.store.List()
	if err != nil {
		n.logger.Error("list push subscriptions", "error", err)
		return
	}

	for _, sub := range subs {
		if err := n.service.Send(&sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if err := n.store.DeleteByEndpoint(sub.Endpoint); err != nil {
					n.logger.Error("prune expired subscription", "error", err)
				}
				continue
			}
			n.logger.Error("send push notification", "error", err, "endpoint", sub.Endpoint)
		}
	}
}
