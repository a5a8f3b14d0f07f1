// Package notify delivers order events to administrators.
package notify

import (
	"context"

	"github.com/polkiloo/storefront/internal/adapter/expo"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// Notifier delivers an order event to one destination.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, event model.OrderEvent) error
}

// PushNotifier sends new order pushes to every admin device.
type PushNotifier struct {
	tokens repository.PushTokenRepository
	client expo.Client
}

func NewPushNotifier(tokens repository.PushTokenRepository, client expo.Client) *PushNotifier {
	return &PushNotifier{tokens: tokens, client: client}
}

func (n *PushNotifier) Name() string { return "expo" }

// Notify only reacts to created orders.
func (n *PushNotifier) Notify(ctx context.Context, event model.OrderEvent) error {
	if event.Type != model.EventOrderCreated {
		return nil
	}
	tokens, err := n.tokens.AdminTokens(ctx)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	return n.client.Send(ctx, expo.NewOrderMessages(tokens, event))
}
