package notification

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
)

const (
	EventSubscriptionCreated       = "subscription.created"
	EventSubscriptionStatusChanged = "subscription.status_changed"
)

// Event is the payload published for subscription lifecycle changes.
type Event struct {
	Type           string `json:"type"`
	SubscriptionID uint64 `json:"subscription_id"`
	ConsumerID     uint64 `json:"consumer_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	Status         string `json:"status"`
	OldStatus      string `json:"old_status,omitempty"`
	OccurredAt     string `json:"occurred_at"`
}

// Sink receives lifecycle events fire-and-forget: implementations log
// delivery failures and never surface them to the caller.
type Sink interface {
	SubscriptionCreated(ctx context.Context, subscription *entity.Subscription)
	SubscriptionStatusChanged(ctx context.Context, subscription *entity.Subscription, oldStatus string)
}

func newEvent(eventType string, subscription *entity.Subscription, oldStatus string) Event {
	return Event{
		Type:           eventType,
		SubscriptionID: subscription.ID,
		ConsumerID:     subscription.ConsumerID,
		RestaurantID:   subscription.RestaurantID,
		Status:         subscription.Status,
		OldStatus:      oldStatus,
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	}
}
