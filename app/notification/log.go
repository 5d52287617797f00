package notification

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/factory"
)

// LogSink writes lifecycle events to the service log. Used when no Kafka
// brokers are configured.
type LogSink struct {
	logger logrus.FieldLogger
}

func NewLogSink() *LogSink {
	return &LogSink{logger: factory.NewModuleLogger("notification-log")}
}

func (s *LogSink) SubscriptionCreated(_ context.Context, subscription *entity.Subscription) {
	s.log(newEvent(EventSubscriptionCreated, subscription, ""))
}

func (s *LogSink) SubscriptionStatusChanged(_ context.Context, subscription *entity.Subscription, oldStatus string) {
	s.log(newEvent(EventSubscriptionStatusChanged, subscription, oldStatus))
}

func (s *LogSink) log(event Event) {
	s.logger.WithFields(logrus.Fields{
		"event":           event.Type,
		"subscription_id": event.SubscriptionID,
		"status":          event.Status,
	}).Info("notification_event")
}
