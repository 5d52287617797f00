package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/factory"
)

// KafkaSink publishes lifecycle events to a Kafka topic.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
	logger   logrus.FieldLogger
}

func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &KafkaSink{
		producer: producer,
		topic:    topic,
		logger:   factory.NewModuleLogger("notification-kafka"),
	}, nil
}

func (s *KafkaSink) SubscriptionCreated(_ context.Context, subscription *entity.Subscription) {
	s.publish(newEvent(EventSubscriptionCreated, subscription, ""))
}

func (s *KafkaSink) SubscriptionStatusChanged(_ context.Context, subscription *entity.Subscription, oldStatus string) {
	s.publish(newEvent(EventSubscriptionStatusChanged, subscription, oldStatus))
}

func (s *KafkaSink) publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).Error("Marshal notification event failed")
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Value: sarama.ByteEncoder(payload),
	}
	if _, _, err := s.producer.SendMessage(msg); err != nil {
		s.logger.WithError(err).WithField("event", event.Type).Error("Publish notification event failed")
	}
}

func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
