// Package notification delivers domain events to the outside world on a
// fire-and-forget basis: dispatch never blocks the request path and a failed
// delivery is logged, never surfaced.
package notification

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

type envelope struct {
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   domain.Event `json:"payload"`
}

type Dispatcher struct {
	writer  *kafka.Writer
	timeout time.Duration
}

// NewDispatcher builds a Kafka-backed dispatcher. With no brokers configured
// events are logged and dropped, which keeps local runs broker-free.
func NewDispatcher(brokersCSV, topic string, timeout time.Duration) *Dispatcher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return &Dispatcher{timeout: timeout}
	}
	return &Dispatcher{
		timeout: timeout,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Dispatch hands the event to a detached goroutine and returns immediately.
// At-most-once: there is no retry and no result channel back to the caller.
func (d *Dispatcher) Dispatch(event domain.Event) error {
	go d.publish(event)
	return nil
}

func (d *Dispatcher) publish(event domain.Event) {
	entry := log.WithField("event", event.Type())

	if d.writer == nil {
		entry.Info("notification dropped, no brokers configured")
		return
	}

	data, err := json.Marshal(envelope{
		Type:      event.Type(),
		Timestamp: time.Now().UTC(),
		Payload:   event,
	})
	if err != nil {
		entry.WithError(err).Error("failed to encode notification")
		return
	}

	// Detached from the request context on purpose: the order is already
	// committed by the time this runs.
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	err = d.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventKey(event)),
		Value: data,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		entry.WithError(err).Error("failed to publish notification")
		return
	}
	entry.Info("notification published")
}

func (d *Dispatcher) Close() error {
	if d.writer == nil {
		return nil
	}
	return d.writer.Close()
}

// eventKey keeps every event of one order on one partition.
func eventKey(event domain.Event) string {
	switch e := event.(type) {
	case model.OrderPlaced:
		return e.OrderID.String()
	case model.OrderStatusChanged:
		return e.OrderID.String()
	default:
		return event.Type()
	}
}
