package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"search-service/internal/contextkeys"
	"search-service/internal/contracts"
	"search-service/internal/core/port"
	"search-service/pkg/rabbitmq/rabbitmq_producer"
)

const (
	searchEventType    = "SearchExecutedEvent"
	searchEventVersion = "1.0.0"
)

// searchEventDTO is the wire shape of a search-executed event. It must stay
// in sync with contracts/events/search-executed/v1.json.
type searchEventDTO struct {
	EventID     string   `json:"event_id"`
	TraceID     string   `json:"trace_id,omitempty"`
	Category    string   `json:"category,omitempty"`
	Facets      []string `json:"facets,omitempty"`
	ResultCount int      `json:"result_count"`
	Page        int      `json:"page"`
	ExecutedAt  string   `json:"executed_at"`
}

// SearchEventReporterAdapter publishes search-executed events for the
// analytics pipeline.
type SearchEventReporterAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

func NewSearchEventReporterAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*SearchEventReporterAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &SearchEventReporterAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *SearchEventReporterAdapter) ReportSearch(ctx context.Context, event port.SearchEvent) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "SearchEventReporterAdapter",
		"routing_key": a.routingKey,
		"event_id":    event.EventID,
	})

	dto := searchEventDTO{
		EventID:     event.EventID,
		TraceID:     event.TraceID,
		Category:    event.Category,
		Facets:      event.Facets,
		ResultCount: event.ResultCount,
		Page:        event.Page,
		ExecutedAt:  event.ExecutedAt.UTC().Format(time.RFC3339Nano),
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal search event: %w", err)
	}

	// Validate the outgoing payload so consumers can trust the contract.
	if err := contracts.ValidateEvent(searchEventType, searchEventVersion, body); err != nil {
		return fmt.Errorf("rabbitmq adapter: search event rejected by schema: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		MessageId:    event.EventID,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"x-event-type":    searchEventType,
			"x-event-version": searchEventVersion,
		},
	}
	if event.TraceID != "" {
		msg.Headers["x-trace-id"] = event.TraceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		logger.Error("Failed to publish search event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish search event %s: %w", event.EventID, err)
	}

	logger.Debug("Published search event", port.Fields{"result_count": event.ResultCount})
	return nil
}
