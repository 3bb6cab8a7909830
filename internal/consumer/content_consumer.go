package consumer

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/greet-marketplace/service-bookings/internal/application"
	"github.com/greet-marketplace/service-bookings/internal/events"
	"github.com/greet-marketplace/service-bookings/internal/platform/kafka"
)

// bookingCompleter is the slice of the booking service the consumer needs.
type bookingCompleter interface {
	CompleteFromContent(ctx context.Context, bookingID uuid.UUID) (*application.BookingDTO, error)
}

// ContentEventConsumer listens to content events and completes bookings once
// the creator's collaboration content has been verified.
type ContentEventConsumer struct {
	consumer *kafka.Consumer
	service  bookingCompleter
	logger   *zap.Logger
}

// NewContentEventConsumer creates a new ContentEventConsumer.
func NewContentEventConsumer(
	brokers []string,
	groupID string,
	service *application.BookingService,
	logger *zap.Logger,
) *ContentEventConsumer {
	return &ContentEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, events.TopicContentEvents, logger),
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming content events. This blocks until the context is cancelled.
func (c *ContentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *ContentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *ContentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from content topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.ContentCollabVerified:
		return c.handleCollabVerified(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled content event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *ContentEventConsumer) handleCollabVerified(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.CollabVerifiedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse CollabVerifiedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing collab verified event",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("content_id", evt.ContentID.String()),
	)

	_, err := c.service.CompleteFromContent(ctx, evt.BookingID)
	if err != nil {
		c.logger.Error("failed to complete booking after content verification",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("booking completed after content verification",
		zap.String("booking_id", evt.BookingID.String()),
	)
	return nil
}
