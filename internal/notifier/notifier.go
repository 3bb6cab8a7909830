package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greet-marketplace/service-bookings/internal/domain/booking"
	"github.com/greet-marketplace/service-bookings/internal/events"
	"github.com/greet-marketplace/service-bookings/internal/platform/kafka"
)

const eventSource = "service-bookings"

// Notifier emits exactly one fire-and-forget domain event per valid booking
// transition. Delivery is best-effort: implementations must never surface
// enqueue failures to the caller.
type Notifier interface {
	BookingCreated(ctx context.Context, bk *booking.Booking)
	BookingApproved(ctx context.Context, bk *booking.Booking, approvedBy uuid.UUID)
	BookingDeclined(ctx context.Context, bk *booking.Booking, declinedBy uuid.UUID)
	BookingCanceled(ctx context.Context, bk *booking.Booking, canceledBy uuid.UUID)
	BookingRedeemed(ctx context.Context, bk *booking.Booking)
	BookingCompleted(ctx context.Context, bk *booking.Booking)
}

// KafkaNotifier publishes booking events to the booking.events topic.
type KafkaNotifier struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewKafkaNotifier creates a Notifier backed by the given Kafka producer.
func NewKafkaNotifier(producer *kafka.Producer, logger *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, logger: logger}
}

// BookingCreated emits a booking.created event.
func (n *KafkaNotifier) BookingCreated(ctx context.Context, bk *booking.Booking) {
	n.publish(ctx, events.BookingCreated, events.BookingCreatedEvent{
		Booking:    events.NewBookingSnapshot(bk),
		OccurredAt: time.Now().UTC(),
	})
}

// BookingApproved emits a booking.approved event.
func (n *KafkaNotifier) BookingApproved(ctx context.Context, bk *booking.Booking, approvedBy uuid.UUID) {
	n.publish(ctx, events.BookingApproved, events.BookingApprovedEvent{
		Booking:    events.NewBookingSnapshot(bk),
		ApprovedBy: approvedBy,
		OccurredAt: time.Now().UTC(),
	})
}

// BookingDeclined emits a booking.declined event.
func (n *KafkaNotifier) BookingDeclined(ctx context.Context, bk *booking.Booking, declinedBy uuid.UUID) {
	n.publish(ctx, events.BookingDeclined, events.BookingDeclinedEvent{
		Booking:    events.NewBookingSnapshot(bk),
		DeclinedBy: declinedBy,
		OccurredAt: time.Now().UTC(),
	})
}

// BookingCanceled emits a booking.canceled event.
func (n *KafkaNotifier) BookingCanceled(ctx context.Context, bk *booking.Booking, canceledBy uuid.UUID) {
	n.publish(ctx, events.BookingCanceled, events.BookingCanceledEvent{
		Booking:    events.NewBookingSnapshot(bk),
		CanceledBy: canceledBy,
		OccurredAt: time.Now().UTC(),
	})
}

// BookingRedeemed emits a booking.redeemed event.
func (n *KafkaNotifier) BookingRedeemed(ctx context.Context, bk *booking.Booking) {
	n.publish(ctx, events.BookingRedeemed, events.BookingRedeemedEvent{
		Booking:    events.NewBookingSnapshot(bk),
		OccurredAt: time.Now().UTC(),
	})
}

// BookingCompleted emits a booking.completed event.
func (n *KafkaNotifier) BookingCompleted(ctx context.Context, bk *booking.Booking) {
	n.publish(ctx, events.BookingCompleted, events.BookingCompletedEvent{
		Booking:    events.NewBookingSnapshot(bk),
		OccurredAt: time.Now().UTC(),
	})
}

func (n *KafkaNotifier) publish(ctx context.Context, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		n.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := n.producer.PublishEvent(ctx, events.TopicBookingEvents, cloudEvent); err != nil {
		n.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// NopNotifier discards all notifications. Wired in when notification
// dispatch is disabled by configuration.
type NopNotifier struct{}

// NewNopNotifier creates a Notifier that does nothing.
func NewNopNotifier() *NopNotifier { return &NopNotifier{} }

func (*NopNotifier) BookingCreated(context.Context, *booking.Booking)             {}
func (*NopNotifier) BookingApproved(context.Context, *booking.Booking, uuid.UUID) {}
func (*NopNotifier) BookingDeclined(context.Context, *booking.Booking, uuid.UUID) {}
func (*NopNotifier) BookingCanceled(context.Context, *booking.Booking, uuid.UUID) {}
func (*NopNotifier) BookingRedeemed(context.Context, *booking.Booking)            {}
func (*NopNotifier) BookingCompleted(context.Context, *booking.Booking)           {}
