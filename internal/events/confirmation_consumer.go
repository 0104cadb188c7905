package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/grandlux-hotels/service-reservation/internal/application"
	pkgdomain "github.com/grandlux-hotels/service-reservation/pkg/domain"
	"github.com/grandlux-hotels/service-reservation/pkg/kafka"
)

// ConfirmationConsumer listens to front-desk events and confirms pending
// reservations. This is the external trigger for the PENDING to CONFIRMED
// transition; the HTTP surface never drives it.
type ConfirmationConsumer struct {
	consumer *kafka.Consumer
	service  *application.ReservationService
	logger   *zap.Logger
}

// NewConfirmationConsumer creates a new ConfirmationConsumer.
func NewConfirmationConsumer(
	brokers []string,
	groupID string,
	service *application.ReservationService,
	logger *zap.Logger,
) *ConfirmationConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, application.TopicFrontdeskEvents, logger)
	return &ConfirmationConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming front-desk events. This blocks until the context is
// cancelled.
func (c *ConfirmationConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *ConfirmationConsumer) Close() error {
	return c.consumer.Close()
}

func (c *ConfirmationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from frontdesk topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case application.ReservationConfirmationRequested:
		return c.handleConfirmationRequested(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled frontdesk event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *ConfirmationConsumer) handleConfirmationRequested(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt application.ConfirmationRequestedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse ConfirmationRequestedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing confirmation request",
		zap.String("reservation_id", evt.ReservationID.String()),
		zap.String("confirmed_by", evt.ConfirmedBy),
	)

	_, err := c.service.ConfirmReservation(ctx, evt.ReservationID)
	if err != nil {
		// Unknown or already-terminal reservations are not retryable; drop
		// the message after logging.
		code := pkgdomain.CodeOf(err)
		if code == pkgdomain.CodeNotFound || code == pkgdomain.CodeInvalidState {
			c.logger.Warn("confirmation request dropped",
				zap.String("reservation_id", evt.ReservationID.String()),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to confirm reservation",
			zap.String("reservation_id", evt.ReservationID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("reservation confirmed from frontdesk event",
		zap.String("reservation_id", evt.ReservationID.String()),
	)
	return nil
}
