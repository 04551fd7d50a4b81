package outbox

import (
	"Keyo/internal/logging"
	"Keyo/internal/metrics"
	"Keyo/internal/notifications"
	"Keyo/internal/repositories"
	"context"
)

type discardingDeliveryService struct{}

// NewDiscardingDeliveryService drops every message, counting it as a skipped
// delivery on its channel. Used when the queue mode is noop.
func NewDiscardingDeliveryService() DeliveryService {
	return &discardingDeliveryService{}
}

func (d *discardingDeliveryService) Deliver(_ context.Context, message *repositories.OutboxMessage) error {
	channel, ok := channelOf(message.Type())
	if ok {
		metrics.CountDelivery(string(channel), metrics.ResultSkipped)
	}

	logging.Logger.Debugw("discarding outbox message", "message_type", message.Type(), "message_id", message.Id())
	return nil
}

func channelOf(messageType repositories.OutboxMessageType) (notifications.Channel, bool) {
	switch messageType {
	case repositories.SendMailOutboxMessageType:
		return notifications.ChannelEmail, true
	case repositories.SendPushOutboxMessageType:
		return notifications.ChannelPush, true
	default:
		return "", false
	}
}
