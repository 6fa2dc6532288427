// setup.go
package rabbit

import (
	"go.uber.org/zap"

	"github.com/rabbitmq/amqp091-go"
)

// SetupConsumers wires the order_updated fanout exchange into the consumer.
// Broker trouble here is logged and leaves the service running on manual
// refresh only; it is never fatal.
func SetupConsumers(ch *amqp091.Channel, consumer *OrderUpdateConsumer, log *zap.Logger) {
	q, err := ch.QueueDeclare(
		"order_tracking_updates", // queue owned by this service
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Error("failed to declare queue", zap.Error(err))
		return
	}

	err = ch.QueueBind(
		q.Name,
		"",              // fanout ignores the routing key
		"order_updated", // exchange published by the fulfillment backend
		false,
		nil,
	)
	if err != nil {
		log.Error("failed to bind exchange", zap.Error(err))
		return
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Error("failed to consume queue", zap.Error(err))
		return
	}

	go func() {
		for m := range msgs {
			consumer.Handle(m.Body)
		}
	}()

	log.Info("subscribed to order_updated exchange", zap.String("queue", q.Name))
}
