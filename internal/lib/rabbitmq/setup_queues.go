package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// QueueConfig описывает очередь и ключ маршрутизации для оповещений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAlertQueues возвращает очереди оповещений безопасности.
func GetAlertQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "alerts.critical", RoutingKey: "critical"},
	}
}

// SetupExchangeAndQueues объявляет exchange и привязывает к нему очереди оповещений.
func SetupExchangeAndQueues(ch *amqp.Channel, exchange string, queues []QueueConfig) error {
	const op = "rabbitmq.SetupExchangeAndQueues"
	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
