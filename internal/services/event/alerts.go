package services

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
)

// AmqpAlertPublisher публикует оповещения о критичных событиях в RabbitMQ.
type AmqpAlertPublisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewAmqpAlertPublisher создает издателя оповещений поверх открытого канала.
func NewAmqpAlertPublisher(ch *amqp.Channel, exchange string) *AmqpAlertPublisher {
	return &AmqpAlertPublisher{
		ch:       ch,
		exchange: exchange,
	}
}

// PublishAlert отправляет событие в очередь критичных оповещений.
func (p *AmqpAlertPublisher) PublishAlert(entry *models.AttackLog) error {
	return rabbitmq.PublishMessage(p.ch, p.exchange, "critical", entry)
}
