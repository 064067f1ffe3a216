package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/wheretodine/internal/models"
)

// EventPublisher публикует события пользовательской активности
// в exchange аналитики.
type EventPublisher struct {
	ch *amqp.Channel
}

// NewEventPublisher создает публикатор поверх открытого канала.
func NewEventPublisher(ch *amqp.Channel) *EventPublisher {
	return &EventPublisher{ch: ch}
}

// PublishListEvent отправляет событие изменения списка.
func (p *EventPublisher) PublishListEvent(event models.ListEvent) error {
	return PublishMessage(p.ch, ActivityExchange, "list", event)
}
