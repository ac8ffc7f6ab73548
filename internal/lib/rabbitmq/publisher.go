// Package rabbitmq публикует события маркетплейса (оплаченные покупки,
// активации подписок) в RabbitMQ для внешних потребителей — рассылок
// и аналитики. Публикация не участвует в транзакциях хранилища.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Routing-ключи публикуемых событий.
const (
	RoutingKeyPdfPurchased          = "pdf.purchased"
	RoutingKeySubscriptionActivated = "subscription.activated"
)

// Event — конверт события для брокера.
type Event struct {
	UserUID   string    `json:"user_uid"`
	Subject   string    `json:"subject"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher держит соединение и канал к RabbitMQ.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// Connect открывает соединение, канал и объявляет topic-exchange.
func Connect(url, exchange string) (*Publisher, error) {
	const op = "rabbitmq.Connect"
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish отправляет событие с указанным routing-ключом.
func (p *Publisher) Publish(routingKey string, event Event) error {
	const op = "rabbitmq.Publish"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() {
	_ = p.ch.Close()
	_ = p.conn.Close()
}
