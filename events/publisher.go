package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"catering-api/logger"

	"github.com/rabbitmq/amqp091-go"
)

const (
	OrderPlaced   = "order.placed"
	OrderModified = "order.modified"

	Exchange = "orders_fanout"
)

type Event struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	CustomerID uint      `json:"customer_id"`
	CateringID uint      `json:"catering_id"`
	MenuID     uint      `json:"menu_id"`
	TotalCost  float64   `json:"total_cost"`
	OrderCount int       `json:"order_count"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Bus is the process-wide publisher. It stays a no-op unless Init
// connects to a broker.
var Bus Publisher = Noop{}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// AMQPPublisher publishes order events as persistent JSON messages
// to a durable fanout exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx, p.exchange, e.Type, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    e.OccurredAt,
		Type:         e.Type,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	return p.conn.Close()
}

// Init connects Bus to the broker at url. An empty url or a failed
// connection leaves the no-op publisher in place.
func Init(url string) {
	if url == "" {
		logger.Default.Info("amqp_init", "", "AMQP_URL not set, order events disabled")
		return
	}
	pub, err := NewAMQPPublisher(url, Exchange)
	if err != nil {
		logger.Default.Warn("amqp_init", "", "broker unavailable, order events disabled",
			slog.String("error", err.Error()))
		return
	}
	Bus = pub
	logger.Default.Info("amqp_init", "", "publishing order events", slog.String("exchange", Exchange))
}

// Emit publishes on Bus and logs instead of failing the caller's request.
func Emit(ctx context.Context, requestID string, e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if err := Bus.Publish(ctx, e); err != nil {
		logger.Default.Error("order_event", requestID, "failed to publish order event", err,
			slog.String("type", e.Type), slog.Uint64("order_id", uint64(e.OrderID)))
	}
}
