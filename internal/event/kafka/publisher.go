package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
	"github.com/whitesvil1-lab/JustCani/internal/service"
)

// messageWriter часть kafka.Writer, которую использует publisher
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// publishTimeout ограничивает ожидание брокера: публикация идёт между пакетами checkout
const publishTimeout = 2 * time.Second

// CheckoutEventPublisher реализует service.CheckoutEventPublisher используя Kafka
type CheckoutEventPublisher struct {
	logger   *zap.Logger
	writer   messageWriter
	topic    string
	terminal string
	timeout  time.Duration
	now      func() time.Time
}

// NewCheckoutEventPublisher создаёт Kafka publisher событий checkout.
// terminal - идентификатор кассы, он же ключ сообщения
func NewCheckoutEventPublisher(logger *zap.Logger, brokers []string, topic, terminal string) *CheckoutEventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		// Одно событие на пакет: не ждём набора batch
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		WriteTimeout: publishTimeout,
	}
	return newCheckoutEventPublisher(logger, writer, topic, terminal)
}

func newCheckoutEventPublisher(logger *zap.Logger, writer messageWriter, topic, terminal string) *CheckoutEventPublisher {
	return &CheckoutEventPublisher{
		logger:   logger,
		writer:   writer,
		topic:    topic,
		terminal: terminal,
		timeout:  publishTimeout,
		now:      time.Now,
	}
}

// Close закрывает Kafka writer
func (p *CheckoutEventPublisher) Close() error {
	return p.writer.Close()
}

// checkoutLine позиция в payload события
type checkoutLine struct {
	SKU      model.SKU `json:"sku"`
	Name     string    `json:"name"`
	Qty      int       `json:"qty"`
	Price    string    `json:"price"`
	Subtotal string    `json:"subtotal"`
}

// checkoutCompletedPayload JSON события pos.checkout.completed
type checkoutCompletedPayload struct {
	EventID      string         `json:"event_id"`
	EventType    string         `json:"event_type"`
	EventVersion int            `json:"event_version"`
	OccurredAt   string         `json:"occurred_at"`
	Terminal     string         `json:"terminal"`
	Mode         model.Mode     `json:"mode"`
	Total        string         `json:"total"`
	Message      string         `json:"message"`
	Items        []checkoutLine `json:"items"`
}

// PublishCheckoutCompleted публикует событие успешно проведённого пакета
func (p *CheckoutEventPublisher) PublishCheckoutCompleted(ctx context.Context, event service.CheckoutCompletedEvent) error {
	payload := checkoutCompletedPayload{
		EventID:      uuid.New().String(),
		EventType:    "pos.checkout.completed",
		EventVersion: 1,
		OccurredAt:   p.now().UTC().Format(time.RFC3339),
		Terminal:     p.terminal,
		Mode:         event.Mode,
		// суммы строками, чтобы потребитель не терял точность
		Total:   event.Total.String(),
		Message: event.Message,
		Items:   make([]checkoutLine, 0, len(event.Items)),
	}
	for _, item := range event.Items {
		payload.Items = append(payload.Items, checkoutLine{
			SKU:      item.SKU,
			Name:     item.Name,
			Qty:      item.Qty,
			Price:    item.Price.String(),
			Subtotal: item.LineTotal().String(),
		})
	}

	valueBytes, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal checkout completed event", zap.Error(err))
		return err
	}

	message := kafka.Message{
		Key:   []byte(p.terminal),
		Value: valueBytes,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(payload.EventType)},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, message); err != nil {
		p.logger.Error("failed to publish checkout completed event",
			zap.Error(err),
			zap.String("topic", p.topic),
			zap.String("mode", string(event.Mode)),
		)
		return err
	}

	p.logger.Info("checkout completed event published",
		zap.String("topic", p.topic),
		zap.String("event_id", payload.EventID),
		zap.String("mode", string(event.Mode)),
		zap.String("total", payload.Total),
	)
	return nil
}
