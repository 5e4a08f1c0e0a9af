package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/pos/internal/domain/model/event"
	"github.com/segmentio/kafka-go"
)

// Writer kafka.Writer 的最小介面，測試時替換
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type WriterConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	RetryLimit   int
}

// NewSaleWriter 同步寫入，等待所有副本確認
func NewSaleWriter(cfg WriterConfig) *kafka.Writer {
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	if cfg.RetryLimit <= 0 {
		cfg.RetryLimit = 3
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            cfg.RetryLimit,
		AllowAutoTopicCreation: true,
	}
}

// SaleProducer 發布 SaleCompleted，key 為 sale id
type SaleProducer struct {
	writer Writer
}

func NewSaleProducer(writer Writer) *SaleProducer {
	if writer == nil {
		panic("sale producer writer can't be nil")
	}
	return &SaleProducer{writer: writer}
}

func (p *SaleProducer) NotifySaleCompleted(ctx context.Context, sale model.Sale) error {
	msg, err := p.convertToMessage(evt_model.NewSaleCompletedEvent(sale))
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish sale %s: %w", sale.SaleID, err)
	}
	return nil
}

func (p *SaleProducer) convertToMessage(evt *evt_model.SaleCompletedEvent) (kafka.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(evt.AggregateID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type())},
		},
		Time: evt.CreatedAt,
	}, nil
}

func (p *SaleProducer) Close() error {
	return p.writer.Close()
}
