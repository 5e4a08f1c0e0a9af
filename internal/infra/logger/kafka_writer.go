package logger

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/infra/producer"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter zerolog 的輸出端，每行log一則訊息
// key 為遞增序號，分區平均分配
type KafkaWriter struct {
	w     producer.Writer
	logId atomic.Uint64
}

// NewKafkaWriter 非同步寫入，不阻塞 request
func NewKafkaWriter(brokers []string, topic string) *KafkaWriter {
	return newKafkaWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		MaxAttempts:  3,
		Async:        true,
	})
}

func newKafkaWriter(w producer.Writer) *KafkaWriter {
	return &KafkaWriter{w: w}
}

func (kw *KafkaWriter) Write(p []byte) (n int, err error) {
	if kw == nil {
		return 0, fmt.Errorf("kafka logger is not init")
	}

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, kw.logId.Add(1))
	// zerolog 會重用 buffer
	value := make([]byte, len(p))
	copy(value, p)

	if err := kw.w.WriteMessages(context.Background(), kafka.Message{Key: key, Value: value}); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (kw *KafkaWriter) Close() error {
	return kw.w.Close()
}
