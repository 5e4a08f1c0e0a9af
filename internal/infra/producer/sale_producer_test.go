package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func testSale() model.Sale {
	return model.Sale{
		SaleID:        "3f0c9a52-8f43-4a55-9b2d-7d3c2b7f1e10",
		SoldAt:        time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC),
		Total:         decimal.RequireFromString("11.66"),
		PaymentMethod: model.PaymentCard,
		Items: []model.SaleItem{
			{ProductID: 1, Name: "Coca Cola 600ml", Category: "Bebidas", Quantity: 2, UnitPrice: decimal.RequireFromString("2.50")},
		},
	}
}

func TestSaleProducer_NotifySaleCompleted(t *testing.T) {
	writer := new(mockWriter)
	sale := testSale()

	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != sale.SaleID {
			return false
		}
		var body map[string]any
		if err := json.Unmarshal(msgs[0].Value, &body); err != nil {
			return false
		}
		return body["eventType"] == "SaleCompleted" && string(msgs[0].Headers[0].Value) == "SaleCompleted"
	})).Return(nil).Once()

	p := NewSaleProducer(writer)
	require.NoError(t, p.NotifySaleCompleted(context.Background(), sale))
	writer.AssertExpectations(t)
}

func TestSaleProducer_WriteError(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	p := NewSaleProducer(writer)
	err := p.NotifySaleCompleted(context.Background(), testSale())
	require.ErrorContains(t, err, "broker down")
}

func TestNewSaleProducer_NilWriter(t *testing.T) {
	require.Panics(t, func() { NewSaleProducer(nil) })
}
