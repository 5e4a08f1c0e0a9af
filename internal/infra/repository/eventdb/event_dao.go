package eventdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/pos/internal/domain/model/event"
)

var ErrEventFormat = errors.New("event format error")

// appender esdb.Client 的最小介面
type appender interface {
	AppendToStream(ctx context.Context, streamID string, opts esdb.AppendToStreamOptions, events ...esdb.EventData) (*esdb.WriteResult, error)
}

type EventDao struct {
	client appender
}

func NewEventDao(client *esdb.Client) *EventDao {
	return &EventDao{client: client}
}

func (dao *EventDao) AppendEvent(ctx context.Context, streamID, eventType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEventFormat, err)
	}
	eventData := esdb.EventData{
		ContentType: esdb.ContentTypeJson,
		EventType:   eventType,
		Data:        payload,
	}
	_, err = dao.client.AppendToStream(ctx, streamID, esdb.AppendToStreamOptions{}, eventData)
	return err
}

func SaleStreamID(saleID string) string {
	return "sale-" + saleID
}

// SaleEventDao 銷售稽核紀錄，一筆銷售一個stream
type SaleEventDao struct {
	dao *EventDao
}

func NewSaleEventDao(dao *EventDao) *SaleEventDao {
	return &SaleEventDao{dao: dao}
}

func (s *SaleEventDao) NotifySaleCompleted(ctx context.Context, sale model.Sale) error {
	evt := evt_model.NewSaleCompletedEvent(sale)
	if err := s.dao.AppendEvent(ctx, SaleStreamID(sale.SaleID), string(evt.Type()), evt); err != nil {
		return fmt.Errorf("failed to append sale %s: %w", sale.SaleID, err)
	}
	return nil
}
