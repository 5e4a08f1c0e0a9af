package model

import "github.com/RoyceAzure/lab/pos/internal/domain/model"

// SaleCompletedEvent 結帳成功後發布
// aggregateID 為 sale id
type SaleCompletedEvent struct {
	BaseEvent
	Sale model.Sale `json:"sale"`
}

func NewSaleCompletedEvent(sale model.Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseEvent: *NewBaseEvent(sale.SaleID, SaleCompletedEventName),
		Sale:      sale,
	}
}

func (e *SaleCompletedEvent) Type() EventType {
	return SaleCompletedEventName
}
