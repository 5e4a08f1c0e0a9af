package dto

import "github.com/shopspring/decimal"

type AddItemDTO struct {
	ProductID uint `json:"product_id"`
}

type BarcodeDTO struct {
	Barcode string `json:"barcode"`
}

// delta 只接受 1 或 -1
type ChangeQuantityDTO struct {
	Delta int `json:"delta"`
}

// received 只有現金需要
type SelectPaymentDTO struct {
	Method   string          `json:"method"`
	Received decimal.Decimal `json:"received"`
}
