package model

import "errors"

var (
	// ErrOutOfStock 庫存不足，或購物車數量已達庫存
	ErrOutOfStock = errors.New("out of stock")
	// ErrInvalidQuantityDelta 數量調整只接受 +1 / -1
	ErrInvalidQuantityDelta = errors.New("quantity delta must be +1 or -1")
	// ErrCartLineNotFound 購物車沒有該商品
	ErrCartLineNotFound = errors.New("cart line not found")
	// ErrInvalidPaymentMethod 不支援的付款方式
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrInvalidTimeRange 不支援的報表區間
	ErrInvalidTimeRange = errors.New("invalid time range")
)
