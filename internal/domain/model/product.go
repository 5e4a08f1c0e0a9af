package model

import (
	"github.com/shopspring/decimal"
)

// Product 商品
// 庫存不可為負，檢查點在購物車與結帳批次寫入
type Product struct {
	ProductID uint            `gorm:"primaryKey" json:"product_id"`
	Name      string          `gorm:"not null;type:varchar(100)" json:"name"`
	Category  string          `gorm:"not null;type:varchar(50);index" json:"category"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Stock     int             `gorm:"not null;type:int;check:stock >= 0" json:"stock"`
	Barcode   string          `gorm:"type:varchar(64);index" json:"barcode"`
	BaseModel
}
