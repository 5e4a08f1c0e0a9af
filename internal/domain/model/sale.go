package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// ParsePaymentMethod 空字串回傳空值與nil，代表尚未選擇
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return "", nil
	case PaymentCash, PaymentCard, PaymentTransfer:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
}

// Sale 銷售紀錄，建立後不可變更
// 明細為商品資料的複本，商品之後被修改或刪除都不影響
type Sale struct {
	SaleID        string          `gorm:"primaryKey;type:varchar(36)" json:"sale_id"`
	SoldAt        time.Time       `gorm:"not null;index" json:"sold_at"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      decimal.Decimal `gorm:"not null;type:decimal(12,4)" json:"subtotal"`
	Tax           decimal.Decimal `gorm:"not null;type:decimal(12,4)" json:"tax"`
	Total         decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"total"`
	PaymentMethod PaymentMethod   `gorm:"not null;type:varchar(20);index" json:"payment_method"`
	Received      decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"received"`
	Change        decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"change"`
	CashierID     uint            `gorm:"not null;index" json:"cashier_id"`
	CashierEmail  string          `gorm:"type:varchar(100)" json:"cashier_email"`
	CreatedAt     time.Time       `gorm:"not null;default:now()" json:"created_at"`
}

type SaleItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	SaleID    string          `gorm:"not null;type:varchar(36);index" json:"-"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Name      string          `gorm:"not null;type:varchar(100)" json:"name"`
	Category  string          `gorm:"not null;type:varchar(50)" json:"category"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"unit_price"`
}

func (i SaleItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// UnitsSold 該筆銷售的商品件數
func (s Sale) UnitsSold() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
