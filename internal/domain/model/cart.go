package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine 購物車明細
// 單價、分類、名稱在第一次加入時複製，之後商品改價不影響
type CartLine struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (l CartLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart 一個session只有一台購物車
// 購物車只比對庫存，不扣庫存；庫存只在結帳批次寫入時扣除
// 明細依第一次加入的順序排列
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// RestoreCart 從暫存還原，數量 <= 0 的明細直接丟棄
func RestoreCart(lines []CartLine) *Cart {
	c := NewCart()
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if i := c.indexOf(line.ProductID); i >= 0 {
			c.lines[i].Quantity += line.Quantity
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

func (c *Cart) indexOf(productID uint) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Lines 回傳複本
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(productID uint) (CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Add 加入一件商品
// 錯誤:
//   - ErrOutOfStock: 庫存為0，或購物車數量已等於庫存
func (c *Cart) Add(p Product) error {
	i := c.indexOf(p.ProductID)
	inCart := 0
	if i >= 0 {
		inCart = c.lines[i].Quantity
	}
	if p.Stock <= 0 || inCart >= p.Stock {
		return fmt.Errorf("%w: product %d has %d in stock", ErrOutOfStock, p.ProductID, p.Stock)
	}

	if i >= 0 {
		c.lines[i].Quantity++
		return nil
	}
	c.lines = append(c.lines, CartLine{
		ProductID: p.ProductID,
		Name:      p.Name,
		Category:  p.Category,
		Quantity:  1,
		UnitPrice: p.Price,
	})
	return nil
}

// ChangeQuantity 調整數量
// available 為目錄中的庫存，不會再扣掉購物車已有的數量
// 減到0直接移除明細
// 錯誤:
//   - ErrInvalidQuantityDelta: delta 不是 +1 / -1
//   - ErrCartLineNotFound: 購物車沒有該商品
//   - ErrOutOfStock: 增加後超過庫存
func (c *Cart) ChangeQuantity(productID uint, delta int, available int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantityDelta, delta)
	}
	i := c.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("%w: product %d", ErrCartLineNotFound, productID)
	}

	next := c.lines[i].Quantity + delta
	if delta > 0 && next > available {
		return fmt.Errorf("%w: product %d has %d in stock", ErrOutOfStock, productID, available)
	}
	if next <= 0 {
		c.removeAt(i)
		return nil
	}
	c.lines[i].Quantity = next
	return nil
}

// Remove 不存在也不回錯
func (c *Cart) Remove(productID uint) {
	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Totals() Totals {
	return CalculateTotals(c.lines)
}
