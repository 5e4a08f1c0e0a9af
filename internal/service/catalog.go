package service

import (
	"strings"
	"sync"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
)

// Catalog 收銀台的商品快取
// 庫存只在結帳成功或重新載入時變動
// stale 代表與資料庫可能不一致，下次結帳前必須重新載入
type Catalog struct {
	mu       sync.RWMutex
	products []model.Product
	stale    bool
}

func NewCatalog(products []model.Product) *Catalog {
	c := &Catalog{}
	c.Replace(products)
	return c
}

func (c *Catalog) Replace(products []model.Product) {
	cp := make([]model.Product, len(products))
	copy(cp, products)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = cp
	c.stale = false
}

func (c *Catalog) Get(productID uint) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ProductID == productID {
			return p, true
		}
	}
	return model.Product{}, false
}

// GetByBarcode 條碼不唯一，回傳第一筆
func (c *Catalog) GetByBarcode(barcode string) (model.Product, bool) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return model.Product{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.Barcode == barcode {
			return p, true
		}
	}
	return model.Product{}, false
}

// Search 名稱、分類、條碼包含關鍵字，不分大小寫
func (c *Catalog) Search(q string) []model.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(p.Barcode, q) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Products() []model.Product {
	return c.Search("")
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// LowStockCount 庫存低於門檻的商品數
func (c *Catalog) LowStockCount(threshold int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, p := range c.products {
		if p.Stock < threshold {
			n++
		}
	}
	return n
}

// DecrementStock 結帳成功後套用，最低到0
func (c *Catalog) DecrementStock(productID uint, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ProductID == productID {
			c.products[i].Stock -= quantity
			if c.products[i].Stock < 0 {
				c.products[i].Stock = 0
			}
			return
		}
	}
}

func (c *Catalog) MarkStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
}

func (c *Catalog) IsStale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}
