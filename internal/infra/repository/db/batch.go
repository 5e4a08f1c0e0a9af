package db

import (
	"fmt"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"gorm.io/gorm"
)

// BatchOp 批次寫入中的單一操作
type BatchOp interface {
	Apply(tx *gorm.DB) error
}

// DecrementStock 條件扣庫存
// 只有 stock >= Quantity 時才更新，否則回傳 ErrStockConflict
type DecrementStock struct {
	ProductID uint
	Quantity  int
}

func (op DecrementStock) Apply(tx *gorm.DB) error {
	res := tx.Model(&model.Product{}).
		Where("product_id = ? AND stock >= ?", op.ProductID, op.Quantity).
		Update("stock", gorm.Expr("stock - ?", op.Quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d quantity %d", ErrStockConflict, op.ProductID, op.Quantity)
	}
	return nil
}

// InsertSale 連同明細一起寫入
type InsertSale struct {
	Sale *model.Sale
}

func (op InsertSale) Apply(tx *gorm.DB) error {
	return tx.Create(op.Sale).Error
}
