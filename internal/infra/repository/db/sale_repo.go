package db

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
)

// SaleRepo 銷售紀錄只新增不修改，新增只透過 AtomicBatch
type SaleRepo struct {
	db *DbDao
}

func NewSaleRepo(db *DbDao) *SaleRepo {
	return &SaleRepo{db: db}
}

func (s *SaleRepo) ListSales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := s.db.WithContext(ctx).Preload("Items").Order("sold_at").Find(&sales).Error
	return sales, err
}
