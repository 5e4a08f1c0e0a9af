package db

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
)

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Order("product_id").Find(&products).Error
	return products, err
}

func (s *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// UpdateProduct 覆寫可編輯欄位，零值也會寫入
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	res := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", product.ProductID).
		Select("name", "category", "price", "stock", "barcode").
		Updates(product)
	return affected(res)
}

// DeleteProduct 軟刪除，過去的銷售明細保留商品複本
func (s *ProductRepo) DeleteProduct(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&model.Product{}, id))
}
