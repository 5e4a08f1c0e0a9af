package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/shopspring/decimal"
)

type ProductStore interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

// ProductInput 新增/修改商品
type ProductInput struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    int
	Barcode  string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidArgument)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price can't be negative", ErrInvalidArgument)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock can't be negative", ErrInvalidArgument)
	}
	return nil
}

func (in ProductInput) toModel(id uint) *model.Product {
	return &model.Product{
		ProductID: id,
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Price:     in.Price,
		Stock:     in.Stock,
		Barcode:   strings.TrimSpace(in.Barcode),
	}
}

// CatalogService 商品維護，寫入後重新載入所有收銀台的商品快取
type CatalogService struct {
	store    ProductStore
	registry *TerminalRegistry
}

func NewCatalogService(store ProductStore, registry *TerminalRegistry) *CatalogService {
	if store == nil || registry == nil {
		panic("catalog service dependency is nil")
	}
	return &CatalogService{store: store, registry: registry}
}

func (s *CatalogService) List(ctx context.Context, t *Terminal, q string) []model.Product {
	return t.catalog.Search(q)
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toModel(0)
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, translateStoreErr(err)
	}
	return p, s.refresh(ctx)
}

func (s *CatalogService) Update(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toModel(id)
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, translateStoreErr(err)
	}
	return p, s.refresh(ctx)
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return translateStoreErr(err)
	}
	return s.refresh(ctx)
}

func (s *CatalogService) refresh(ctx context.Context) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return translateStoreErr(err)
	}
	s.registry.ReplaceCatalogs(products)
	return nil
}
