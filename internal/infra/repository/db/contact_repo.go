package db

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
)

// ContactRepo 客戶與供應商
type ContactRepo struct {
	db *DbDao
}

func NewContactRepo(db *DbDao) *ContactRepo {
	return &ContactRepo{db: db}
}

func (s *ContactRepo) ListClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := s.db.WithContext(ctx).Order("client_id").Find(&clients).Error
	return clients, err
}

func (s *ContactRepo) CreateClient(ctx context.Context, client *model.Client) error {
	return s.db.WithContext(ctx).Create(client).Error
}

func (s *ContactRepo) UpdateClient(ctx context.Context, client *model.Client) error {
	res := s.db.WithContext(ctx).Model(&model.Client{}).
		Where("client_id = ?", client.ClientID).
		Select("name", "email", "phone", "address").
		Updates(client)
	return affected(res)
}

func (s *ContactRepo) DeleteClient(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&model.Client{}, id))
}

func (s *ContactRepo) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := s.db.WithContext(ctx).Order("supplier_id").Find(&suppliers).Error
	return suppliers, err
}

func (s *ContactRepo) CreateSupplier(ctx context.Context, supplier *model.Supplier) error {
	return s.db.WithContext(ctx).Create(supplier).Error
}

func (s *ContactRepo) UpdateSupplier(ctx context.Context, supplier *model.Supplier) error {
	res := s.db.WithContext(ctx).Model(&model.Supplier{}).
		Where("supplier_id = ?", supplier.SupplierID).
		Select("company", "contact", "email", "phone", "address", "products").
		Updates(supplier)
	return affected(res)
}

func (s *ContactRepo) DeleteSupplier(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&model.Supplier{}, id))
}
