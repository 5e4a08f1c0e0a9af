package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
)

type ContactStore interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	CreateClient(ctx context.Context, client *model.Client) error
	UpdateClient(ctx context.Context, client *model.Client) error
	DeleteClient(ctx context.Context, id uint) error
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	CreateSupplier(ctx context.Context, supplier *model.Supplier) error
	UpdateSupplier(ctx context.Context, supplier *model.Supplier) error
	DeleteSupplier(ctx context.Context, id uint) error
}

type ContactService struct {
	store ContactStore
}

func NewContactService(store ContactStore) *ContactService {
	if store == nil {
		panic("contact service store can't be nil")
	}
	return &ContactService{store: store}
}

func (s *ContactService) ListClients(ctx context.Context) ([]model.Client, error) {
	clients, err := s.store.ListClients(ctx)
	return clients, translateStoreErr(err)
}

func (s *ContactService) SaveClient(ctx context.Context, client *model.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidArgument)
	}
	if client.ClientID == 0 {
		return translateStoreErr(s.store.CreateClient(ctx, client))
	}
	return translateStoreErr(s.store.UpdateClient(ctx, client))
}

func (s *ContactService) DeleteClient(ctx context.Context, id uint) error {
	return translateStoreErr(s.store.DeleteClient(ctx, id))
}

func (s *ContactService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	suppliers, err := s.store.ListSuppliers(ctx)
	return suppliers, translateStoreErr(err)
}

func (s *ContactService) SaveSupplier(ctx context.Context, supplier *model.Supplier) error {
	supplier.Company = strings.TrimSpace(supplier.Company)
	if supplier.Company == "" {
		return fmt.Errorf("%w: supplier company is required", ErrInvalidArgument)
	}
	if supplier.SupplierID == 0 {
		return translateStoreErr(s.store.CreateSupplier(ctx, supplier))
	}
	return translateStoreErr(s.store.UpdateSupplier(ctx, supplier))
}

func (s *ContactService) DeleteSupplier(ctx context.Context, id uint) error {
	return translateStoreErr(s.store.DeleteSupplier(ctx, id))
}
