package db

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"gorm.io/gorm"
)

// Store 持久化介面
// 只有結帳會用到 AtomicBatch
type Store interface {
	InitMigrate() error

	IProductRepository
	IClientRepository
	ISupplierRepository
	ISaleRepository
	IUserRepository

	AtomicBatch(ctx context.Context, ops ...BatchOp) error
}

type IProductRepository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type IClientRepository interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	CreateClient(ctx context.Context, client *model.Client) error
	UpdateClient(ctx context.Context, client *model.Client) error
	DeleteClient(ctx context.Context, id uint) error
}

type ISupplierRepository interface {
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	CreateSupplier(ctx context.Context, supplier *model.Supplier) error
	UpdateSupplier(ctx context.Context, supplier *model.Supplier) error
	DeleteSupplier(ctx context.Context, id uint) error
}

type ISaleRepository interface {
	ListSales(ctx context.Context) ([]model.Sale, error)
}

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// UnifiedDBImpl Store 的 gorm 實作
type UnifiedDBImpl struct {
	dbDao *DbDao
	*ProductRepo
	*ContactRepo
	*SaleRepo
	*UserRepo
}

func NewUnifiedDB(conn *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(conn)
	return &UnifiedDBImpl{
		dbDao:       dbDao,
		ProductRepo: NewProductRepo(dbDao),
		ContactRepo: NewContactRepo(dbDao),
		SaleRepo:    NewSaleRepo(dbDao),
		UserRepo:    NewUserRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.dbDao.DB
}

// AtomicBatch 所有操作在同一個交易內，任一失敗全部回滾
func (u *UnifiedDBImpl) AtomicBatch(ctx context.Context, ops ...BatchOp) error {
	return u.dbDao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if err := op.Apply(tx); err != nil {
				return err
			}
		}
		return nil
	})
}

var _ Store = (*UnifiedDBImpl)(nil)
