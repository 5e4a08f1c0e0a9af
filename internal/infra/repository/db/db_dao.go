package db

import (
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性，不做版本遷移
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Client{},
		&model.Supplier{},
		&model.Sale{},
		&model.SaleItem{},
	)
}
