package dto

import (
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Barcode  string          `json:"barcode"`
}

func (d ProductDTO) ToInput() service.ProductInput {
	return service.ProductInput{
		Name:     d.Name,
		Category: d.Category,
		Price:    d.Price,
		Stock:    d.Stock,
		Barcode:  d.Barcode,
	}
}

type ClientDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (d ClientDTO) ToModel(id uint) *model.Client {
	return &model.Client{
		ClientID: id,
		Name:     d.Name,
		Email:    d.Email,
		Phone:    d.Phone,
		Address:  d.Address,
	}
}

type SupplierDTO struct {
	Company  string `json:"company"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Products string `json:"products"`
}

func (d SupplierDTO) ToModel(id uint) *model.Supplier {
	return &model.Supplier{
		SupplierID: id,
		Company:    d.Company,
		Contact:    d.Contact,
		Email:      d.Email,
		Phone:      d.Phone,
		Address:    d.Address,
		Products:   d.Products,
	}
}
