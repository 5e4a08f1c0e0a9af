package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type ProductSeed struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Price    string `yaml:"price"`
	Stock    int    `yaml:"stock"`
	Barcode  string `yaml:"barcode"`
}

type ClientSeed struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

type SupplierSeed struct {
	Company  string `yaml:"company"`
	Contact  string `yaml:"contact"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Address  string `yaml:"address"`
	Products string `yaml:"products"`
}

type Data struct {
	Products  []ProductSeed  `yaml:"products"`
	Clients   []ClientSeed   `yaml:"clients"`
	Suppliers []SupplierSeed `yaml:"suppliers"`
}

func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data := &Data{}
	if err := yaml.Unmarshal(raw, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Store 只需要寫入與列表
type Store interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	ListClients(ctx context.Context) ([]model.Client, error)
	CreateClient(ctx context.Context, client *model.Client) error
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	CreateSupplier(ctx context.Context, supplier *model.Supplier) error
}

// Apply 各集合為空時才寫入，重複啟動不會重複建立
func Apply(ctx context.Context, store Store, data *Data, logger *zerolog.Logger) error {
	products, err := store.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		for _, p := range data.Products {
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return fmt.Errorf("invalid price for %q: %w", p.Name, err)
			}
			if err := store.CreateProduct(ctx, &model.Product{
				Name:     p.Name,
				Category: p.Category,
				Price:    price,
				Stock:    p.Stock,
				Barcode:  p.Barcode,
			}); err != nil {
				return err
			}
		}
		logger.Info().Int("count", len(data.Products)).Msg("seeded products")
	}

	clients, err := store.ListClients(ctx)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		for _, c := range data.Clients {
			if err := store.CreateClient(ctx, &model.Client{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}); err != nil {
				return err
			}
		}
		logger.Info().Int("count", len(data.Clients)).Msg("seeded clients")
	}

	suppliers, err := store.ListSuppliers(ctx)
	if err != nil {
		return err
	}
	if len(suppliers) == 0 {
		for _, s := range data.Suppliers {
			if err := store.CreateSupplier(ctx, &model.Supplier{
				Company:  s.Company,
				Contact:  s.Contact,
				Email:    s.Email,
				Phone:    s.Phone,
				Address:  s.Address,
				Products: s.Products,
			}); err != nil {
				return err
			}
		}
		logger.Info().Int("count", len(data.Suppliers)).Msg("seeded suppliers")
	}
	return nil
}
