package service

import (
	"context"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

type fakeStore struct {
	mu       sync.Mutex
	products []model.Product
	sales    []model.Sale
	calls    []string
	batches  [][]db.BatchOp
	batchErr error
	listErr  error
	nextID   uint
}

func newFakeStore(products ...model.Product) *fakeStore {
	return &fakeStore{products: products, nextID: 100}
}

func (f *fakeStore) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListProducts")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Product(nil), f.products...), nil
}

func (f *fakeStore) ListSales(ctx context.Context) ([]model.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListSales")
	return append([]model.Sale(nil), f.sales...), nil
}

func (f *fakeStore) AtomicBatch(ctx context.Context, ops ...db.BatchOp) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AtomicBatch")
	f.batches = append(f.batches, ops)
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, op := range ops {
		switch o := op.(type) {
		case db.DecrementStock:
			for i := range f.products {
				if f.products[i].ProductID == o.ProductID {
					f.products[i].Stock -= o.Quantity
				}
			}
		case db.InsertSale:
			f.sales = append(f.sales, *o.Sale)
		}
	}
	return nil
}

func (f *fakeStore) CreateProduct(ctx context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateProduct")
	f.nextID++
	p.ProductID = f.nextID
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeStore) UpdateProduct(ctx context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateProduct")
	for i := range f.products {
		if f.products[i].ProductID == p.ProductID {
			f.products[i] = *p
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteProduct")
	for i := range f.products {
		if f.products[i].ProductID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeStore) setStock(id uint, stock int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ProductID == id {
			f.products[i].Stock = stock
		}
	}
}

type fakeDrafts struct {
	mu     sync.Mutex
	drafts map[uint][]model.CartLine
	err    error
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: map[uint][]model.CartLine{}}
}

func (f *fakeDrafts) Save(ctx context.Context, userID uint, lines []model.CartLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.drafts[userID] = lines
	return nil
}

func (f *fakeDrafts) Load(ctx context.Context, userID uint) ([]model.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.drafts[userID], nil
}

func (f *fakeDrafts) Delete(ctx context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, userID)
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sales []model.Sale
	err   error
}

func (f *fakeNotifier) NotifySaleCompleted(ctx context.Context, sale model.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales = append(f.sales, sale)
	return f.err
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func coke() model.Product {
	return model.Product{ProductID: 1, Name: "Coca Cola 350ml", Category: "Bebidas", Price: dec("2.50"), Stock: 100, Barcode: "7702010234567"}
}

func milk() model.Product {
	return model.Product{ProductID: 3, Name: "Leche entera 1L", Category: "Lácteos", Price: dec("4.80"), Stock: 30, Barcode: "7702010234569"}
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestTerminal(products ...model.Product) *Terminal {
	return NewTerminal("token-1", model.Identity{UserID: 7, Email: "cajero@pos.com"}, products, nil, nil)
}
