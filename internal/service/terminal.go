package service

import (
	"context"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/shopspring/decimal"
)

type CheckoutState int

const (
	StateIdle CheckoutState = iota
	StateValidating
	StateCommitting
	StateSucceeded
	StateFailed
)

func (s CheckoutState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateCommitting:
		return "committing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s CheckoutState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PaymentSelection 收銀員選擇的付款方式與實收金額
// Received 只對現金有意義
type PaymentSelection struct {
	Method   model.PaymentMethod `json:"method"`
	Received decimal.Decimal     `json:"received"`
}

// Terminal 一個登入session的收銀台狀態
// 所有命令透過 mu 序列化
type Terminal struct {
	mu sync.Mutex

	token    string
	identity model.Identity

	catalog *Catalog
	cart    *model.Cart
	sales   []model.Sale
	saleIDs map[string]struct{}

	payment   PaymentSelection
	state     CheckoutState
	lastError string

	reportRange model.TimeRange
	report      model.SalesReport
}

func NewTerminal(token string, identity model.Identity, products []model.Product, sales []model.Sale, cart *model.Cart) *Terminal {
	if cart == nil {
		cart = model.NewCart()
	}
	t := &Terminal{
		token:       token,
		identity:    identity,
		catalog:     NewCatalog(products),
		cart:        cart,
		saleIDs:     make(map[string]struct{}, len(sales)),
		state:       StateIdle,
		reportRange: model.RangeToday,
	}
	for _, sale := range sales {
		t.appendSaleLocked(sale)
	}
	return t
}

func (t *Terminal) Token() string {
	return t.token
}

func (t *Terminal) Identity() model.Identity {
	return t.identity
}

func (t *Terminal) ReportRange() model.TimeRange {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reportRange
}

// ReplaceCatalog 等目前的命令(含結帳)結束後才替換商品快取
func (t *Terminal) ReplaceCatalog(products []model.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.catalog.Replace(products)
}

func (t *Terminal) Catalog() *Catalog {
	return t.catalog
}

// appendSaleLocked 已存在的sale id不重複加入
func (t *Terminal) appendSaleLocked(sale model.Sale) bool {
	if _, ok := t.saleIDs[sale.SaleID]; ok {
		return false
	}
	t.saleIDs[sale.SaleID] = struct{}{}
	t.sales = append(t.sales, sale)
	return true
}

// AppendSale 其他收銀台的銷售同步到本台
func (t *Terminal) AppendSale(sale model.Sale) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.appendSaleLocked(sale)
}

func (t *Terminal) Sales() []model.Sale {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Sale, len(t.sales))
	copy(out, t.sales)
	return out
}

// CheckoutStatus 結帳狀態機目前狀態
type CheckoutStatus struct {
	State     CheckoutState    `json:"state"`
	Payment   PaymentSelection `json:"payment"`
	LastError string           `json:"last_error,omitempty"`
	Stale     bool             `json:"catalog_stale"`
}

func (t *Terminal) CheckoutStatus() CheckoutStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return CheckoutStatus{
		State:     t.state,
		Payment:   t.payment,
		LastError: t.lastError,
		Stale:     t.catalog.IsStale(),
	}
}

type terminalCtxKey struct{}

func WithTerminal(ctx context.Context, t *Terminal) context.Context {
	return context.WithValue(ctx, terminalCtxKey{}, t)
}

// TerminalFromContext 沒有登入時回傳 ErrUnauthenticated
func TerminalFromContext(ctx context.Context) (*Terminal, error) {
	t, ok := ctx.Value(terminalCtxKey{}).(*Terminal)
	if !ok || t == nil {
		return nil, ErrUnauthenticated
	}
	return t, nil
}

// Clock 測試時替換
type Clock func() time.Time
