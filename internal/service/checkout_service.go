package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CheckoutStore interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	AtomicBatch(ctx context.Context, ops ...db.BatchOp) error
}

// SaleNotifier 結帳成功後通知，失敗不影響結帳結果
type SaleNotifier interface {
	NotifySaleCompleted(ctx context.Context, sale model.Sale) error
}

type CheckoutResult struct {
	Sale   model.Sale      `json:"sale"`
	Change decimal.Decimal `json:"change"`
}

type CheckoutService struct {
	store     CheckoutStore
	drafts    CartDraftStore
	notifiers []SaleNotifier
	now       Clock
	logger    *zerolog.Logger
}

func NewCheckoutService(store CheckoutStore, drafts CartDraftStore, notifiers []SaleNotifier, now Clock, logger *zerolog.Logger) *CheckoutService {
	if store == nil {
		panic("checkout service store can't be nil")
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = &log.Logger
	}
	return &CheckoutService{store: store, drafts: drafts, notifiers: notifiers, now: now, logger: logger}
}

// SelectPayment 選擇付款方式，非現金時忽略實收金額
// 錯誤:
//   - ErrInvalidArgument: 不支援的付款方式或負數金額
func (s *CheckoutService) SelectPayment(ctx context.Context, t *Terminal, method string, received decimal.Decimal) (CheckoutStatus, error) {
	m, err := model.ParsePaymentMethod(method)
	if err != nil {
		return CheckoutStatus{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if received.IsNegative() {
		return CheckoutStatus{}, fmt.Errorf("%w: received amount can't be negative", ErrInvalidArgument)
	}
	if m != model.PaymentCash {
		received = decimal.Zero
	}

	t.mu.Lock()
	t.payment = PaymentSelection{Method: m, Received: received}
	t.mu.Unlock()
	return t.CheckoutStatus(), nil
}

// Checkout Idle → Validating → Committing → Succeeded / Failed
//
// 驗證失敗回到 Idle，不呼叫持久層
// 寫入失敗時購物車不變，商品快取標記過期，下次結帳前重新載入
//
// 錯誤:
//   - ErrEmptyCart
//   - ErrNoPaymentMethodSelected
//   - ErrInsufficientPayment: 現金實收小於應收（四捨五入到分）
//   - ErrOutOfStock: 重新載入後庫存不足
//   - ErrStockConflict: 條件扣庫存失敗
//   - ErrPersistenceUnavailable
func (s *CheckoutService) Checkout(ctx context.Context, t *Terminal) (*CheckoutResult, error) {
	result, err := s.checkoutLocked(ctx, t)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, result.Sale)
	return result, nil
}

func (s *CheckoutService) checkoutLocked(ctx context.Context, t *Terminal) (*CheckoutResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = StateValidating
	t.lastError = ""

	totals, change, err := s.validateLocked(t)
	if err != nil {
		t.state = StateIdle
		return nil, err
	}

	if t.catalog.IsStale() {
		if err := s.refreshCatalogLocked(ctx, t); err != nil {
			return nil, s.failLocked(t, err)
		}
		if err := checkStockLocked(t); err != nil {
			t.state = StateIdle
			return nil, err
		}
	}

	t.state = StateCommitting
	sale := s.buildSale(t, totals, change)
	ops := make([]db.BatchOp, 0, len(sale.Items)+1)
	for _, item := range sale.Items {
		ops = append(ops, db.DecrementStock{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	ops = append(ops, db.InsertSale{Sale: &sale})

	if err := s.store.AtomicBatch(ctx, ops...); err != nil {
		return nil, s.failLocked(t, translateStoreErr(err))
	}

	for _, item := range sale.Items {
		t.catalog.DecrementStock(item.ProductID, item.Quantity)
	}
	t.cart.Clear()
	t.appendSaleLocked(sale)
	t.payment = PaymentSelection{}
	t.report = AggregateSales(t.sales, t.reportRange, s.now())
	t.state = StateSucceeded

	if s.drafts != nil {
		if err := s.drafts.Delete(ctx, t.identity.UserID); err != nil {
			s.logger.Warn().Err(err).Uint("user_id", t.identity.UserID).Msg("failed to delete cart draft")
		}
	}

	s.logger.Info().
		Str("sale_id", sale.SaleID).
		Str("total", sale.Total.StringFixed(2)).
		Str("payment_method", string(sale.PaymentMethod)).
		Msg("sale completed")
	return &CheckoutResult{Sale: sale, Change: change}, nil
}

func (s *CheckoutService) validateLocked(t *Terminal) (model.Totals, decimal.Decimal, error) {
	if t.cart.IsEmpty() {
		return model.Totals{}, decimal.Zero, ErrEmptyCart
	}
	if t.payment.Method == "" {
		return model.Totals{}, decimal.Zero, ErrNoPaymentMethodSelected
	}

	totals := t.cart.Totals()
	due := totals.AmountDue()
	change := decimal.Zero
	if t.payment.Method == model.PaymentCash {
		if t.payment.Received.LessThan(due) {
			return model.Totals{}, decimal.Zero, fmt.Errorf("%w: received %s, due %s",
				ErrInsufficientPayment, t.payment.Received.StringFixed(2), due.StringFixed(2))
		}
		change = t.payment.Received.Sub(due)
	}
	return totals, change, nil
}

func (s *CheckoutService) refreshCatalogLocked(ctx context.Context, t *Terminal) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return translateStoreErr(err)
	}
	t.catalog.Replace(products)
	return nil
}

// checkStockLocked 重新載入後，購物車數量不可超過庫存
func checkStockLocked(t *Terminal) error {
	for _, line := range t.cart.Lines() {
		p, ok := t.catalog.Get(line.ProductID)
		if !ok {
			return fmt.Errorf("%w: product %d no longer exists", ErrOutOfStock, line.ProductID)
		}
		if line.Quantity > p.Stock {
			return fmt.Errorf("%w: product %d has %d in stock", ErrOutOfStock, line.ProductID, p.Stock)
		}
	}
	return nil
}

func (s *CheckoutService) failLocked(t *Terminal, err error) error {
	t.catalog.MarkStale()
	t.state = StateFailed
	t.lastError = err.Error()
	s.logger.Error().Err(err).Uint("user_id", t.identity.UserID).Msg("checkout failed")
	return err
}

func (s *CheckoutService) buildSale(t *Terminal, totals model.Totals, change decimal.Decimal) model.Sale {
	saleID := uuid.New().String()
	lines := t.cart.Lines()
	items := make([]model.SaleItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.SaleItem{
			SaleID:    saleID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Category:  line.Category,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	received := t.payment.Received
	if t.payment.Method != model.PaymentCash {
		received = totals.AmountDue()
	}
	return model.Sale{
		SaleID:        saleID,
		SoldAt:        s.now(),
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.AmountDue(),
		PaymentMethod: t.payment.Method,
		Received:      received,
		Change:        change,
		CashierID:     t.identity.UserID,
		CashierEmail:  t.identity.Email,
	}
}

func (s *CheckoutService) notify(ctx context.Context, sale model.Sale) {
	var errs []error
	for _, n := range s.notifiers {
		if err := n.NotifySaleCompleted(ctx, sale); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.Error().Err(err).Str("sale_id", sale.SaleID).Msg("failed to publish sale")
	}
}
