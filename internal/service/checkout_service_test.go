package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *fakeStore
	drafts   *fakeDrafts
	notifier *fakeNotifier
	terminal *Terminal
	carts    *CartService
	checkout *CheckoutService
	now      time.Time
}

func TestCheckoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}

func (suite *CheckoutServiceTestSuite) SetupTest() {
	logger := zerolog.Nop()
	suite.ctx = context.Background()
	suite.now = time.Date(2024, time.March, 6, 15, 0, 0, 0, time.Local)
	suite.store = newFakeStore(coke(), milk())
	suite.drafts = newFakeDrafts()
	suite.notifier = &fakeNotifier{}
	suite.terminal = newTestTerminal(coke(), milk())
	suite.carts = NewCartService(suite.drafts, &logger)
	suite.checkout = NewCheckoutService(suite.store, suite.drafts, []SaleNotifier{suite.notifier}, fixedClock(suite.now), &logger)
}

// 購物車: 可樂 x2, 牛奶 x1
func (suite *CheckoutServiceTestSuite) fillCart() {
	_, err := suite.carts.AddProduct(suite.ctx, suite.terminal, 1)
	suite.Require().NoError(err)
	_, err = suite.carts.AddProduct(suite.ctx, suite.terminal, 1)
	suite.Require().NoError(err)
	_, err = suite.carts.AddProduct(suite.ctx, suite.terminal, 3)
	suite.Require().NoError(err)
}

func (suite *CheckoutServiceTestSuite) selectPayment(method, received string) {
	_, err := suite.checkout.SelectPayment(suite.ctx, suite.terminal, method, dec(received))
	suite.Require().NoError(err)
}

func (suite *CheckoutServiceTestSuite) TestEmptyCart_NoPersistenceCalls() {
	suite.selectPayment("card", "0")

	_, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().ErrorIs(err, ErrEmptyCart)
	suite.Require().Empty(suite.store.Calls())
	suite.Require().Equal(StateIdle, suite.terminal.CheckoutStatus().State)
}

func (suite *CheckoutServiceTestSuite) TestNoPaymentMethod() {
	suite.fillCart()

	_, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().ErrorIs(err, ErrNoPaymentMethodSelected)
	suite.Require().Empty(suite.store.Calls())
}

func (suite *CheckoutServiceTestSuite) TestInsufficientCash_CartIntact() {
	suite.fillCart()
	suite.selectPayment("cash", "10.00")

	_, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().ErrorIs(err, ErrInsufficientPayment)

	view := suite.carts.View(suite.ctx, suite.terminal)
	suite.Require().Len(view.Lines, 2)
	suite.Require().Equal(3, view.ItemCount)
	suite.Require().Equal(StateIdle, suite.terminal.CheckoutStatus().State)
	suite.Require().Empty(suite.store.Calls())
}

func (suite *CheckoutServiceTestSuite) TestCashExactRoundedTotal() {
	suite.fillCart()
	suite.selectPayment("cash", "11.66")

	result, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().NoError(err)
	suite.Require().True(result.Change.IsZero())
}

func (suite *CheckoutServiceTestSuite) TestSuccess() {
	suite.fillCart()
	suite.selectPayment("cash", "20.00")

	result, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().NoError(err)
	suite.Require().Equal("11.66", result.Sale.Total.StringFixed(2))
	suite.Require().Equal("8.34", result.Change.StringFixed(2))
	suite.Require().Equal(model.PaymentCash, result.Sale.PaymentMethod)
	suite.Require().Equal(uint(7), result.Sale.CashierID)
	suite.Require().Equal(suite.now, result.Sale.SoldAt)

	// 一次批次：扣庫存 {2, 1} 與一筆銷售
	suite.Require().Equal([]string{"AtomicBatch"}, suite.store.Calls())
	ops := suite.store.batches[0]
	suite.Require().Len(ops, 3)
	suite.Require().Equal(db.DecrementStock{ProductID: 1, Quantity: 2}, ops[0])
	suite.Require().Equal(db.DecrementStock{ProductID: 3, Quantity: 1}, ops[1])
	suite.Require().IsType(db.InsertSale{}, ops[2])
	suite.Require().Len(suite.store.sales, 1)

	suite.Require().True(suite.carts.View(suite.ctx, suite.terminal).Totals.Total.IsZero())
	suite.Require().Len(suite.terminal.Sales(), 1)
	p, _ := suite.terminal.Catalog().Get(1)
	suite.Require().Equal(98, p.Stock)
	p, _ = suite.terminal.Catalog().Get(3)
	suite.Require().Equal(29, p.Stock)

	status := suite.terminal.CheckoutStatus()
	suite.Require().Equal(StateSucceeded, status.State)
	suite.Require().Equal(model.PaymentMethod(""), status.Payment.Method)

	suite.Require().Len(suite.notifier.sales, 1)
	suite.Require().Equal(result.Sale.SaleID, suite.notifier.sales[0].SaleID)
	_, ok := suite.drafts.drafts[7]
	suite.Require().False(ok)
}

func (suite *CheckoutServiceTestSuite) TestCardReceivedEqualsTotal() {
	suite.fillCart()
	suite.selectPayment("card", "999")

	result, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().NoError(err)
	suite.Require().Equal("11.66", result.Sale.Received.StringFixed(2))
	suite.Require().True(result.Change.IsZero())
}

func (suite *CheckoutServiceTestSuite) TestNotifierErrorDoesNotFailCheckout() {
	suite.notifier.err = errors.New("kafka down")
	suite.fillCart()
	suite.selectPayment("transfer", "0")

	_, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().NoError(err)
}

func (suite *CheckoutServiceTestSuite) TestStockConflict_RefreshBeforeRetry() {
	suite.fillCart()
	suite.selectPayment("card", "0")
	suite.store.batchErr = db.ErrStockConflict

	_, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().ErrorIs(err, ErrStockConflict)

	status := suite.terminal.CheckoutStatus()
	suite.Require().Equal(StateFailed, status.State)
	suite.Require().True(status.Stale)
	suite.Require().NotEmpty(status.LastError)
	suite.Require().Len(suite.carts.View(suite.ctx, suite.terminal).Lines, 2)

	// 重試前先重新載入商品
	suite.store.batchErr = nil
	result, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().NoError(err)
	suite.Require().NotEmpty(result.Sale.SaleID)
	suite.Require().Equal([]string{"AtomicBatch", "ListProducts", "AtomicBatch"}, suite.store.Calls())
	suite.Require().False(suite.terminal.Catalog().IsStale())
}

func (suite *CheckoutServiceTestSuite) TestRefreshShowsOutOfStock() {
	suite.fillCart()
	suite.selectPayment("card", "0")
	suite.terminal.Catalog().MarkStale()
	suite.store.setStock(1, 1)

	_, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().ErrorIs(err, ErrOutOfStock)
	suite.Require().Equal([]string{"ListProducts"}, suite.store.Calls())
	suite.Require().Equal(StateIdle, suite.terminal.CheckoutStatus().State)
	suite.Require().Len(suite.carts.View(suite.ctx, suite.terminal).Lines, 2)
}

func (suite *CheckoutServiceTestSuite) TestBackendError() {
	suite.fillCart()
	suite.selectPayment("card", "0")
	suite.store.batchErr = errors.New("connection refused")

	_, err := suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().ErrorIs(err, ErrPersistenceUnavailable)
	suite.Require().True(suite.terminal.Catalog().IsStale())
	suite.Require().Empty(suite.terminal.Sales())

	// 重新載入也失敗時維持過期
	suite.store.listErr = errors.New("connection refused")
	_, err = suite.checkout.Checkout(suite.ctx, suite.terminal)
	suite.Require().ErrorIs(err, ErrPersistenceUnavailable)
	suite.Require().True(suite.terminal.Catalog().IsStale())
}

func (suite *CheckoutServiceTestSuite) TestSelectPaymentInvalid() {
	_, err := suite.checkout.SelectPayment(suite.ctx, suite.terminal, "bitcoin", dec("1"))
	suite.Require().ErrorIs(err, ErrInvalidArgument)

	_, err = suite.checkout.SelectPayment(suite.ctx, suite.terminal, "cash", dec("-1"))
	suite.Require().ErrorIs(err, ErrInvalidArgument)
}

func TestCheckoutState_String(t *testing.T) {
	require.Equal(t, "committing", StateCommitting.String())
	text, err := StateFailed.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "failed", string(text))
}

// refreshingStore 寫入成功後，另一個goroutine馬上重新載入所有收銀台的商品
type refreshingStore struct {
	*fakeStore
	registry *TerminalRegistry
	done     chan struct{}
}

func (s *refreshingStore) AtomicBatch(ctx context.Context, ops ...db.BatchOp) error {
	if err := s.fakeStore.AtomicBatch(ctx, ops...); err != nil {
		return err
	}
	go func() {
		defer close(s.done)
		products, _ := s.fakeStore.ListProducts(ctx)
		s.registry.ReplaceCatalogs(products)
	}()
	return nil
}

func TestCheckout_ConcurrentCatalogRefresh(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	registry := NewTerminalRegistry()
	store := &refreshingStore{fakeStore: newFakeStore(coke()), registry: registry, done: make(chan struct{})}
	term := registry.AddIfAbsent(newTestTerminal(coke()))

	carts := NewCartService(nil, &logger)
	checkout := NewCheckoutService(store, nil, nil, fixedClock(time.Now()), &logger)

	for i := 0; i < 2; i++ {
		_, err := carts.AddProduct(ctx, term, 1)
		require.NoError(t, err)
	}
	_, err := checkout.SelectPayment(ctx, term, "card", dec("0"))
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, term)
	require.NoError(t, err)

	select {
	case <-store.done:
	case <-time.After(5 * time.Second):
		t.Fatal("catalog refresh did not finish")
	}

	dbProducts, err := store.fakeStore.ListProducts(ctx)
	require.NoError(t, err)
	local, ok := term.Catalog().Get(1)
	require.True(t, ok)
	require.Equal(t, 98, dbProducts[0].Stock)
	require.Equal(t, dbProducts[0].Stock, local.Stock)
}
