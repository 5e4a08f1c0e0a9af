package service

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CartView 購物車畫面
// Totals 未四捨五入，Display 為顯示用
type CartView struct {
	Lines     []model.CartLine `json:"lines"`
	ItemCount int              `json:"item_count"`
	Totals    model.Totals     `json:"totals"`
	Display   model.Totals     `json:"display"`
}

func newCartView(cart *model.Cart) CartView {
	lines := cart.Lines()
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	totals := cart.Totals()
	return CartView{
		Lines:     lines,
		ItemCount: count,
		Totals:    totals,
		Display:   totals.Rounded(),
	}
}

type CartService struct {
	drafts CartDraftStore
	logger *zerolog.Logger
}

// drafts 可為nil
func NewCartService(drafts CartDraftStore, logger *zerolog.Logger) *CartService {
	if logger == nil {
		logger = &log.Logger
	}
	return &CartService{drafts: drafts, logger: logger}
}

// mutate 在收銀台鎖內修改購物車，成功後存暫存
// 失敗時購物車維持原狀
func (s *CartService) mutate(ctx context.Context, t *Terminal, fn func() error) (CartView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := fn(); err != nil {
		return CartView{}, err
	}
	s.saveDraftLocked(ctx, t)
	return newCartView(t.cart), nil
}

func (s *CartService) saveDraftLocked(ctx context.Context, t *Terminal) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Save(ctx, t.identity.UserID, t.cart.Lines()); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", t.identity.UserID).Msg("failed to save cart draft")
	}
}

func (s *CartService) View(ctx context.Context, t *Terminal) CartView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return newCartView(t.cart)
}

// AddProduct
// 錯誤:
//   - ErrNotFound: 商品不在目錄
//   - ErrOutOfStock: 無庫存或購物車數量已等於庫存
func (s *CartService) AddProduct(ctx context.Context, t *Terminal, productID uint) (CartView, error) {
	return s.mutate(ctx, t, func() error {
		p, ok := t.catalog.Get(productID)
		if !ok {
			return fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return t.cart.Add(p)
	})
}

func (s *CartService) AddByBarcode(ctx context.Context, t *Terminal, barcode string) (CartView, error) {
	return s.mutate(ctx, t, func() error {
		p, ok := t.catalog.GetByBarcode(barcode)
		if !ok {
			return fmt.Errorf("%w: barcode %q", ErrNotFound, barcode)
		}
		return t.cart.Add(p)
	})
}

// ChangeQuantity delta 只接受 +1 / -1，減到0移除
func (s *CartService) ChangeQuantity(ctx context.Context, t *Terminal, productID uint, delta int) (CartView, error) {
	return s.mutate(ctx, t, func() error {
		available := 0
		if p, ok := t.catalog.Get(productID); ok {
			available = p.Stock
		}
		return translateCartErr(t.cart.ChangeQuantity(productID, delta, available))
	})
}

func (s *CartService) RemoveLine(ctx context.Context, t *Terminal, productID uint) (CartView, error) {
	return s.mutate(ctx, t, func() error {
		t.cart.Remove(productID)
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, t *Terminal) (CartView, error) {
	return s.mutate(ctx, t, func() error {
		t.cart.Clear()
		return nil
	})
}
