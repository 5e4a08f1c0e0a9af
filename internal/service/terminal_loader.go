package service

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type TerminalStore interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListSales(ctx context.Context) ([]model.Sale, error)
}

type CartDraftStore interface {
	Save(ctx context.Context, userID uint, lines []model.CartLine) error
	Load(ctx context.Context, userID uint) ([]model.CartLine, error)
	Delete(ctx context.Context, userID uint) error
}

// TerminalLoader 登入後建立收銀台狀態
type TerminalLoader struct {
	store  TerminalStore
	drafts CartDraftStore
	logger *zerolog.Logger
}

// drafts 可為nil，代表不還原購物車
func NewTerminalLoader(store TerminalStore, drafts CartDraftStore, logger *zerolog.Logger) *TerminalLoader {
	if store == nil {
		panic("terminal loader store can't be nil")
	}
	if logger == nil {
		logger = &log.Logger
	}
	return &TerminalLoader{store: store, drafts: drafts, logger: logger}
}

// Load 商品、銷售、購物車暫存並行載入
// 購物車暫存讀取失敗只記錄，不影響登入
func (l *TerminalLoader) Load(ctx context.Context, token string, identity model.Identity) (*Terminal, error) {
	var (
		products []model.Product
		sales    []model.Sale
		draft    []model.CartLine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = l.store.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = l.store.ListSales(gctx)
		return err
	})
	if l.drafts != nil {
		g.Go(func() error {
			lines, err := l.drafts.Load(gctx, identity.UserID)
			if err != nil {
				l.logger.Warn().Err(err).Uint("user_id", identity.UserID).Msg("failed to load cart draft")
				return nil
			}
			draft = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, translateStoreErr(err)
	}

	return NewTerminal(token, identity, products, sales, reconcileDraft(draft, products)), nil
}

// reconcileDraft 暫存的明細依目前庫存修正
// 商品已刪除或無庫存的明細丟棄，數量最多到庫存
func reconcileDraft(lines []model.CartLine, products []model.Product) *model.Cart {
	stock := make(map[uint]int, len(products))
	for _, p := range products {
		stock[p.ProductID] = p.Stock
	}

	restored := model.RestoreCart(lines).Lines()
	kept := make([]model.CartLine, 0, len(restored))
	for _, line := range restored {
		available, ok := stock[line.ProductID]
		if !ok || available <= 0 {
			continue
		}
		if line.Quantity > available {
			line.Quantity = available
		}
		kept = append(kept, line)
	}
	return model.RestoreCart(kept)
}
