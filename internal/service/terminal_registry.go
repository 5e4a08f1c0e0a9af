package service

import (
	"context"
	"sync"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
)

// TerminalRegistry 所有登入中的收銀台，key 為 session token
type TerminalRegistry struct {
	mu        sync.RWMutex
	terminals map[string]*Terminal
}

func NewTerminalRegistry() *TerminalRegistry {
	return &TerminalRegistry{terminals: make(map[string]*Terminal)}
}

// AddIfAbsent 同一個token已存在時回傳既有的收銀台
func (r *TerminalRegistry) AddIfAbsent(t *Terminal) *Terminal {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.terminals[t.token]; ok {
		return existing
	}
	r.terminals[t.token] = t
	return t
}

func (r *TerminalRegistry) Get(token string) (*Terminal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.terminals[token]
	return t, ok
}

func (r *TerminalRegistry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.terminals, token)
}

func (r *TerminalRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.terminals)
}

func (r *TerminalRegistry) snapshot() []*Terminal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Terminal, 0, len(r.terminals))
	for _, t := range r.terminals {
		out = append(out, t)
	}
	return out
}

// ReplaceCatalogs 商品異動後套用到所有收銀台
func (r *TerminalRegistry) ReplaceCatalogs(products []model.Product) {
	for _, t := range r.snapshot() {
		t.ReplaceCatalog(products)
	}
}

// NotifySaleCompleted 將銷售同步到其他收銀台
// 已有該筆銷售的收銀台略過，其餘的商品快取標記為過期
func (r *TerminalRegistry) NotifySaleCompleted(ctx context.Context, sale model.Sale) error {
	for _, t := range r.snapshot() {
		if t.AppendSale(sale) {
			t.catalog.MarkStale()
		}
	}
	return nil
}
