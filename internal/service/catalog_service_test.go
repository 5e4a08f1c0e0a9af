package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CRUDRefreshesTerminals(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(coke())
	registry := NewTerminalRegistry()
	term := registry.AddIfAbsent(NewTerminal("tok", model.Identity{UserID: 7}, []model.Product{coke()}, nil, nil))
	s := NewCatalogService(store, registry)

	p, err := s.Create(ctx, ProductInput{Name: " Pan de molde ", Category: "Panadería", Price: dec("3.20"), Stock: 50})
	require.NoError(t, err)
	require.Equal(t, "Pan de molde", p.Name)
	require.Equal(t, 2, term.Catalog().Len())

	_, err = s.Update(ctx, p.ProductID, ProductInput{Name: "Pan integral", Price: dec("3.50"), Stock: 10})
	require.NoError(t, err)
	got, ok := term.Catalog().Get(p.ProductID)
	require.True(t, ok)
	require.Equal(t, "Pan integral", got.Name)

	require.NoError(t, s.Delete(ctx, p.ProductID))
	require.Equal(t, 1, term.Catalog().Len())

	require.ErrorIs(t, s.Delete(ctx, p.ProductID), ErrNotFound)
	_, err = s.Update(ctx, 999, ProductInput{Name: "x", Price: dec("1")})
	require.ErrorIs(t, err, ErrNotFound)

	require.Len(t, s.List(ctx, term, "coca"), 1)
}

func TestCatalogService_Validation(t *testing.T) {
	s := NewCatalogService(newFakeStore(), NewTerminalRegistry())
	ctx := context.Background()

	_, err := s.Create(ctx, ProductInput{Name: " ", Price: dec("1")})
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.Create(ctx, ProductInput{Name: "x", Price: dec("-1")})
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.Create(ctx, ProductInput{Name: "x", Price: dec("1"), Stock: -1})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReportService_DashboardAndRange(t *testing.T) {
	ctx := context.Background()
	now := day(2024, 3, 6, 15)
	low := milk()
	low.Stock = 5
	sales := []model.Sale{
		saleAt("1", day(2024, 3, 6, 9), model.PaymentCash, item(1, "Bebidas", 2, "2.50"), item(3, "Lácteos", 1, "4.80")),
		saleAt("2", day(2024, 3, 1, 9), model.PaymentCard, item(1, "Bebidas", 1, "2.50")),
	}
	term := NewTerminal("tok", model.Identity{UserID: 7}, []model.Product{coke(), low}, sales, nil)
	s := NewReportService(0, fixedClock(now))

	dash := s.Dashboard(ctx, term)
	require.Equal(t, 2, dash.TotalProducts)
	require.Equal(t, 1, dash.LowStockProducts)
	require.Equal(t, 1, dash.TodaySales)
	require.Equal(t, "11.66", dash.TodayRevenue.StringFixed(2))

	require.Equal(t, 1, s.Report(ctx, term).SaleCount)

	r, err := s.SelectRange(ctx, term, "month")
	require.NoError(t, err)
	require.Equal(t, 2, r.SaleCount)
	require.Equal(t, model.RangeMonth, s.Report(ctx, term).Range)

	_, err = s.SelectRange(ctx, term, "decade")
	require.ErrorIs(t, err, ErrInvalidArgument)

	pdf, err := s.ExportPDF(ctx, term)
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(pdf[:4]))
}

func TestReportService_LowStockThresholdUpdate(t *testing.T) {
	ctx := context.Background()
	low := milk()
	low.Stock = 5
	term := NewTerminal("tok", model.Identity{UserID: 7}, []model.Product{coke(), low}, nil, nil)
	s := NewReportService(3, nil)

	require.Equal(t, 0, s.Dashboard(ctx, term).LowStockProducts)

	s.SetLowStockThreshold(10)
	require.Equal(t, 1, s.Dashboard(ctx, term).LowStockProducts)

	s.SetLowStockThreshold(0)
	require.Equal(t, 20, s.LowStockThreshold())
}
