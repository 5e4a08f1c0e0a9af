package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func saleAt(id string, at time.Time, method model.PaymentMethod, items ...model.SaleItem) model.Sale {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount())
	}
	return model.Sale{
		SaleID:        id,
		SoldAt:        at,
		Items:         items,
		Total:         total.Mul(decimal.RequireFromString("1.19")).Round(2),
		PaymentMethod: method,
	}
}

func item(id uint, category string, qty int, price string) model.SaleItem {
	return model.SaleItem{
		ProductID: id,
		Name:      fmt.Sprintf("product-%d", id),
		Category:  category,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
	}
}

var loc = time.FixedZone("UTC-5", -5*60*60)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, loc)
}

func TestAggregateSales_TodayOverThreeDays(t *testing.T) {
	now := day(2024, time.March, 6, 15)
	sales := []model.Sale{
		saleAt("a", day(2024, time.March, 4, 10), model.PaymentCash, item(1, "Bebidas", 1, "2.50")),
		saleAt("b", day(2024, time.March, 5, 23), model.PaymentCard, item(1, "Bebidas", 1, "2.50")),
		saleAt("c", day(2024, time.March, 6, 0), model.PaymentCash, item(1, "Bebidas", 2, "2.50")),
		saleAt("d", day(2024, time.March, 6, 14), model.PaymentTransfer, item(3, "Lácteos", 1, "4.80")),
	}

	filtered := FilterSales(sales, model.RangeToday, now)
	require.Len(t, filtered, 2)
	require.Equal(t, "c", filtered[0].SaleID)
	require.Equal(t, "d", filtered[1].SaleID)

	// 以當地日期判斷，UTC 已跨日但當地仍是今天
	utcLate := saleAt("e", time.Date(2024, time.March, 7, 3, 0, 0, 0, time.UTC), model.PaymentCash, item(1, "Bebidas", 1, "2.50"))
	require.Len(t, FilterSales(append(sales, utcLate), model.RangeToday, now), 3)
}

func TestAggregateSales_Ranges(t *testing.T) {
	now := day(2024, time.March, 6, 15) // 週三
	sales := []model.Sale{
		saleAt("lastYear", day(2023, time.December, 31, 23), model.PaymentCash, item(1, "A", 1, "1.00")),
		saleAt("jan1", day(2024, time.January, 1, 0), model.PaymentCash, item(1, "A", 1, "1.00")),
		saleAt("feb29", day(2024, time.February, 29, 12), model.PaymentCash, item(1, "A", 1, "1.00")),
		saleAt("mar1", day(2024, time.March, 1, 0), model.PaymentCash, item(1, "A", 1, "1.00")),
		saleAt("sat", day(2024, time.March, 2, 23), model.PaymentCash, item(1, "A", 1, "1.00")),
		saleAt("sun", day(2024, time.March, 3, 0), model.PaymentCash, item(1, "A", 1, "1.00")),
		saleAt("wed", day(2024, time.March, 6, 9), model.PaymentCash, item(1, "A", 1, "1.00")),
	}

	ids := func(rng model.TimeRange) []string {
		var out []string
		for _, s := range FilterSales(sales, rng, now) {
			out = append(out, s.SaleID)
		}
		return out
	}

	require.Equal(t, []string{"wed"}, ids(model.RangeToday))
	require.Equal(t, []string{"sun", "wed"}, ids(model.RangeWeek))
	require.Equal(t, []string{"mar1", "sat", "sun", "wed"}, ids(model.RangeMonth))
	require.Equal(t, []string{"jan1", "feb29", "mar1", "sat", "sun", "wed"}, ids(model.RangeYear))
	require.Len(t, ids(model.RangeAll), 7)

	require.Equal(t, day(2024, time.March, 3, 0), RangeStart(model.RangeWeek, now))
}

func TestAggregateSales_WeekOnSunday(t *testing.T) {
	now := day(2024, time.March, 3, 8)
	require.Equal(t, day(2024, time.March, 3, 0), RangeStart(model.RangeWeek, now))
}

func TestAggregateSales_Summary(t *testing.T) {
	now := day(2024, time.March, 6, 15)
	sales := []model.Sale{
		saleAt("1", day(2024, time.March, 6, 9), model.PaymentCash,
			item(1, "Bebidas", 2, "2.50"), item(3, "Lácteos", 1, "4.80")),
		saleAt("2", day(2024, time.March, 6, 10), model.PaymentCard,
			item(1, "Bebidas", 1, "2.50")),
		saleAt("3", day(2024, time.March, 6, 11), model.PaymentCash,
			item(4, "Snacks", 1, "3.90")),
	}

	report := AggregateSales(sales, model.RangeToday, now)
	require.Equal(t, 3, report.SaleCount)
	require.Equal(t, 5, report.UnitsSold)
	require.Equal(t, "11.66", sales[0].Total.StringFixed(2))

	expectedRevenue := sales[0].Total.Add(sales[1].Total).Add(sales[2].Total)
	require.True(t, report.Revenue.Equal(expectedRevenue))
	require.True(t, report.AverageSale.Equal(expectedRevenue.Div(decimal.NewFromInt(3)).Round(2)))

	require.Len(t, report.CategoryRevenue, 3)
	require.Equal(t, "Bebidas", report.CategoryRevenue[0].Category)
	require.True(t, report.CategoryRevenue[0].Revenue.Equal(decimal.RequireFromString("7.50")))
	require.Equal(t, "Lácteos", report.CategoryRevenue[1].Category)
	require.Equal(t, "Snacks", report.CategoryRevenue[2].Category)

	require.Equal(t, []model.PaymentMethodCount{
		{Method: model.PaymentCash, Count: 2},
		{Method: model.PaymentCard, Count: 1},
	}, report.PaymentMethods)

	require.Equal(t, uint(1), report.TopProducts[0].ProductID)
	require.Equal(t, 3, report.TopProducts[0].Quantity)
	require.True(t, report.TopProducts[0].Revenue.Equal(decimal.RequireFromString("7.50")))
}

func TestAggregateSales_Empty(t *testing.T) {
	report := AggregateSales(nil, model.RangeAll, time.Now())
	require.Equal(t, 0, report.SaleCount)
	require.True(t, report.AverageSale.IsZero())
	require.True(t, report.Revenue.IsZero())
	require.NotNil(t, report.TopProducts)
}

func TestAggregateSales_TopTen(t *testing.T) {
	now := day(2024, time.March, 6, 15)
	var items []model.SaleItem
	// 12 種商品，數量 1..12，其中 5 與 6 號同為數量 5
	for i := 1; i <= 12; i++ {
		qty := i
		if i == 6 {
			qty = 5
		}
		items = append(items, item(uint(i), "A", qty, "1.00"))
	}
	sales := []model.Sale{saleAt("x", day(2024, time.March, 6, 9), model.PaymentCash, items...)}

	report := AggregateSales(sales, model.RangeAll, now)
	require.Len(t, report.TopProducts, 10)
	for i := 1; i < len(report.TopProducts); i++ {
		require.GreaterOrEqual(t, report.TopProducts[i-1].Quantity, report.TopProducts[i].Quantity)
	}
	require.Equal(t, uint(12), report.TopProducts[0].ProductID)

	// 同數量依第一次出現順序
	var tied []uint
	for _, p := range report.TopProducts {
		if p.Quantity == 5 {
			tied = append(tied, p.ProductID)
		}
	}
	require.Equal(t, []uint{5, 6}, tied)
}

func TestAggregateSales_DoesNotMutateInput(t *testing.T) {
	now := day(2024, time.March, 6, 15)
	sales := []model.Sale{saleAt("1", now, model.PaymentCash, item(1, "A", 1, "1.00"), item(2, "B", 3, "1.00"))}
	AggregateSales(sales, model.RangeAll, now)
	require.Equal(t, uint(1), sales[0].Items[0].ProductID)
}
