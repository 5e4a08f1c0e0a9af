package service

import (
	"sort"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/shopspring/decimal"
)

// RangeStart 區間起點，以 now 的時區計算
// week 從最近一個週日 00:00 起算
// all 回傳零值
func RangeStart(rng model.TimeRange, now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch rng {
	case model.RangeToday:
		return today
	case model.RangeWeek:
		return today.AddDate(0, 0, -int(today.Weekday()))
	case model.RangeMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case model.RangeYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Time{}
	}
}

func inRange(sale model.Sale, rng model.TimeRange, now time.Time) bool {
	switch rng {
	case model.RangeAll:
		return true
	case model.RangeToday:
		sy, sm, sd := sale.SoldAt.In(now.Location()).Date()
		ny, nm, nd := now.Date()
		return sy == ny && sm == nm && sd == nd
	default:
		return !sale.SoldAt.Before(RangeStart(rng, now))
	}
}

// FilterSales 保留原本順序
func FilterSales(sales []model.Sale, rng model.TimeRange, now time.Time) []model.Sale {
	out := make([]model.Sale, 0, len(sales))
	for _, sale := range sales {
		if inRange(sale, rng, now) {
			out = append(out, sale)
		}
	}
	return out
}

// AggregateSales 純函式，不修改傳入的銷售紀錄
// 分類、付款方式、商品都依第一次出現的順序，排行榜排序為穩定排序
func AggregateSales(sales []model.Sale, rng model.TimeRange, now time.Time) model.SalesReport {
	filtered := FilterSales(sales, rng, now)

	report := model.SalesReport{
		Range:           rng,
		GeneratedAt:     now,
		Revenue:         decimal.Zero,
		AverageSale:     decimal.Zero,
		CategoryRevenue: []model.CategoryRevenue{},
		PaymentMethods:  []model.PaymentMethodCount{},
		TopProducts:     []model.ProductSales{},
	}

	categoryIdx := map[string]int{}
	methodIdx := map[model.PaymentMethod]int{}
	productIdx := map[uint]int{}

	for _, sale := range filtered {
		report.Revenue = report.Revenue.Add(sale.Total)
		report.SaleCount++

		if i, ok := methodIdx[sale.PaymentMethod]; ok {
			report.PaymentMethods[i].Count++
		} else {
			methodIdx[sale.PaymentMethod] = len(report.PaymentMethods)
			report.PaymentMethods = append(report.PaymentMethods, model.PaymentMethodCount{Method: sale.PaymentMethod, Count: 1})
		}

		for _, item := range sale.Items {
			amount := item.Amount()
			report.UnitsSold += item.Quantity

			if i, ok := categoryIdx[item.Category]; ok {
				report.CategoryRevenue[i].Revenue = report.CategoryRevenue[i].Revenue.Add(amount)
			} else {
				categoryIdx[item.Category] = len(report.CategoryRevenue)
				report.CategoryRevenue = append(report.CategoryRevenue, model.CategoryRevenue{Category: item.Category, Revenue: amount})
			}

			if i, ok := productIdx[item.ProductID]; ok {
				report.TopProducts[i].Quantity += item.Quantity
				report.TopProducts[i].Revenue = report.TopProducts[i].Revenue.Add(amount)
			} else {
				productIdx[item.ProductID] = len(report.TopProducts)
				report.TopProducts = append(report.TopProducts, model.ProductSales{
					ProductID: item.ProductID,
					Name:      item.Name,
					Quantity:  item.Quantity,
					Revenue:   amount,
				})
			}
		}
	}

	if report.SaleCount > 0 {
		report.AverageSale = report.Revenue.Div(decimal.NewFromInt(int64(report.SaleCount))).Round(2)
	}

	sort.SliceStable(report.TopProducts, func(i, j int) bool {
		return report.TopProducts[i].Quantity > report.TopProducts[j].Quantity
	})
	if len(report.TopProducts) > constants.TopProductsLimit {
		report.TopProducts = report.TopProducts[:constants.TopProductsLimit]
	}
	return report
}
