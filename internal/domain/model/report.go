package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TimeRange string

const (
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

// ParseTimeRange 空字串視為 today，與收銀畫面預設一致
func ParseTimeRange(s string) (TimeRange, error) {
	switch r := TimeRange(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RangeToday, nil
	case RangeToday, RangeWeek, RangeMonth, RangeYear, RangeAll:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}
}

type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type PaymentMethodCount struct {
	Method PaymentMethod `json:"method"`
	Count  int           `json:"count"`
}

type ProductSales struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SalesReport 區間報表
// 分類與付款方式依第一次出現的順序排列
type SalesReport struct {
	Range           TimeRange            `json:"range"`
	GeneratedAt     time.Time            `json:"generated_at"`
	Revenue         decimal.Decimal      `json:"revenue"`
	SaleCount       int                  `json:"sale_count"`
	UnitsSold       int                  `json:"units_sold"`
	AverageSale     decimal.Decimal      `json:"average_sale"`
	CategoryRevenue []CategoryRevenue    `json:"category_revenue"`
	PaymentMethods  []PaymentMethodCount `json:"payment_methods"`
	TopProducts     []ProductSales       `json:"top_products"`
}

// Dashboard 首頁統計
type Dashboard struct {
	TotalProducts    int             `json:"total_products"`
	LowStockProducts int             `json:"low_stock_products"`
	TodaySales       int             `json:"today_sales"`
	TodayRevenue     decimal.Decimal `json:"today_revenue"`
}
