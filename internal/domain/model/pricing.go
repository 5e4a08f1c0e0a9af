package model

import "github.com/shopspring/decimal"

// TaxRate 固定稅率 19%
var TaxRate = decimal.RequireFromString("0.19")

// Totals 購物車金額，未經四捨五入
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// CalculateTotals 只使用加入購物車當下的單價
func CalculateTotals(lines []CartLine) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amount())
	}
	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Rounded 顯示用，四捨五入到分
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		Tax:      t.Tax.Round(2),
		Total:    t.Total.Round(2),
	}
}

// AmountDue 實際應收金額，與畫面顯示一致
func (t Totals) AmountDue() decimal.Decimal {
	return t.Total.Round(2)
}
