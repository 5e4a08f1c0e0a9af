package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals_Scenario(t *testing.T) {
	cart := NewCart()
	milk := newTestProduct(3, "4.80", 30)
	coke := newTestProduct(1, "2.50", 100)
	require.NoError(t, cart.Add(coke))
	require.NoError(t, cart.Add(coke))
	require.NoError(t, cart.Add(milk))

	totals := cart.Totals()
	require.True(t, totals.Subtotal.Equal(d("9.80")), totals.Subtotal.String())
	require.True(t, totals.Tax.Equal(d("1.862")), totals.Tax.String())
	require.True(t, totals.Total.Equal(d("11.662")), totals.Total.String())

	require.True(t, totals.AmountDue().Equal(d("11.66")))
	rounded := totals.Rounded()
	require.Equal(t, "11.66", rounded.Total.StringFixed(2))
	require.Equal(t, "1.86", rounded.Tax.StringFixed(2))
}

func TestCalculateTotals_PureAndIdempotent(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(newTestProduct(1, "3.20", 5)))

	first := cart.Totals()
	second := cart.Totals()
	require.True(t, first.Subtotal.Equal(second.Subtotal))
	require.True(t, first.Tax.Equal(second.Tax))
	require.True(t, first.Total.Equal(second.Total))
	require.Equal(t, 1, cart.Len())
}

func TestCalculateTotals_Empty(t *testing.T) {
	totals := CalculateTotals(nil)
	require.True(t, totals.Total.IsZero())
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod(" Cash ")
	require.NoError(t, err)
	require.Equal(t, PaymentCash, m)

	m, err = ParsePaymentMethod("")
	require.NoError(t, err)
	require.Equal(t, PaymentMethod(""), m)

	_, err = ParsePaymentMethod("bitcoin")
	require.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestParseTimeRange(t *testing.T) {
	r, err := ParseTimeRange("")
	require.NoError(t, err)
	require.Equal(t, RangeToday, r)

	r, err = ParseTimeRange("WEEK")
	require.NoError(t, err)
	require.Equal(t, RangeWeek, r)

	_, err = ParseTimeRange("decade")
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}
