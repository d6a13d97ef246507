package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRatio(t *testing.T) {
	r, err := Ratio(dec("500"), dec("1000"), 4)
	require.NoError(t, err)
	assert.Equal(t, "0.5000", r.StringFixed(4))

	// negative numerator is allowed (savings rate can be negative)
	r, err = Ratio(dec("-200"), dec("1000"), 4)
	require.NoError(t, err)
	assert.Equal(t, "-0.2000", r.StringFixed(4))
}

func TestRatioHalfUp(t *testing.T) {
	// 1/3 at 4dp
	r, err := Ratio(dec("1"), dec("3"), 4)
	require.NoError(t, err)
	assert.Equal(t, "0.3333", r.StringFixed(4))

	// 0.00005 rounds up at 4dp
	r, err = Ratio(dec("5"), dec("100000"), 4)
	require.NoError(t, err)
	assert.Equal(t, "0.0001", r.StringFixed(4))
}

func TestRatioDivisionByZero(t *testing.T) {
	_, err := Ratio(dec("10"), decimal.Zero, 4)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPercentage(t *testing.T) {
	p, err := Percentage(dec("755"), dec("1000"), 0)
	require.NoError(t, err)
	assert.Equal(t, "76", p.StringFixed(0)) // 75.5 rounds half-up

	p, err = Percentage(dec("350"), dec("1000"), 2)
	require.NoError(t, err)
	assert.Equal(t, "35.00", p.StringFixed(2))

	_, err = Percentage(dec("10"), decimal.Zero, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestClamp(t *testing.T) {
	assert.True(t, Clamp(dec("-5"), decimal.Zero).IsZero())
	assert.Equal(t, "3", Clamp(dec("3"), decimal.Zero).String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1234.50", Format(dec("1234.5")))
	assert.Equal(t, "0.00", Format(decimal.Zero))
}
