package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "1.500,00 MT", FormatCurrency(1500, "MZN"))
	assert.Equal(t, "2.350,50 MT", FormatCurrency(2350.5, "MZN"))
	assert.Equal(t, "150,00 MT", FormatCurrency(150, "MZN"))
	assert.Equal(t, "1.234.567,89 MT", FormatCurrency(1234567.89, "MZN"))
	assert.Equal(t, "$1.000,00", FormatCurrency(1000, "USD"))

	// Unknown codes fall back to meticais.
	assert.Equal(t, "100,00 MT", FormatCurrency(100, "XXX"))
}

func TestParseCurrencyAmount(t *testing.T) {
	amount, err := ParseCurrencyAmount("1.500,50 MT")
	require.NoError(t, err)
	assert.Equal(t, 1500.5, amount)

	amount, err = ParseCurrencyAmount("1500.50")
	require.NoError(t, err)
	assert.Equal(t, 1500.5, amount)

	_, err = ParseCurrencyAmount("abc")
	assert.Error(t, err)
}

func TestCalculateDiscount(t *testing.T) {
	assert.Equal(t, 150.0, CalculateDiscount(1500, 10, 0))
	assert.Equal(t, 100.0, CalculateDiscount(1500, 10, 100), "capped at max")
	assert.Equal(t, 0.0, CalculateDiscount(1500, 0, 0))
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 10.56, RoundCurrency(10.556))
	assert.Equal(t, 10.55, RoundCurrency(10.554))
	assert.Equal(t, 10.0, RoundCurrency(10.0001))
}
