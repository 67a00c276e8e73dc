package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var SupportedCurrencies = map[string]Currency{
	"MZN": {Code: "MZN", Symbol: "MT", Name: "Metical Moçambicano"},
	"ZAR": {Code: "ZAR", Symbol: "R", Name: "Rand Sul-Africano"},
	"USD": {Code: "USD", Symbol: "$", Name: "Dólar Americano"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
}

// FormatCurrency renders an amount the way prices are written locally,
// e.g. "1.500,00 MT" for meticais.
func FormatCurrency(amount float64, currencyCode string) string {
	currency, exists := SupportedCurrencies[currencyCode]
	if !exists {
		currency = SupportedCurrencies[DefaultCurrency]
	}

	amount = math.Round(amount*100) / 100

	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents < 0 {
		cents = -cents
	}

	grouped := groupThousands(whole)

	if currency.Code == "MZN" || currency.Code == "ZAR" {
		return fmt.Sprintf("%s,%02d %s", grouped, cents, currency.Symbol)
	}
	return fmt.Sprintf("%s%s,%02d", currency.Symbol, grouped, cents)
}

func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return sign + strings.Join(parts, ".")
}

// ParseCurrencyAmount accepts both "1.500,50 MT" and "1500.50" inputs.
func ParseCurrencyAmount(amountStr string) (float64, error) {
	cleaned := strings.TrimSpace(amountStr)
	for _, currency := range SupportedCurrencies {
		cleaned = strings.ReplaceAll(cleaned, currency.Symbol, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	return strconv.ParseFloat(cleaned, 64)
}

func GetCurrencySymbol(currencyCode string) string {
	currency, exists := SupportedCurrencies[currencyCode]
	if !exists {
		return "MT"
	}
	return currency.Symbol
}

func ValidateCurrencyCode(code string) bool {
	_, exists := SupportedCurrencies[code]
	return exists
}

func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func CalculateDiscount(amount float64, discountPercentage float64, maxDiscount float64) float64 {
	discount := amount * (discountPercentage / 100)
	if maxDiscount > 0 && discount > maxDiscount {
		discount = maxDiscount
	}
	return math.Round(discount*100) / 100
}

func CalculateCommission(amount float64, commissionRate float64) float64 {
	return math.Round(amount*(commissionRate/100)*100) / 100
}
