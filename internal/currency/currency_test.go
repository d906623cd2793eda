package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrencySymbol(t *testing.T) {
	want := map[Code]string{
		PKR: "Rs",
		INR: "₹",
		USD: "$",
		EUR: "€",
		GBP: "£",
		AED: "د.إ",
		SAR: "﷼",
		CNY: "¥",
	}
	for code, symbol := range want {
		assert.Equal(t, symbol, GetCurrencySymbol(code), "symbol for %s", code)
		// stable across calls
		assert.Equal(t, symbol, GetCurrencySymbol(code))
	}
	// unknown codes fall back to the default currency's symbol
	assert.Equal(t, "Rs", GetCurrencySymbol(Code("XXX")))
}

func TestIsValidCurrency(t *testing.T) {
	for _, code := range []Code{PKR, INR, USD, EUR, GBP, AED, SAR, CNY} {
		assert.True(t, IsValidCurrency(code))
	}
	assert.False(t, IsValidCurrency(Code("BTC")))
	assert.False(t, IsValidCurrency(Code("")))
}

func TestParseCode(t *testing.T) {
	c, ok := ParseCode(" usd ")
	require.True(t, ok)
	assert.Equal(t, USD, c)

	_, ok = ParseCode("doubloon")
	assert.False(t, ok)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$1,234.56", FormatAmount(1234.56, USD))
	assert.Equal(t, "$1,235", FormatAmount(1234.56, USD, WithDecimals(0)))
	assert.Equal(t, "-$1,234.56", FormatAmount(-1234.56, USD))

	// string amounts go through the same sanitizer as ParseCurrencyString
	assert.Equal(t, "$1,234.50", FormatAmount("1234.5", USD))

	// non-numeric input never throws, it degrades to symbol + "0"
	assert.Equal(t, "$0", FormatAmount("not-a-number", USD))
	assert.Equal(t, "Rs0", FormatAmount(struct{}{}, PKR))
}

// Formatting then parsing must recover the amount for every supported
// currency, which is why the locale table sticks to latin-digit,
// dot-decimal locales.
func TestParseFormatRoundTrip(t *testing.T) {
	amounts := []float64{0, 0.99, 1, 999.99, 1234.56, 250000, 1234567.89, -42.5, -1234567.89}
	for code := range table {
		for _, a := range amounts {
			got := ParseCurrencyString(FormatAmount(a, code))
			assert.InDelta(t, a, got, 0.005, "round trip %v %s", a, code)
		}
	}
}

func TestParseCurrencyString(t *testing.T) {
	assert.Equal(t, 2500.75, ParseCurrencyString("Rs2,500.75"))
	assert.Equal(t, -1234.56, ParseCurrencyString("-$1,234.56"))
	assert.Equal(t, 1234.0, ParseCurrencyString("PKR 1,234"))
	assert.Equal(t, 0.0, ParseCurrencyString(""))
	assert.Equal(t, 0.0, ParseCurrencyString("not-a-number"))
	assert.Equal(t, 0.0, ParseCurrencyString("--"))
	// only the first decimal point survives
	assert.Equal(t, 1.23, ParseCurrencyString("1.2.3"))
	// the dot inside the dirham symbol is not a decimal point
	assert.Equal(t, 1234.56, ParseCurrencyString("د.إ1,234.56"))
}

func TestFormatAmountCompactLakh(t *testing.T) {
	// PKR at or above one lakh switches to lakh units
	assert.Equal(t, "Rs2.5L", FormatAmountCompact(250000, PKR))
	assert.Equal(t, "Rs1.0L", FormatAmountCompact(100000, PKR))
	assert.Equal(t, "Rs27.5L", FormatAmountCompact(2750000, PKR))
	assert.Equal(t, "-Rs2.5L", FormatAmountCompact(-250000, PKR))

	// below the lakh threshold PKR behaves like everyone else
	assert.Equal(t, "Rs999", FormatAmountCompact(999, PKR))
	assert.Equal(t, "Rs99.5K", FormatAmountCompact(99500, PKR))
}

func TestFormatAmountCompact(t *testing.T) {
	assert.Equal(t, "$1.2K", FormatAmountCompact(1200, USD))
	assert.Equal(t, "$250K", FormatAmountCompact(250000, USD))
	assert.Equal(t, "$3.4M", FormatAmountCompact(3400000, USD))
	assert.Equal(t, "$1B", FormatAmountCompact(1_000_000_000, USD))
	assert.Equal(t, "$999", FormatAmountCompact(999, USD))
	assert.Equal(t, "-€1.2K", FormatAmountCompact(-1200, EUR))

	// same degradation contract as FormatAmount
	assert.Equal(t, "$0", FormatAmountCompact("not-a-number", USD))
}
