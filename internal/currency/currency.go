// Package currency owns monetary presentation for the POS: the closed
// table of supported currencies, locale-aware formatting, and the
// station-driven Service that tracks the active display currency of a
// terminal session.
package currency

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Code is an ISO 4217 currency code from the closed set the backend
// exchanges with terminals.
type Code string

const (
	PKR Code = "PKR"
	INR Code = "INR"
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	AED Code = "AED"
	SAR Code = "SAR"
	CNY Code = "CNY"
)

// DefaultCode is used whenever a currency cannot be resolved: unknown
// codes, failed station fetches, sessions without a station.
const DefaultCode = PKR

// Info describes one supported currency. The table is immutable for the
// process lifetime; entries are looked up by code.
type Info struct {
	Code   Code   // canonical code
	Symbol string // display symbol prefixed to amounts
	Name   string // human-readable name
	Locale string // BCP 47 tag driving digit grouping
}

// Formatting locales are deliberately all latin-digit, dot-decimal
// variants (en-IE for the euro, en-AE/en-SA for the gulf currencies) so
// that ParseCurrencyString can always recover the number it formatted.
var table = map[Code]Info{
	PKR: {Code: PKR, Symbol: "Rs", Name: "Pakistani Rupee", Locale: "en-PK"},
	INR: {Code: INR, Symbol: "₹", Name: "Indian Rupee", Locale: "en-IN"},
	USD: {Code: USD, Symbol: "$", Name: "US Dollar", Locale: "en-US"},
	EUR: {Code: EUR, Symbol: "€", Name: "Euro", Locale: "en-IE"},
	GBP: {Code: GBP, Symbol: "£", Name: "British Pound", Locale: "en-GB"},
	AED: {Code: AED, Symbol: "د.إ", Name: "UAE Dirham", Locale: "en-AE"},
	SAR: {Code: SAR, Symbol: "﷼", Name: "Saudi Riyal", Locale: "en-SA"},
	CNY: {Code: CNY, Symbol: "¥", Name: "Chinese Yuan", Locale: "zh-CN"},
}

// printers holds one message.Printer per currency, built once at init.
var printers = func() map[Code]*message.Printer {
	m := make(map[Code]*message.Printer, len(table))
	for code, info := range table {
		m[code] = message.NewPrinter(language.MustParse(info.Locale))
	}
	return m
}()

// Lookup returns the Info for code, falling back to the default currency
// for anything outside the closed set.
func Lookup(code Code) Info {
	if info, ok := table[code]; ok {
		return info
	}
	return table[DefaultCode]
}

// IsValidCurrency reports whether code belongs to the closed set.
func IsValidCurrency(code Code) bool {
	_, ok := table[code]
	return ok
}

// ParseCode normalizes a wire-format currency string ("pkr", " USD ")
// into a Code, reporting whether it is supported.
func ParseCode(s string) (Code, bool) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	return c, IsValidCurrency(c)
}

// GetCurrencySymbol returns the display symbol for code (the default
// currency's symbol for unknown codes), stable across calls.
func GetCurrencySymbol(code Code) string {
	return Lookup(code).Symbol
}

// FormatOption adjusts FormatAmount behavior.
type FormatOption func(*formatOptions)

type formatOptions struct {
	decimals int
}

// WithDecimals overrides the number of fraction digits (default 2).
func WithDecimals(n int) FormatOption {
	return func(o *formatOptions) {
		if n >= 0 {
			o.decimals = n
		}
	}
}

// FormatAmount renders amount with the currency's symbol and locale
// grouping, two fraction digits unless overridden. amount may be any
// numeric type or a string; strings are sanitized the same way as
// ParseCurrencyString. Unparseable input yields the symbol followed by
// "0" rather than an error.
func FormatAmount(amount any, code Code, opts ...FormatOption) string {
	o := formatOptions{decimals: 2}
	for _, opt := range opts {
		opt(&o)
	}
	info := Lookup(code)
	f, ok := toFloat(amount)
	if !ok {
		return info.Symbol + "0"
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	p := printers[info.Code]
	formatted := p.Sprint(number.Decimal(f,
		number.MinFractionDigits(o.decimals),
		number.MaxFractionDigits(o.decimals)))
	return sign + info.Symbol + formatted
}

// lakh is the South Asian counting unit PKR compact notation uses.
const lakh = 100_000

// FormatAmountCompact renders amount in an abbreviated form for
// dashboard tiles. PKR amounts of a lakh or more use lakh units with one
// decimal ("Rs2.5L"); other magnitudes and currencies use K/M/B
// notation. Amounts under a thousand are plain grouped integers. The
// parse contract matches FormatAmount: unparseable input yields the
// symbol followed by "0".
func FormatAmountCompact(amount any, code Code) string {
	info := Lookup(code)
	f, ok := toFloat(amount)
	if !ok {
		return info.Symbol + "0"
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	if info.Code == PKR && f >= lakh {
		return sign + info.Symbol + strconv.FormatFloat(f/lakh, 'f', 1, 64) + "L"
	}
	switch {
	case f >= 1e9:
		return sign + info.Symbol + compactDigits(f/1e9) + "B"
	case f >= 1e6:
		return sign + info.Symbol + compactDigits(f/1e6) + "M"
	case f >= 1e3:
		return sign + info.Symbol + compactDigits(f/1e3) + "K"
	}
	p := printers[info.Code]
	return sign + info.Symbol + p.Sprint(number.Decimal(math.Trunc(f), number.MaxFractionDigits(0)))
}

// compactDigits formats with one decimal, dropping a trailing ".0" so
// 1200000 reads "1.2M" but 1000000 reads "1M".
func compactDigits(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// ParseCurrencyString recovers a numeric value from a formatted amount.
// It keeps digits, the first decimal point that follows a digit, and a
// minus sign seen before any digit; symbols, grouping separators and
// stray text are dropped. The decimal point must follow a digit because
// some symbols ("د.إ") contain dots of their own. Malformed input
// yields 0, never an error.
func ParseCurrencyString(s string) float64 {
	f, ok := sanitizeAmount(s)
	if !ok {
		return 0
	}
	return f
}

// sanitizeAmount is the inner parser; the bool keeps the failure
// visible to callers that need to distinguish "zero" from "unparseable"
// (FormatAmount's symbol+"0" contract).
func sanitizeAmount(s string) (float64, bool) {
	var b strings.Builder
	seenDot := false
	seenDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			seenDigit = true
		case r == '.' && !seenDot && seenDigit:
			b.WriteRune(r)
			seenDot = true
		case (r == '-' || r == '−') && !seenDigit && b.Len() == 0:
			b.WriteRune('-')
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// toFloat widens any supported amount representation to float64.
func toFloat(amount any) (float64, bool) {
	switch v := amount.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		return sanitizeAmount(v)
	}
	return 0, false
}
