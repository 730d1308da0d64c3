package engine

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ============================================================================
// FORMATTING — Locale-aware money and number rendering
// ============================================================================

// symbolSeparator joins the currency symbol and the amount, as CLDR does.
const symbolSeparator = "\u00a0"

// Money formats amounts in one currency for one locale.
type Money struct {
	code    string
	symbol  string
	printer *message.Printer
}

// NewMoney builds a formatter. The symbol comes from the locale's CLDR data;
// an unknown currency code is printed verbatim and an unparseable locale
// falls back to English.
func NewMoney(code, locale string) Money {
	code = strings.ToUpper(strings.TrimSpace(code))
	printer := message.NewPrinter(parseLocale(locale))
	symbol := code
	if unit, err := currency.ParseISO(code); err == nil {
		code = unit.String()
		symbol = printer.Sprint(currency.Symbol(unit))
	}
	return Money{code: code, symbol: symbol, printer: printer}
}

func parseLocale(locale string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English
	}
	return tag
}

// Code returns the ISO 4217 code.
func (m Money) Code() string { return m.code }

// Format renders v with two decimals, e.g. "R$\u00a01.234,50" for pt-BR.
func (m Money) Format(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + m.symbol + symbolSeparator + m.printer.Sprintf("%v", number.Decimal(v, number.Scale(2)))
}

// Int renders a count with locale grouping, e.g. "1.234" for pt-BR.
func (m Money) Int(n int) string {
	return m.printer.Sprintf("%v", number.Decimal(n))
}

// ============================================================================
// ROUNDING
// ============================================================================

// roundTo rounds half to even at the given number of decimals:
// 2.25 → 2.2, 1.125 → 1.12.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.RoundToEven(v*p) / p
}

// plainNumber prints v in its shortest form with at least one decimal:
// 12.30 → "12.3", 64 → "64.0".
func plainNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
