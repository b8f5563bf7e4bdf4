// Package format renders numbers and dates as display strings for the
// dashboard: currency, compact currency, percentages, grouped numbers,
// and date labels.
package format

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// Currency renders a USD amount with grouping and two decimals:
// 1234.56 -> "$1,234.56", -500 -> "-$500.00".
func Currency(v decimal.Decimal) string {
	cents := v.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// CompactCurrency renders a USD amount with a magnitude suffix and at
// most one decimal: 1500 -> "$1.5K", 1500000 -> "$1.5M".
func CompactCurrency(v decimal.Decimal) string {
	sign := ""
	abs := v
	if v.IsNegative() {
		sign = "-"
		abs = v.Neg()
	}

	switch {
	case abs.GreaterThanOrEqual(billion):
		return sign + "$" + compactDigits(abs.Div(billion)) + "B"
	case abs.GreaterThanOrEqual(million):
		return sign + "$" + compactDigits(abs.Div(million)) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return sign + "$" + compactDigits(abs.Div(thousand)) + "K"
	default:
		return sign + "$" + compactDigits(abs)
	}
}

// compactDigits rounds to one decimal and drops a trailing ".0"
func compactDigits(v decimal.Decimal) string {
	rounded := v.Round(1)
	if rounded.IsInteger() {
		return rounded.StringFixed(0)
	}
	return rounded.StringFixed(1)
}

// Percentage renders a percentage with a fixed number of decimals:
// Percentage(45.6789, 1) -> "45.7%".
func Percentage(v decimal.Decimal, decimals int32) string {
	return v.StringFixed(decimals) + "%"
}

// Number renders a number with thousands grouping and a fixed number
// of decimals: Number(1234.5678, 2) -> "1,234.57".
func Number(v decimal.Decimal, decimals int32) string {
	sign := ""
	abs := v
	if v.IsNegative() {
		sign = "-"
		abs = v.Neg()
	}

	fixed := abs.StringFixed(decimals)
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")
	grouped := groupThousands(intPart)
	if hasFrac {
		return sign + grouped + "." + fracPart
	}
	return sign + grouped
}

// groupThousands inserts commas every three digits from the right
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date renders a plain date as a full label: "2024-01-15" -> "Jan 15, 2024".
// Timestamps are accepted too; unparseable input is returned unchanged.
func Date(date string) string {
	if t, ok := parseDate(date); ok {
		return t.Format("Jan 2, 2006")
	}
	return date
}

// ChartDate renders a plain date as a short axis label: "2024-01-15" -> "Jan 15".
func ChartDate(date string) string {
	if t, ok := parseDate(date); ok {
		return t.Format("Jan 2")
	}
	return date
}

func parseDate(date string) (time.Time, bool) {
	if t, err := time.Parse(domain.DateFormat, date); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// assetTypeLabels maps each asset class to its display label
var assetTypeLabels = map[domain.AssetType]string{
	domain.AssetTypeStock:  "Stocks",
	domain.AssetTypeCrypto: "Crypto",
	domain.AssetTypeFiat:   "Cash",
}

// AssetTypeLabel returns the display label for an asset class; an
// unrecognized class falls back to its raw value
func AssetTypeLabel(t domain.AssetType) string {
	if label, ok := assetTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// assetTypeColors maps each asset class to its chart color
var assetTypeColors = map[domain.AssetType]string{
	domain.AssetTypeStock:  "#3b82f6",
	domain.AssetTypeCrypto: "#8b5cf6",
	domain.AssetTypeFiat:   "#10b981",
}

// fallbackColor is used for unrecognized asset classes
const fallbackColor = "#6b7280"

// AssetTypeColor returns the chart color for an asset class, with a
// defined fallback for unrecognized classes
func AssetTypeColor(t domain.AssetType) string {
	if color, ok := assetTypeColors[t]; ok {
		return color
	}
	return fallbackColor
}
