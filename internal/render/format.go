package render

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Placeholder is shown for every missing scalar.
const Placeholder = "-"

// CurrencyUnit trails every formatted currency amount.
const CurrencyUnit = "원"

// Money formats an amount as grouped thousands with the currency unit.
// nil renders as Placeholder.
func Money(v *int64) string {
	if v == nil {
		return Placeholder
	}
	return MoneyValue(*v)
}

// MoneyValue formats a non-nullable amount like Money.
func MoneyValue(v int64) string {
	return humanize.Comma(v) + CurrencyUnit
}

// Number formats grouped thousands without a unit. Used for tables whose
// header already names the unit (thousands of won).
func Number(v *int64) string {
	if v == nil {
		return Placeholder
	}
	return humanize.Comma(*v)
}

// Pct formats a percentage with two decimals and a trailing %.
// nil renders as Placeholder.
func Pct(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return PctValue(*v)
}

// PctValue formats a non-nullable percentage like Pct.
func PctValue(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Rate formats a marginal tax rate without trailing zeros ("24%").
func Rate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// Text substitutes Placeholder for an empty string.
func Text(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// Year formats a nullable year.
func Year(v *int) string {
	if v == nil {
		return Placeholder
	}
	return strconv.Itoa(*v)
}
