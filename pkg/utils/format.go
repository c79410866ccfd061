package utils

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is rendered wherever a numeric field is missing or not finite.
const Placeholder = "—"

// Magnitude thresholds for Indian currency display.
const (
	CroreValue = 10_000_000
	LakhValue  = 100_000
)

var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

// IsFinite reports whether v is a usable number (not NaN or ±Inf).
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatINR formats a rupee amount using Indian magnitude conventions:
// amounts of at least one crore render as "₹X.XX Cr", at least one lakh as
// "₹X.XX L", and smaller amounts with en-IN digit grouping.
func FormatINR(v float64) string {
	if !IsFinite(v) {
		return Placeholder
	}
	abs := math.Abs(v)
	switch {
	case abs >= CroreValue:
		return fmt.Sprintf("₹%.2f Cr", v/CroreValue)
	case abs >= LakhValue:
		return fmt.Sprintf("₹%.2f L", v/LakhValue)
	default:
		return indianPrinter.Sprintf("₹%v", number.Decimal(v, number.MaxFractionDigits(2)))
	}
}

// FormatChange renders a price change and its percentage with an explicit
// sign, e.g. "+3.00 (+1.25%)" or "-5.25 (-1.10%)".
func FormatChange(change, changePercent float64) string {
	if !IsFinite(change) || !IsFinite(changePercent) {
		return Placeholder
	}
	return fmt.Sprintf("%+.2f (%+.2f%%)", change, changePercent)
}

// FormatQuantity formats an integer count with en-IN digit grouping.
func FormatQuantity(v int64) string {
	return indianPrinter.Sprintf("%v", number.Decimal(v))
}

// FormatOptionalINR renders v as currency, or the placeholder when the
// upstream did not supply the field (zero means absent for these fields).
func FormatOptionalINR(v float64) string {
	if v == 0 || !IsFinite(v) {
		return Placeholder
	}
	return FormatINR(v)
}
