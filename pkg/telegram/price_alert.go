package telegram

import (
	"fmt"
	"math"

	"golang-stock-dashboard/pkg/utils"
)

// FormatPriceAlert builds the message sent when a watched symbol moves more
// than the configured threshold between two refreshes.
func FormatPriceAlert(symbol string, prevPrice, newPrice, movePercent float64) string {
	direction := "📈 up"
	if newPrice < prevPrice {
		direction = "📉 down"
	}
	return fmt.Sprintf("*%s* moved %s %.2f%%\n%s → %s",
		symbol, direction, math.Abs(movePercent),
		utils.FormatINR(prevPrice), utils.FormatINR(newPrice))
}
