package entity

// Rating labels assigned from the recommendation score.
const (
	RatingStrongBuy = "Strong Buy"
	RatingBuy       = "Buy"
	RatingHold      = "Hold"
	RatingSell      = "Sell"
)

// Risk level labels derived from annualized volatility.
const (
	RiskLevelLow    = "Low"
	RiskLevelMedium = "Medium"
	RiskLevelHigh   = "High"
)

// Recommendation holds the scored assessment of one symbol.
type Recommendation struct {
	Score      int      `json:"score"`
	Rating     string   `json:"rating"`
	Reasons    []string `json:"reasons"`
	RiskLevel  string   `json:"risk_level"`
	Volatility float64  `json:"volatility"`
	RiskMatch  bool     `json:"risk_match"`
}

// RecommendationResult pairs a scored symbol with what the user's budget
// can buy of it.
type RecommendationResult struct {
	Symbol           string         `json:"symbol"`
	Name             string         `json:"name"`
	CurrentPrice     float64        `json:"current_price"`
	SharesAffordable int64          `json:"shares_affordable"`
	Recommendation   Recommendation `json:"recommendation"`
}
