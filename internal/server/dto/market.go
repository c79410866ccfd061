package dto

// GetStockDataParam identifies one upstream chart request.
type GetStockDataParam struct {
	Symbol   string
	Exchange string
	Range    string
	Interval string
}

// PriceUpdate is one frame pushed over the price stream websocket.
type PriceUpdate struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}
