package entity

// StockSuggestion is one typeahead result for a partial symbol or name.
type StockSuggestion struct {
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Name     string `json:"name,omitempty"`
}

// CatalogStock is one entry in the searchable symbol catalog.
type CatalogStock struct {
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Exchange        string  `json:"exchange"`
	Sector          string  `json:"sector"`
	PopularityScore float64 `json:"popularity_score"`
}
