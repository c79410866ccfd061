package repository

import (
	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/pkg/common"
)

// ScreeningUniverse lists the liquid large caps scanned by the
// recommendation engine.
func ScreeningUniverse() []string {
	return []string{
		"RELIANCE", "TCS", "HDFCBANK", "INFY", "HINDUNILVR",
		"ITC", "SBIN", "BHARTIARTL", "KOTAKBANK", "LT",
		"HCLTECH", "AXISBANK", "ASIANPAINT", "MARUTI", "TITAN",
	}
}

// Catalog returns the built-in NSE symbol catalog used for typeahead.
// Popularity scores are hand-assigned tiers used to rank equally matching
// suggestions.
func Catalog() []entity.CatalogStock {
	nse := common.ExchangeNSE
	return []entity.CatalogStock{
		{Symbol: "RELIANCE", Name: "Reliance Industries Ltd", Exchange: nse, Sector: "Energy", PopularityScore: 1.0},
		{Symbol: "TCS", Name: "Tata Consultancy Services Ltd", Exchange: nse, Sector: "IT", PopularityScore: 0.98},
		{Symbol: "HDFCBANK", Name: "HDFC Bank Ltd", Exchange: nse, Sector: "Banking", PopularityScore: 0.96},
		{Symbol: "INFY", Name: "Infosys Ltd", Exchange: nse, Sector: "IT", PopularityScore: 0.95},
		{Symbol: "ICICIBANK", Name: "ICICI Bank Ltd", Exchange: nse, Sector: "Banking", PopularityScore: 0.94},
		{Symbol: "HINDUNILVR", Name: "Hindustan Unilever Ltd", Exchange: nse, Sector: "FMCG", PopularityScore: 0.93},
		{Symbol: "ITC", Name: "ITC Ltd", Exchange: nse, Sector: "FMCG", PopularityScore: 0.92},
		{Symbol: "SBIN", Name: "State Bank of India", Exchange: nse, Sector: "Banking", PopularityScore: 0.91},
		{Symbol: "BHARTIARTL", Name: "Bharti Airtel Ltd", Exchange: nse, Sector: "Telecom", PopularityScore: 0.90},
		{Symbol: "KOTAKBANK", Name: "Kotak Mahindra Bank Ltd", Exchange: nse, Sector: "Banking", PopularityScore: 0.90},
		{Symbol: "BAJFINANCE", Name: "Bajaj Finance Ltd", Exchange: nse, Sector: "Finance", PopularityScore: 0.85},
		{Symbol: "LT", Name: "Larsen & Toubro Ltd", Exchange: nse, Sector: "Infrastructure", PopularityScore: 0.84},
		{Symbol: "ASIANPAINT", Name: "Asian Paints Ltd", Exchange: nse, Sector: "Consumer", PopularityScore: 0.83},
		{Symbol: "AXISBANK", Name: "Axis Bank Ltd", Exchange: nse, Sector: "Banking", PopularityScore: 0.82},
		{Symbol: "MARUTI", Name: "Maruti Suzuki India Ltd", Exchange: nse, Sector: "Auto", PopularityScore: 0.81},
		{Symbol: "SUNPHARMA", Name: "Sun Pharmaceutical Industries Ltd", Exchange: nse, Sector: "Pharma", PopularityScore: 0.80},
		{Symbol: "TITAN", Name: "Titan Company Ltd", Exchange: nse, Sector: "Consumer", PopularityScore: 0.79},
		{Symbol: "NESTLEIND", Name: "Nestle India Ltd", Exchange: nse, Sector: "FMCG", PopularityScore: 0.78},
		{Symbol: "ULTRACEMCO", Name: "UltraTech Cement Ltd", Exchange: nse, Sector: "Cement", PopularityScore: 0.77},
		{Symbol: "WIPRO", Name: "Wipro Ltd", Exchange: nse, Sector: "IT", PopularityScore: 0.76},
		{Symbol: "TATAMOTORS", Name: "Tata Motors Ltd", Exchange: nse, Sector: "Auto", PopularityScore: 0.75},
		{Symbol: "TATAPOWER", Name: "Tata Power Company Ltd", Exchange: nse, Sector: "Power", PopularityScore: 0.74},
		{Symbol: "TATASTEEL", Name: "Tata Steel Ltd", Exchange: nse, Sector: "Metals", PopularityScore: 0.73},
		{Symbol: "ADANIPORTS", Name: "Adani Ports and SEZ Ltd", Exchange: nse, Sector: "Infrastructure", PopularityScore: 0.72},
		{Symbol: "ADANIENT", Name: "Adani Enterprises Ltd", Exchange: nse, Sector: "Conglomerate", PopularityScore: 0.71},
		{Symbol: "ONGC", Name: "Oil and Natural Gas Corporation Ltd", Exchange: nse, Sector: "Energy", PopularityScore: 0.70},
		{Symbol: "DIVISLAB", Name: "Divi's Laboratories Ltd", Exchange: nse, Sector: "Pharma", PopularityScore: 0.65},
		{Symbol: "DRREDDY", Name: "Dr. Reddy's Laboratories Ltd", Exchange: nse, Sector: "Pharma", PopularityScore: 0.64},
		{Symbol: "CIPLA", Name: "Cipla Ltd", Exchange: nse, Sector: "Pharma", PopularityScore: 0.63},
		{Symbol: "TECHM", Name: "Tech Mahindra Ltd", Exchange: nse, Sector: "IT", PopularityScore: 0.62},
		{Symbol: "HCLTECH", Name: "HCL Technologies Ltd", Exchange: nse, Sector: "IT", PopularityScore: 0.61},
		{Symbol: "POWERGRID", Name: "Power Grid Corporation of India Ltd", Exchange: nse, Sector: "Power", PopularityScore: 0.60},
		{Symbol: "NTPC", Name: "NTPC Ltd", Exchange: nse, Sector: "Power", PopularityScore: 0.59},
		{Symbol: "COALINDIA", Name: "Coal India Ltd", Exchange: nse, Sector: "Mining", PopularityScore: 0.58},
		{Symbol: "BPCL", Name: "Bharat Petroleum Corporation Ltd", Exchange: nse, Sector: "Energy", PopularityScore: 0.57},
		{Symbol: "IOC", Name: "Indian Oil Corporation Ltd", Exchange: nse, Sector: "Energy", PopularityScore: 0.56},
		{Symbol: "GRASIM", Name: "Grasim Industries Ltd", Exchange: nse, Sector: "Cement", PopularityScore: 0.55},
		{Symbol: "JSWSTEEL", Name: "JSW Steel Ltd", Exchange: nse, Sector: "Metals", PopularityScore: 0.54},
		{Symbol: "HINDALCO", Name: "Hindalco Industries Ltd", Exchange: nse, Sector: "Metals", PopularityScore: 0.53},
		{Symbol: "INDUSINDBK", Name: "IndusInd Bank Ltd", Exchange: nse, Sector: "Banking", PopularityScore: 0.51},
		{Symbol: "BAJAJFINSV", Name: "Bajaj Finserv Ltd", Exchange: nse, Sector: "Finance", PopularityScore: 0.50},
		{Symbol: "M&M", Name: "Mahindra & Mahindra Ltd", Exchange: nse, Sector: "Auto", PopularityScore: 0.49},
		{Symbol: "EICHERMOT", Name: "Eicher Motors Ltd", Exchange: nse, Sector: "Auto", PopularityScore: 0.48},
		{Symbol: "HEROMOTOCO", Name: "Hero MotoCorp Ltd", Exchange: nse, Sector: "Auto", PopularityScore: 0.47},
		{Symbol: "BRITANNIA", Name: "Britannia Industries Ltd", Exchange: nse, Sector: "FMCG", PopularityScore: 0.46},
		{Symbol: "APOLLOHOSP", Name: "Apollo Hospitals Enterprise Ltd", Exchange: nse, Sector: "Healthcare", PopularityScore: 0.43},
		{Symbol: "PIDILITIND", Name: "Pidilite Industries Ltd", Exchange: nse, Sector: "Chemicals", PopularityScore: 0.42},
		{Symbol: "GODREJCP", Name: "Godrej Consumer Products Ltd", Exchange: nse, Sector: "FMCG", PopularityScore: 0.41},
		{Symbol: "DABUR", Name: "Dabur India Ltd", Exchange: nse, Sector: "FMCG", PopularityScore: 0.40},
	}
}
