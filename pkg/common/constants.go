package common

const (
	// Redis key formats.
	RedisKeyQuoteSnapshot   = "quote_snapshot:%s"
	RedisKeyRecommendations = "recommendations:%s"

	// Exchange suffixes used by the Yahoo Finance chart API for Indian
	// listings.
	NSESuffix = ".NS"
	BSESuffix = ".BO"

	ExchangeNSE = "NSE"
	ExchangeBSE = "BSE"
)
