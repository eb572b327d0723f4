// Package models defines data structures for the tracking engine
package models

import (
	"math"
	"strings"
	"time"
)

// QuoteSource records how a price was obtained, in descending order of
// confidence. Downstream consumers use it to discount estimated values.
type QuoteSource string

const (
	SourceLive       QuoteSource = "live"
	SourceStaleCache QuoteSource = "stale_cache"
	SourceEstimate   QuoteSource = "estimate"
)

// PriceQuote is a resolved price for one symbol.
type PriceQuote struct {
	Symbol    string      `json:"symbol"`
	Price     float64     `json:"price"`
	FetchedAt time.Time   `json:"fetched_at"`
	Source    QuoteSource `json:"source"`
}

// Valid reports whether the quote carries a usable price. Non-finite or
// non-positive prices are treated as fetch failures and never cached.
func (q PriceQuote) Valid() bool {
	return q.Price > 0 && !math.IsNaN(q.Price) && !math.IsInf(q.Price, 0)
}

// NormalizeSymbol canonicalizes a ticker symbol for use as a cache and
// storage key.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// AssetClass buckets symbols for the estimation fallback.
type AssetClass string

const (
	AssetCrypto   AssetClass = "crypto"
	AssetMajorETF AssetClass = "major_etf"
	AssetEquity   AssetClass = "equity"
	AssetOther    AssetClass = "other"
)

var cryptoSymbols = map[string]bool{
	"BTC": true, "ETH": true, "SOL": true, "ADA": true,
	"DOGE": true, "XRP": true, "BNB": true, "DOT": true,
	"LTC": true, "AVAX": true,
}

var majorETFs = map[string]bool{
	"SPY": true, "QQQ": true, "VTI": true, "VOO": true,
	"IWM": true, "DIA": true, "EFA": true, "AGG": true,
	"VEA": true, "BND": true,
}

// ClassifySymbol assigns an asset class from the symbol string alone.
// Crypto tickers match with or without a quote-currency suffix ("BTC",
// "BTC-USD"). Anything that doesn't look like a plain equity ticker is Other.
func ClassifySymbol(symbol string) AssetClass {
	s := NormalizeSymbol(symbol)
	if s == "" {
		return AssetOther
	}

	base := s
	if i := strings.IndexByte(s, '-'); i > 0 {
		base = s[:i]
	}
	if cryptoSymbols[base] {
		return AssetCrypto
	}
	if majorETFs[s] {
		return AssetMajorETF
	}

	if len(s) <= 5 && isAlpha(s) {
		return AssetEquity
	}
	return AssetOther
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
