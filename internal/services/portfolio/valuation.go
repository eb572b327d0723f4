package portfolio

import "github.com/StealthyScripter/TradingSystem-sub000/internal/models"

// TotalValue sums quantity × current price over the active positions in the
// slice. Positions that have never been priced contribute nothing.
func TotalValue(positions []*models.Position) float64 {
	total := 0.0
	for _, p := range positions {
		if p == nil || !p.Active {
			continue
		}
		total += p.MarketValue()
	}
	return total
}

// DistinctSymbols returns the unique normalized symbols across the active
// positions, in first-seen order.
func DistinctSymbols(positions []*models.Position) []string {
	seen := make(map[string]bool, len(positions))
	var symbols []string
	for _, p := range positions {
		if p == nil || !p.Active {
			continue
		}
		s := models.NormalizeSymbol(p.Symbol)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		symbols = append(symbols, s)
	}
	return symbols
}
