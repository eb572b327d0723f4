// Package models defines data structures for the tracking engine
package models

import "time"

// Position represents the net holding of one symbol within one account.
// AverageCost is the quantity-weighted mean of all contributing lots.
// Positions are soft-deleted (Active=false) rather than destroyed so that
// history is preserved.
type Position struct {
	ID           string     `json:"id"`
	AccountID    string     `json:"account_id"`
	Symbol       string     `json:"symbol"`
	Quantity     float64    `json:"quantity"`
	AverageCost  float64    `json:"average_cost"`
	CurrentPrice float64    `json:"current_price,omitempty"`
	LastPricedAt *time.Time `json:"last_priced_at,omitempty"`
	PriceSource  QuoteSource `json:"price_source,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MarketValue returns quantity × current price, or 0 if the position has
// never been priced.
func (p Position) MarketValue() float64 {
	if p.CurrentPrice <= 0 {
		return 0
	}
	return p.Quantity * p.CurrentPrice
}

// CostBasis returns the remaining cost basis (quantity × average cost).
func (p Position) CostBasis() float64 {
	return p.Quantity * p.AverageCost
}

// ValueSnapshot is one point in an account's daily value series.
type ValueSnapshot struct {
	AccountID string    `json:"account_id"`
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
}

// PerformanceReport holds the computed risk-adjusted performance metrics for
// one account. Produced fresh on each request — never persisted.
type PerformanceReport struct {
	AccountID        string             `json:"account_id,omitempty"`
	ComputeDate      time.Time          `json:"compute_date"`
	TotalReturnPct   float64            `json:"total_return_pct"`
	AnnualizedPct    float64            `json:"annualized_return_pct"`
	VolatilityPct    float64            `json:"volatility_pct"`
	SharpeRatio      float64            `json:"sharpe_ratio"`
	SortinoRatio     float64            `json:"sortino_ratio"`
	Beta             float64            `json:"beta"`
	AlphaPct         float64            `json:"alpha_pct"`
	MaxDrawdownPct   float64            `json:"max_drawdown_pct"`
	ValueAtRisk      float64            `json:"value_at_risk"`
	VsBenchmarks     map[string]float64 `json:"vs_benchmarks,omitempty"` // benchmark name -> annualized out/under-performance (pct points)
}
