package performance

import (
	"sort"
	"time"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

// Options tunes report computation. Zero values select the documented
// defaults.
type Options struct {
	RiskFreeRate   float64 // annualized; default 0.045
	VaRConfidence  float64 // default 0.05
	PortfolioValue float64 // currency base for VaR; default last value in series
	DaysHeld       float64 // default one day per return period
}

// Compute assembles a full performance report from a value series and the
// return series derived from it, plus optional named benchmark return
// series. values carries one point per period in chronological order.
func Compute(values []float64, benchmarks map[string][]float64, opts Options) *models.PerformanceReport {
	riskFree := opts.RiskFreeRate
	if riskFree == 0 {
		riskFree = DefaultRiskFreeRate
	}
	confidence := opts.VaRConfidence
	if confidence == 0 {
		confidence = DefaultVaRConfidence
	}

	returns := ReturnsFromValues(values)

	portfolioValue := opts.PortfolioValue
	if portfolioValue == 0 && len(values) > 0 {
		portfolioValue = values[len(values)-1]
	}

	daysHeld := opts.DaysHeld
	if daysHeld == 0 {
		daysHeld = float64(len(returns))
	}

	var totalReturn float64
	if len(values) >= 2 {
		totalReturn = TotalReturn(values[0], values[len(values)-1])
	}

	// Beta and alpha are computed against the first benchmark (by name) whose
	// series matches the portfolio length; remaining benchmarks only
	// contribute to the relative-performance map.
	beta := 1.0
	alpha := 0.0
	names := make([]string, 0, len(benchmarks))
	for name := range benchmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		benchReturns := benchmarks[name]
		if len(benchReturns) == len(returns) && len(returns) >= 2 {
			beta = Beta(returns, benchReturns)
			alpha = Alpha(returns, benchReturns, riskFree)
			break
		}
	}

	return &models.PerformanceReport{
		ComputeDate:    time.Now(),
		TotalReturnPct: totalReturn,
		AnnualizedPct:  AnnualizedReturn(totalReturn, daysHeld),
		VolatilityPct:  Volatility(returns),
		SharpeRatio:    SharpeRatio(returns, riskFree),
		SortinoRatio:   SortinoRatio(returns, riskFree),
		Beta:           beta,
		AlphaPct:       alpha,
		MaxDrawdownPct: MaxDrawdown(values),
		ValueAtRisk:    ValueAtRisk(returns, confidence, portfolioValue),
		VsBenchmarks:   CompareBenchmarks(returns, benchmarks),
	}
}
