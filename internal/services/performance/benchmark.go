package performance

import "gonum.org/v1/gonum/stat"

// CompareBenchmarks reports the portfolio's annualized out- or
// under-performance against each named benchmark return series, in
// percentage points. Both series are truncated to the shorter length before
// comparison; a benchmark whose truncated series is empty is skipped.
func CompareBenchmarks(portfolioReturns []float64, benchmarks map[string][]float64) map[string]float64 {
	result := make(map[string]float64, len(benchmarks))
	for name, benchReturns := range benchmarks {
		n := len(portfolioReturns)
		if len(benchReturns) < n {
			n = len(benchReturns)
		}
		if n == 0 {
			continue
		}
		portAnnual := stat.Mean(portfolioReturns[:n], nil) * TradingDaysPerYear * 100
		benchAnnual := stat.Mean(benchReturns[:n], nil) * TradingDaysPerYear * 100
		result[name] = portAnnual - benchAnnual
	}
	return result
}
