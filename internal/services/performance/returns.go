// Package performance is a pure-function library over return and value
// series: volatility, Sharpe, Sortino, beta, alpha, drawdown, VaR and
// benchmark comparison. All functions tolerate empty or short inputs and
// return documented defaults instead of dividing by zero.
package performance

// ReturnsFromValues converts an ordered value series into periodic returns.
// A value series of length n+1 yields a return series of length n. Points
// following a non-positive value produce a zero return.
func ReturnsFromValues(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] > 0 {
			returns[i-1] = (values[i] - values[i-1]) / values[i-1]
		}
	}
	return returns
}
