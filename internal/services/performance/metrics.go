package performance

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	// TradingDaysPerYear is the periodic-to-annual scaling factor applied
	// throughout: daily returns compound over 252 trading days.
	TradingDaysPerYear = 252

	// DefaultRiskFreeRate is the annualized risk-free rate used by Sharpe,
	// Sortino and alpha when the caller doesn't supply one.
	DefaultRiskFreeRate = 0.045

	// DefaultVaRConfidence is the tail probability for Value-at-Risk.
	DefaultVaRConfidence = 0.05

	daysPerYear = 365.25
)

// TotalReturn is the percentage gain from initial to current value.
// Returns 0 if the initial value is non-positive.
func TotalReturn(initialValue, currentValue float64) float64 {
	if initialValue <= 0 {
		return 0
	}
	return (currentValue - initialValue) / initialValue * 100
}

// AnnualizedReturn converts a total return percentage over daysHeld into an
// annualized percentage using fractional years (daysHeld / 365.25).
// Returns 0 if daysHeld is non-positive.
func AnnualizedReturn(totalReturnPct float64, daysHeld float64) float64 {
	if daysHeld <= 0 {
		return 0
	}
	years := daysHeld / daysPerYear
	if years <= 0 {
		return 0
	}
	base := 1 + totalReturnPct/100
	if base <= 0 {
		// Total loss or worse — can't raise negative to fractional power
		return totalReturnPct
	}
	return (math.Pow(base, 1/years) - 1) * 100
}

// Volatility is the annualized standard deviation of periodic returns,
// expressed as a percentage. Returns 0 for fewer than 2 data points.
func Volatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(TradingDaysPerYear) * 100
}

// SharpeRatio is the annualized excess return over the risk-free rate per
// unit of annualized volatility. Returns 0 for fewer than 2 points or zero
// deviation.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	sd := stat.StdDev(returns, nil)
	if sd == 0 {
		return 0
	}
	excess := stat.Mean(returns, nil)*TradingDaysPerYear - riskFreeRate
	return excess / (sd * math.Sqrt(TradingDaysPerYear))
}

// SortinoRatio is the Sharpe numerator over downside deviation, where the
// downside sample is the returns below the per-period risk-free threshold.
// Returns 0 for fewer than 2 downside observations or zero downside
// deviation.
func SortinoRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	threshold := riskFreeRate / TradingDaysPerYear
	var downside []float64
	for _, r := range returns {
		if r < threshold {
			downside = append(downside, r)
		}
	}
	if len(downside) < 2 {
		return 0
	}
	dd := stat.StdDev(downside, nil)
	if dd == 0 {
		return 0
	}
	excess := stat.Mean(returns, nil)*TradingDaysPerYear - riskFreeRate
	return excess / (dd * math.Sqrt(TradingDaysPerYear))
}

// MaxDrawdown is the largest peak-to-trough decline in a value series,
// expressed as a negative (or zero) percentage. Returns 0 for series
// shorter than 2.
func MaxDrawdown(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	peak := values[0]
	minDrawdown := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (v - peak) / peak; dd < minDrawdown {
				minDrawdown = dd
			}
		}
	}
	return minDrawdown * 100
}

// Beta is the covariance of portfolio and benchmark returns over the
// benchmark variance. Defaults to 1.0 on length mismatch, fewer than 2
// points, or zero benchmark variance.
func Beta(portfolioReturns, benchmarkReturns []float64) float64 {
	if len(portfolioReturns) != len(benchmarkReturns) || len(portfolioReturns) < 2 {
		return 1.0
	}
	benchVar := stat.Variance(benchmarkReturns, nil)
	if benchVar == 0 {
		return 1.0
	}
	return stat.Covariance(portfolioReturns, benchmarkReturns, nil) / benchVar
}

// Alpha is Jensen's alpha: the portfolio's annualized return in excess of
// what its beta exposure to the benchmark would predict, as a percentage.
// Returns 0 for fewer than 2 points.
func Alpha(portfolioReturns, benchmarkReturns []float64, riskFreeRate float64) float64 {
	if len(portfolioReturns) < 2 || len(benchmarkReturns) < 2 {
		return 0
	}
	beta := Beta(portfolioReturns, benchmarkReturns)
	portAnnual := stat.Mean(portfolioReturns, nil) * TradingDaysPerYear
	benchAnnual := stat.Mean(benchmarkReturns, nil) * TradingDaysPerYear
	expected := riskFreeRate + beta*(benchAnnual-riskFreeRate)
	return (portAnnual - expected) * 100
}

// ValueAtRisk estimates the worst-case one-period loss at the given
// confidence level as a currency amount (typically negative). The index
// floor(confidence × n) into the ascending-sorted returns is clamped to the
// series bounds, so short series select the worst observation.
func ValueAtRisk(returns []float64, confidenceLevel, portfolioValue float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	idx := int(confidenceLevel * float64(len(sorted)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx] * portfolioValue
}
