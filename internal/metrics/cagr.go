package metrics

import (
	"math"

	"github.com/wonny/cyberdash/internal/contracts"
)

// cagrWindow caps compound growth at a 5-year (6-period) window.
const cagrWindow = 6

// CAGR computes a compound growth rate over the given number of periods.
// Undefined when periods <= 0 or either base is non-positive; CAGR has no
// meaning across a sign flip such as a loss-to-profit transition.
func CAGR(start, end float64, periods int) contracts.Metric {
	if periods <= 0 {
		return contracts.Metric{}
	}
	if start <= 0 || end <= 0 {
		return contracts.Metric{}
	}
	return contracts.MetricOf(math.Pow(end/start, 1/float64(periods)) - 1)
}

// TailCAGR derives the compound growth rate from the earliest and latest
// values in the tail window of a series. Fewer than 2 usable values is
// undefined; fewer than 6 shrinks the window.
func TailCAGR(series []float64) contracts.Metric {
	if len(series) > cagrWindow {
		series = series[len(series)-cagrWindow:]
	}
	if len(series) < 2 {
		return contracts.Metric{}
	}
	return CAGR(series[0], series[len(series)-1], len(series)-1)
}

// tail returns the last n elements of a series.
func tail(series []float64, n int) []float64 {
	if len(series) > n {
		return series[len(series)-n:]
	}
	return series
}

// mean averages a series; undefined when empty.
func mean(series []float64) contracts.Metric {
	if len(series) == 0 {
		return contracts.Metric{}
	}
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return contracts.MetricOf(sum / float64(len(series)))
}

// stddev computes the sample standard deviation (n-1); undefined below 2
// values.
func stddev(series []float64) contracts.Metric {
	n := len(series)
	if n < 2 {
		return contracts.Metric{}
	}
	m := 0.0
	for _, v := range series {
		m += v
	}
	m /= float64(n)

	ss := 0.0
	for _, v := range series {
		d := v - m
		ss += d * d
	}
	return contracts.MetricOf(math.Sqrt(ss / float64(n-1)))
}
