// Package stats provides the statistical primitives shared by the
// intelligence engine: moments, index-based least squares fits and
// lag autocorrelation.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// StdDev calculates the population standard deviation of a slice of float64 values
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.PopStdDev(values, nil)
}

// ZScore returns the number of standard deviations value lies from mean.
// A zero stddev yields NaN, which callers treat as "no signal".
func ZScore(value, mean, stddev float64) float64 {
	return math.Abs(value-mean) / stddev
}

// LinearFit holds an ordinary least squares fit of value against sample index.
type LinearFit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	StdError  float64 // residual standard error
	SumSqX    float64 // sum of squared deviations of the index axis
	N         int
}

// FitLine fits y = slope*x + intercept over x = 0..len(values)-1.
func FitLine(values []float64) LinearFit {
	n := len(values)
	if n < 2 {
		return LinearFit{N: n}
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(xs, values, nil, false)
	r2 := stat.RSquared(xs, values, nil, intercept, slope)

	// Residual standard error with n-2 degrees of freedom.
	ssRes := 0.0
	for i, y := range values {
		resid := y - (intercept + slope*float64(i))
		ssRes += resid * resid
	}
	dof := float64(n - 2)
	if dof <= 0 {
		dof = 1
	}

	xMean := float64(n-1) / 2
	sumSqX := 0.0
	for _, x := range xs {
		d := x - xMean
		sumSqX += d * d
	}

	return LinearFit{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		StdError:  math.Sqrt(ssRes / dof),
		SumSqX:    sumSqX,
		N:         n,
	}
}

// At evaluates the fitted line at index x.
func (f LinearFit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// Autocorrelation computes the lag-k autocorrelation of values: the
// mean lagged covariance over the n-k overlap divided by the series
// variance. Short overlaps can push the estimate slightly past 1.
func Autocorrelation(values []float64, lag int) float64 {
	n := len(values)
	if lag <= 0 || lag >= n {
		return 0
	}

	mean := Mean(values)

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	if variance == 0 {
		return 0
	}

	covariance := 0.0
	for i := 0; i < n-lag; i++ {
		covariance += (values[i] - mean) * (values[i+lag] - mean)
	}
	covariance /= float64(n - lag)

	return covariance / variance
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
