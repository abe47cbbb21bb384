// Package trend computes the moving average and the projected next price
// over a daily close series. Everything here is pure arithmetic.
package trend

import (
	"math"
	"time"
)

// ProjectionFactor is the fixed multiplier applied to the latest close to
// produce the projected next price. It is a nominal scaling, not a model.
const ProjectionFactor = 1.02

// DefaultWindow is the moving-average window in trading days.
const DefaultWindow = 20

// Point is one observation of a daily close series.
type Point struct {
	Date  time.Time
	Close float64
}

// MeanPoint is one point of a rolling-mean series.
type MeanPoint struct {
	Date time.Time
	Mean float64
}

// RollingMean computes the simple moving average of the trailing window
// observations. Leading entries with fewer than window observations are
// dropped: a series of length n yields n-window+1 points, or none when
// n < window.
func RollingMean(series []Point, window int) []MeanPoint {
	if window <= 0 || len(series) < window {
		return nil
	}

	means := make([]MeanPoint, 0, len(series)-window+1)

	var sum float64
	for i, p := range series {
		sum += p.Close
		if i >= window {
			sum -= series[i-window].Close
		}
		if i >= window-1 {
			means = append(means, MeanPoint{
				Date: p.Date,
				Mean: sum / float64(window),
			})
		}
	}

	return means
}

// ProjectNext returns the projected next price for the given close.
func ProjectNext(currentClose float64) float64 {
	return currentClose * ProjectionFactor
}

// TrendLabel labels the projection direction. Only a strictly greater
// projection counts as Bullish; ties round to Bearish.
func TrendLabel(current, predicted float64) string {
	if predicted > current {
		return "Bullish"
	}
	return "Bearish"
}

// Round2 rounds a price to two decimal places for display. Internal
// computation keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
