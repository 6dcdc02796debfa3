// Package analytics holds the numeric primitives shared by the forecast and
// suggestion engines: trend estimation, level classification and bounded
// projection.
package analytics

import "math"

// Trend classification thresholds, in score points per evaluation step.
const (
	rapidImprovementSlope    = 0.3
	moderateImprovementSlope = 0.1
	declineSlope             = -0.1
	minTrendSamples          = 2
)

// TrendLabel is a coarse classification of a slope.
type TrendLabel string

// Trend labels.
const (
	TrendRapidImprovement    TrendLabel = "rapid_improvement"
	TrendModerateImprovement TrendLabel = "moderate_improvement"
	TrendDecline             TrendLabel = "decline"
	TrendStable              TrendLabel = "stable"
)

// Improving reports whether the label denotes any kind of improvement.
func (l TrendLabel) Improving() bool {
	return l == TrendRapidImprovement || l == TrendModerateImprovement
}

// Trend is the result of fitting a line through a series.
type Trend struct {
	Slope float64    `json:"slope"`
	Label TrendLabel `json:"label"`
}

// EstimateTrend fits an ordinary least-squares line of series[i] against i
// and classifies the slope. Series shorter than two points are stable.
func EstimateTrend(series []float64) Trend {
	n := len(series)
	if n < minTrendSamples {
		return Trend{Slope: 0, Label: TrendStable}
	}

	xMean := float64(n-1) / 2
	yMean := Mean(series)

	var num, den float64
	for i, y := range series {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}

	slope := 0.0
	if den != 0 {
		slope = num / den
	}
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		slope = 0
	}
	return Trend{Slope: slope, Label: ClassifySlope(slope)}
}

// ClassifySlope maps a slope onto a TrendLabel. Thresholds are compared
// exactly, without rounding.
func ClassifySlope(slope float64) TrendLabel {
	switch {
	case slope > rapidImprovementSlope:
		return TrendRapidImprovement
	case slope > moderateImprovementSlope:
		return TrendModerateImprovement
	case slope < declineSlope:
		return TrendDecline
	default:
		return TrendStable
	}
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
