package analytics

import "math"

// Score scale and projection constants.
const (
	MinScore = 1.0
	MaxScore = 5.0

	// uncertaintyPerMonth scales model inaccuracy into score points per month.
	uncertaintyPerMonth = 0.3
	percent             = 100.0
)

// Prediction is a projected average at a future horizon.
type Prediction struct {
	HorizonMonths      int        `json:"horizon_months"`
	ExpectedAverage    float64    `json:"expected_average"`
	ConfidenceInterval [2]float64 `json:"confidence_interval"`
	Likelihood         float64    `json:"likelihood"`
	Level              Level      `json:"level"`
}

// Project extrapolates current along slope for horizonMonths and wraps the
// result in an uncertainty band that widens with the horizon and with model
// inaccuracy. modelAccuracy is a percentage in [0,100].
//
// The interval is built around the unclamped projection and each bound is
// clamped on its own. Likelihood is left for the caller to fill in.
func Project(current, slope float64, horizonMonths int, modelAccuracy float64) Prediction {
	horizon := float64(horizonMonths)
	raw := current + slope*horizon
	if math.IsNaN(raw) {
		raw = MinScore
	}
	uncertainty := (1 - modelAccuracy/percent) * horizon * uncertaintyPerMonth
	if math.IsNaN(uncertainty) || uncertainty < 0 {
		uncertainty = 0
	}

	expected := Clamp(raw, MinScore, MaxScore)
	return Prediction{
		HorizonMonths:   horizonMonths,
		ExpectedAverage: expected,
		ConfidenceInterval: [2]float64{
			Clamp(raw-uncertainty, MinScore, MaxScore),
			Clamp(raw+uncertainty, MinScore, MaxScore),
		},
		Level: Classify(expected),
	}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
