package finance

import "math"

// Composite score V1. Four normalized sub-scores are blended into a single
// 0..100 health score:
//
//	0.40 return + 0.25 trend + 0.20 risk + 0.15 data quality
//
// When a sub-score input is nil, the sub-score falls back to a neutral
// midpoint (0.5) rather than zero, so one missing indicator does not drag a
// well-covered product to the floor. The score itself is nil only when both
// premium and slope are nil, i.e. there is no price information at all.
const (
	weightReturn  = 0.40
	weightTrend   = 0.25
	weightRisk    = 0.20
	weightQuality = 0.15

	// Sub-score input ranges, clamped.
	premiumFloor = -0.50
	premiumCeil  = 1.50
	slopeFloor   = -0.01
	slopeCeil    = 0.01
	volCeil      = 0.15 // 30d log-return stdev considered maximal risk
	drawdownCeil = 0.50 // 90d drawdown considered maximal risk

	riskVolWeight      = 0.55
	riskDrawdownWeight = 0.45

	qualityCoverageWeight  = 0.65
	qualityFreshnessWeight = 0.35
	freshnessStaleDays     = 14.0
)

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// mapRange linearly maps v from [lo,hi] to [0,1], clamped.
func mapRange(v, lo, hi float64) float64 {
	return clamp01((v - lo) / (hi - lo))
}

// ScoreComposite maps the windowed indicators into the 0..100 composite
// score. The returned value is integer-valued (rounded) inside [0,100].
func ScoreComposite(premium30, slope30, vol30, drawdown90 *float64, coverage30 float64, freshnessDays *float64) *float64 {
	if premium30 == nil && slope30 == nil {
		return nil
	}

	returnScore := 0.5
	if premium30 != nil {
		returnScore = mapRange(*premium30, premiumFloor, premiumCeil)
	}

	trendScore := 0.5
	if slope30 != nil {
		trendScore = mapRange(*slope30, slopeFloor, slopeCeil)
	}

	volScore := 0.5
	if vol30 != nil {
		volScore = 1 - mapRange(*vol30, 0, volCeil)
	}
	drawdownScore := 0.5
	if drawdown90 != nil {
		drawdownScore = 1 - mapRange(*drawdown90, 0, drawdownCeil)
	}
	riskScore := riskVolWeight*volScore + riskDrawdownWeight*drawdownScore

	freshnessScore := 0.0
	if freshnessDays != nil {
		freshnessScore = clamp01(1 - *freshnessDays/freshnessStaleDays)
	}
	qualityScore := qualityCoverageWeight*clamp01(coverage30) + qualityFreshnessWeight*freshnessScore

	score := 100 * (weightReturn*returnScore +
		weightTrend*trendScore +
		weightRisk*riskScore +
		weightQuality*qualityScore)
	return f64(math.Min(100, math.Max(0, math.Round(score))))
}
