package model

// FinanceMetrics is the flat record of derived indicators for one product or
// one series. Pointer fields carry the "undefined" state: nil means the
// underlying computation had no answer (too few points, unknown retail price,
// zero-variance input) and must never be collapsed to 0, because 0 is a
// meaningful value for most of these fields.
type FinanceMetrics struct {
	LastPrice   *float64 `json:"lastPrice"`
	RetailPrice *float64 `json:"retailPrice"`

	PremiumNow *float64 `json:"premiumNow"`
	Premium30d *float64 `json:"premium30d"`

	Return7d  *float64 `json:"return7d"`
	Return30d *float64 `json:"return30d"`

	Volatility30d  *float64 `json:"volatility30d"`
	MaxDrawdown90d *float64 `json:"maxDrawdown90d"`
	TrendSlope30d  *float64 `json:"trendSlope30d"`

	DataCoverage30d float64  `json:"dataCoverage30d"` // fraction 0..1
	FreshnessDays   *float64 `json:"freshnessDays"`

	Score *float64 `json:"score"` // composite 0..100

	// Extended indicators.
	SharpeLike           *float64 `json:"sharpeLike"`
	SortinoLike          *float64 `json:"sortinoLike"`
	CalmarLike           *float64 `json:"calmarLike"`
	AnnualizedVolatility *float64 `json:"annualizedVolatility"`
	DownsideDeviation    *float64 `json:"downsideDeviation"`
	RSI14                *float64 `json:"rsi14"`
	RSISignal            *string  `json:"rsiSignal"` // "oversold" | "neutral" | "overbought"
	VaR95                *float64 `json:"var95"`
	CVaR95               *float64 `json:"cvar95"`
	Skewness             *float64 `json:"skewness"`
	Kurtosis             *float64 `json:"kurtosis"`
	Beta                 *float64 `json:"beta"`
}
