package finance

import (
	"fmt"
	"sort"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
)

// Signal rule thresholds.
const (
	hotReturn7d           = 0.05
	hotMinScore           = 70.0
	opportunityMaxPremium = 0.15
	opportunityMinScore   = 60.0
	opportunityMarketGap  = 0.10
	momentumReturn30d     = 0.10
	warningReturn7d       = -0.03
	warningVol30d         = 0.15
	stableVol30d          = 0.05
	stableMinScore        = 65.0
)

// signalPriority orders the rules; higher wins for the single-signal
// detector. A series that is both hot and stable is hot.
var signalPriority = map[string]int{
	model.SignalHot:         5,
	model.SignalOpportunity: 4,
	model.SignalMomentum:    3,
	model.SignalWarning:     2,
	model.SignalStable:      1,
}

// DetectSignal classifies one series summary into its single highest-priority
// signal. marketMedianPremium, when supplied, enables the relative-value leg
// of the opportunity rule. Returns a "none" signal when no rule matches.
func DetectSignal(s model.SeriesFinanceSummary, marketMedianPremium *float64) model.Signal {
	matches := DetectSignals(s, marketMedianPremium)
	if len(matches) == 0 {
		return model.Signal{Type: model.SignalNone, SeriesName: s.SeriesName}
	}
	return matches[0]
}

// DetectSignals evaluates every rule against the summary and returns all
// matches sorted by descending priority.
func DetectSignals(s model.SeriesFinanceSummary, marketMedianPremium *float64) []model.Signal {
	var signals []model.Signal
	add := func(kind, description string) {
		signals = append(signals, model.Signal{
			Type:        kind,
			SeriesName:  s.SeriesName,
			Priority:    signalPriority[kind],
			Description: description,
		})
	}

	m := s.Metrics

	if gt(m.Return7d, hotReturn7d) && gte(m.Score, hotMinScore) {
		add(model.SignalHot, fmt.Sprintf("%s is heating up: +%.1f%% over 7 days with a health score of %.0f",
			s.SeriesName, *m.Return7d*100, *m.Score))
	}

	if lt(m.PremiumNow, opportunityMaxPremium) && s.Trend30d == model.TrendUp && gte(m.Score, opportunityMinScore) {
		add(model.SignalOpportunity, fmt.Sprintf("%s trades at only %.1f%% over retail while trending up",
			s.SeriesName, *m.PremiumNow*100))
	} else if m.PremiumNow != nil && marketMedianPremium != nil && *m.PremiumNow < *marketMedianPremium-opportunityMarketGap {
		add(model.SignalOpportunity, fmt.Sprintf("%s premium (%.1f%%) sits well below the market median (%.1f%%)",
			s.SeriesName, *m.PremiumNow*100, *marketMedianPremium*100))
	}

	if gt(m.Return30d, momentumReturn30d) && s.Trend7d == model.TrendUp && s.Trend30d == model.TrendUp {
		add(model.SignalMomentum, fmt.Sprintf("%s shows sustained momentum: +%.1f%% over 30 days",
			s.SeriesName, *m.Return30d*100))
	}

	if lt(m.Return7d, warningReturn7d) && s.Trend30d == model.TrendDown {
		add(model.SignalWarning, fmt.Sprintf("%s is sliding: %.1f%% over 7 days with a downward monthly trend",
			s.SeriesName, *m.Return7d*100))
	} else if gt(m.Volatility30d, warningVol30d) {
		add(model.SignalWarning, fmt.Sprintf("%s volatility is elevated at %.1f%%",
			s.SeriesName, *m.Volatility30d*100))
	}

	if lt(m.Volatility30d, stableVol30d) && gte(m.Score, stableMinScore) {
		add(model.SignalStable, fmt.Sprintf("%s is stable: %.1f%% volatility with a score of %.0f",
			s.SeriesName, *m.Volatility30d*100, *m.Score))
	}

	sort.Slice(signals, func(i, j int) bool { return signals[i].Priority > signals[j].Priority })
	return signals
}

func gt(v *float64, threshold float64) bool  { return v != nil && *v > threshold }
func gte(v *float64, threshold float64) bool { return v != nil && *v >= threshold }
func lt(v *float64, threshold float64) bool  { return v != nil && *v < threshold }
