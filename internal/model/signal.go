package model

// Signal types, ordered by priority (hot wins over everything else when a
// series matches several rules at once).
const (
	SignalHot         = "hot"
	SignalOpportunity = "opportunity"
	SignalMomentum    = "momentum"
	SignalWarning     = "warning"
	SignalStable      = "stable"
	SignalNone        = "none"
)

// Signal is the qualitative classification of one series summary.
type Signal struct {
	Type        string `json:"type"`
	SeriesName  string `json:"seriesName"`
	Priority    int    `json:"priority"`
	Description string `json:"description"`
}
