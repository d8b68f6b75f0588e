package model

import "time"

// Market valuation labels for the ISP-FR index.
const (
	MarketOvervalued   = "overvalued"
	MarketUndervalued  = "undervalued"
	MarketFairlyValued = "fairly_valued"
)

// Qualitative trend labels shared by the index summary and series rollups.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
	TrendNA     = "na"
)

// ISPIndexPoint is one day of the catalog-wide chained index.
// Value 100 is the baseline of the earliest day with data.
type ISPIndexPoint struct {
	Date        time.Time `json:"date"`
	Value       float64   `json:"value"`
	ItemCount   int       `json:"itemCount"`   // overlapping items used that day
	DailyChange float64   `json:"dailyChange"` // mean relative change vs previous day
}

// ISPIndexSummary is the derived view over the full index history that the
// dashboard charts consume.
type ISPIndexSummary struct {
	Current      float64         `json:"current"`
	Change7d     *float64        `json:"change7d"`
	Change30d    *float64        `json:"change30d"`
	Change90d    *float64        `json:"change90d"`
	ChangeYTD    *float64        `json:"changeYtd"`
	ChangeSince  float64         `json:"changeSinceBase"`
	LastUpdated  *time.Time      `json:"lastUpdated"`
	Trend        string          `json:"trend"` // up | down | stable
	MarketStatus string          `json:"marketStatus"`
	History      []ISPIndexPoint `json:"history"`
}

// IndexSnapshot is one persisted row of the daily index recompute, kept as an
// audit trail of what the index reported on a given day.
type IndexSnapshot struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Value       float64   `json:"value"`
	ItemCount   int       `json:"itemCount"`
	DailyChange float64   `json:"dailyChange"`
}

// ItemVariation is one product's contribution to a day-over-day index move,
// produced by the variation audit endpoint.
type ItemVariation struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	PriceBefore float64 `json:"priceBefore"`
	PriceAfter  float64 `json:"priceAfter"`
	ChangePct   float64 `json:"changePct"`
}
