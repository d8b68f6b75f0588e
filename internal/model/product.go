package model

import "time"

// Product represents one sealed trading-card product tracked by the system
// (a booster box, an elite trainer box, a coffret, ...).
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	SeriesName  string     `json:"seriesName"`
	RetailPrice float64    `json:"retailPrice"` // original MSRP, 0 means unknown
	EAN         string     `json:"ean"`
	Language    string     `json:"language"`
	ReleasedOn  *time.Time `json:"releasedOn"`
	LatestPrice *float64   `json:"latestPrice"` // most recent observed price, nil if never observed
}

// PriceObservation is one raw observed lowest-ask price for a product.
// Observations come from marketplace ingestion jobs and may contain several
// entries per calendar day; the finance core deduplicates them.
type PriceObservation struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	ObservedAt time.Time `json:"observedAt"`
	Price      float64   `json:"price"`
	Source     string    `json:"source"`
	ListingURL string    `json:"listingUrl,omitempty"`
}
