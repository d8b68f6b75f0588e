package model

import "time"

// SeriesFinanceSummary aggregates the products of one named series (a card-set
// release) into a comparable summary.
type SeriesFinanceSummary struct {
	SeriesName  string         `json:"seriesName"`
	RetailPrice *float64       `json:"retailPrice"` // median of constituent retail prices
	PointCount  int            `json:"pointCount"`  // days in the series' own chained index
	LastDate    *time.Time     `json:"lastDate"`
	Metrics     FinanceMetrics `json:"metrics"`
	Trend7d     string         `json:"trend7d"`  // up | down | stable | na
	Trend30d    string         `json:"trend30d"` // up | down | stable | na
	MinPrice    *float64       `json:"minPrice"` // lowest last-known item price
	MaxPrice    *float64       `json:"maxPrice"` // highest last-known item price
	ItemCount   int            `json:"itemCount"`
}

// SeriesFinanceKPIs are cross-series aggregates for the dashboard header.
// Averages and medians skip series whose underlying metric is nil.
type SeriesFinanceKPIs struct {
	TotalSeries   int      `json:"totalSeries"`
	TotalItems    int      `json:"totalItems"`
	Up7dCount     int      `json:"up7dCount"`
	Down7dCount   int      `json:"down7dCount"`
	AvgScore      *float64 `json:"avgScore"`
	MedianPremium *float64 `json:"medianPremium"`
	MedianVol30d  *float64 `json:"medianVol30d"`
}
