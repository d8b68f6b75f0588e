package finance

import (
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
)

// SeriesGroup is one named product series with its constituent items, as
// assembled by the grouping collaborator. The rollup functions are agnostic
// to how the grouping was derived.
type SeriesGroup struct {
	Name  string
	Items []IndexItem
}

// Trend tag threshold shared by the 7d and 30d tags.
const seriesTrendThreshold = 0.02

// BuildSeriesSummary rolls one group up into a comparable summary: median
// retail across constituents, the group's own aggregated daily-median
// series, FinanceMetrics over that series, qualitative trend tags, and the
// min/max last-known item price.
func BuildSeriesSummary(group SeriesGroup, now time.Time) model.SeriesFinanceSummary {
	summary := model.SeriesFinanceSummary{
		SeriesName: group.Name,
		ItemCount:  len(group.Items),
		Trend7d:    model.TrendNA,
		Trend30d:   model.TrendNA,
	}

	retails := make([]float64, 0, len(group.Items))
	itemsPrices := make([][]RawPricePoint, 0, len(group.Items))
	for _, it := range group.Items {
		if it.RetailPrice > 0 {
			retails = append(retails, it.RetailPrice)
		}
		itemsPrices = append(itemsPrices, it.Prices)
	}
	summary.RetailPrice = Median(retails)

	aggregated := BuildSeriesIndexDailyMedian(itemsPrices)
	summary.PointCount = len(aggregated.Points)
	if aggregated.Last != nil {
		lastDate := aggregated.Last.Date
		summary.LastDate = &lastDate
	}

	retail := 0.0
	if summary.RetailPrice != nil {
		retail = *summary.RetailPrice
	}
	summary.Metrics = ComputeFinanceMetrics(MetricsInput{
		Prices:      RawPoints(aggregated),
		RetailPrice: retail,
		Now:         now,
	})

	summary.Trend7d = trendTag(summary.Metrics.Return7d)
	summary.Trend30d = trendTag(summary.Metrics.Return30d)

	for _, it := range group.Items {
		series := Normalize(it.Prices)
		if series.Last == nil {
			continue
		}
		price := series.Last.Price
		if summary.MinPrice == nil || price < *summary.MinPrice {
			summary.MinPrice = f64(price)
		}
		if summary.MaxPrice == nil || price > *summary.MaxPrice {
			summary.MaxPrice = f64(price)
		}
	}
	return summary
}

// BuildSeriesSummaries rolls up every group, preserving input order.
func BuildSeriesSummaries(groups []SeriesGroup, now time.Time) []model.SeriesFinanceSummary {
	summaries := make([]model.SeriesFinanceSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, BuildSeriesSummary(g, now))
	}
	return summaries
}

func trendTag(ret *float64) string {
	if ret == nil {
		return model.TrendNA
	}
	switch {
	case *ret > seriesTrendThreshold:
		return model.TrendUp
	case *ret < -seriesTrendThreshold:
		return model.TrendDown
	default:
		return model.TrendStable
	}
}

// ComputeSeriesKPIs aggregates across all series summaries. Averages and
// medians include only series whose underlying metric is non-nil: a series
// without a score is excluded from the mean, never counted as 0.
func ComputeSeriesKPIs(summaries []model.SeriesFinanceSummary) model.SeriesFinanceKPIs {
	kpis := model.SeriesFinanceKPIs{TotalSeries: len(summaries)}

	var scores, premiums, vols []float64
	for _, s := range summaries {
		kpis.TotalItems += s.ItemCount
		switch s.Trend7d {
		case model.TrendUp:
			kpis.Up7dCount++
		case model.TrendDown:
			kpis.Down7dCount++
		}
		if s.Metrics.Score != nil {
			scores = append(scores, *s.Metrics.Score)
		}
		if s.Metrics.PremiumNow != nil {
			premiums = append(premiums, *s.Metrics.PremiumNow)
		}
		if s.Metrics.Volatility30d != nil {
			vols = append(vols, *s.Metrics.Volatility30d)
		}
	}

	if len(scores) > 0 {
		kpis.AvgScore = f64(meanOf(scores))
	}
	kpis.MedianPremium = Median(premiums)
	kpis.MedianVol30d = Median(vols)
	return kpis
}
