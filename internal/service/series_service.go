package service

import (
	"sort"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/finance"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/grouping"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/repository"
)

// SeriesService groups the catalog into named series and rolls them up into
// comparable summaries, KPIs and signals.
type SeriesService struct {
	productRepo *repository.ProductRepository
	priceRepo   *repository.PriceRepository
}

// NewSeriesService creates a new SeriesService.
func NewSeriesService(productRepo *repository.ProductRepository, priceRepo *repository.PriceRepository) *SeriesService {
	return &SeriesService{
		productRepo: productRepo,
		priceRepo:   priceRepo,
	}
}

// buildGroups assembles the series groups: a product's explicit series_name
// wins, otherwise the name-derived bucket from the grouping package.
// Groups come back sorted by name for stable API output.
func (s *SeriesService) buildGroups() ([]finance.SeriesGroup, error) {
	items, products, err := loadIndexItems(s.productRepo, s.priceRepo)
	if err != nil {
		return nil, err
	}

	byName := make(map[string][]finance.IndexItem)
	for i, p := range products {
		name := p.SeriesName
		if name == "" {
			name = grouping.NormalizeSeriesName(p.Name)
		}
		byName[name] = append(byName[name], items[i])
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]finance.SeriesGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, finance.SeriesGroup{Name: name, Items: byName[name]})
	}
	return groups, nil
}

// GetSummaries rolls every series up into its finance summary.
func (s *SeriesService) GetSummaries(now time.Time) ([]model.SeriesFinanceSummary, error) {
	groups, err := s.buildGroups()
	if err != nil {
		return nil, err
	}
	return finance.BuildSeriesSummaries(groups, now), nil
}

// GetKPIs aggregates the cross-series dashboard KPIs.
func (s *SeriesService) GetKPIs(now time.Time) (model.SeriesFinanceKPIs, error) {
	summaries, err := s.GetSummaries(now)
	if err != nil {
		return model.SeriesFinanceKPIs{}, err
	}
	return finance.ComputeSeriesKPIs(summaries), nil
}

// GetSignals classifies every series against the signal rules. The market
// median premium across all series feeds the relative-value leg of the
// opportunity rule.
func (s *SeriesService) GetSignals(now time.Time) ([]model.Signal, error) {
	summaries, err := s.GetSummaries(now)
	if err != nil {
		return nil, err
	}

	var premiums []float64
	for _, summary := range summaries {
		if summary.Metrics.PremiumNow != nil {
			premiums = append(premiums, *summary.Metrics.PremiumNow)
		}
	}
	marketMedian := finance.Median(premiums)

	signals := []model.Signal{}
	for _, summary := range summaries {
		signals = append(signals, finance.DetectSignals(summary, marketMedian)...)
	}
	return signals, nil
}
