package service

import (
	"log"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/finance"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/repository"
)

// IndexService computes the ISP-FR chained index over the catalog and
// maintains the persisted daily snapshot trail.
type IndexService struct {
	productRepo  *repository.ProductRepository
	priceRepo    *repository.PriceRepository
	snapshotRepo *repository.SnapshotRepository
}

// NewIndexService creates a new IndexService.
func NewIndexService(
	productRepo *repository.ProductRepository,
	priceRepo *repository.PriceRepository,
	snapshotRepo *repository.SnapshotRepository,
) *IndexService {
	return &IndexService{
		productRepo:  productRepo,
		priceRepo:    priceRepo,
		snapshotRepo: snapshotRepo,
	}
}

// BuildIndex recomputes the full chained index history from raw observations.
func (s *IndexService) BuildIndex() ([]model.ISPIndexPoint, error) {
	items, _, err := loadIndexItems(s.productRepo, s.priceRepo)
	if err != nil {
		return nil, err
	}
	return finance.ComputeISPFromItems(items), nil
}

// GetSummary recomputes the index and derives its dashboard summary.
func (s *IndexService) GetSummary(now time.Time) (model.ISPIndexSummary, error) {
	history, err := s.BuildIndex()
	if err != nil {
		return model.ISPIndexSummary{}, err
	}
	return finance.ComputeISPSummary(history, now), nil
}

// GetVariation audits which products drove the index move between two dates.
func (s *IndexService) GetVariation(from, to time.Time) ([]model.ItemVariation, error) {
	items, _, err := loadIndexItems(s.productRepo, s.priceRepo)
	if err != nil {
		return nil, err
	}
	return finance.DebugVariationBetweenDates(items, from, to), nil
}

// GetSnapshots returns the persisted daily snapshot trail, oldest first.
func (s *IndexService) GetSnapshots() ([]model.IndexSnapshot, error) {
	return s.snapshotRepo.GetSnapshots()
}

// SnapshotLatest recomputes the index and persists its most recent point as
// today's snapshot row. Re-running on the same day overwrites the row.
// A catalog with no priced products is not an error; the snapshot is simply
// skipped.
func (s *IndexService) SnapshotLatest(now time.Time) (*model.IndexSnapshot, error) {
	history, err := s.BuildIndex()
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		log.Println("index snapshot skipped: no qualifying products")
		return nil, nil
	}

	last := history[len(history)-1]
	snap, err := s.snapshotRepo.UpsertSnapshot(model.IndexSnapshot{
		Date:        now.UTC().Truncate(24 * time.Hour),
		Value:       last.Value,
		ItemCount:   last.ItemCount,
		DailyChange: last.DailyChange,
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
