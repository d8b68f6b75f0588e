package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/finance"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/repository"
)

// metricsWorkers caps the fan-out of the all-products metrics computation.
// The finance core is pure, so products can be computed with zero
// coordination; the limit only bounds peak memory.
const metricsWorkers = 8

// MarketService loads products and their price history and runs the finance
// core over them.
type MarketService struct {
	productRepo *repository.ProductRepository
	priceRepo   *repository.PriceRepository
}

// NewMarketService creates a new MarketService.
func NewMarketService(productRepo *repository.ProductRepository, priceRepo *repository.PriceRepository) *MarketService {
	return &MarketService{
		productRepo: productRepo,
		priceRepo:   priceRepo,
	}
}

// GetProducts returns all tracked products with their latest observed price.
func (s *MarketService) GetProducts() ([]model.Product, error) {
	return s.productRepo.GetProducts()
}

// CreateProduct validates and inserts a new tracked product.
func (s *MarketService) CreateProduct(p model.Product) (model.Product, error) {
	if p.Name == "" {
		return model.Product{}, apperrors.ErrMissingRequiredField
	}
	if p.RetailPrice < 0 {
		return model.Product{}, apperrors.ErrNegativePrice
	}
	if p.Language == "" {
		p.Language = "fr"
	}
	return s.productRepo.CreateProduct(p)
}

// AddObservation records one manually entered price observation for a
// product. Marketplace ingestion writes observations directly; this path
// serves manual entry and corrections.
func (s *MarketService) AddObservation(productID string, observedAt time.Time, price float64, source string) (model.PriceObservation, error) {
	if price <= 0 {
		return model.PriceObservation{}, apperrors.ErrNegativePrice
	}
	if _, err := s.productRepo.GetProduct(productID); err != nil {
		return model.PriceObservation{}, err
	}
	if observedAt.IsZero() {
		observedAt = time.Now()
	}
	if source == "" {
		source = "manual"
	}
	return s.priceRepo.AddObservation(model.PriceObservation{
		ProductID:  productID,
		ObservedAt: observedAt,
		Price:      price,
		Source:     source,
	})
}

// ProductMetrics is one product paired with its computed indicators.
type ProductMetrics struct {
	Product model.Product        `json:"product"`
	Metrics model.FinanceMetrics `json:"metrics"`
}

// GetProductMetrics computes the full FinanceMetrics record for one product.
func (s *MarketService) GetProductMetrics(productID string, now time.Time) (ProductMetrics, error) {
	product, err := s.productRepo.GetProduct(productID)
	if err != nil {
		return ProductMetrics{}, err
	}
	observations, err := s.priceRepo.GetPricesForProduct(productID)
	if err != nil {
		return ProductMetrics{}, err
	}

	metrics := finance.ComputeFinanceMetrics(finance.MetricsInput{
		Prices:      toRawPoints(observations),
		RetailPrice: product.RetailPrice,
		Now:         now,
	})
	return ProductMetrics{Product: product, Metrics: metrics}, nil
}

// GetAllProductMetrics computes FinanceMetrics for the entire catalog, fanned
// out across a bounded worker group. Results keep the product order returned
// by the repository.
func (s *MarketService) GetAllProductMetrics(ctx context.Context, now time.Time) ([]ProductMetrics, error) {
	products, err := s.productRepo.GetProducts()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	pricesByProduct, err := s.priceRepo.GetPricesForProducts(ids)
	if err != nil {
		return nil, err
	}

	results := make([]ProductMetrics, len(products))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(metricsWorkers)
	for i, product := range products {
		i, product := i, product
		g.Go(func() error {
			results[i] = ProductMetrics{
				Product: product,
				Metrics: finance.ComputeFinanceMetrics(finance.MetricsInput{
					Prices:      toRawPoints(pricesByProduct[product.ID]),
					RetailPrice: product.RetailPrice,
					Now:         now,
				}),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute catalog metrics: %w", err)
	}
	return results, nil
}

// loadIndexItems assembles the finance core's item view of the whole
// catalog: one IndexItem per product with its raw observations. Shared by
// the index and series services.
func loadIndexItems(productRepo *repository.ProductRepository, priceRepo *repository.PriceRepository) ([]finance.IndexItem, []model.Product, error) {
	products, err := productRepo.GetProducts()
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	pricesByProduct, err := priceRepo.GetPricesForProducts(ids)
	if err != nil {
		return nil, nil, err
	}

	items := make([]finance.IndexItem, len(products))
	for i, p := range products {
		items[i] = finance.IndexItem{
			ID:          p.ID,
			Name:        p.Name,
			RetailPrice: p.RetailPrice,
			Prices:      toRawPoints(pricesByProduct[p.ID]),
		}
	}
	return items, products, nil
}

func toRawPoints(observations []model.PriceObservation) []finance.RawPricePoint {
	points := make([]finance.RawPricePoint, len(observations))
	for i, obs := range observations {
		points[i] = finance.RawPricePoint{
			Date:  obs.ObservedAt.UTC().Format(time.RFC3339),
			Price: obs.Price,
		}
	}
	return points
}
